package policy

import "strings"

// Object keys always lead with the owning identity id, so blob permissions
// are decided without a metadata join. Put/Get require authentication;
// overwrite/remove require the leading segment to match the caller.

func objectOwner(key string) string {
	seg, _, ok := strings.Cut(key, "/")
	if !ok {
		return ""
	}
	return seg
}

// AuthorizeObject checks one object-store operation against a key.
func AuthorizeObject(c Caller, op Operation, key string) error {
	if !c.Authenticated() {
		return ErrUnauthenticated
	}
	switch op {
	case OpSelect, OpInsert:
		return nil
	case OpUpdate, OpDelete:
		if objectOwner(key) != c.ID {
			return ErrForbidden
		}
		return nil
	}
	return ErrForbidden
}
