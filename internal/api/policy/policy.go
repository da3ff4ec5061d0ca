// Package policy is the single authorization boundary for the asset store.
// Every table operation and every object-store operation is checked here
// before it takes effect, regardless of what the client UI allowed.
package policy

import (
	"errors"

	"api/internal/api/models"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden is deliberately generic: a denied caller cannot tell
	// whether the row exists or is merely inaccessible.
	ErrForbidden = errors.New("forbidden")
)

type Operation string

const (
	OpSelect Operation = "select"
	OpInsert Operation = "insert"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

type Table string

const (
	TableProfile     Table = "profiles"
	TableJob         Table = "jobs"
	TableJobFile     Table = "job_files"
	TableComment     Table = "comments"
	TableFileVersion Table = "file_versions"
	TableTemplate    Table = "templates"
)

// Caller is the authenticated identity an operation runs as. A zero Caller
// is unauthenticated.
type Caller struct {
	ID   string
	Role models.AppRole
}

func (c Caller) Authenticated() bool {
	return c.ID != ""
}

func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// Row carries the fields predicates evaluate against a candidate row.
// OwnerID is the creator/uploader/author column; for profiles it is the
// profile's own id. RoleChange marks a profile update that touches the role
// field, which only admins may do.
type Row struct {
	Table      Table
	OwnerID    string
	IsPublic   bool
	RoleChange bool
}

type predicate func(c Caller, r Row) bool

var authenticated = func(c Caller, r Row) bool { return c.Authenticated() }

var owner = func(c Caller, r Row) bool {
	return c.Authenticated() && c.ID == r.OwnerID
}

var deny = func(c Caller, r Row) bool { return false }

// rules is the per-table, per-operation predicate table. Insert predicates
// assume the service forces the ownership column to the caller id; that
// invariant is asserted by ForceOwner.
var rules = map[Table]map[Operation]predicate{
	TableProfile: {
		OpSelect: authenticated,
		OpInsert: deny, // rows appear only via the identity bootstrap
		OpUpdate: func(c Caller, r Row) bool {
			if !c.Authenticated() {
				return false
			}
			if r.RoleChange {
				return c.IsAdmin()
			}
			return c.ID == r.OwnerID
		},
		OpDelete: deny,
	},
	TableJob: {
		OpSelect: authenticated,
		OpInsert: authenticated,
		OpUpdate: owner,
		OpDelete: owner,
	},
	TableJobFile: {
		OpSelect: authenticated,
		OpInsert: authenticated,
		OpUpdate: owner,
		OpDelete: owner,
	},
	TableComment: {
		OpSelect: authenticated,
		OpInsert: authenticated,
		OpUpdate: owner,
		OpDelete: owner,
	},
	TableFileVersion: {
		OpSelect: authenticated,
		OpInsert: authenticated,
		OpUpdate: deny, // append-only
		OpDelete: deny,
	},
	TableTemplate: {
		OpSelect: func(c Caller, r Row) bool {
			if !c.Authenticated() {
				return false
			}
			return r.IsPublic || c.ID == r.OwnerID
		},
		OpInsert: authenticated,
		OpUpdate: owner,
		OpDelete: owner,
	},
}

// Authorize decides ALLOW/DENY for one (table, operation, caller, row)
// tuple. Unauthenticated callers always get ErrUnauthenticated; everything
// else denied maps to the generic ErrForbidden.
func Authorize(c Caller, op Operation, r Row) error {
	if !c.Authenticated() {
		return ErrUnauthenticated
	}
	ops, ok := rules[r.Table]
	if !ok {
		return ErrForbidden
	}
	pred, ok := ops[op]
	if !ok {
		return ErrForbidden
	}
	if !pred(c, r) {
		return ErrForbidden
	}
	return nil
}

// ForceOwner returns the owner id an insert must carry. The client never
// chooses it.
func ForceOwner(c Caller) (string, error) {
	if !c.Authenticated() {
		return "", ErrUnauthenticated
	}
	return c.ID, nil
}
