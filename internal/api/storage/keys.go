package storage

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Every object key leads with the uploader's identity id. That segment is
// what policy.AuthorizeObject compares against the caller, for originals and
// versions alike.

// ObjectKey builds the key for an original upload:
// {user_id}/{job_id}/{unix}-{random}.{ext}
func ObjectKey(userID, jobID, fileName string) string {
	ext := strings.TrimPrefix(path.Ext(fileName), ".")
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("%s/%s/%d-%s.%s", userID, jobID, time.Now().Unix(), shortRandom(), ext)
}

// VersionKey builds the key for a file version:
// {user_id}/{file_id}/versions/v{n}.{ext}
func VersionKey(userID, fileID string, versionNumber int, fileName string) string {
	ext := strings.TrimPrefix(path.Ext(fileName), ".")
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("%s/%s/versions/v%d.%s", userID, fileID, versionNumber, ext)
}

// KeyOwner returns the identity segment of a key, empty if malformed.
func KeyOwner(key string) string {
	seg, _, ok := strings.Cut(key, "/")
	if !ok {
		return ""
	}
	return seg
}

func shortRandom() string {
	return uuid.NewString()[:8]
}
