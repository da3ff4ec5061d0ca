package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorizeObject(t *testing.T) {
	key := alice.ID + "/job-1/1700000000-abc.png"

	assert.NoError(t, AuthorizeObject(alice, OpInsert, key))
	assert.NoError(t, AuthorizeObject(bob, OpSelect, key))

	assert.NoError(t, AuthorizeObject(alice, OpDelete, key))
	assert.ErrorIs(t, AuthorizeObject(bob, OpDelete, key), ErrForbidden)
	assert.ErrorIs(t, AuthorizeObject(bob, OpUpdate, key), ErrForbidden)

	assert.ErrorIs(t, AuthorizeObject(anon, OpSelect, key), ErrUnauthenticated)
}

func TestAuthorizeObject_MalformedKey(t *testing.T) {
	// A key with no path separator has no owner segment to compare.
	assert.ErrorIs(t, AuthorizeObject(alice, OpDelete, "loose-object.png"), ErrForbidden)
	assert.ErrorIs(t, AuthorizeObject(alice, OpDelete, ""), ErrForbidden)
}
