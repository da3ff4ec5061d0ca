package policy

import (
	"testing"

	"api/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = Caller{ID: "11111111-1111-1111-1111-111111111111", Role: models.RoleUser}
	bob   = Caller{ID: "22222222-2222-2222-2222-222222222222", Role: models.RoleUser}
	admin = Caller{ID: "33333333-3333-3333-3333-333333333333", Role: models.RoleAdmin}
	anon  = Caller{}
)

func TestAuthorize_Unauthenticated(t *testing.T) {
	for _, table := range []Table{TableProfile, TableJob, TableJobFile, TableComment, TableFileVersion, TableTemplate} {
		err := Authorize(anon, OpSelect, Row{Table: table, OwnerID: alice.ID})
		assert.ErrorIs(t, err, ErrUnauthenticated, "table %s", table)
	}
}

func TestAuthorize_Job_OwnerOnlyMutations(t *testing.T) {
	row := Row{Table: TableJob, OwnerID: alice.ID}

	require.NoError(t, Authorize(alice, OpUpdate, row))
	require.NoError(t, Authorize(alice, OpDelete, row))

	assert.ErrorIs(t, Authorize(bob, OpUpdate, row), ErrForbidden)
	assert.ErrorIs(t, Authorize(bob, OpDelete, row), ErrForbidden)

	// Admins get no special treatment outside profile role changes.
	assert.ErrorIs(t, Authorize(admin, OpDelete, row), ErrForbidden)

	// Any authenticated caller may read and create jobs.
	assert.NoError(t, Authorize(bob, OpSelect, row))
	assert.NoError(t, Authorize(bob, OpInsert, row))
}

func TestAuthorize_JobFile_And_Comment(t *testing.T) {
	for _, table := range []Table{TableJobFile, TableComment} {
		row := Row{Table: table, OwnerID: alice.ID}
		assert.NoError(t, Authorize(bob, OpSelect, row), "table %s", table)
		assert.NoError(t, Authorize(alice, OpUpdate, row), "table %s", table)
		assert.ErrorIs(t, Authorize(bob, OpUpdate, row), ErrForbidden, "table %s", table)
		assert.ErrorIs(t, Authorize(bob, OpDelete, row), ErrForbidden, "table %s", table)
	}
}

func TestAuthorize_FileVersion_AppendOnly(t *testing.T) {
	row := Row{Table: TableFileVersion, OwnerID: alice.ID}

	assert.NoError(t, Authorize(alice, OpSelect, row))
	assert.NoError(t, Authorize(alice, OpInsert, row))

	// Not even the creator can rewrite history.
	assert.ErrorIs(t, Authorize(alice, OpUpdate, row), ErrForbidden)
	assert.ErrorIs(t, Authorize(alice, OpDelete, row), ErrForbidden)
	assert.ErrorIs(t, Authorize(admin, OpDelete, row), ErrForbidden)
}

func TestAuthorize_Template_Visibility(t *testing.T) {
	private := Row{Table: TableTemplate, OwnerID: alice.ID, IsPublic: false}
	public := Row{Table: TableTemplate, OwnerID: alice.ID, IsPublic: true}

	assert.NoError(t, Authorize(alice, OpSelect, private))
	assert.ErrorIs(t, Authorize(bob, OpSelect, private), ErrForbidden)
	assert.NoError(t, Authorize(bob, OpSelect, public))

	// Public visibility does not grant mutation rights.
	assert.ErrorIs(t, Authorize(bob, OpUpdate, public), ErrForbidden)
	assert.ErrorIs(t, Authorize(bob, OpDelete, public), ErrForbidden)
	assert.NoError(t, Authorize(alice, OpDelete, public))
}

func TestAuthorize_Profile(t *testing.T) {
	row := Row{Table: TableProfile, OwnerID: alice.ID}

	// Owner may edit their own name fields.
	assert.NoError(t, Authorize(alice, OpUpdate, row))
	assert.ErrorIs(t, Authorize(bob, OpUpdate, row), ErrForbidden)

	// Role changes are admin-only, including on the caller's own profile.
	roleRow := Row{Table: TableProfile, OwnerID: alice.ID, RoleChange: true}
	assert.ErrorIs(t, Authorize(alice, OpUpdate, roleRow), ErrForbidden)
	assert.NoError(t, Authorize(admin, OpUpdate, roleRow))

	// No insert or delete path for normal callers.
	assert.ErrorIs(t, Authorize(admin, OpInsert, row), ErrForbidden)
	assert.ErrorIs(t, Authorize(admin, OpDelete, row), ErrForbidden)
}

func TestForceOwner(t *testing.T) {
	id, err := ForceOwner(alice)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, id)

	_, err = ForceOwner(anon)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
