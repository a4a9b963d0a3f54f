package services

import (
	"database/sql"
	"testing"

	"github.com/jmorell/newsroom-be/internal/apperr"
	"github.com/jmorell/newsroom-be/internal/database"
	"github.com/jmorell/newsroom-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDB opens an in-memory database with the full schema applied.
// A single connection is forced so every query sees the same in-memory
// database.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { db.Close() })
	return db
}

func TestRegister_FirstUserBecomesAdmin(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	alice, err := svc.Register("alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, alice.Role)
	assert.NotEmpty(t, alice.ID)

	bob, err := svc.Register("bob", "pw2")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, bob.Role)

	carol, err := svc.Register("carol", "pw3")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, carol.Role)

	count, err := svc.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	_, err := svc.Register("alice", "pw1")
	require.NoError(t, err)

	_, err = svc.Register("alice", "pw3")
	assert.ErrorIs(t, err, apperr.ErrUserExists)

	// The failed attempt must not leave a partial write behind.
	count, err := svc.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRegister_MissingFields(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	_, err := svc.Register("", "pw")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Register("alice", "")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	count, err := svc.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRegister_NeverStoresPlaintext(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	user, err := svc.Register("alice", "pw1")
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash, "returned user must not carry the hash")

	var stored string
	require.NoError(t, db.QueryRow("SELECT password_hash FROM users WHERE username = ?", "alice").Scan(&stored))
	assert.NotEmpty(t, stored)
	assert.NotEqual(t, "pw1", stored)
}

func TestAuthenticate(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	registered, err := svc.Register("alice", "pw1")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Authenticate("alice", "pw1")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		assert.Equal(t, models.RoleAdmin, user.Role)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate("alice", "wrong")
		assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Authenticate("nobody", "pw1")
		assert.ErrorIs(t, err, apperr.ErrUserNotFound)
	})
}

func TestGetUserByID(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	registered, err := svc.Register("alice", "pw1")
	require.NoError(t, err)

	user, err := svc.GetUserByID(registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.False(t, user.CreatedAt.IsZero())

	_, err = svc.GetUserByID("missing-id")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
