package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mquezada/katutubo/internal/datastore"
	"github.com/mquezada/katutubo/internal/errors"
)

// memoryUserStore is an in-memory UserStore for testing.
type memoryUserStore struct {
	users map[string]datastore.User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{users: make(map[string]datastore.User)}
}

func (m *memoryUserStore) UserByEmail(email string) (datastore.User, error) {
	user, ok := m.users[email]
	if !ok {
		return datastore.User{}, errors.Newf("user not found").
			Component("test").
			Category(errors.CategoryNotFound).
			Build()
	}
	return user, nil
}

func (m *memoryUserStore) SaveUser(user *datastore.User) error {
	m.users[user.Email] = *user
	return nil
}

func createAccount(t *testing.T, store *memoryUserStore, email, password, role string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	store.users[email] = datastore.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  "Test User",
		Role:         role,
	}
}

func TestLogin(t *testing.T) {
	store := newMemoryUserStore()
	createAccount(t, store, "chief@example.com", "secret", RoleAdmin)
	s := NewService(store, time.Hour)

	session, err := s.Login("chief@example.com", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, RoleAdmin, session.Role)
	assert.Equal(t, "Chieftain", session.RoleLabel)
	assert.True(t, session.ExpiresAt.After(time.Now()))
}

func TestLoginNormalizesEmail(t *testing.T) {
	store := newMemoryUserStore()
	createAccount(t, store, "chief@example.com", "secret", RoleAdmin)
	s := NewService(store, time.Hour)

	_, err := s.Login("  Chief@Example.COM ", "secret")
	require.NoError(t, err)
}

func TestLoginInvalidCredentials(t *testing.T) {
	store := newMemoryUserStore()
	createAccount(t, store, "chief@example.com", "secret", RoleAdmin)
	s := NewService(store, time.Hour)

	// Unknown account and wrong password return the same error.
	_, err := s.Login("nobody@example.com", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login("chief@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateAndLogout(t *testing.T) {
	store := newMemoryUserStore()
	createAccount(t, store, "chief@example.com", "secret", RoleAdmin)
	s := NewService(store, time.Hour)

	session, err := s.Login("chief@example.com", "secret")
	require.NoError(t, err)

	got, ok := s.Validate(session.Token)
	require.True(t, ok)
	assert.Equal(t, session.Email, got.Email)

	s.Logout(session.Token)
	_, ok = s.Validate(session.Token)
	assert.False(t, ok)
}

func TestValidateUnknownToken(t *testing.T) {
	s := NewService(newMemoryUserStore(), time.Hour)
	_, ok := s.Validate("bogus")
	assert.False(t, ok)
}

func TestCreateUser(t *testing.T) {
	store := newMemoryUserStore()
	s := NewService(store, time.Hour)

	require.NoError(t, s.CreateUser("New@Example.com", "pw", "New User", RoleUser))

	user, err := store.UserByEmail("new@example.com")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, user.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw")))
}

func TestCreateUserUnknownRoleDowngrades(t *testing.T) {
	store := newMemoryUserStore()
	s := NewService(store, time.Hour)

	require.NoError(t, s.CreateUser("x@example.com", "pw", "X", "owner"))
	user, err := store.UserByEmail("x@example.com")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, user.Role)
}

func TestCreateUserRequiresCredentials(t *testing.T) {
	s := NewService(newMemoryUserStore(), time.Hour)

	err := s.CreateUser("", "pw", "X", RoleUser)
	require.Error(t, err)
	assert.Equal(t, errors.CategoryValidation, errors.CategoryOf(err))

	err = s.CreateUser("x@example.com", "", "X", RoleUser)
	require.Error(t, err)
}

func TestSeedAdmin(t *testing.T) {
	store := newMemoryUserStore()
	s := NewService(store, time.Hour)

	require.NoError(t, s.SeedAdmin("root@example.com", "pw"))
	user, err := store.UserByEmail("root@example.com")
	require.NoError(t, err)
	assert.Equal(t, RoleSuperAdmin, user.Role)

	// A second seed leaves the existing account untouched.
	original := user.PasswordHash
	require.NoError(t, s.SeedAdmin("root@example.com", "different"))
	user, err = store.UserByEmail("root@example.com")
	require.NoError(t, err)
	assert.Equal(t, original, user.PasswordHash)
}

func TestSeedAdminNoConfig(t *testing.T) {
	store := newMemoryUserStore()
	s := NewService(store, time.Hour)

	require.NoError(t, s.SeedAdmin("", ""))
	assert.Empty(t, store.users)
}

func TestRoleLabel(t *testing.T) {
	assert.Equal(t, "IPMR", RoleLabel(RoleSuperAdmin))
	assert.Equal(t, "Chieftain", RoleLabel(RoleAdmin))
	assert.Equal(t, "Member", RoleLabel(RoleUser))
	assert.Equal(t, "Member", RoleLabel("unknown"))
}

func TestAllows(t *testing.T) {
	assert.True(t, Allows(RoleSuperAdmin, RoleAdmin))
	assert.True(t, Allows(RoleAdmin, RoleAdmin))
	assert.False(t, Allows(RoleUser, RoleAdmin))
	assert.True(t, Allows(RoleUser, RoleUser))
	assert.False(t, Allows(RoleAdmin, RoleSuperAdmin))
}
