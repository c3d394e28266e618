// Package security implements account management, session tokens and the
// role gating used by the API. Roles are user, admin and super_admin;
// clients present the legacy display labels (Chieftain, IPMR).
package security

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/crypto/bcrypt"

	"github.com/mquezada/katutubo/internal/datastore"
	"github.com/mquezada/katutubo/internal/errors"
)

// Role values stored on accounts.
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// ErrInvalidCredentials is returned for unknown accounts and wrong
// passwords alike; callers must not be able to distinguish the two.
var ErrInvalidCredentials = errors.Newf("invalid credentials").
	Component("security").
	Category(errors.CategoryAuth).
	Build()

// Session is an authenticated bearer session.
type Session struct {
	Token       string    `json:"token"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Role        string    `json:"role"`
	RoleLabel   string    `json:"roleLabel"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// UserStore is the slice of the datastore the service needs.
type UserStore interface {
	UserByEmail(email string) (datastore.User, error)
	SaveUser(user *datastore.User) error
}

// Service issues and validates sessions.
type Service struct {
	store    UserStore
	sessions *cache.Cache
	ttl      time.Duration
	logger   *slog.Logger
}

// NewService creates a session service with the given token lifetime.
func NewService(store UserStore, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Service{
		store:    store,
		sessions: cache.New(ttl, 10*time.Minute),
		ttl:      ttl,
		logger:   slog.Default().With("service", "security"),
	}
}

// Login verifies credentials and returns a new session.
func (s *Service) Login(email, password string) (Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.store.UserByEmail(email)
	if err != nil {
		if errors.CategoryOf(err) == errors.CategoryNotFound {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	session := Session{
		Token:       uuid.NewString(),
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		RoleLabel:   RoleLabel(user.Role),
		ExpiresAt:   time.Now().Add(s.ttl),
	}
	s.sessions.Set(session.Token, session, s.ttl)
	s.logger.Info("user logged in", "email", user.Email, "role", user.Role)
	return session, nil
}

// Validate resolves a bearer token to its session.
func (s *Service) Validate(token string) (Session, bool) {
	v, ok := s.sessions.Get(token)
	if !ok {
		return Session{}, false
	}
	return v.(Session), true
}

// Logout invalidates a session token.
func (s *Service) Logout(token string) {
	s.sessions.Delete(token)
}

// CreateUser registers an account with a bcrypt password hash.
func (s *Service) CreateUser(email, password, displayName, role string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return errors.Newf("email and password are required").
			Component("security").
			Category(errors.CategoryValidation).
			Build()
	}
	if !ValidRole(role) {
		role = RoleUser
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.New(fmt.Errorf("hashing password: %w", err)).
			Component("security").
			Category(errors.CategoryAuth).
			Build()
	}
	user := datastore.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		Role:         role,
	}
	return s.store.SaveUser(&user)
}

// SeedAdmin creates the bootstrap super_admin account when it does not
// exist yet. Existing accounts are left untouched.
func (s *Service) SeedAdmin(email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	if _, err := s.store.UserByEmail(strings.ToLower(email)); err == nil {
		return nil
	}
	s.logger.Info("seeding bootstrap super_admin account", "email", email)
	return s.CreateUser(email, password, "Administrator", RoleSuperAdmin)
}

// ValidRole reports whether role is one of the known role values.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// RoleLabel maps a stored role to the display label clients expect.
// The labels predate the role rename and are kept for compatibility.
func RoleLabel(role string) string {
	switch role {
	case RoleSuperAdmin:
		return "IPMR"
	case RoleAdmin:
		return "Chieftain"
	default:
		return "Member"
	}
}

// roleRank orders roles for RequireRole checks.
func roleRank(role string) int {
	switch role {
	case RoleSuperAdmin:
		return 2
	case RoleAdmin:
		return 1
	default:
		return 0
	}
}

// Allows reports whether have satisfies the want requirement.
func Allows(have, want string) bool {
	return roleRank(have) >= roleRank(want)
}
