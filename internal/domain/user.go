package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for user operations.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

// User status values.
const (
	UserStatusActive    = "ACTIVE"
	UserStatusInactive  = "INACTIVE"
	UserStatusSuspended = "SUSPENDED"
)

// User represents a registered student
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser returns a new ACTIVE User with the given fields. ID is typically set by the repository on create.
func NewUser(name, lastName, email string, createdAt time.Time) *User {
	return &User{
		Name:      name,
		LastName:  lastName,
		Email:     email,
		Status:    UserStatusActive,
		CreatedAt: createdAt,
	}
}

// UserFilter holds optional filters for listing users.
type UserFilter struct {
	Status     string
	Search     string
	Pagination PaginationParams
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, filter UserFilter) ([]*User, error)
	Update(ctx context.Context, user *User) error
}

// UserService defines sign-up, login, and user profile operations.
type UserService interface {
	SignUp(ctx context.Context, name, lastName, email, password string) (*User, error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, filter UserFilter) ([]*User, error)
}
