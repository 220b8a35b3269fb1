package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var ErrUserNotFound = errors.New("person with this credentials not found")
var ErrEmailTaken = errors.New("email is already used")
var ErrInvalidCredentials = errors.New("invalid credentials")

var ErrTokenInvalid = errors.New("invalid token")
var ErrTokenExpired = errors.New("token expired")

// User models a registered person. The email is the identity handle: it is
// the token subject and the value compared by every authorization check.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
