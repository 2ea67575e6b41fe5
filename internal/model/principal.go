package model

import (
	"strings"
	"time"
)

// PrincipalID identifies an admin or a user within its own store
type PrincipalID string

// PrincipalType tags which store a principal came from
type PrincipalType string

const (
	PrincipalAdmin PrincipalType = "admin"
	PrincipalUser  PrincipalType = "user"
)

// Valid reports whether t is one of the known principal types
func (t PrincipalType) Valid() bool {
	return t == PrincipalAdmin || t == PrincipalUser
}

// Principal is an authenticated identity: either an *Admin or a *User
type Principal interface {
	PrincipalID() PrincipalID
	PrincipalType() PrincipalType
}

// Admin is a back-office administrator
type Admin struct {
	ID            PrincipalID
	FirstName     string
	LastName      string
	Email         string
	Password      string // bcrypt hash, or plaintext for records predating hashing
	ContactNumber string
	Gender        string
	Hobby         []string
	Description   string
	ProfileImage  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (a *Admin) PrincipalID() PrincipalID     { return a.ID }
func (a *Admin) PrincipalType() PrincipalType { return PrincipalAdmin }

// FullName joins first and last name
func (a *Admin) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// User is a regular site user
type User struct {
	ID        PrincipalID
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
}

func (u *User) PrincipalID() PrincipalID     { return u.ID }
func (u *User) PrincipalType() PrincipalType { return PrincipalUser }

var (
	_ Principal = (*Admin)(nil)
	_ Principal = (*User)(nil)
)

// NormalizeEmail lowercases and trims an email used as a login identifier
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// hashedCredentialPrefix marks a bcrypt hash
const hashedCredentialPrefix = "$2"

// IsHashedCredential reports whether a stored password is a bcrypt hash
func IsHashedCredential(stored string) bool {
	return strings.HasPrefix(stored, hashedCredentialPrefix)
}
