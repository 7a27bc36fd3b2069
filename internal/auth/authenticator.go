// Package auth implements the dashboard's login gate.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned by Login when the pair is rejected.
var ErrInvalidCredentials = errors.New("invalid credentials")

// RejectionMessage is shown when a login attempt fails.
const RejectionMessage = "Incorrect username or password."

// Authenticator verifies a username and password pair.
type Authenticator interface {
	Verify(username, password string) bool
}

// StaticCredentials accepts exactly one username and password. Only a bcrypt
// hash of the password is kept in memory.
type StaticCredentials struct {
	username     string
	passwordHash []byte
}

// NewStaticCredentials hashes password and returns the authenticator.
func NewStaticCredentials(username, password string) (*StaticCredentials, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing failed: %w", err)
	}
	return &StaticCredentials{username: username, passwordHash: hash}, nil
}

func (s *StaticCredentials) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) == nil
	return userOK && passOK
}

// Session is the per-client login state.
type Session struct {
	LoggedIn bool   `json:"logged_in"`
	Username string `json:"username,omitempty"`
}

// Login checks the credentials. On failure the zero Session is returned, so
// the caller's logged-in flag stays false.
func Login(a Authenticator, username, password string) (Session, error) {
	if !a.Verify(username, password) {
		return Session{}, ErrInvalidCredentials
	}
	return Session{LoggedIn: true, Username: username}, nil
}
