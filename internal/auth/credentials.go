package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Credentials holds the single account allowed to log in. Only a bcrypt hash
// of the password is kept in memory.
type Credentials struct {
	username     string
	passwordHash []byte
}

// NewCredentials hashes password and returns the account checker.
func NewCredentials(username, password string) (*Credentials, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return &Credentials{
		username:     username,
		passwordHash: hash,
	}, nil
}

// Check reports whether username and password match the configured account.
func (c *Credentials) Check(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(c.passwordHash, []byte(password)) == nil
	return userOK && passOK
}

// Username returns the configured account name.
func (c *Credentials) Username() string {
	return c.username
}

// BearerToken extracts the token from an Authorization header value. The
// header must begin with "Bearer "; the token runs to the next space.
func BearerToken(header string) (string, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", ErrAuthRequired
	}

	token := header[len(prefix):]
	if i := strings.IndexByte(token, ' '); i >= 0 {
		token = token[:i]
	}
	return token, nil
}
