package models

import "time"

// User is a registered account. It is created on signup and never changed
// afterwards.
type User struct {
	ID           string
	Name         string
	UserName     string
	Email        string
	PasswordHash []byte
	URL          string
	CreatedAt    time.Time
}

// Principal is the identity resolved from a bearer token for the duration of
// one request.
type Principal struct {
	ID       string
	UserName string
}

// Principal returns the request identity for u.
func (u *User) Principal() Principal {
	return Principal{ID: u.ID, UserName: u.UserName}
}
