package models

import "time"

// Administrator is a credential-store row. PasswordHash never leaves the
// repository/service boundary; responses carry Identity instead.
type Administrator struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is the public projection of an administrator, safe to return to
// clients and to embed in token claims.
type Identity struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Identity strips the credential fields from a.
func (a *Administrator) Identity() Identity {
	return Identity{ID: a.ID, Name: a.Name, Email: a.Email}
}
