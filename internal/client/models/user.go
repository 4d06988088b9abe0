// Package models defines client-side data models used by the TaskKeeper CLI.
package models

import (
	"time"

	"github.com/mpetrov/taskkeeper/internal/api"
)

// User is a locally registered account, persisted in the "users" collection
// of the offline store. EncodedCredential holds the codec-encoded password;
// it never leaves the local database.
type User struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	EncodedCredential string    `json:"encodedCredential"`
	CreatedAt         time.Time `json:"createdAt"`
}

// ToAPI converts the local record to its public representation,
// dropping the credential.
func (u *User) ToAPI() api.User {
	return api.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
