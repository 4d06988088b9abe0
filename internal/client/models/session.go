package models

import "github.com/mpetrov/taskkeeper/internal/api"

// Session is the cached login state persisted in the "session" collection.
// It is a cache of the authenticated identity, not the source of truth:
// user data lives in the users collection and can change underneath it.
type Session struct {
	Token string   `json:"token"`
	User  api.User `json:"user"`
}
