package staff

import (
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

type Staff struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session is the server side of a login; the browser only holds ID.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	Staff     Staff     `json:"staff"`
	CreatedAt time.Time `json:"created_at"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is what the backend hands back on auth/login.
type LoginResult struct {
	Token string `json:"token"`
	Staff Staff  `json:"staff"`
}
