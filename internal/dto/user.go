package dto

import (
	"encoding/json"
	"strings"
)

// Trimmed is a string that drops surrounding whitespace while decoding, so
// binding rules run on the value that gets stored. `"  a  "` must not satisfy
// min=3, and a padded but otherwise valid email must not fail `email`.
type Trimmed string

func (t *Trimmed) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*t = Trimmed(strings.TrimSpace(s))
	return nil
}

// RegisterRequest is the JSON body for POST /auth/register.
type RegisterRequest struct {
	Username Trimmed `json:"username" binding:"required,min=3,max=30"`
	Email    Trimmed `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=6"`
}

// LoginRequest is the JSON body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public view of a user. The password hash is never part
// of any response.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}
