package users

import (
	"strings"

	"github.com/jrsteele09/go-price-dashboard/market"
)

// User is the account profile reported by the backend. The client treats it
// as read only; profile changes go through the gateway and come back as a
// fresh User.
type User struct {
	ID        int         `json:"id"`                   // Unique identifier for the user
	Email     string      `json:"email"`                // User's email address
	Username  string      `json:"username"`             // Unique username
	FirstName string      `json:"first_name,omitempty"` // First name of the user
	LastName  string      `json:"last_name,omitempty"`  // Last name of the user
	IsActive  bool        `json:"is_active"`            // Whether the account may sign in
	IsAdmin   bool        `json:"is_admin"`             // Whether the account holds admin rights
	CreatedAt market.Time `json:"created_at"`           // When the account registered
	UpdatedAt market.Time `json:"updated_at"`
}

// DisplayName returns the user's full name, falling back to the username
// when no name parts are set.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name != "" {
		return name
	}
	return u.Username
}
