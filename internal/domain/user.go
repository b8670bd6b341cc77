package domain

import "time"

// User represents an account that can own tasks. Accounts are created and
// destroyed by an external account-management collaborator; this core only
// reads them.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"` // bcrypt hash
	CreatedAt time.Time `json:"created_at"`
}
