// README: User accounts and roles.
package user

import "cabway/internal/types"

type Role string

const (
	RoleUser   Role = "user"
	RoleAdmin  Role = "admin"
	RoleDriver Role = "cabDriver"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleDriver:
		return true
	}
	return false
}

// User is an account. PasswordHash is a bcrypt hash and never leaves
// the service layer.
type User struct {
	ID           types.ID
	Name         string
	Email        string
	PasswordHash string
	Role         Role
}
