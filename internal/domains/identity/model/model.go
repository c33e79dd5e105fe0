package model

import (
	"kampus/infras/jwt"
	"kampus/shared/constant"
	"time"
)

const EntityName = "account"

type Role string

const (
	RoleAdmin Role = constant.RoleAdmin
	RoleUser  Role = constant.RoleUser
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Account is a directory entry. The password is only ever kept as a bcrypt hash.
type Account struct {
	User
	PasswordHash string `json:"passwordHash"`
}

// Session is the signed-in user as persisted between runs.
type Session struct {
	User
	jwt.TokenPair
}

// Identity is what the rest of the system knows about the caller.
type Identity struct {
	UserID        string
	Role          Role
	Authenticated bool
}

func (i Identity) IsAdmin() bool {
	return i.Authenticated && i.Role == RoleAdmin
}

func (i Identity) CanManageFacilities() bool {
	return i.IsAdmin()
}

func (i Identity) CanDecideReservations() bool {
	return i.IsAdmin()
}

// CanViewReservationsOf reports whether the caller may list another user's reservations.
func (i Identity) CanViewReservationsOf(userID string) bool {
	return i.IsAdmin() || (i.Authenticated && i.UserID == userID)
}
