package models

import "time"

type Role string

const (
	RoleAnalyst   Role = "analyst"
	RoleManager   Role = "manager"
	RoleExecutive Role = "executive"
	RoleAdmin     Role = "admin"
)

// Roles lists every role a user can register with.
var Roles = []Role{RoleAnalyst, RoleManager, RoleExecutive, RoleAdmin}

func (r Role) Valid() bool {
	for _, v := range Roles {
		if r == v {
			return true
		}
	}
	return false
}

// User is an account record. PasswordHash is persisted in the store document
// but stripped from every API response (see dto.NewUserResponse).
type User struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"passwordHash"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Role         Role      `gorm:"size:20;not null" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	IsActive     bool      `gorm:"not null" json:"isActive"`
}
