// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Role represents a user's permission level.
type Role string

const (
	// RoleUser is the default role for registered users.
	RoleUser Role = "user"
	// RoleAdmin grants catalog management rights.
	RoleAdmin Role = "admin"
)

// User represents a registered account.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:60;not null;uniqueIndex" json:"email"`
	Username  string    `gorm:"size:30;not null;uniqueIndex" json:"username"`
	FirstName string    `gorm:"size:50" json:"first_name"`
	LastName  string    `gorm:"size:50" json:"last_name"`
	Password  string    `gorm:"not null" json:"-"`
	Role      Role      `gorm:"type:varchar(20);default:'user'" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user may manage catalog reference data.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserView is the representation of a user rendered to a viewer.
// IsSubscribed is relative to the requesting viewer and false for
// an anonymous one.
type UserView struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// NewUserView builds a UserView for the given user.
func NewUserView(u *User, isSubscribed bool) UserView {
	return UserView{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: isSubscribed,
	}
}
