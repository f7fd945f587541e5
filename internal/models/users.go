package models

import "time"

const RoleAdmin = "admin"

// User is a staff profile row in the users table. The ID always matches the
// auth service's user id for the same account; no uuid hook here because the
// id is assigned by the auth service at signup, never generated locally.
type User struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	Email      string    `gorm:"uniqueIndex;not null" json:"email"`
	Role       string    `gorm:"default:'user';not null" json:"role"` // only 2 roles: "user", "admin" for now
	Subscribed bool      `gorm:"default:false" json:"subscribed"`
	CreatedAt  time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user may perform destructive dashboard actions.
// The table store enforces this server-side as well; this is the UI-facing check.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
