package models

import "time"

// Roles a user can hold. RoleAdmin may edit or delete any book and delete users.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// User represents a book club member.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"not null" validate:"required"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null" validate:"required"`
	Role      string    `json:"role" gorm:"default:member"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
