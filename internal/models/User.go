package models

import "time"

type User struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Username      string     `gorm:"uniqueIndex;not null" json:"username"`
	FullName      string     `json:"full_name"`
	Email         string     `json:"email"`
	PasswordHash  string     `gorm:"not null" json:"-"`
	Role          string     `gorm:"not null;default:dispatcher" json:"role"` // "admin", "dispatcher", "viewer"
	IsActive      bool       `gorm:"not null" json:"is_active"`
	DeactivatedAt *time.Time `json:"deactivated_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Permissions []UserPermission `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"permissions,omitempty"`
}

type UserPermission struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_permission" json:"user_id"`
	Permission string    `gorm:"not null;uniqueIndex:idx_user_permission" json:"permission"`
	CreatedAt  time.Time `json:"created_at"`
}
