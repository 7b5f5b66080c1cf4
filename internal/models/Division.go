package models

import "time"

// Division is a booking entity routes and drivers are billed under.
type Division struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name" binding:"required"`
	Code      string    `json:"code"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *Division) SetID(id uint) { d.ID = id }
