package models

import "time"

type Dispatcher struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"name" binding:"required"`
	Email      *string   `gorm:"unique" json:"email"`
	Phone      string    `json:"phone"`
	DivisionID *uint     `json:"division_id"`
	IsActive   bool      `gorm:"not null" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (d *Dispatcher) SetID(id uint)     { d.ID = id }
func (d *Dispatcher) SetActive(on bool) { d.IsActive = on }
