package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Driver struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	Name          string  `gorm:"not null" json:"name" binding:"required"`
	Phone         string  `json:"phone"`
	Email         string  `json:"email"`
	LicenseNumber *string `gorm:"unique" json:"license_number"`
	// Percentage is the driver's commission on sold-for amounts, 0-100.
	Percentage decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"percentage"`
	DivisionID *uint           `json:"division_id"`
	TruckID    *uint           `json:"truck_id"`
	TrailerID  *uint           `json:"trailer_id"`
	IsActive   bool            `gorm:"not null" json:"is_active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (d *Driver) SetID(id uint)     { d.ID = id }
func (d *Driver) SetActive(on bool) { d.IsActive = on }
