package models

import "time"

// Truck is a power unit.
type Truck struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UnitNumber  string    `gorm:"uniqueIndex;not null" json:"unit_number" binding:"required"`
	Make        string    `json:"make"`
	Model       string    `json:"model"`
	Year        int       `json:"year"`
	VIN         string    `gorm:"column:vin" json:"vin"`
	PlateNumber string    `json:"plate_number"`
	IsActive    bool      `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (t *Truck) SetID(id uint)     { t.ID = id }
func (t *Truck) SetActive(on bool) { t.IsActive = on }

type Trailer struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UnitNumber  string    `gorm:"uniqueIndex;not null" json:"unit_number" binding:"required"`
	TrailerType string    `json:"trailer_type"`
	PlateNumber string    `json:"plate_number"`
	IsActive    bool      `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (t *Trailer) SetID(id uint)     { t.ID = id }
func (t *Trailer) SetActive(on bool) { t.IsActive = on }
