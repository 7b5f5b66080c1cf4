package models

import "time"

// ZipCode is a cached ZIP code location.
type ZipCode struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ZipCode   string    `gorm:"type:varchar(5);uniqueIndex;not null" json:"zip_code"`
	City      string    `json:"city"`
	State     string    `gorm:"type:varchar(2)" json:"state"`
	County    string    `json:"county"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ZipCode) TableName() string { return "zip_codes" }

// HasCoordinates reports whether both latitude and longitude are known.
func (z *ZipCode) HasCoordinates() bool {
	return z != nil && z.Latitude != nil && z.Longitude != nil
}
