package models

import "time"

// RouteStatus is a named, colored label routes can be put in. Exactly one
// status is the default.
type RouteStatus struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Color     string    `gorm:"type:varchar(7);not null" json:"color"`
	IsDefault bool      `gorm:"not null;default:false" json:"is_default"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (RouteStatus) TableName() string { return "route_statuses" }
