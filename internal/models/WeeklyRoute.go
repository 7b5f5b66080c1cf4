package models

import "time"

// Weekly route audit actions.
const (
	WeeklyAuditCreated      = "created"
	WeeklyAuditUpdated      = "updated"
	WeeklyAuditRouteAdded   = "route_added"
	WeeklyAuditRouteRemoved = "route_removed"
)

// WeeklyRoute is a driver's schedule for one calendar week.
type WeeklyRoute struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	WeekStartDate Date      `gorm:"type:date;not null" json:"week_start_date"`
	WeekEndDate   Date      `gorm:"type:date;not null" json:"week_end_date"`
	DriverID      uint      `gorm:"not null;index" json:"driver_id"`
	DivisionID    *uint     `json:"division_id"`
	DispatcherID  *uint     `json:"dispatcher_id"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (WeeklyRoute) TableName() string { return "weekly_routes" }

// WeeklyRouteDetail places a route on a day of a weekly route. DayOfWeek is
// ISO numbered, Monday = 1 through Sunday = 7.
type WeeklyRouteDetail struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	WeeklyRouteID  uint      `gorm:"not null;index" json:"weekly_route_id"`
	RouteID        uint      `gorm:"not null" json:"route_id"`
	DayOfWeek      int       `gorm:"not null" json:"day_of_week"`
	SequenceNumber int       `gorm:"not null;default:1" json:"sequence_number"`
	CreatedAt      time.Time `json:"created_at"`

	Route *Route `gorm:"foreignKey:RouteID" json:"route,omitempty"`
}

func (WeeklyRouteDetail) TableName() string { return "weekly_route_details" }

// WeeklyRouteAudit records an action on a weekly route as free text.
type WeeklyRouteAudit struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	WeeklyRouteID uint      `gorm:"not null;index" json:"weekly_route_id"`
	Action        string    `gorm:"type:varchar(20);not null" json:"action"`
	Details       string    `json:"details"`
	UserName      string    `json:"user_name"`
	CreatedAt     time.Time `json:"created_at"`
}

func (WeeklyRouteAudit) TableName() string { return "weekly_route_audits" }
