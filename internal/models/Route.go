package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// StatusDrivingPreviousRoute is the only status with extra rules: a route
// in this status must name at least one route it continues.
const StatusDrivingPreviousRoute = "Driving previous route"

// Mileage sources recorded on a route.
const (
	MileageManual    = "manual"
	MileageSameState = "same_state"
	MileageStatePair = "state_pair"
	MileageZipDelta  = "zip_delta"
	MileageHaversine = "haversine"
	MileageFallback  = "fallback"
)

// Route is one dispatched load for a driver on a single date.
type Route struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	DriverID uint `gorm:"not null;index" json:"driver_id"`
	Date     Date `gorm:"type:date;not null;index" json:"date"`

	PickupCity     string `json:"pickup_city"`
	PickupState    string `json:"pickup_state"`
	PickupCounty   string `json:"pickup_county"`
	PickupZip      string `gorm:"type:varchar(5);not null" json:"pickup_zip"`
	DeliveryCity   string `json:"delivery_city"`
	DeliveryState  string `json:"delivery_state"`
	DeliveryCounty string `json:"delivery_county"`
	DeliveryZip    string `gorm:"type:varchar(5);not null" json:"delivery_zip"`

	// Mileage is nil until a ZIP pair has been estimated or a value was entered.
	Mileage       *int   `json:"mileage"`
	MileageSource string `gorm:"type:varchar(20)" json:"mileage_source"`

	Rate    decimal.Decimal     `gorm:"type:numeric(12,2);not null" json:"rate"`
	SoldFor decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"sold_for"`

	DivisionID *uint `json:"division_id"`

	Status string `gorm:"not null" json:"status"`
	// StatusColor is copied from the status catalog when the status is
	// assigned and is not refreshed when the catalog changes.
	StatusColor *string `gorm:"type:varchar(7)" json:"status_color"`

	CustomerLoadNumber string        `json:"customer_load_number"`
	PreviousRouteIDs   pq.Int64Array `gorm:"column:previous_route_ids;type:bigint[]" json:"previous_route_ids"`

	LastCommentBy *string    `json:"last_comment_by"`
	LastCommentAt *time.Time `json:"last_comment_at"`
	LastEditedBy  *string    `json:"last_edited_by"`
	LastEditedAt  *time.Time `json:"last_edited_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Comments []RouteComment `gorm:"foreignKey:RouteID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

func (Route) TableName() string { return "routes" }
