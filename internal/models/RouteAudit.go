package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Audit actions on a route.
const (
	AuditCreated = "created"
	AuditUpdated = "updated"
	AuditDeleted = "deleted"
)

// AllFields marks an audit entry that carries a full snapshot.
const AllFields = "all"

// RouteAudit is an append-only record of one change to a route. RouteID is
// not a foreign key so the history outlives the route.
type RouteAudit struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	RouteID       uint              `gorm:"not null;index" json:"route_id"`
	Status        string            `gorm:"type:varchar(20);not null" json:"status"`
	Comment       string            `json:"comment"`
	UserName      string            `json:"user_name"`
	ChangedFields pq.StringArray    `gorm:"type:text[]" json:"changed_fields"`
	OldValues     datatypes.JSONMap `gorm:"type:jsonb" json:"old_values"`
	NewValues     datatypes.JSONMap `gorm:"type:jsonb" json:"new_values"`
	CreatedAt     time.Time         `json:"created_at"`
}

func (RouteAudit) TableName() string { return "route_audits" }

// RouteComment is a single entry in a route's comment thread.
type RouteComment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RouteID   uint      `gorm:"not null;index" json:"route_id"`
	Text      string    `gorm:"not null" json:"text"`
	By        string    `gorm:"column:author;not null" json:"by"`
	CreatedAt time.Time `json:"created_at"`
}

func (RouteComment) TableName() string { return "route_comments" }
