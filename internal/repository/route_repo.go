package repository

import (
	"context"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"truck_dispatch/internal/models"
)

// RouteFilter narrows a route listing. Zero values are ignored; set fields
// are AND-combined.
type RouteFilter struct {
	DriverID   uint
	DivisionID uint
	Status     string
	StartDate  *models.Date
	EndDate    *models.Date
}

type RouteRepository interface {
	List(ctx context.Context, f RouteFilter) ([]models.Route, error)
	GetByID(ctx context.Context, id uint) (*models.Route, error)
	Create(ctx context.Context, route *models.Route) error
	Update(ctx context.Context, route *models.Route) error
	Delete(ctx context.Context, id uint) error
	UpdateLastComment(ctx context.Context, id uint, by string, at time.Time) error
	// LatestBefore returns the driver's most recent route dated before the
	// given day.
	LatestBefore(ctx context.Context, driverID uint, before models.Date) (*models.Route, error)
}

type routeRepo struct {
	db *gorm.DB
}

func (r *routeRepo) List(ctx context.Context, f RouteFilter) ([]models.Route, error) {
	q := r.db.WithContext(ctx).Model(&models.Route{})
	if f.DriverID != 0 {
		q = q.Where("driver_id = ?", f.DriverID)
	}
	if f.DivisionID != 0 {
		q = q.Where("division_id = ?", f.DivisionID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.StartDate != nil {
		q = q.Where("date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("date <= ?", *f.EndDate)
	}

	var routes []models.Route
	err := q.Order("date DESC").Order("id DESC").Find(&routes).Error
	return routes, err
}

func (r *routeRepo) GetByID(ctx context.Context, id uint) (*models.Route, error) {
	var route models.Route
	if err := r.db.WithContext(ctx).First(&route, id).Error; err != nil {
		return nil, err
	}
	return &route, nil
}

func (r *routeRepo) Create(ctx context.Context, route *models.Route) error {
	normalizePrevious(route)
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(route).Error
}

// Update writes every column of route. Comments are managed separately.
func (r *routeRepo) Update(ctx context.Context, route *models.Route) error {
	normalizePrevious(route)
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(route).Error
}

// previous_route_ids is NOT NULL and a nil pq.Int64Array binds NULL.
func normalizePrevious(route *models.Route) {
	if route.PreviousRouteIDs == nil {
		route.PreviousRouteIDs = pq.Int64Array{}
	}
}

func (r *routeRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Route{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *routeRepo) UpdateLastComment(ctx context.Context, id uint, by string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Route{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"last_comment_by": by,
			"last_comment_at": at,
		}).Error
}

func (r *routeRepo) LatestBefore(ctx context.Context, driverID uint, before models.Date) (*models.Route, error) {
	var route models.Route
	err := r.db.WithContext(ctx).
		Where("driver_id = ? AND date < ?", driverID, before).
		Order("date DESC").
		Order("id DESC").
		First(&route).Error
	if err != nil {
		return nil, err
	}
	return &route, nil
}

type RouteAuditRepository interface {
	Create(ctx context.Context, audit *models.RouteAudit) error
	ListByRoute(ctx context.Context, routeID uint) ([]models.RouteAudit, error)
}

type routeAuditRepo struct {
	db *gorm.DB
}

func (r *routeAuditRepo) Create(ctx context.Context, audit *models.RouteAudit) error {
	return r.db.WithContext(ctx).Create(audit).Error
}

// ListByRoute returns the newest entries first.
func (r *routeAuditRepo) ListByRoute(ctx context.Context, routeID uint) ([]models.RouteAudit, error) {
	var audits []models.RouteAudit
	err := r.db.WithContext(ctx).
		Where("route_id = ?", routeID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&audits).Error
	return audits, err
}

type RouteCommentRepository interface {
	Create(ctx context.Context, comment *models.RouteComment) error
	ListByRoute(ctx context.Context, routeID uint) ([]models.RouteComment, error)
}

type routeCommentRepo struct {
	db *gorm.DB
}

func (r *routeCommentRepo) Create(ctx context.Context, comment *models.RouteComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// ListByRoute returns the thread oldest first.
func (r *routeCommentRepo) ListByRoute(ctx context.Context, routeID uint) ([]models.RouteComment, error) {
	var comments []models.RouteComment
	err := r.db.WithContext(ctx).
		Where("route_id = ?", routeID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&comments).Error
	return comments, err
}
