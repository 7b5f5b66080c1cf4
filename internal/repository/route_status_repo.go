package repository

import (
	"context"

	"gorm.io/gorm"

	"truck_dispatch/internal/models"
)

type RouteStatusRepository interface {
	List(ctx context.Context) ([]models.RouteStatus, error)
	GetByID(ctx context.Context, id uint) (*models.RouteStatus, error)
	GetByName(ctx context.Context, name string) (*models.RouteStatus, error)
	GetDefault(ctx context.Context) (*models.RouteStatus, error)
	Create(ctx context.Context, status *models.RouteStatus) error
	Update(ctx context.Context, status *models.RouteStatus) error
	Delete(ctx context.Context, id uint) error
	// ClearDefault unsets is_default on every row.
	ClearDefault(ctx context.Context) error
	MarkDefault(ctx context.Context, id uint) error
	// Neighbor returns the status directly above (up) or below (down)
	// sortOrder in the display order.
	Neighbor(ctx context.Context, sortOrder int, up bool) (*models.RouteStatus, error)
	MaxSortOrder(ctx context.Context) (int, error)
}

type routeStatusRepo struct {
	db *gorm.DB
}

func (r *routeStatusRepo) List(ctx context.Context) ([]models.RouteStatus, error) {
	var statuses []models.RouteStatus
	err := r.db.WithContext(ctx).
		Order("sort_order ASC").
		Order("id ASC").
		Find(&statuses).Error
	return statuses, err
}

func (r *routeStatusRepo) GetByID(ctx context.Context, id uint) (*models.RouteStatus, error) {
	var status models.RouteStatus
	if err := r.db.WithContext(ctx).First(&status, id).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *routeStatusRepo) GetByName(ctx context.Context, name string) (*models.RouteStatus, error) {
	var status models.RouteStatus
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&status).Error
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *routeStatusRepo) GetDefault(ctx context.Context) (*models.RouteStatus, error) {
	var status models.RouteStatus
	err := r.db.WithContext(ctx).Where("is_default = ?", true).First(&status).Error
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *routeStatusRepo) Create(ctx context.Context, status *models.RouteStatus) error {
	return r.db.WithContext(ctx).Create(status).Error
}

func (r *routeStatusRepo) Update(ctx context.Context, status *models.RouteStatus) error {
	return r.db.WithContext(ctx).Save(status).Error
}

func (r *routeStatusRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.RouteStatus{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *routeStatusRepo) ClearDefault(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&models.RouteStatus{}).
		Where("is_default = ?", true).
		Update("is_default", false).Error
}

func (r *routeStatusRepo) MarkDefault(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.RouteStatus{}).
		Where("id = ?", id).
		Update("is_default", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *routeStatusRepo) Neighbor(ctx context.Context, sortOrder int, up bool) (*models.RouteStatus, error) {
	q := r.db.WithContext(ctx)
	if up {
		q = q.Where("sort_order < ?", sortOrder).Order("sort_order DESC")
	} else {
		q = q.Where("sort_order > ?", sortOrder).Order("sort_order ASC")
	}
	var status models.RouteStatus
	if err := q.First(&status).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *routeStatusRepo) MaxSortOrder(ctx context.Context) (int, error) {
	var max int
	err := r.db.WithContext(ctx).
		Model(&models.RouteStatus{}).
		Select("COALESCE(MAX(sort_order), 0)").
		Scan(&max).Error
	return max, err
}
