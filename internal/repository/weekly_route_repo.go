package repository

import (
	"context"

	"gorm.io/gorm"

	"truck_dispatch/internal/models"
)

// WeeklyRouteFilter narrows a weekly route listing. A week matches the date
// range when it overlaps it.
type WeeklyRouteFilter struct {
	StartDate    *models.Date
	EndDate      *models.Date
	DriverID     uint
	DivisionID   uint
	DispatcherID uint
}

type WeeklyRouteRepository interface {
	List(ctx context.Context, f WeeklyRouteFilter) ([]models.WeeklyRoute, error)
	GetByID(ctx context.Context, id uint) (*models.WeeklyRoute, error)
	Create(ctx context.Context, week *models.WeeklyRoute) error
	Update(ctx context.Context, week *models.WeeklyRoute) error

	// Details returns the week's slots ordered by day and sequence, each
	// with its route loaded.
	Details(ctx context.Context, weekID uint) ([]models.WeeklyRouteDetail, error)
	GetDetail(ctx context.Context, weekID, detailID uint) (*models.WeeklyRouteDetail, error)
	CountDay(ctx context.Context, weekID uint, day int) (int64, error)
	CreateDetail(ctx context.Context, detail *models.WeeklyRouteDetail) error
	DeleteDetail(ctx context.Context, detailID uint) error

	CreateAudit(ctx context.Context, audit *models.WeeklyRouteAudit) error
	Audits(ctx context.Context, weekID uint) ([]models.WeeklyRouteAudit, error)
}

type weeklyRouteRepo struct {
	db *gorm.DB
}

func (r *weeklyRouteRepo) List(ctx context.Context, f WeeklyRouteFilter) ([]models.WeeklyRoute, error) {
	q := r.db.WithContext(ctx).Model(&models.WeeklyRoute{})
	if f.StartDate != nil {
		q = q.Where("week_end_date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("week_start_date <= ?", *f.EndDate)
	}
	if f.DriverID != 0 {
		q = q.Where("driver_id = ?", f.DriverID)
	}
	if f.DivisionID != 0 {
		q = q.Where("division_id = ?", f.DivisionID)
	}
	if f.DispatcherID != 0 {
		q = q.Where("dispatcher_id = ?", f.DispatcherID)
	}

	var weeks []models.WeeklyRoute
	err := q.Order("week_start_date DESC").Order("id DESC").Find(&weeks).Error
	return weeks, err
}

func (r *weeklyRouteRepo) GetByID(ctx context.Context, id uint) (*models.WeeklyRoute, error) {
	var week models.WeeklyRoute
	if err := r.db.WithContext(ctx).First(&week, id).Error; err != nil {
		return nil, err
	}
	return &week, nil
}

func (r *weeklyRouteRepo) Create(ctx context.Context, week *models.WeeklyRoute) error {
	return r.db.WithContext(ctx).Create(week).Error
}

func (r *weeklyRouteRepo) Update(ctx context.Context, week *models.WeeklyRoute) error {
	return r.db.WithContext(ctx).Save(week).Error
}

func (r *weeklyRouteRepo) Details(ctx context.Context, weekID uint) ([]models.WeeklyRouteDetail, error) {
	var details []models.WeeklyRouteDetail
	err := r.db.WithContext(ctx).
		Preload("Route").
		Where("weekly_route_id = ?", weekID).
		Order("day_of_week ASC").
		Order("sequence_number ASC").
		Order("id ASC").
		Find(&details).Error
	return details, err
}

func (r *weeklyRouteRepo) GetDetail(ctx context.Context, weekID, detailID uint) (*models.WeeklyRouteDetail, error) {
	var detail models.WeeklyRouteDetail
	err := r.db.WithContext(ctx).
		Where("id = ? AND weekly_route_id = ?", detailID, weekID).
		First(&detail).Error
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *weeklyRouteRepo) CountDay(ctx context.Context, weekID uint, day int) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.WeeklyRouteDetail{}).
		Where("weekly_route_id = ? AND day_of_week = ?", weekID, day).
		Count(&n).Error
	return n, err
}

func (r *weeklyRouteRepo) CreateDetail(ctx context.Context, detail *models.WeeklyRouteDetail) error {
	return r.db.WithContext(ctx).Omit("Route").Create(detail).Error
}

func (r *weeklyRouteRepo) DeleteDetail(ctx context.Context, detailID uint) error {
	return r.db.WithContext(ctx).Delete(&models.WeeklyRouteDetail{}, detailID).Error
}

func (r *weeklyRouteRepo) CreateAudit(ctx context.Context, audit *models.WeeklyRouteAudit) error {
	return r.db.WithContext(ctx).Create(audit).Error
}

func (r *weeklyRouteRepo) Audits(ctx context.Context, weekID uint) ([]models.WeeklyRouteAudit, error) {
	var audits []models.WeeklyRouteAudit
	err := r.db.WithContext(ctx).
		Where("weekly_route_id = ?", weekID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&audits).Error
	return audits, err
}
