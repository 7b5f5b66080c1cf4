package repository

import (
	"context"

	"gorm.io/gorm"

	"truck_dispatch/internal/models"
)

type ZipCodeRepository interface {
	GetByZip(ctx context.Context, zip string) (*models.ZipCode, error)
	Create(ctx context.Context, z *models.ZipCode) error
	UpdateByZip(ctx context.Context, z *models.ZipCode) error
}

type zipCodeRepo struct {
	db *gorm.DB
}

func (r *zipCodeRepo) GetByZip(ctx context.Context, zip string) (*models.ZipCode, error) {
	var z models.ZipCode
	if err := r.db.WithContext(ctx).Where("zip_code = ?", zip).First(&z).Error; err != nil {
		return nil, err
	}
	return &z, nil
}

func (r *zipCodeRepo) Create(ctx context.Context, z *models.ZipCode) error {
	return r.db.WithContext(ctx).Create(z).Error
}

func (r *zipCodeRepo) UpdateByZip(ctx context.Context, z *models.ZipCode) error {
	return r.db.WithContext(ctx).
		Model(&models.ZipCode{}).
		Where("zip_code = ?", z.ZipCode).
		Updates(map[string]interface{}{
			"city":      z.City,
			"state":     z.State,
			"county":    z.County,
			"latitude":  z.Latitude,
			"longitude": z.Longitude,
		}).Error
}
