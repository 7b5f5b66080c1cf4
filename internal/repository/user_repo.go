package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"truck_dispatch/internal/models"
)

type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Permissions(ctx context.Context, userID uint) ([]models.UserPermission, error)
	// ReplacePermissions swaps the user's permission set for perms.
	ReplacePermissions(ctx context.Context, userID uint, perms []string) error
}

type userRepo struct {
	db *gorm.DB
}

func (r *userRepo) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Order("username ASC").Find(&users).Error
	return users, err
}

func (r *userRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Permissions", func(db *gorm.DB) *gorm.DB { return db.Order("permission ASC") }).
		First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
}

func (r *userRepo) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error
}

func (r *userRepo) Permissions(ctx context.Context, userID uint) ([]models.UserPermission, error) {
	var perms []models.UserPermission
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("permission ASC").
		Find(&perms).Error
	return perms, err
}

func (r *userRepo) ReplacePermissions(ctx context.Context, userID uint, perms []string) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.UserPermission{}).Error; err != nil {
		return err
	}
	if len(perms) == 0 {
		return nil
	}
	rows := make([]models.UserPermission, 0, len(perms))
	for _, p := range perms {
		rows = append(rows, models.UserPermission{UserID: userID, Permission: p})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}
