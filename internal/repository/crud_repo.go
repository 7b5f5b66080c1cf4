package repository

import (
	"context"

	"gorm.io/gorm"
)

// CrudRepository is the data access used by plain reference tables.
type CrudRepository[T any] interface {
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, row *T) error
	Update(ctx context.Context, row *T) error
	Delete(ctx context.Context, id uint) error
}

type crudRepo[T any] struct {
	db    *gorm.DB
	order string
}

func newCrudRepo[T any](db *gorm.DB, order string) CrudRepository[T] {
	return &crudRepo[T]{db: db, order: order}
}

func (r *crudRepo[T]) List(ctx context.Context) ([]T, error) {
	var rows []T
	err := r.db.WithContext(ctx).Order(r.order).Find(&rows).Error
	return rows, err
}

func (r *crudRepo[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	var row T
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *crudRepo[T]) Create(ctx context.Context, row *T) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// Update writes every column except created_at.
func (r *crudRepo[T]) Update(ctx context.Context, row *T) error {
	return r.db.WithContext(ctx).Omit("created_at").Save(row).Error
}

// Delete returns gorm.ErrRecordNotFound when no row has id.
func (r *crudRepo[T]) Delete(ctx context.Context, id uint) error {
	var row T
	res := r.db.WithContext(ctx).Delete(&row, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
