package services

import (
	"context"

	"truck_dispatch/internal/repository"
)

// Identifiable is a reference row whose id can be assigned from the URL.
type Identifiable[T any] interface {
	*T
	SetID(id uint)
}

type ReferenceService[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, row *T) error
	Update(ctx context.Context, id uint, row *T) error
	Delete(ctx context.Context, id uint) error
}

// referenceService is plain CRUD over one reference table.
type referenceService[T any, PT Identifiable[T]] struct {
	store  repository.Store
	repo   func(repository.Store) repository.CrudRepository[T]
	entity string
}

func NewReferenceService[T any, PT Identifiable[T]](store repository.Store, entity string, repo func(repository.Store) repository.CrudRepository[T]) ReferenceService[T] {
	return &referenceService[T, PT]{store: store, repo: repo, entity: entity}
}

func (s *referenceService[T, PT]) List(ctx context.Context) ([]T, error) {
	rows, err := s.repo(s.store).List(ctx)
	if err != nil {
		return nil, storeErr("list "+s.entity, s.entity, err)
	}
	return rows, nil
}

func (s *referenceService[T, PT]) Get(ctx context.Context, id uint) (*T, error) {
	row, err := s.repo(s.store).GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("get "+s.entity, s.entity, err)
	}
	return row, nil
}

func (s *referenceService[T, PT]) Create(ctx context.Context, row *T) error {
	PT(row).SetID(0)
	if err := s.repo(s.store).Create(ctx, row); err != nil {
		return storeErr("create "+s.entity, s.entity, err)
	}
	return nil
}

func (s *referenceService[T, PT]) Update(ctx context.Context, id uint, row *T) error {
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := s.repo(tx).GetByID(ctx, id); err != nil {
			return err
		}
		PT(row).SetID(id)
		if err := s.repo(tx).Update(ctx, row); err != nil {
			return err
		}
		fresh, err := s.repo(tx).GetByID(ctx, id)
		if err != nil {
			return err
		}
		*row = *fresh
		return nil
	})
	if err != nil {
		return storeErr("update "+s.entity, s.entity, err)
	}
	return nil
}

func (s *referenceService[T, PT]) Delete(ctx context.Context, id uint) error {
	if err := s.repo(s.store).Delete(ctx, id); err != nil {
		return storeErr("delete "+s.entity, s.entity, err)
	}
	return nil
}
