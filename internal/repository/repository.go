package repository

import (
	"context"

	"gorm.io/gorm"

	"truck_dispatch/internal/models"
)

// Store is the aggregate entry point to every repository. A Store obtained
// inside Transaction routes all calls through the same database transaction.
type Store interface {
	Routes() RouteRepository
	RouteAudits() RouteAuditRepository
	RouteComments() RouteCommentRepository
	RouteStatuses() RouteStatusRepository
	WeeklyRoutes() WeeklyRouteRepository
	ZipCodes() ZipCodeRepository
	Users() UserRepository

	Drivers() CrudRepository[models.Driver]
	Dispatchers() CrudRepository[models.Dispatcher]
	Trucks() CrudRepository[models.Truck]
	Trailers() CrudRepository[models.Trailer]
	Divisions() CrudRepository[models.Division]

	// Transaction runs fn in a database transaction. The transaction is
	// rolled back when fn returns an error.
	Transaction(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore returns the GORM implementation of Store.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Routes() RouteRepository               { return &routeRepo{db: s.db} }
func (s *gormStore) RouteAudits() RouteAuditRepository     { return &routeAuditRepo{db: s.db} }
func (s *gormStore) RouteComments() RouteCommentRepository { return &routeCommentRepo{db: s.db} }
func (s *gormStore) RouteStatuses() RouteStatusRepository  { return &routeStatusRepo{db: s.db} }
func (s *gormStore) WeeklyRoutes() WeeklyRouteRepository   { return &weeklyRouteRepo{db: s.db} }
func (s *gormStore) ZipCodes() ZipCodeRepository           { return &zipCodeRepo{db: s.db} }
func (s *gormStore) Users() UserRepository                 { return &userRepo{db: s.db} }

func (s *gormStore) Drivers() CrudRepository[models.Driver] {
	return newCrudRepo[models.Driver](s.db, "name ASC")
}

func (s *gormStore) Dispatchers() CrudRepository[models.Dispatcher] {
	return newCrudRepo[models.Dispatcher](s.db, "name ASC")
}

func (s *gormStore) Trucks() CrudRepository[models.Truck] {
	return newCrudRepo[models.Truck](s.db, "unit_number ASC")
}

func (s *gormStore) Trailers() CrudRepository[models.Trailer] {
	return newCrudRepo[models.Trailer](s.db, "unit_number ASC")
}

func (s *gormStore) Divisions() CrudRepository[models.Division] {
	return newCrudRepo[models.Division](s.db, "name ASC")
}

func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
