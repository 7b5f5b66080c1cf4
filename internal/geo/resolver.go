package geo

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"truck_dispatch/internal/models"
)

// ErrZipNotFound is returned when a ZIP is neither cached nor built in.
// Callers treat it as "location unknown", not as a failure.
var ErrZipNotFound = errors.New("zip code not found")

// ZipStore is the persisted ZIP cache.
type ZipStore interface {
	GetByZip(ctx context.Context, zip string) (*models.ZipCode, error)
	Create(ctx context.Context, z *models.ZipCode) error
	UpdateByZip(ctx context.Context, z *models.ZipCode) error
}

// Resolver maps ZIP codes to locations, reading the zip_codes table first
// and the built-in table second.
type Resolver struct {
	store ZipStore
}

func NewResolver(store ZipStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the location of zip or ErrZipNotFound. Hits on the
// built-in table are written back to the store; a failed write is logged
// and does not fail the lookup.
func (r *Resolver) Resolve(ctx context.Context, zip string) (*models.ZipCode, error) {
	zip = strings.TrimSpace(zip)
	if !ValidZip(zip) {
		return nil, ErrZipNotFound
	}

	cached, err := r.store.GetByZip(ctx, zip)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.WithError(err).WithField("zip", zip).Warn("Resolve: zip cache lookup failed, using built-in table")
	}

	loc, ok := LookupEmbedded(zip)
	if !ok {
		return nil, ErrZipNotFound
	}

	z := loc.ZipCode()
	if err := r.Save(ctx, z); err != nil {
		logrus.WithError(err).WithField("zip", zip).Warn("Resolve: could not cache zip code")
	}
	return z, nil
}

// Save inserts z, falling back to an update by zip when another writer
// inserted the same ZIP first.
func (r *Resolver) Save(ctx context.Context, z *models.ZipCode) error {
	err := r.store.Create(ctx, z)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return r.store.UpdateByZip(ctx, z)
	}
	return err
}

// ZipCode converts a built-in location to its cache row.
func (l Location) ZipCode() *models.ZipCode {
	lat, lng := l.Lat, l.Lng
	return &models.ZipCode{
		ZipCode:   l.Zip,
		City:      l.City,
		State:     l.State,
		County:    l.County,
		Latitude:  &lat,
		Longitude: &lng,
	}
}
