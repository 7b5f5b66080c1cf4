package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"truck_dispatch/internal/geo"
	"truck_dispatch/internal/models"
)

// ZipLocation is a resolved ZIP with its point as GeoJSON.
type ZipLocation struct {
	models.ZipCode
	Geometry json.RawMessage `json:"geometry"`
}

type ZipInput struct {
	ZipCode   string   `json:"zip_code"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	County    string   `json:"county"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type ZipService interface {
	Lookup(ctx context.Context, zip string) (*ZipLocation, error)
	// Save upserts a ZIP row by zip code.
	Save(ctx context.Context, in ZipInput) (*models.ZipCode, error)
	Mileage(ctx context.Context, pickupZip, deliveryZip string) (geo.Estimate, error)
}

type zipService struct {
	resolver  *geo.Resolver
	estimator MileageEstimator
}

func NewZipService(resolver *geo.Resolver, estimator MileageEstimator) ZipService {
	return &zipService{resolver: resolver, estimator: estimator}
}

func (s *zipService) Lookup(ctx context.Context, zip string) (*ZipLocation, error) {
	z, err := s.resolver.Resolve(ctx, zip)
	if errors.Is(err, geo.ErrZipNotFound) {
		return nil, &NotFoundError{Entity: "ZIP code"}
	}
	if err != nil {
		return nil, fmt.Errorf("resolve zip: %w", err)
	}
	point, err := geo.PointGeoJSON(z)
	if err != nil {
		return nil, fmt.Errorf("encode zip geometry: %w", err)
	}
	return &ZipLocation{ZipCode: *z, Geometry: point}, nil
}

func (s *zipService) Save(ctx context.Context, in ZipInput) (*models.ZipCode, error) {
	z := &models.ZipCode{
		ZipCode:   strings.TrimSpace(in.ZipCode),
		City:      strings.TrimSpace(in.City),
		State:     strings.ToUpper(strings.TrimSpace(in.State)),
		County:    strings.TrimSpace(in.County),
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
	}
	switch {
	case !geo.ValidZip(z.ZipCode):
		return nil, invalid("zip_code", "must be a 5-digit ZIP code")
	case z.City == "":
		return nil, invalid("city", "is required")
	case len(z.State) != 2:
		return nil, invalid("state", "must be a 2-letter state code")
	case (z.Latitude == nil) != (z.Longitude == nil):
		return nil, invalid("latitude", "latitude and longitude must be given together")
	}
	if err := s.resolver.Save(ctx, z); err != nil {
		return nil, storeErr("save zip code", "ZIP code", err)
	}
	return z, nil
}

func (s *zipService) Mileage(ctx context.Context, pickupZip, deliveryZip string) (geo.Estimate, error) {
	pickupZip, deliveryZip = strings.TrimSpace(pickupZip), strings.TrimSpace(deliveryZip)
	if !geo.ValidZip(pickupZip) {
		return geo.Estimate{}, invalid("pickup_zip", "must be a 5-digit ZIP code")
	}
	if !geo.ValidZip(deliveryZip) {
		return geo.Estimate{}, invalid("delivery_zip", "must be a 5-digit ZIP code")
	}
	return s.estimator.Estimate(ctx, pickupZip, deliveryZip), nil
}
