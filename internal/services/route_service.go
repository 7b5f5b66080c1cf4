package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"truck_dispatch/internal/finance"
	"truck_dispatch/internal/geo"
	"truck_dispatch/internal/models"
	"truck_dispatch/internal/repository"
)

// SystemActor is recorded when a change carries no user name.
const SystemActor = "system"

// ZipResolver maps a ZIP to its location.
type ZipResolver interface {
	Resolve(ctx context.Context, zip string) (*models.ZipCode, error)
}

// MileageEstimator approximates the road distance between two ZIPs.
type MileageEstimator interface {
	Estimate(ctx context.Context, originZip, destZip string) geo.Estimate
}

// OptionalDecimal distinguishes an absent JSON field from an explicit null.
type OptionalDecimal struct {
	Set   bool
	Value decimal.NullDecimal
}

func (o *OptionalDecimal) UnmarshalJSON(b []byte) error {
	o.Set = true
	return json.Unmarshal(b, &o.Value)
}

// RouteInput is the body of a route create or update. Nil fields are left
// unchanged on update.
type RouteInput struct {
	DriverID           *uint            `json:"driver_id"`
	Date               *models.Date     `json:"date"`
	PickupZip          *string          `json:"pickup_zip"`
	PickupCity         *string          `json:"pickup_city"`
	PickupState        *string          `json:"pickup_state"`
	PickupCounty       *string          `json:"pickup_county"`
	DeliveryZip        *string          `json:"delivery_zip"`
	DeliveryCity       *string          `json:"delivery_city"`
	DeliveryState      *string          `json:"delivery_state"`
	DeliveryCounty     *string          `json:"delivery_county"`
	Mileage            *int             `json:"mileage"`
	Rate               *decimal.Decimal `json:"rate"`
	SoldFor            OptionalDecimal  `json:"sold_for"`
	DivisionID         *uint            `json:"division_id"`
	Status             *string          `json:"status"`
	CustomerLoadNumber *string          `json:"customer_load_number"`
	PreviousRouteIDs   []int64          `json:"previous_route_ids"`

	// Comment, when set, is appended to the route's thread.
	Comment  string `json:"comment"`
	UserName string `json:"user_name"`
}

// RouteDetail is a route with its comment thread and audit history.
type RouteDetail struct {
	models.Route
	AuditHistory []models.RouteAudit `json:"audit_history"`
}

type RouteService interface {
	List(ctx context.Context, f repository.RouteFilter) ([]models.Route, error)
	Get(ctx context.Context, id uint) (*RouteDetail, error)
	Create(ctx context.Context, in RouteInput) (*models.Route, error)
	Update(ctx context.Context, id uint, in RouteInput) (*models.Route, error)
	Delete(ctx context.Context, id uint, actor string) error
	AddComment(ctx context.Context, routeID uint, text, author string) (*models.RouteComment, error)
	Audits(ctx context.Context, routeID uint) ([]models.RouteAudit, error)
	PreviousRoute(ctx context.Context, driverID uint, before models.Date) (*models.Route, error)
	Earnings(ctx context.Context, f repository.RouteFilter) (*finance.Summary, error)
}

type routeService struct {
	store     repository.Store
	resolver  ZipResolver
	estimator MileageEstimator
	now       func() time.Time
}

func NewRouteService(store repository.Store, resolver ZipResolver, estimator MileageEstimator) RouteService {
	return &routeService{
		store:     store,
		resolver:  resolver,
		estimator: estimator,
		now:       time.Now,
	}
}

func (s *routeService) List(ctx context.Context, f repository.RouteFilter) ([]models.Route, error) {
	routes, err := s.store.Routes().List(ctx, f)
	if err != nil {
		return nil, storeErr("list routes", "Route", err)
	}
	return routes, nil
}

func (s *routeService) Get(ctx context.Context, id uint) (*RouteDetail, error) {
	route, err := s.store.Routes().GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("get route", "Route", err)
	}
	comments, err := s.store.RouteComments().ListByRoute(ctx, id)
	if err != nil {
		return nil, storeErr("list route comments", "Route", err)
	}
	audits, err := s.store.RouteAudits().ListByRoute(ctx, id)
	if err != nil {
		return nil, storeErr("list route audits", "Route", err)
	}
	route.Comments = comments
	return &RouteDetail{Route: *route, AuditHistory: audits}, nil
}

func (s *routeService) Create(ctx context.Context, in RouteInput) (*models.Route, error) {
	actor := actorOrSystem(in.UserName)
	route := &models.Route{PreviousRouteIDs: pq.Int64Array{}}

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if in.Rate == nil {
			return invalid("rate", "is required")
		}
		s.applyInput(ctx, route, in)

		if strings.TrimSpace(route.Status) == "" {
			def, err := tx.RouteStatuses().GetDefault(ctx)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("load default status: %w", err)
			}
			if def != nil {
				route.Status = def.Name
			}
		}
		if err := validateRoute(route); err != nil {
			return err
		}
		if err := checkPreviousRoutes(ctx, tx, route); err != nil {
			return err
		}

		color, err := statusColor(ctx, tx, route.Status)
		if err != nil {
			return err
		}
		route.StatusColor = color

		if in.Mileage != nil {
			route.Mileage = intPtr(*in.Mileage)
			route.MileageSource = models.MileageManual
		} else {
			s.estimate(ctx, route)
		}

		now := s.now()
		route.LastEditedBy = &actor
		route.LastEditedAt = &now
		if err := tx.Routes().Create(ctx, route); err != nil {
			return fmt.Errorf("create route: %w", err)
		}

		audit := &models.RouteAudit{
			RouteID:       route.ID,
			Status:        models.AuditCreated,
			Comment:       "Route created",
			UserName:      actor,
			ChangedFields: []string{models.AllFields},
			OldValues:     nil,
			NewValues:     routeSnapshot(route),
		}
		if err := tx.RouteAudits().Create(ctx, audit); err != nil {
			return fmt.Errorf("write route audit: %w", err)
		}

		if text := strings.TrimSpace(in.Comment); text != "" {
			c, err := appendComment(ctx, tx, route, text, actor, now)
			if err != nil {
				return err
			}
			route.Comments = []models.RouteComment{*c}
		}
		return nil
	})
	if err != nil {
		return nil, storeErr("create route", "Route", err)
	}

	logrus.WithFields(logrus.Fields{
		"route_id":  route.ID,
		"driver_id": route.DriverID,
		"user":      actor,
	}).Info("route created")
	return route, nil
}

func (s *routeService) Update(ctx context.Context, id uint, in RouteInput) (*models.Route, error) {
	actor := actorOrSystem(in.UserName)
	var result *models.Route

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		old, err := tx.Routes().GetByID(ctx, id)
		if err != nil {
			return err
		}
		next := *old
		next.PreviousRouteIDs = int64s(old.PreviousRouteIDs)
		s.applyInput(ctx, &next, in)

		if err := validateRoute(&next); err != nil {
			return err
		}
		if in.PreviousRouteIDs != nil {
			if err := checkPreviousRoutes(ctx, tx, &next); err != nil {
				return err
			}
		}

		if next.Status != old.Status {
			color, err := statusColor(ctx, tx, next.Status)
			if err != nil {
				return err
			}
			next.StatusColor = color
		}

		zipChanged := next.PickupZip != old.PickupZip || next.DeliveryZip != old.DeliveryZip
		switch {
		case in.Mileage != nil:
			next.Mileage = intPtr(*in.Mileage)
			if zipChanged || !sameInt(in.Mileage, old.Mileage) {
				next.MileageSource = models.MileageManual
			}
		case zipChanged:
			s.estimate(ctx, &next)
		}

		now := s.now()
		changed, oldValues, newValues := diffRoutes(old, &next)
		if len(changed) > 0 {
			next.LastEditedBy = &actor
			next.LastEditedAt = &now
			if err := tx.Routes().Update(ctx, &next); err != nil {
				return fmt.Errorf("update route: %w", err)
			}
			audit := &models.RouteAudit{
				RouteID:       next.ID,
				Status:        models.AuditUpdated,
				Comment:       "Route updated",
				UserName:      actor,
				ChangedFields: changed,
				OldValues:     oldValues,
				NewValues:     newValues,
			}
			if err := tx.RouteAudits().Create(ctx, audit); err != nil {
				return fmt.Errorf("write route audit: %w", err)
			}
		}

		if text := strings.TrimSpace(in.Comment); text != "" {
			if _, err := appendComment(ctx, tx, &next, text, actor, now); err != nil {
				return err
			}
		}
		result = &next
		return nil
	})
	if err != nil {
		return nil, storeErr("update route", "Route", err)
	}

	logrus.WithFields(logrus.Fields{"route_id": id, "user": actor}).Info("route updated")
	return result, nil
}

// Delete writes the terminal audit with the full row and then removes the
// row. If the audit cannot be written the route is kept.
func (s *routeService) Delete(ctx context.Context, id uint, actor string) error {
	actor = actorOrSystem(actor)
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		old, err := tx.Routes().GetByID(ctx, id)
		if err != nil {
			return err
		}
		audit := &models.RouteAudit{
			RouteID:       old.ID,
			Status:        models.AuditDeleted,
			Comment:       "Route deleted",
			UserName:      actor,
			ChangedFields: []string{models.AllFields},
			OldValues:     routeSnapshot(old),
		}
		if err := tx.RouteAudits().Create(ctx, audit); err != nil {
			return fmt.Errorf("write route audit: %w", err)
		}
		if err := tx.Routes().Delete(ctx, id); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return storeErr("delete route", "Route", err)
	}

	logrus.WithFields(logrus.Fields{"route_id": id, "user": actor}).Info("route deleted")
	return nil
}

func (s *routeService) AddComment(ctx context.Context, routeID uint, text, author string) (*models.RouteComment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalid("text", "is required")
	}
	author = actorOrSystem(author)

	var comment *models.RouteComment
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		route, err := tx.Routes().GetByID(ctx, routeID)
		if err != nil {
			return err
		}
		comment, err = appendComment(ctx, tx, route, text, author, s.now())
		return err
	})
	if err != nil {
		return nil, storeErr("add route comment", "Route", err)
	}
	return comment, nil
}

// Audits lists a route's history. It works for deleted routes too.
func (s *routeService) Audits(ctx context.Context, routeID uint) ([]models.RouteAudit, error) {
	audits, err := s.store.RouteAudits().ListByRoute(ctx, routeID)
	if err != nil {
		return nil, storeErr("list route audits", "Route", err)
	}
	return audits, nil
}

func (s *routeService) PreviousRoute(ctx context.Context, driverID uint, before models.Date) (*models.Route, error) {
	if before.IsZero() {
		before = models.NewDate(s.now())
	}
	route, err := s.store.Routes().LatestBefore(ctx, driverID, before)
	if err != nil {
		return nil, storeErr("find previous route", "Route", err)
	}
	return route, nil
}

func (s *routeService) Earnings(ctx context.Context, f repository.RouteFilter) (*finance.Summary, error) {
	routes, err := s.store.Routes().List(ctx, f)
	if err != nil {
		return nil, storeErr("list routes", "Route", err)
	}

	pcts := make(map[uint]decimal.Decimal)
	for _, r := range routes {
		if _, ok := pcts[r.DriverID]; ok {
			continue
		}
		d, err := s.store.Drivers().GetByID(ctx, r.DriverID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			pcts[r.DriverID] = decimal.Zero
		case err != nil:
			return nil, storeErr("load driver", "Driver", err)
		default:
			pcts[r.DriverID] = d.Percentage
		}
	}

	summary := finance.Summarize(routes, pcts)
	return &summary, nil
}

// applyInput copies the set fields of in onto r. A new ZIP replaces the
// stop's city, state and county with its resolved location; explicit
// values in the input win over resolved ones.
func (s *routeService) applyInput(ctx context.Context, r *models.Route, in RouteInput) {
	if in.DriverID != nil {
		r.DriverID = *in.DriverID
	}
	if in.Date != nil {
		r.Date = *in.Date
	}
	if in.PickupZip != nil {
		zip := strings.TrimSpace(*in.PickupZip)
		if zip != r.PickupZip || r.PickupCity == "" {
			r.PickupZip = zip
			r.PickupCity, r.PickupState, r.PickupCounty = s.locate(ctx, zip)
		}
	}
	setString(&r.PickupCity, in.PickupCity)
	setString(&r.PickupState, in.PickupState)
	setString(&r.PickupCounty, in.PickupCounty)

	if in.DeliveryZip != nil {
		zip := strings.TrimSpace(*in.DeliveryZip)
		if zip != r.DeliveryZip || r.DeliveryCity == "" {
			r.DeliveryZip = zip
			r.DeliveryCity, r.DeliveryState, r.DeliveryCounty = s.locate(ctx, zip)
		}
	}
	setString(&r.DeliveryCity, in.DeliveryCity)
	setString(&r.DeliveryState, in.DeliveryState)
	setString(&r.DeliveryCounty, in.DeliveryCounty)

	if in.Rate != nil {
		r.Rate = *in.Rate
	}
	if in.SoldFor.Set {
		r.SoldFor = in.SoldFor.Value
	}
	if in.DivisionID != nil {
		r.DivisionID = in.DivisionID
	}
	setString(&r.Status, in.Status)
	setString(&r.CustomerLoadNumber, in.CustomerLoadNumber)
	if in.PreviousRouteIDs != nil {
		r.PreviousRouteIDs = int64s(in.PreviousRouteIDs)
	}
}

func (s *routeService) locate(ctx context.Context, zip string) (city, state, county string) {
	if s.resolver == nil {
		return "", "", ""
	}
	loc, err := s.resolver.Resolve(ctx, zip)
	if err != nil {
		if !errors.Is(err, geo.ErrZipNotFound) {
			logrus.WithError(err).WithField("zip", zip).Warn("zip resolution failed")
		}
		return "", "", ""
	}
	return loc.City, loc.State, loc.County
}

func (s *routeService) estimate(ctx context.Context, r *models.Route) {
	if s.estimator == nil {
		return
	}
	est := s.estimator.Estimate(ctx, r.PickupZip, r.DeliveryZip)
	r.Mileage = intPtr(est.Miles)
	r.MileageSource = est.Source
}

func validateRoute(r *models.Route) error {
	switch {
	case r.DriverID == 0:
		return invalid("driver_id", "is required")
	case r.Date.IsZero():
		return invalid("date", "is required")
	case !geo.ValidZip(r.PickupZip):
		return invalid("pickup_zip", "must be a 5-digit ZIP code")
	case !geo.ValidZip(r.DeliveryZip):
		return invalid("delivery_zip", "must be a 5-digit ZIP code")
	case strings.TrimSpace(r.PickupCity) == "":
		return invalid("pickup_city", "is required")
	case strings.TrimSpace(r.PickupState) == "":
		return invalid("pickup_state", "is required")
	case strings.TrimSpace(r.DeliveryCity) == "":
		return invalid("delivery_city", "is required")
	case strings.TrimSpace(r.DeliveryState) == "":
		return invalid("delivery_state", "is required")
	case r.Rate.IsNegative():
		return invalid("rate", "must not be negative")
	case r.SoldFor.Valid && r.SoldFor.Decimal.IsNegative():
		return invalid("sold_for", "must not be negative")
	case r.Mileage != nil && *r.Mileage < 0:
		return invalid("mileage", "must not be negative")
	case strings.TrimSpace(r.Status) == "":
		return invalid("status", "is required")
	case r.Status == models.StatusDrivingPreviousRoute && len(r.PreviousRouteIDs) == 0:
		return invalid("previous_route_ids", "at least one previous route is required for status "+models.StatusDrivingPreviousRoute)
	}
	return nil
}

func checkPreviousRoutes(ctx context.Context, tx repository.Store, r *models.Route) error {
	for _, pid := range r.PreviousRouteIDs {
		if pid <= 0 || (r.ID != 0 && uint(pid) == r.ID) {
			return invalid("previous_route_ids", fmt.Sprintf("invalid route id %d", pid))
		}
		if _, err := tx.Routes().GetByID(ctx, uint(pid)); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return invalid("previous_route_ids", fmt.Sprintf("route %d does not exist", pid))
			}
			return fmt.Errorf("load previous route: %w", err)
		}
	}
	return nil
}

// statusColor snapshots the catalog color of name. Unknown statuses have
// no color.
func statusColor(ctx context.Context, tx repository.Store, name string) (*string, error) {
	st, err := tx.RouteStatuses().GetByName(ctx, name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load route status: %w", err)
	}
	color := st.Color
	return &color, nil
}

func appendComment(ctx context.Context, tx repository.Store, r *models.Route, text, author string, at time.Time) (*models.RouteComment, error) {
	c := &models.RouteComment{RouteID: r.ID, Text: text, By: author, CreatedAt: at}
	if err := tx.RouteComments().Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create route comment: %w", err)
	}
	if err := tx.Routes().UpdateLastComment(ctx, r.ID, author, at); err != nil {
		return nil, fmt.Errorf("update last comment: %w", err)
	}
	r.LastCommentBy = &author
	r.LastCommentAt = &at
	return c, nil
}

func actorOrSystem(name string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return SystemActor
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func sameInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func intPtr(v int) *int { return &v }
