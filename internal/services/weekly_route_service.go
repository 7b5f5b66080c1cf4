package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"truck_dispatch/internal/models"
	"truck_dispatch/internal/repository"
)

type WeeklyRouteInput struct {
	WeekStartDate *models.Date `json:"week_start_date"`
	WeekEndDate   *models.Date `json:"week_end_date"`
	DriverID      *uint        `json:"driver_id"`
	DivisionID    *uint        `json:"division_id"`
	DispatcherID  *uint        `json:"dispatcher_id"`
	Status        *string      `json:"status"`
	Notes         *string      `json:"notes"`
	UserName      string       `json:"user_name"`
}

type AttachRouteInput struct {
	RouteID        uint   `json:"route_id"`
	DayOfWeek      int    `json:"day_of_week"`
	SequenceNumber int    `json:"sequence_number"`
	UserName       string `json:"user_name"`
}

// WeeklyRouteSlot is a detail row with its route and the route's status as
// currently defined in the catalog.
type WeeklyRouteSlot struct {
	models.WeeklyRouteDetail
	StatusSortOrder *int `json:"status_sort_order"`
}

type WeeklyRouteView struct {
	models.WeeklyRoute
	Routes       []WeeklyRouteSlot         `json:"routes"`
	AuditHistory []models.WeeklyRouteAudit `json:"audit_history"`
}

type WeeklyRouteService interface {
	List(ctx context.Context, f repository.WeeklyRouteFilter) ([]models.WeeklyRoute, error)
	Get(ctx context.Context, id uint) (*WeeklyRouteView, error)
	Create(ctx context.Context, in WeeklyRouteInput) (*models.WeeklyRoute, error)
	// Update writes an "updated" audit only when a field changed, the same
	// policy as route updates.
	Update(ctx context.Context, id uint, in WeeklyRouteInput) (*models.WeeklyRoute, error)
	AttachRoute(ctx context.Context, weekID uint, in AttachRouteInput) (*models.WeeklyRouteDetail, error)
	DetachRoute(ctx context.Context, weekID, detailID uint, actor string) (*models.WeeklyRouteDetail, error)
}

type weeklyRouteService struct {
	store repository.Store
}

func NewWeeklyRouteService(store repository.Store) WeeklyRouteService {
	return &weeklyRouteService{store: store}
}

func (s *weeklyRouteService) List(ctx context.Context, f repository.WeeklyRouteFilter) ([]models.WeeklyRoute, error) {
	weeks, err := s.store.WeeklyRoutes().List(ctx, f)
	if err != nil {
		return nil, storeErr("list weekly routes", "Weekly route", err)
	}
	return weeks, nil
}

func (s *weeklyRouteService) Get(ctx context.Context, id uint) (*WeeklyRouteView, error) {
	week, err := s.store.WeeklyRoutes().GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("get weekly route", "Weekly route", err)
	}
	details, err := s.store.WeeklyRoutes().Details(ctx, id)
	if err != nil {
		return nil, storeErr("list weekly route details", "Weekly route", err)
	}
	statuses, err := s.store.RouteStatuses().List(ctx)
	if err != nil {
		return nil, storeErr("list route statuses", "Route status", err)
	}
	audits, err := s.store.WeeklyRoutes().Audits(ctx, id)
	if err != nil {
		return nil, storeErr("list weekly route audits", "Weekly route", err)
	}

	order := make(map[string]int, len(statuses))
	for _, st := range statuses {
		order[st.Name] = st.SortOrder
	}
	slots := make([]WeeklyRouteSlot, 0, len(details))
	for _, d := range details {
		slot := WeeklyRouteSlot{WeeklyRouteDetail: d}
		if d.Route != nil {
			if so, ok := order[d.Route.Status]; ok {
				slot.StatusSortOrder = &so
			}
		}
		slots = append(slots, slot)
	}
	return &WeeklyRouteView{WeeklyRoute: *week, Routes: slots, AuditHistory: audits}, nil
}

func (s *weeklyRouteService) Create(ctx context.Context, in WeeklyRouteInput) (*models.WeeklyRoute, error) {
	actor := actorOrSystem(in.UserName)
	week := &models.WeeklyRoute{CreatedBy: actor}
	applyWeekInput(week, in)
	if in.WeekEndDate == nil && !week.WeekStartDate.IsZero() {
		week.WeekEndDate = week.WeekStartDate.AddDays(6)
	}
	if err := validateWeek(week); err != nil {
		return nil, err
	}

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := tx.WeeklyRoutes().Create(ctx, week); err != nil {
			return fmt.Errorf("create weekly route: %w", err)
		}
		return writeWeekAudit(ctx, tx, week.ID, models.WeeklyAuditCreated, actor,
			fmt.Sprintf("Weekly route created for driver %d, week %s to %s", week.DriverID, week.WeekStartDate, week.WeekEndDate))
	})
	if err != nil {
		return nil, storeErr("create weekly route", "Weekly route", err)
	}

	logrus.WithFields(logrus.Fields{"weekly_route_id": week.ID, "user": actor}).Info("weekly route created")
	return week, nil
}

func (s *weeklyRouteService) Update(ctx context.Context, id uint, in WeeklyRouteInput) (*models.WeeklyRoute, error) {
	actor := actorOrSystem(in.UserName)
	var week *models.WeeklyRoute

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		old, err := tx.WeeklyRoutes().GetByID(ctx, id)
		if err != nil {
			return err
		}
		next := *old
		applyWeekInput(&next, in)
		if err := validateWeek(&next); err != nil {
			return err
		}
		week = &next

		changed := diffWeeks(old, &next)
		if len(changed) == 0 {
			return nil
		}
		if err := tx.WeeklyRoutes().Update(ctx, &next); err != nil {
			return fmt.Errorf("update weekly route: %w", err)
		}
		return writeWeekAudit(ctx, tx, id, models.WeeklyAuditUpdated, actor,
			"Updated "+strings.Join(changed, ", "))
	})
	if err != nil {
		return nil, storeErr("update weekly route", "Weekly route", err)
	}
	return week, nil
}

func (s *weeklyRouteService) AttachRoute(ctx context.Context, weekID uint, in AttachRouteInput) (*models.WeeklyRouteDetail, error) {
	if in.RouteID == 0 {
		return nil, invalid("route_id", "is required")
	}
	if in.DayOfWeek < 1 || in.DayOfWeek > 7 {
		return nil, invalid("day_of_week", "must be between 1 (Monday) and 7 (Sunday)")
	}
	if in.SequenceNumber < 0 {
		return nil, invalid("sequence_number", "must not be negative")
	}
	actor := actorOrSystem(in.UserName)
	detail := &models.WeeklyRouteDetail{
		WeeklyRouteID:  weekID,
		RouteID:        in.RouteID,
		DayOfWeek:      in.DayOfWeek,
		SequenceNumber: in.SequenceNumber,
	}

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.WeeklyRoutes().GetByID(ctx, weekID); err != nil {
			return err
		}
		route, err := tx.Routes().GetByID(ctx, in.RouteID)
		if err != nil {
			return storeErr("load route", "Route", err)
		}
		if detail.SequenceNumber == 0 {
			n, err := tx.WeeklyRoutes().CountDay(ctx, weekID, in.DayOfWeek)
			if err != nil {
				return fmt.Errorf("count day routes: %w", err)
			}
			detail.SequenceNumber = int(n) + 1
		}
		if err := tx.WeeklyRoutes().CreateDetail(ctx, detail); err != nil {
			return fmt.Errorf("attach route: %w", err)
		}
		detail.Route = route
		return writeWeekAudit(ctx, tx, weekID, models.WeeklyAuditRouteAdded, actor,
			fmt.Sprintf("Route %d added to day %d", in.RouteID, in.DayOfWeek))
	})
	if err != nil {
		return nil, storeErr("attach route", "Weekly route", err)
	}
	return detail, nil
}

func (s *weeklyRouteService) DetachRoute(ctx context.Context, weekID, detailID uint, actor string) (*models.WeeklyRouteDetail, error) {
	actor = actorOrSystem(actor)
	var detail *models.WeeklyRouteDetail

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		detail, err = tx.WeeklyRoutes().GetDetail(ctx, weekID, detailID)
		if err != nil {
			return storeErr("load weekly route detail", "Weekly route detail", err)
		}
		if err := tx.WeeklyRoutes().DeleteDetail(ctx, detailID); err != nil {
			return fmt.Errorf("detach route: %w", err)
		}
		return writeWeekAudit(ctx, tx, weekID, models.WeeklyAuditRouteRemoved, actor,
			fmt.Sprintf("Route %d removed from day %d", detail.RouteID, detail.DayOfWeek))
	})
	if err != nil {
		return nil, storeErr("detach route", "Weekly route", err)
	}
	return detail, nil
}

func writeWeekAudit(ctx context.Context, tx repository.Store, weekID uint, action, actor, details string) error {
	audit := &models.WeeklyRouteAudit{
		WeeklyRouteID: weekID,
		Action:        action,
		Details:       details,
		UserName:      actor,
	}
	if err := tx.WeeklyRoutes().CreateAudit(ctx, audit); err != nil {
		return fmt.Errorf("write weekly route audit: %w", err)
	}
	return nil
}

func applyWeekInput(w *models.WeeklyRoute, in WeeklyRouteInput) {
	if in.WeekStartDate != nil {
		w.WeekStartDate = *in.WeekStartDate
	}
	if in.WeekEndDate != nil {
		w.WeekEndDate = *in.WeekEndDate
	}
	if in.DriverID != nil {
		w.DriverID = *in.DriverID
	}
	if in.DivisionID != nil {
		w.DivisionID = in.DivisionID
	}
	if in.DispatcherID != nil {
		w.DispatcherID = in.DispatcherID
	}
	setString(&w.Status, in.Status)
	if in.Notes != nil {
		w.Notes = *in.Notes
	}
}

func validateWeek(w *models.WeeklyRoute) error {
	switch {
	case w.DriverID == 0:
		return invalid("driver_id", "is required")
	case w.WeekStartDate.IsZero():
		return invalid("week_start_date", "is required")
	case w.WeekEndDate.IsZero():
		return invalid("week_end_date", "is required")
	case w.WeekEndDate.Before(w.WeekStartDate.Time):
		return invalid("week_end_date", "must not be before week_start_date")
	}
	return nil
}

func diffWeeks(old, next *models.WeeklyRoute) []string {
	var changed []string
	if !old.WeekStartDate.Equal(next.WeekStartDate.Time) {
		changed = append(changed, "week_start_date")
	}
	if !old.WeekEndDate.Equal(next.WeekEndDate.Time) {
		changed = append(changed, "week_end_date")
	}
	if old.DriverID != next.DriverID {
		changed = append(changed, "driver_id")
	}
	if !sameUint(old.DivisionID, next.DivisionID) {
		changed = append(changed, "division_id")
	}
	if !sameUint(old.DispatcherID, next.DispatcherID) {
		changed = append(changed, "dispatcher_id")
	}
	if old.Status != next.Status {
		changed = append(changed, "status")
	}
	if old.Notes != next.Notes {
		changed = append(changed, "notes")
	}
	return changed
}

func sameUint(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
