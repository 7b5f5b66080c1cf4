package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"truck_dispatch/internal/models"
	"truck_dispatch/internal/repository"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type RouteStatusInput struct {
	Name      *string `json:"name"`
	Color     *string `json:"color"`
	IsDefault *bool   `json:"is_default"`
	SortOrder *int    `json:"sort_order"`
}

type RouteStatusService interface {
	List(ctx context.Context) ([]models.RouteStatus, error)
	Create(ctx context.Context, in RouteStatusInput) (*models.RouteStatus, error)
	Update(ctx context.Context, id uint, in RouteStatusInput) (*models.RouteStatus, error)
	Delete(ctx context.Context, id uint) error
	SetDefault(ctx context.Context, id uint) (*models.RouteStatus, error)
	// Move swaps the status with its neighbor in the display order.
	Move(ctx context.Context, id uint, up bool) ([]models.RouteStatus, error)
}

type routeStatusService struct {
	store repository.Store
}

func NewRouteStatusService(store repository.Store) RouteStatusService {
	return &routeStatusService{store: store}
}

func (s *routeStatusService) List(ctx context.Context) ([]models.RouteStatus, error) {
	statuses, err := s.store.RouteStatuses().List(ctx)
	if err != nil {
		return nil, storeErr("list route statuses", "Route status", err)
	}
	return statuses, nil
}

func (s *routeStatusService) Create(ctx context.Context, in RouteStatusInput) (*models.RouteStatus, error) {
	status := &models.RouteStatus{}
	applyStatusInput(status, in)
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if in.SortOrder == nil {
			max, err := tx.RouteStatuses().MaxSortOrder(ctx)
			if err != nil {
				return fmt.Errorf("read sort order: %w", err)
			}
			status.SortOrder = max + 1
		}
		if status.IsDefault {
			if err := tx.RouteStatuses().ClearDefault(ctx); err != nil {
				return fmt.Errorf("clear default status: %w", err)
			}
		}
		return tx.RouteStatuses().Create(ctx, status)
	})
	if err != nil {
		return nil, storeErr("create route status", "Route status", err)
	}
	return status, nil
}

// Update edits a status. Routes keep the color they were assigned with.
func (s *routeStatusService) Update(ctx context.Context, id uint, in RouteStatusInput) (*models.RouteStatus, error) {
	var status *models.RouteStatus
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		status, err = tx.RouteStatuses().GetByID(ctx, id)
		if err != nil {
			return err
		}
		wasDefault := status.IsDefault
		applyStatusInput(status, in)
		if err := validateStatus(status); err != nil {
			return err
		}
		if wasDefault && !status.IsDefault {
			return &ConflictError{Message: "Cannot unset the default status; set another status as default instead"}
		}
		if status.IsDefault && !wasDefault {
			if err := tx.RouteStatuses().ClearDefault(ctx); err != nil {
				return fmt.Errorf("clear default status: %w", err)
			}
		}
		return tx.RouteStatuses().Update(ctx, status)
	})
	if err != nil {
		return nil, storeErr("update route status", "Route status", err)
	}
	return status, nil
}

func (s *routeStatusService) Delete(ctx context.Context, id uint) error {
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		status, err := tx.RouteStatuses().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if status.IsDefault {
			return &ConflictError{Message: "Cannot delete the default status"}
		}
		return tx.RouteStatuses().Delete(ctx, id)
	})
	if err != nil {
		return storeErr("delete route status", "Route status", err)
	}
	return nil
}

// SetDefault clears every default flag and then sets it on id. Two
// concurrent calls can both commit and leave two defaults.
func (s *routeStatusService) SetDefault(ctx context.Context, id uint) (*models.RouteStatus, error) {
	var status *models.RouteStatus
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		if status, err = tx.RouteStatuses().GetByID(ctx, id); err != nil {
			return err
		}
		if err := tx.RouteStatuses().ClearDefault(ctx); err != nil {
			return fmt.Errorf("clear default status: %w", err)
		}
		if err := tx.RouteStatuses().MarkDefault(ctx, id); err != nil {
			return err
		}
		status.IsDefault = true
		return nil
	})
	if err != nil {
		return nil, storeErr("set default route status", "Route status", err)
	}

	logrus.WithField("status", status.Name).Info("default route status changed")
	return status, nil
}

func (s *routeStatusService) Move(ctx context.Context, id uint, up bool) ([]models.RouteStatus, error) {
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		status, err := tx.RouteStatuses().GetByID(ctx, id)
		if err != nil {
			return err
		}
		other, err := tx.RouteStatuses().Neighbor(ctx, status.SortOrder, up)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// already first or last
			return nil
		}
		if err != nil {
			return fmt.Errorf("find neighbor status: %w", err)
		}
		status.SortOrder, other.SortOrder = other.SortOrder, status.SortOrder
		if err := tx.RouteStatuses().Update(ctx, status); err != nil {
			return err
		}
		return tx.RouteStatuses().Update(ctx, other)
	})
	if err != nil {
		return nil, storeErr("move route status", "Route status", err)
	}
	return s.List(ctx)
}

func applyStatusInput(st *models.RouteStatus, in RouteStatusInput) {
	setString(&st.Name, in.Name)
	setString(&st.Color, in.Color)
	if in.IsDefault != nil {
		st.IsDefault = *in.IsDefault
	}
	if in.SortOrder != nil {
		st.SortOrder = *in.SortOrder
	}
}

func validateStatus(st *models.RouteStatus) error {
	if strings.TrimSpace(st.Name) == "" {
		return invalid("name", "is required")
	}
	if !hexColor.MatchString(st.Color) {
		return invalid("color", "must be a hex color like #1A2B3C")
	}
	return nil
}
