package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"truck_dispatch/internal/models"
	"truck_dispatch/internal/repository"
)

const (
	RoleAdmin      = "admin"
	RoleDispatcher = "dispatcher"
	RoleViewer     = "viewer"
)

var validRoles = map[string]bool{RoleAdmin: true, RoleDispatcher: true, RoleViewer: true}

type UserInput struct {
	Username    *string  `json:"username"`
	Password    *string  `json:"password"`
	FullName    *string  `json:"full_name"`
	Email       *string  `json:"email"`
	Role        *string  `json:"role"`
	Permissions []string `json:"permissions"`
}

type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, in UserInput) (*models.User, error)
	Update(ctx context.Context, id uint, in UserInput) (*models.User, error)
	Deactivate(ctx context.Context, id uint) (*models.User, error)
	Activate(ctx context.Context, id uint) (*models.User, error)
	Permissions(ctx context.Context, id uint) ([]string, error)
	SetPermissions(ctx context.Context, id uint, perms []string) ([]string, error)
	// Authenticate returns the active user matching the credentials or
	// ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	// EnsureAdmin creates an admin account when username does not exist.
	EnsureAdmin(ctx context.Context, username, password string) error
}

type userService struct {
	store repository.Store
	now   func() time.Time
}

func NewUserService(store repository.Store) UserService {
	return &userService{store: store, now: time.Now}
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, storeErr("list users", "User", err)
	}
	return users, nil
}

func (s *userService) Get(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("get user", "User", err)
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, in UserInput) (*models.User, error) {
	user := &models.User{Role: RoleDispatcher, IsActive: true}
	if in.Password == nil || len(*in.Password) < 8 {
		return nil, invalid("password", "must be at least 8 characters")
	}
	if err := applyUserInput(user, in); err != nil {
		return nil, err
	}

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}
		if in.Permissions != nil {
			if err := tx.Users().ReplacePermissions(ctx, user.ID, normalizePermissions(in.Permissions)); err != nil {
				return fmt.Errorf("set permissions: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, storeErr("create user", "User", err)
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("user created")
	return s.Get(ctx, user.ID)
}

func (s *userService) Update(ctx context.Context, id uint, in UserInput) (*models.User, error) {
	if in.Password != nil && len(*in.Password) < 8 {
		return nil, invalid("password", "must be at least 8 characters")
	}
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		user, err := tx.Users().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := applyUserInput(user, in); err != nil {
			return err
		}
		if err := tx.Users().Update(ctx, user); err != nil {
			return err
		}
		if in.Permissions != nil {
			return tx.Users().ReplacePermissions(ctx, id, normalizePermissions(in.Permissions))
		}
		return nil
	})
	if err != nil {
		return nil, storeErr("update user", "User", err)
	}
	return s.Get(ctx, id)
}

// Deactivate soft-deletes a user. The row and its permissions are kept.
func (s *userService) Deactivate(ctx context.Context, id uint) (*models.User, error) {
	return s.setActive(ctx, id, false)
}

func (s *userService) Activate(ctx context.Context, id uint) (*models.User, error) {
	return s.setActive(ctx, id, true)
}

func (s *userService) setActive(ctx context.Context, id uint, active bool) (*models.User, error) {
	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("get user", "User", err)
	}
	if user.IsActive == active {
		return user, nil
	}
	user.IsActive = active
	if active {
		user.DeactivatedAt = nil
	} else {
		now := s.now()
		user.DeactivatedAt = &now
	}
	if err := s.store.Users().Update(ctx, user); err != nil {
		return nil, storeErr("update user", "User", err)
	}

	logrus.WithFields(logrus.Fields{"user_id": id, "active": active}).Info("user activation changed")
	return user, nil
}

func (s *userService) Permissions(ctx context.Context, id uint) ([]string, error) {
	if _, err := s.store.Users().GetByID(ctx, id); err != nil {
		return nil, storeErr("get user", "User", err)
	}
	rows, err := s.store.Users().Permissions(ctx, id)
	if err != nil {
		return nil, storeErr("list permissions", "User", err)
	}
	perms := make([]string, 0, len(rows))
	for _, p := range rows {
		perms = append(perms, p.Permission)
	}
	return perms, nil
}

func (s *userService) SetPermissions(ctx context.Context, id uint, perms []string) ([]string, error) {
	perms = normalizePermissions(perms)
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Users().GetByID(ctx, id); err != nil {
			return err
		}
		return tx.Users().ReplacePermissions(ctx, id, perms)
	})
	if err != nil {
		return nil, storeErr("set permissions", "User", err)
	}
	return perms, nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.store.Users().GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, storeErr("get user", "User", err)
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) EnsureAdmin(ctx context.Context, username, password string) error {
	_, err := s.store.Users().GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return storeErr("get user", "User", err)
	}
	role := RoleAdmin
	_, err = s.Create(ctx, UserInput{Username: &username, Password: &password, Role: &role})
	return err
}

func applyUserInput(u *models.User, in UserInput) error {
	setString(&u.Username, in.Username)
	setString(&u.FullName, in.FullName)
	setString(&u.Email, in.Email)
	setString(&u.Role, in.Role)

	if u.Username == "" {
		return invalid("username", "is required")
	}
	if !validRoles[u.Role] {
		return invalid("role", "must be one of admin, dispatcher, viewer")
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}
	return nil
}

// normalizePermissions trims, drops empties and duplicates, and sorts.
func normalizePermissions(perms []string) []string {
	seen := make(map[string]bool, len(perms))
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
