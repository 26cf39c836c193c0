package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/federaltalks/iq-backend/internal/pkg/errors"
	"github.com/federaltalks/iq-backend/internal/pkg/logger"
	"github.com/federaltalks/iq-backend/internal/repos"
	"github.com/federaltalks/iq-backend/internal/types"
)

// UserService backs the admin user-access console.
type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*types.User, error)
	List(ctx context.Context) ([]types.User, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*types.User, error)
	SetRole(ctx context.Context, id uuid.UUID, role string) (*types.User, error)
	SetTrialDays(ctx context.Context, id uuid.UUID, days int) (*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

func (us *userService) GetByID(ctx context.Context, id uuid.UUID) (*types.User, error) {
	found, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, apperrors.ErrNotFound
	}
	return found[0], nil
}

func (us *userService) List(ctx context.Context) ([]types.User, error) {
	return us.userRepo.List(ctx, nil)
}

func (us *userService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*types.User, error) {
	user, err := us.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.IsActive = active
	return us.userRepo.Update(ctx, nil, user)
}

func (us *userService) SetRole(ctx context.Context, id uuid.UUID, role string) (*types.User, error) {
	if role != types.RoleAdmin && role != types.RoleUser {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrInvalidArgument, role)
	}
	user, err := us.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Role = role
	return us.userRepo.Update(ctx, nil, user)
}

func (us *userService) SetTrialDays(ctx context.Context, id uuid.UUID, days int) (*types.User, error) {
	if days < 0 {
		return nil, fmt.Errorf("%w: trial days cannot be negative", apperrors.ErrInvalidArgument)
	}
	user, err := us.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.TrialDaysRemaining = days
	return us.userRepo.Update(ctx, nil, user)
}
