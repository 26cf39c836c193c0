package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/federaltalks/iq-backend/internal/pkg/errors"
	"github.com/federaltalks/iq-backend/internal/pkg/logger"
	"github.com/federaltalks/iq-backend/internal/repos"
	"github.com/federaltalks/iq-backend/internal/types"
)

var validDemoStatuses = map[string]struct{}{
	"pending":        {},
	"contacted":      {},
	"demo_scheduled": {},
	"completed":      {},
	"declined":       {},
}

type DemoRequestService interface {
	Submit(ctx context.Context, req *types.DemoRequest) (*types.DemoRequest, error)
	List(ctx context.Context) ([]types.DemoRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*types.DemoRequest, error)
}

type demoRequestService struct {
	db              *gorm.DB
	log             *logger.Logger
	demoRequestRepo repos.DemoRequestRepo
}

func NewDemoRequestService(db *gorm.DB, log *logger.Logger, demoRequestRepo repos.DemoRequestRepo) DemoRequestService {
	serviceLog := log.With("service", "DemoRequestService")
	return &demoRequestService{db: db, log: serviceLog, demoRequestRepo: demoRequestRepo}
}

func (ds *demoRequestService) Submit(ctx context.Context, req *types.DemoRequest) (*types.DemoRequest, error) {
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.FullName) == "" {
		return nil, fmt.Errorf("%w: email and full name are required", apperrors.ErrInvalidArgument)
	}
	req.Status = "pending"
	return ds.demoRequestRepo.Create(ctx, nil, req)
}

func (ds *demoRequestService) List(ctx context.Context) ([]types.DemoRequest, error) {
	return ds.demoRequestRepo.List(ctx, nil)
}

func (ds *demoRequestService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*types.DemoRequest, error) {
	if _, ok := validDemoStatuses[status]; !ok {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrInvalidArgument, status)
	}
	req, err := ds.demoRequestRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	req.Status = status
	return ds.demoRequestRepo.Update(ctx, nil, req)
}
