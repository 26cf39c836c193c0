package services

import (
	"context"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/federaltalks/iq-backend/internal/pkg/logger"
	"github.com/federaltalks/iq-backend/internal/repos"
	"github.com/federaltalks/iq-backend/internal/types"
)

// DashboardStats are the aggregate counts behind the landing dashboard.
type DashboardStats struct {
	ContractsByType   map[string]int64  `json:"contracts_by_type"`
	ContractsByStatus map[string]int64  `json:"contracts_by_status"`
	ContactCount      int64             `json:"contact_count"`
	RecentUploads     []types.UploadLog `json:"recent_uploads"`
}

type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
}

type dashboardService struct {
	db            *gorm.DB
	log           *logger.Logger
	contractRepo  repos.ContractRepo
	contactRepo   repos.ContactRepo
	uploadLogRepo repos.UploadLogRepo
}

func NewDashboardService(db *gorm.DB, log *logger.Logger, contractRepo repos.ContractRepo, contactRepo repos.ContactRepo, uploadLogRepo repos.UploadLogRepo) DashboardService {
	serviceLog := log.With("service", "DashboardService")
	return &dashboardService{
		db:            db,
		log:           serviceLog,
		contractRepo:  contractRepo,
		contactRepo:   contactRepo,
		uploadLogRepo: uploadLogRepo,
	}
}

func (ds *dashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		byType, err := ds.contractRepo.CountGrouped(gctx, nil, "contract_type")
		if err != nil {
			return err
		}
		stats.ContractsByType = byType
		return nil
	})
	g.Go(func() error {
		byStatus, err := ds.contractRepo.CountGrouped(gctx, nil, "status")
		if err != nil {
			return err
		}
		stats.ContractsByStatus = byStatus
		return nil
	})
	g.Go(func() error {
		count, err := ds.contactRepo.Count(gctx, nil)
		if err != nil {
			return err
		}
		stats.ContactCount = count
		return nil
	})
	g.Go(func() error {
		uploads, err := ds.uploadLogRepo.List(gctx, nil, 10)
		if err != nil {
			return err
		}
		stats.RecentUploads = uploads
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
