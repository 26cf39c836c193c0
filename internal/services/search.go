package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/federaltalks/iq-backend/internal/pkg/logger"
	"github.com/federaltalks/iq-backend/internal/repos"
	"github.com/federaltalks/iq-backend/internal/search"
	"github.com/federaltalks/iq-backend/internal/types"
)

type SearchService interface {
	// SearchContracts fetches the candidate set from the store and runs it
	// through the relevance engine. Results are disposable: every call
	// recomputes from a fresh fetch.
	SearchContracts(ctx context.Context, query string, facets search.Facets) ([]types.Contract, error)
}

type searchService struct {
	db           *gorm.DB
	log          *logger.Logger
	contractRepo repos.ContractRepo
}

func NewSearchService(db *gorm.DB, log *logger.Logger, contractRepo repos.ContractRepo) SearchService {
	serviceLog := log.With("service", "SearchService")
	return &searchService{db: db, log: serviceLog, contractRepo: contractRepo}
}

func (ss *searchService) SearchContracts(ctx context.Context, query string, facets search.Facets) ([]types.Contract, error) {
	candidates, err := ss.contractRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch search candidates: %w", err)
	}
	return search.Search(candidates, query, facets, time.Now()), nil
}
