package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/federaltalks/iq-backend/internal/pkg/errors"
	"github.com/federaltalks/iq-backend/internal/pkg/logger"
	"github.com/federaltalks/iq-backend/internal/repos"
	"github.com/federaltalks/iq-backend/internal/types"
)

var validContractTypes = map[string]struct{}{
	"federal": {},
	"state":   {},
}

var validContractStatuses = map[string]struct{}{
	"active":    {},
	"forecast":  {},
	"tracked":   {},
	"closed":    {},
	"cancelled": {},
}

var validAwardStatuses = map[string]struct{}{
	"open":      {},
	"awarded":   {},
	"cancelled": {},
}

type ContractService interface {
	List(ctx context.Context) ([]types.Contract, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Contract, error)
	Create(ctx context.Context, actor uuid.UUID, contract *types.Contract) (*types.Contract, error)
	Update(ctx context.Context, actor uuid.UUID, id uuid.UUID, patch *types.Contract) (*types.Contract, error)
	UpdateStatus(ctx context.Context, actor uuid.UUID, id uuid.UUID, status string) (*types.Contract, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type contractService struct {
	db           *gorm.DB
	log          *logger.Logger
	contractRepo repos.ContractRepo
}

func NewContractService(db *gorm.DB, log *logger.Logger, contractRepo repos.ContractRepo) ContractService {
	serviceLog := log.With("service", "ContractService")
	return &contractService{db: db, log: serviceLog, contractRepo: contractRepo}
}

func (cs *contractService) List(ctx context.Context) ([]types.Contract, error) {
	return cs.contractRepo.List(ctx, nil)
}

func (cs *contractService) Get(ctx context.Context, id uuid.UUID) (*types.Contract, error) {
	found, err := cs.contractRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("error fetching contract: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, apperrors.ErrNotFound
	}
	return found[0], nil
}

func (cs *contractService) Create(ctx context.Context, actor uuid.UUID, contract *types.Contract) (*types.Contract, error) {
	if strings.TrimSpace(contract.Title) == "" || strings.TrimSpace(contract.Agency) == "" {
		return nil, fmt.Errorf("%w: title and agency are required", apperrors.ErrInvalidArgument)
	}
	if contract.ContractType == "" {
		contract.ContractType = "federal"
	}
	if contract.Status == "" {
		contract.Status = "active"
	}
	if contract.ContractStatus == "" {
		contract.ContractStatus = "open"
	}
	if err := validateContractEnums(contract); err != nil {
		return nil, err
	}

	contract.ID = uuid.Nil
	contract.FederalID = NewFederalID()
	if contract.DataSource == "" {
		contract.DataSource = "manual"
	}
	now := time.Now().UTC()
	if contract.PostedDate.IsZero() {
		contract.PostedDate = now
	}
	contract.LastUpdated = now
	if actor != uuid.Nil {
		actorID := actor
		contract.UpdatedBy = &actorID
	}

	created, err := cs.contractRepo.Create(ctx, nil, []*types.Contract{contract})
	if err != nil {
		return nil, fmt.Errorf("failed to create contract: %w", err)
	}
	return created[0], nil
}

func (cs *contractService) Update(ctx context.Context, actor uuid.UUID, id uuid.UUID, patch *types.Contract) (*types.Contract, error) {
	existing, err := cs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(patch.Title) == "" || strings.TrimSpace(patch.Agency) == "" {
		return nil, fmt.Errorf("%w: title and agency are required", apperrors.ErrInvalidArgument)
	}
	if err := validateContractEnums(patch); err != nil {
		return nil, err
	}

	applyContractPatch(existing, patch)
	existing.LastUpdated = time.Now().UTC()
	if actor != uuid.Nil {
		actorID := actor
		existing.UpdatedBy = &actorID
	}
	return cs.contractRepo.Update(ctx, nil, existing)
}

func (cs *contractService) UpdateStatus(ctx context.Context, actor uuid.UUID, id uuid.UUID, status string) (*types.Contract, error) {
	if _, ok := validContractStatuses[status]; !ok {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrInvalidArgument, status)
	}
	existing, err := cs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Status = status
	existing.LastUpdated = time.Now().UTC()
	if actor != uuid.Nil {
		actorID := actor
		existing.UpdatedBy = &actorID
	}
	return cs.contractRepo.Update(ctx, nil, existing)
}

func (cs *contractService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := cs.Get(ctx, id); err != nil {
		return err
	}
	return cs.contractRepo.Delete(ctx, nil, id)
}

func validateContractEnums(c *types.Contract) error {
	if _, ok := validContractTypes[c.ContractType]; c.ContractType != "" && !ok {
		return fmt.Errorf("%w: unknown contract type %q", apperrors.ErrInvalidArgument, c.ContractType)
	}
	if _, ok := validContractStatuses[c.Status]; c.Status != "" && !ok {
		return fmt.Errorf("%w: unknown status %q", apperrors.ErrInvalidArgument, c.Status)
	}
	if _, ok := validAwardStatuses[c.ContractStatus]; c.ContractStatus != "" && !ok {
		return fmt.Errorf("%w: unknown contract status %q", apperrors.ErrInvalidArgument, c.ContractStatus)
	}
	return nil
}

// applyContractPatch copies user-editable fields. ID, FederalID, DataSource
// provenance and creation timestamps never change on edit.
func applyContractPatch(dst, src *types.Contract) {
	dst.Title = src.Title
	dst.ContractName = src.ContractName
	dst.Description = src.Description
	dst.ProductsServices = src.ProductsServices
	dst.PrimaryRequirement = src.PrimaryRequirement
	dst.Keywords = src.Keywords

	dst.Agency = src.Agency
	dst.BuyingOrganization = src.BuyingOrganization
	dst.Department = src.Department
	dst.BuyingOrgLevel1 = src.BuyingOrgLevel1
	dst.BuyingOrgLevel2 = src.BuyingOrgLevel2
	dst.BuyingOrgLevel3 = src.BuyingOrgLevel3

	dst.State = src.State
	dst.PlaceOfPerformanceLocation = src.PlaceOfPerformanceLocation

	if src.ContractType != "" {
		dst.ContractType = src.ContractType
	}
	if src.Status != "" {
		dst.Status = src.Status
	}
	if src.ContractStatus != "" {
		dst.ContractStatus = src.ContractStatus
	}

	dst.ContractNumber = src.ContractNumber
	dst.SolicitationNumber = src.SolicitationNumber
	dst.Contractors = src.Contractors

	dst.ContactFirstName = src.ContactFirstName
	dst.ContactPhone = src.ContactPhone
	dst.ContactEmail = src.ContactEmail

	dst.BudgetMin = src.BudgetMin
	dst.BudgetMax = src.BudgetMax
	dst.AwardValue = src.AwardValue
	dst.NAICSCode = src.NAICSCode
	dst.SetAsideCode = src.SetAsideCode

	dst.AwardDate = src.AwardDate
	dst.StartDate = src.StartDate
	dst.CurrentExpirationDate = src.CurrentExpirationDate
	dst.UltimateExpirationDate = src.UltimateExpirationDate
	dst.ResponseDeadline = src.ResponseDeadline

	dst.SourceURL = src.SourceURL
	dst.AIAnalysisSummary = src.AIAnalysisSummary
}
