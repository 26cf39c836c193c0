package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/federaltalks/iq-backend/internal/ingest"
	"github.com/federaltalks/iq-backend/internal/pkg/logger"
	"github.com/federaltalks/iq-backend/internal/repos"
	"github.com/federaltalks/iq-backend/internal/types"
)

// UploadResult is the aggregated end-of-operation summary; nothing is
// streamed incrementally.
type UploadResult struct {
	Total        int      `json:"total"`
	SuccessCount int      `json:"success_count"`
	Errors       []string `json:"errors"`
}

type UploadService interface {
	// ProcessUpload runs an uploaded file through parse, validate and
	// best-effort sequential insertion, then writes one audit row.
	ProcessUpload(ctx context.Context, actor uuid.UUID, fileName, fileType string, data []byte, kind ingest.Kind) (*UploadResult, error)
	// InsertContracts writes pre-validated contract rows one at a time,
	// continuing past per-record failures.
	InsertContracts(ctx context.Context, actor uuid.UUID, inputs []ingest.ContractInput) (int, []string)
	// InsertContacts is the contact counterpart of InsertContracts.
	InsertContacts(ctx context.Context, inputs []ingest.ContactInput) (int, []string)
	History(ctx context.Context, limit int) ([]types.UploadLog, error)
}

type uploadService struct {
	db            *gorm.DB
	log           *logger.Logger
	contractRepo  repos.ContractRepo
	contactRepo   repos.ContactRepo
	uploadLogRepo repos.UploadLogRepo
}

func NewUploadService(db *gorm.DB, log *logger.Logger, contractRepo repos.ContractRepo, contactRepo repos.ContactRepo, uploadLogRepo repos.UploadLogRepo) UploadService {
	serviceLog := log.With("service", "UploadService")
	return &uploadService{
		db:            db,
		log:           serviceLog,
		contractRepo:  contractRepo,
		contactRepo:   contactRepo,
		uploadLogRepo: uploadLogRepo,
	}
}

func (us *uploadService) ProcessUpload(ctx context.Context, actor uuid.UUID, fileName, fileType string, data []byte, kind ingest.Kind) (*UploadResult, error) {
	records, err := ingest.Parse(fileName, data)
	if err != nil {
		// File-level failures abort the batch before any write.
		return nil, err
	}

	var successCount int
	var allErrors []string

	switch kind {
	case ingest.KindContacts:
		valid, validationErrs := ingest.ValidateContacts(records)
		allErrors = append(allErrors, validationErrs...)
		count, insertErrs := us.InsertContacts(ctx, valid)
		successCount = count
		allErrors = append(allErrors, insertErrs...)
	default:
		valid, validationErrs := ingest.ValidateContracts(records)
		allErrors = append(allErrors, validationErrs...)
		count, insertErrs := us.InsertContracts(ctx, actor, valid)
		successCount = count
		allErrors = append(allErrors, insertErrs...)
	}

	us.writeAuditRow(ctx, actor, fileName, fileType, kind, len(records), successCount, allErrors)

	return &UploadResult{
		Total:        len(records),
		SuccessCount: successCount,
		Errors:       allErrors,
	}, nil
}

func (us *uploadService) InsertContracts(ctx context.Context, actor uuid.UUID, inputs []ingest.ContractInput) (int, []string) {
	successCount := 0
	var errs []string
	for _, in := range inputs {
		// Defense in depth: callers may hand over rows that bypassed the
		// validator.
		if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Agency) == "" {
			errs = append(errs, fmt.Sprintf("Missing required fields for contract: %s", defaultTitle(in.Title)))
			continue
		}
		contract := contractFromInput(actor, in)
		if _, err := us.contractRepo.Create(ctx, nil, []*types.Contract{contract}); err != nil {
			errs = append(errs, fmt.Sprintf("Error inserting contract %s: %s", in.Title, err.Error()))
			continue
		}
		successCount++
	}
	return successCount, errs
}

func (us *uploadService) InsertContacts(ctx context.Context, inputs []ingest.ContactInput) (int, []string) {
	successCount := 0
	var errs []string
	for _, in := range inputs {
		if strings.TrimSpace(in.FullName) == "" || strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Agency) == "" {
			errs = append(errs, fmt.Sprintf("Missing required fields for contact: %s", defaultTitle(in.FullName)))
			continue
		}
		contact := &types.Contact{
			FullName:    in.FullName,
			Title:       in.Title,
			Agency:      in.Agency,
			Department:  in.Department,
			State:       in.State,
			Email:       in.Email,
			Phone:       in.Phone,
			ContactType: in.ContactType,
			IsFederal:   in.IsFederal,
			DataSource:  "upload",
		}
		if _, err := us.contactRepo.Create(ctx, nil, []*types.Contact{contact}); err != nil {
			errs = append(errs, fmt.Sprintf("Error inserting contact %s: %s", in.FullName, err.Error()))
			continue
		}
		successCount++
	}
	return successCount, errs
}

func (us *uploadService) History(ctx context.Context, limit int) ([]types.UploadLog, error) {
	return us.uploadLogRepo.List(ctx, nil, limit)
}

// writeAuditRow records the operation summary. A failed audit write must not
// mask the outcome of the data operation it was recording, so it is logged
// and swallowed.
func (us *uploadService) writeAuditRow(ctx context.Context, actor uuid.UUID, fileName, fileType string, kind ingest.Kind, processed, successful int, errs []string) {
	entry := &types.UploadLog{
		UploadedBy:        actor,
		FileName:          fileName,
		FileType:          fileType,
		RecordsProcessed:  processed,
		RecordsSuccessful: successful,
		RecordsFailed:     processed - successful,
		UploadType:        string(kind),
	}
	if len(errs) > 0 {
		entry.ErrorDetails = types.JSONStrings(errs)
	}
	if _, err := us.uploadLogRepo.Create(ctx, nil, entry); err != nil {
		us.log.Error("Failed to write upload audit row", "file_name", fileName, "error", err)
	}
}

func contractFromInput(actor uuid.UUID, in ingest.ContractInput) *types.Contract {
	now := time.Now().UTC()
	contract := &types.Contract{
		FederalID: NewFederalID(),

		Title:              in.Title,
		ContractName:       in.ContractName,
		Description:        in.Description,
		ProductsServices:   in.ProductsServices,
		PrimaryRequirement: in.PrimaryRequirement,
		Keywords:           types.JSONStrings(in.Keywords),

		Agency:             in.Agency,
		BuyingOrganization: in.BuyingOrganization,
		Department:         in.Department,
		BuyingOrgLevel1:    in.BuyingOrgLevel1,
		BuyingOrgLevel2:    in.BuyingOrgLevel2,
		BuyingOrgLevel3:    in.BuyingOrgLevel3,

		State:                      in.State,
		PlaceOfPerformanceLocation: in.PlaceOfPerformanceLocation,

		ContractType:   in.ContractType,
		Status:         in.Status,
		ContractStatus: in.ContractStatus,

		ContractNumber:     in.ContractNumber,
		SolicitationNumber: in.SolicitationNumber,
		Contractors:        in.Contractors,

		ContactFirstName: in.ContactFirstName,
		ContactPhone:     in.ContactPhone,
		ContactEmail:     in.ContactEmail,

		BudgetMin:    in.BudgetMin,
		BudgetMax:    in.BudgetMax,
		AwardValue:   in.AwardValue,
		NAICSCode:    in.NAICSCode,
		SetAsideCode: in.SetAsideCode,

		AwardDate:              nilIfEmpty(in.AwardDate),
		StartDate:              nilIfEmpty(in.StartDate),
		CurrentExpirationDate:  nilIfEmpty(in.CurrentExpirationDate),
		UltimateExpirationDate: nilIfEmpty(in.UltimateExpirationDate),
		ResponseDeadline:       nilIfEmpty(in.ResponseDeadline),
		PostedDate:             now,
		LastUpdated:            now,

		SourceURL:         in.SourceURL,
		AIAnalysisSummary: in.AIAnalysisSummary,
		DataSource:        "upload",
	}
	if actor != uuid.Nil {
		actorID := actor
		contract.UpdatedBy = &actorID
	}
	return contract
}

// NewFederalID mints the system-generated contract identity. Assigned once,
// never reassigned.
func NewFederalID() string {
	return "FED-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:12])
}

// nilIfEmpty guards against the store rejecting an empty string as an
// invalid date literal.
func nilIfEmpty(val *string) *string {
	if val == nil || strings.TrimSpace(*val) == "" {
		return nil
	}
	return val
}

func defaultTitle(val string) string {
	if strings.TrimSpace(val) == "" {
		return "Unknown"
	}
	return val
}
