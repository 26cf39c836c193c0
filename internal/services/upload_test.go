package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/federaltalks/iq-backend/internal/ingest"
	apperrors "github.com/federaltalks/iq-backend/internal/pkg/errors"
	"github.com/federaltalks/iq-backend/internal/pkg/logger"
	"github.com/federaltalks/iq-backend/internal/types"
)

type fakeContractRepo struct {
	created []*types.Contract
	// failOn fails the Nth create call, 1-based. 0 disables.
	failOn int
	calls  int
}

func (f *fakeContractRepo) Create(ctx context.Context, tx *gorm.DB, contracts []*types.Contract) ([]*types.Contract, error) {
	f.calls++
	if f.failOn != 0 && f.calls == f.failOn {
		return nil, errors.New("duplicate key value violates unique constraint")
	}
	for _, c := range contracts {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
	}
	f.created = append(f.created, contracts...)
	return contracts, nil
}

func (f *fakeContractRepo) List(ctx context.Context, tx *gorm.DB) ([]types.Contract, error) {
	out := make([]types.Contract, len(f.created))
	for i, c := range f.created {
		out[i] = *c
	}
	return out, nil
}

func (f *fakeContractRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Contract, error) {
	var out []*types.Contract
	for _, id := range ids {
		for _, c := range f.created {
			if c.ID == id {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

func (f *fakeContractRepo) Update(ctx context.Context, tx *gorm.DB, contract *types.Contract) (*types.Contract, error) {
	return contract, nil
}

func (f *fakeContractRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return nil
}

func (f *fakeContractRepo) CountGrouped(ctx context.Context, tx *gorm.DB, column string) (map[string]int64, error) {
	return map[string]int64{}, nil
}

type fakeContactRepo struct {
	created []*types.Contact
	failOn  int
	calls   int
}

func (f *fakeContactRepo) Create(ctx context.Context, tx *gorm.DB, contacts []*types.Contact) ([]*types.Contact, error) {
	f.calls++
	if f.failOn != 0 && f.calls == f.failOn {
		return nil, errors.New("insert failed")
	}
	f.created = append(f.created, contacts...)
	return contacts, nil
}

func (f *fakeContactRepo) List(ctx context.Context, tx *gorm.DB) ([]types.Contact, error) {
	return nil, nil
}

func (f *fakeContactRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Contact, error) {
	return nil, nil
}

func (f *fakeContactRepo) Update(ctx context.Context, tx *gorm.DB, contact *types.Contact) (*types.Contact, error) {
	return contact, nil
}

func (f *fakeContactRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return nil
}

func (f *fakeContactRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	return int64(len(f.created)), nil
}

type fakeUploadLogRepo struct {
	entries []*types.UploadLog
	failAll bool
}

func (f *fakeUploadLogRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.UploadLog) (*types.UploadLog, error) {
	if f.failAll {
		return nil, errors.New("audit table unavailable")
	}
	f.entries = append(f.entries, entry)
	return entry, nil
}

func (f *fakeUploadLogRepo) List(ctx context.Context, tx *gorm.DB, limit int) ([]types.UploadLog, error) {
	out := make([]types.UploadLog, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, *e)
	}
	return out, nil
}

func newTestUploadService(t *testing.T, contracts *fakeContractRepo, contacts *fakeContactRepo, logs *fakeUploadLogRepo) UploadService {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	return NewUploadService(nil, log, contracts, contacts, logs)
}

func contractCSV(rows ...string) []byte {
	return []byte("title,agency\n" + strings.Join(rows, "\n") + "\n")
}

func TestProcessUpload_AllRowsSucceed(t *testing.T) {
	contracts := &fakeContractRepo{}
	logs := &fakeUploadLogRepo{}
	svc := newTestUploadService(t, contracts, &fakeContactRepo{}, logs)

	actor := uuid.New()
	result, err := svc.ProcessUpload(context.Background(), actor, "batch.csv", "text/csv",
		contractCSV("a,GSA", "b,DoD"), ingest.KindContracts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 2 || result.SuccessCount != 2 || len(result.Errors) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(contracts.created) != 2 {
		t.Fatalf("expected 2 inserts, got %d", len(contracts.created))
	}
	for _, c := range contracts.created {
		if !strings.HasPrefix(c.FederalID, "FED-") || len(c.FederalID) != 16 {
			t.Fatalf("bad federal id: %q", c.FederalID)
		}
		if c.DataSource != "upload" {
			t.Fatalf("data source: %q", c.DataSource)
		}
		if c.UpdatedBy == nil || *c.UpdatedBy != actor {
			t.Fatalf("actor not recorded: %v", c.UpdatedBy)
		}
	}
}

func TestProcessUpload_PartialFailureContinuesPastBadRecord(t *testing.T) {
	contracts := &fakeContractRepo{failOn: 3}
	logs := &fakeUploadLogRepo{}
	svc := newTestUploadService(t, contracts, &fakeContactRepo{}, logs)

	result, err := svc.ProcessUpload(context.Background(), uuid.New(), "batch.csv", "text/csv",
		contractCSV("r1,GSA", "r2,GSA", "r3,GSA", "r4,GSA", "r5,GSA"), ingest.KindContracts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 5 || result.SuccessCount != 4 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Error inserting contract r3") {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(contracts.created) != 4 {
		t.Fatalf("insert-after-failure broken: %d created", len(contracts.created))
	}
}

func TestProcessUpload_MixesValidationAndInsertErrors(t *testing.T) {
	contracts := &fakeContractRepo{failOn: 1}
	logs := &fakeUploadLogRepo{}
	svc := newTestUploadService(t, contracts, &fakeContactRepo{}, logs)

	result, err := svc.ProcessUpload(context.Background(), uuid.New(), "batch.csv", "text/csv",
		contractCSV(",GSA", "good,DoD"), ingest.KindContracts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 2 || result.SuccessCount != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected validation + insert error, got %v", result.Errors)
	}
	if result.Errors[0] != "Row 2: Missing required fields: title" {
		t.Fatalf("validation errors must come first: %v", result.Errors)
	}
}

func TestProcessUpload_WritesOneAuditRow(t *testing.T) {
	contracts := &fakeContractRepo{failOn: 2}
	logs := &fakeUploadLogRepo{}
	svc := newTestUploadService(t, contracts, &fakeContactRepo{}, logs)

	actor := uuid.New()
	_, err := svc.ProcessUpload(context.Background(), actor, "batch.csv", "text/csv",
		contractCSV("a,GSA", "b,GSA", "c,GSA"), ingest.KindContracts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs.entries) != 1 {
		t.Fatalf("expected exactly one audit row, got %d", len(logs.entries))
	}
	entry := logs.entries[0]
	if entry.UploadedBy != actor || entry.FileName != "batch.csv" || entry.UploadType != "contracts" {
		t.Fatalf("unexpected audit row: %+v", entry)
	}
	if entry.RecordsProcessed != 3 || entry.RecordsSuccessful != 2 || entry.RecordsFailed != 1 {
		t.Fatalf("audit counts: %+v", entry)
	}
	if len(entry.ErrorDetails) == 0 {
		t.Fatalf("error details missing from audit row")
	}
}

func TestProcessUpload_AuditFailureDoesNotMaskResult(t *testing.T) {
	contracts := &fakeContractRepo{}
	logs := &fakeUploadLogRepo{failAll: true}
	svc := newTestUploadService(t, contracts, &fakeContactRepo{}, logs)

	result, err := svc.ProcessUpload(context.Background(), uuid.New(), "batch.csv", "text/csv",
		contractCSV("a,GSA"), ingest.KindContracts)
	if err != nil {
		t.Fatalf("audit failure leaked: %v", err)
	}
	if result.SuccessCount != 1 || len(result.Errors) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestProcessUpload_UnsupportedFileAbortsBeforeWrites(t *testing.T) {
	contracts := &fakeContractRepo{}
	logs := &fakeUploadLogRepo{}
	svc := newTestUploadService(t, contracts, &fakeContactRepo{}, logs)

	_, err := svc.ProcessUpload(context.Background(), uuid.New(), "batch.pdf", "application/pdf",
		[]byte("junk"), ingest.KindContracts)
	if !errors.Is(err, apperrors.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if len(contracts.created) != 0 || len(logs.entries) != 0 {
		t.Fatalf("file-level failure must not write anything")
	}
}

func TestProcessUpload_ContactsPath(t *testing.T) {
	contacts := &fakeContactRepo{failOn: 2}
	logs := &fakeUploadLogRepo{}
	svc := newTestUploadService(t, &fakeContractRepo{}, contacts, logs)

	data := []byte("full_name,title,agency\nJane Roe,CIO,GSA\nSam Lee,CTO,DoD\n")
	result, err := svc.ProcessUpload(context.Background(), uuid.New(), "contacts.csv", "text/csv",
		data, ingest.KindContacts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 2 || result.SuccessCount != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Error inserting contact Sam Lee") {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if logs.entries[0].UploadType != "contacts" {
		t.Fatalf("audit upload type: %q", logs.entries[0].UploadType)
	}
}

func TestInsertContracts_RechecksRequiredFields(t *testing.T) {
	contracts := &fakeContractRepo{}
	svc := newTestUploadService(t, contracts, &fakeContactRepo{}, &fakeUploadLogRepo{})

	count, errs := svc.InsertContracts(context.Background(), uuid.Nil, []ingest.ContractInput{
		{Title: "  ", Agency: "GSA"},
		{Title: "ok", Agency: "GSA"},
	})
	if count != 1 || len(contracts.created) != 1 {
		t.Fatalf("count=%d created=%d", count, len(contracts.created))
	}
	if len(errs) != 1 || errs[0] != "Missing required fields for contract: Unknown" {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestNewFederalID_Shape(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewFederalID()
		if len(id) != 16 || !strings.HasPrefix(id, "FED-") {
			t.Fatalf("bad shape: %q", id)
		}
		if id != strings.ToUpper(id) {
			t.Fatalf("not uppercase: %q", id)
		}
		if seen[id] {
			t.Fatalf("collision after %d ids: %q", i, id)
		}
		seen[id] = true
	}
}
