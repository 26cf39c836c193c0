package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/federaltalks/iq-backend/internal/pkg/logger"
	"github.com/federaltalks/iq-backend/internal/types"
)

type ContractRepo interface {
	Create(ctx context.Context, tx *gorm.DB, contracts []*types.Contract) ([]*types.Contract, error)
	List(ctx context.Context, tx *gorm.DB) ([]types.Contract, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Contract, error)
	Update(ctx context.Context, tx *gorm.DB, contract *types.Contract) (*types.Contract, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	CountGrouped(ctx context.Context, tx *gorm.DB, column string) (map[string]int64, error)
}

type contractRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContractRepo(db *gorm.DB, baseLog *logger.Logger) ContractRepo {
	repoLog := baseLog.With("repo", "ContractRepo")
	return &contractRepo{db: db, log: repoLog}
}

func (cr *contractRepo) Create(ctx context.Context, tx *gorm.DB, contracts []*types.Contract) ([]*types.Contract, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(contracts) == 0 {
		return []*types.Contract{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}

func (cr *contractRepo) List(ctx context.Context, tx *gorm.DB) ([]types.Contract, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []types.Contract
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *contractRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Contract, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Contract
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *contractRepo) Update(ctx context.Context, tx *gorm.DB, contract *types.Contract) (*types.Contract, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if err := transaction.WithContext(ctx).Save(contract).Error; err != nil {
		return nil, err
	}
	return contract, nil
}

func (cr *contractRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Contract{}).Error
}

func (cr *contractRepo) CountGrouped(ctx context.Context, tx *gorm.DB, column string) (map[string]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	type row struct {
		Value string
		Count int64
	}
	var rows []row
	if err := transaction.WithContext(ctx).
		Model(&types.Contract{}).
		Select(column+" AS value, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Value] = r.Count
	}
	return out, nil
}
