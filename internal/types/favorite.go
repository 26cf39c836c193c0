package types

import (
	"time"

	"github.com/google/uuid"
)

type UserFavorite struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_user_favorites_user_contract,unique" json:"user_id"`
	User       *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ContractID uuid.UUID `gorm:"type:uuid;not null;index:idx_user_favorites_user_contract,unique" json:"contract_id"`
	Contract   *Contract `gorm:"constraint:OnDelete:CASCADE;foreignKey:ContractID;references:ID" json:"contract,omitempty"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (UserFavorite) TableName() string { return "user_favorites" }
