package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Pipeline struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
	IsDefault   bool      `gorm:"column:is_default;not null;default:false" json:"is_default"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Pipeline) TableName() string { return "pipelines" }

type PipelineStage struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User       *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	OrderIndex int       `gorm:"column:order_index;not null;default:0" json:"order_index"`
	Color      string    `gorm:"column:color" json:"color"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (PipelineStage) TableName() string { return "pipeline_stages" }

// PipelineContract places one contract on one stage of a user's pipeline.
type PipelineContract struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PipelineID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"pipeline_id"`
	Pipeline       *Pipeline      `gorm:"constraint:OnDelete:CASCADE;foreignKey:PipelineID;references:ID" json:"pipeline,omitempty"`
	ContractID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"contract_id"`
	Contract       *Contract      `gorm:"constraint:OnDelete:CASCADE;foreignKey:ContractID;references:ID" json:"contract,omitempty"`
	StageID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"stage_id"`
	Stage          *PipelineStage `gorm:"constraint:OnDelete:CASCADE;foreignKey:StageID;references:ID" json:"stage,omitempty"`
	AssignedTo     string         `gorm:"column:assigned_to" json:"assigned_to"`
	Notes          string         `gorm:"column:notes" json:"notes"`
	Probability    int            `gorm:"column:probability;not null;default:0" json:"probability"`
	EstimatedValue *float64       `gorm:"column:estimated_value" json:"estimated_value,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (PipelineContract) TableName() string { return "pipeline_contracts" }
