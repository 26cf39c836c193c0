package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact is one procurement decision-maker. Contacts are not relationally
// joined to contracts.
type Contact struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FullName    string    `gorm:"column:full_name;not null" json:"full_name"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	Agency      string    `gorm:"column:agency;not null" json:"agency"`
	Department  string    `gorm:"column:department" json:"department"`
	State       string    `gorm:"column:state" json:"state"`
	Email       string    `gorm:"column:email" json:"email"`
	Phone       string    `gorm:"column:phone" json:"phone"`
	ContactType string    `gorm:"column:contact_type;not null;default:'procurement'" json:"contact_type"`
	IsFederal   bool      `gorm:"column:is_federal;not null;default:false" json:"is_federal"`
	DataSource  string    `gorm:"column:data_source;default:'manual'" json:"data_source"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Contact) TableName() string { return "contacts" }
