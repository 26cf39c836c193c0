package types

import (
	"time"

	"github.com/google/uuid"
)

type DemoRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email       string    `gorm:"column:email;not null" json:"email"`
	FullName    string    `gorm:"column:full_name;not null" json:"full_name"`
	CompanyName string    `gorm:"column:company_name" json:"company_name"`
	Phone       string    `gorm:"column:phone" json:"phone"`
	Message     string    `gorm:"column:message" json:"message"`
	Status      string    `gorm:"column:status;not null;default:'pending'" json:"status"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (DemoRequest) TableName() string { return "demo_requests" }
