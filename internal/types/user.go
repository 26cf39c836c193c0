package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email              string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password           string    `gorm:"not null;column:password" json:"-"`
	FullName           string    `gorm:"column:full_name;not null" json:"full_name"`
	CompanyName        string    `gorm:"column:company_name" json:"company_name"`
	Phone              string    `gorm:"column:phone" json:"phone"`
	Role               string    `gorm:"column:role;not null;default:'user'" json:"role"`
	IsActive           bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	TrialDaysRemaining int       `gorm:"column:trial_days_remaining;not null;default:0" json:"trial_days_remaining"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
