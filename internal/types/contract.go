package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Contract is one procurement opportunity/award. Only Title and Agency are
// required at creation; FederalID is assigned once and never reassigned.
type Contract struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FederalID string    `gorm:"column:federal_id;uniqueIndex;not null" json:"federal_id"`

	Title              string `gorm:"column:title;not null" json:"title"`
	ContractName       string `gorm:"column:contract_name" json:"contract_name"`
	Description        string `gorm:"column:description" json:"description"`
	ProductsServices   string `gorm:"column:products_services" json:"products_services"`
	PrimaryRequirement string `gorm:"column:primary_requirement" json:"primary_requirement"`
	Keywords           datatypes.JSON `gorm:"column:keywords;type:jsonb" json:"keywords"`

	Agency             string `gorm:"column:agency;not null" json:"agency"`
	BuyingOrganization string `gorm:"column:buying_organization" json:"buying_organization"`
	Department         string `gorm:"column:department" json:"department"`
	BuyingOrgLevel1    string `gorm:"column:buying_org_level_1" json:"buying_org_level_1"`
	BuyingOrgLevel2    string `gorm:"column:buying_org_level_2" json:"buying_org_level_2"`
	BuyingOrgLevel3    string `gorm:"column:buying_org_level_3" json:"buying_org_level_3"`

	State                      string `gorm:"column:state" json:"state"`
	PlaceOfPerformanceLocation string `gorm:"column:place_of_performance_location" json:"place_of_performance_location"`

	ContractType   string `gorm:"column:contract_type;not null;default:'federal'" json:"contract_type"`
	Status         string `gorm:"column:status;not null;default:'active'" json:"status"`
	ContractStatus string `gorm:"column:contract_status;not null;default:'open'" json:"contract_status"`

	ContractNumber     string `gorm:"column:contract_number" json:"contract_number"`
	SolicitationNumber string `gorm:"column:solicitation_number" json:"solicitation_number"`
	Contractors        string `gorm:"column:contractors" json:"contractors"`

	ContactFirstName string `gorm:"column:contact_first_name" json:"contact_first_name"`
	ContactPhone     string `gorm:"column:contact_phone" json:"contact_phone"`
	ContactEmail     string `gorm:"column:contact_email" json:"contact_email"`

	BudgetMin    *float64 `gorm:"column:budget_min" json:"budget_min,omitempty"`
	BudgetMax    *float64 `gorm:"column:budget_max" json:"budget_max,omitempty"`
	AwardValue   *float64 `gorm:"column:award_value" json:"award_value,omitempty"`
	NAICSCode    string   `gorm:"column:naics_code" json:"naics_code"`
	SetAsideCode string   `gorm:"column:set_aside_code" json:"set_aside_code"`

	AwardDate              *string `gorm:"column:award_date;type:date" json:"award_date,omitempty"`
	StartDate              *string `gorm:"column:start_date;type:date" json:"start_date,omitempty"`
	CurrentExpirationDate  *string `gorm:"column:current_expiration_date;type:date" json:"current_expiration_date,omitempty"`
	UltimateExpirationDate *string `gorm:"column:ultimate_expiration_date;type:date" json:"ultimate_expiration_date,omitempty"`
	ResponseDeadline       *string `gorm:"column:response_deadline;type:date" json:"response_deadline,omitempty"`
	PostedDate             time.Time `gorm:"column:posted_date;not null;default:now()" json:"posted_date"`
	LastUpdated            time.Time `gorm:"column:last_updated;not null;default:now()" json:"last_updated"`

	SourceURL         string     `gorm:"column:source_url" json:"source_url"`
	AIAnalysisSummary string     `gorm:"column:ai_analysis_summary" json:"ai_analysis_summary"`
	DataSource        string     `gorm:"column:data_source;default:'manual'" json:"data_source"`
	UpdatedBy         *uuid.UUID `gorm:"type:uuid;column:updated_by" json:"updated_by,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Contract) TableName() string { return "contracts" }

// KeywordList decodes the stored keywords JSON into a string slice. A missing
// or malformed column decodes to nil.
func (c *Contract) KeywordList() []string {
	if len(c.Keywords) == 0 {
		return nil
	}
	var out []string
	if err := jsonUnmarshal(c.Keywords, &out); err != nil {
		return nil
	}
	return out
}
