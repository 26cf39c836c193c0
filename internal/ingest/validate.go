package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ContractInput is a contract row mapped onto the canonical schema, ready for
// insertion. Nullable fields stay nil when absent from the source.
type ContractInput struct {
	Title              string
	ContractName       string
	Description        string
	ProductsServices   string
	PrimaryRequirement string
	Keywords           []string

	Agency             string
	BuyingOrganization string
	Department         string
	BuyingOrgLevel1    string
	BuyingOrgLevel2    string
	BuyingOrgLevel3    string

	State                      string
	PlaceOfPerformanceLocation string

	ContractType   string
	Status         string
	ContractStatus string

	ContractNumber     string
	SolicitationNumber string
	Contractors        string

	ContactFirstName string
	ContactPhone     string
	ContactEmail     string

	BudgetMin    *float64
	BudgetMax    *float64
	AwardValue   *float64
	NAICSCode    string
	SetAsideCode string

	AwardDate              *string
	StartDate              *string
	CurrentExpirationDate  *string
	UltimateExpirationDate *string
	ResponseDeadline       *string

	SourceURL         string
	AIAnalysisSummary string
}

// ContactInput is a contact row mapped onto the canonical schema.
type ContactInput struct {
	FullName    string
	Title       string
	Agency      string
	Department  string
	State       string
	Email       string
	Phone       string
	ContactType string
	IsFederal   bool
}

// ValidateContracts maps parsed rows onto the contract schema. Every input
// row lands in exactly one of the two outputs: the valid set (input order
// preserved) or at least one error string. Error strings carry the 1-based
// display row number, where the header row counts as row 1.
func ValidateContracts(records []Record) ([]ContractInput, []string) {
	valid := make([]ContractInput, 0, len(records))
	var errs []string

	for i, raw := range records {
		rowNum := i + 2
		rec := canonRecord(raw)

		if missing := missingFields(rec, contractAliases, requiredContractFields); len(missing) > 0 {
			errs = append(errs, fmt.Sprintf("Row %d: Missing required fields: %s", rowNum, strings.Join(missing, ", ")))
			continue
		}

		dates, dateErrs := parseDateFields(rec, rowNum)
		if len(dateErrs) > 0 {
			errs = append(errs, dateErrs...)
			continue
		}

		in := ContractInput{
			Title:              pick(rec, contractAliases, "title"),
			ContractName:       pick(rec, contractAliases, "contract_name"),
			Description:        pick(rec, contractAliases, "description"),
			ProductsServices:   pick(rec, contractAliases, "products_services"),
			PrimaryRequirement: pick(rec, contractAliases, "primary_requirement"),
			Keywords:           SplitKeywords(pick(rec, contractAliases, "keywords")),

			Agency:             pick(rec, contractAliases, "agency"),
			BuyingOrganization: pick(rec, contractAliases, "buying_organization"),
			Department:         pick(rec, contractAliases, "department"),
			BuyingOrgLevel1:    pick(rec, contractAliases, "buying_org_level_1"),
			BuyingOrgLevel2:    pick(rec, contractAliases, "buying_org_level_2"),
			BuyingOrgLevel3:    pick(rec, contractAliases, "buying_org_level_3"),

			State:                      pick(rec, contractAliases, "state"),
			PlaceOfPerformanceLocation: pick(rec, contractAliases, "place_of_performance_location"),

			ContractType:   normalizeContractType(pick(rec, contractAliases, "contract_type")),
			Status:         defaultString(pick(rec, contractAliases, "status"), "active"),
			ContractStatus: defaultString(pick(rec, contractAliases, "contract_status"), "open"),

			ContractNumber:     pick(rec, contractAliases, "contract_number"),
			SolicitationNumber: pick(rec, contractAliases, "solicitation_number"),
			Contractors:        pick(rec, contractAliases, "contractors"),

			ContactFirstName: pick(rec, contractAliases, "contact_first_name"),
			ContactPhone:     pick(rec, contractAliases, "contact_phone"),
			ContactEmail:     pick(rec, contractAliases, "contact_email"),

			BudgetMin:    ParseFloat(pick(rec, contractAliases, "budget_min")),
			BudgetMax:    ParseFloat(pick(rec, contractAliases, "budget_max")),
			AwardValue:   ParseFloat(pick(rec, contractAliases, "award_value")),
			NAICSCode:    pick(rec, contractAliases, "naics_code"),
			SetAsideCode: pick(rec, contractAliases, "set_aside_code"),

			AwardDate:              dates["award_date"],
			StartDate:              dates["start_date"],
			CurrentExpirationDate:  dates["current_expiration_date"],
			UltimateExpirationDate: dates["ultimate_expiration_date"],
			ResponseDeadline:       dates["response_deadline"],

			SourceURL:         pick(rec, contractAliases, "source_url"),
			AIAnalysisSummary: pick(rec, contractAliases, "ai_analysis_summary"),
		}
		valid = append(valid, in)
	}
	return valid, errs
}

// ValidateContacts maps parsed rows onto the contact schema with the same
// row-accounting guarantees as ValidateContracts.
func ValidateContacts(records []Record) ([]ContactInput, []string) {
	valid := make([]ContactInput, 0, len(records))
	var errs []string

	for i, raw := range records {
		rowNum := i + 2
		rec := canonRecord(raw)

		if missing := missingFields(rec, contactAliases, requiredContactFields); len(missing) > 0 {
			errs = append(errs, fmt.Sprintf("Row %d: Missing required fields: %s", rowNum, strings.Join(missing, ", ")))
			continue
		}

		in := ContactInput{
			FullName:    pick(rec, contactAliases, "full_name"),
			Title:       pick(rec, contactAliases, "title"),
			Agency:      pick(rec, contactAliases, "agency"),
			Department:  pick(rec, contactAliases, "department"),
			State:       pick(rec, contactAliases, "state"),
			Email:       pick(rec, contactAliases, "email"),
			Phone:       pick(rec, contactAliases, "phone"),
			ContactType: defaultString(pick(rec, contactAliases, "contact_type"), "procurement"),
			IsFederal:   ParseBool(pick(rec, contactAliases, "is_federal")),
		}
		valid = append(valid, in)
	}
	return valid, errs
}

func missingFields(rec map[string]string, aliases map[string][]string, required []string) []string {
	var missing []string
	for _, field := range required {
		if pick(rec, aliases, field) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// parseDateFields resolves the contract date columns, validating non-empty
// values against the canonical YYYY-MM-DD format.
func parseDateFields(rec map[string]string, rowNum int) (map[string]*string, []string) {
	out := make(map[string]*string, len(contractDateFields))
	var errs []string
	for _, field := range contractDateFields {
		val := pick(rec, contractAliases, field)
		if val == "" {
			out[field] = nil
			continue
		}
		if _, err := time.Parse("2006-01-02", val); err != nil {
			errs = append(errs, fmt.Sprintf("Row %d: Invalid date %q for %s (expected YYYY-MM-DD)", rowNum, val, field))
			continue
		}
		v := val
		out[field] = &v
	}
	return out, errs
}

// ParseFloat parses a numeric cell as float-or-nil. A literal "0" stays 0;
// anything unparsable or missing is nil, never zero.
func ParseFloat(val string) *float64 {
	if val == "" {
		return nil
	}
	cleaned := strings.ReplaceAll(strings.TrimPrefix(strings.TrimSpace(val), "$"), ",", "")
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &f
}

// ParseBool maps "true"/"1" (any case) to true and everything else to false.
func ParseBool(val string) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "true", "1":
		return true
	default:
		return false
	}
}

// SplitKeywords splits a comma-delimited tag cell, trimming each element and
// dropping empties while preserving order. An empty result means no keywords.
func SplitKeywords(val string) []string {
	if strings.TrimSpace(val) == "" {
		return nil
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func normalizeContractType(val string) string {
	if strings.ToLower(strings.TrimSpace(val)) == "state" {
		return "state"
	}
	return "federal"
}

func defaultString(val, fallback string) string {
	if val == "" {
		return fallback
	}
	return val
}
