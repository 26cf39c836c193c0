package ingest

import (
	"sort"
	"strings"
)

// Alias resolution is table-driven: for every canonical field an ordered list
// of acceptable input headers, first present non-empty value wins. Lookups
// are case-, space- and underscore-insensitive.

var contractAliases = map[string][]string{
	"title":         {"title", "contract_title", "opportunity_title", "contract_name"},
	"contract_name": {"contract_name", "title", "contract_title"},
	"description":   {"description", "contract_description", "opportunity_description", "summary"},

	"agency":              {"agency", "contracting_agency", "issuing_agency", "buying_organization"},
	"buying_organization": {"buying_organization", "agency", "contracting_agency"},
	"department":          {"department", "contracting_department", "division"},
	"state":               {"state", "contract_state", "location", "performance_state"},
	"contract_type":       {"contract_type", "opportunity_type", "type"},

	"buying_org_level_1": {"buying_org_level_1", "buying_org:_level_1", "buying_org_1"},
	"buying_org_level_2": {"buying_org_level_2", "buying_org:_level_2", "buying_org_2"},
	"buying_org_level_3": {"buying_org_level_3", "buying_org:_level_3", "buying_org_3"},

	"contract_number":               {"contract_number", "contract_id", "award_number"},
	"solicitation_number":           {"solicitation_number", "rfp_number", "solicitation_id"},
	"contractors":                   {"contractors", "contractor", "vendor", "awardee"},
	"products_services":             {"products_services", "products_&_services", "products_and_services", "scope"},
	"primary_requirement":           {"primary_requirement", "main_requirement", "key_requirement"},
	"place_of_performance_location": {"place_of_performance_location", "place_of_performance_-_location", "performance_location", "work_location"},

	"contact_first_name": {"contact_first_name", "contact_name", "poc_name"},
	"contact_phone":      {"contact_phone", "contact_telephone", "phone"},
	"contact_email":      {"contact_email", "contact_mail", "email"},

	"budget_min":    {"budget_min", "minimum_budget", "min_value", "floor_value"},
	"budget_max":    {"budget_max", "maximum_budget", "max_value", "ceiling_value", "contract_value"},
	"award_value":   {"award_value", "total_value", "contract_amount"},
	"naics_code":    {"naics_code", "naics", "industry_code"},
	"set_aside_code": {"set_aside_code", "set_aside", "small_business"},

	"award_date":               {"award_date", "date_awarded"},
	"start_date":               {"start_date", "performance_start", "begin_date"},
	"current_expiration_date":  {"current_expiration_date", "expiration_date", "end_date"},
	"ultimate_expiration_date": {"ultimate_expiration_date", "final_expiration", "ultimate_end"},
	"response_deadline":        {"response_deadline", "deadline", "due_date", "submission_deadline"},

	"status":              {"status"},
	"contract_status":     {"contract_status"},
	"source_url":          {"source_url", "url", "link", "reference_url"},
	"ai_analysis_summary": {"ai_analysis_summary", "analysis", "ai_summary"},
	"keywords":            {"keywords", "tags", "categories"},
}

var contactAliases = map[string][]string{
	"full_name":    {"full_name", "name", "contact_name", "person_name"},
	"title":        {"title", "position", "job_title", "role"},
	"agency":       {"agency", "organization", "department", "company"},
	"department":   {"department", "division", "office", "unit"},
	"state":        {"state", "location", "state_province"},
	"email":        {"email", "email_address", "contact_email"},
	"phone":        {"phone", "phone_number", "telephone", "contact_phone"},
	"contact_type": {"contact_type", "position_type", "type"},
	"is_federal":   {"is_federal", "federal", "government_level"},
}

var requiredContractFields = []string{"title", "agency"}
var requiredContactFields = []string{"full_name", "title", "agency"}

var contractDateFields = []string{
	"award_date", "start_date", "current_expiration_date",
	"ultimate_expiration_date", "response_deadline",
}

// canonKey makes a header comparable regardless of case, spaces and
// underscores ("Full Name", "full_name" and "fullname" all collide).
func canonKey(key string) string {
	k := strings.ToLower(strings.TrimSpace(key))
	k = strings.ReplaceAll(k, " ", "")
	k = strings.ReplaceAll(k, "_", "")
	return k
}

// canonRecord re-keys a record by canonKey so alias lookups are insensitive
// to the original header spelling. The parser already collapses colliding
// columns, so collisions here only happen for hand-built records; keys are
// walked in sorted order and the first non-empty value wins, keeping the
// outcome independent of map iteration order.
func canonRecord(rec Record) map[string]string {
	keys := make([]string, 0, len(rec))
	for key := range rec {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make(map[string]string, len(rec))
	for _, key := range keys {
		ck := canonKey(key)
		if cur, taken := out[ck]; taken && cur != "" {
			continue
		}
		out[ck] = rec[key]
	}
	return out
}

// pick returns the first present non-empty value for the canonical field's
// ordered alias list.
func pick(rec map[string]string, aliases map[string][]string, field string) string {
	for _, alias := range aliases[field] {
		if val := rec[canonKey(alias)]; val != "" {
			return val
		}
	}
	return ""
}
