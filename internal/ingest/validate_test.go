package ingest

import (
	"reflect"
	"testing"
)

func TestValidateContracts_MissingRequiredFieldsByRowNumber(t *testing.T) {
	records, err := Parse("upload.csv", []byte("title,agency\nIT Support,DoD\n,GSA\n"))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	valid, errs := ValidateContracts(records)
	if len(valid) != 1 {
		t.Fatalf("expected 1 valid row, got %d", len(valid))
	}
	if valid[0].Title != "IT Support" || valid[0].Agency != "DoD" {
		t.Fatalf("unexpected valid row: %+v", valid[0])
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	if errs[0] != "Row 3: Missing required fields: title" {
		t.Fatalf("unexpected error message: %q", errs[0])
	}
}

func TestValidateContracts_RowNumbersSkipEmptyRowsWithParser(t *testing.T) {
	// The empty physical row is dropped at parse time, so record index 1 is
	// the row that was physically third; its display number follows the
	// surviving order.
	records, err := Parse("upload.csv", []byte("title,agency\nfirst,GSA\n,\n,DoD\n"))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 parsed records, got %d", len(records))
	}
	_, errs := ValidateContracts(records)
	if len(errs) != 1 || errs[0] != "Row 3: Missing required fields: title" {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestValidateContracts_EveryRowLandsExactlyOnce(t *testing.T) {
	records := []Record{
		{"title": "a", "agency": "GSA"},
		{"title": "", "agency": ""},
		{"title": "b", "agency": "DoD"},
		{"title": "c", "agency": "FAA", "award_date": "not-a-date"},
	}
	valid, errs := ValidateContracts(records)
	if len(valid)+len(errs) != len(records) {
		t.Fatalf("accounting broken: %d valid + %d errors != %d rows", len(valid), len(errs), len(records))
	}
	if valid[0].Title != "a" || valid[1].Title != "b" {
		t.Fatalf("input order not preserved: %+v", valid)
	}
}

func TestValidateContracts_AliasResolutionOrder(t *testing.T) {
	records := []Record{{
		"opportunity_title":  "Radar Upgrade",
		"contracting_agency": "FAA",
	}}
	valid, errs := ValidateContracts(records)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if valid[0].Title != "Radar Upgrade" || valid[0].Agency != "FAA" {
		t.Fatalf("aliases not resolved: %+v", valid[0])
	}
}

func TestValidateContracts_AliasLookupIgnoresCaseSpacesUnderscores(t *testing.T) {
	records := []Record{{
		"Contract Title": "Fleet Maintenance",
		"IssuingAgency":  "GSA",
	}}
	valid, errs := ValidateContracts(records)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if valid[0].Title != "Fleet Maintenance" || valid[0].Agency != "GSA" {
		t.Fatalf("canonical lookup failed: %+v", valid[0])
	}
}

func TestValidateContracts_CollidingKeysResolveDeterministically(t *testing.T) {
	// "Contract Title" and "contracttitle" canonicalize to the same field;
	// with an empty and a non-empty value the non-empty one must win on
	// every run, not whichever map iteration order happens to visit last
	records := []Record{{
		"Contract Title": "",
		"contracttitle":  "Bridge Inspection",
		"agency":         "DOT",
	}}
	for i := 0; i < 25; i++ {
		valid, errs := ValidateContracts(records)
		if len(errs) != 0 {
			t.Fatalf("unexpected errors: %v", errs)
		}
		if valid[0].Title != "Bridge Inspection" {
			t.Fatalf("expected the non-empty value, got %q", valid[0].Title)
		}
	}
}

func TestValidateContracts_Coercions(t *testing.T) {
	records := []Record{{
		"title":         "Cloud Hosting",
		"agency":        "GSA",
		"budget_min":    "$1,500,000",
		"budget_max":    "0",
		"award_value":   "not a number",
		"contract_type": "STATE",
		"keywords":      " cloud , hosting ,, security ",
	}}
	valid, errs := ValidateContracts(records)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	in := valid[0]
	if in.BudgetMin == nil || *in.BudgetMin != 1500000 {
		t.Fatalf("budget_min: %v", in.BudgetMin)
	}
	if in.BudgetMax == nil || *in.BudgetMax != 0 {
		t.Fatalf("literal zero must stay zero, got %v", in.BudgetMax)
	}
	if in.AwardValue != nil {
		t.Fatalf("unparsable numeric must be nil, got %v", *in.AwardValue)
	}
	if in.ContractType != "state" {
		t.Fatalf("contract_type: %q", in.ContractType)
	}
	if !reflect.DeepEqual(in.Keywords, []string{"cloud", "hosting", "security"}) {
		t.Fatalf("keywords: %v", in.Keywords)
	}
}

func TestValidateContracts_Defaults(t *testing.T) {
	records := []Record{{"title": "a", "agency": "GSA"}}
	valid, _ := ValidateContracts(records)
	in := valid[0]
	if in.ContractType != "federal" {
		t.Fatalf("contract_type default: %q", in.ContractType)
	}
	if in.Status != "active" || in.ContractStatus != "open" {
		t.Fatalf("status defaults: %q / %q", in.Status, in.ContractStatus)
	}
	if in.BudgetMin != nil || in.ResponseDeadline != nil {
		t.Fatalf("absent optionals must be nil: %+v", in)
	}
}

func TestValidateContracts_RejectsMalformedDates(t *testing.T) {
	records := []Record{
		{"title": "a", "agency": "GSA", "response_deadline": "03/15/2024"},
		{"title": "b", "agency": "DoD", "response_deadline": "2024-03-15"},
	}
	valid, errs := ValidateContracts(records)
	if len(valid) != 1 || valid[0].Title != "b" {
		t.Fatalf("unexpected valid set: %+v", valid)
	}
	if len(errs) != 1 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := `Row 2: Invalid date "03/15/2024" for response_deadline (expected YYYY-MM-DD)`
	if errs[0] != want {
		t.Fatalf("unexpected error message:\n got %q\nwant %q", errs[0], want)
	}
	if valid[0].ResponseDeadline == nil || *valid[0].ResponseDeadline != "2024-03-15" {
		t.Fatalf("valid date dropped: %+v", valid[0])
	}
}

func TestValidateContacts_RequiredFieldsAndDefaults(t *testing.T) {
	records := []Record{
		{"full_name": "Jane Roe", "title": "CIO", "agency": "GSA"},
		{"full_name": "No Title", "title": "", "agency": "DoD"},
		{"full_name": "", "title": "", "agency": ""},
	}
	valid, errs := ValidateContacts(records)
	if len(valid) != 1 {
		t.Fatalf("expected 1 valid contact, got %d", len(valid))
	}
	if valid[0].ContactType != "procurement" {
		t.Fatalf("contact_type default: %q", valid[0].ContactType)
	}
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}
	if errs[0] != "Row 3: Missing required fields: title" {
		t.Fatalf("unexpected error: %q", errs[0])
	}
	if errs[1] != "Row 4: Missing required fields: full_name, title, agency" {
		t.Fatalf("unexpected error: %q", errs[1])
	}
}

func TestValidateContacts_AliasesAndBool(t *testing.T) {
	records := []Record{{
		"name":         "Sam Lee",
		"position":     "CTO",
		"organization": "Department of Energy",
		"is_federal":   "TRUE",
	}}
	valid, errs := ValidateContacts(records)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	in := valid[0]
	if in.FullName != "Sam Lee" || in.Title != "CTO" || in.Agency != "Department of Energy" {
		t.Fatalf("aliases not resolved: %+v", in)
	}
	if !in.IsFederal {
		t.Fatalf("is_federal not coerced")
	}
}

func TestParseFloat(t *testing.T) {
	cases := []struct {
		in   string
		want *float64
	}{
		{"", nil},
		{"abc", nil},
		{"0", ptr(0.0)},
		{"1000", ptr(1000.0)},
		{"$2,500.50", ptr(2500.50)},
	}
	for _, tc := range cases {
		got := ParseFloat(tc.in)
		switch {
		case tc.want == nil && got != nil:
			t.Fatalf("ParseFloat(%q) = %v, want nil", tc.in, *got)
		case tc.want != nil && (got == nil || *got != *tc.want):
			t.Fatalf("ParseFloat(%q) = %v, want %v", tc.in, got, *tc.want)
		}
	}
}

func TestParseBool(t *testing.T) {
	truthy := []string{"true", "TRUE", "True", "1", " 1 "}
	falsy := []string{"", "false", "yes", "0", "federal"}
	for _, v := range truthy {
		if !ParseBool(v) {
			t.Fatalf("ParseBool(%q) = false, want true", v)
		}
	}
	for _, v := range falsy {
		if ParseBool(v) {
			t.Fatalf("ParseBool(%q) = true, want false", v)
		}
	}
}

func ptr(f float64) *float64 { return &f }
