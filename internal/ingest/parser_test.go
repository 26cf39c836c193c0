package ingest

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/federaltalks/iq-backend/internal/pkg/errors"
)

func TestParse_RejectsUnsupportedExtension(t *testing.T) {
	for _, name := range []string{"data.pdf", "data.txt", "data.json", "data"} {
		_, err := Parse(name, []byte("title,agency\na,b\n"))
		if !errors.Is(err, apperrors.ErrUnsupportedFormat) {
			t.Fatalf("%s: expected ErrUnsupportedFormat, got %v", name, err)
		}
	}
}

func TestParse_AcceptsSupportedExtensionsCaseInsensitively(t *testing.T) {
	csvData := []byte("title,agency\nIT Support,DoD\n")
	for _, name := range []string{"upload.csv", "UPLOAD.CSV", "upload.Csv"} {
		records, err := Parse(name, csvData)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if len(records) != 1 {
			t.Fatalf("%s: expected 1 record, got %d", name, len(records))
		}
	}
}

func TestParseCSV_NormalizesHeaders(t *testing.T) {
	data := []byte("\"Contract Title\",  Issuing   Agency \ncloud migration,GSA\n")
	records, err := Parse("upload.csv", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if got := records[0]["contract_title"]; got != "cloud migration" {
		t.Fatalf("expected contract_title mapped, got record %v", records[0])
	}
	if got := records[0]["issuing_agency"]; got != "GSA" {
		t.Fatalf("expected issuing_agency mapped, got record %v", records[0])
	}
}

func TestParseCSV_QuotedFieldsKeepEmbeddedCommas(t *testing.T) {
	data := []byte("title,description\n\"IT, Cloud and Security\",\"covers a, b and c\"\n")
	records, err := Parse("upload.csv", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if got := records[0]["title"]; got != "IT, Cloud and Security" {
		t.Fatalf("embedded comma split the field: %q", got)
	}
	if got := records[0]["description"]; got != "covers a, b and c" {
		t.Fatalf("embedded comma split the field: %q", got)
	}
}

func TestParseCSV_SkipsFullyEmptyRows(t *testing.T) {
	data := []byte("title,agency\nfirst,GSA\n,\n\"\",\nsecond,DoD\n")
	records, err := Parse("upload.csv", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected empty rows skipped, got %d records", len(records))
	}
	if records[0]["title"] != "first" || records[1]["title"] != "second" {
		t.Fatalf("unexpected records: %v", records)
	}
}

func TestParseCSV_ShortRowsPadWithEmpty(t *testing.T) {
	data := []byte("title,agency,state\nonly title\n")
	records, err := Parse("upload.csv", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0]["agency"] != "" || records[0]["state"] != "" {
		t.Fatalf("expected missing cells empty, got %v", records[0])
	}
}

func TestParseCSV_CollidingHeaderColumnsKeepFirstNonEmptyValue(t *testing.T) {
	// "ContractTitle" and "Contract Title" normalize differently but name
	// the same field; the leftmost non-empty cell must win every time
	data := []byte("ContractTitle,Contract Title,Agency\n,Cloud Migration,GSA\nSecurity Audit,ignored,DoD\n")
	for i := 0; i < 25; i++ {
		records, err := Parse("upload.csv", data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}
		if got := records[0]["contracttitle"]; got != "Cloud Migration" {
			t.Fatalf("expected empty first column to defer, got %q", got)
		}
		if got := records[1]["contracttitle"]; got != "Security Audit" {
			t.Fatalf("expected first column to win, got %q", got)
		}
	}
}

func TestParseCSV_CollidingHeadersResolveBeforeValidation(t *testing.T) {
	data := []byte("Full Name,FullName,Title,Agency\nAda Lovelace,ignored,CTO,GSA\n")
	for i := 0; i < 25; i++ {
		records, err := Parse("upload.csv", data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		valid, errs := ValidateContacts(records)
		if len(errs) != 0 {
			t.Fatalf("unexpected validation errors: %v", errs)
		}
		if len(valid) != 1 || valid[0].FullName != "Ada Lovelace" {
			t.Fatalf("expected the first column's name, got %+v", valid)
		}
	}
}

func TestParse_MalformedCSVIsFileReadError(t *testing.T) {
	_, err := Parse("upload.csv", []byte("title,agency\n\"unterminated,GSA\n"))
	if !errors.Is(err, apperrors.ErrFileRead) {
		t.Fatalf("expected ErrFileRead, got %v", err)
	}
}

func TestParseSheet_ReadsFirstSheetOnly(t *testing.T) {
	data := buildWorkbook(t, func(f *excelize.File, sheet string) {
		mustSetCell(t, f, sheet, "A1", "Title")
		mustSetCell(t, f, sheet, "B1", "Agency")
		mustSetCell(t, f, sheet, "A2", "radar maintenance")
		mustSetCell(t, f, sheet, "B2", "FAA")

		if _, err := f.NewSheet("Second"); err != nil {
			t.Fatalf("NewSheet: %v", err)
		}
		mustSetCell(t, f, "Second", "A1", "Title")
		mustSetCell(t, f, "Second", "A2", "should not appear")
	})

	records, err := Parse("upload.xlsx", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record from first sheet, got %d", len(records))
	}
	if records[0]["title"] != "radar maintenance" {
		t.Fatalf("unexpected record: %v", records[0])
	}
}

func TestParseSheet_HeaderStripsNonAlnum(t *testing.T) {
	data := buildWorkbook(t, func(f *excelize.File, sheet string) {
		mustSetCell(t, f, sheet, "A1", "Products & Services")
		mustSetCell(t, f, sheet, "B1", "Buying Org: Level 1")
		mustSetCell(t, f, sheet, "A2", "cloud hosting")
		mustSetCell(t, f, sheet, "B2", "State of Texas")
	})

	records, err := Parse("upload.xlsx", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0]["products__services"] != "cloud hosting" {
		t.Fatalf("unexpected header normalization: %v", records[0])
	}
	if records[0]["buying_org_level_1"] != "State of Texas" {
		t.Fatalf("unexpected header normalization: %v", records[0])
	}
}

func TestParseSheet_SkipsEmptyRows(t *testing.T) {
	data := buildWorkbook(t, func(f *excelize.File, sheet string) {
		mustSetCell(t, f, sheet, "A1", "Title")
		mustSetCell(t, f, sheet, "B1", "Agency")
		mustSetCell(t, f, sheet, "A2", "first")
		mustSetCell(t, f, sheet, "B2", "GSA")
		// row 3 left blank
		mustSetCell(t, f, sheet, "A4", "second")
		mustSetCell(t, f, sheet, "B4", "DoD")
	})

	records, err := Parse("upload.xlsx", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected blank row skipped, got %d records", len(records))
	}
}

func TestParse_GarbageSheetBytesIsFileReadError(t *testing.T) {
	_, err := Parse("upload.xlsx", []byte("not a zip archive"))
	if !errors.Is(err, apperrors.ErrFileRead) {
		t.Fatalf("expected ErrFileRead, got %v", err)
	}
}

func TestNormalizeHeader(t *testing.T) {
	cases := []struct {
		in    string
		sheet bool
		want  string
	}{
		{"Title", false, "title"},
		{"  Contract   Title  ", false, "contract_title"},
		{`"quoted header"`, false, "quoted_header"},
		{"Products & Services", false, "products_&_services"},
		{"Products & Services", true, "products__services"},
		{"Buying Org: Level 1", true, "buying_org_level_1"},
	}
	for _, tc := range cases {
		if got := normalizeHeader(tc.in, tc.sheet); got != tc.want {
			t.Fatalf("normalizeHeader(%q, sheet=%v) = %q, want %q", tc.in, tc.sheet, got, tc.want)
		}
	}
}

func buildWorkbook(t *testing.T, fill func(f *excelize.File, sheet string)) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	fill(f, f.GetSheetName(0))
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func mustSetCell(t *testing.T, f *excelize.File, sheet, cell, val string) {
	t.Helper()
	if err := f.SetCellStr(sheet, cell, val); err != nil {
		t.Fatalf("SetCellStr %s!%s: %v", sheet, cell, err)
	}
}
