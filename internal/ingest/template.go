package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/federaltalks/iq-backend/internal/pkg/errors"
)

// Format selects the template file encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const (
	mimeCSV  = "text/csv"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// TemplateFile is an in-memory download payload.
type TemplateFile struct {
	Content  []byte
	FileName string
	MIMEType string
}

var contractTemplateHeaders = []string{
	"title",
	"contract_name",
	"description",
	"agency",
	"buying_organization",
	"department",
	"state",
	"contract_type",
	"buying_org_level_1",
	"buying_org_level_2",
	"buying_org_level_3",
	"contract_number",
	"solicitation_number",
	"contractors",
	"products_services",
	"primary_requirement",
	"place_of_performance_location",
	"contact_first_name",
	"contact_phone",
	"contact_email",
	"budget_min",
	"budget_max",
	"award_value",
	"naics_code",
	"set_aside_code",
	"award_date",
	"start_date",
	"current_expiration_date",
	"ultimate_expiration_date",
	"response_deadline",
	"status",
	"contract_status",
	"source_url",
	"ai_analysis_summary",
	"keywords",
}

var contractTemplateSample = []string{
	"IT Infrastructure Modernization Services",
	"Statewide IT Infrastructure Modernization Contract",
	"Comprehensive IT infrastructure upgrade including cloud migration, network modernization, and cybersecurity enhancements for state agencies",
	"California Department of Technology",
	"State of California - Department of Technology",
	"Information Technology Division",
	"California",
	"state",
	"State of California",
	"Government Operations Agency",
	"Department of Technology",
	"CA-2024-IT-001",
	"RFP-2024-CDT-001",
	"TechCorp Solutions Inc., CloudFirst Technologies LLC",
	"Cloud Infrastructure, Network Equipment, Cybersecurity Solutions, Professional Services",
	"Modernize legacy IT systems and migrate critical applications to secure cloud infrastructure",
	"Sacramento, CA",
	"John",
	"(916) 555-0123",
	"john.doe@technology.ca.gov",
	"5000000",
	"15000000",
	"12500000",
	"541511",
	"SBA",
	"2024-01-15",
	"2024-02-01",
	"2025-01-31",
	"2026-01-31",
	"2024-03-15",
	"active",
	"open",
	"https://www.technology.ca.gov/contracts/it-modernization",
	"High-value IT modernization opportunity with strong potential for small business participation. Competitive landscape includes 3-5 major players.",
	"IT modernization, cloud migration, cybersecurity, infrastructure, technology services",
}

var contactTemplateHeaders = []string{
	"full_name", "title", "agency", "department", "state", "email",
	"phone", "contact_type", "is_federal",
}

var contactTemplateSample = []string{
	"John Smith",
	"Chief Information Officer",
	"Department of Technology",
	"IT Division",
	"California",
	"john.smith@ca.gov",
	"(916) 555-0123",
	"cio",
	"false",
}

// Template builds a deterministic skeleton file for the given record kind:
// one canonical header row plus one illustrative sample row.
func Template(kind Kind, format Format) (*TemplateFile, error) {
	var headers, sample []string
	switch kind {
	case KindContracts:
		headers, sample = contractTemplateHeaders, contractTemplateSample
	case KindContacts:
		headers, sample = contactTemplateHeaders, contactTemplateSample
	default:
		return nil, fmt.Errorf("%w: unknown template kind %q", apperrors.ErrInvalidArgument, kind)
	}

	switch format {
	case FormatCSV:
		content, err := encodeCSV(headers, sample)
		if err != nil {
			return nil, err
		}
		return &TemplateFile{
			Content:  content,
			FileName: fmt.Sprintf("%s_template.csv", kind),
			MIMEType: mimeCSV,
		}, nil
	case FormatXLSX:
		content, err := encodeXLSX(string(kind), headers, sample)
		if err != nil {
			return nil, err
		}
		return &TemplateFile{
			Content:  content,
			FileName: fmt.Sprintf("%s_template.xlsx", kind),
			MIMEType: mimeXLSX,
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown template format %q", apperrors.ErrInvalidArgument, format)
	}
}

func encodeCSV(headers, sample []string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(headers); err != nil {
		return nil, err
	}
	if err := writer.Write(sample); err != nil {
		return nil, err
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeXLSX(sheet string, headers, sample []string) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	defaultSheet := file.GetSheetName(0)
	if defaultSheet != sheet {
		if err := file.SetSheetName(defaultSheet, sheet); err != nil {
			return nil, err
		}
	}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := file.SetCellStr(sheet, cell, header); err != nil {
			return nil, err
		}
	}
	for col, val := range sample {
		cell, err := excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			return nil, err
		}
		if err := file.SetCellStr(sheet, cell, val); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
