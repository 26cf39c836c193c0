package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/federaltalks/iq-backend/internal/pkg/logger"
	"github.com/federaltalks/iq-backend/internal/types"
)

// ReportKind names a downloadable report flavor.
type ReportKind string

const (
	ReportSummary  ReportKind = "summary"
	ReportResearch ReportKind = "ai_research_report"
)

// Report is a plain-text download payload.
type Report struct {
	Content  string
	FileName string
	MIMEType string
}

// ReportGenerator produces analysis prose for a contract. The stub variant
// interpolates placeholder text and makes no external call; a real variant
// would delegate to an inference service. The two must never be conflated:
// stub output is demo filler, not a scoring contract.
type ReportGenerator interface {
	Generate(ctx context.Context, contract *types.Contract, kind ReportKind) (*Report, error)
}

type stubReportGenerator struct {
	log *logger.Logger
}

func NewStubReportGenerator(log *logger.Logger) ReportGenerator {
	return &stubReportGenerator{log: log.With("service", "StubReportGenerator")}
}

func (rg *stubReportGenerator) Generate(ctx context.Context, contract *types.Contract, kind ReportKind) (*Report, error) {
	if contract == nil {
		return nil, fmt.Errorf("no contract given")
	}
	content := renderStubAnalysis(contract)
	return &Report{
		Content:  content,
		FileName: fmt.Sprintf("%s_%s.txt", contract.FederalID, kind),
		MIMEType: "text/plain",
	}, nil
}

func renderStubAnalysis(c *types.Contract) string {
	var b strings.Builder
	b.WriteString("**Contract Analysis Report**\n\n")
	b.WriteString("**Opportunity Overview:**\n")
	fmt.Fprintf(&b, "%s represents a significant procurement opportunity with %s.\n\n", c.Title, c.Agency)

	b.WriteString("**Key Insights:**\n")
	fmt.Fprintf(&b, "- Budget Range: %s - %s\n", formatBudget(c.BudgetMin), formatBudget(c.BudgetMax))
	fmt.Fprintf(&b, "- NAICS Code: %s\n", orNotSpecified(c.NAICSCode))
	fmt.Fprintf(&b, "- Set-Aside: %s\n", orNotSpecified(c.SetAsideCode))
	b.WriteString("- Competition Level: Moderate to High\n\n")

	b.WriteString("**Strategic Recommendations:**\n")
	b.WriteString("1. Past Performance: Research similar contracts with this agency\n")
	b.WriteString("2. Key Personnel: Identify decision makers and technical evaluators\n")
	b.WriteString("3. Partnership Opportunities: Consider teaming arrangements\n")
	b.WriteString("4. Compliance Requirements: Review all mandatory requirements\n\n")

	b.WriteString("**Market Intelligence:**\n")
	b.WriteString("- Similar contracts typically see 8-15 proposals\n")
	b.WriteString("- Agency prefers vendors with federal experience\n")
	b.WriteString("- Strong emphasis on cybersecurity and compliance\n")
	b.WriteString("- Previous awards show preference for small business participation\n\n")

	b.WriteString("**Risk Assessment:**\n")
	b.WriteString("- Low Risk: Clear requirements and established process\n")
	b.WriteString("- Medium Risk: Competitive market with incumbents\n")
	b.WriteString("- Mitigation: Focus on unique value proposition\n\n")

	b.WriteString("**Next Steps:**\n")
	b.WriteString("1. Attend pre-proposal conference if scheduled\n")
	b.WriteString("2. Submit capability statement to contracting officer\n")
	b.WriteString("3. Begin teaming discussions with partners\n")
	b.WriteString("4. Prepare preliminary technical approach\n")
	return b.String()
}

func formatBudget(val *float64) string {
	if val == nil {
		return "Not specified"
	}
	return fmt.Sprintf("$%.0f", *val)
}

func orNotSpecified(val string) string {
	if strings.TrimSpace(val) == "" {
		return "Not specified"
	}
	return val
}
