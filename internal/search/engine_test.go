package search

import (
	"reflect"
	"testing"
	"time"

	"github.com/federaltalks/iq-backend/internal/types"
)

var searchNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func contract(title, agency string, mutate ...func(*types.Contract)) types.Contract {
	c := types.Contract{Title: title, Agency: agency}
	for _, m := range mutate {
		m(&c)
	}
	return c
}

func titles(results []types.Contract) []string {
	out := make([]string, len(results))
	for i, c := range results {
		out[i] = c.Title
	}
	return out
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"IT is ok", nil},
		{"Cloud IT Security", []string{"cloud", "security"}},
		{"  radar   MAINTENANCE ", []string{"radar", "maintenance"}},
	}
	for _, tc := range cases {
		got := Tokenize(tc.in)
		if len(got) == 0 && len(tc.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("Tokenize(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestScore_FieldWeights(t *testing.T) {
	tokens := Tokenize("cloud")
	cases := []struct {
		name string
		c    types.Contract
		want int
	}{
		{"title", contract("Cloud Migration", "GSA"), 10},
		{"agency", contract("x", "Cloud Services Agency"), 8},
		{"description", contract("x", "GSA", func(c *types.Contract) { c.Description = "cloud hosting" }), 6},
		{"products", contract("x", "GSA", func(c *types.Contract) { c.ProductsServices = "cloud compute" }), 7},
		{"keyword", contract("x", "GSA", func(c *types.Contract) { c.Keywords = types.JSONStrings([]string{"Cloud"}) }), 9},
		{"no hit", contract("x", "GSA"), 0},
	}
	for _, tc := range cases {
		if got := Score(&tc.c, tokens, "cloud"); got != tc.want {
			t.Fatalf("%s: Score = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestScore_WeightsAccumulateAcrossFieldsAndTokens(t *testing.T) {
	c := contract("Cloud Hosting", "Cloud Agency", func(c *types.Contract) {
		c.Description = "cloud hosting services"
	})
	// "cloud" hits title+agency+description (10+8+6), "hosting" hits
	// title+description (10+6).
	if got := Score(&c, Tokenize("cloud hosting"), "cloud hosting"); got != 40 {
		t.Fatalf("Score = %d, want 40", got)
	}
}

func TestScore_KeywordWeightAppliesOncePerToken(t *testing.T) {
	c := contract("x", "GSA", func(c *types.Contract) {
		c.Keywords = types.JSONStrings([]string{"cloud compute", "cloud storage", "cloudsec"})
	})
	if got := Score(&c, Tokenize("cloud"), "cloud"); got != 9 {
		t.Fatalf("multiple keyword hits must count once per token, got %d", got)
	}
}

func TestScore_NAICSBonusOnRawQuery(t *testing.T) {
	c := contract("Network Upgrade", "FAA", func(c *types.Contract) { c.NAICSCode = "541511" })
	// "541511" never survives tokenization weighting for these fields, but
	// the raw query carries the bonus.
	base := Score(&c, Tokenize("network"), "network")
	withCode := Score(&c, Tokenize("network 541511"), "network 541511")
	if withCode-base != 15 {
		t.Fatalf("expected +15 bonus, got %d vs %d", withCode, base)
	}
	if again := Score(&c, Tokenize("541511 541511"), "541511 541511"); again != 15 {
		t.Fatalf("bonus must apply once, got %d", again)
	}
}

func TestScore_MoreMatchesNeverLower(t *testing.T) {
	one := contract("Cloud Migration", "GSA")
	two := contract("Cloud Migration", "Cloud Agency")
	tokens := Tokenize("cloud")
	if Score(&two, tokens, "cloud") < Score(&one, tokens, "cloud") {
		t.Fatalf("additional field match lowered the score")
	}
}

func TestSearch_OrdersByDescendingScore(t *testing.T) {
	candidates := []types.Contract{
		contract("Desk Supplies", "Cloud Agency"),                 // 8
		contract("Cloud Migration", "Cloud Agency"),               // 18
		contract("Cloud Hosting", "GSA"),                          // 10
		contract("Janitorial Services", "GSA"),                    // 0, excluded
	}
	got := titles(Search(candidates, "cloud", Facets{}, searchNow))
	want := []string{"Cloud Migration", "Cloud Hosting", "Desk Supplies"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestSearch_ZeroScoreExcluded(t *testing.T) {
	candidates := []types.Contract{
		contract("Janitorial Services", "GSA"),
		contract("Laundry Services", "DoD"),
	}
	results := Search(candidates, "quantum", Facets{}, searchNow)
	if len(results) != 0 {
		t.Fatalf("expected no results for unrelated query, got %v", titles(results))
	}
}

func TestSearch_TiesKeepOriginalOrder(t *testing.T) {
	candidates := []types.Contract{
		contract("Cloud One", "GSA"),
		contract("Cloud Two", "DoD"),
		contract("Cloud Three", "FAA"),
	}
	got := titles(Search(candidates, "cloud", Facets{}, searchNow))
	want := []string{"Cloud One", "Cloud Two", "Cloud Three"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("equal scores must keep input order: %v", got)
	}
}

func TestSearch_BrowseModeKeepsOrderAndSkipsScoring(t *testing.T) {
	candidates := []types.Contract{
		contract("Zulu", "GSA"),
		contract("Alpha", "DoD"),
	}
	for _, query := range []string{"", "   "} {
		got := titles(Search(candidates, query, Facets{}, searchNow))
		want := []string{"Zulu", "Alpha"}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("browse(%q) = %v, want %v", query, got, want)
		}
	}
}

func TestSearch_FacetsAreANDCombined(t *testing.T) {
	candidates := []types.Contract{
		contract("Cloud A", "GSA", func(c *types.Contract) { c.ContractType = "federal"; c.State = "Texas" }),
		contract("Cloud B", "GSA", func(c *types.Contract) { c.ContractType = "federal"; c.State = "Ohio" }),
		contract("Cloud C", "GSA", func(c *types.Contract) { c.ContractType = "state"; c.State = "Texas" }),
	}
	got := titles(Search(candidates, "cloud", Facets{ContractType: "federal", State: "Texas"}, searchNow))
	if !reflect.DeepEqual(got, []string{"Cloud A"}) {
		t.Fatalf("AND facets broken: %v", got)
	}
}

func TestSearch_FacetsApplyInBrowseMode(t *testing.T) {
	candidates := []types.Contract{
		contract("A", "GSA", func(c *types.Contract) { c.NAICSCode = "541511" }),
		contract("B", "DoD", func(c *types.Contract) { c.NAICSCode = "236220" }),
	}
	got := titles(Search(candidates, "", Facets{NAICSCode: "541511"}, searchNow))
	if !reflect.DeepEqual(got, []string{"A"}) {
		t.Fatalf("facet in browse mode broken: %v", got)
	}
}

func TestSearch_BudgetFacetsPassNullBudgets(t *testing.T) {
	min, max := 1000.0, 50000.0
	low, high := 500.0, 100000.0
	candidates := []types.Contract{
		contract("No Budget", "GSA"),
		contract("In Range", "GSA", func(c *types.Contract) { c.BudgetMin = &min; c.BudgetMax = &max }),
		contract("Too Low", "GSA", func(c *types.Contract) { c.BudgetMin = &low }),
		contract("Too High", "GSA", func(c *types.Contract) { c.BudgetMax = &high }),
	}
	fMin, fMax := 1000.0, 50000.0
	got := titles(Search(candidates, "", Facets{BudgetMin: &fMin, BudgetMax: &fMax}, searchNow))
	want := []string{"No Budget", "In Range"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("budget facets = %v, want %v", got, want)
	}
}

func TestSearch_DeadlineBuckets(t *testing.T) {
	within7 := "2024-06-05"
	within30 := "2024-06-20"
	beyond := "2024-08-01"
	candidates := []types.Contract{
		contract("Soon", "GSA", func(c *types.Contract) { c.ResponseDeadline = &within7 }),
		contract("This Month", "GSA", func(c *types.Contract) { c.ResponseDeadline = &within30 }),
		contract("Later", "GSA", func(c *types.Contract) { c.ResponseDeadline = &beyond }),
		contract("No Deadline", "GSA"),
	}

	got := titles(Search(candidates, "", Facets{Deadline: "7days"}, searchNow))
	if !reflect.DeepEqual(got, []string{"Soon"}) {
		t.Fatalf("7days bucket = %v", got)
	}
	got = titles(Search(candidates, "", Facets{Deadline: "30days"}, searchNow))
	if !reflect.DeepEqual(got, []string{"Soon", "This Month"}) {
		t.Fatalf("30days bucket = %v", got)
	}
}

func TestSearch_NAICSBonusAffectsRanking(t *testing.T) {
	candidates := []types.Contract{
		contract("Network Upgrade Phase Two", "GSA"),
		contract("Network Upgrade", "GSA", func(c *types.Contract) { c.NAICSCode = "541511" }),
	}
	got := titles(Search(candidates, "network 541511", Facets{}, searchNow))
	if got[0] != "Network Upgrade" {
		t.Fatalf("NAICS bonus did not lift ranking: %v", got)
	}
}
