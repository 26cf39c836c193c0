// Package search scores in-memory contract candidates against a free-text
// query and a set of structured facet filters. One pass, no index, no
// caching between queries.
package search

import (
	"sort"
	"strings"
	"time"

	"github.com/federaltalks/iq-backend/internal/types"
)

// Match weights per token substring hit.
const (
	weightTitle            = 10
	weightAgency           = 8
	weightDescription      = 6
	weightProductsServices = 7
	weightKeyword          = 9
	naicsBonus             = 15
)

// Facets are AND-combined structured filters, applied independently of the
// text score. Zero values mean "any".
type Facets struct {
	ContractType string
	State        string
	NAICSCode    string
	BudgetMin    *float64
	BudgetMax    *float64
	SetAsideCode string
	// Deadline buckets the response deadline relative to now: "7days",
	// "30days" or empty for any.
	Deadline string
}

// Tokenize lowercases the query, splits on whitespace and discards tokens of
// length <= 2.
func Tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) > 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Score sums weighted substring hits across the candidate's text fields,
// plus a flat NAICS bonus when the raw query contains the candidate's NAICS
// code. An additional matching token never decreases the score.
func Score(c *types.Contract, tokens []string, rawQuery string) int {
	title := strings.ToLower(c.Title)
	agency := strings.ToLower(c.Agency)
	description := strings.ToLower(c.Description)
	products := strings.ToLower(c.ProductsServices)
	keywords := c.KeywordList()

	score := 0
	for _, token := range tokens {
		if strings.Contains(title, token) {
			score += weightTitle
		}
		if strings.Contains(agency, token) {
			score += weightAgency
		}
		if description != "" && strings.Contains(description, token) {
			score += weightDescription
		}
		if products != "" && strings.Contains(products, token) {
			score += weightProductsServices
		}
		for _, kw := range keywords {
			if strings.Contains(strings.ToLower(kw), token) {
				score += weightKeyword
				break
			}
		}
	}
	if c.NAICSCode != "" && strings.Contains(rawQuery, c.NAICSCode) {
		score += naicsBonus
	}
	return score
}

// Search returns the facet-passing subset of candidates ordered by
// descending relevance, ties broken by original order. An empty or
// whitespace-only query is browse mode: facet filtering only, original
// order, no candidate excluded for score reasons.
func Search(candidates []types.Contract, query string, f Facets, now time.Time) []types.Contract {
	tokens := Tokenize(query)
	browse := strings.TrimSpace(query) == ""

	type scored struct {
		contract types.Contract
		score    int
	}
	var results []scored
	for _, c := range candidates {
		if !passesFacets(&c, f, now) {
			continue
		}
		if browse {
			results = append(results, scored{contract: c})
			continue
		}
		s := Score(&c, tokens, query)
		if s == 0 {
			// Text relevance is an implicit filter, not only a sort key.
			continue
		}
		results = append(results, scored{contract: c, score: s})
	}

	if !browse {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].score > results[j].score
		})
	}

	out := make([]types.Contract, len(results))
	for i, r := range results {
		out[i] = r.contract
	}
	return out
}

func passesFacets(c *types.Contract, f Facets, now time.Time) bool {
	if f.ContractType != "" && c.ContractType != f.ContractType {
		return false
	}
	if f.State != "" && c.State != f.State {
		return false
	}
	if f.NAICSCode != "" && c.NAICSCode != f.NAICSCode {
		return false
	}
	// Candidates without a budget pass the budget facets.
	if f.BudgetMin != nil && c.BudgetMin != nil && *c.BudgetMin < *f.BudgetMin {
		return false
	}
	if f.BudgetMax != nil && c.BudgetMax != nil && *c.BudgetMax > *f.BudgetMax {
		return false
	}
	if f.SetAsideCode != "" && c.SetAsideCode != f.SetAsideCode {
		return false
	}
	if f.Deadline != "" {
		deadline, ok := parseDeadline(c.ResponseDeadline)
		if !ok {
			// No deadline never matches a bucket filter.
			return false
		}
		switch f.Deadline {
		case "7days":
			if deadline.After(now.Add(7 * 24 * time.Hour)) {
				return false
			}
		case "30days":
			if deadline.After(now.Add(30 * 24 * time.Hour)) {
				return false
			}
		}
	}
	return true
}

func parseDeadline(val *string) (time.Time, bool) {
	if val == nil || *val == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", *val)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
