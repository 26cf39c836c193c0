package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/federaltalks/iq-backend/internal/search"
	"github.com/federaltalks/iq-backend/internal/services"
)

type SearchHandler struct {
	searchService services.SearchService
}

func NewSearchHandler(searchService services.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search runs the relevance engine. An empty "q" is browse mode; facet
// params are AND-combined on top of the text query.
func (sh *SearchHandler) Search(c *gin.Context) {
	facets := search.Facets{
		ContractType: c.Query("contract_type"),
		State:        c.Query("state"),
		NAICSCode:    c.Query("naics_code"),
		SetAsideCode: c.Query("set_aside_code"),
		Deadline:     c.Query("deadline"),
	}
	switch facets.Deadline {
	case "", "7days", "30days":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "deadline must be 7days or 30days"})
		return
	}
	var err error
	if facets.BudgetMin, err = parseBudget(c.Query("budget_min")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "budget_min must be a number"})
		return
	}
	if facets.BudgetMax, err = parseBudget(c.Query("budget_max")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "budget_max must be a number"})
		return
	}

	results, err := sh.searchService.SearchContracts(c.Request.Context(), c.Query("q"), facets)
	if err != nil {
		RespondError(c, statusFromError(err), "search_failed", err)
		return
	}
	RespondOK(c, gin.H{"results": results, "total": len(results)})
}

func parseBudget(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &val, nil
}
