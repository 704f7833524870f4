package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/id"
	"zenbill/internal/domain/reports"
)

// ReportsHandler handles report endpoints.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// SalesSummary handles GET /reports/sales-summary
func (h *ReportsHandler) SalesSummary(c *gin.Context) {
	ctx := c.Request.Context()

	from, to, ok := h.requirePeriod(c)
	if !ok {
		return
	}

	filter := reports.SalesSummaryFilter{
		FromDate:        from,
		ToDate:          to,
		GroupByCustomer: c.Query("groupBy") == "customer",
		Limit:           h.ParseIntQuery(c, "limit", 100),
		Offset:          h.ParseIntQuery(c, "offset", 0),
	}

	if customers := c.Query("customerIds"); customers != "" {
		for _, raw := range strings.Split(customers, ",") {
			customerID, err := id.Parse(strings.TrimSpace(raw))
			if err != nil {
				h.Error(c, apperror.NewValidation("invalid customerIds format"))
				return
			}
			filter.CustomerIDs = append(filter.CustomerIDs, customerID)
		}
	}

	report, err := h.service.GetSalesSummary(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// TaxSummary handles GET /reports/tax-summary
func (h *ReportsHandler) TaxSummary(c *gin.Context) {
	ctx := c.Request.Context()

	from, to, ok := h.requirePeriod(c)
	if !ok {
		return
	}

	report, err := h.service.GetTaxSummary(ctx, reports.TaxSummaryFilter{
		FromDate: from,
		ToDate:   to,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// DocumentJournal handles GET /reports/journal
func (h *ReportsHandler) DocumentJournal(c *gin.Context) {
	ctx := c.Request.Context()

	filter := reports.DocumentJournalFilter{
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Limit:     h.ParseIntQuery(c, "limit", 50),
		Offset:    h.ParseIntQuery(c, "offset", 0),
	}

	var ok bool
	if filter.FromDate, ok = h.optionalDate(c, "from"); !ok {
		return
	}
	if filter.ToDate, ok = h.optionalDate(c, "to"); !ok {
		return
	}
	if docTypes := c.Query("docTypes"); docTypes != "" {
		filter.DocTypes = splitCSV(docTypes)
	}
	if statuses := c.Query("statuses"); statuses != "" {
		filter.Statuses = splitCSV(statuses)
	}

	journal, err := h.service.GetDocumentJournal(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, journal)
}

func (h *ReportsHandler) requirePeriod(c *gin.Context) (time.Time, time.Time, bool) {
	from, ok := h.parseDate(c, "from", true)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	to, ok := h.parseDate(c, "to", true)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	return *from, *to, true
}

func (h *ReportsHandler) optionalDate(c *gin.Context, key string) (*time.Time, bool) {
	return h.parseDate(c, key, false)
}

func (h *ReportsHandler) parseDate(c *gin.Context, key string, required bool) (*time.Time, bool) {
	val := c.Query(key)
	if val == "" {
		if required {
			h.Error(c, apperror.NewValidation("missing required date parameter").WithDetail("field", key))
			return nil, false
		}
		return nil, true
	}
	if t, err := time.Parse("2006-01-02", val); err == nil {
		return &t, true
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return &t, true
	}
	h.Error(c, apperror.NewValidation("invalid date format").WithDetail("field", key))
	return nil, false
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
