package handlers

import (
	"context"
	"fmt"
	"net/http"

	"meatstore-backend/internal/reporting"
	"meatstore-backend/internal/services"
	"meatstore-backend/internal/timeutil"
	"meatstore-backend/pkg/utils"
)

type SummaryHandler struct {
	summaryService *services.SummaryService
	exportService  *services.ExportService
}

func NewSummaryHandler(summaryService *services.SummaryService, exportService *services.ExportService) *SummaryHandler {
	return &SummaryHandler{
		summaryService: summaryService,
		exportService:  exportService,
	}
}

// summaryQueryFrom parses the shared filter params: range (today,
// this-week, this-month, custom), start/end as YYYY-MM-DD, search.
func summaryQueryFrom(r *http.Request) (services.SummaryQuery, error) {
	q := services.SummaryQuery{
		Range:  r.URL.Query().Get("range"),
		Search: r.URL.Query().Get("search"),
	}
	if q.Range == "" {
		q.Range = reporting.RangeToday
	}

	if startStr := r.URL.Query().Get("start"); startStr != "" {
		start, err := timeutil.ParseInIST(timeutil.DateLayout, startStr)
		if err != nil {
			return q, fmt.Errorf("invalid start date, use YYYY-MM-DD")
		}
		q.CustomStart = &start
	}
	if endStr := r.URL.Query().Get("end"); endStr != "" {
		end, err := timeutil.ParseInIST(timeutil.DateLayout, endStr)
		if err != nil {
			return q, fmt.Errorf("invalid end date, use YYYY-MM-DD")
		}
		q.CustomEnd = &end
	}

	return q, nil
}

// GetSummary handles GET /api/summary
func (h *SummaryHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	query, err := summaryQueryFrom(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, h.summaryService.Summarize(query))
}

// Export handles GET /api/summary/export?format=csv|xlsx|pdf
// Same filter params as GetSummary.
func (h *SummaryHandler) Export(w http.ResponseWriter, r *http.Request) {
	query, err := summaryQueryFrom(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = services.FormatCSV
	}

	table := h.summaryService.ExportTable(query)
	stamp := timeutil.FormatIST(timeutil.Now(), timeutil.DateLayout)

	var (
		data        []byte
		contentType string
		filename    string
	)

	switch format {
	case services.FormatCSV:
		data, err = h.exportService.BuildCSV(table)
		contentType = "text/csv"
		filename = fmt.Sprintf("sales_summary_%s.csv", stamp)
	case services.FormatXLSX:
		data, err = h.exportService.BuildXLSX(table)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = fmt.Sprintf("sales_summary_%s.xlsx", stamp)
	case services.FormatPDF:
		data, err = h.exportService.BuildPDF("Sales Summary", table)
		contentType = "application/pdf"
		filename = fmt.Sprintf("sales_summary_%s.pdf", stamp)
	default:
		utils.Error(w, http.StatusBadRequest, "unknown format, use csv, xlsx or pdf")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, fmt.Sprintf("failed to generate %s export", format))
		return
	}

	// Archive in the background; the response does not wait for it.
	// The request context dies with the response, so use a fresh one.
	go h.exportService.Archive(context.Background(), filename, data, contentType)

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Write(data)
}
