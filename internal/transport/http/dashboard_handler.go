package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"shopsight/internal/analytics"
	"shopsight/internal/dataset"
	apperrors "shopsight/internal/errors"
)

// filterParams maps query parameter names to dataset column names.
var filterParams = map[string]string{
	"channel":  dataset.ColPurchaseChannel,
	"category": dataset.ColPurchaseCategory,
	"gender":   dataset.ColGender,
	"income":   dataset.ColIncomeLevel,
}

// DashboardHandler serves the filter-and-aggregate endpoints.
type DashboardHandler struct {
	service      DashboardService
	errorHandler *apperrors.ErrorHandler
	logger       *slog.Logger
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(service DashboardService, errorHandler *apperrors.ErrorHandler, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		errorHandler: errorHandler,
		logger:       logger.With(slog.String("handler", "dashboard")),
	}
}

// Routes returns the dashboard route tree.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/options", h.GetOptions)
	r.Get("/summary", h.GetSummary)
	r.Get("/preview", h.GetPreview)
	return r
}

// GetOptions handles GET /api/dashboard/options
func (h *DashboardHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.Options(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, options)
}

// GetSummary handles GET /api/dashboard/summary
//
// Filters arrive as repeatable or comma-separated query parameters, e.g.
// ?channel=Online&channel=In-Store or ?channel=Online,In-Store. An absent
// or empty parameter leaves that attribute unconstrained.
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	selection := parseSelection(r)

	summary, err := h.service.Summary(r.Context(), selection)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// GetPreview handles GET /api/dashboard/preview
func (h *DashboardHandler) GetPreview(w http.ResponseWriter, r *http.Request) {
	preview, err := h.service.Preview(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, preview)
}

// parseSelection builds a filter selection from the request query.
func parseSelection(r *http.Request) analytics.Selection {
	query := r.URL.Query()
	selection := analytics.Selection{}

	for param, column := range filterParams {
		values := []string{}
		for _, raw := range query[param] {
			for _, v := range strings.Split(raw, ",") {
				if v = strings.TrimSpace(v); v != "" {
					values = append(values, v)
				}
			}
		}
		if len(values) > 0 {
			selection[column] = values
		}
	}
	return selection
}
