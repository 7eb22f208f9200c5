package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apperrors "shopsight/internal/errors"
	"shopsight/internal/insights"
)

// InsightsHandler serves the personalization endpoints.
type InsightsHandler struct {
	service      InsightsService
	errorHandler *apperrors.ErrorHandler
	logger       *slog.Logger
}

// NewInsightsHandler creates an insights handler.
func NewInsightsHandler(service InsightsService, errorHandler *apperrors.ErrorHandler, logger *slog.Logger) *InsightsHandler {
	return &InsightsHandler{
		service:      service,
		errorHandler: errorHandler,
		logger:       logger.With(slog.String("handler", "insights")),
	}
}

// Routes returns the insights route tree.
func (h *InsightsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.PostInsights)
	r.Post("/report", h.PostReport)
	return r
}

// PostInsights handles POST /api/insights
func (h *InsightsHandler) PostInsights(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.decodeProfile(w, r)
	if !ok {
		return
	}

	report, err := h.service.GetInsights(r.Context(), profile)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, report)
}

// PostReport handles POST /api/insights/report and returns the plain-text
// report as a download.
func (h *InsightsHandler) PostReport(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.decodeProfile(w, r)
	if !ok {
		return
	}

	text, err := h.service.GetReport(r.Context(), profile)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="personalized_report.txt"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}

// decodeProfile reads the JSON profile from the body, responding with a
// validation problem on malformed input.
func (h *InsightsHandler) decodeProfile(w http.ResponseWriter, r *http.Request) (insights.Profile, bool) {
	var profile insights.Profile
	if err := render.DecodeJSON(r.Body, &profile); err != nil {
		h.errorHandler.HandleError(w, r, apperrors.New(
			http.StatusBadRequest,
			"INVALID_REQUEST",
			"request body must be a valid JSON profile",
		))
		return insights.Profile{}, false
	}
	return profile, true
}
