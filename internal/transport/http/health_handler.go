package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"shopsight/internal/dataset"
)

// DatasetStatus describes the dataset the process is serving.
type DatasetStatus struct {
	Path             string `json:"path"`
	State            string `json:"state"`
	Rows             int    `json:"rows"`
	Columns          int    `json:"columns"`
	MalformedAmounts int    `json:"malformed_amounts"`
}

// HealthStatus is the health check payload.
type HealthStatus struct {
	Status    string        `json:"status"`
	Version   string        `json:"version"`
	Timestamp time.Time     `json:"timestamp"`
	Dataset   DatasetStatus `json:"dataset"`
}

// HealthHandler serves the liveness endpoint. The dataset is loaded before
// the server starts, so a serving process always reports it as loaded.
type HealthHandler struct {
	version string
	path    string
	stats   dataset.LoadStats
	logger  *slog.Logger
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(version, datasetPath string, stats dataset.LoadStats, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		version: version,
		path:    datasetPath,
		stats:   stats,
		logger:  logger.With(slog.String("handler", "health")),
	}
}

// Routes returns the health route tree.
func (h *HealthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetHealth)
	return r
}

// GetHealth handles GET /api/health
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, HealthStatus{
		Status:    "healthy",
		Version:   h.version,
		Timestamp: time.Now().UTC(),
		Dataset: DatasetStatus{
			Path:             h.path,
			State:            "loaded",
			Rows:             h.stats.Rows,
			Columns:          h.stats.Columns,
			MalformedAmounts: h.stats.MalformedAmounts,
		},
	})
}
