// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	service "github.com/okian/appraisal/internal/app"
	"github.com/okian/appraisal/internal/domain/appraisal"
	"github.com/okian/appraisal/internal/domain/override"
	"github.com/okian/appraisal/internal/money"
)

const defaultMaxBodyBytes = 64 << 10

// Appraisal is a computed result with its identifier.
type Appraisal = service.Appraisal

// PresetInfo describes one available formula.
type PresetInfo = service.PresetInfo

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Appraise(ctx context.Context, preset string, info appraisal.VehicleInfo, ratings appraisal.Ratings) (Appraisal, error)
	Recalculate(ctx context.Context, buy, sell, repair string) override.Overrides
	Presets() []PresetInfo
	// Formatter may return nil before the service starts.
	Formatter() *money.Formatter
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *statsHandler
	appraisalsHandler *AppraisalsHandler
	profitHandler     *ProfitHandler
	presetsHandler    *PresetsHandler
	dashboardHandler  *dashboardHandler
}

// NewServer creates a new API server with all handlers. maxBodyBytes caps
// request bodies; non-positive values use the default.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxBodyBytes int64) *Server {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	v := validator.New()
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      newStatsHandler(statsProvider),
		appraisalsHandler: NewAppraisalsHandler(deps, v, maxBodyBytes),
		profitHandler:     NewProfitHandler(deps, v, maxBodyBytes),
		presetsHandler:    NewPresetsHandler(deps),
		dashboardHandler:  newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/presets", MetricsMiddleware(s.presetsHandler.HandleGetPresets, "presets"))
	mux.HandleFunc("/appraisals", MetricsMiddleware(s.appraisalsHandler.HandlePostAppraisal, "appraisals"))
	mux.HandleFunc("/appraisals/profit", MetricsMiddleware(s.profitHandler.HandlePostProfit, "profit"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

var errEmptyBody = errors.New("empty body")

// decodeJSON reads one JSON object from r into dst, capped at limit bytes.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	return nil
}

// writeDecodeError maps a decodeJSON failure to 413 or 400.
func writeDecodeError(w http.ResponseWriter, op string, err error) {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		writeError(w, http.StatusRequestEntityTooLarge, "too_large", WrapKind(op, ErrBadRequest, err))
		return
	}
	writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
}

var fallbackFormatter = money.Must("id", "IDR")

func formatterOf(deps Dependencies) *money.Formatter {
	if f := deps.Formatter(); f != nil {
		return f
	}
	return fallbackFormatter
}
