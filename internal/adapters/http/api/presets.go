package api

import (
	"net/http"

	"github.com/okian/appraisal/internal/domain/appraisal"
)

type presetsResponse struct {
	Presets       []PresetInfo     `json:"presets"`
	Ratings       []string         `json:"ratings"`
	Conditions    []string         `json:"conditions"`
	Transmissions []string         `json:"transmissions"`
	Makes         map[string]int64 `json:"makes"`
}

// PresetsHandler lists presets and the reference tables behind them.
type PresetsHandler struct {
	deps Dependencies
}

// NewPresetsHandler creates a new presets handler.
func NewPresetsHandler(deps Dependencies) *PresetsHandler {
	return &PresetsHandler{deps: deps}
}

// HandleGetPresets handles GET /presets requests.
func (h *PresetsHandler) HandleGetPresets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, presetsResponse{
		Presets:       h.deps.Presets(),
		Ratings:       appraisal.RatingNames,
		Conditions:    appraisal.Conditions,
		Transmissions: appraisal.Transmissions,
		Makes:         appraisal.Makes(),
	})
}
