package api

import (
	"maps"
	"net/http"
	"time"
)

// StatsProvider reports service counters.
type StatsProvider interface {
	GetStats() map[string]any
}

type statsHandler struct {
	provider StatsProvider
	now      func() time.Time
}

func newStatsHandler(p StatsProvider) *statsHandler {
	return &statsHandler{provider: p, now: time.Now}
}

// HandleStats serves GET /stats: the provider's counters plus the server time.
func (h *statsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	out := maps.Clone(h.provider.GetStats())
	if out == nil {
		out = map[string]any{}
	}
	out["serverTime"] = h.now().UTC().Format(time.RFC3339)
	writeJSON(w, http.StatusOK, out)
}
