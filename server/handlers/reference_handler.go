package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"nestfinder/models"
)

// Option is one selectable value exposed to clients.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// NeighborhoodLister lists the neighborhoods with reference data.
type NeighborhoodLister interface {
	Names() []string
}

// ReferenceHandler serves the static vocabularies a client needs to build
// search criteria.
type ReferenceHandler struct {
	neighborhoods NeighborhoodLister
	logger        *zap.Logger
}

func NewReferenceHandler(neighborhoods NeighborhoodLister, logger *zap.Logger) *ReferenceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReferenceHandler{neighborhoods: neighborhoods, logger: logger.Named("ReferenceHandler")}
}

func (h *ReferenceHandler) GetPriorities(w http.ResponseWriter, r *http.Request) {
	out := make([]Option, 0, len(models.Priorities))
	for _, p := range models.Priorities {
		out = append(out, Option{ID: string(p), Label: p.Label()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ReferenceHandler) GetTransportModes(w http.ResponseWriter, r *http.Request) {
	out := make([]Option, 0, len(models.TransportModes))
	for _, m := range models.TransportModes {
		out = append(out, Option{ID: string(m), Label: m.Label()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ReferenceHandler) GetNeighborhoods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.neighborhoods.Names())
}

// Ping handles GET /ping
func (h *ReferenceHandler) Ping(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("ping")
	writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
