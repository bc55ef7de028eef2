// Package handlers maps the HTTP API onto the ingestion, query, and
// administration services. Endpoint shapes and response envelopes follow the
// dashboard's existing contract.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"skywatch/internal/alerts"
	"skywatch/internal/ingest"
	"skywatch/internal/logger"
	"skywatch/internal/query"
)

// timeLayout is the datetime format the dashboard expects.
const timeLayout = "2006-01-02 15:04:05"

// maxBodySize caps request bodies; sensor payloads are tiny.
const maxBodySize = 1 << 20

// API bundles the services behind the HTTP surface.
type API struct {
	ingest *ingest.Service
	query  *query.Service
	admin  *alerts.Admin
	ping   func(ctx context.Context) error
	log    zerolog.Logger
}

// NewAPI creates the HTTP API over the given services. ping checks store
// liveness for the health endpoint.
func NewAPI(ing *ingest.Service, qry *query.Service, adm *alerts.Admin, ping func(ctx context.Context) error) *API {
	return &API{
		ingest: ing,
		query:  qry,
		admin:  adm,
		ping:   ping,
		log:    logger.WithComponent("http"),
	}
}

// writeJSON writes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes the standard failure envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   message,
	})
}

// decodeBody reads a JSON request body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}
