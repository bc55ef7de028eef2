package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"skywatch/internal/metrics"
	"skywatch/internal/models"
)

// submitResponse mirrors the device-facing response for a saved reading.
type submitResponse struct {
	Success     bool    `json:"success"`
	Message     string  `json:"message"`
	ID          int64   `json:"id"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
}

// readingJSON is a reading as the dashboard renders it.
type readingJSON struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Timestamp   string  `json:"timestamp"`
}

// alertJSON is an open alert entry as the dashboard renders it.
type alertJSON struct {
	ID        int64   `json:"id"`
	Type      string  `json:"type"`
	Message   string  `json:"message"`
	Value     float64 `json:"value"`
	Timestamp string  `json:"timestamp"`
}

// handleSubmit accepts a reading from a sensor device.
// POST /api/data
func (a *API) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var in models.ReadingInput
	if !decodeBody(w, r, &in) {
		metrics.ReadingsIngested.WithLabelValues("http", "rejected").Inc()
		return
	}

	reading, err := a.ingest.Submit(r.Context(), in)
	if err != nil {
		metrics.ReadingsIngested.WithLabelValues("http", "rejected").Inc()
		if models.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		a.log.Error().Err(err).Msg("failed to save reading")
		writeError(w, http.StatusInternalServerError, "Failed to save data")
		return
	}

	metrics.ReadingsIngested.WithLabelValues("http", "accepted").Inc()
	writeJSON(w, http.StatusOK, submitResponse{
		Success:     true,
		Message:     "Data saved successfully",
		ID:          reading.ID,
		Temperature: reading.Temperature,
		Humidity:    reading.Humidity,
	})
}

// handleGetData serves the dashboard's polling queries, selected by the
// type parameter: current, history, stats, or alerts.
// GET /api/data?type=current|history|stats|alerts[&hours=N]
func (a *API) handleGetData(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("type") {
	case "", "current":
		a.getCurrent(w, r)
	case "history":
		a.getHistory(w, r)
	case "stats":
		a.getStats(w, r)
	case "alerts":
		a.getOpenAlerts(w, r)
	default:
		writeError(w, http.StatusBadRequest, "Invalid type")
	}
}

func (a *API) getCurrent(w http.ResponseWriter, r *http.Request) {
	reading, err := a.query.Current(r.Context())
	if errors.Is(err, models.ErrNoData) {
		// The dashboard treats an empty store as a normal state, not an
		// HTTP failure.
		writeError(w, http.StatusOK, "No data available")
		return
	}
	if err != nil {
		a.log.Error().Err(err).Msg("failed to load current reading")
		writeError(w, http.StatusInternalServerError, "Failed to load data")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": readingJSON{
			Temperature: reading.Temperature,
			Humidity:    reading.Humidity,
			Timestamp:   reading.Timestamp.Format(timeLayout),
		},
	})
}

func (a *API) getHistory(w http.ResponseWriter, r *http.Request) {
	hours, err := parseHours(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	readings, err := a.query.History(r.Context(), hours)
	if err != nil {
		if models.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		a.log.Error().Err(err).Msg("failed to load history")
		writeError(w, http.StatusInternalServerError, "Failed to load data")
		return
	}

	data := make([]readingJSON, 0, len(readings))
	for _, rd := range readings {
		data = append(data, readingJSON{
			Temperature: rd.Temperature,
			Humidity:    rd.Humidity,
			Timestamp:   rd.Timestamp.Format(timeLayout),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}

func (a *API) getStats(w http.ResponseWriter, r *http.Request) {
	hours, err := parseHours(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	stats, err := a.query.Stats(r.Context(), hours)
	if errors.Is(err, models.ErrNoData) {
		writeError(w, http.StatusOK, "No data available")
		return
	}
	if err != nil {
		if models.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		a.log.Error().Err(err).Msg("failed to compute stats")
		writeError(w, http.StatusInternalServerError, "Failed to load data")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stats":   stats,
	})
}

func (a *API) getOpenAlerts(w http.ResponseWriter, r *http.Request) {
	events, err := a.query.OpenAlerts(r.Context())
	if err != nil {
		a.log.Error().Err(err).Msg("failed to load open alerts")
		writeError(w, http.StatusInternalServerError, "Failed to load alerts")
		return
	}

	out := make([]alertJSON, 0, len(events))
	for _, e := range events {
		out = append(out, alertJSON{
			ID:        e.ID,
			Type:      string(e.Type),
			Message:   e.Message,
			Value:     e.Value,
			Timestamp: e.Timestamp.Format(timeLayout),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"alerts":  out,
		"count":   len(out),
	})
}

// parseHours reads the optional hours parameter, defaulting to the standard
// 24-hour window. Non-numeric or non-positive values are the caller's fault.
func parseHours(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("hours")
	if raw == "" {
		return models.DefaultWindowHours, nil
	}

	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return 0, &models.ValidationError{Field: "hours", Reason: "Invalid hours"}
	}
	return hours, nil
}
