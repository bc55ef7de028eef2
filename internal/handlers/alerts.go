package handlers

import (
	"net/http"

	"skywatch/internal/models"
)

// handleListRules returns the configured alert rules for the settings panel.
// GET /api/alerts
func (a *API) handleListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := a.admin.ListRules(r.Context())
	if err != nil {
		a.log.Error().Err(err).Msg("failed to load alert settings")
		writeError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"settings": rules,
	})
}

// handleUpdateRule reconfigures one alert rule by type.
// POST /api/alerts
func (a *API) handleUpdateRule(w http.ResponseWriter, r *http.Request) {
	var in models.RuleUpdateInput
	if !decodeBody(w, r, &in) {
		return
	}

	updated, err := a.admin.UpdateRule(r.Context(), in)
	if err != nil {
		if models.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		a.log.Error().Err(err).Msg("failed to update alert settings")
		writeError(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Alert settings updated",
		"updated": updated,
	})
}

// handleAcknowledge marks an alert event as seen. Acknowledging an unknown
// or already-acknowledged id still succeeds.
// PUT /api/alerts
func (a *API) handleAcknowledge(w http.ResponseWriter, r *http.Request) {
	var in models.AckInput
	if !decodeBody(w, r, &in) {
		return
	}

	if err := a.admin.Acknowledge(r.Context(), in); err != nil {
		if models.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		a.log.Error().Err(err).Msg("failed to acknowledge alert")
		writeError(w, http.StatusInternalServerError, "Failed to acknowledge alert")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Alert acknowledged",
	})
}
