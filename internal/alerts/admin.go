package alerts

import (
	"context"

	"github.com/rs/zerolog"

	"skywatch/internal/logger"
	"skywatch/internal/metrics"
	"skywatch/internal/models"
	"skywatch/internal/store"
)

// Admin serves rule configuration and alert acknowledgment for the
// dashboard's settings panel.
type Admin struct {
	rules  store.RuleStore
	events store.AlertStore
	log    zerolog.Logger
}

// NewAdmin creates the administration service over the given stores.
func NewAdmin(rules store.RuleStore, events store.AlertStore) *Admin {
	return &Admin{
		rules:  rules,
		events: events,
		log:    logger.WithComponent("alert_admin"),
	}
}

// ListRules returns all alert rules ordered by type.
func (a *Admin) ListRules(ctx context.Context) ([]models.AlertRule, error) {
	return a.rules.ListRules(ctx)
}

// UpdateRule reconfigures the rule matching the input's type and reports
// the number of rows affected. An unknown type affects zero rows; that is
// surfaced to the caller, not treated as an error.
func (a *Admin) UpdateRule(ctx context.Context, in models.RuleUpdateInput) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}

	affected, err := a.rules.UpdateRule(ctx, models.AlertType(in.Type), *in.Threshold, in.EnabledOrDefault())
	if err != nil {
		return 0, err
	}

	if affected == 0 {
		a.log.Warn().Str("alert_type", in.Type).Msg("rule update matched no rows")
	} else {
		a.log.Info().
			Str("alert_type", in.Type).
			Float64("threshold", *in.Threshold).
			Bool("enabled", in.EnabledOrDefault()).
			Msg("rule updated")
	}
	return affected, nil
}

// Acknowledge marks an alert event as seen. The operation is idempotent:
// re-acknowledging, or acknowledging an unknown id, succeeds quietly to
// match the dashboard's fire-and-forget dismiss.
func (a *Admin) Acknowledge(ctx context.Context, in models.AckInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	affected, err := a.events.AcknowledgeAlert(ctx, *in.AlertID)
	if err != nil {
		return err
	}

	if affected > 0 {
		metrics.AlertsAcknowledged.Inc()
		a.log.Info().Int64("alert_id", *in.AlertID).Msg("alert acknowledged")
	} else {
		a.log.Debug().Int64("alert_id", *in.AlertID).Msg("acknowledge matched no rows")
	}
	return nil
}
