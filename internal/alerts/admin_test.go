package alerts_test

import (
	"context"
	"testing"

	"skywatch/internal/alerts"
	"skywatch/internal/models"
	"skywatch/internal/store/storetest"
)

func TestAdminUpdateRule(t *testing.T) {
	st := storetest.New()
	st.SeedRule(models.AlertTempHigh, 30, true)

	admin := alerts.NewAdmin(st, st)
	threshold := 35.0
	disabled := false

	affected, err := admin.UpdateRule(context.Background(), models.RuleUpdateInput{
		Type:      "temp_high",
		Threshold: &threshold,
		Enabled:   &disabled,
	})
	if err != nil {
		t.Fatalf("UpdateRule() error = %v", err)
	}
	if affected != 1 {
		t.Fatalf("affected = %d, want 1", affected)
	}

	rules, _ := admin.ListRules(context.Background())
	if rules[0].Threshold != 35.0 || rules[0].Enabled {
		t.Errorf("rule not updated: %+v", rules[0])
	}
}

func TestAdminUpdateRuleEnabledDefaultsTrue(t *testing.T) {
	st := storetest.New()
	st.SeedRule(models.AlertTempHigh, 30, false)

	admin := alerts.NewAdmin(st, st)
	threshold := 32.0
	if _, err := admin.UpdateRule(context.Background(), models.RuleUpdateInput{
		Type:      "temp_high",
		Threshold: &threshold,
	}); err != nil {
		t.Fatalf("UpdateRule() error = %v", err)
	}

	rules, _ := admin.ListRules(context.Background())
	if !rules[0].Enabled {
		t.Error("enabled not defaulted to true")
	}
}

func TestAdminUpdateRuleUnknownType(t *testing.T) {
	st := storetest.New()
	admin := alerts.NewAdmin(st, st)

	threshold := 35.0
	affected, err := admin.UpdateRule(context.Background(), models.RuleUpdateInput{
		Type:      "pressure_high",
		Threshold: &threshold,
	})
	if err != nil {
		t.Fatalf("UpdateRule() error = %v", err)
	}
	// Unknown type is reported as zero rows, not an error.
	if affected != 0 {
		t.Errorf("affected = %d, want 0", affected)
	}
}

func TestAdminUpdateRuleValidation(t *testing.T) {
	admin := alerts.NewAdmin(storetest.New(), storetest.New())

	if _, err := admin.UpdateRule(context.Background(), models.RuleUpdateInput{Type: "temp_high"}); !models.IsValidation(err) {
		t.Errorf("error = %v, want ValidationError", err)
	}
}

func TestAdminAcknowledgeIdempotent(t *testing.T) {
	st := storetest.New()
	st.InsertAlert(context.Background(), models.AlertTempHigh, "High temperature alert: 35°C (threshold: 30°C)", 35)

	admin := alerts.NewAdmin(st, st)
	id := int64(1)
	in := models.AckInput{AlertID: &id}

	// Acknowledging twice leaves exactly one acknowledged event, no error
	// on the second call.
	if err := admin.Acknowledge(context.Background(), in); err != nil {
		t.Fatalf("first Acknowledge() error = %v", err)
	}
	if err := admin.Acknowledge(context.Background(), in); err != nil {
		t.Fatalf("second Acknowledge() error = %v", err)
	}

	if len(st.Alerts) != 1 || !st.Alerts[0].Acknowledged {
		t.Errorf("unexpected alert state: %+v", st.Alerts)
	}
}

func TestAdminAcknowledgeUnknownID(t *testing.T) {
	admin := alerts.NewAdmin(storetest.New(), storetest.New())

	id := int64(404)
	if err := admin.Acknowledge(context.Background(), models.AckInput{AlertID: &id}); err != nil {
		t.Errorf("Acknowledge() error = %v, want nil for unknown id", err)
	}
}

func TestAdminAcknowledgeValidation(t *testing.T) {
	admin := alerts.NewAdmin(storetest.New(), storetest.New())

	if err := admin.Acknowledge(context.Background(), models.AckInput{}); !models.IsValidation(err) {
		t.Errorf("error = %v, want ValidationError", err)
	}
}
