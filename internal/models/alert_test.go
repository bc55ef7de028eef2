package models_test

import (
	"testing"

	"skywatch/internal/models"
)

func TestAlertTypeIsValid(t *testing.T) {
	valid := []models.AlertType{
		models.AlertTempHigh,
		models.AlertTempLow,
		models.AlertHumidityHigh,
		models.AlertHumidityLow,
	}
	for _, at := range valid {
		if !at.IsValid() {
			t.Errorf("IsValid(%q) = false, want true", at)
		}
	}

	invalid := []models.AlertType{"", "temp", "TEMP_HIGH", "pressure_high"}
	for _, at := range invalid {
		if at.IsValid() {
			t.Errorf("IsValid(%q) = true, want false", at)
		}
	}
}

func TestRuleUpdateInputValidate(t *testing.T) {
	threshold := 30.0
	enabled := false

	tests := []struct {
		name    string
		input   models.RuleUpdateInput
		wantErr bool
	}{
		{"valid", models.RuleUpdateInput{Type: "temp_high", Threshold: &threshold}, false},
		{"valid with enabled", models.RuleUpdateInput{Type: "temp_high", Threshold: &threshold, Enabled: &enabled}, false},
		{"missing type", models.RuleUpdateInput{Threshold: &threshold}, true},
		{"missing threshold", models.RuleUpdateInput{Type: "temp_high"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !models.IsValidation(err) {
				t.Errorf("error %v is not a ValidationError", err)
			}
		})
	}
}

func TestRuleUpdateInputEnabledOrDefault(t *testing.T) {
	in := models.RuleUpdateInput{}
	if !in.EnabledOrDefault() {
		t.Error("EnabledOrDefault() = false for absent field, want true")
	}

	disabled := false
	in.Enabled = &disabled
	if in.EnabledOrDefault() {
		t.Error("EnabledOrDefault() = true for explicit false")
	}
}

func TestAckInputValidate(t *testing.T) {
	if err := (&models.AckInput{}).Validate(); !models.IsValidation(err) {
		t.Errorf("Validate() = %v, want ValidationError", err)
	}
	if err := (&models.AckInput{}).Validate(); err.Error() != "Missing alert_id" {
		t.Errorf("unexpected message: %v", err)
	}

	id := int64(7)
	if err := (&models.AckInput{AlertID: &id}).Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}
