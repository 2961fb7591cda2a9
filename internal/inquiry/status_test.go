package inquiry

import (
	"testing"

	"portal-backend/internal/models"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name string
		from models.InquiryStatus
		to   models.InquiryStatus
		want bool
	}{
		{"engineering to planning", models.StatusEngineering, models.StatusPlanning, true},
		{"engineering to rejected", models.StatusEngineering, models.StatusRejected, true},
		{"planning to accepted", models.StatusPlanning, models.StatusAccepted, true},
		{"planning to rejected", models.StatusPlanning, models.StatusRejected, true},
		{"engineering straight to accepted", models.StatusEngineering, models.StatusAccepted, false},
		{"planning back to engineering", models.StatusPlanning, models.StatusEngineering, false},
		{"accepted to planning", models.StatusAccepted, models.StatusPlanning, false},
		{"accepted to rejected", models.StatusAccepted, models.StatusRejected, false},
		{"rejected to engineering", models.StatusRejected, models.StatusEngineering, false},
		{"no self transition", models.StatusEngineering, models.StatusEngineering, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanTransition(tc.from, tc.to); got != tc.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestTerminalStages(t *testing.T) {
	if Terminal(models.StatusEngineering) || Terminal(models.StatusPlanning) {
		t.Error("Engineering and Planning must not be terminal")
	}
	if !Terminal(models.StatusAccepted) || !Terminal(models.StatusRejected) {
		t.Error("Accepted and Rejected must be terminal")
	}
}

func TestInProgress(t *testing.T) {
	if !InProgress(models.StatusEngineering) || !InProgress(models.StatusPlanning) {
		t.Error("Engineering and Planning count as in progress")
	}
	if InProgress(models.StatusAccepted) || InProgress(models.StatusRejected) {
		t.Error("Accepted and Rejected do not count as in progress")
	}
}
