package analytics

import (
	"errors"
	"testing"

	"github.com/gbelpiede/cx-ai-agent-prototype/internal/domain"
)

func TestPercent(t *testing.T) {
	cases := []struct {
		ratio float64
		want  string
	}{
		{0, "0%"},
		{0.87, "87%"},
		{0.874, "87%"},
		{0.875, "88%"},
		{1, "100%"},
	}
	for _, c := range cases {
		if got := Percent(c.ratio); got != c.want {
			t.Errorf("Percent(%v) = %q, want %q", c.ratio, got, c.want)
		}
	}
}

func TestCurrency(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "$0"},
		{950, "$950"},
		{12500, "$12,500"},
		{1234567, "$1,234,567"},
		{12500.49, "$12,500"},
		{-300, "-$300"},
	}
	for _, c := range cases {
		if got := Currency(c.amount); got != c.want {
			t.Errorf("Currency(%v) = %q, want %q", c.amount, got, c.want)
		}
	}
}

func TestPresentSummary(t *testing.T) {
	view := PresentSummary(&domain.DashboardSummary{
		CheckInsSent30d:      412,
		ResponseRate:         0.87,
		ChurnAlertsThisMonth: 3,
	}, nil)

	if view.CheckInsSent != "412" || view.ResponseRate != "87%" || view.ChurnAlerts != "3" {
		t.Errorf("Unexpected summary view: %+v", view)
	}

	failed := PresentSummary(nil, errors.New("Get summary error: Failed to get summary"))
	if failed.CheckInsSent != NotAvailable || failed.ResponseRate != NotAvailable || failed.ChurnAlerts != NotAvailable {
		t.Errorf("Expected N/A across the board, got %+v", failed)
	}
}

func TestPresentROI(t *testing.T) {
	view := PresentROI(&domain.ROIMetrics{
		TimeSavedHours:             42.5,
		ResponseRateImprovementPct: 23,
		EstimatedSavings:           12500,
	}, nil)

	if view.TimeSaved != "42.5 hrs" {
		t.Errorf("Unexpected time saved: %q", view.TimeSaved)
	}
	if view.ResponseRateLift != "+23%" {
		t.Errorf("Unexpected lift: %q", view.ResponseRateLift)
	}
	if view.EstimatedSavings != "$12,500" {
		t.Errorf("Unexpected savings: %q", view.EstimatedSavings)
	}

	failed := PresentROI(nil, errors.New("down"))
	if failed.TimeSaved != NotAvailable {
		t.Errorf("Expected N/A, got %+v", failed)
	}
}

func TestPresentAgents(t *testing.T) {
	cards := PresentAgents([]domain.Agent{
		{
			ID:        "a1",
			Name:      "Night Shift Bot",
			Status:    domain.AgentStatusActive,
			VoiceName: "Ava",
			ToneScore: 0.7,
			Language:  "English",
			FlowsEnabled: map[string]bool{
				domain.FlowRetentionCheckin: true,
				domain.FlowPayrollHelp:      false,
				domain.FlowSafetyReport:     true,
			},
		},
		{ID: "a2", Name: "Draft Bot", Status: domain.AgentStatusDraft},
	})

	if len(cards) != 2 {
		t.Fatalf("Expected 2 cards, got %d", len(cards))
	}
	if cards[0].StatusLabel != "Active" || cards[0].TonePct != "70%" || cards[0].FlowsEnabled != 2 {
		t.Errorf("Unexpected first card: %+v", cards[0])
	}
	if cards[1].StatusLabel != "Draft" || cards[1].FlowsEnabled != 0 {
		t.Errorf("Unexpected second card: %+v", cards[1])
	}

	if got := PresentAgents(nil); got == nil || len(got) != 0 {
		t.Errorf("Expected empty slice for no agents, got %v", got)
	}
}
