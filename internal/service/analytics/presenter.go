package analytics

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gbelpiede/cx-ai-agent-prototype/internal/domain"
)

// NotAvailable is rendered wherever a metric could not be fetched.
const NotAvailable = "N/A"

// Percent formats a [0,1] ratio as a whole percentage, e.g. 0.87 -> "87%".
func Percent(ratio float64) string {
	return strconv.Itoa(int(math.Round(ratio*100))) + "%"
}

// Currency formats a dollar amount with thousands separators and no cents,
// e.g. 12500 -> "$12,500".
func Currency(amount float64) string {
	n := int64(math.Round(amount))
	neg := n < 0
	if neg {
		n = -n
	}

	s := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	if neg {
		return "-$" + b.String()
	}
	return "$" + b.String()
}

// Hours formats a duration metric, e.g. 42.5 -> "42.5 hrs".
func Hours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + " hrs"
}

// OrNA returns the formatted value, or "N/A" when the fetch failed.
func OrNA(value string, err error) string {
	if err != nil {
		return NotAvailable
	}
	return value
}

// SummaryView is the home-screen metric row with every value pre-formatted.
type SummaryView struct {
	CheckInsSent string `json:"check_ins_sent_30d"`
	ResponseRate string `json:"response_rate"`
	ChurnAlerts  string `json:"churn_alerts_this_month"`
}

// PresentSummary renders the dashboard summary, substituting "N/A" across the
// board when the summary fetch failed.
func PresentSummary(s *domain.DashboardSummary, err error) SummaryView {
	if err != nil || s == nil {
		return SummaryView{
			CheckInsSent: NotAvailable,
			ResponseRate: NotAvailable,
			ChurnAlerts:  NotAvailable,
		}
	}
	return SummaryView{
		CheckInsSent: strconv.Itoa(s.CheckInsSent30d),
		ResponseRate: Percent(s.ResponseRate),
		ChurnAlerts:  strconv.Itoa(s.ChurnAlertsThisMonth),
	}
}

// ROIView is the estimated-impact card set.
type ROIView struct {
	TimeSaved        string `json:"time_saved"`
	ResponseRateLift string `json:"response_rate_improvement"`
	EstimatedSavings string `json:"estimated_savings"`
}

func PresentROI(m *domain.ROIMetrics, err error) ROIView {
	if err != nil || m == nil {
		return ROIView{
			TimeSaved:        NotAvailable,
			ResponseRateLift: NotAvailable,
			EstimatedSavings: NotAvailable,
		}
	}
	return ROIView{
		TimeSaved:        Hours(m.TimeSavedHours),
		ResponseRateLift: fmt.Sprintf("+%s", Percent(m.ResponseRateImprovementPct/100)),
		EstimatedSavings: Currency(m.EstimatedSavings),
	}
}

// AgentCard is the list-screen projection of an agent.
type AgentCard struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	StatusLabel  string `json:"status_label"`
	VoiceName    string `json:"voice_name"`
	TonePct      string `json:"tone_pct"`
	Language     string `json:"language"`
	FlowsEnabled int    `json:"flows_enabled"`
}

// PresentAgents maps agents to their card views. Tone is shown as how far the
// slider sits toward "friendly".
func PresentAgents(agents []domain.Agent) []AgentCard {
	cards := make([]AgentCard, 0, len(agents))
	for _, a := range agents {
		enabled := 0
		for _, on := range a.FlowsEnabled {
			if on {
				enabled++
			}
		}

		label := "Draft"
		if a.Status == domain.AgentStatusActive {
			label = "Active"
		}

		cards = append(cards, AgentCard{
			ID:           a.ID,
			Name:         a.Name,
			Description:  a.Description,
			StatusLabel:  label,
			VoiceName:    a.VoiceName,
			TonePct:      Percent(a.ToneScore),
			Language:     a.Language,
			FlowsEnabled: enabled,
		})
	}
	return cards
}
