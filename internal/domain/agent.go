package domain

type AgentStatus string

const (
	AgentStatusDraft  AgentStatus = "draft"
	AgentStatusActive AgentStatus = "active"
)

// Check-in flows an agent can run.
const (
	FlowRetentionCheckin = "retention_checkin"
	FlowPayrollHelp      = "payroll_help"
	FlowSafetyReport     = "safety_report"
)

// Agent is the read-only projection of a configured AI agent. It is fetched
// fresh on every screen render and never cached or mutated locally.
type Agent struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Status       AgentStatus     `json:"status"`
	VoiceName    string          `json:"voice_name"`
	ToneScore    float64         `json:"tone_score"` // 0 = professional, 1 = friendly
	Language     string          `json:"language"`
	FlowsEnabled map[string]bool `json:"flows_enabled"`
}

// AgentDraft is the payload for creating a new agent.
type AgentDraft struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	ToneScore    float64         `json:"tone_score"`
	VoiceName    string          `json:"voice_name"`
	Language     string          `json:"language"`
	FlowsEnabled map[string]bool `json:"flows_enabled"`
}
