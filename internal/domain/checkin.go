package domain

// CheckInRequest triggers a conversational check-in between an agent and an
// employee. The resulting conversation state is opaque backend data; the
// dashboard relays it without inspecting it.
type CheckInRequest struct {
	AgentID    string `json:"agent_id"`
	EmployeeID string `json:"employee_id"`
	FlowName   string `json:"flow_name"`
}

// MessageRequest appends a message to an existing check-in.
type MessageRequest struct {
	UserMessage string `json:"user_message"`
	Source      string `json:"source"`
}

// DefaultMessageSource is used when the caller does not name a source.
const DefaultMessageSource = "web"
