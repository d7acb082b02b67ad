package domain

import (
	"time"
)

// CustomerProfile is the session-scoped projection of the account that is
// logged in. The backend owns the authoritative record; this copy only feeds
// the sidebar and the settings screen.
type CustomerProfile struct {
	Email         string `json:"email"`
	CompanyName   string `json:"company_name"`
	Industry      string `json:"industry,omitempty"`
	EmployeeCount int    `json:"employee_count,omitempty"`
	Timezone      string `json:"timezone,omitempty"`
	Language      string `json:"language,omitempty"`
}

// Session holds everything the dashboard keeps for one logged-in browser:
// the opaque backend access token and the customer profile. Sessions live in
// memory only and die with the process.
type Session struct {
	ID        string          `json:"id"`
	Token     string          `json:"-"` // backend access token, never sent to the browser
	Customer  CustomerProfile `json:"customer"`
	CreatedAt time.Time       `json:"created_at"`
}

// SignupRequest carries the fields the backend signup endpoint requires.
type SignupRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	CompanyName   string `json:"company_name"`
	Timezone      string `json:"timezone"`
	Industry      string `json:"industry"`
	EmployeeCount int    `json:"employee_count"`
}

// AuthResult is the backend response to signup and login.
type AuthResult struct {
	AccessToken string `json:"access_token"`
}
