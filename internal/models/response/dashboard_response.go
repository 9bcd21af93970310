package response

import "festive-births-svc/internal/access"

// FormResponse describes how a form's fields are offered to the current user
type FormResponse struct {
	Form   string                            `json:"form" example:"delivery"`
	Fields map[string]access.FieldConstraint `json:"fields"`
}

// LoginResponse is returned on a successful login
type LoginResponse struct {
	Token              string      `json:"token"`
	ExpiresAt          string      `json:"expires_at" example:"2025-12-25T10:00:00Z"`
	MustChangePassword bool        `json:"must_change_password" example:"false"`
	User               interface{} `json:"user"`
}

// OptionsResponse is the cascading lookup payload
type OptionsResponse struct {
	Options []string `json:"options"`
}

// FacilityTypeResponse is the facility type lookup payload
type FacilityTypeResponse struct {
	FacilityType string `json:"facility_type" example:"District Hospital"`
}
