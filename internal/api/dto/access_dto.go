package dto

// EvaluateRequest is the declarative requirement a client-side gate submits.
// show_denied_message defaults to true when omitted.
type EvaluateRequest struct {
	AllowedRoles       []string `json:"allowed_roles"`
	RequiredPermission string   `json:"required_permission,omitempty"`
	FallbackPath       string   `json:"fallback_path,omitempty"`
	ShowDeniedMessage  *bool    `json:"show_denied_message,omitempty"`
}

// EvaluateResponse is the gate's answer.
type EvaluateResponse struct {
	Outcome      string `json:"outcome"`
	RedirectPath string `json:"redirect_path,omitempty"`
	Role         string `json:"role,omitempty"`
	Message      string `json:"message,omitempty"`
}
