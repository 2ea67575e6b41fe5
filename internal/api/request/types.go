package request

// LoginRequest is the request body for logging in. Type selects the
// admin or user account store and defaults to admin.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Type     string `json:"type,omitempty"`
}
