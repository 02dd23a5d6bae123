package api

import "planhub-backend-go/internal/token"

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error   string `json:"error"`             // A high-level error message or code
	Details string `json:"details,omitempty"` // More specific details about the error, if available
}

// SuccessResponse is a generic structure for simple success messages.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// VerifyResponse is returned by GET /api/auth/verify.
type VerifyResponse struct {
	Valid    bool           `json:"valid"`
	Identity token.Identity `json:"identity"`
}

// TokenResponse is returned by POST /api/auth/generate-token.
type TokenResponse struct {
	Token string `json:"token"`
}
