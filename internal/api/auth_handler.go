package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"planhub-backend-go/internal/models"
	"planhub-backend-go/internal/token"
)

// AuthHandler handles authentication related API endpoints.
type AuthHandler struct {
	codec    *token.Codec
	tokenTTL time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(codec *token.Codec, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{codec: codec, tokenTTL: tokenTTL}
}

// GenerateToken handles the POST /api/auth/generate-token endpoint.
// It issues a signed bearer token for the given subject id and email with
// the configured time-to-live.
func (h *AuthHandler) GenerateToken(c *gin.Context) {
	var req models.GenerateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "userId and email are required", Details: err.Error()})
		return
	}

	signed, err := h.codec.Issue(req.UserID, req.Email, h.tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: signed})
}

// Verify handles the GET /api/auth/verify endpoint. The auth middleware has
// already verified the token; this echoes the resolved identity back.
func (h *AuthHandler) Verify(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: User ID not found in context"})
		return
	}
	c.JSON(http.StatusOK, VerifyResponse{Valid: true, Identity: identity})
}

// Logout handles the POST /api/auth/logout endpoint. Tokens are stateless
// and there is no revocation list, so logout only acknowledges; clients drop
// the token on their side.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, SuccessResponse{Message: "Logged out"})
}
