package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"planhub-backend-go/internal/token"
)

// Context keys populated by the auth middleware for downstream handlers.
const (
	ContextUserIDKey    = "userID"
	ContextUserEmailKey = "userEmail"
)

// ErrorResponse is a local definition for sending standardized error messages.
// It mirrors the one in internal/api/dto_models.go to avoid import cycles.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// AuthMiddleware provides Gin middleware for bearer-token authentication.
type AuthMiddleware struct {
	codec *token.Codec
}

// NewAuthMiddleware creates a new AuthMiddleware instance.
// It panics if the codec is nil, as this is a critical setup dependency.
func NewAuthMiddleware(codec *token.Codec) *AuthMiddleware {
	if codec == nil {
		panic("token codec is not initialized for AuthMiddleware")
	}
	return &AuthMiddleware{codec: codec}
}

// VerifyToken verifies the bearer token from the Authorization header.
// A missing or malformed header is 401; a header that is present but fails
// verification (tampered or expired, deliberately indistinguishable) is 403.
// On success the resolved identity is set in the Gin context; no store is
// touched and nothing is retried.
func (m *AuthMiddleware) VerifyToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authorization header is required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authorization header format must be 'Bearer {token}'"})
			return
		}

		identity, err := m.codec.Verify(parts[1])
		if err != nil {
			// Generic message on purpose; the caller cannot learn whether
			// the token was expired or unverifiable.
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "Invalid or expired authentication token"})
			return
		}

		c.Set(ContextUserIDKey, identity.SubjectID)
		c.Set(ContextUserEmailKey, identity.Email)

		c.Next()
	}
}
