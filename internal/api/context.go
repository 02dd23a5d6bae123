package api

import (
	"github.com/gin-gonic/gin"

	"planhub-backend-go/internal/middleware"
	"planhub-backend-go/internal/token"
)

// identityFromContext pulls the identity the auth middleware stored in the
// Gin context. ok is false when the middleware did not run or left no
// usable subject id.
func identityFromContext(c *gin.Context) (token.Identity, bool) {
	rawUserID, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return token.Identity{}, false
	}
	userID, ok := rawUserID.(string)
	if !ok || userID == "" {
		return token.Identity{}, false
	}
	return token.Identity{
		SubjectID: userID,
		Email:     c.GetString(middleware.ContextUserEmailKey),
	}, true
}
