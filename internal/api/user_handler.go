package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"planhub-backend-go/internal/core"
	"planhub-backend-go/internal/models"
)

// UserHandler handles user-profile and plan related API endpoints.
type UserHandler struct {
	userService core.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us core.UserService) *UserHandler {
	return &UserHandler{userService: us}
}

// GetProfile handles the GET /api/user/profile endpoint.
func (h *UserHandler) GetProfile(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: User ID not found in context"})
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), identity.SubjectID)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve user profile"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// CreateUser handles the POST /api/user/create endpoint. The record is keyed
// by the authenticated subject id; a user is created exactly once.
func (h *UserHandler) CreateUser(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: User ID not found in context"})
		return
	}

	// The body is optional; an empty body yields a fresh trial plan.
	var req models.CreateUserRequest
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: err.Error()})
			return
		}
	}

	user, err := h.userService.Create(c.Request.Context(), identity.SubjectID, identity.Email, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrUserAlreadyExists):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "User already exists"})
		case errors.Is(err, core.ErrInvalidPlanType):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid plan type", Details: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create user"})
		}
		return
	}

	c.JSON(http.StatusCreated, user)
}

// UpdateProfile handles the PUT /api/user/profile endpoint. Only the
// supplied fields are merged; everything else is left untouched.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: User ID not found in context"})
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}

	if err := h.userService.UpdateProfile(c.Request.Context(), identity.SubjectID, req); err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update user profile"})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Profile updated"})
}

// ChangePlan handles the PUT /api/user/plan endpoint. The plan is replaced
// wholesale; any valid tier may be requested from any state.
func (h *UserHandler) ChangePlan(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: User ID not found in context"})
		return
	}

	var req models.ChangePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "planType is required", Details: err.Error()})
		return
	}

	plan, err := h.userService.ChangePlan(c.Request.Context(), identity.SubjectID, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidPlanType):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid plan type", Details: err.Error()})
		case errors.Is(err, core.ErrUserNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User profile not found"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to change plan"})
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}

// Stats handles the GET /api/user/stats endpoint.
func (h *UserHandler) Stats(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: User ID not found in context"})
		return
	}

	stats, err := h.userService.Stats(c.Request.Context(), identity.SubjectID)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve user stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
