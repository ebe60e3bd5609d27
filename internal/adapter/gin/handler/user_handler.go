package handler

import (
	"errors"
	"net/http"
	"strconv"

	"user-account-service/internal/usecase/user"
	pkgerrors "user-account-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler handles HTTP requests for user account operations
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// CreateUserRequest represents the HTTP request body for creating a user
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// UserResponse represents the HTTP response for user data.
// The password hash has no field here and can never leak out.
type UserResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func toHTTPResponse(resp *user.UserResponse) UserResponse {
	return UserResponse{
		ID:       resp.ID,
		Name:     resp.Name,
		Email:    resp.Email,
		IsActive: resp.IsActive,
	}
}

// CreateUser handles POST /api/v1/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid create user request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	h.log.Info("create user request", zap.String("name", req.Name), zap.String("email", req.Email))

	resp, err := h.uc.CreateUser(c.Request.Context(), user.CreateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.log.Error("create user failed", zap.Error(err))
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toHTTPResponse(resp))
}

// DeleteUser handles DELETE /api/v1/users/:id (soft delete)
func (h *UserHandler) DeleteUser(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.log.Warn("invalid user id", zap.String("id", idStr), zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "user id must be a valid number",
		})
		return
	}

	h.log.Info("delete user request", zap.Int64("id", id))

	resp, err := h.uc.DeactivateUser(c.Request.Context(), user.DeactivateUserRequest{ID: id})
	if err != nil {
		h.log.Error("delete user failed", zap.Error(err))
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toHTTPResponse(resp))
}

// handleError converts usecase errors to appropriate HTTP responses
func (h *UserHandler) handleError(c *gin.Context, err error) {
	var notFound *pkgerrors.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(notFound.HTTPStatus(), ErrorResponse{
			Error:   "not_found",
			Message: notFound.Error(),
		})
		return
	}

	var exists *pkgerrors.AlreadyExistsError
	if errors.As(err, &exists) {
		c.JSON(exists.HTTPStatus(), ErrorResponse{
			Error:   "already_exists",
			Message: exists.Error(),
		})
		return
	}

	var invalid *pkgerrors.ValidationError
	if errors.As(err, &invalid) {
		c.JSON(invalid.HTTPStatus(), ErrorResponse{
			Error:   "validation_error",
			Message: invalid.Error(),
		})
		return
	}

	// Store-level and unexpected failures stay opaque to clients
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "an internal error occurred",
	})
}
