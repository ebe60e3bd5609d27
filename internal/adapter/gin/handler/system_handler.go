package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SystemHandler serves the ping and echo endpoints.
type SystemHandler struct{}

// NewSystemHandler creates a new SystemHandler instance
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// PingResponse is the payload returned by the ping endpoint
type PingResponse struct {
	Message string `json:"message"`
}

// EchoRequest is the payload accepted by the echo endpoint
type EchoRequest struct {
	Message string `json:"message" binding:"required"`
}

// EchoResponse is the payload returned by the echo endpoint
type EchoResponse struct {
	Message string `json:"message"`
}

// Ping handles GET /api/v1/ping
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}

// Echo handles POST /api/v1/echo
func (h *SystemHandler) Echo(c *gin.Context) {
	var req EchoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, EchoResponse{Message: req.Message})
}
