package delivery

import (
	"net/http"

	"taskflow-backend/internal/auth/usecase"
	"taskflow-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// DeviceHandler registers push notification devices
type DeviceHandler struct {
	authUsecase usecase.AuthUsecase
}

// NewDeviceHandler creates a new DeviceHandler
func NewDeviceHandler(authUsecase usecase.AuthUsecase) *DeviceHandler {
	return &DeviceHandler{authUsecase: authUsecase}
}

// RegisterDeviceRequest is the body of POST /api/devices
type RegisterDeviceRequest struct {
	Token      string `json:"token"`
	DeviceInfo string `json:"device_info"`
}

// RegisterDevice stores an FCM token for the caller
// POST /api/devices
func (h *DeviceHandler) RegisterDevice(c *gin.Context) {
	var req RegisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	if err := h.authUsecase.RegisterDevice(c.Request.Context(), CurrentActor(c), req.Token, req.DeviceInfo); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Device registered"})
}

// UnregisterDevice removes one of the caller's FCM tokens
// DELETE /api/devices/:token
func (h *DeviceHandler) UnregisterDevice(c *gin.Context) {
	if err := h.authUsecase.UnregisterDevice(c.Request.Context(), CurrentActor(c), c.Param("token")); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
