package handlers

import (
	"net/http"
	"strconv"

	"event-ticketing-backend/internal/models"
	"event-ticketing-backend/internal/settings"

	"github.com/gin-gonic/gin"
)

const (
	defaultQRSize = 256
	maxQRSize     = 1024
)

type SettingsHandler struct {
	registry *settings.Registry
}

func NewSettingsHandler(registry *settings.Registry) *SettingsHandler {
	return &SettingsHandler{registry: registry}
}

// GetPaymentSettings godoc
// @Summary     Get payment settings
// @Description Returns the payment identifier and instructions shown at checkout
// @Tags        settings
// @Produce     json
// @Success     200 {object} models.PaymentSettings
// @Failure     500 {object} models.ErrorResponse
// @Router      /settings/payment [get]
func (h *SettingsHandler) GetPaymentSettings(c *gin.Context) {
	s, err := h.registry.Get(c.Request.Context())
	if err != nil {
		respondError(c, "failed to load payment settings", err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// UpdatePaymentSettings godoc
// @Summary     Replace payment settings
// @Description Overwrites both fields. An omitted field is cleared.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.UpdatePaymentSettingsRequest true "New settings"
// @Success     200 {object} models.PaymentSettings
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /admin/settings/payment [put]
func (h *SettingsHandler) UpdatePaymentSettings(c *gin.Context) {
	var req models.UpdatePaymentSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	saved, err := h.registry.Set(c.Request.Context(), models.PaymentSettings{
		PaymentIdentifier: req.PaymentIdentifier,
		Instructions:      req.Instructions,
	})
	if err != nil {
		respondError(c, "failed to save payment settings", err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// PreviewPayment godoc
// @Summary     Preview the payment link
// @Description Returns the payment URI for a nominal amount of 1.00
// @Tags        settings
// @Produce     json
// @Success     200 {object} models.PaymentPreviewResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /settings/payment/preview [get]
func (h *SettingsHandler) PreviewPayment(c *gin.Context) {
	s, err := h.registry.Get(c.Request.Context())
	if err != nil {
		respondError(c, "failed to load payment settings", err)
		return
	}

	uri, err := settings.PreviewURI(s)
	if err != nil {
		respondError(c, "payment settings not configured", err)
		return
	}
	c.JSON(http.StatusOK, models.PaymentPreviewResponse{
		PaymentIdentifier: s.PaymentIdentifier,
		PreviewURI:        uri,
	})
}

// PreviewPaymentQR godoc
// @Summary     Preview the payment QR code
// @Tags        settings
// @Produce     png
// @Param       size query int false "Edge length in pixels (default 256, max 1024)"
// @Success     200 {file} binary
// @Failure     400 {object} models.ErrorResponse
// @Router      /settings/payment/qr [get]
func (h *SettingsHandler) PreviewPaymentQR(c *gin.Context) {
	size := defaultQRSize
	if raw := c.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxQRSize {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "invalid size",
				Message: "size must be between 1 and 1024",
			})
			return
		}
		size = n
	}

	s, err := h.registry.Get(c.Request.Context())
	if err != nil {
		respondError(c, "failed to load payment settings", err)
		return
	}

	png, err := settings.PreviewQR(s, size)
	if err != nil {
		respondError(c, "payment settings not configured", err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
