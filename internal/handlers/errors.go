package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"event-ticketing-backend/internal/models"
	"event-ticketing-backend/internal/notify"
	"event-ticketing-backend/internal/orders"
	"event-ticketing-backend/internal/settings"
	"event-ticketing-backend/internal/tickets"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StatusFor maps a domain error to the HTTP status returned to the client.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, orders.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, orders.ErrInvalidTransition), errors.Is(err, orders.ErrDeleteNotConfirmed):
		return http.StatusConflict
	case errors.Is(err, orders.ErrInvalidOrder),
		errors.Is(err, settings.ErrInvalidSettings),
		errors.Is(err, tickets.ErrNothingToDo):
		return http.StatusBadRequest
	case errors.Is(err, notify.ErrNoTicket):
		return http.StatusUnprocessableEntity
	case errors.Is(err, notify.ErrDispatchFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, summary string, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), summary,
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
	}
	c.JSON(status, models.ErrorResponse{
		Error:   summary,
		Message: err.Error(),
	})
}

func parseOrderID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("order_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid order id"})
		return uuid.Nil, false
	}
	return id, true
}
