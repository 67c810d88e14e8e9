package handlers

import (
	"net/http"

	"event-ticketing-backend/internal/models"
	"event-ticketing-backend/internal/notify"
	"event-ticketing-backend/internal/orders"

	"github.com/gin-gonic/gin"
)

type OrdersHandler struct {
	manager    *orders.Manager
	dispatcher *notify.Dispatcher
}

func NewOrdersHandler(manager *orders.Manager, dispatcher *notify.Dispatcher) *OrdersHandler {
	return &OrdersHandler{
		manager:    manager,
		dispatcher: dispatcher,
	}
}

// SubmitOrder godoc
// @Summary     Submit a ticket order
// @Description Records a customer order with its payment reference. The order starts as pending until an operator verifies the payment.
// @Tags        orders
// @Accept      json
// @Produce     json
// @Param       request body models.SubmitOrderRequest true "Customer, line items and payment reference"
// @Success     201 {object} models.OrderResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /orders [post]
func (h *OrdersHandler) SubmitOrder(c *gin.Context) {
	var req models.SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	items := make([]models.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.LineItem{
			Category:  item.Category,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	order, err := h.manager.Submit(c.Request.Context(), orders.SubmitOrder{
		CustomerName:     req.CustomerName,
		CustomerEmail:    req.CustomerEmail,
		PaymentReference: req.PaymentReference,
		Items:            items,
	})
	if err != nil {
		respondError(c, "failed to submit order", err)
		return
	}

	c.JSON(http.StatusCreated, models.NewOrderResponse(order))
}

// ListOrders godoc
// @Summary     List orders
// @Description Returns orders oldest first, optionally filtered by status and ticket category
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Param       status   query string false "pending, approved or rejected"
// @Param       category query string false "Ticket category (case-insensitive)"
// @Success     200 {object} models.OrderListResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /admin/orders [get]
func (h *OrdersHandler) ListOrders(c *gin.Context) {
	status := models.OrderStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid status",
			Message: "status must be pending, approved or rejected",
		})
		return
	}

	list, err := h.manager.List(c.Request.Context(), orders.ListFilter{
		Status:   status,
		Category: c.Query("category"),
	})
	if err != nil {
		respondError(c, "failed to list orders", err)
		return
	}

	c.JSON(http.StatusOK, models.OrderListResponse{Orders: toOrderResponses(list)})
}

// ListGroupedOrders godoc
// @Summary     List orders grouped by status
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.GroupedOrdersResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /admin/orders/grouped [get]
func (h *OrdersHandler) ListGroupedOrders(c *gin.Context) {
	grouped, err := h.manager.ListGrouped(c.Request.Context())
	if err != nil {
		respondError(c, "failed to list orders", err)
		return
	}

	c.JSON(http.StatusOK, models.GroupedOrdersResponse{
		Pending:  toOrderResponses(grouped.Pending),
		Approved: toOrderResponses(grouped.Approved),
		Rejected: toOrderResponses(grouped.Rejected),
	})
}

// GetOrder godoc
// @Summary     Get an order
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Success     200 {object} models.OrderResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/orders/{order_id} [get]
func (h *OrdersHandler) GetOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := h.manager.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "failed to get order", err)
		return
	}

	c.JSON(http.StatusOK, models.NewOrderResponse(order))
}

// ApproveOrder godoc
// @Summary     Approve a pending order
// @Description Marks the payment as verified and assigns the order a booking reference
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Param       Idempotency-Key header string false "Replays the first response for repeated requests"
// @Success     200 {object} models.OrderResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /admin/orders/{order_id}/approve [post]
func (h *OrdersHandler) ApproveOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := h.manager.Approve(c.Request.Context(), id)
	if err != nil {
		respondError(c, "failed to approve order", err)
		return
	}

	c.JSON(http.StatusOK, models.NewOrderResponse(order))
}

// RejectOrder godoc
// @Summary     Reject a pending order
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Success     200 {object} models.OrderResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /admin/orders/{order_id}/reject [post]
func (h *OrdersHandler) RejectOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := h.manager.Reject(c.Request.Context(), id)
	if err != nil {
		respondError(c, "failed to reject order", err)
		return
	}

	c.JSON(http.StatusOK, models.NewOrderResponse(order))
}

// RequestDelete godoc
// @Summary     Start deleting an order
// @Description Issues a short-lived confirmation token. The order is only removed by DELETE with that token.
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Success     200 {object} models.DeleteRequestResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/orders/{order_id}/delete-request [post]
func (h *OrdersHandler) RequestDelete(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	req, err := h.manager.RequestDelete(c.Request.Context(), id)
	if err != nil {
		respondError(c, "failed to request delete", err)
		return
	}

	c.JSON(http.StatusOK, models.DeleteRequestResponse{
		OrderID:   req.OrderID.String(),
		Token:     req.Token,
		ExpiresAt: req.ExpiresAt,
	})
}

// DeleteOrder godoc
// @Summary     Delete an order
// @Tags        admin
// @Security    Bearer
// @Param       order_id path  string true "Order ID (UUID)"
// @Param       confirm  query string true "Token from delete-request"
// @Success     204
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /admin/orders/{order_id} [delete]
func (h *OrdersHandler) DeleteOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	if err := h.manager.ConfirmDelete(c.Request.Context(), id, c.Query("confirm")); err != nil {
		respondError(c, "failed to delete order", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DispatchTicket godoc
// @Summary     Email the ticket to the customer
// @Description Sends the ticket link of an order that already has a ticket. The order is not modified.
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Success     200 {object} models.DispatchResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     422 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /admin/orders/{order_id}/dispatch [post]
func (h *OrdersHandler) DispatchTicket(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := h.dispatcher.DispatchOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, "failed to dispatch ticket", err)
		return
	}

	c.JSON(http.StatusOK, models.DispatchResponse{
		OrderID: order.ID.String(),
		Status:  "sent",
	})
}

func toOrderResponses(list []models.Order) []models.OrderResponse {
	out := make([]models.OrderResponse, 0, len(list))
	for i := range list {
		out = append(out, models.NewOrderResponse(&list[i]))
	}
	return out
}
