package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cereza/orderdesk/internal/api/metrics"
	"github.com/cereza/orderdesk/internal/core/service"
)

// OrderHandler turns the cart into a ledger entry.
type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Submit appends the cart to the order ledger.
//
// @Summary      Submit order
// @Description  On failure the cart is kept so the order can be resubmitted.
// @Tags         orders
// @Produce      json
// @Success      201  {object}  orderResponse
// @Failure      401  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Failure      423  {object}  errorResponse  "Ledger file held open by another program"
// @Failure      500  {object}  errorResponse
// @Router       /v1/orders [post]
func (h *OrderHandler) Submit(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	order, err := h.orders.Submit(c.Request().Context(), sess)
	if err != nil {
		metrics.LedgerErrorsTotal.WithLabelValues(metrics.LedgerErrorReason(err)).Inc()
		return err
	}

	metrics.OrdersSubmittedTotal.Inc()
	metrics.OrderItemsTotal.Add(float64(len(order.Items)))
	return c.JSON(http.StatusCreated, orderResponse{
		OrderID:   order.ID,
		CreatedAt: order.CreatedAt,
		Items:     len(order.Items),
	})
}
