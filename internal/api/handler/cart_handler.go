package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cereza/orderdesk/internal/core/domain"
	"github.com/cereza/orderdesk/internal/core/service"
)

// CartHandler manages the session cart. Routes require an identity.
type CartHandler struct {
	orders *service.OrderService
}

func NewCartHandler(orders *service.OrderService) *CartHandler {
	return &CartHandler{orders: orders}
}

// Get lists the cart.
//
// @Summary      Cart content
// @Tags         cart
// @Produce      json
// @Success      200  {object}  cartResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(sess))
}

// AddItem appends one line item.
//
// @Summary      Add to cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      addItemRequest  true  "Line item"
// @Success      201   {object}  cartResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req addItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item := domain.LineItem{Name: req.Name, Quantity: req.Quantity, Description: req.Description, Link: req.Link}
	if err := h.orders.AddItem(sess, item); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCartResponse(sess))
}

// Clear empties the cart.
//
// @Summary      Empty cart
// @Tags         cart
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /v1/cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	h.orders.ClearCart(sess)
	return c.NoContent(http.StatusNoContent)
}
