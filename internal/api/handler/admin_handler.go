package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cereza/orderdesk/internal/core/service"
)

// ExportFilename is the attachment name of the ledger download.
const ExportFilename = "cereza_commandes.csv"

// AdminHandler is the operator dashboard. Routes require the admin role.
type AdminHandler struct {
	dashboard *service.DashboardService
}

func NewAdminHandler(dashboard *service.DashboardService) *AdminHandler {
	return &AdminHandler{dashboard: dashboard}
}

// Orders lists every ledger row.
//
// @Summary      Order history
// @Tags         admin
// @Produce      json
// @Success      200  {object}  datasetResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/orders [get]
func (h *AdminHandler) Orders(c echo.Context) error {
	ds, err := h.dashboard.Orders(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDatasetResponse(ds))
}

// Clients lists every registry row.
//
// @Summary      Client logins
// @Tags         admin
// @Produce      json
// @Success      200  {object}  datasetResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/clients [get]
func (h *AdminHandler) Clients(c echo.Context) error {
	ds, err := h.dashboard.Clients(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDatasetResponse(ds))
}

// Export downloads the ledger as a delimited text file.
//
// @Summary      Download ledger
// @Tags         admin
// @Produce      text/csv
// @Success      200  {file}    file
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/orders/export [get]
func (h *AdminHandler) Export(c echo.Context) error {
	// Buffered so a failure can still become a JSON error instead of a truncated file.
	var buf bytes.Buffer
	if err := h.dashboard.ExportOrders(c.Request().Context(), &buf); err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", ExportFilename))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
