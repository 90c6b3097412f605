package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/sale"
)

// SaleHandler maneja las peticiones HTTP de ventas: registro, listados,
// reembolsos, crédito y recibo.
type SaleHandler struct {
	uc *sale.UseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sale.UseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar una venta
// @Description  Valida todas las líneas, descuenta stock e inserta la venta en
//
//	una sola transacción. El precio se toma siempre del producto.
//
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "items (product_id, quantity), is_credit"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.CreateSale(c.Context(), GetTenant(c), in, c.IP())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// MySales godoc
// @Summary      Mis ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página (max 100)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.SaleListResponse
// @Router       /api/sales/my-sales [get]
func (h *SaleHandler) MySales(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	resp, err := h.uc.MySales(c.Context(), GetTenant(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// RequestRefund godoc
// @Summary      Solicitar reembolso de una venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.RefundRequest  false  "reason"
// @Success      200   {object}  dto.SaleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/refund [post]
func (h *SaleHandler) RequestRefund(c *fiber.Ctx) error {
	var in dto.RefundRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.RequestRefund(c.Context(), GetTenant(c), c.Params("id"), in, c.IP())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ApproveRefund godoc
// @Summary      Aprobar un reembolso solicitado
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/refund/approve [put]
func (h *SaleHandler) ApproveRefund(c *fiber.Ctx) error {
	resp, err := h.uc.ApproveRefund(c.Context(), GetTenant(c), c.Params("id"), c.IP())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// PendingRefunds godoc
// @Summary      Reembolsos pendientes de aprobación
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales/refunds/pending [get]
func (h *SaleHandler) PendingRefunds(c *fiber.Ctx) error {
	resp, err := h.uc.PendingRefunds(c.Context(), GetTenant(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// SettleCredit godoc
// @Summary      Liquidar una venta a crédito
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/settle [put]
func (h *SaleHandler) SettleCredit(c *fiber.Ctx) error {
	resp, err := h.uc.SettleCredit(c.Context(), GetTenant(c), c.Params("id"), c.IP())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// PendingCredit godoc
// @Summary      Ventas a crédito sin liquidar
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales/credit/pending [get]
func (h *SaleHandler) PendingCredit(c *fiber.Ctx) error {
	resp, err := h.uc.PendingCredit(c.Context(), GetTenant(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Receipt godoc
// @Summary      Recibo PDF de una venta
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.Receipt(c.Context(), GetTenant(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `inline; filename="recibo.pdf"`)
	return c.Send(pdfBytes)
}
