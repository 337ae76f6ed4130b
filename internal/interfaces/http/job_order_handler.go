package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/TallerMotos-api/internal/application/dto"
	"github.com/jhoicas/TallerMotos-api/internal/application/orders"
	"github.com/jhoicas/TallerMotos-api/internal/domain/entity"
)

// JobOrderHandler maneja las peticiones HTTP para órdenes de trabajo
// (protegido). El recibo PDF se genera bajo demanda.
type JobOrderHandler struct {
	uc  *orders.JobOrderUseCase
	pdf orders.ReceiptPDFGenerator
}

// NewJobOrderHandler construye el handler.
func NewJobOrderHandler(uc *orders.JobOrderUseCase, pdf orders.ReceiptPDFGenerator) *JobOrderHandler {
	return &JobOrderHandler{uc: uc, pdf: pdf}
}

// Create godoc
// @Summary      Crear orden de trabajo (descuenta stock de repuestos)
// @Tags         job-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateJobOrderRequest  true  "Datos de la orden"
// @Success      201   {object}  dto.JobOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/job-orders [post]
func (h *JobOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateJobOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toJobOrderResponse(order))
}

// GetByID godoc
// @Summary      Obtener orden de trabajo por ID
// @Tags         job-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.JobOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/job-orders/{id} [get]
func (h *JobOrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toJobOrderResponse(order))
}

// List godoc
// @Summary      Listar órdenes de trabajo
// @Tags         job-orders
// @Security     Bearer
// @Produce      json
// @Param        customer_id  query  string  false  "Filtrar por cliente"
// @Param        limit        query  int     false  "Máximo de filas"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.JobOrderResponse
// @Router       /api/job-orders [get]
func (h *JobOrderHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.uc.List(c.UserContext(), c.Query("customer_id"), limit, offset)
	if err != nil {
		return errorJSON(c, err)
	}
	out := make([]dto.JobOrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toJobOrderResponse(o))
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado operativo de la orden de trabajo
// @Tags         job-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la orden"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.JobOrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/job-orders/{id}/status [post]
func (h *JobOrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toJobOrderResponse(order))
}

// Receipt godoc
// @Summary      Descargar recibo PDF de la orden de trabajo
// @Tags         job-orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/job-orders/{id}/receipt [get]
func (h *JobOrderHandler) Receipt(c *fiber.Ctx) error {
	order, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	if order.Status != entity.JobStatusCompleted && order.PaymentStatus != entity.PaymentStatusPaid {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "el recibo solo está disponible para órdenes completadas o pagadas"})
	}
	doc, err := h.pdf.GenerateJobOrderPDF(c.UserContext(), order)
	if err != nil {
		return errorJSON(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.pdf"`, order.OrderNumber))
	return c.Send(doc)
}
