package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/TallerMotos-api/internal/application/catalog"
	"github.com/jhoicas/TallerMotos-api/internal/application/dto"
)

// CustomerHandler maneja las peticiones HTTP para clientes y sus motos (protegido).
type CustomerHandler struct {
	uc *catalog.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *catalog.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCustomerRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.uc.Create(in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCustomerResponse(customer))
}

// GetByID godoc
// @Summary      Obtener cliente por ID
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	customer, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toCustomerResponse(customer))
}

// List godoc
// @Summary      Listar clientes
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máximo de filas"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.CustomerResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	customers, err := h.uc.List(limit, offset)
	if err != nil {
		return errorJSON(c, err)
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, cu := range customers {
		out = append(out, toCustomerResponse(cu))
	}
	return c.JSON(out)
}

// AddMotorcycle godoc
// @Summary      Registrar moto de un cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del cliente"
// @Param        body  body  dto.CreateMotorcycleRequest  true  "Datos de la moto"
// @Success      201   {object}  dto.MotorcycleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/motorcycles [post]
func (h *CustomerHandler) AddMotorcycle(c *fiber.Ctx) error {
	var in dto.CreateMotorcycleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	moto, err := h.uc.AddMotorcycle(c.Params("id"), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMotorcycleResponse(moto))
}

// ListMotorcycles godoc
// @Summary      Listar motos de un cliente
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {array}  dto.MotorcycleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/motorcycles [get]
func (h *CustomerHandler) ListMotorcycles(c *fiber.Ctx) error {
	motos, err := h.uc.ListMotorcycles(c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	out := make([]dto.MotorcycleResponse, 0, len(motos))
	for _, m := range motos {
		out = append(out, toMotorcycleResponse(m))
	}
	return c.JSON(out)
}
