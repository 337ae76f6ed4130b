package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/TallerMotos-api/internal/application/dto"
	"github.com/jhoicas/TallerMotos-api/internal/application/purchasing"
)

// GoodsReceiptHandler maneja las peticiones HTTP para recepciones de
// mercancía (protegido).
type GoodsReceiptHandler struct {
	uc *purchasing.GoodsReceiptUseCase
}

// NewGoodsReceiptHandler construye el handler.
func NewGoodsReceiptHandler(uc *purchasing.GoodsReceiptUseCase) *GoodsReceiptHandler {
	return &GoodsReceiptHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar recepción de mercancía
// @Tags         goods-receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateGoodsReceiptRequest  true  "Datos de la recepción"
// @Success      201   {object}  dto.GoodsReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/goods-receipts [post]
func (h *GoodsReceiptHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateGoodsReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	gr, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toGoodsReceiptResponse(gr))
}

// GetByID godoc
// @Summary      Obtener recepción por ID
// @Tags         goods-receipts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la recepción"
// @Success      200  {object}  dto.GoodsReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/goods-receipts/{id} [get]
func (h *GoodsReceiptHandler) GetByID(c *fiber.Ctx) error {
	gr, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toGoodsReceiptResponse(gr))
}

// List godoc
// @Summary      Listar recepciones
// @Tags         goods-receipts
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máximo de filas"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.GoodsReceiptResponse
// @Router       /api/goods-receipts [get]
func (h *GoodsReceiptHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	receipts, err := h.uc.List(c.UserContext(), limit, offset)
	if err != nil {
		return errorJSON(c, err)
	}
	out := make([]dto.GoodsReceiptResponse, 0, len(receipts))
	for _, gr := range receipts {
		out = append(out, toGoodsReceiptResponse(gr))
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar recepción (Completed acredita stock una sola vez)
// @Tags         goods-receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "ID de la recepción"
// @Param        body  body  dto.UpdateGoodsReceiptRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.GoodsReceiptResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/goods-receipts/{id} [put]
func (h *GoodsReceiptHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateGoodsReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	gr, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toGoodsReceiptResponse(gr))
}
