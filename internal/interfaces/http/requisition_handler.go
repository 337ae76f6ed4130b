package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/TallerMotos-api/internal/application/dto"
	"github.com/jhoicas/TallerMotos-api/internal/application/purchasing"
)

// RequisitionHandler maneja las peticiones HTTP para requisiciones de compra
// (protegido).
type RequisitionHandler struct {
	uc *purchasing.RequisitionUseCase
}

// NewRequisitionHandler construye el handler.
func NewRequisitionHandler(uc *purchasing.RequisitionUseCase) *RequisitionHandler {
	return &RequisitionHandler{uc: uc}
}

// Create godoc
// @Summary      Crear requisición de compra
// @Tags         requisitions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRequisitionRequest  true  "Datos de la requisición"
// @Success      201   {object}  dto.RequisitionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/requisitions [post]
func (h *RequisitionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRequisitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRequisitionResponse(req))
}

// GetByID godoc
// @Summary      Obtener requisición por ID
// @Tags         requisitions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la requisición"
// @Success      200  {object}  dto.RequisitionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id} [get]
func (h *RequisitionHandler) GetByID(c *fiber.Ctx) error {
	req, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toRequisitionResponse(req))
}

// List godoc
// @Summary      Listar requisiciones
// @Tags         requisitions
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máximo de filas"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.RequisitionResponse
// @Router       /api/requisitions [get]
func (h *RequisitionHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	reqs, err := h.uc.List(c.UserContext(), limit, offset)
	if err != nil {
		return errorJSON(c, err)
	}
	out := make([]dto.RequisitionResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, toRequisitionResponse(r))
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar requisición (solo Draft/Pending)
// @Tags         requisitions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la requisición"
// @Param        body  body  dto.UpdateRequisitionRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.RequisitionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id} [put]
func (h *RequisitionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRequisitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toRequisitionResponse(req))
}

// TransitionStatus godoc
// @Summary      Cambiar estado de una requisición
// @Tags         requisitions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                            true  "ID de la requisición"
// @Param        body  body  dto.TransitionRequisitionRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.RequisitionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/status [post]
func (h *RequisitionHandler) TransitionStatus(c *fiber.Ctx) error {
	var in dto.TransitionRequisitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req, err := h.uc.TransitionStatus(c.UserContext(), c.Params("id"), in.Status, GetUserID(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toRequisitionResponse(req))
}

// Delete godoc
// @Summary      Eliminar requisición (solo Draft/Rejected)
// @Tags         requisitions
// @Security     Bearer
// @Param        id  path  string  true  "ID de la requisición"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id} [delete]
func (h *RequisitionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
