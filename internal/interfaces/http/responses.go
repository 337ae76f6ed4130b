package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/TallerMotos-api/internal/application/dto"
	"github.com/jhoicas/TallerMotos-api/internal/application/orders"
	"github.com/jhoicas/TallerMotos-api/internal/domain"
	"github.com/jhoicas/TallerMotos-api/internal/domain/entity"
)

// errorJSON mapea los errores centinela del dominio a códigos HTTP.
// Todo lo no reconocido es un 500.
func errorJSON(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// pageParams lee limit/offset del query string con defaults y tope.
func pageParams(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", 20)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset = c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// ── Mapeo entidad → DTO de respuesta ─────────────────────────────────────────

func toPartResponse(p *entity.Part) dto.PartResponse {
	return dto.PartResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Cost:          p.Cost,
		StockQuantity: p.StockQuantity,
		MinStockLevel: p.MinStockLevel,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toSupplierResponse(s *entity.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Phone:         s.Phone,
		Email:         s.Email,
		Address:       s.Address,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
	}
}

func toCustomerResponse(c *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
	}
}

func toMotorcycleResponse(m *entity.Motorcycle) dto.MotorcycleResponse {
	return dto.MotorcycleResponse{
		ID:          m.ID,
		CustomerID:  m.CustomerID,
		PlateNumber: m.PlateNumber,
		Brand:       m.Brand,
		Model:       m.Model,
		Year:        m.Year,
	}
}

func toRequisitionResponse(r *entity.PurchaseRequisition) dto.RequisitionResponse {
	items := make([]dto.RequisitionItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, dto.RequisitionItemResponse{
			ID:                    it.ID,
			Description:           it.Description,
			PartID:                it.PartID,
			Quantity:              it.Quantity,
			EstimatedPricePerUnit: it.EstimatedPricePerUnit,
		})
	}
	return dto.RequisitionResponse{
		ID:                  r.ID,
		RequestedByUserID:   r.RequestedByUserID,
		Department:          r.Department,
		Status:              r.Status,
		Items:               items,
		TotalEstimatedValue: r.TotalEstimatedValue,
		Notes:               r.Notes,
		ApprovedByUserID:    r.ApprovedByUserID,
		ApprovedDate:        r.ApprovedDate,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

func toPurchaseOrderResponse(po *entity.PurchaseOrder) dto.PurchaseOrderResponse {
	items := make([]dto.PurchaseOrderItemResponse, 0, len(po.Items))
	for _, it := range po.Items {
		items = append(items, dto.PurchaseOrderItemResponse{
			ID:          it.ID,
			Description: it.Description,
			PartID:      it.PartID,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
		})
	}
	return dto.PurchaseOrderResponse{
		ID:                    po.ID,
		OrderNumber:           po.OrderNumber,
		SupplierID:            po.SupplierID,
		PurchaseRequisitionID: po.PurchaseRequisitionID,
		Status:                po.Status,
		Items:                 items,
		SubTotal:              po.SubTotal,
		TaxAmount:             po.TaxAmount,
		ShippingCost:          po.ShippingCost,
		GrandTotal:            po.GrandTotal,
		ExpectedDeliveryDate:  po.ExpectedDeliveryDate,
		Notes:                 po.Notes,
		CreatedAt:             po.CreatedAt,
		UpdatedAt:             po.UpdatedAt,
	}
}

func toGoodsReceiptResponse(gr *entity.GoodsReceipt) dto.GoodsReceiptResponse {
	items := make([]dto.GoodsReceiptItemResponse, 0, len(gr.Items))
	for _, it := range gr.Items {
		items = append(items, dto.GoodsReceiptItemResponse{
			ID:                  it.ID,
			PurchaseOrderItemID: it.PurchaseOrderItemID,
			PartID:              it.PartID,
			QuantityOrdered:     it.QuantityOrdered,
			QuantityReceived:    it.QuantityReceived,
		})
	}
	return dto.GoodsReceiptResponse{
		ID:              gr.ID,
		ReceiptNumber:   gr.ReceiptNumber,
		PurchaseOrderID: gr.PurchaseOrderID,
		SupplierID:      gr.SupplierID,
		Status:          gr.Status,
		Items:           items,
		ReceivedDate:    gr.ReceivedDate,
		Notes:           gr.Notes,
		CreatedAt:       gr.CreatedAt,
		UpdatedAt:       gr.UpdatedAt,
	}
}

func toPaymentResponse(p *entity.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:                p.ID,
		OrderID:           p.OrderID,
		OrderType:         p.OrderType,
		Amount:            p.Amount,
		PaymentDate:       p.PaymentDate,
		Method:            p.Method,
		Notes:             p.Notes,
		ProcessedByUserID: p.ProcessedByUserID,
	}
}

func toPaymentResponses(payments []entity.Payment) []dto.PaymentResponse {
	out := make([]dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, toPaymentResponse(&payments[i]))
	}
	return out
}

func toJobOrderResponse(o *entity.JobOrder) dto.JobOrderResponse {
	services := make([]dto.ServiceItemResponse, 0, len(o.ServicesPerformed))
	for _, s := range o.ServicesPerformed {
		services = append(services, dto.ServiceItemResponse{
			ID:          s.ID,
			ServiceID:   s.ServiceID,
			Description: s.Description,
			LaborCost:   s.LaborCost,
		})
	}
	parts := make([]dto.PartItemResponse, 0, len(o.PartsUsed))
	for _, p := range o.PartsUsed {
		parts = append(parts, dto.PartItemResponse{
			ID:           p.ID,
			PartID:       p.PartID,
			PartName:     p.PartName,
			Quantity:     p.Quantity,
			PricePerUnit: p.PricePerUnit,
			TotalPrice:   p.TotalPrice,
		})
	}
	return dto.JobOrderResponse{
		ID:                 o.ID,
		OrderNumber:        o.OrderNumber,
		CustomerID:         o.CustomerID,
		CustomerName:       o.CustomerName,
		MotorcycleID:       o.MotorcycleID,
		AssignedMechanicID: o.AssignedMechanicID,
		Status:             o.Status,
		Services:           services,
		Parts:              parts,
		DiscountAmount:     o.DiscountAmount,
		TaxAmount:          o.TaxAmount,
		GrandTotal:         o.GrandTotal,
		AmountPaid:         o.AmountPaid,
		BalanceDue:         o.BalanceDue(),
		PaymentStatus:      o.PaymentStatus,
		Payments:           toPaymentResponses(o.PaymentHistory),
		Notes:              o.Notes,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

func toSalesOrderResponse(o *entity.SalesOrder) dto.SalesOrderResponse {
	items := make([]dto.PartItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.PartItemResponse{
			ID:           it.ID,
			PartID:       it.PartID,
			PartName:     it.PartName,
			Quantity:     it.Quantity,
			PricePerUnit: it.PricePerUnit,
			TotalPrice:   it.TotalPrice,
		})
	}
	return dto.SalesOrderResponse{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		CustomerID:     o.CustomerID,
		CustomerName:   o.CustomerName,
		Status:         o.Status,
		Items:          items,
		DiscountAmount: o.DiscountAmount,
		TaxAmount:      o.TaxAmount,
		GrandTotal:     o.GrandTotal,
		AmountPaid:     o.AmountPaid,
		BalanceDue:     o.BalanceDue(),
		PaymentStatus:  o.PaymentStatus,
		Payments:       toPaymentResponses(o.PaymentHistory),
		Notes:          o.Notes,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func toRecordResultResponse(r *orders.RecordResult) fiber.Map {
	return fiber.Map{
		"payment":        toPaymentResponse(r.Payment),
		"grand_total":    r.GrandTotal,
		"amount_paid":    r.AmountPaid,
		"balance_due":    r.BalanceDue,
		"payment_status": r.PaymentStatus,
	}
}
