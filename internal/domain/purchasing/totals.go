package purchasing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/TallerMotos-api/internal/domain"
	"github.com/jhoicas/TallerMotos-api/internal/domain/entity"
)

// DefaultPurchaseTaxRate es la tasa plana aplicada a órdenes de compra cuando
// el caller no suministra un impuesto explícito, como porcentaje (10 = 10%,
// misma unidad que la tasa de ventas). Las ventas y órdenes de trabajo usan
// otra regla (tasa configurable del taller); la diferencia es una decisión de
// configuración por tipo de documento, no duplicación accidental.
var DefaultPurchaseTaxRate = decimal.NewFromInt(10)

// ValidateOrderItems verifica cada línea de la orden de compra:
// cantidad >= 1, precio unitario >= 0 y TotalPrice == Quantity * UnitPrice.
func ValidateOrderItems(items []entity.PurchaseOrderItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: la orden de compra requiere al menos un ítem", domain.ErrInvalidInput)
	}
	for i, item := range items {
		if item.Quantity < 1 {
			return fmt.Errorf("%w: ítem %d con cantidad %d", domain.ErrInvalidInput, i, item.Quantity)
		}
		if item.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: ítem %d con precio unitario negativo", domain.ErrInvalidInput, i)
		}
		expected := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		if !item.TotalPrice.Equal(expected) {
			return fmt.Errorf("%w: ítem %d con total %s distinto de cantidad por precio (%s)",
				domain.ErrInvalidInput, i, item.TotalPrice, expected)
		}
	}
	return nil
}

// ItemTotals devuelve las líneas con TotalPrice calculado desde cantidad y
// precio unitario (para callers que no lo envían).
func ItemTotals(items []entity.PurchaseOrderItem) []entity.PurchaseOrderItem {
	out := make([]entity.PurchaseOrderItem, len(items))
	for i, item := range items {
		item.TotalPrice = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		out[i] = item
	}
	return out
}

// OrderTotals deriva SubTotal, TaxAmount y GrandTotal de una orden de compra.
// explicitTax nil aplica fallbackTaxRate sobre el subtotal; la tasa es un
// porcentaje (10 = 10%), igual que en las órdenes de trabajo y ventas.
// GrandTotal = SubTotal + TaxAmount + ShippingCost.
func OrderTotals(items []entity.PurchaseOrderItem, explicitTax *decimal.Decimal, shippingCost, fallbackTaxRate decimal.Decimal) (subTotal, taxAmount, grandTotal decimal.Decimal) {
	subTotal = decimal.Zero
	for _, item := range items {
		subTotal = subTotal.Add(item.TotalPrice)
	}
	if explicitTax != nil {
		taxAmount = *explicitTax
	} else {
		taxAmount = subTotal.Mul(fallbackTaxRate.Div(decimal.NewFromInt(100)))
	}
	grandTotal = subTotal.Add(taxAmount).Add(shippingCost)
	return subTotal, taxAmount, grandTotal
}
