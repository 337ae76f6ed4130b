// Package orders contiene los servicios de dominio de órdenes de trabajo y
// ventas directas: validación de líneas y derivación de totales.
package orders

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/TallerMotos-api/internal/domain"
	"github.com/jhoicas/TallerMotos-api/internal/domain/entity"
)

// ValidatePartItems verifica las líneas de repuestos de una orden de trabajo:
// cantidad >= 1, precio >= 0 y TotalPrice == Quantity * PricePerUnit.
func ValidatePartItems(items []entity.JobOrderPartItem) error {
	for i, item := range items {
		if item.PartID == "" {
			return fmt.Errorf("%w: línea de repuesto %d sin repuesto", domain.ErrInvalidInput, i)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("%w: línea de repuesto %d con cantidad %d", domain.ErrInvalidInput, i, item.Quantity)
		}
		if item.PricePerUnit.IsNegative() {
			return fmt.Errorf("%w: línea de repuesto %d con precio negativo", domain.ErrInvalidInput, i)
		}
		expected := item.PricePerUnit.Mul(decimal.NewFromInt(int64(item.Quantity)))
		if !item.TotalPrice.Equal(expected) {
			return fmt.Errorf("%w: línea de repuesto %d con total %s distinto de cantidad por precio (%s)",
				domain.ErrInvalidInput, i, item.TotalPrice, expected)
		}
	}
	return nil
}

// ValidateSaleItems verifica las líneas de una venta directa (misma regla).
func ValidateSaleItems(items []entity.SalesOrderItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: la venta requiere al menos un ítem", domain.ErrInvalidInput)
	}
	for i, item := range items {
		if item.PartID == "" {
			return fmt.Errorf("%w: ítem %d sin repuesto", domain.ErrInvalidInput, i)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("%w: ítem %d con cantidad %d", domain.ErrInvalidInput, i, item.Quantity)
		}
		if item.PricePerUnit.IsNegative() {
			return fmt.Errorf("%w: ítem %d con precio negativo", domain.ErrInvalidInput, i)
		}
		expected := item.PricePerUnit.Mul(decimal.NewFromInt(int64(item.Quantity)))
		if !item.TotalPrice.Equal(expected) {
			return fmt.Errorf("%w: ítem %d con total %s distinto de cantidad por precio (%s)",
				domain.ErrInvalidInput, i, item.TotalPrice, expected)
		}
	}
	return nil
}

// GrandTotal deriva el total a pagar de una orden de trabajo o venta:
// subtotal - descuento + impuesto. Si explicitTax es nil, el impuesto se
// calcula con defaultTaxRate (porcentaje, p. ej. 19 = 19%) sobre el subtotal
// después de descuento. El resultado nunca es negativo.
func GrandTotal(subtotal, discount decimal.Decimal, explicitTax *decimal.Decimal, defaultTaxRate decimal.Decimal) (taxAmount, grandTotal decimal.Decimal) {
	afterDiscount := subtotal.Sub(discount)
	if afterDiscount.IsNegative() {
		afterDiscount = decimal.Zero
	}
	if explicitTax != nil {
		taxAmount = *explicitTax
	} else {
		taxAmount = afterDiscount.Mul(defaultTaxRate.Div(decimal.NewFromInt(100)))
	}
	grandTotal = afterDiscount.Add(taxAmount)
	return taxAmount, grandTotal
}
