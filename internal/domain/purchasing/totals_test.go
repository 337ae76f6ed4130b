package purchasing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/TallerMotos-api/internal/domain"
	"github.com/jhoicas/TallerMotos-api/internal/domain/entity"
	"github.com/jhoicas/TallerMotos-api/internal/domain/purchasing"
)

func item(qty int, unitPrice float64) entity.PurchaseOrderItem {
	up := decimal.NewFromFloat(unitPrice)
	return entity.PurchaseOrderItem{
		Description: "filtro de aceite",
		Quantity:    qty,
		UnitPrice:   up,
		TotalPrice:  up.Mul(decimal.NewFromInt(int64(qty))),
	}
}

// TestOrderTotals_FallbackImpuesto: 50 unidades a 8.00 sin impuesto explícito
// produce subtotal 400.00, impuesto 40.00 (tasa plana 10%) y total 440.00.
func TestOrderTotals_FallbackImpuesto(t *testing.T) {
	items := []entity.PurchaseOrderItem{item(50, 8.00)}

	sub, tax, grand := purchasing.OrderTotals(items, nil, decimal.Zero, purchasing.DefaultPurchaseTaxRate)

	assert.True(t, sub.Equal(decimal.NewFromFloat(400.00)), "subtotal: %s", sub)
	assert.True(t, tax.Equal(decimal.NewFromFloat(40.00)), "impuesto fallback 10%%: %s", tax)
	assert.True(t, grand.Equal(decimal.NewFromFloat(440.00)), "total: %s", grand)
}

// TestOrderTotals_ImpuestoExplicito: un impuesto suministrado por el caller
// reemplaza la tasa plana.
func TestOrderTotals_ImpuestoExplicito(t *testing.T) {
	items := []entity.PurchaseOrderItem{item(50, 8.00)}
	explicit := decimal.NewFromFloat(19.00)

	_, tax, grand := purchasing.OrderTotals(items, &explicit, decimal.NewFromFloat(25.00), purchasing.DefaultPurchaseTaxRate)

	assert.True(t, tax.Equal(explicit))
	assert.True(t, grand.Equal(decimal.NewFromFloat(444.00)), "400 + 19 + 25 de envío: %s", grand)
}

// TestOrderTotals_EnvioEntraAlTotal verifica GrandTotal = SubTotal + Tax + Shipping.
func TestOrderTotals_EnvioEntraAlTotal(t *testing.T) {
	items := []entity.PurchaseOrderItem{item(2, 100)}

	sub, tax, grand := purchasing.OrderTotals(items, nil, decimal.NewFromFloat(30.00), purchasing.DefaultPurchaseTaxRate)

	assert.True(t, grand.Equal(sub.Add(tax).Add(decimal.NewFromFloat(30.00))))
}

func TestValidateOrderItems_SinItems(t *testing.T) {
	err := purchasing.ValidateOrderItems(nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidateOrderItems_CantidadCero(t *testing.T) {
	bad := item(1, 10)
	bad.Quantity = 0
	err := purchasing.ValidateOrderItems([]entity.PurchaseOrderItem{bad})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestValidateOrderItems_TotalInconsistente: TotalPrice distinto de
// cantidad × precio unitario debe rechazarse.
func TestValidateOrderItems_TotalInconsistente(t *testing.T) {
	bad := item(5, 10)
	bad.TotalPrice = decimal.NewFromFloat(49.99)
	err := purchasing.ValidateOrderItems([]entity.PurchaseOrderItem{bad})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestItemTotals_CalculaTotalesDeLinea(t *testing.T) {
	in := []entity.PurchaseOrderItem{{Quantity: 3, UnitPrice: decimal.NewFromFloat(7.50)}}
	out := purchasing.ItemTotals(in)
	require.Len(t, out, 1)
	assert.True(t, out[0].TotalPrice.Equal(decimal.NewFromFloat(22.50)))
	require.NoError(t, purchasing.ValidateOrderItems(out))
}
