package orders_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/TallerMotos-api/internal/domain"
	"github.com/jhoicas/TallerMotos-api/internal/domain/entity"
	"github.com/jhoicas/TallerMotos-api/internal/domain/orders"
)

// TestGrandTotal_ImpuestoPorDefecto: el impuesto se aplica sobre el subtotal
// después de descuento con la tasa configurada del taller (porcentaje).
func TestGrandTotal_ImpuestoPorDefecto(t *testing.T) {
	subtotal := decimal.NewFromInt(1000)
	discount := decimal.NewFromInt(100)
	rate := decimal.NewFromInt(10) // 10%

	tax, grand := orders.GrandTotal(subtotal, discount, nil, rate)

	assert.True(t, tax.Equal(decimal.NewFromInt(90)), "10%% de 900: %s", tax)
	assert.True(t, grand.Equal(decimal.NewFromInt(990)), "900 + 90: %s", grand)
}

func TestGrandTotal_ImpuestoExplicito(t *testing.T) {
	explicit := decimal.NewFromFloat(50)
	tax, grand := orders.GrandTotal(decimal.NewFromInt(500), decimal.Zero, &explicit, decimal.NewFromInt(19))

	assert.True(t, tax.Equal(explicit))
	assert.True(t, grand.Equal(decimal.NewFromInt(550)))
}

// TestGrandTotal_DescuentoMayorQueSubtotal: el subtotal después de descuento
// se recorta a cero, el total nunca es negativo.
func TestGrandTotal_DescuentoMayorQueSubtotal(t *testing.T) {
	_, grand := orders.GrandTotal(decimal.NewFromInt(100), decimal.NewFromInt(150), nil, decimal.NewFromInt(19))
	assert.True(t, grand.IsZero())
}

func TestValidatePartItems_OK(t *testing.T) {
	items := []entity.JobOrderPartItem{{
		PartID:       "part-1",
		Quantity:     4,
		PricePerUnit: decimal.NewFromFloat(12.50),
		TotalPrice:   decimal.NewFromFloat(50.00),
	}}
	require.NoError(t, orders.ValidatePartItems(items))
}

func TestValidatePartItems_TotalInconsistente(t *testing.T) {
	items := []entity.JobOrderPartItem{{
		PartID:       "part-1",
		Quantity:     4,
		PricePerUnit: decimal.NewFromFloat(12.50),
		TotalPrice:   decimal.NewFromFloat(51.00),
	}}
	require.ErrorIs(t, orders.ValidatePartItems(items), domain.ErrInvalidInput)
}

func TestValidateSaleItems_SinItems(t *testing.T) {
	require.ErrorIs(t, orders.ValidateSaleItems(nil), domain.ErrInvalidInput)
}

func TestValidateSaleItems_CantidadInvalida(t *testing.T) {
	items := []entity.SalesOrderItem{{PartID: "part-1", Quantity: 0}}
	require.ErrorIs(t, orders.ValidateSaleItems(items), domain.ErrInvalidInput)
}
