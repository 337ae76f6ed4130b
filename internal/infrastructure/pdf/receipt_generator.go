// Package pdf genera los comprobantes imprimibles del taller: la orden de
// trabajo (para el cliente y el mecánico) y el recibo de venta de mostrador.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del taller  │  N° Orden + Fecha             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + moto (si aplica)                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Total                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuento / Impuesto / TOTAL / Pagado  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/TallerMotos-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 140, Green: 30, Blue: 30}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ReceiptGenerator implementa orders.ReceiptPDFGenerator usando Maroto v2.
type ReceiptGenerator struct {
	shopName string
	symbol   string
	printer  *message.Printer
}

// NewReceiptGenerator construye el generador con el nombre del taller y el
// símbolo de moneda a imprimir.
func NewReceiptGenerator(shopName, currencySymbol string) *ReceiptGenerator {
	return &ReceiptGenerator{
		shopName: shopName,
		symbol:   currencySymbol,
		printer:  message.NewPrinter(language.LatinAmericanSpanish),
	}
}

// money formatea un monto con separadores de miles según el locale.
func (g *ReceiptGenerator) money(d decimal.Decimal) string {
	f, _ := d.Float64()
	return g.printer.Sprintf("%s%.2f", g.symbol, f)
}

type receiptLine struct {
	quantity    string
	description string
	unitPrice   string
	total       string
}

type receiptTotals struct {
	subtotal   decimal.Decimal
	discount   decimal.Decimal
	tax        decimal.Decimal
	grandTotal decimal.Decimal
	amountPaid decimal.Decimal
	balanceDue decimal.Decimal
}

// GenerateJobOrderPDF genera el comprobante de una orden de trabajo.
func (g *ReceiptGenerator) GenerateJobOrderPDF(_ context.Context, order *entity.JobOrder) ([]byte, error) {
	lines := make([]receiptLine, 0, len(order.ServicesPerformed)+len(order.PartsUsed))
	for _, s := range order.ServicesPerformed {
		lines = append(lines, receiptLine{
			quantity:    "1",
			description: "Servicio: " + s.Description,
			unitPrice:   g.money(s.LaborCost),
			total:       g.money(s.LaborCost),
		})
	}
	for _, p := range order.PartsUsed {
		lines = append(lines, receiptLine{
			quantity:    fmt.Sprintf("%d", p.Quantity),
			description: p.PartName,
			unitPrice:   g.money(p.PricePerUnit),
			total:       g.money(p.TotalPrice),
		})
	}
	subtitle := "ORDEN DE TRABAJO"
	client := order.CustomerName
	if order.MotorcycleID != "" {
		client += "  |  Moto: " + order.MotorcycleID
	}
	return g.generate(subtitle, order.OrderNumber, order.CreatedAt.Format("02/01/2006"), client, lines, receiptTotals{
		subtotal:   order.LaborTotal().Add(order.PartsTotal()),
		discount:   order.DiscountAmount,
		tax:        order.TaxAmount,
		grandTotal: order.GrandTotal,
		amountPaid: order.AmountPaid,
		balanceDue: order.BalanceDue(),
	})
}

// GenerateSalesOrderPDF genera el recibo de una venta de mostrador.
func (g *ReceiptGenerator) GenerateSalesOrderPDF(_ context.Context, order *entity.SalesOrder) ([]byte, error) {
	lines := make([]receiptLine, 0, len(order.Items))
	for _, it := range order.Items {
		lines = append(lines, receiptLine{
			quantity:    fmt.Sprintf("%d", it.Quantity),
			description: it.PartName,
			unitPrice:   g.money(it.PricePerUnit),
			total:       g.money(it.TotalPrice),
		})
	}
	return g.generate("RECIBO DE VENTA", order.OrderNumber, order.CreatedAt.Format("02/01/2006"), order.CustomerName, lines, receiptTotals{
		subtotal:   order.ItemsTotal(),
		discount:   order.DiscountAmount,
		tax:        order.TaxAmount,
		grandTotal: order.GrandTotal,
		amountPaid: order.AmountPaid,
		balanceDue: order.BalanceDue(),
	})
}

func (g *ReceiptGenerator) generate(subtitle, number, date, client string, lines []receiptLine, totals receiptTotals) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(subtitle+" "+number, true).
		WithAuthor(g.shopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(subtitle, number, date))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(client))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, l := range lines {
		m.AddRows(detailRow(l))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(totals))

	m.AddRows(line.NewRow(3))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("Gracias por confiar en "+g.shopName+". Conserve este comprobante.", props.Text{
			Size: 7, Color: colorGray, Align: align.Center, Top: 1,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *ReceiptGenerator) headerRow(subtitle, number, date string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.shopName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Taller de motocicletas", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(subtitle, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+date, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func clientRow(client string) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(client, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 6, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

func detailRow(l receiptLine) core.Row {
	return row.New(7).Add(
		col.New(1).Add(text.New(l.quantity, props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(6).Add(text.New(l.description, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(2).Add(text.New(l.unitPrice, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(3).Add(text.New(l.total, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

func (g *ReceiptGenerator) totalsRow(t receiptTotals) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := text.New("TOTAL:", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2,
	})
	grandValue := text.New(g.money(t.grandTotal), props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1,
	})

	return row.New(34).Add(
		col.New(4),
		col.New(4).Add(
			label("Subtotal:"),
			label("Descuento:"),
			label("Impuesto:"),
			grandLabel,
			label("Pagado:"),
			label("Saldo:"),
		),
		col.New(4).Add(
			value(g.money(t.subtotal)),
			value(g.money(t.discount)),
			value(g.money(t.tax)),
			grandValue,
			value(g.money(t.amountPaid)),
			value(g.money(t.balanceDue)),
		),
	)
}
