// Package pdf genera el documento imprimible de una orden de compra: cabecera
// con contratista y proveedor, tabla de líneas y total calculado.
package pdf

import (
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

	"github.com/buildlink/marketplace-api/internal/application/dto"
	"github.com/buildlink/marketplace-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 31, Green: 78, Blue: 47}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// PODocumentGenerator genera el PDF de una orden de compra usando Maroto v2.
type PODocumentGenerator struct{}

// NewPODocumentGenerator construye el generador.
func NewPODocumentGenerator() *PODocumentGenerator { return &PODocumentGenerator{} }

// Generate genera el PDF de la orden y devuelve sus bytes.
func (g *PODocumentGenerator) Generate(order *dto.OrderResponse, contractor *entity.Contractor) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de Compra", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(order, contractor))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range itemRows(order.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + identificador y fecha de la orden.
func headerRow(order *dto.OrderResponse) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("ORDEN DE COMPRA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+order.ID, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Estado: "+order.Status, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
			text.New("Fecha: "+order.OrderDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// partiesRow: contratista, proyecto y proveedor.
func partiesRow(order *dto.OrderResponse, contractor *entity.Contractor) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New("CONTRATISTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(contractor.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Proyecto: %s   |   Email: %s", order.ProjectName, contractor.Email),
				props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("PROVEEDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(order.SupplierName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(deliveryLine(order), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func deliveryLine(order *dto.OrderResponse) string {
	if order.DeliveryDate == nil {
		return "Entrega: por confirmar"
	}
	return "Entrega: " + order.DeliveryDate.Format("02/01/2006")
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Material", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// itemRows: una fila por línea de la orden.
func itemRows(items []dto.OrderItemResponse) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				it.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				it.MaterialName,
				props.Text{Size: 8, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				it.UnitPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1},
			)),
			col.New(3).Add(text.New(
				it.Subtotal.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalRow: total de la orden (el valor persistido, calculado en el servidor).
func totalRow(order *dto.OrderResponse) core.Row {
	return row.New(10).Add(
		col.New(9).Add(text.New("TOTAL", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2,
		})),
		col.New(3).Add(text.New(order.TotalAmount.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2, Right: 1,
			Color: colorPrimary,
		})),
	)
}
