// Package pdf genera la orden de compra imprimible de una solicitud APPROVED.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Orden de compra + N° solicitud + Fecha             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PRODUCTO: SKU + nombre + costo unitario                    │
//	│  TABLA: Cantidad | Costo unitario | Costo estimado          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CADENA DE APROBACIÓN: nivel, decisor, resultado, fecha     │
//	└─────────────────────────────────────────────────────────────┘
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// PurchaseOrderGenerator genera la representación PDF de una orden de compra
// aprobada usando Maroto v2.
type PurchaseOrderGenerator struct{}

// NewPurchaseOrderGenerator construye el generador.
func NewPurchaseOrderGenerator() *PurchaseOrderGenerator { return &PurchaseOrderGenerator{} }

// Generate genera el PDF y devuelve sus bytes.
func (g *PurchaseOrderGenerator) Generate(
	request *entity.PurchaseRequest,
	product *entity.Product,
	decisions []*entity.ApprovalDecision,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de Compra", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(request))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(productRow(product))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(quantityRow(request, product))
	m.AddRows(line.NewRow(3))
	m.AddRows(approvalHeaderRow())
	for _, d := range decisions {
		m.AddRows(decisionRow(d))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y N° de solicitud + fecha (der).
func headerRow(request *entity.PurchaseRequest) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("ORDEN DE COMPRA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("Solicitud: "+request.ID, props.Text{Size: 8, Align: align.Right}),
			text.New("Fecha: "+request.UpdatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Top: 5, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func productRow(product *entity.Product) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("SKU: "+product.SKU, props.Text{Style: fontstyle.Bold, Size: 10}),
			text.New(product.Name, props.Text{Size: 9, Top: 6, Color: colorGray}),
		),
	)
}

func quantityRow(request *entity.PurchaseRequest, product *entity.Product) core.Row {
	estimated := product.UnitCost.Mul(decimal.NewFromInt(request.Quantity))
	return row.New(10).Add(
		col.New(4).Add(text.New(fmt.Sprintf("Cantidad: %d", request.Quantity), props.Text{Size: 10})),
		col.New(4).Add(text.New("Costo unitario: "+product.UnitCost.StringFixed(2), props.Text{Size: 10})),
		col.New(4).Add(text.New("Costo estimado: "+estimated.StringFixed(2), props.Text{
			Size: 10, Style: fontstyle.Bold, Align: align.Right,
		})),
	)
}

func approvalHeaderRow() core.Row {
	return row.New(8).Add(
		col.New(2).Add(text.New("Nivel", props.Text{Style: fontstyle.Bold, Size: 9})),
		col.New(4).Add(text.New("Decisor", props.Text{Style: fontstyle.Bold, Size: 9})),
		col.New(3).Add(text.New("Resultado", props.Text{Style: fontstyle.Bold, Size: 9})),
		col.New(3).Add(text.New("Fecha", props.Text{Style: fontstyle.Bold, Size: 9})),
	)
}

func decisionRow(d *entity.ApprovalDecision) core.Row {
	decided := "-"
	if d.DecidedAt != nil {
		decided = d.DecidedAt.Format("02/01/2006 15:04")
	}
	return row.New(7).Add(
		col.New(2).Add(text.New(fmt.Sprintf("%d", d.Level), props.Text{Size: 9})),
		col.New(4).Add(text.New(d.DeciderID, props.Text{Size: 8, Color: colorGray})),
		col.New(3).Add(text.New(d.Outcome, props.Text{Size: 9})),
		col.New(3).Add(text.New(decided, props.Text{Size: 8, Color: colorGray})),
	)
}
