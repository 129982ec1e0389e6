// Package pdf genera la lista de picking que baja el operario de bodega
// para alistar una nota de despacho.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: N° Despacho  │  Cliente / Sucursal / Bodega         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Repuesto | Lote | Pedido | Asig. | Alist.   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: clases de repuesto / cantidad pedida               │
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

	"github.com/hanbit-parts/warehouse-api/internal/application/shipping"
	"github.com/hanbit-parts/warehouse-api/internal/domain/entity"
	"github.com/hanbit-parts/warehouse-api/internal/domain/timewindow"
)

var _ shipping.PickingListGenerator = (*PickingListGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// PickingListGenerator implementa shipping.PickingListGenerator usando Maroto v2.
type PickingListGenerator struct{}

// NewPickingListGenerator construye el generador.
func NewPickingListGenerator() *PickingListGenerator { return &PickingListGenerator{} }

// GeneratePickingList genera el PDF de la lista de picking y devuelve sus bytes.
func (g *PickingListGenerator) GeneratePickingList(_ context.Context, note *entity.ShippingNote) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Lista de Picking "+note.ShippingNo, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(note))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(note.Lines) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(note))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: N° de despacho (izq) y cliente/sucursal/bodega (der).
func headerRow(note *entity.ShippingNote) core.Row {
	fecha := note.ExpectedShipDate.In(timewindow.KST).Format("2006-01-02")

	return row.New(20).Add(
		col.New(6).Add(
			text.New("LISTA DE PICKING", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(note.ShippingNo, props.Text{
				Style: fontstyle.Bold, Size: 13, Top: 6,
			}),
			text.New("Despacho esperado: "+fecha, props.Text{
				Size: 8, Top: 15, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New(note.CustomerName, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New("Sucursal: "+nonEmpty(note.BranchName, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
			text.New("Bodega: "+note.WarehouseCode, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
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
		h("Código", 2, align.Left),
		h("Repuesto", 4, align.Left),
		h("Lote", 2, align.Left),
		h("Pedido", 1, align.Right),
		h("Asig.", 1, align.Right),
		h("Alist.", 1, align.Right),
		h("Estado", 1, align.Center),
	)
}

// tableLineRows: una fila por línea de la nota.
func tableLineRows(lines []entity.ShippingNoteLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for i := range lines {
		l := &lines[i]
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				l.PartCode,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				l.PartName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				nonEmpty(l.Lot, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				l.OrderedQty.StringFixed(0),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				l.AllocatedQty.StringFixed(0),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				l.PickedQty.StringFixed(0),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				string(l.Status),
				props.Text{Size: 6.5, Align: align.Center, Top: 1.5},
			)),
		))
	}
	return result
}

// totalsRow: clases de repuesto y cantidad pedida total.
func totalsRow(note *entity.ShippingNote) core.Row {
	total := decimal.Zero
	for i := range note.Lines {
		total = total.Add(note.Lines[i].OrderedQty)
	}
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(
			text.New("Clases de repuesto:", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 1,
			}),
			text.New("Cantidad pedida:", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 6,
			}),
		),
		col.New(3).Add(
			text.New(fmt.Sprintf("%d", len(note.Lines)), props.Text{
				Size: 9, Align: align.Right, Right: 1, Top: 1,
			}),
			text.New(total.StringFixed(0), props.Text{
				Size: 9, Align: align.Right, Right: 1, Top: 6,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
