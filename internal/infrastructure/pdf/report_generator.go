// Generación del reporte PDF tabulado del inventario de estibas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte  │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Estiba | Producto | Cant. | Nivel | Estado | Fecha  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Estibas listadas / Cantidad total                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: Leyenda del libro                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"time"

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

	"github.com/jhoicas/Pallets-api/internal/application/dto"
	"github.com/jhoicas/Pallets-api/internal/application/reports"
)

// MarotoReportGenerator implementa reports.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

var _ reports.ReportGenerator = (*MarotoReportGenerator)(nil)

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// Generate genera el reporte en PDF y devuelve sus bytes. Maroto pagina solo
// cuando la tabla no cabe en una página.
func (g *MarotoReportGenerator) Generate(units []dto.UnitResponse, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de estibas", true).
		WithAuthor("Pallets API", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(reportHeaderRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if len(units) == 0 {
		m.AddRows(reportEmptyRow())
	} else {
		m.AddRows(reportTableHeaderRow())
		for _, r := range reportUnitRows(units) {
			m.AddRows(r)
		}
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(reportTotalsRow(units))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(reportFooterRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// reportHeaderRow: título (izq) y fecha de generación (der).
func reportHeaderRow(generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("REPORTE DE ESTIBAS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Inventario según el libro de movimientos", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

// reportTableHeaderRow: cabecera de la tabla de estibas.
func reportTableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Estiba", 3, align.Left),
		h("Producto", 2, align.Left),
		h("Cant.", 1, align.Right),
		h("Nivel", 2, align.Center),
		h("Estado", 2, align.Center),
		h("Fecha límite", 2, align.Center),
	)
}

// reportUnitRows: una fila por estiba.
func reportUnitRows(units []dto.UnitResponse) []core.Row {
	result := make([]core.Row, 0, len(units))
	for _, u := range units {
		result = append(result, row.New(6).Add(
			col.New(3).Add(text.New(
				u.UnitID,
				props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				u.Label,
				props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				strconv.FormatInt(u.Quantity, 10),
				props.Text{Size: 7, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				u.Level,
				props.Text{Size: 7, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				u.Status,
				props.Text{Size: 7, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				nonEmpty(u.Deadline, "—"),
				props.Text{Size: 7, Align: align.Center, Top: 1},
			)),
		))
	}
	return result
}

// reportEmptyRow: aviso cuando el filtro no deja estibas.
func reportEmptyRow() core.Row {
	return row.New(12).Add(col.New(12).Add(
		text.New("Sin estibas que cumplan el filtro.", props.Text{
			Size: 9, Align: align.Center, Color: colorGray, Top: 4,
		}),
	))
}

// reportTotalsRow: bloque de totales alineado a la derecha.
func reportTotalsRow(units []dto.UnitResponse) core.Row {
	var totalQuantity int64
	for _, u := range units {
		totalQuantity += u.Quantity
	}

	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(14).Add(
		col.New(5), // espacio izquierdo
		col.New(4).Add(
			label("Estibas listadas:"),
			grandLabel("CANTIDAD TOTAL:"),
		),
		col.New(3).Add(
			value(strconv.Itoa(len(units))),
			grandValue(strconv.FormatInt(totalQuantity, 10)),
		),
	)
}

// reportFooterRow: leyenda del libro.
func reportFooterRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Las cantidades provienen del libro de movimientos y son verificables "+
				"reproduciendo sus entradas. Conserve este reporte como soporte de inventario.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}
