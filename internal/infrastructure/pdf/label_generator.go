// Package pdf implementa la generación de la etiqueta imprimible de una
// estiba, lista para etiquetadora térmica de 100×150 mm.
//
// Layout de la etiqueta:
//
//	┌───────────────────────────────┐
//	│  HEADER: Empresa + ID estiba  │
//	│  ───────────────────────────  │
//	│                               │
//	│        CÓDIGO QR              │
//	│   (carga JSON de la estiba)   │
//	│                               │
//	│  ───────────────────────────  │
//	│  Producto | Cantidad          │
//	│  Nivel | Estado | Fecha lím.  │
//	│  ───────────────────────────  │
//	│  Leyenda de escaneo           │
//	└───────────────────────────────┘
package pdf

import (
	"encoding/json"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Pallets-api/internal/application/reports"
	"github.com/jhoicas/Pallets-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoLabelGenerator implementa reports.LabelGenerator usando Maroto v2.
type MarotoLabelGenerator struct{}

var _ reports.LabelGenerator = (*MarotoLabelGenerator)(nil)

// NewMarotoLabelGenerator construye el generador.
func NewMarotoLabelGenerator() *MarotoLabelGenerator { return &MarotoLabelGenerator{} }

// Generate genera la etiqueta en PDF y devuelve sus bytes. El QR lleva la
// misma carga JSON que el token de la estiba, así cualquier lector la procesa
// igual que el PNG suelto.
func (g *MarotoLabelGenerator) Generate(u *entity.Unit, payload entity.TokenPayload) ([]byte, error) {
	qrData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("pdf: serializar carga: %w", err)
	}

	cfg := config.NewBuilder().
		WithDimensions(100, 150).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Etiqueta de estiba "+u.UnitID, true).
		WithAuthor(nonEmpty(u.Company, "Pallets"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(u))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(qrRow(string(qrData)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(detailRows(u)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiqueta: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa (izq) e identificador de la estiba (der).
func headerRow(u *entity.Unit) core.Row {
	return row.New(14).Add(
		col.New(6).Add(
			text.New(nonEmpty(u.Company, "—"), props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("ETIQUETA DE ESTIBA", props.Text{
				Size: 7, Top: 9, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New(u.UnitID, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 4,
			}),
		),
	)
}

// qrRow: código QR centrado con la carga de la estiba.
func qrRow(qrData string) core.Row {
	return row.New(62).Add(
		col.New(12).Add(code.NewQr(qrData, props.Rect{
			Percent: 90,
			Center:  true,
		})),
	)
}

// detailRows: producto, cantidad y demás datos de la estiba.
func detailRows(u *entity.Unit) []core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Size: 7, Color: colorGray, Top: 1})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5})
	}

	fecha := "—"
	if u.Deadline != nil {
		fecha = u.Deadline.Format("02/01/2006")
	}

	return []core.Row{
		row.New(13).Add(
			col.New(8).Add(label("Producto"), value(u.Label)),
			col.New(4).Add(label("Cantidad"), value(strconv.FormatInt(u.Quantity, 10))),
		),
		row.New(13).Add(
			col.New(4).Add(label("Nivel"), value(u.Level)),
			col.New(4).Add(label("Estado"), value(u.Status)),
			col.New(4).Add(label("Fecha límite"), value(fecha)),
		),
	}
}

// footerRow: leyenda de uso.
func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Escanee el código QR para registrar entradas y salidas de esta estiba.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
