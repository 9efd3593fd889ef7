package export

// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Periodo N° + rango         │  Estado + generado     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Usuario | Ventas | Ítems | Total                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DETALLE: Fecha | Usuario | Producto | Cant | Precio | Total │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL DEL PERIODO                                           │
//	└─────────────────────────────────────────────────────────────┘

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/johnfercher/maroto/v2"
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

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/ports"
)

var _ ports.ReportExporter = (*PDFExporter)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// PDFExporter reporte imprimible del periodo con Maroto v2.
type PDFExporter struct {
	title string
}

// NewPDFExporter construye el exportador; title va en el encabezado (nombre del negocio).
func NewPDFExporter(title string) *PDFExporter { return &PDFExporter{title: title} }

func (*PDFExporter) Format() string { return "pdf" }
func (*PDFExporter) ContentType() string { return "application/pdf" }

// Export genera el PDF y lo escribe en w.
func (e *PDFExporter) Export(w io.Writer, r ports.PeriodReport, _ ports.ExportOptions) error {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Periodo de cobro %d", r.Period.ID), true).
		WithAuthor(e.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(e.headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionTitle("RESUMEN POR USUARIO"))
	m.AddRows(tableHeader([]string{"Usuario", "Ventas", "Ítems", "Total", "Estado"}, []int{4, 2, 2, 2, 2}))
	for _, s := range r.Summary {
		m.AddRows(tableRow([]string{
			s.Nombre, strconv.Itoa(s.Ventas), strconv.Itoa(s.Items), colones(s.Total), s.Estado,
		}, []int{4, 2, 2, 2, 2}))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("DETALLE DE VENTAS"))
	widths := []int{2, 2, 4, 1, 1, 2}
	m.AddRows(tableHeader([]string{"Fecha", "Usuario", "Producto", "Cant.", "Precio", "Total"}, widths))
	for _, l := range r.Lines {
		m.AddRows(tableRow([]string{
			l.Fecha.Format("02/01/2006"), l.Usuario, l.Producto, strconv.Itoa(l.Cantidad),
			colones(l.PrecioUnitario), colones(l.Total),
		}, widths))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(r.Period.Total))

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("pdf: generar documento: %w", err)
	}
	if _, err := w.Write(doc.GetBytes()); err != nil {
		return fmt.Errorf("pdf: escribir: %w", err)
	}
	return nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (e *PDFExporter) headerRow(r ports.PeriodReport) core.Row {
	rango := r.Period.Inicio.Format("02/01/2006") + " al " + r.Period.Fin.Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(e.title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Periodo de cobro N° "+strconv.FormatInt(r.Period.ID, 10), props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(rango, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1}),
			text.New("Estado: "+r.Period.Estado, props.Text{Size: 8, Align: align.Right, Top: 8, Color: colorGray}),
			text.New("Generado: "+r.Period.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func tableHeader(labels []string, widths []int) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		cols = append(cols, col.New(widths[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func tableRow(cells []string, widths []int) core.Row {
	cols := make([]core.Col, 0, len(cells))
	for i, c := range cells {
		cols = append(cols, col.New(widths[i]).Add(text.New(c, props.Text{Size: 8, Top: 1, Left: 1, Right: 1})))
	}
	return row.New(5).Add(cols...)
}

func totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(8),
		col.New(2).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(2).Add(text.New(colones(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// colones formatea con separador de miles y dos decimales. Ej: 1234567.5 -> "1.234.567,50".
// Helvetica no trae el glifo ₡, por eso no se antepone símbolo.
func colones(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	entero, dec, _ := strings.Cut(s, ".")
	out := groupThousands(entero) + "," + dec
	if neg {
		return "-" + out
	}
	return out
}

// groupThousands inserta puntos de miles en un string numérico sin decimales.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
