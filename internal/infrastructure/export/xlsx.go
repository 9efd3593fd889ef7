package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/ports"
)

var _ ports.ReportExporter = (*XLSXExporter)(nil)

// Hojas del libro exportado.
const (
	SheetResumen = "Resumen"
	SheetDetalle = "Detalle"
)

// XLSXExporter libro con dos hojas: resumen por usuario y detalle de ventas.
type XLSXExporter struct{}

// NewXLSXExporter construye el exportador.
func NewXLSXExporter() *XLSXExporter { return &XLSXExporter{} }

func (*XLSXExporter) Format() string { return "xlsx" }
func (*XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Export escribe el libro. Los montos van como números para que la hoja pueda sumarlos.
func (e *XLSXExporter) Export(w io.Writer, r ports.PeriodReport, _ ports.ExportOptions) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetResumen); err != nil {
		return fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if _, err := f.NewSheet(SheetDetalle); err != nil {
		return fmt.Errorf("xlsx: crear hoja: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx: estilo: %w", err)
	}

	resumen := [][]any{
		{"Periodo", r.Period.ID},
		{"Inicio", r.Period.Inicio.Format(dateLayout)},
		{"Fin", r.Period.Fin.Format(dateLayout)},
		{"Estado", r.Period.Estado},
		{},
		{"usuario", "ventas", "items", "total", "estado"},
	}
	for _, s := range r.Summary {
		resumen = append(resumen, []any{s.Nombre, s.Ventas, s.Items, s.Total.InexactFloat64(), s.Estado})
	}
	resumen = append(resumen, []any{"TOTAL", "", "", r.Period.Total.InexactFloat64()})
	if err := writeRows(f, SheetResumen, resumen); err != nil {
		return err
	}
	_ = f.SetCellStyle(SheetResumen, "A6", "E6", bold)

	detalle := [][]any{toAny(detailHeader)}
	for _, l := range r.Lines {
		detalle = append(detalle, []any{
			r.Period.ID, l.Usuario, l.VentaID, l.Fecha.Format(dateLayout), l.Producto,
			l.Cantidad, l.PrecioUnitario.InexactFloat64(), l.Total.InexactFloat64(),
		})
	}
	if err := writeRows(f, SheetDetalle, detalle); err != nil {
		return err
	}
	_ = f.SetCellStyle(SheetDetalle, "A1", "H1", bold)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: escribir: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("xlsx: celda: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("xlsx: fila %d de %s: %w", i+1, sheet, err)
		}
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
