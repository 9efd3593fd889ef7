// Package export serializa periodos de cobro a CSV, XLSX y PDF.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/ports"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain"
)

const dateLayout = "2006-01-02"

var _ ports.ReportExporter = (*CSVExporter)(nil)

// detailHeader columnas del detalle, compartidas por CSV y XLSX.
var detailHeader = []string{"periodo_id", "usuario", "venta_id", "fecha", "producto", "cantidad", "precio_unitario", "total"}

// CSVExporter detalle del periodo en CSV, una venta por fila más la fila TOTAL.
type CSVExporter struct{}

// NewCSVExporter construye el exportador.
func NewCSVExporter() *CSVExporter { return &CSVExporter{} }

func (*CSVExporter) Format() string { return "csv" }
func (*CSVExporter) ContentType() string { return "text/csv" }

// Export escribe el CSV. Con Encoding "windows-1252" (Excel en Windows) los caracteres
// que no existen en esa página de códigos se reemplazan.
func (e *CSVExporter) Export(w io.Writer, r ports.PeriodReport, opts ports.ExportOptions) error {
	out, flush, err := encodedWriter(w, opts.Encoding)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(out)
	if err := cw.Write(detailHeader); err != nil {
		return fmt.Errorf("csv: header: %w", err)
	}
	for _, rec := range detailRecords(r) {
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("csv: fila: %w", err)
		}
	}
	if err := cw.Write([]string{strconv.FormatInt(r.Period.ID, 10), "TOTAL", "", "", "", "", "", money(r.Period.Total)}); err != nil {
		return fmt.Errorf("csv: total: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	return flush()
}

// encodedWriter devuelve el writer a usar y la función que vacía el transformador.
func encodedWriter(w io.Writer, enc string) (io.Writer, func() error, error) {
	switch strings.ToLower(strings.TrimSpace(enc)) {
	case "", "utf-8", "utf8":
		return w, func() error { return nil }, nil
	case "windows-1252", "cp1252":
		tw := transform.NewWriter(w, encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()))
		return tw, tw.Close, nil
	}
	return nil, nil, fmt.Errorf("encoding %q no soportado: %w", enc, domain.ErrInvalidInput)
}

func detailRecords(r ports.PeriodReport) [][]string {
	out := make([][]string, 0, len(r.Lines))
	pid := strconv.FormatInt(r.Period.ID, 10)
	for _, l := range r.Lines {
		out = append(out, []string{
			pid,
			l.Usuario,
			strconv.FormatInt(l.VentaID, 10),
			l.Fecha.Format(dateLayout),
			l.Producto,
			strconv.Itoa(l.Cantidad),
			money(l.PrecioUnitario),
			money(l.Total),
		})
	}
	return out
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
