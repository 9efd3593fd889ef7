package export_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/ports"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/entity"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/infrastructure/export"
)

func report() ports.PeriodReport {
	d := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	fecha := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
	return ports.PeriodReport{
		Period: entity.BillingPeriod{
			ID:        7,
			Inicio:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			Fin:       time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
			Total:     d("2251.50"),
			Estado:    entity.BillingStatusPendiente,
			CreatedAt: fecha,
		},
		Summary: []entity.CollectionSummary{
			{CobroID: 1, UserID: 3, Nombre: "josé", Ventas: 2, Items: 3, Total: d("2251.50"), Estado: entity.BillingStatusPendiente},
		},
		Lines: []entity.SaleLine{
			{VentaID: 10, Fecha: fecha, Usuario: "josé", Producto: "Café molido", Cantidad: 1, PrecioUnitario: d("750.5"), Total: d("750.5")},
			{VentaID: 11, Fecha: fecha, Usuario: "josé", Producto: "Café molido", Cantidad: 2, PrecioUnitario: d("750.5"), Total: d("1501")},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CSV
// ──────────────────────────────────────────────────────────────────────────────

func TestCSV_UTF8(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.NewCSVExporter().Export(&buf, report(), ports.ExportOptions{}))

	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 4, "header + 2 ventas + total")
	assert.Equal(t, "periodo_id", recs[0][0])
	assert.Equal(t, []string{"7", "josé", "10", "2025-03-04", "Café molido", "1", "750.50", "750.50"}, recs[1])
	assert.Equal(t, "TOTAL", recs[3][1])
	assert.Equal(t, "2251.50", recs[3][7])
}

func TestCSV_Windows1252(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.NewCSVExporter().Export(&buf, report(), ports.ExportOptions{Encoding: "windows-1252"}))

	assert.NotContains(t, buf.String(), "josé", "no debe quedar UTF-8")
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(buf.Bytes())
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(decoded), "Café molido"))
}

func TestCSV_EncodingDesconocido(t *testing.T) {
	var buf bytes.Buffer
	err := export.NewCSVExporter().Export(&buf, report(), ports.ExportOptions{Encoding: "ebcdic"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// XLSX
// ──────────────────────────────────────────────────────────────────────────────

func TestXLSX_DosHojas(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.NewXLSXExporter().Export(&buf, report(), ports.ExportOptions{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{export.SheetResumen, export.SheetDetalle}, f.GetSheetList())

	rows, err := f.GetRows(export.SheetDetalle)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Café molido", rows[2][4])
	assert.Equal(t, "1501", rows[2][7])

	v, err := f.GetCellValue(export.SheetResumen, "B1")
	require.NoError(t, err)
	assert.Equal(t, "7", v)
}

// ──────────────────────────────────────────────────────────────────────────────
// PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestPDF_Genera(t *testing.T) {
	var buf bytes.Buffer
	exp := export.NewPDFExporter("Pulpería")
	require.NoError(t, exp.Export(&buf, report(), ports.ExportOptions{}))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Equal(t, "application/pdf", exp.ContentType())
}
