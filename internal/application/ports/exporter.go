package ports

import (
	"io"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/entity"
)

// PeriodReport datos de un periodo listos para exportar.
type PeriodReport struct {
	Period  entity.BillingPeriod
	Summary []entity.CollectionSummary
	Lines   []entity.SaleLine
}

// ExportOptions opciones de exportación. Encoding sólo aplica a formatos de texto.
type ExportOptions struct {
	Encoding string // "utf-8" (por defecto) o "windows-1252"
}

// ReportExporter serializa un PeriodReport en un formato concreto (csv, xlsx, pdf).
type ReportExporter interface {
	Format() string
	ContentType() string
	Export(w io.Writer, report PeriodReport, opts ExportOptions) error
}
