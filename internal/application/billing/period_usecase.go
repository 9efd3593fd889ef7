package billing

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/dto"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/ports"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/billing"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/entity"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/repository"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/pkg/logger"
)

const dateLayout = "2006-01-02"

// PeriodUseCase motor de periodos de cobro: preview, generación, consulta, descuento y exportación.
type PeriodUseCase struct {
	txRunner  ports.TxRunner
	sales     repository.SaleRepository
	billing   repository.BillingRepository
	exporters map[string]ports.ReportExporter
	log       *logger.Logger
	now       func() time.Time
}

// NewPeriodUseCase construye el caso de uso con los exportadores disponibles.
func NewPeriodUseCase(
	txRunner ports.TxRunner,
	sales repository.SaleRepository,
	billingRepo repository.BillingRepository,
	log *logger.Logger,
	exporters ...ports.ReportExporter,
) *PeriodUseCase {
	m := make(map[string]ports.ReportExporter, len(exporters))
	for _, e := range exporters {
		m[e.Format()] = e
	}
	return &PeriodUseCase{
		txRunner:  txRunner,
		sales:     sales,
		billing:   billingRepo,
		exporters: m,
		log:       log.Component("cobros"),
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (created_at / descontado_at).
func (uc *PeriodUseCase) WithClock(now func() time.Time) *PeriodUseCase {
	uc.now = now
	return uc
}

// ParseDate interpreta una fecha YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha %q: %w", s, domain.ErrInvalidInput)
	}
	return t, nil
}

// Preview agrega las ventas pendientes del rango sin escribir nada.
func (uc *PeriodUseCase) Preview(ctx context.Context, inicio, fin time.Time) (*dto.PreviewResponse, error) {
	rng, err := billing.NewRange(inicio, fin)
	if err != nil {
		return nil, err
	}
	lines, err := uc.sales.ListPending(ctx, rng.Inicio, rng.Until())
	if err != nil {
		return nil, err
	}
	plan := billing.BuildPlan(lines)

	resp := &dto.PreviewResponse{
		Periodo:        dto.PeriodRange{Inicio: rng.Inicio.Format(dateLayout), Fin: rng.Fin.Format(dateLayout)},
		Resumen:        make([]dto.ResumenUsuarioPeriodo, 0, len(plan.Shares)),
		Detalle:        toDetalle(plan.Lines),
		TotalPeriodo:   plan.Total,
		TotalAsociados: len(plan.Shares),
		TotalVentas:    len(plan.SaleIDs),
	}
	for _, s := range plan.Shares {
		resp.Resumen = append(resp.Resumen, dto.ResumenUsuarioPeriodo{
			UserID: s.UserID, Nombre: s.Nombre, Ventas: s.Ventas, Items: s.Items, Total: s.Total,
		})
	}
	return resp, nil
}

// Generate crea periodo, cobros e ítems y reclama las ventas, todo en una transacción.
// Devuelve ErrNoPendingSales si el rango no tiene ventas libres y ErrConflict si otro
// proceso reclamó alguna venta entre la lectura y la escritura.
func (uc *PeriodUseCase) Generate(ctx context.Context, inicio, fin time.Time) (*dto.GenerateResponse, error) {
	rng, err := billing.NewRange(inicio, fin)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()

	var period *entity.BillingPeriod
	var plan billing.Plan
	err = uc.txRunner.Run(ctx, func(r repository.Repos) error {
		lines, err := r.Sales.ListPending(ctx, rng.Inicio, rng.Until())
		if err != nil {
			return err
		}
		plan = billing.BuildPlan(lines)
		if plan.Empty() {
			return domain.ErrNoPendingSales
		}

		period = &entity.BillingPeriod{
			Inicio:    rng.Inicio,
			Fin:       rng.Fin,
			Total:     plan.Total,
			Estado:    entity.BillingStatusPendiente,
			CreatedAt: now,
		}
		if err := r.Billing.CreatePeriod(ctx, period); err != nil {
			return err
		}

		items := make([]entity.CollectionItem, 0, len(plan.SaleIDs))
		for _, share := range plan.Shares {
			cobro := &entity.Collection{
				PeriodoID: period.ID,
				UserID:    share.UserID,
				Total:     share.Total,
				Estado:    entity.BillingStatusPendiente,
				CreatedAt: now,
			}
			if err := r.Billing.CreateCollection(ctx, cobro); err != nil {
				return err
			}
			for i, ventaID := range share.SaleIDs {
				items = append(items, entity.CollectionItem{CobroID: cobro.ID, VentaID: ventaID, Monto: share.Montos[i]})
			}
		}
		n, err := r.Billing.AddItems(ctx, items)
		if err != nil {
			return err
		}
		if n != int64(len(items)) {
			return fmt.Errorf("cobro_items: insertados %d de %d: %w", n, len(items), domain.ErrConflict)
		}

		for _, chunk := range billing.Chunk(plan.SaleIDs, billing.ClaimChunkSize) {
			claimed, err := r.Sales.ClaimForPeriod(ctx, period.ID, chunk)
			if err != nil {
				return err
			}
			if claimed != int64(len(chunk)) {
				return fmt.Errorf("ventas reclamadas %d de %d: %w", claimed, len(chunk), domain.ErrConflict)
			}
		}

		total, err := r.Billing.RecomputePeriodTotal(ctx, period.ID)
		if err != nil {
			return err
		}
		itemsTotal, err := r.Billing.ItemsTotal(ctx, period.ID)
		if err != nil {
			return err
		}
		if !total.Equal(plan.Total) || !itemsTotal.Equal(plan.Total) {
			return fmt.Errorf("totales inconsistentes (periodo %s, cobros %s, items %s): %w",
				plan.Total, total, itemsTotal, domain.ErrConflict)
		}
		period.Total = total
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("periodo_id", period.ID).
		Str("total", period.Total.StringFixed(2)).
		Int("asociados", len(plan.Shares)).
		Int("ventas", len(plan.SaleIDs)).
		Msg("periodo de cobro generado")

	return &dto.GenerateResponse{
		PeriodoID: period.ID,
		Totales: dto.GenerateTotals{
			Total:     period.Total,
			Asociados: len(plan.Shares),
			Ventas:    len(plan.SaleIDs),
		},
	}, nil
}

// ListPeriods todos los periodos, el más reciente primero.
func (uc *PeriodUseCase) ListPeriods(ctx context.Context) ([]dto.PeriodoResponse, error) {
	list, err := uc.billing.ListPeriods(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PeriodoResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.PeriodoResponse{
			ID:           p.ID,
			Inicio:       p.Inicio.Format(dateLayout),
			Fin:          p.Fin.Format(dateLayout),
			Total:        p.Total,
			Estado:       p.Estado,
			Asociados:    p.Asociados,
			Cobros:       p.Cobros,
			CreatedAt:    p.CreatedAt,
			DescontadoAt: p.DescontadoAt,
		})
	}
	return out, nil
}

// PeriodSummary un cobro por usuario del periodo.
func (uc *PeriodUseCase) PeriodSummary(ctx context.Context, periodID int64) ([]dto.CobroResumen, error) {
	if _, err := uc.mustPeriod(ctx, periodID); err != nil {
		return nil, err
	}
	rows, err := uc.billing.PeriodSummary(ctx, periodID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CobroResumen, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CobroResumen{
			CobroID: r.CobroID, UserID: r.UserID, Nombre: r.Nombre,
			Ventas: r.Ventas, Items: r.Items, Total: r.Total, Estado: r.Estado,
		})
	}
	return out, nil
}

// PeriodDetail ventas incluidas en el periodo.
func (uc *PeriodUseCase) PeriodDetail(ctx context.Context, periodID int64) ([]dto.DetalleVenta, error) {
	if _, err := uc.mustPeriod(ctx, periodID); err != nil {
		return nil, err
	}
	lines, err := uc.billing.PeriodDetail(ctx, periodID)
	if err != nil {
		return nil, err
	}
	return toDetalle(lines), nil
}

// MarkSettled pasa periodo y cobros a descontado. Sobre un periodo ya descontado no hace nada.
func (uc *PeriodUseCase) MarkSettled(ctx context.Context, periodID int64) (*dto.MarkSettledResponse, error) {
	var period *entity.BillingPeriod
	var changed bool
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		p, err := r.Billing.GetPeriod(ctx, periodID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if !billing.CanSettle(p.Estado) {
			period = p
			return nil
		}
		// el UPDATE conserva su guard estado = pendiente ante otro MarkSettled concurrente
		changed, err = r.Billing.MarkSettled(ctx, periodID, uc.now().UTC())
		if err != nil {
			return err
		}
		period, err = r.Billing.GetPeriod(ctx, periodID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if changed {
		uc.log.Info().Int64("periodo_id", periodID).Msg("periodo marcado como descontado")
	}
	return &dto.MarkSettledResponse{
		OK:           true,
		Estado:       period.Estado,
		DescontadoAt: period.DescontadoAt,
		Already:      !changed,
	}, nil
}

// ExportResult archivo exportado.
type ExportResult struct {
	ContentType string
	Filename    string
	Body        []byte
}

// Export serializa el periodo en el formato pedido (csv por defecto).
func (uc *PeriodUseCase) Export(ctx context.Context, periodID int64, format string, opts ports.ExportOptions) (*ExportResult, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "csv"
	}
	exp, ok := uc.exporters[format]
	if !ok {
		return nil, fmt.Errorf("formato %q no soportado: %w", format, domain.ErrInvalidInput)
	}
	period, err := uc.mustPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}
	summary, err := uc.billing.PeriodSummary(ctx, periodID)
	if err != nil {
		return nil, err
	}
	lines, err := uc.billing.PeriodDetail(ctx, periodID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	report := ports.PeriodReport{Period: *period, Summary: summary, Lines: lines}
	if err := exp.Export(&buf, report, opts); err != nil {
		return nil, fmt.Errorf("exportar periodo %d: %w", periodID, err)
	}
	return &ExportResult{
		ContentType: exp.ContentType(),
		Filename:    fmt.Sprintf("periodo_%d_%s_%s.%s", period.ID, period.Inicio.Format(dateLayout), period.Fin.Format(dateLayout), format),
		Body:        buf.Bytes(),
	}, nil
}

func (uc *PeriodUseCase) mustPeriod(ctx context.Context, id int64) (*entity.BillingPeriod, error) {
	p, err := uc.billing.GetPeriod(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func toDetalle(lines []entity.SaleLine) []dto.DetalleVenta {
	out := make([]dto.DetalleVenta, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.DetalleVenta{
			VentaID:  l.VentaID,
			Fecha:    l.Fecha,
			Usuario:  l.Usuario,
			Producto: l.Producto,
			Cantidad: l.Cantidad,
			Precio:   l.PrecioUnitario,
			Total:    l.Total,
		})
	}
	return out
}
