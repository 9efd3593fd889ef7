package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/dto"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/ports"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/repository"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/pkg/logger"
)

// CollectionUseCase cobro ad hoc por usuario. Sólo considera ventas que ningún
// periodo reclamó, así nunca toca las filas que maneja PeriodUseCase.
type CollectionUseCase struct {
	txRunner ports.TxRunner
	sales    repository.SaleRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewCollectionUseCase construye el caso de uso.
func NewCollectionUseCase(txRunner ports.TxRunner, sales repository.SaleRepository, log *logger.Logger) *CollectionUseCase {
	return &CollectionUseCase{txRunner: txRunner, sales: sales, log: log.Component("cobros"), now: time.Now}
}

// WithClock reemplaza el reloj (fecha_liquidacion).
func (uc *CollectionUseCase) WithClock(now func() time.Time) *CollectionUseCase {
	uc.now = now
	return uc
}

// PendingAccounts total pendiente por usuario (> 0).
func (uc *CollectionUseCase) PendingAccounts(ctx context.Context) ([]dto.CuentaPendiente, error) {
	rows, err := uc.sales.PendingAccounts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CuentaPendiente, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CuentaPendiente{Usuario: r.Usuario, TotalPendiente: r.TotalPendiente})
	}
	return out, nil
}

// FortnightSummary número de ventas y total a rebajar por usuario, mayor total primero.
func (uc *CollectionUseCase) FortnightSummary(ctx context.Context) ([]dto.ResumenUsuario, error) {
	rows, err := uc.sales.PendingAccounts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ResumenUsuario, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ResumenUsuario{Usuario: r.Usuario, Ventas: r.Ventas, Total: r.TotalPendiente})
	}
	return out, nil
}

// UserDetail ventas pendientes de un usuario, la más reciente primero.
func (uc *CollectionUseCase) UserDetail(ctx context.Context, usuario string) ([]dto.LineaDetalle, error) {
	lines, err := uc.sales.ListUnclaimedByUser(ctx, strings.TrimSpace(usuario))
	if err != nil {
		return nil, err
	}
	out := make([]dto.LineaDetalle, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.LineaDetalle{
			VentaID:  l.VentaID,
			Fecha:    l.Fecha,
			Producto: l.Producto,
			Cantidad: l.Cantidad,
			Precio:   l.PrecioUnitario,
			Total:    l.Total,
		})
	}
	return out, nil
}

// LiquidateUser mueve las ventas libres del usuario a ventas_hist y las borra de ventas.
// ErrNotFound si el usuario no existe; ErrNoDebt si no tiene deuda (> 0).
func (uc *CollectionUseCase) LiquidateUser(ctx context.Context, usuario string) (*dto.MessageResponse, error) {
	usuario = strings.TrimSpace(usuario)
	moved, err := uc.settle(ctx, usuario, nil)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("usuario", usuario).Str("total", moved.StringFixed(2)).Msg("cuenta liquidada")
	return &dto.MessageResponse{
		Mensaje: fmt.Sprintf("Cuenta de %s liquidada por ₡%s. Movida a historial.", usuario, moved.StringFixed(2)),
	}, nil
}

// PayAccount registra un pago en caja: salda la cuenta sólo si monto cubre toda la deuda libre.
// Mismos errores que LiquidateUser más ErrPaymentTooLow.
func (uc *CollectionUseCase) PayAccount(ctx context.Context, in dto.PagoRequest) (*dto.PagoResponse, error) {
	usuario := strings.TrimSpace(in.Usuario)
	if !in.Monto.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	moved, err := uc.settle(ctx, usuario, &in.Monto)
	if err != nil {
		return nil, err
	}
	vuelto := in.Monto.Sub(moved)
	uc.log.Info().Str("usuario", usuario).Str("total", moved.StringFixed(2)).Str("vuelto", vuelto.StringFixed(2)).Msg("cuenta pagada")
	return &dto.PagoResponse{
		Mensaje: fmt.Sprintf("Cuenta de %s saldada correctamente.", usuario),
		Total:   moved,
		Vuelto:  vuelto,
	}, nil
}

// settle archiva la deuda libre del usuario. Con pago != nil exige pago >= deuda.
func (uc *CollectionUseCase) settle(ctx context.Context, usuario string, pago *decimal.Decimal) (decimal.Decimal, error) {
	if usuario == "" {
		return decimal.Zero, domain.ErrInvalidInput
	}
	var moved decimal.Decimal
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		user, err := r.Users.GetByUsername(ctx, usuario)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrNotFound
		}
		n, deuda, err := r.Sales.SumUnclaimedByUser(ctx, usuario)
		if err != nil {
			return err
		}
		if n == 0 || !deuda.GreaterThan(decimal.Zero) {
			return domain.ErrNoDebt
		}
		if pago != nil && pago.LessThan(deuda) {
			return fmt.Errorf("el monto ₡%s no cubre la deuda de ₡%s: %w", pago.StringFixed(2), deuda.StringFixed(2), domain.ErrPaymentTooLow)
		}
		count, total, err := r.Sales.MoveToHistory(ctx, usuario, uc.now().UTC())
		if err != nil {
			return err
		}
		if count != int64(n) || !total.Equal(deuda) {
			return fmt.Errorf("liquidación de %s: ventas cambiaron durante la operación: %w", usuario, domain.ErrConflict)
		}
		moved = total
		return nil
	})
	return moved, err
}
