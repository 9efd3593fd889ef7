package audit

import (
	"context"
	"time"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/dto"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/ports"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain"
	domainaudit "github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/audit"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/entity"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/repository"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/pkg/logger"
)

// CountUseCase toma física: compara lo contado contra el stock teórico y guarda la diferencia.
type CountUseCase struct {
	txRunner ports.TxRunner
	audits   repository.AuditRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewCountUseCase construye el caso de uso.
func NewCountUseCase(txRunner ports.TxRunner, audits repository.AuditRepository, log *logger.Logger) *CountUseCase {
	return &CountUseCase{txRunner: txRunner, audits: audits, log: log.Component("auditoria"), now: time.Now}
}

// RecordPhysicalCount inserta cabecera y detalles en una transacción.
// La cantidad teórica es el stock actual del producto; los productos inexistentes se omiten.
func (uc *CountUseCase) RecordPhysicalCount(ctx context.Context, in dto.PhysicalCountRequest) (*dto.PhysicalCountResponse, error) {
	usuarios := domainaudit.NormalizeParticipants(in.Usuarios)
	if len(usuarios) == 0 || len(in.Detalles) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, d := range in.Detalles {
		if d.CantidadEncontrada < 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	header := &entity.InventoryAudit{Fecha: uc.now().UTC(), Usuarios: usuarios}
	var registrados int
	var omitidos []int64
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		registrados, omitidos = 0, nil
		if err := r.Audits.Create(ctx, header); err != nil {
			return err
		}
		for _, d := range in.Detalles {
			product, err := r.Products.GetByID(ctx, d.ProductoID)
			if err != nil {
				return err
			}
			if product == nil {
				omitidos = append(omitidos, d.ProductoID)
				continue
			}
			if err := r.Audits.AddDetail(ctx, domainaudit.NewDetail(header.ID, product, d.CantidadEncontrada)); err != nil {
				return err
			}
			registrados++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(omitidos) > 0 {
		uc.log.Warn().Int64("audit_id", header.ID).Ints64("productos", omitidos).Msg("toma física: productos inexistentes omitidos")
	}
	if omitidos == nil {
		omitidos = []int64{}
	}
	return &dto.PhysicalCountResponse{
		Mensaje:     "Toma física registrada correctamente",
		AuditID:     header.ID,
		Registrados: registrados,
		Omitidos:    omitidos,
	}, nil
}

// GetDifferences diferencias de una auditoría unidas con datos del producto.
func (uc *CountUseCase) GetDifferences(ctx context.Context, auditID int64) ([]dto.DiferenciaInventario, error) {
	a, err := uc.audits.GetByID(ctx, auditID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := uc.audits.Differences(ctx, auditID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DiferenciaInventario, 0, len(rows))
	for _, d := range rows {
		out = append(out, dto.DiferenciaInventario{
			Descripcion:         d.Descripcion,
			Marca:               d.Marca,
			CodigoBarras:        d.CodigoBarras,
			CantidadEncontrada:  d.CantidadEncontrada,
			CantidadTeorica:     d.CantidadTeorica,
			DiferenciaUnidades:  d.DiferenciaUnidades,
			CostoUnitario:       d.CostoUnitario,
			DiferenciaMonetaria: d.DiferenciaMonetaria,
		})
	}
	return out, nil
}
