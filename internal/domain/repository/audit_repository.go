package repository

import (
	"context"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/entity"
)

// AuditRepository puerto para tomas físicas.
type AuditRepository interface {
	Create(ctx context.Context, audit *entity.InventoryAudit) error
	AddDetail(ctx context.Context, detail *entity.AuditDetail) error
	GetByID(ctx context.Context, id int64) (*entity.InventoryAudit, error)
	Differences(ctx context.Context, auditID int64) ([]entity.AuditDifference, error)
}
