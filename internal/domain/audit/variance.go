package audit

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/entity"
)

// Variance calcula la diferencia de una línea de toma física.
// DiferenciaUnidades = encontrada - teorica; DiferenciaMonetaria = costo * |diferencia|.
func Variance(encontrada, teorica int, costo decimal.Decimal) (int, decimal.Decimal) {
	dif := encontrada - teorica
	abs := dif
	if abs < 0 {
		abs = -abs
	}
	return dif, costo.Mul(decimal.NewFromInt(int64(abs)))
}

// NewDetail arma el detalle de auditoría para un producto contado.
func NewDetail(auditID int64, p *entity.Product, encontrada int) *entity.AuditDetail {
	dif, monto := Variance(encontrada, p.Stock, p.Costo)
	return &entity.AuditDetail{
		AuditID:             auditID,
		ProductoID:          p.ID,
		CantidadEncontrada:  encontrada,
		CantidadTeorica:     p.Stock,
		DiferenciaUnidades:  dif,
		CostoUnitario:       p.Costo,
		DiferenciaMonetaria: monto,
	}
}

// NormalizeParticipants recorta espacios, descarta vacíos y duplicados conservando el orden.
func NormalizeParticipants(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, u := range in {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

// JoinParticipants serializa los participantes para la columna usuarios.
func JoinParticipants(us []string) string {
	return strings.Join(us, ",")
}

// SplitParticipants inverso de JoinParticipants.
func SplitParticipants(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
