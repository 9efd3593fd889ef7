package billing

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/entity"
)

// ClaimChunkSize máximo de ids por sentencia al reclamar ventas para un periodo.
const ClaimChunkSize = 900

// Range rango de fechas de un periodo, ambos días inclusive.
type Range struct {
	Inicio time.Time
	Fin    time.Time
}

// NewRange normaliza ambas fechas al día calendario (UTC) y valida que Fin >= Inicio.
func NewRange(inicio, fin time.Time) (Range, error) {
	r := Range{Inicio: truncateDay(inicio), Fin: truncateDay(fin)}
	if inicio.IsZero() || fin.IsZero() || r.Fin.Before(r.Inicio) {
		return Range{}, domain.ErrInvalidInput
	}
	return r, nil
}

// Until límite superior exclusivo: el día siguiente a Fin.
func (r Range) Until() time.Time {
	return r.Fin.AddDate(0, 0, 1)
}

func truncateDay(t time.Time) time.Time {
	y, m, dd := t.Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

// UserShare parte de un usuario dentro de un periodo.
type UserShare struct {
	UserID  int64
	Nombre  string
	Ventas  int // número de ventas
	Items   int // unidades
	Total   decimal.Decimal
	SaleIDs []int64
	Montos  []decimal.Decimal
}

// Plan agregación de ventas pendientes: una parte por usuario y el total general.
type Plan struct {
	Shares  []UserShare
	Lines   []entity.SaleLine
	Total   decimal.Decimal
	SaleIDs []int64
}

// Empty indica que no hay ventas que cobrar.
func (p Plan) Empty() bool {
	return len(p.SaleIDs) == 0
}

// BuildPlan agrupa las ventas por usuario. Las sumas no se redondean.
// Las partes quedan ordenadas por total descendente y luego por nombre.
func BuildPlan(lines []entity.SaleLine) Plan {
	plan := Plan{Lines: lines, Total: decimal.Zero}
	idx := make(map[int64]int)
	for _, l := range lines {
		i, ok := idx[l.UserID]
		if !ok {
			i = len(plan.Shares)
			idx[l.UserID] = i
			plan.Shares = append(plan.Shares, UserShare{UserID: l.UserID, Nombre: l.Usuario, Total: decimal.Zero})
		}
		s := &plan.Shares[i]
		s.Ventas++
		s.Items += l.Cantidad
		s.Total = s.Total.Add(l.Total)
		s.SaleIDs = append(s.SaleIDs, l.VentaID)
		s.Montos = append(s.Montos, l.Total)

		plan.Total = plan.Total.Add(l.Total)
		plan.SaleIDs = append(plan.SaleIDs, l.VentaID)
	}
	sort.SliceStable(plan.Shares, func(a, b int) bool {
		if c := plan.Shares[a].Total.Cmp(plan.Shares[b].Total); c != 0 {
			return c > 0
		}
		return plan.Shares[a].Nombre < plan.Shares[b].Nombre
	})
	return plan
}

// Chunk parte ids en bloques de a lo sumo size elementos, conservando el orden.
func Chunk(ids []int64, size int) [][]int64 {
	if size <= 0 {
		size = ClaimChunkSize
	}
	var out [][]int64
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		out = append(out, ids[start:end])
	}
	return out
}

// CanSettle indica si un periodo en ese estado puede pasar a descontado.
func CanSettle(estado string) bool {
	return estado == entity.BillingStatusPendiente
}
