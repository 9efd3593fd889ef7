// Package access contiene la tabla declarativa rol -> capacidades.
// Es el único lugar donde se decide qué rol puede ejecutar qué operación.
package access

import "github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/entity"

// Capability operación protegida del sistema.
type Capability string

const (
	ProductRead    Capability = "product:read"
	ProductWrite   Capability = "product:write"
	InventoryRead  Capability = "inventory:read"
	InventoryWrite Capability = "inventory:write"
	SaleOwn        Capability = "sale:own"
	AuditRead      Capability = "audit:read"
	AuditWrite     Capability = "audit:write"
	BillingRead    Capability = "billing:read"
	BillingWrite   Capability = "billing:write"
	BillingExport  Capability = "billing:export"
	DashboardRead  Capability = "dashboard:read"
)

// Public capacidades que no requieren token.
var Public = map[Capability]bool{
	ProductRead: true,
}

var table = map[string]map[Capability]bool{
	entity.RoleAdmin: set(
		ProductRead, ProductWrite,
		InventoryRead, InventoryWrite,
		AuditRead, AuditWrite,
		BillingRead, BillingWrite, BillingExport,
		DashboardRead,
	),
	entity.RoleContador: set(
		ProductRead,
		InventoryRead, InventoryWrite,
		AuditRead, AuditWrite,
		BillingRead, BillingWrite, BillingExport,
		DashboardRead,
	),
	entity.RoleCliente: set(
		ProductRead,
		SaleOwn,
	),
}

func set(caps ...Capability) map[Capability]bool {
	m := make(map[Capability]bool, len(caps))
	for _, c := range caps {
		m[c] = true
	}
	return m
}

// Allowed indica si el rol tiene la capacidad. El rol se normaliza antes de consultar.
func Allowed(role string, c Capability) bool {
	if Public[c] {
		return true
	}
	r, ok := entity.NormalizeRole(role)
	if !ok {
		return false
	}
	return table[r][c]
}

// RolesFor devuelve los roles con la capacidad, en orden fijo (útil para mensajes de error).
func RolesFor(c Capability) []string {
	var out []string
	for _, r := range []string{entity.RoleAdmin, entity.RoleContador, entity.RoleCliente} {
		if table[r][c] {
			out = append(out, r)
		}
	}
	return out
}
