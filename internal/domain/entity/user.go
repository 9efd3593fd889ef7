package entity

import (
	"strings"
	"time"
)

// Roles válidos para User.
const (
	RoleCliente  = "cliente"
	RoleContador = "contador"
	RoleAdmin    = "admin"

	// roleContabilidadAlias nombre histórico del rol contador.
	roleContabilidadAlias = "contabilidad"
)

// User representa un usuario del sistema.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // cliente, contador, admin
	CreatedAt    time.Time
}

// NormalizeRole devuelve el rol canónico y si es válido. "contabilidad" se trata como "contador".
func NormalizeRole(role string) (string, bool) {
	r := strings.ToLower(strings.TrimSpace(role))
	switch r {
	case RoleCliente, RoleContador, RoleAdmin:
		return r, true
	case roleContabilidadAlias:
		return RoleContador, true
	}
	return "", false
}
