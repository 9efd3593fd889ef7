package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryEntry entrada de mercadería (append-only). Cada entrada suma stock y fija costo/precio.
type InventoryEntry struct {
	ID            int64
	ProductoID    int64
	Cantidad      int
	CostoUnitario decimal.Decimal
	Fecha         time.Time
}
