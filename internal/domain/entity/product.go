package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// Quantity es el stock actual y solo cambia a través del motor de movimientos;
// los edits directos de producto nunca lo tocan, de modo que el log de
// movimientos es siempre el historial completo de cada cambio de cantidad.
type Product struct {
	ID          int64
	Name        string
	SKU         string // código único global
	Description string
	Category    string
	Price       decimal.Decimal // precio de venta, >= 0
	Quantity    int             // stock actual, >= 0
	MinStock    int             // umbral de reposición (default 5)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsLowStock indica si el stock está en o bajo el mínimo.
// Derivado: se recalcula en cada lectura, nunca se persiste.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinStock
}
