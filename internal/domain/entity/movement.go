package entity

import "time"

// MovementType tipo de movimiento de stock.
type MovementType string

const (
	MovementTypeEntry MovementType = "entry" // entrada: incrementa stock
	MovementTypeExit  MovementType = "exit"  // salida: decrementa stock
)

// Valid indica si el tipo es uno de los conocidos.
func (t MovementType) Valid() bool {
	return t == MovementTypeEntry || t == MovementTypeExit
}

// Movement registro inmutable de un cambio de stock.
// Se crea exclusivamente vía el motor transaccional, atómicamente con la
// actualización de Product.Quantity; nunca se actualiza ni se borra de forma
// independiente (solo en cascada al borrar el producto padre).
type Movement struct {
	ID        int64
	ProductID int64
	Type      MovementType
	Quantity  int // magnitud del delta, > 0
	Notes     string
	CreatedAt time.Time

	// ProductName se llena al leer (join con products); no se persiste.
	ProductName string
}
