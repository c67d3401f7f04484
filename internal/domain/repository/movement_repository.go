package repository

import (
	"context"

	"github.com/jhoicas/stockly-api/internal/domain/entity"
)

// MovementFilter filtros opcionales e independientes para el listado de movimientos.
type MovementFilter struct {
	ProductID *int64
	Type      *entity.MovementType
	Limit     int
}

// MovementRepository define el puerto de persistencia para Movement (DIP).
// Los movimientos son inmutables: solo Create, lecturas y el borrado en cascada
// por producto. Las lecturas enriquecen cada movimiento con el nombre del producto.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, int, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.Movement, error)
	DeleteByProduct(ctx context.Context, productID int64) error
}
