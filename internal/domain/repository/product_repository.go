package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stockly-api/internal/domain"
	"github.com/jhoicas/stockly-api/internal/domain/entity"
)

// ProductSortKey campo de ordenación permitido para el listado de productos.
// Conjunto cerrado: claves desconocidas se rechazan en ParseProductSortKey en
// lugar de caer silenciosamente a un default.
type ProductSortKey string

const (
	SortByName      ProductSortKey = "name"
	SortBySKU       ProductSortKey = "sku"
	SortByCategory  ProductSortKey = "category"
	SortByPrice     ProductSortKey = "price"
	SortByQuantity  ProductSortKey = "quantity"
	SortByMinStock  ProductSortKey = "min_stock"
	SortByCreatedAt ProductSortKey = "created_at"
	SortByUpdatedAt ProductSortKey = "updated_at"
)

// Ascending indica la dirección de la clave: el orden por nombre es ascendente
// (navegación alfabética); el resto descendente (lo más reciente/significativo primero).
// La asimetría es una convención de producto deliberada.
func (k ProductSortKey) Ascending() bool {
	return k == SortByName
}

// ParseProductSortKey valida el sort_by recibido. Vacío aplica el default created_at.
func ParseProductSortKey(s string) (ProductSortKey, error) {
	if s == "" {
		return SortByCreatedAt, nil
	}
	switch k := ProductSortKey(s); k {
	case SortByName, SortBySKU, SortByCategory, SortByPrice, SortByQuantity, SortByMinStock, SortByCreatedAt, SortByUpdatedAt:
		return k, nil
	}
	return "", fmt.Errorf("sort_by %q no reconocido: %w", s, domain.ErrInvalidInput)
}

// ProductFilter predicados opcionales (conjunción) y paginación para List.
type ProductFilter struct {
	Search       string // substring case-insensitive sobre name O sku
	Category     string // match exacto
	LowStockOnly bool   // quantity <= min_stock
	SortBy       ProductSortKey
	Page         int // 1-indexado
	Limit        int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Quantity solo se modifica vía UpdateQuantity, desde el motor de movimientos.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, int, error)
	ListCategories(ctx context.Context) ([]string, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdateQuantity recibe el instante de la operación para que updated_at
	// coincida exactamente con el created_at del movimiento que la causó.
	UpdateQuantity(ctx context.Context, id int64, quantity int, updatedAt time.Time) error
	Delete(ctx context.Context, id int64) error
}
