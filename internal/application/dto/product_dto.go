package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockly-api/internal/domain"
	"github.com/jhoicas/stockly-api/internal/domain/entity"
)

// CreateProductRequest body para POST /api/products.
// Quantity parte en 0 si no se envía; MinStock aplica el default 5 si viene ausente.
type CreateProductRequest struct {
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	MinStock    *int            `json:"min_stock,omitempty"`
}

// Validate verifica rangos antes de llegar al núcleo.
func (r *CreateProductRequest) Validate() error {
	if l := len(r.Name); l < 2 || l > 200 {
		return fmt.Errorf("name debe tener entre 2 y 200 caracteres: %w", domain.ErrInvalidInput)
	}
	if l := len(r.SKU); l < 2 || l > 50 {
		return fmt.Errorf("sku debe tener entre 2 y 50 caracteres: %w", domain.ErrInvalidInput)
	}
	if l := len(r.Category); l < 2 || l > 100 {
		return fmt.Errorf("category debe tener entre 2 y 100 caracteres: %w", domain.ErrInvalidInput)
	}
	if r.Price.IsNegative() {
		return fmt.Errorf("price no puede ser negativo: %w", domain.ErrInvalidInput)
	}
	if r.Quantity < 0 {
		return fmt.Errorf("quantity no puede ser negativa: %w", domain.ErrInvalidInput)
	}
	if r.MinStock != nil && *r.MinStock < 0 {
		return fmt.Errorf("min_stock no puede ser negativo: %w", domain.ErrInvalidInput)
	}
	return nil
}

// UpdateProductRequest actualización parcial: solo los campos presentes se aplican.
// Quantity no es editable por diseño; cambia únicamente vía movimientos.
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	MinStock    *int             `json:"min_stock,omitempty"`
}

// Validate verifica rangos de los campos presentes.
func (r *UpdateProductRequest) Validate() error {
	if r.Name != nil {
		if l := len(*r.Name); l < 2 || l > 200 {
			return fmt.Errorf("name debe tener entre 2 y 200 caracteres: %w", domain.ErrInvalidInput)
		}
	}
	if r.Category != nil {
		if l := len(*r.Category); l < 2 || l > 100 {
			return fmt.Errorf("category debe tener entre 2 y 100 caracteres: %w", domain.ErrInvalidInput)
		}
	}
	if r.Price != nil && r.Price.IsNegative() {
		return fmt.Errorf("price no puede ser negativo: %w", domain.ErrInvalidInput)
	}
	if r.MinStock != nil && *r.MinStock < 0 {
		return fmt.Errorf("min_stock no puede ser negativo: %w", domain.ErrInvalidInput)
	}
	return nil
}

// ProductResponse datos completos del producto. is_low_stock es derivado,
// recalculado en cada lectura.
type ProductResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	MinStock    int             `json:"min_stock"`
	IsLowStock  bool            `json:"is_low_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewProductResponse arma la respuesta desde la entidad.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		SKU:         p.SKU,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Quantity:    p.Quantity,
		MinStock:    p.MinStock,
		IsLowStock:  p.IsLowStock(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ProductListResponse respuesta paginada: total refleja el conjunto filtrado
// completo (antes de paginar) y pages = max(1, ceil(total/limit)).
type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int               `json:"total"`
	Page  int               `json:"page"`
	Pages int               `json:"pages"`
}
