package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/stockly-api/internal/application/dto"
	"github.com/jhoicas/stockly-api/internal/application/stock"
	"github.com/jhoicas/stockly-api/internal/domain"
	"github.com/jhoicas/stockly-api/internal/domain/entity"
	"github.com/jhoicas/stockly-api/internal/domain/repository"
)

// DefaultMinStock umbral de reposición cuando el create no lo envía.
const DefaultMinStock = 5

// ProductUseCase casos de uso CRUD para productos. Quantity no se edita aquí:
// se maneja vía movimientos (stock.RecordMovementUseCase).
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner stock.TxRunner // borrado en cascada producto + movimientos
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txRunner stock.TxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner}
}

// Create crea un nuevo producto. Rechaza SKU duplicado antes de llegar al store.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	minStock := DefaultMinStock
	if in.MinStock != nil {
		minStock = *in.MinStock
	}
	now := time.Now()
	product := &entity.Product{
		Name:        in.Name,
		SKU:         in.SKU,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		Quantity:    in.Quantity,
		MinStock:    minStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	resp := dto.NewProductResponse(product)
	return &resp, nil
}

// GetByID obtiene un producto por ID. (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	resp := dto.NewProductResponse(product)
	return &resp, nil
}

// Update aplica una actualización parcial: solo los campos presentes se tocan.
// No permite modificar Quantity (se maneja vía movimientos).
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	resp := dto.NewProductResponse(product)
	return &resp, nil
}

// Delete elimina el producto y, en la misma transacción, todos sus movimientos.
// La cascada es explícita: el producto es dueño de su historial de movimientos.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return &domain.ProductNotFoundError{ProductID: id}
	}
	return uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error {
		if err := movRepo.DeleteByProduct(ctx, id); err != nil {
			return err
		}
		return productRepo.Delete(ctx, id)
	})
}

// List lista productos con filtros, ordenación y paginación 1-indexada.
// total refleja el conjunto filtrado antes de paginar.
func (uc *ProductUseCase) List(ctx context.Context, filter repository.ProductFilter) (*dto.ProductListResponse, error) {
	products, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, dto.NewProductResponse(p))
	}
	pages := 1
	if total > 0 {
		pages = (total + filter.Limit - 1) / filter.Limit
	}
	return &dto.ProductListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Pages: pages,
	}, nil
}

// ListCategories devuelve las categorías distintas, en orden alfabético.
func (uc *ProductUseCase) ListCategories(ctx context.Context) ([]string, error) {
	return uc.repo.ListCategories(ctx)
}
