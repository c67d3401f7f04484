package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockly-api/internal/domain"
	"github.com/jhoicas/stockly-api/internal/domain/entity"
	"github.com/jhoicas/stockly-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// Columnas de ordenación por clave. El conjunto es cerrado: ParseProductSortKey
// ya rechazó cualquier valor fuera de esta tabla.
var productSortColumns = map[repository.ProductSortKey]string{
	repository.SortByName:      "name",
	repository.SortBySKU:       "sku",
	repository.SortByCategory:  "category",
	repository.SortByPrice:     "price",
	repository.SortByQuantity:  "quantity",
	repository.SortByMinStock:  "min_stock",
	repository.SortByCreatedAt: "created_at",
	repository.SortByUpdatedAt: "updated_at",
}

const productColumns = "id, name, sku, description, category, price, quantity, min_stock, created_at, updated_at"

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto; el store asigna el ID.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (name, sku, description, category, price, quantity, min_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		product.Name, product.SKU, nullIfEmpty(product.Description), product.Category,
		product.Price, product.Quantity, product.MinStock, product.CreatedAt, product.UpdatedAt,
	).Scan(&product.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get product")
}

// GetByIDForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE)
// para serializar movimientos concurrentes sobre el mismo producto.
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get product for update")
}

// GetBySKU obtiene un producto por SKU (match exacto, case-sensitive).
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, sku), "get product by sku")
}

// List lista productos con filtros conjuntivos, ordenación y paginación 1-indexada.
// El total se calcula sobre el conjunto filtrado antes de paginar.
func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, int, error) {
	where := ""
	args := []any{}
	pos := 1
	addCond := func(cond string, vals ...any) {
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
		args = append(args, vals...)
	}

	if filter.Search != "" {
		addCond(fmt.Sprintf("(name ILIKE '%%' || $%d || '%%' OR sku ILIKE '%%' || $%d || '%%')", pos, pos), filter.Search)
		pos++
	}
	if filter.Category != "" {
		addCond(fmt.Sprintf("category = $%d", pos), filter.Category)
		pos++
	}
	if filter.LowStockOnly {
		addCond("quantity <= min_stock")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM products" + where
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	column, ok := productSortColumns[filter.SortBy]
	if !ok {
		return nil, 0, fmt.Errorf("sort_by %q no reconocido: %w", filter.SortBy, domain.ErrInvalidInput)
	}
	direction := "DESC"
	if filter.SortBy.Ascending() {
		direction = "ASC"
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf("SELECT %s FROM products%s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		productColumns, where, column, direction, pos, pos+1)
	args = append(args, filter.Limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// ListCategories devuelve las categorías distintas en orden alfabético.
func (r *ProductRepo) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT category FROM products ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Update actualiza los campos editables. No toca Quantity (se maneja vía movimientos).
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, category = $4, price = $5, min_stock = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, nullIfEmpty(product.Description), product.Category,
		product.Price, product.MinStock, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateQuantity actualiza solo el stock. Llamado únicamente por el motor de
// movimientos; el timestamp viene del motor (mismo reloj que el movimiento,
// no el del servidor de BD).
func (r *ProductRepo) UpdateQuantity(ctx context.Context, id int64, quantity int, updatedAt time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET quantity = $2, updated_at = $3 WHERE id = $1`,
		id, quantity, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID. La cascada de movimientos es responsabilidad
// del caller, dentro de la misma transacción.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var description *string
	if err := row.Scan(&p.ID, &p.Name, &p.SKU, &description, &p.Category,
		&p.Price, &p.Quantity, &p.MinStock, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if description != nil {
		p.Description = *description
	}
	return &p, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
