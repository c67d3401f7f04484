package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockly-api/internal/domain/entity"
	"github.com/jhoicas/stockly-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL (usable con pool o tx).
// Las lecturas hacen join con products para resolver el nombre del producto.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento; el store asigna el ID.
func (r *MovementRepo) Create(ctx context.Context, movement *entity.Movement) error {
	query := `
		INSERT INTO movements (product_id, type, quantity, notes, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		movement.ProductID, movement.Type, movement.Quantity,
		nullIfEmpty(movement.Notes), movement.CreatedAt,
	).Scan(&movement.ID)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// List lista movimientos (created_at DESC) con filtros opcionales e independientes.
// El total se calcula sobre el conjunto filtrado, sin aplicar limit.
func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.Movement, int, error) {
	where := ""
	args := []any{}
	pos := 1
	addCond := func(cond string, val any) {
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
		args = append(args, val)
		pos++
	}

	if filter.ProductID != nil {
		addCond(fmt.Sprintf("m.product_id = $%d", pos), *filter.ProductID)
	}
	if filter.Type != nil {
		addCond(fmt.Sprintf("m.type = $%d", pos), *filter.Type)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM movements m" + where
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT m.id, m.product_id, m.type, m.quantity, m.notes, m.created_at, p.name
		FROM movements m
		JOIN products p ON p.id = m.product_id%s
		ORDER BY m.created_at DESC LIMIT $%d`, where, pos)
	args = append(args, filter.Limit)

	list, err := r.queryMovements(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListRecent devuelve los movimientos más recientes, hasta limit.
func (r *MovementRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Movement, error) {
	query := `
		SELECT m.id, m.product_id, m.type, m.quantity, m.notes, m.created_at, p.name
		FROM movements m
		JOIN products p ON p.id = m.product_id
		ORDER BY m.created_at DESC LIMIT $1`
	return r.queryMovements(ctx, query, limit)
}

// DeleteByProduct borra todos los movimientos de un producto (cascada explícita,
// misma transacción que el borrado del producto).
func (r *MovementRepo) DeleteByProduct(ctx context.Context, productID int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM movements WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete movements by product: %w", err)
	}
	return nil
}

func (r *MovementRepo) queryMovements(ctx context.Context, query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var notes *string
	if err := row.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &notes, &m.CreatedAt, &m.ProductName); err != nil {
		return nil, fmt.Errorf("scan movement: %w", err)
	}
	if notes != nil {
		m.Notes = *notes
	}
	return &m, nil
}
