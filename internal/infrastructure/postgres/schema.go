package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema crea las tablas si no existen (fallback al arranque si no se usan migrations).
// La cascada de borrado NO se delega al FK: el borrado de movimientos por producto
// es explícito dentro de la transacción de Delete.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS products (
		id          BIGSERIAL PRIMARY KEY,
		name        VARCHAR(200) NOT NULL,
		sku         VARCHAR(50)  NOT NULL UNIQUE,
		description TEXT,
		category    VARCHAR(100) NOT NULL,
		price       NUMERIC(12,2) NOT NULL DEFAULT 0,
		quantity    INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
		min_stock   INTEGER NOT NULL DEFAULT 5 CHECK (min_stock >= 0),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS idx_products_name     ON products (name);
	CREATE INDEX IF NOT EXISTS idx_products_category ON products (category);

	CREATE TABLE IF NOT EXISTS movements (
		id         BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL REFERENCES products (id),
		type       VARCHAR(10) NOT NULL CHECK (type IN ('entry', 'exit')),
		quantity   INTEGER NOT NULL CHECK (quantity > 0),
		notes      TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS idx_movements_product_id ON movements (product_id);
	CREATE INDEX IF NOT EXISTS idx_movements_created_at ON movements (created_at DESC);
	`
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
