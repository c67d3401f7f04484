package dto

import (
	"fmt"
	"time"

	"github.com/jhoicas/stockly-api/internal/domain"
	"github.com/jhoicas/stockly-api/internal/domain/entity"
)

// CreateMovementRequest body para POST /api/movements.
type CreateMovementRequest struct {
	ProductID int64  `json:"product_id"`
	Type      string `json:"type"` // entry | exit
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes,omitempty"`
}

// Validate verifica tipo y cantidad antes de llegar al motor.
func (r *CreateMovementRequest) Validate() error {
	if r.ProductID <= 0 {
		return fmt.Errorf("product_id es obligatorio: %w", domain.ErrInvalidInput)
	}
	if !entity.MovementType(r.Type).Valid() {
		return fmt.Errorf("type debe ser entry o exit: %w", domain.ErrInvalidInput)
	}
	if r.Quantity <= 0 {
		return fmt.Errorf("quantity debe ser mayor que cero: %w", domain.ErrInvalidInput)
	}
	return nil
}

// MovementResponse movimiento con el nombre del producto resuelto al leer.
type MovementResponse struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewMovementResponse arma la respuesta desde la entidad.
func NewMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Type:        string(m.Type),
		Quantity:    m.Quantity,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
	}
}

// MovementListResponse total refleja el conjunto filtrado, no limitado por limit.
type MovementListResponse struct {
	Data  []MovementResponse `json:"data"`
	Total int                `json:"total"`
}
