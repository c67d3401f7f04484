package stock

import (
	"context"
	"time"

	"github.com/jhoicas/stockly-api/internal/domain"
	"github.com/jhoicas/stockly-api/internal/domain/entity"
	"github.com/jhoicas/stockly-api/internal/domain/repository"
)

// RecordMovementUseCase aplica un movimiento de stock como unidad atómica:
// valida, muta Product.Quantity y persiste el Movement, o falla completo sin
// efecto parcial. Es el único camino por el que cambia la cantidad de un producto.
type RecordMovementUseCase struct {
	txRunner TxRunner
}

// NewRecordMovementUseCase construye el caso de uso.
func NewRecordMovementUseCase(txRunner TxRunner) *RecordMovementUseCase {
	return &RecordMovementUseCase{txRunner: txRunner}
}

// MovementInput entrada para registrar un movimiento.
type MovementInput struct {
	ProductID int64
	Type      entity.MovementType
	Quantity  int
	Notes     string
}

// RecordMovement inicia una transacción, bloquea la fila del producto
// (SELECT FOR UPDATE), aplica el delta según tipo y guarda el movimiento.
// Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace).
// Una salida que excede el stock disponible se rechaza con
// InsufficientStockError reportando la cantidad previa real.
func (uc *RecordMovementUseCase) RecordMovement(ctx context.Context, input MovementInput) (*entity.Movement, error) {
	if !input.Type.Valid() || input.Quantity <= 0 || input.ProductID <= 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	movement := &entity.Movement{
		ProductID: input.ProductID,
		Type:      input.Type,
		Quantity:  input.Quantity,
		Notes:     input.Notes,
		CreatedAt: now,
	}

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error {
		// Bloquea la fila del producto para serializar salidas concurrentes
		product, err := productRepo.GetByIDForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return &domain.ProductNotFoundError{ProductID: input.ProductID}
		}

		newQty := product.Quantity
		switch input.Type {
		case entity.MovementTypeExit:
			if product.Quantity < input.Quantity {
				return &domain.InsufficientStockError{
					Available: product.Quantity,
					Requested: input.Quantity,
				}
			}
			newQty -= input.Quantity
		case entity.MovementTypeEntry:
			newQty += input.Quantity // sin cota superior
		}

		// Mismo instante para el movimiento y el updated_at del producto:
		// un solo reloj dentro de la transacción.
		if err := productRepo.UpdateQuantity(ctx, product.ID, newQty, now); err != nil {
			return err
		}
		movement.ProductName = product.Name
		return movRepo.Create(ctx, movement)
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}
