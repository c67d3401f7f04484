package usecase

import (
	"context"

	"github.com/jhoicas/stockly-api/internal/application/dto"
	"github.com/jhoicas/stockly-api/internal/domain/repository"
)

// MovementUseCase lecturas sobre el log de movimientos. La creación vive en
// stock.RecordMovementUseCase; aquí no hay mutaciones.
type MovementUseCase struct {
	repo repository.MovementRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(repo repository.MovementRepository) *MovementUseCase {
	return &MovementUseCase{repo: repo}
}

// List lista movimientos (más recientes primero) con filtros opcionales.
// total refleja el conjunto filtrado, no el recorte por limit.
func (uc *MovementUseCase) List(ctx context.Context, filter repository.MovementFilter) (*dto.MovementListResponse, error) {
	movements, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, dto.NewMovementResponse(m))
	}
	return &dto.MovementListResponse{Data: items, Total: total}, nil
}

// ListRecent devuelve los movimientos más recientes, hasta limit.
func (uc *MovementUseCase) ListRecent(ctx context.Context, limit int) ([]dto.MovementResponse, error) {
	movements, err := uc.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, dto.NewMovementResponse(m))
	}
	return items, nil
}
