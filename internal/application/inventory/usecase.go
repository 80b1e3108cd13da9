package inventory

import (
	"context"

	"github.com/jhoicas/semaforo-stock/internal/application/dto"
	"github.com/jhoicas/semaforo-stock/internal/domain"
	"github.com/jhoicas/semaforo-stock/internal/domain/entity"
)

// ApplyFromRequest adapta el request HTTP al caso de uso Apply(ctx, MovementInput).
// userID es el usuario del token; vacío registra DefaultUser.
func (uc *RegisterMovementUseCase) ApplyFromRequest(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	kind, ok := entity.ParseMovementKind(in.Type)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	mov, err := uc.Apply(ctx, MovementInput{
		Code:     in.Code,
		Kind:     kind,
		Quantity: in.Quantity,
		Reason:   in.Reason,
		User:     userID,
	})
	if err != nil {
		return nil, err
	}
	return ToMovementResponse(mov), nil
}

// ToMovementResponse convierte la entidad al DTO de salida.
func ToMovementResponse(m *entity.Movement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		Code:          m.ProductCode,
		Type:          string(m.Kind),
		Quantity:      m.Quantity,
		Reason:        m.Reason,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		User:          m.User,
		CreatedAt:     m.CreatedAt,
	}
}

// ToMovementResponses convierte un listado.
func ToMovementResponses(list []*entity.Movement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *ToMovementResponse(m))
	}
	return out
}
