package dto

import "time"

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	Code     string `json:"code" validate:"required,max=64"`
	Type     string `json:"type" validate:"required,oneof=inbound outbound in out entrada saida salida"`
	Quantity int64  `json:"quantity" validate:"required,gt=0"`
	Reason   string `json:"reason" validate:"omitempty,max=500"`
}

// MovementResponse salida de un movimiento registrado.
type MovementResponse struct {
	ID            int64     `json:"id"`
	TransactionID string    `json:"transaction_id"`
	Code          string    `json:"code"`
	Type          string    `json:"type"`
	Quantity      int64     `json:"quantity"`
	Reason        string    `json:"reason,omitempty"`
	BalanceBefore int64     `json:"balance_before"`
	BalanceAfter  int64     `json:"balance_after"`
	User          string    `json:"user"`
	CreatedAt     time.Time `json:"created_at"`
}

// HistoryQuery parámetros de GET /api/inventory/movements.
type HistoryQuery struct {
	Code  string `query:"code" validate:"omitempty,max=64"`
	Days  int    `query:"days" validate:"min=0,max=3650"`
	Limit int    `query:"limit" validate:"min=0,max=1000"`
}
