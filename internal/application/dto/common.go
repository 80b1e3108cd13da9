package dto

// ErrorResponse cuerpo de error HTTP.
// Missing sólo se completa en errores de esquema (columnas faltantes en la fuente).
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Missing []string `json:"missing,omitempty"`
}

// ListResponse envoltorio genérico de listados.
type ListResponse[T any] struct {
	Total int `json:"total"`
	Items []T `json:"items"`
}
