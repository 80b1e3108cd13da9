package inventory

import "strings"

// Status clasificación de semáforo de un producto.
type Status string

const (
	StatusCritical Status = "CRITICAL"
	StatusWarning  Status = "WARNING"
	StatusOK       Status = "OK"
)

// Statuses devuelve los tres niveles en orden de severidad.
func Statuses() []Status {
	return []Status{StatusCritical, StatusWarning, StatusOK}
}

// Classify aplica la regla del semáforo (servicio de dominio, función pura):
//
//	current <= min          → CRITICAL
//	current <= min * 1.5    → WARNING
//	en otro caso            → OK
//
// El umbral 1.5 se evalúa como current-min <= min/2: sin flotantes y sin desbordar int64
// (en esa rama current > min >= 0).
func Classify(current, min int64) Status {
	if current <= min {
		return StatusCritical
	}
	if current-min <= min/2 {
		return StatusWarning
	}
	return StatusOK
}

// ParseStatus interpreta un filtro de estado. Acepta también las etiquetas en portugués (CRÍTICO, ATENÇÃO).
func ParseStatus(s string) (Status, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CRITICAL", "CRÍTICO", "CRITICO":
		return StatusCritical, true
	case "WARNING", "ATENÇÃO", "ATENCAO":
		return StatusWarning, true
	case "OK":
		return StatusOK, true
	}
	return "", false
}
