package dashboard

import "github.com/jhoicas/semaforo-stock/internal/domain/inventory"

// Indicator devuelve el símbolo de semáforo de cada nivel.
// Es la única decisión de presentación que expone el núcleo; colores y layout quedan en el cliente.
func Indicator(s inventory.Status) string {
	switch s {
	case inventory.StatusCritical:
		return "🔴"
	case inventory.StatusWarning:
		return "🟡"
	default:
		return "🟢"
	}
}
