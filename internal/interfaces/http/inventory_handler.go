package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/semaforo-stock/internal/application/dto"
	"github.com/jhoicas/semaforo-stock/internal/application/inventory"
)

// InventoryHandler movimientos: registro (protegido) e historial (público).
type InventoryHandler struct {
	uc      *inventory.RegisterMovementUseCase
	history *inventory.HistoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RegisterMovementUseCase, history *inventory.HistoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, history: history}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "code, type (inbound|outbound), quantity, reason"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.ApplyFromRequest(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// History godoc
// @Summary      Historial de movimientos
// @Description  Con code: orden cronológico. Sin code: del más reciente al más antiguo.
// @Tags         inventory
// @Produce      json
// @Param        code   query  string  false  "Código del producto"
// @Param        days   query  int     false  "Ventana en días (por defecto 30)"
// @Param        limit  query  int     false  "Máximo de movimientos (los más recientes)"
// @Success      200  {object}  dto.ListResponse[dto.MovementResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	var q dto.HistoryQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	list, err := h.history.History(c.Context(), inventory.HistoryQuery{
		Code:  q.Code,
		Since: time.Duration(q.Days) * 24 * time.Hour,
		Limit: q.Limit,
	})
	if err != nil {
		return writeError(c, err)
	}
	items := inventory.ToMovementResponses(list)
	return c.JSON(dto.ListResponse[dto.MovementResponse]{Total: len(items), Items: items})
}
