package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/semaforo-stock/internal/application/dashboard"
	"github.com/jhoicas/semaforo-stock/internal/application/dto"
	"github.com/jhoicas/semaforo-stock/internal/domain/inventory"
)

// ProductHandler listado de productos con su semáforo (público, sólo lectura).
type ProductHandler struct {
	uc *dashboard.DashboardUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *dashboard.DashboardUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List godoc
// @Summary      Listar productos con estado de stock
// @Tags         products
// @Produce      json
// @Param        category  query  string  false  "Filtrar por categoría"
// @Param        status    query  string  false  "CRITICAL | WARNING | OK"
// @Success      200  {object}  dto.ListResponse[dto.ProductStatusResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	f := dashboard.Filter{Category: c.Query("category")}
	if raw := c.Query("status"); raw != "" {
		st, ok := inventory.ParseStatus(raw)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status debe ser CRITICAL, WARNING u OK"})
		}
		f.Status = st
	}
	rows, err := h.uc.ListProducts(c.Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ListResponse[dto.ProductStatusResponse]{Total: len(rows), Items: rows})
}

// GetByCode godoc
// @Summary      Obtener producto por código
// @Tags         products
// @Produce      json
// @Param        code  path  string  true  "Código del producto"
// @Success      200  {object}  dto.ProductStatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{code} [get]
func (h *ProductHandler) GetByCode(c *fiber.Ctx) error {
	row, err := h.uc.GetProduct(c.Context(), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(row)
}
