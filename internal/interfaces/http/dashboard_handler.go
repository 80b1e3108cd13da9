package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/semaforo-stock/internal/application/dashboard"
)

// DashboardHandler maneja los endpoints del tablero.
type DashboardHandler struct {
	uc *dashboard.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *dashboard.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen del tablero
// @Description  Conteo y porcentaje por estado, alertas críticas, agregados por categoría y valor total.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.Summary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// GetReport godoc
// @Summary      Reporte PDF de semáforos
// @Tags         dashboard
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/dashboard/report.pdf [get]
func (h *DashboardHandler) GetReport(c *fiber.Ctx) error {
	pdf, err := h.uc.Report(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`inline; filename="semaforo-stock-%s.pdf"`, time.Now().UTC().Format("20060102")))
	return c.Send(pdf)
}
