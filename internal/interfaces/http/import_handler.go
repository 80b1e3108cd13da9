package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/semaforo-stock/internal/application/dto"
	"github.com/jhoicas/semaforo-stock/internal/application/ingest"
)

// maxUploadBytes tope del archivo subido en /api/import/file.
const maxUploadBytes = 8 << 20

// ImportHandler importación de catálogo y vista previa de planillas.
type ImportHandler struct {
	importUC   *ingest.ImportUseCase
	previewUC  *ingest.PreviewUseCase
	defaultURL string // SHEETS_PRODUCTS_URL
}

// NewImportHandler construye el handler.
func NewImportHandler(importUC *ingest.ImportUseCase, previewUC *ingest.PreviewUseCase, defaultURL string) *ImportHandler {
	return &ImportHandler{importUC: importUC, previewUC: previewUC, defaultURL: defaultURL}
}

func (h *ImportHandler) sheetURL(raw string) string {
	if s := strings.TrimSpace(raw); s != "" {
		return s
	}
	return h.defaultURL
}

// ImportSheet godoc
// @Summary      Importar catálogo desde Google Sheets
// @Description  Inserta códigos nuevos y actualiza el catálogo de los existentes; el stock existente no se modifica.
// @Tags         import
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportSheetRequest  true  "url (vacío = planilla configurada), format csv|xlsx"
// @Success      200   {object}  dto.ImportResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/import/sheets [post]
func (h *ImportHandler) ImportSheet(c *fiber.Ctx) error {
	var in dto.ImportSheetRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	url := h.sheetURL(in.URL)
	if url == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "url requerida"})
	}
	out, err := h.importUC.ImportFromURL(c.Context(), url, in.Format)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ImportFile godoc
// @Summary      Importar catálogo desde archivo CSV o XLSX
// @Tags         import
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Planilla .csv o .xlsx"
// @Success      200   {object}  dto.ImportResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/import/file [post]
func (h *ImportHandler) ImportFile(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campo file requerido"})
	}
	if fh.Size > maxUploadBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "archivo demasiado grande"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no se pudo leer el archivo"})
	}
	defer f.Close()

	out, err := h.importUC.ImportFile(c.Context(), fh.Filename, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Preview godoc
// @Summary      Tablero desde planilla (sin persistir)
// @Tags         import
// @Produce      json
// @Param        url  query  string  false  "URL de la planilla (vacío = planilla configurada)"
// @Success      200  {object}  dto.SheetPreviewDTO
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/import/preview [get]
func (h *ImportHandler) Preview(c *fiber.Ctx) error {
	url := h.sheetURL(c.Query("url"))
	if url == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "url requerida"})
	}
	out, err := h.previewUC.Preview(c.Context(), url)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// InvalidatePreview godoc
// @Summary      Descartar la planilla en caché
// @Tags         import
// @Param        url  query  string  false  "URL de la planilla (vacío = planilla configurada)"
// @Success      204
// @Router       /api/import/preview [delete]
func (h *ImportHandler) InvalidatePreview(c *fiber.Ctx) error {
	url := h.sheetURL(c.Query("url"))
	if url == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "url requerida"})
	}
	if err := h.previewUC.Invalidate(c.Context(), url); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
