package dto

// ImportSheetRequest body para POST /api/import/sheets.
type ImportSheetRequest struct {
	URL    string `json:"url" validate:"omitempty,url"` // vacío = SHEETS_PRODUCTS_URL
	Format string `json:"format" validate:"omitempty,oneof=csv xlsx"`
}

// ImportResultDTO resultado de una importación de catálogo.
type ImportResultDTO struct {
	Received int `json:"received"` // filas válidas leídas
	Created  int `json:"created"`
	Updated  int `json:"updated"`
	Dropped  int `json:"dropped"` // filas sin código o nombre
}

// SheetPreviewDTO tablero de una planilla sin persistir (variante Google Sheets).
type SheetPreviewDTO struct {
	Source   string                  `json:"source"`
	Cached   bool                    `json:"cached"`
	Products []ProductStatusResponse `json:"products"`
	Summary  DashboardSummaryDTO     `json:"summary"`
}
