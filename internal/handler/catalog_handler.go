package handler

import (
	"log/slog"
	"net/http"

	"github.com/Raymond9734/sales-date-prediction/internal/service"
)

// CatalogHandler serves employees, products and shippers
type CatalogHandler struct {
	catalogService service.CatalogService
	logger         *slog.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// ListEmployees handles GET /api/employees
func (h *CatalogHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, h.logger, h.catalogService.ListEmployees)
}

// ListProducts handles GET /api/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, h.logger, h.catalogService.ListProducts)
}

// ListShippers handles GET /api/shippers
func (h *CatalogHandler) ListShippers(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, h.logger, h.catalogService.ListShippers)
}
