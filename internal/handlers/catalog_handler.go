package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"meatstore-backend/internal/models"
	"meatstore-backend/internal/services"
	"meatstore-backend/pkg/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListProducts handles GET /api/catalog
// Query params: search=<term> for the terminal's live product search.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("search")

	var (
		products []models.Product
		err      error
	)
	if term != "" {
		products, err = h.catalogService.Search(r.Context(), term)
	} else {
		products, err = h.catalogService.ListProducts(r.Context())
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to load catalog")
		return
	}

	if products == nil {
		products = []models.Product{}
	}
	utils.JSON(w, http.StatusOK, products)
}

// UpsertProduct handles PUT /api/catalog/products
// Used by the storefront sync job to push catalog changes.
func (h *CatalogHandler) UpsertProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid product payload")
		return
	}
	if strings.TrimSpace(product.ID) == "" || strings.TrimSpace(product.Name) == "" {
		utils.Error(w, http.StatusBadRequest, "product id and name are required")
		return
	}
	if product.Status == "" {
		product.Status = models.ProductActive
	}

	if err := h.catalogService.UpsertProduct(r.Context(), &product); err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to save product")
		return
	}

	utils.JSON(w, http.StatusOK, product)
}
