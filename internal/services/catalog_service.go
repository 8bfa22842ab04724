package services

import (
	"context"
	"encoding/json"
	"log"

	"meatstore-backend/internal/billing"
	"meatstore-backend/internal/cache"
	"meatstore-backend/internal/models"
	"meatstore-backend/internal/repositories"
)

// CatalogService serves the product catalog to billing terminals,
// fronted by a short-lived Redis snapshot since every keystroke in the
// product search hits it.
type CatalogService struct {
	productRepo *repositories.ProductRepository
}

func NewCatalogService(productRepo *repositories.ProductRepository) *CatalogService {
	return &CatalogService{productRepo: productRepo}
}

// ListProducts returns active catalog products, cached.
func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	if data, ok := cache.GetCachedCatalog(ctx); ok {
		var products []models.Product
		if err := json.Unmarshal(data, &products); err == nil {
			return products, nil
		}
		// Corrupt cache entry: fall through to the database.
		cache.InvalidateCatalog(ctx)
	}

	products, err := s.productRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(products); err == nil {
		cache.CacheCatalog(ctx, data)
	}

	return products, nil
}

// Search runs the terminal's live product search over the cached
// catalog. A blank term returns nothing, matching the counter UI.
func (s *CatalogService) Search(ctx context.Context, term string) ([]models.Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return billing.SearchCatalog(term, products), nil
}

// UpsertProduct writes a product and drops the catalog snapshot.
func (s *CatalogService) UpsertProduct(ctx context.Context, p *models.Product) error {
	if err := s.productRepo.Upsert(ctx, p); err != nil {
		return err
	}
	cache.InvalidateCatalog(ctx)
	log.Printf("[Catalog] Upserted product %s (%s)", p.ID, p.Name)
	return nil
}
