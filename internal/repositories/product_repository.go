package repositories

import (
	"context"

	"meatstore-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	DB *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{DB: db}
}

// ListActive returns catalog products available for sale, name-ordered.
func (r *ProductRepository) ListActive(ctx context.Context) ([]models.Product, error) {
	query := `
		SELECT id, name, COALESCE(category, ''), price, COALESCE(original_price, 0),
		       COALESCE(weight, ''), status
		FROM products
		WHERE status = $1
		ORDER BY name
	`

	rows, err := r.DB.Query(ctx, query, models.ProductActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Category,
			&p.Price,
			&p.OriginalPrice,
			&p.Weight,
			&p.Status,
		)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *ProductRepository) Get(ctx context.Context, id string) (*models.Product, error) {
	query := `
		SELECT id, name, COALESCE(category, ''), price, COALESCE(original_price, 0),
		       COALESCE(weight, ''), status
		FROM products
		WHERE id = $1
	`

	p := &models.Product{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Category,
		&p.Price,
		&p.OriginalPrice,
		&p.Weight,
		&p.Status,
	)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// Upsert writes a catalog product, used by the storefront sync job.
func (r *ProductRepository) Upsert(ctx context.Context, p *models.Product) error {
	query := `
		INSERT INTO products (id, name, category, price, original_price, weight, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			price = EXCLUDED.price,
			original_price = EXCLUDED.original_price,
			weight = EXCLUDED.weight,
			status = EXCLUDED.status,
			updated_at = NOW()
	`

	_, err := r.DB.Exec(ctx, query,
		p.ID, p.Name, p.Category, p.Price, p.OriginalPrice, p.Weight, p.Status)
	return err
}
