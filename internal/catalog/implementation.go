// internal/catalog/implementation.go
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// postgresService implements the Service interface on the products table.
type postgresService struct {
	db     *sql.DB
	tracer trace.Tracer
}

// NewPostgresService creates a catalog service backed by Postgres.
func NewPostgresService(db *sql.DB) Service {
	return &postgresService{
		db:     db,
		tracer: otel.Tracer("storefront/catalog"),
	}
}

// List returns the whole catalog in insertion order.
func (s *postgresService) List(ctx context.Context) ([]Product, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.list")
	defer span.End()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, cost, rating, image
		FROM products
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("products.count", len(products)))
	return products, nil
}

// Search finds products whose name or category contains the query.
func (s *postgresService) Search(ctx context.Context, query string) ([]Product, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.search",
		trace.WithAttributes(attribute.String("search.query", query)),
	)
	defer span.End()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, cost, rating, image
		FROM products
		WHERE name ILIKE '%' || $1 || '%'
		OR category ILIKE '%' || $1 || '%'
		ORDER BY position ASC
	`, query)
	if err != nil {
		return nil, fmt.Errorf("database search failed: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("products.count", len(products)))
	return products, nil
}

// Get retrieves a product by its ID.
func (s *postgresService) Get(ctx context.Context, id string) (*Product, error) {
	p := &Product{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, category, cost, rating, image
		FROM products
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Category, &p.Cost, &p.Rating, &p.Image)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

// Add inserts a product, replacing the display fields if the id exists.
func (s *postgresService) Add(ctx context.Context, p Product) (*Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (id, name, category, cost, rating, image)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    category = EXCLUDED.category,
		    cost = EXCLUDED.cost,
		    rating = EXCLUDED.rating,
		    image = EXCLUDED.image
	`, p.ID, p.Name, p.Category, p.Cost, p.Rating, p.Image)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}
	return &p, nil
}

func scanProducts(rows *sql.Rows) ([]Product, error) {
	products := make([]Product, 0)
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Cost, &p.Rating, &p.Image); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}
