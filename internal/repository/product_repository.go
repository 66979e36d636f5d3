package repository

import (
	"context"
	"errors"
	"fmt"

	"product-catalog/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const productColumns = "id, name, description, price, available, category"

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// Create inserts a transient product and populates its id. The insert
// runs in its own transaction and is rolled back on failure.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (name, description, price, available, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.Available,
		product.Category.String(),
	).Scan(&product.ID)
	if err != nil {
		r.logger.Error().Err(err).Str("name", product.Name).Msg("failed to insert product")
		return fmt.Errorf("failed to insert product: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Int64("product_id", product.ID).Msg("failed to commit product insert")
		return fmt.Errorf("failed to commit product insert: %w", err)
	}

	r.logger.Debug().
		Int64("product_id", product.ID).
		Str("name", product.Name).
		Msg("product created")

	return nil
}

// Update persists the current field values against the existing row.
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, available = $5, category = $6
		WHERE id = $1
	`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.Available,
		product.Category.String(),
	)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", product.ID).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Int64("product_id", product.ID).Msg("product to update not found")
		return model.ErrProductNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Int64("product_id", product.ID).Msg("failed to commit product update")
		return fmt.Errorf("failed to commit product update: %w", err)
	}

	r.logger.Debug().Int64("product_id", product.ID).Msg("product updated")

	return nil
}

// Delete removes the row matching the id.
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	r.logger.Debug().
		Int64("product_id", id).
		Int64("rows_affected", tag.RowsAffected()).
		Msg("product deleted")

	return nil
}

// FindByID retrieves a single product by its ID.
func (r *productRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return p, nil
}

// All retrieves every product ordered by id.
func (r *productRepository) All(ctx context.Context) ([]model.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products ORDER BY id`, productColumns)
	return r.queryProducts(ctx, query)
}

// FindByName retrieves all products whose name matches exactly.
func (r *productRepository) FindByName(ctx context.Context, name string) ([]model.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE name = $1 ORDER BY id`, productColumns)
	return r.queryProducts(ctx, query, name)
}

// FindByCategory retrieves all products in the given category.
func (r *productRepository) FindByCategory(ctx context.Context, category model.Category) ([]model.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE category = $1 ORDER BY id`, productColumns)
	return r.queryProducts(ctx, query, category.String())
}

// FindByAvailability retrieves all products with the given availability.
func (r *productRepository) FindByAvailability(ctx context.Context, available bool) ([]model.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE available = $1 ORDER BY id`, productColumns)
	return r.queryProducts(ctx, query, available)
}

// queryProducts runs a product select and scans all rows. The result
// is never nil so callers always serialise an array.
func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// scanProduct scans a single row into a Product, resolving the stored
// category name back into its enumeration value.
func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	var category string

	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Available, &category)
	if err != nil {
		return nil, err
	}

	c, err := model.ParseCategory(category)
	if err != nil {
		// Deliberately not wrapped: a corrupt row is a server-side fault,
		// not a client validation failure.
		return nil, fmt.Errorf("stored category %q is not recognised", category)
	}
	p.Category = c

	return &p, nil
}
