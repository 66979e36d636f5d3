package repository

import (
	"context"

	"product-catalog/internal/model"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// Create inserts a transient product and populates its id.
	Create(ctx context.Context, product *model.Product) error

	// Update persists the current field values against the existing row.
	// Returns model.ErrProductNotFound when no row matches the id.
	Update(ctx context.Context, product *model.Product) error

	// Delete removes the row matching the id. Deleting an absent id is
	// not an error; the post-condition is simply that the row is gone.
	Delete(ctx context.Context, id int64) error

	// FindByID retrieves a single product, or nil when absent.
	FindByID(ctx context.Context, id int64) (*model.Product, error)

	// All retrieves every product ordered by id.
	All(ctx context.Context) ([]model.Product, error)

	// FindByName retrieves all products whose name matches exactly.
	FindByName(ctx context.Context, name string) ([]model.Product, error)

	// FindByCategory retrieves all products in the given category.
	FindByCategory(ctx context.Context, category model.Category) ([]model.Product, error)

	// FindByAvailability retrieves all products with the given availability.
	FindByAvailability(ctx context.Context, available bool) ([]model.Product, error)
}
