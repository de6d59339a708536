package assignments

import (
	"context"

	"github.com/AnuraagTripathy/coding-assessment/internal/server/models"
)

type Repository interface {
	// Create records the (user, product) pair. The returned bool is false
	// when the pair already existed; that outcome is not an error.
	Create(ctx context.Context, userID string, productID int64) (bool, error)

	// Delete removes the pair, returning common.ErrorNotFound when it was
	// never recorded.
	Delete(ctx context.Context, userID string, productID int64) error

	// ListProductsForUser returns the products assigned to the user in the
	// order the assignments were made.
	ListProductsForUser(ctx context.Context, userID string) ([]*models.Product, error)
}
