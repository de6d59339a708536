package products

import (
	"context"

	"github.com/AnuraagTripathy/coding-assessment/internal/server/models"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	List(ctx context.Context) ([]*models.Product, error)
}
