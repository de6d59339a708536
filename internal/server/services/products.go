package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AnuraagTripathy/coding-assessment/internal/common"
	"github.com/AnuraagTripathy/coding-assessment/internal/server/models"
	"github.com/AnuraagTripathy/coding-assessment/internal/server/repositories/repomanager"
)

type ProductService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProductService(db *sql.DB, m repomanager.RepositoryManager) *ProductService {
	return &ProductService{db: db, repomanager: m}
}

func (s *ProductService) List(ctx context.Context) ([]*models.Product, error) {
	result, err := s.repomanager.Products(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}
	return result, nil
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.repomanager.Products(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error getting product %d: %w", id, err)
	}
	return product, nil
}
