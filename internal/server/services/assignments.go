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

type AssignmentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewAssignmentService(db *sql.DB, m repomanager.RepositoryManager) *AssignmentService {
	return &AssignmentService{db: db, repomanager: m}
}

// Assign grants userID visibility into productID. The product must exist
// (common.ErrorNotFound otherwise); assigning an already-assigned pair is
// a normal outcome reported as created=false, not an error. The user is
// the authenticated principal, so its existence was established by the
// middleware; a concurrent deletion still surfaces as ErrorNotFound via
// the foreign-key constraint.
func (s *AssignmentService) Assign(ctx context.Context, userID string, productID int64) (bool, error) {

	if _, err := s.repomanager.Products(s.db).GetByID(ctx, productID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, err
		}
		return false, fmt.Errorf("error checking product %d: %w", productID, err)
	}

	created, err := s.repomanager.Assignments(s.db).Create(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, err
		}
		return false, fmt.Errorf("error assigning product %d: %w", productID, err)
	}

	return created, nil
}

// Unassign removes the pair. Removing a pair that was never assigned is
// common.ErrorNotFound, asymmetric with Assign on purpose.
func (s *AssignmentService) Unassign(ctx context.Context, userID string, productID int64) error {

	err := s.repomanager.Assignments(s.db).Delete(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return fmt.Errorf("error unassigning product %d: %w", productID, err)
	}

	return nil
}

func (s *AssignmentService) ListForUser(ctx context.Context, userID string) ([]*models.Product, error) {
	result, err := s.repomanager.Assignments(s.db).ListProductsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing assigned products: %w", err)
	}
	return result, nil
}
