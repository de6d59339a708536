package assignments

import (
	"context"
	"fmt"

	"github.com/AnuraagTripathy/coding-assessment/internal/common"
	"github.com/AnuraagTripathy/coding-assessment/internal/dbx"
	"github.com/AnuraagTripathy/coding-assessment/internal/server/models"
	"github.com/AnuraagTripathy/coding-assessment/internal/server/repositories/products"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the pair, treating a duplicate as a no-op: ON CONFLICT
// DO NOTHING also absorbs a concurrent insert losing the race on the
// primary key. A foreign-key violation means the user or product vanished
// between validation and insert and is reported as common.ErrorNotFound.
func (r *PostgresRepository) Create(ctx context.Context, userID string, productID int64) (bool, error) {

	query :=
		`INSERT INTO user_products (user_id, product_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, product_id) DO NOTHING
		 `

	res, err := r.db.ExecContext(ctx, query, userID, productID)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return false, common.ErrorNotFound
		}
		return false, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return affected > 0, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID string, productID int64) error {

	query :=
		`DELETE FROM user_products
		 WHERE user_id = $1 AND product_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) ListProductsForUser(ctx context.Context, userID string) ([]*models.Product, error) {

	query :=
		`SELECT p.id, p.name, p.data_category, p.record_count, p.fields, p.description
		 FROM products p
		 JOIN user_products up ON p.id = up.product_id
		 WHERE up.user_id = $1
		 ORDER BY up.seq
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return products.ScanProducts(rows)
}
