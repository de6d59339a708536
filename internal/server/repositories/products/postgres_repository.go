package products

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/AnuraagTripathy/coding-assessment/internal/common"
	"github.com/AnuraagTripathy/coding-assessment/internal/dbx"
	"github.com/AnuraagTripathy/coding-assessment/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	query :=
		`SELECT id, name, data_category, record_count, fields, description FROM products
		 WHERE id = $1
		 `

	product := &models.Product{}
	var fields []byte
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&product.ID, &product.Name, &product.DataCategory, &product.RecordCount, &fields, &product.Description)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := json.Unmarshal(fields, &product.Fields); err != nil {
		return nil, fmt.Errorf("decoding fields of product %d: %w", product.ID, err)
	}

	return product, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Product, error) {
	query :=
		`SELECT id, name, data_category, record_count, fields, description FROM products
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return ScanProducts(rows)
}

// ScanProducts drains rows into product records, decoding the serialized
// fields list of each. Also used by the assignments repository for its
// join query.
func ScanProducts(rows *sql.Rows) ([]*models.Product, error) {
	var result []*models.Product

	for rows.Next() {
		product := &models.Product{}
		var fields []byte
		if err := rows.Scan(&product.ID, &product.Name, &product.DataCategory,
			&product.RecordCount, &fields, &product.Description); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if err := json.Unmarshal(fields, &product.Fields); err != nil {
			return nil, fmt.Errorf("decoding fields of product %d: %w", product.ID, err)
		}
		result = append(result, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
