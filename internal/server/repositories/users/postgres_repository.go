package users

import (
	"context"
	"database/sql"
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

// Create inserts a new user row. A duplicate username, including one
// produced by a concurrent registration losing the race on the unique
// index, is reported as common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (id, username, email, full_name, hashed_password, disabled)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Username, user.Email, user.FullName, user.HashedPassword, user.Disabled).
		Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query :=
		`SELECT id, username, email, full_name, hashed_password, disabled, created_at FROM users
		 WHERE username = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.Email, &user.FullName, &user.HashedPassword, &user.Disabled, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {
	query :=
		`SELECT id, username, email, full_name, hashed_password, disabled, created_at FROM users
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.FullName,
			&user.HashedPassword, &user.Disabled, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
