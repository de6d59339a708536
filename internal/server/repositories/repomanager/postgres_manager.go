package repomanager

import (
	"context"
	"database/sql"

	"github.com/AnuraagTripathy/coding-assessment/internal/dbx"
	"github.com/AnuraagTripathy/coding-assessment/internal/server/migrations"
	"github.com/AnuraagTripathy/coding-assessment/internal/server/repositories/assignments"
	"github.com/AnuraagTripathy/coding-assessment/internal/server/repositories/products"
	"github.com/AnuraagTripathy/coding-assessment/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct {
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Products(db dbx.DBTX) products.Repository {
	return products.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Assignments(db dbx.DBTX) assignments.Repository {
	return assignments.NewPostgresRepository(db)
}

// RunMigrations applies the embedded schema and seed migrations. It is
// idempotent: goose tracks applied versions in its own table.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}
