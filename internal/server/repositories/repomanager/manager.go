package repomanager

import (
	"context"
	"database/sql"

	"github.com/AnuraagTripathy/coding-assessment/internal/dbx"
	"github.com/AnuraagTripathy/coding-assessment/internal/server/repositories/assignments"
	"github.com/AnuraagTripathy/coding-assessment/internal/server/repositories/products"
	"github.com/AnuraagTripathy/coding-assessment/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Products(db dbx.DBTX) products.Repository
	Assignments(db dbx.DBTX) assignments.Repository
}
