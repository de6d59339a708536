package services

import (
	"context"
	"database/sql"

	"github.com/AnuraagTripathy/coding-assessment/internal/dbx"
	"github.com/AnuraagTripathy/coding-assessment/internal/server/models"
	assignmentsrepo "github.com/AnuraagTripathy/coding-assessment/internal/server/repositories/assignments"
	productsrepo "github.com/AnuraagTripathy/coding-assessment/internal/server/repositories/products"
	usersrepo "github.com/AnuraagTripathy/coding-assessment/internal/server/repositories/users"
)

// ---- fakes ----

type fakeUsersRepo struct {
	createErr error

	getOut *models.User
	getErr error

	listOut []*models.User
	listErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]*models.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

type fakeProductsRepo struct {
	getOut *models.Product
	getErr error

	listOut []*models.Product
	listErr error
}

func (f *fakeProductsRepo) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeProductsRepo) List(ctx context.Context) ([]*models.Product, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

type fakeAssignmentsRepo struct {
	createCalls   int
	createCreated bool
	createErr     error

	deleteErr error

	listOut []*models.Product
	listErr error
}

func (f *fakeAssignmentsRepo) Create(ctx context.Context, userID string, productID int64) (bool, error) {
	f.createCalls++
	if f.createErr != nil {
		return false, f.createErr
	}
	return f.createCreated, nil
}

func (f *fakeAssignmentsRepo) Delete(ctx context.Context, userID string, productID int64) error {
	return f.deleteErr
}

func (f *fakeAssignmentsRepo) ListProductsForUser(ctx context.Context, userID string) ([]*models.Product, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

type fakeRepoManager struct {
	users       *fakeUsersRepo
	products    *fakeProductsRepo
	assignments *fakeAssignmentsRepo
}

func (f *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

func (f *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository { return f.users }

func (f *fakeRepoManager) Products(db dbx.DBTX) productsrepo.Repository { return f.products }

func (f *fakeRepoManager) Assignments(db dbx.DBTX) assignmentsrepo.Repository {
	return f.assignments
}
