// Package httpapi exposes the catalog service over HTTP: public
// registration and token endpoints plus the bearer-token protected
// catalog and assignment routes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/AnuraagTripathy/coding-assessment/internal/logging"
	"github.com/AnuraagTripathy/coding-assessment/internal/server/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// UserProvider is the slice of the user service the HTTP layer consumes.
type UserProvider interface {
	Register(ctx context.Context, username string, email, fullName *string, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	ResolveActive(ctx context.Context, tokenString string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
}

type ProductProvider interface {
	List(ctx context.Context) ([]*models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
}

type AssignmentProvider interface {
	Assign(ctx context.Context, userID string, productID int64) (bool, error)
	Unassign(ctx context.Context, userID string, productID int64) error
	ListForUser(ctx context.Context, userID string) ([]*models.Product, error)
}

type HTTPServer struct {
	address       string
	allowedOrigin string
	logger        logging.Logger
	users         UserProvider
	products      ProductProvider
	assignments   AssignmentProvider
}

func NewHTTPServer(a string, allowedOrigin string, l logging.Logger,
	us UserProvider, ps ProductProvider, as AssignmentProvider) *HTTPServer {
	return &HTTPServer{
		address:       a,
		allowedOrigin: allowedOrigin,
		logger:        l.With("module", "http_server"),
		users:         us,
		products:      ps,
		assignments:   as,
	}
}

// Router assembles the chi router: CORS for the single configured
// origin, panic recovery, request logging, and the route table with the
// bearer-token middleware on the protected subtree.
func (s *HTTPServer) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/ping", s.handlePing)
	r.Post("/register", s.handleRegister)
	r.Post("/token", s.handleToken)

	r.Group(func(r chi.Router) {
		r.Use(s.requireUser)

		r.Get("/users/me", s.handleUsersMe)
		r.Get("/users", s.handleUsersList)
		r.Get("/products", s.handleProductsList)
		r.Get("/products/{id}", s.handleProductByID)
		r.Post("/assign-product", s.handleAssignProduct)
		r.Delete("/unassign-product/{id}", s.handleUnassignProduct)
		r.Get("/my-products", s.handleMyProducts)
		r.Get("/protected-resource", s.handleProtectedResource)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "graceful shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
