package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/AnuraagTripathy/coding-assessment/internal/common"
	"github.com/AnuraagTripathy/coding-assessment/internal/server/models"
	"github.com/go-chi/chi/v5"
)

// Response projections. Persistence records never reach the wire
// directly: userResponse has no hash field at all, and productResponse
// carries the decoded fields list.

type userResponse struct {
	Username string  `json:"username"`
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Disabled bool    `json:"disabled"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		Disabled: u.Disabled,
	}
}

type productResponse struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	DataCategory string   `json:"dataCategory"`
	RecordCount  int64    `json:"recordCount"`
	Fields       []string `json:"fields"`
	Description  string   `json:"description"`
}

func newProductResponse(p *models.Product) productResponse {
	return productResponse{
		ID:           p.ID,
		Name:         p.Name,
		DataCategory: p.DataCategory,
		RecordCount:  p.RecordCount,
		Fields:       p.Fields,
		Description:  p.Description,
	}
}

func newProductResponses(items []*models.Product) []productResponse {
	result := make([]productResponse, 0, len(items))
	for _, p := range items {
		result = append(result, newProductResponse(p))
	}
	return result
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (s *HTTPServer) handlePing(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "OK"}, s.logger)
}

type registerRequest struct {
	Username string  `json:"username"`
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Password string  `json:"password"`
}

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(ctx, w, http.StatusBadRequest, "Invalid request body", s.logger)
		return
	}

	user, err := s.users.Register(ctx, req.Username, req.Email, req.FullName, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			respondWithError(ctx, w, http.StatusBadRequest, "Username already registered", s.logger)
		case errors.Is(err, common.ErrorValidation):
			respondWithError(ctx, w, http.StatusBadRequest, "Username and password are required", s.logger)
		default:
			s.logger.Error(ctx, "registration failed", "username", req.Username, "error", err)
			respondWithError(ctx, w, http.StatusInternalServerError, "Internal server error", s.logger)
		}
		return
	}

	s.logger.Info(ctx, "user registered", "username", user.Username)
	respondWithJSON(ctx, w, http.StatusOK, newUserResponse(user), s.logger)
}

// handleToken implements the password login flow: form-encoded username
// and password in, bearer token out.
func (s *HTTPServer) handleToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		respondWithError(ctx, w, http.StatusBadRequest, "Invalid form body", s.logger)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	token, err := s.users.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			respondWithError(ctx, w, http.StatusUnauthorized, "Incorrect username or password", s.logger)
			return
		}
		s.logger.Error(ctx, "login failed", "username", username, "error", err)
		respondWithError(ctx, w, http.StatusInternalServerError, "Internal server error", s.logger)
		return
	}

	respondWithJSON(ctx, w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"}, s.logger)
}

func (s *HTTPServer) handleUsersMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := principalFromContext(ctx)
	if !ok {
		respondWithError(ctx, w, http.StatusInternalServerError, "Internal server error", s.logger)
		return
	}

	respondWithJSON(ctx, w, http.StatusOK, newUserResponse(user), s.logger)
}

func (s *HTTPServer) handleUsersList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := s.users.List(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to list users", "error", err)
		respondWithError(ctx, w, http.StatusInternalServerError, "Internal server error", s.logger)
		return
	}

	result := make([]userResponse, 0, len(users))
	for _, u := range users {
		result = append(result, newUserResponse(u))
	}
	respondWithJSON(ctx, w, http.StatusOK, result, s.logger)
}

func (s *HTTPServer) handleProductsList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := s.products.List(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to list products", "error", err)
		respondWithError(ctx, w, http.StatusInternalServerError, "Internal server error", s.logger)
		return
	}

	respondWithJSON(ctx, w, http.StatusOK, newProductResponses(items), s.logger)
}

func productIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (s *HTTPServer) handleProductByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := productIDParam(r)
	if err != nil {
		respondWithError(ctx, w, http.StatusBadRequest, "Invalid product id", s.logger)
		return
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			respondWithError(ctx, w, http.StatusNotFound, "Product not found", s.logger)
			return
		}
		s.logger.Error(ctx, "failed to get product", "product_id", id, "error", err)
		respondWithError(ctx, w, http.StatusInternalServerError, "Internal server error", s.logger)
		return
	}

	respondWithJSON(ctx, w, http.StatusOK, newProductResponse(product), s.logger)
}

type assignRequest struct {
	ProductID int64 `json:"product_id"`
}

func (s *HTTPServer) handleAssignProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := principalFromContext(ctx)
	if !ok {
		respondWithError(ctx, w, http.StatusInternalServerError, "Internal server error", s.logger)
		return
	}

	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(ctx, w, http.StatusBadRequest, "Invalid request body", s.logger)
		return
	}

	created, err := s.assignments.Assign(ctx, user.ID, req.ProductID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			respondWithError(ctx, w, http.StatusNotFound, "Product not found", s.logger)
			return
		}
		s.logger.Error(ctx, "failed to assign product", "product_id", req.ProductID, "error", err)
		respondWithError(ctx, w, http.StatusInternalServerError, "Internal server error", s.logger)
		return
	}

	// a duplicate assignment is an observable outcome, not a failure
	message := fmt.Sprintf("Product %d assigned to user successfully", req.ProductID)
	if !created {
		message = "This product is already assigned to the user"
	}
	respondWithJSON(ctx, w, http.StatusOK, map[string]string{"message": message}, s.logger)
}

func (s *HTTPServer) handleUnassignProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := principalFromContext(ctx)
	if !ok {
		respondWithError(ctx, w, http.StatusInternalServerError, "Internal server error", s.logger)
		return
	}

	id, err := productIDParam(r)
	if err != nil {
		respondWithError(ctx, w, http.StatusBadRequest, "Invalid product id", s.logger)
		return
	}

	if err := s.assignments.Unassign(ctx, user.ID, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			respondWithError(ctx, w, http.StatusNotFound, "Product not assigned to user or doesn't exist", s.logger)
			return
		}
		s.logger.Error(ctx, "failed to unassign product", "product_id", id, "error", err)
		respondWithError(ctx, w, http.StatusInternalServerError, "Internal server error", s.logger)
		return
	}

	respondWithJSON(ctx, w, http.StatusOK,
		map[string]string{"message": fmt.Sprintf("Product %d unassigned from user successfully", id)}, s.logger)
}

func (s *HTTPServer) handleMyProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := principalFromContext(ctx)
	if !ok {
		respondWithError(ctx, w, http.StatusInternalServerError, "Internal server error", s.logger)
		return
	}

	items, err := s.assignments.ListForUser(ctx, user.ID)
	if err != nil {
		s.logger.Error(ctx, "failed to list assigned products", "error", err)
		respondWithError(ctx, w, http.StatusInternalServerError, "Internal server error", s.logger)
		return
	}

	respondWithJSON(ctx, w, http.StatusOK, newProductResponses(items), s.logger)
}

func (s *HTTPServer) handleProtectedResource(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := principalFromContext(ctx)
	if !ok {
		respondWithError(ctx, w, http.StatusInternalServerError, "Internal server error", s.logger)
		return
	}

	respondWithJSON(ctx, w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Hello, %s! This is a protected resource.", user.Username),
		"data":    "Some valuable protected data",
	}, s.logger)
}
