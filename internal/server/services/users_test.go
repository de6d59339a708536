package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AnuraagTripathy/coding-assessment/internal/common"
	"github.com/AnuraagTripathy/coding-assessment/internal/server/auth"
	"github.com/AnuraagTripathy/coding-assessment/internal/server/config"
	"github.com/AnuraagTripathy/coding-assessment/internal/server/models"
)

func newUserService(t *testing.T, rm *fakeRepoManager) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                   "k",
		AccessTokenValidityDuration: time.Hour,
	}
	return NewUserService(nil, rm, cfg)
}

func strptr(s string) *string { return &s }

func TestRegister_Success(t *testing.T) {
	rm := &fakeRepoManager{users: &fakeUsersRepo{}}
	s := newUserService(t, rm)

	got, err := s.Register(context.Background(), "alice", strptr("a@example.com"), strptr("Alice A"), "pw1")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if got.Username != "alice" || got.ID == "" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if got.Disabled {
		t.Fatal("new users must not be disabled")
	}
	if got.HashedPassword == "pw1" || got.HashedPassword == "" {
		t.Fatalf("password must be stored hashed, got %q", got.HashedPassword)
	}
	if !auth.CheckPassword("pw1", got.HashedPassword) {
		t.Fatal("stored hash must verify against the original password")
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	rm := &fakeRepoManager{users: &fakeUsersRepo{createErr: common.ErrorAlreadyExists}}
	s := newUserService(t, rm)

	_, err := s.Register(context.Background(), "alice", nil, nil, "pw1")
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestRegister_EmptyInput(t *testing.T) {
	rm := &fakeRepoManager{users: &fakeUsersRepo{}}
	s := newUserService(t, rm)

	if _, err := s.Register(context.Background(), "", nil, nil, "pw1"); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("want common.ErrorValidation for empty username, got %v", err)
	}
	if _, err := s.Register(context.Background(), "alice", nil, nil, ""); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("want common.ErrorValidation for empty password, got %v", err)
	}
}

func userWithPassword(t *testing.T, username, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	return &models.User{ID: "u-1", Username: username, HashedPassword: hash}
}

func TestLogin_Success(t *testing.T) {
	user := userWithPassword(t, "alice", "pw1")
	rm := &fakeRepoManager{users: &fakeUsersRepo{getOut: user}}
	s := newUserService(t, rm)

	token, err := s.Login(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	subject, err := auth.GetUsernameFromToken(token, []byte("k"))
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if subject != "alice" {
		t.Fatalf("token subject = %q, want alice", subject)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	user := userWithPassword(t, "alice", "pw1")
	rm := &fakeRepoManager{users: &fakeUsersRepo{getOut: user}}
	s := newUserService(t, rm)

	_, err := s.Login(context.Background(), "alice", "wrong")
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("want common.ErrorUnauthorized, got %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	rm := &fakeRepoManager{users: &fakeUsersRepo{getErr: common.ErrorNotFound}}
	s := newUserService(t, rm)

	_, err := s.Login(context.Background(), "ghost", "pw")
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("want common.ErrorUnauthorized, got %v", err)
	}
}

func TestLogin_DisabledUserStillGetsToken(t *testing.T) {
	user := userWithPassword(t, "alice", "pw1")
	user.Disabled = true
	rm := &fakeRepoManager{users: &fakeUsersRepo{getOut: user}}
	s := newUserService(t, rm)

	// login does not gate on the disabled flag; the middleware does
	if _, err := s.Login(context.Background(), "alice", "pw1"); err != nil {
		t.Fatalf("Login error: %v", err)
	}
}

func TestResolveActive_Success(t *testing.T) {
	user := userWithPassword(t, "alice", "pw1")
	rm := &fakeRepoManager{users: &fakeUsersRepo{getOut: user}}
	s := newUserService(t, rm)

	token, err := auth.GenerateToken("alice", []byte("k"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	got, err := s.ResolveActive(context.Background(), token)
	if err != nil {
		t.Fatalf("ResolveActive error: %v", err)
	}
	if got.Username != "alice" {
		t.Fatalf("unexpected principal: %+v", got)
	}
}

func TestResolveActive_DisabledUser(t *testing.T) {
	user := userWithPassword(t, "alice", "pw1")
	user.Disabled = true
	rm := &fakeRepoManager{users: &fakeUsersRepo{getOut: user}}
	s := newUserService(t, rm)

	token, err := auth.GenerateToken("alice", []byte("k"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = s.ResolveActive(context.Background(), token)
	if !errors.Is(err, common.ErrorUserDisabled) {
		t.Fatalf("want common.ErrorUserDisabled, got %v", err)
	}
}

func TestResolveActive_UnknownSubject(t *testing.T) {
	rm := &fakeRepoManager{users: &fakeUsersRepo{getErr: common.ErrorNotFound}}
	s := newUserService(t, rm)

	token, err := auth.GenerateToken("ghost", []byte("k"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = s.ResolveActive(context.Background(), token)
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("want common.ErrorUnauthorized, got %v", err)
	}
}

func TestResolveActive_BadToken(t *testing.T) {
	rm := &fakeRepoManager{users: &fakeUsersRepo{}}
	s := newUserService(t, rm)

	if _, err := s.ResolveActive(context.Background(), "not.a.jwt"); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("want common.ErrorUnauthorized for malformed token, got %v", err)
	}

	expired, err := auth.GenerateToken("alice", []byte("k"), -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	if _, err := s.ResolveActive(context.Background(), expired); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("want common.ErrorUnauthorized for expired token, got %v", err)
	}
}

func TestList_PassesThrough(t *testing.T) {
	want := []*models.User{
		{ID: "u-1", Username: "alice"},
		{ID: "u-2", Username: "bob"},
	}
	rm := &fakeRepoManager{users: &fakeUsersRepo{listOut: want}}
	s := newUserService(t, rm)

	got, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].Username != "alice" {
		t.Fatalf("unexpected users: %+v", got)
	}
}
