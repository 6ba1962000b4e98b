package customer

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"venyr-storefront/internal/domain"
	tokenrepo "venyr-storefront/internal/repository/token"
)

type stubCustomerRepo struct {
	created   *domain.Customer
	createErr error
	byEmail   *domain.Customer
	emailErr  error
	byID      *domain.Customer
	idErr     error
}

func (s *stubCustomerRepo) Create(_ context.Context, c domain.Customer) (*domain.Customer, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	c.ID = "cust-1"
	s.created = &c
	return &c, nil
}

func (s *stubCustomerRepo) GetByEmail(_ context.Context, _ string) (*domain.Customer, error) {
	return s.byEmail, s.emailErr
}

func (s *stubCustomerRepo) GetByID(_ context.Context, _ string) (*domain.Customer, error) {
	return s.byID, s.idErr
}

type memTokenRepo struct {
	tokens    map[string]tokenrepo.Token
	createErr error
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: map[string]tokenrepo.Token{}}
}

func (s *memTokenRepo) Create(_ context.Context, t tokenrepo.Token) error {
	if s.createErr != nil {
		return s.createErr
	}
	if _, ok := s.tokens[t.Token]; ok {
		return domain.ErrAlreadyExists
	}
	s.tokens[t.Token] = t
	return nil
}

func (s *memTokenRepo) Get(_ context.Context, token string) (*tokenrepo.Token, error) {
	t, ok := s.tokens[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (s *memTokenRepo) Delete(_ context.Context, token string) error {
	delete(s.tokens, token)
	return nil
}

func TestSignupHashesPassword(t *testing.T) {
	repo := &stubCustomerRepo{}
	svc := New(repo, newMemTokenRepo())

	cust, err := svc.Signup(context.Background(), SignupInput{
		Email:     "  Buyer@Example.COM ",
		Password:  "Abcdefg1",
		FirstName: "Ada",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cust.Email != "buyer@example.com" {
		t.Fatalf("expected normalized email, got %q", cust.Email)
	}
	if repo.created.PasswordHash == "Abcdefg1" {
		t.Fatal("password must not be stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(repo.created.PasswordHash), []byte("Abcdefg1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestSignupValidation(t *testing.T) {
	svc := New(&stubCustomerRepo{}, newMemTokenRepo())

	cases := []SignupInput{
		{Email: "", Password: "Abcdefg1"},
		{Email: "a@b.c", Password: "short1"},
		{Email: "a@b.c", Password: "lettersonly"},
		{Email: "a@b.c", Password: "12345678"},
	}
	for _, in := range cases {
		if _, err := svc.Signup(context.Background(), in); err == nil {
			t.Fatalf("expected validation error for %+v", in)
		}
	}
}

func TestLoginIssuesTokens(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Abcdefg1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	existing := &domain.Customer{ID: "cust-1", Email: "buyer@example.com", PasswordHash: string(hash)}
	tokens := newMemTokenRepo()
	svc := New(&stubCustomerRepo{byEmail: existing, byID: existing}, tokens)

	cust, access, refresh, err := svc.Login(context.Background(), "buyer@example.com", "Abcdefg1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cust.ID != "cust-1" || access == "" || refresh == "" || access == refresh {
		t.Fatalf("unexpected login result %q/%q", access, refresh)
	}

	got, err := svc.LookupByToken(context.Background(), access)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "cust-1" {
		t.Fatalf("expected cust-1, got %q", got.ID)
	}

	// Refresh tokens are not valid as access tokens.
	if _, err := svc.LookupByToken(context.Background(), refresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for refresh token, got %v", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("Abcdefg1"), bcrypt.MinCost)
	existing := &domain.Customer{ID: "cust-1", PasswordHash: string(hash)}

	svc := New(&stubCustomerRepo{byEmail: existing}, newMemTokenRepo())
	if _, _, _, err := svc.Login(context.Background(), "buyer@example.com", "wrong-pass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	svc = New(&stubCustomerRepo{emailErr: domain.ErrNotFound}, newMemTokenRepo())
	if _, _, _, err := svc.Login(context.Background(), "nobody@example.com", "Abcdefg1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestLookupByTokenExpired(t *testing.T) {
	existing := &domain.Customer{ID: "cust-1"}
	tokens := newMemTokenRepo()
	svc := New(&stubCustomerRepo{byID: existing}, tokens)

	tokens.tokens["stale"] = tokenrepo.Token{
		Token:      "stale",
		CustomerID: "cust-1",
		Kind:       "access",
		ExpiresAt:  time.Now().Add(-time.Minute),
	}

	if _, err := svc.LookupByToken(context.Background(), "stale"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
	if _, ok := tokens.tokens["stale"]; ok {
		t.Fatal("expected expired token to be deleted")
	}
}
