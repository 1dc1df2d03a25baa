package user

import (
	"context"
	"errors"
	"testing"

	"gearph-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

type stubRepo struct {
	createErr    error
	created      *domain.User
	byEmail      *domain.User
	byEmailErr   error
	byID         *domain.User
	byIDErr      error
	touched      []string
	newHash      string
	deleted      []string
	deleteErr    error
	touchErr     error
	updateErr    error
	createCalls  int
	passwordSets int
}

func (s *stubRepo) Create(_ context.Context, u domain.User) (*domain.User, error) {
	s.createCalls++
	if s.createErr != nil {
		return nil, s.createErr
	}
	res := u
	res.ID = "u1"
	s.created = &res
	return &res, nil
}

func (s *stubRepo) GetByID(_ context.Context, _ string) (*domain.User, error) {
	if s.byIDErr != nil {
		return nil, s.byIDErr
	}
	return s.byID, nil
}

func (s *stubRepo) GetByEmail(_ context.Context, _ string) (*domain.User, error) {
	if s.byEmailErr != nil {
		return nil, s.byEmailErr
	}
	return s.byEmail, nil
}

func (s *stubRepo) List(_ context.Context) ([]domain.User, error) {
	return nil, nil
}

func (s *stubRepo) UpdateProfile(_ context.Context, u domain.User) (*domain.User, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &u, nil
}

func (s *stubRepo) UpdatePassword(_ context.Context, _ string, hash string) error {
	s.passwordSets++
	s.newHash = hash
	return nil
}

func (s *stubRepo) TouchLastLogin(_ context.Context, id string) error {
	s.touched = append(s.touched, id)
	return s.touchErr
}

func (s *stubRepo) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return s.deleteErr
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return string(hashed)
}

func TestSignupNormalizesEmailAndAssignsUserRole(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, nil)

	created, err := svc.Signup(context.Background(), SignupInput{
		Email:    "  Juan@Example.COM ",
		Password: "Str0ngPass",
		Name:     "Juan Dela Cruz",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Email != "juan@example.com" {
		t.Fatalf("expected lowercased email, got %q", created.Email)
	}
	if created.Role != domain.RoleUser {
		t.Fatalf("expected user role, got %q", created.Role)
	}
	if created.PasswordHash == "Str0ngPass" || created.PasswordHash == "" {
		t.Fatal("expected password stored hashed")
	}
}

func TestSignupPasswordPolicy(t *testing.T) {
	cases := map[string]string{
		"too short":    "Ab1",
		"no uppercase": "alllower1",
		"no lowercase": "ALLUPPER1",
		"no digit":     "NoDigitsHere",
	}
	for name, password := range cases {
		repo := &stubRepo{}
		svc := New(repo, nil)

		_, err := svc.Signup(context.Background(), SignupInput{
			Email:    "juan@example.com",
			Password: password,
			Name:     "Juan",
		})
		var verr domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
		if repo.createCalls != 0 {
			t.Fatalf("%s: expected no account created", name)
		}
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := New(&stubRepo{createErr: domain.ErrAlreadyExists}, nil)

	_, err := svc.Signup(context.Background(), SignupInput{
		Email:    "juan@example.com",
		Password: "Str0ngPass",
		Name:     "Juan",
	})
	var verr domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoginSuccessTouchesLastLogin(t *testing.T) {
	repo := &stubRepo{byEmail: &domain.User{
		ID:           "u1",
		Email:        "juan@example.com",
		PasswordHash: mustHash(t, "Str0ngPass"),
		Active:       true,
	}}
	svc := New(repo, nil)

	u, err := svc.Login(context.Background(), "juan@example.com", "Str0ngPass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != "u1" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if len(repo.touched) != 1 || repo.touched[0] != "u1" {
		t.Fatalf("expected last login touched, got %v", repo.touched)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &stubRepo{byEmail: &domain.User{
		ID:           "u1",
		PasswordHash: mustHash(t, "Str0ngPass"),
		Active:       true,
	}}
	svc := New(repo, nil)

	_, err := svc.Login(context.Background(), "juan@example.com", "WrongPass1")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := New(&stubRepo{byEmailErr: domain.ErrNotFound}, nil)

	_, err := svc.Login(context.Background(), "nobody@example.com", "Str0ngPass")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	repo := &stubRepo{byEmail: &domain.User{
		ID:           "u1",
		PasswordHash: mustHash(t, "Str0ngPass"),
		Active:       false,
	}}
	svc := New(repo, nil)

	_, err := svc.Login(context.Background(), "juan@example.com", "Str0ngPass")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	repo := &stubRepo{byID: &domain.User{
		ID:           "u1",
		PasswordHash: mustHash(t, "Str0ngPass"),
	}}
	svc := New(repo, nil)

	err := svc.ChangePassword(context.Background(), "u1", "WrongPass1", "NextPass99")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if repo.passwordSets != 0 {
		t.Fatal("expected password unchanged")
	}
}

func TestChangePasswordStoresNewHash(t *testing.T) {
	repo := &stubRepo{byID: &domain.User{
		ID:           "u1",
		PasswordHash: mustHash(t, "Str0ngPass"),
	}}
	svc := New(repo, nil)

	if err := svc.ChangePassword(context.Background(), "u1", "Str0ngPass", "NextPass99"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.passwordSets != 1 {
		t.Fatal("expected new hash stored")
	}
	if bcrypt.CompareHashAndPassword([]byte(repo.newHash), []byte("NextPass99")) != nil {
		t.Fatal("stored hash does not match new password")
	}
}

func TestChangePasswordPolicyAppliesToNew(t *testing.T) {
	repo := &stubRepo{byID: &domain.User{
		ID:           "u1",
		PasswordHash: mustHash(t, "Str0ngPass"),
	}}
	svc := New(repo, nil)

	err := svc.ChangePassword(context.Background(), "u1", "Str0ngPass", "weak")
	var verr domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteRejectsSelf(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, nil)

	err := svc.Delete(context.Background(), "admin1", "admin1")
	if !errors.Is(err, ErrSelfDelete) {
		t.Fatalf("expected ErrSelfDelete, got %v", err)
	}
	if len(repo.deleted) != 0 {
		t.Fatal("expected no deletion")
	}
}

func TestDeleteOtherUser(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, nil)

	if err := svc.Delete(context.Background(), "admin1", "u2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "u2" {
		t.Fatalf("expected u2 deleted, got %v", repo.deleted)
	}
}

func TestUpdateProfileRequiresName(t *testing.T) {
	svc := New(&stubRepo{}, nil)

	_, err := svc.UpdateProfile(context.Background(), "u1", ProfileInput{Name: "  "})
	var verr domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
