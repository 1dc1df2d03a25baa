package user

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"gearph-api/internal/domain"
	userrepo "gearph-api/internal/repository/user"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSelfDelete is returned when an admin tries to delete their own
	// account.
	ErrSelfDelete = errors.New("cannot delete own account")
)

// Service handles signup, login, profile, and admin user management.
type Service struct {
	repo        userrepo.Repository
	logger      *log.Logger
	passwordMin int
}

func New(repo userrepo.Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, logger: logger, passwordMin: 8}
}

// SignupInput captures fields expected by the signup endpoint.
type SignupInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

// Signup registers a new account with the user role.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.Validationf("valid email required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Validationf("name required")
	}
	password := strings.TrimSpace(in.Password)
	if err := validatePassword(password, s.passwordMin); err != nil {
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, domain.User{
		Email:        email,
		PasswordHash: string(hashed),
		Name:         strings.TrimSpace(in.Name),
		Role:         domain.RoleUser,
		Phone:        strings.TrimSpace(in.Phone),
		Preferences:  domain.Preferences{Notifications: true},
		Active:       true,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.Validationf("email already registered")
		}
		return nil, err
	}
	s.logger.Printf("user service: signed up id=%s email=%s", created.ID, created.Email)
	return created, nil
}

// Login validates credentials and records the login time.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.Active {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(strings.TrimSpace(password))); err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.repo.TouchLastLogin(ctx, u.ID); err != nil {
		s.logger.Printf("user service: touch last login id=%s: %v", u.ID, err)
	}
	return u, nil
}

// Get returns one user by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// ProfileInput carries the editable profile fields.
type ProfileInput struct {
	Name        string             `json:"name"`
	Phone       string             `json:"phone"`
	Address     string             `json:"address"`
	Avatar      string             `json:"avatar"`
	Preferences domain.Preferences `json:"preferences"`
}

// UpdateProfile edits the caller's own profile. Historical orders keep
// their contact snapshots regardless.
func (s *Service) UpdateProfile(ctx context.Context, id string, in ProfileInput) (*domain.User, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Validationf("name required")
	}
	return s.repo.UpdateProfile(ctx, domain.User{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Phone:       strings.TrimSpace(in.Phone),
		Address:     strings.TrimSpace(in.Address),
		Avatar:      strings.TrimSpace(in.Avatar),
		Preferences: in.Preferences,
	})
}

// ChangePassword verifies the current password before storing the new
// hash.
func (s *Service) ChangePassword(ctx context.Context, id, current, next string) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(strings.TrimSpace(current))); err != nil {
		return ErrInvalidCredentials
	}
	next = strings.TrimSpace(next)
	if err := validatePassword(next, s.passwordMin); err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, id, string(hashed)); err != nil {
		return err
	}
	s.logger.Printf("user service: password changed id=%s", id)
	return nil
}

// List returns every account for the admin view.
func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// Delete removes an account. An admin cannot delete themself.
func (s *Service) Delete(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return ErrSelfDelete
	}
	if err := s.repo.Delete(ctx, targetID); err != nil {
		return err
	}
	s.logger.Printf("user service: deleted id=%s by=%s", targetID, actorID)
	return nil
}

func validatePassword(p string, min int) error {
	if len(p) < min {
		return domain.Validationf("password must be at least %d characters", min)
	}
	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return domain.ValidationError("password must contain at least 1 uppercase letter, 1 lowercase letter, and 1 number")
	}
	return nil
}
