package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/atinyakov/tripwise/internal/models"
	"go.uber.org/zap"
)

// AuthRepository defines the persistence operations
// required by the identity service.
type AuthRepository interface {
	// Users returns the simulated user directory.
	Users(ctx context.Context) ([]models.User, error)
	// SaveUsers replaces the user directory.
	SaveUsers(ctx context.Context, users []models.User) error
	// Session returns the active user or nil.
	Session(ctx context.Context) (*models.User, error)
	// SaveSession makes u the active user.
	SaveSession(ctx context.Context, u models.User) error
	// ClearSession logs the active user out.
	ClearSession(ctx context.Context) error
}

// AuthService implements login, signup, logout and session lookup against
// the simulated user directory. There are no passwords: an email is enough.
type AuthService struct {
	repo AuthRepository
	opts Options
	// mu guards the directory and the session slot together.
	mu sync.Mutex
}

// NewAuthService constructs an AuthService using the provided repository.
func NewAuthService(repo AuthRepository, opts Options) *AuthService {
	return &AuthService{repo: repo, opts: opts.withDefaults()}
}

// Login signs in the user with the given email.
//
// With admin set, the directory must hold an administrator with that email;
// otherwise ErrInvalidAdminCredentials is returned. Without it, the matching
// regular user is used, or created on the fly with a name taken from the
// email's local part.
func (s *AuthService) Login(ctx context.Context, email string, admin bool) (models.User, error) {
	if err := wait(ctx, s.opts.Delays.Login); err != nil {
		return models.User{}, err
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return models.User{}, fmt.Errorf("email is required: %w", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.repo.Users(ctx)
	if err != nil {
		return models.User{}, err
	}

	if admin {
		u, ok := findUser(users, email, models.RoleAdmin)
		if !ok {
			return models.User{}, ErrInvalidAdminCredentials
		}
		return s.startSession(ctx, u)
	}

	u, ok := findUser(users, email, models.RoleUser)
	if !ok {
		u = models.User{
			ID:    s.opts.NewID(),
			Name:  localPart(email),
			Email: email,
			Role:  models.RoleUser,
		}
		users = append(users, u)
		if err := s.repo.SaveUsers(ctx, users); err != nil {
			return models.User{}, err
		}
		s.opts.Logger.Info("provisioned user on login", zap.String("id", u.ID))
	}
	return s.startSession(ctx, u)
}

// Signup registers a new regular user and signs them in. Any existing record
// with the same email, whatever its role, yields ErrUserExists.
func (s *AuthService) Signup(ctx context.Context, name, email string) (models.User, error) {
	if err := wait(ctx, s.opts.Delays.Signup); err != nil {
		return models.User{}, err
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return models.User{}, fmt.Errorf("email is required: %w", ErrInvalidInput)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = localPart(email)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.repo.Users(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if u.Email == email {
			return models.User{}, ErrUserExists
		}
	}

	u := models.User{
		ID:    s.opts.NewID(),
		Name:  name,
		Email: email,
		Role:  models.RoleUser,
	}
	if err := s.repo.SaveUsers(ctx, append(users, u)); err != nil {
		return models.User{}, err
	}
	return s.startSession(ctx, u)
}

// Logout clears the session slot whether or not anyone is signed in.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := wait(ctx, s.opts.Delays.Logout); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.ClearSession(ctx)
}

// CurrentUser returns the signed-in user, or nil when logged out. It does
// not simulate latency.
func (s *AuthService) CurrentUser(ctx context.Context) (*models.User, error) {
	return s.repo.Session(ctx)
}

func (s *AuthService) startSession(ctx context.Context, u models.User) (models.User, error) {
	if err := s.repo.SaveSession(ctx, u); err != nil {
		return models.User{}, err
	}
	s.opts.Logger.Debug("session started", zap.String("id", u.ID), zap.String("role", string(u.Role)))
	return u, nil
}

func findUser(users []models.User, email string, role models.Role) (models.User, bool) {
	for _, u := range users {
		if u.Email == email && u.Role == role {
			return u, true
		}
	}
	return models.User{}, false
}

func localPart(email string) string {
	before, _, _ := strings.Cut(email, "@")
	return before
}
