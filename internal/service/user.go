package service

import (
	"context"
	"strings"

	"github.com/doondisunkara/messy-migration/internal/entity"
	"github.com/doondisunkara/messy-migration/internal/errs"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the persistence contract the service depends on.
// The production implementation lives in the repository package; tests
// substitute an in-memory fake.
type UserRepository interface {
	List(ctx context.Context) ([]entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	SearchByName(ctx context.Context, fragment string) ([]entity.User, error)
	Insert(ctx context.Context, name, email, passwordHash string) (int64, error)
	Update(ctx context.Context, id int64, name, email string) error
	Delete(ctx context.Context, id int64) error
}

// UserService implements the user-management business rules: email
// normalization, password hashing, uniqueness checks and the outcome
// wording each endpoint promises.
type UserService struct {
	repo UserRepository
	log  *zerolog.Logger
}

// NewUserService constructs a UserService.
func NewUserService(repo UserRepository, log *zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

// NormalizeEmail trims surrounding whitespace and lowercases an email so
// uniqueness and lookup are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// List returns all users in insertion order.
func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	return s.repo.List(ctx)
}

// Get returns the user with the given id.
func (s *UserService) Get(ctx context.Context, id int64) (*entity.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Search returns all users whose name contains fragment.
func (s *UserService) Search(ctx context.Context, fragment string) ([]entity.User, error) {
	return s.repo.SearchByName(ctx, fragment)
}

// Create stores a new user with a bcrypt hash of the password and returns
// the assigned id.
//
// The duplicate pre-check gives the common case a clean 409; the unique
// constraint catches the race against a concurrent insert of the same
// email, surfacing as the same conflict error.
func (s *UserService) Create(ctx context.Context, name, email, password string) (int64, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)

	_, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return 0, errs.NewConflictError("Email already found, Enter another email")
	case !errs.IsNotFound(err):
		return 0, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, errs.NewInternalError(err.Error())
	}

	id, err := s.repo.Insert(ctx, name, email, string(hash))
	if err != nil {
		return 0, err
	}

	s.log.Info().Int64("user_id", id).Msg("user created")
	return id, nil
}

// Update replaces name and email of an existing user. The new email is
// normalized like on create and must not belong to a different record.
func (s *UserService) Update(ctx context.Context, id int64, name, email string) error {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)

	owner, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil && owner.ID != id:
		return errs.NewConflictError("Email already found, Enter another email")
	case err != nil && !errs.IsNotFound(err):
		return err
	}

	if err := s.repo.Update(ctx, id, name, email); err != nil {
		if errs.IsNotFound(err) {
			return errs.NewNotFoundError("Invalid User ID")
		}
		return err
	}

	s.log.Info().Int64("user_id", id).Msg("user updated")
	return nil
}

// Delete removes the user with the given id.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errs.IsNotFound(err) {
			return errs.NewNotFoundError("User Id Not Found")
		}
		return err
	}

	s.log.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

// Authenticate verifies email/password credentials and returns the matched
// user's id.
//
// A missing account and a wrong password produce the identical error, so a
// caller cannot tell which one happened (account enumeration resistance).
// bcrypt's comparison is constant-time over the hash.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (int64, error) {
	authFailure := errs.NewNotFoundError("Invalid Email or Password")

	user, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errs.IsNotFound(err) {
			return 0, authFailure
		}
		return 0, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return 0, authFailure
	}

	return user.ID, nil
}
