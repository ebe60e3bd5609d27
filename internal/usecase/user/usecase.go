package user

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	domain "user-account-service/internal/domain/user"
	pkgerrors "user-account-service/pkg/errors"
	"user-account-service/pkg/security"

	"github.com/go-playground/validator/v10"
)

// Repository defines the interface for user persistence operations.
// It abstracts the data layer, allowing different implementations
// (e.g., PostgreSQL, an in-memory fake) to be used interchangeably.
// Absence is reported as (nil, nil), never as an error.
//
// Save expects a fully populated entity, normally one freshly returned by a
// Find or a previous Save; callers must not save partially constructed
// entities with an ID set.
type Repository interface {
	Save(ctx context.Context, u *domain.User) (*domain.User, error)      // Insert when ID is zero, otherwise update the row matched by ID
	FindByID(ctx context.Context, id int64) (*domain.User, error)        // Retrieve user by ID, nil when absent
	FindByEmail(ctx context.Context, email string) (*domain.User, error) // Retrieve user by email, nil when absent
}

// Service implements the business logic for user account operations.
// It provides a clean separation between the transport layer and data layer.
type Service struct {
	repo     Repository          // Repository for persistence
	hasher   security.Hasher     // Hasher for password credentials
	log      *zap.Logger         // Logger for structured logging
	validate *validator.Validate // Validator for request validation
}

// New creates a new instance of Service with the provided repository, hasher, and logger.
func New(r Repository, h security.Hasher, log *zap.Logger) *Service {
	return &Service{repo: r, hasher: h, log: log, validate: validator.New()}
}

// formatValidationError converts validator.ValidationErrors into a human-readable error.
func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
			case "email":
				messages = append(messages, fmt.Sprintf("%s must be a valid email", e.Field()))
			case "min":
				messages = append(messages, fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param()))
			case "max":
				messages = append(messages, fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param()))
			case "gt":
				messages = append(messages, fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param()))
			default:
				messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
			}
		}
		return pkgerrors.NewValidationError("", strings.Join(messages, ", "))
	}
	return err
}

// toResponse maps a domain entity to the outgoing DTO. The password hash
// never crosses this boundary.
func toResponse(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		IsActive: u.IsActive,
	}
}

// CreateUser creates a new user after validating the request and checking
// email uniqueness. The plaintext password is hashed before the entity is
// constructed; on a duplicate email nothing is persisted.
func (s *Service) CreateUser(ctx context.Context, in CreateUserRequest) (*UserResponse, error) {
	s.log.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	existing, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		s.log.Error("failed to check existing email", zap.String("email", in.Email), zap.Error(err))
		return nil, fmt.Errorf("failed to validate email uniqueness: %w", err)
	}
	if existing != nil {
		s.log.Warn("email already registered", zap.String("email", in.Email))
		return nil, pkgerrors.NewAlreadyExistsError("user", "email already registered")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		s.log.Error("failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	saved, err := s.repo.Save(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		IsActive:     true,
	})
	if err != nil {
		s.log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	s.log.Info("user created", zap.Int64("id", saved.ID))
	return toResponse(saved), nil
}

// DeactivateUser soft-deletes a user: the freshly loaded entity is marked
// inactive and saved back, so every other persisted field is preserved.
// Deactivating an already-inactive user succeeds again; the operation is
// idempotent.
func (s *Service) DeactivateUser(ctx context.Context, in DeactivateUserRequest) (*UserResponse, error) {
	s.log.Info("deactivating user", zap.Int64("id", in.ID))

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	u, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		s.log.Error("failed to load user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}
	if u == nil {
		s.log.Warn("user not found", zap.Int64("id", in.ID))
		return nil, pkgerrors.NewNotFoundError("user", fmt.Sprintf("user not found: id=%d", in.ID))
	}

	u.Deactivate()

	saved, err := s.repo.Save(ctx, u)
	if err != nil {
		s.log.Error("failed to deactivate user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	s.log.Info("user deactivated", zap.Int64("id", saved.ID))
	return toResponse(saved), nil
}
