package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap/zaptest"

	domain "user-account-service/internal/domain/user"
	pkgerrors "user-account-service/pkg/errors"
)

// MockRepository is a mock implementation of the Repository interface.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Save(ctx context.Context, u *domain.User) (*domain.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockHasher is a mock implementation of the security.Hasher interface.
type MockHasher struct {
	mock.Mock
}

func (m *MockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockHasher) Verify(password, hash string) bool {
	args := m.Called(password, hash)
	return args.Bool(0)
}

// Test helper to create a service with mock collaborators
func setupTestService(t *testing.T) (*Service, *MockRepository, *MockHasher) {
	mockRepo := new(MockRepository)
	mockHasher := new(MockHasher)
	logger := zaptest.NewLogger(t)
	svc := New(mockRepo, mockHasher, logger)
	return svc, mockRepo, mockHasher
}

// ==================== CREATE USER TESTS ====================

func TestCreateUser_Success(t *testing.T) {
	svc, mockRepo, mockHasher := setupTestService(t)
	ctx := context.Background()

	req := CreateUserRequest{
		Name:     "Alice",
		Email:    "alice@x.com",
		Password: "password1",
	}

	// Email not yet registered
	mockRepo.On("FindByEmail", ctx, req.Email).Return(nil, nil)
	mockHasher.On("Hash", req.Password).Return("$2a$10$hash", nil)
	// Save assigns the store ID
	mockRepo.On("Save", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == 0 && u.Name == req.Name && u.Email == req.Email &&
			u.PasswordHash == "$2a$10$hash" && u.IsActive
	})).Return(&domain.User{
		ID:           1,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: "$2a$10$hash",
		IsActive:     true,
	}, nil)

	resp, err := svc.CreateUser(ctx, req)

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "Alice", resp.Name)
	assert.Equal(t, "alice@x.com", resp.Email)
	assert.True(t, resp.IsActive)

	mockRepo.AssertExpectations(t)
	mockHasher.AssertExpectations(t)
}

func TestCreateUser_ValidationError_NameRequired(t *testing.T) {
	svc, _, _ := setupTestService(t)
	ctx := context.Background()

	req := CreateUserRequest{
		Name:     "", // Empty name
		Email:    "alice@x.com",
		Password: "password1",
	}

	resp, err := svc.CreateUser(ctx, req)

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "Name is required")
}

func TestCreateUser_ValidationError_EmailInvalid(t *testing.T) {
	svc, _, _ := setupTestService(t)
	ctx := context.Background()

	req := CreateUserRequest{
		Name:     "Alice",
		Email:    "invalid-email",
		Password: "password1",
	}

	resp, err := svc.CreateUser(ctx, req)

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "Email must be a valid email")
}

func TestCreateUser_ValidationError_PasswordTooShort(t *testing.T) {
	svc, _, _ := setupTestService(t)
	ctx := context.Background()

	req := CreateUserRequest{
		Name:     "Alice",
		Email:    "alice@x.com",
		Password: "short",
	}

	resp, err := svc.CreateUser(ctx, req)

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "Password must be at least 8 characters")
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc, mockRepo, _ := setupTestService(t)
	ctx := context.Background()

	req := CreateUserRequest{
		Name:     "Alice",
		Email:    "alice@x.com",
		Password: "password1",
	}

	existing := &domain.User{ID: 2, Name: "Existing", Email: "alice@x.com", IsActive: true}
	mockRepo.On("FindByEmail", ctx, req.Email).Return(existing, nil)

	resp, err := svc.CreateUser(ctx, req)

	assert.Error(t, err)
	assert.Nil(t, resp)

	var dup *pkgerrors.AlreadyExistsError
	assert.ErrorAs(t, err, &dup)

	// No Save must have happened on the duplicate path
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestCreateUser_EmailCheckFails(t *testing.T) {
	svc, mockRepo, _ := setupTestService(t)
	ctx := context.Background()

	req := CreateUserRequest{
		Name:     "Alice",
		Email:    "alice@x.com",
		Password: "password1",
	}

	mockRepo.On("FindByEmail", ctx, req.Email).Return(nil, errors.New("connection refused"))

	resp, err := svc.CreateUser(ctx, req)

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "failed to validate email uniqueness")

	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateUser_HashFails(t *testing.T) {
	svc, mockRepo, mockHasher := setupTestService(t)
	ctx := context.Background()

	req := CreateUserRequest{
		Name:     "Alice",
		Email:    "alice@x.com",
		Password: "password1",
	}

	mockRepo.On("FindByEmail", ctx, req.Email).Return(nil, nil)
	mockHasher.On("Hash", req.Password).Return("", errors.New("entropy source unavailable"))

	resp, err := svc.CreateUser(ctx, req)

	assert.Error(t, err)
	assert.Nil(t, resp)

	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// ==================== DEACTIVATE USER TESTS ====================

func TestDeactivateUser_Success(t *testing.T) {
	svc, mockRepo, _ := setupTestService(t)
	ctx := context.Background()

	stored := &domain.User{
		ID:           1,
		Name:         "Alice",
		Email:        "alice@x.com",
		PasswordHash: "$2a$10$hash",
		IsActive:     true,
	}

	mockRepo.On("FindByID", ctx, int64(1)).Return(stored, nil)
	// The saved entity must be the freshly loaded record with only IsActive flipped
	mockRepo.On("Save", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == 1 && u.Name == "Alice" && u.Email == "alice@x.com" &&
			u.PasswordHash == "$2a$10$hash" && !u.IsActive
	})).Return(&domain.User{
		ID:           1,
		Name:         "Alice",
		Email:        "alice@x.com",
		PasswordHash: "$2a$10$hash",
		IsActive:     false,
	}, nil)

	resp, err := svc.DeactivateUser(ctx, DeactivateUserRequest{ID: 1})

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, int64(1), resp.ID)
	assert.False(t, resp.IsActive)

	mockRepo.AssertExpectations(t)
}

func TestDeactivateUser_NotFound(t *testing.T) {
	svc, mockRepo, _ := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("FindByID", ctx, int64(999)).Return(nil, nil)

	resp, err := svc.DeactivateUser(ctx, DeactivateUserRequest{ID: 999})

	assert.Error(t, err)
	assert.Nil(t, resp)

	var notFound *pkgerrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)

	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDeactivateUser_AlreadyInactive_Idempotent(t *testing.T) {
	svc, mockRepo, _ := setupTestService(t)
	ctx := context.Background()

	// Record already soft-deleted; a second deactivation still succeeds
	stored := &domain.User{
		ID:           1,
		Name:         "Alice",
		Email:        "alice@x.com",
		PasswordHash: "$2a$10$hash",
		IsActive:     false,
	}

	mockRepo.On("FindByID", ctx, int64(1)).Return(stored, nil)
	mockRepo.On("Save", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == 1 && !u.IsActive
	})).Return(stored, nil)

	resp, err := svc.DeactivateUser(ctx, DeactivateUserRequest{ID: 1})

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.False(t, resp.IsActive)

	mockRepo.AssertExpectations(t)
}

func TestDeactivateUser_InvalidID(t *testing.T) {
	svc, _, _ := setupTestService(t)
	ctx := context.Background()

	resp, err := svc.DeactivateUser(ctx, DeactivateUserRequest{ID: 0})

	assert.Error(t, err)
	assert.Nil(t, resp)

	var invalid *pkgerrors.ValidationError
	assert.ErrorAs(t, err, &invalid)
}

func TestDeactivateUser_SaveFails(t *testing.T) {
	svc, mockRepo, _ := setupTestService(t)
	ctx := context.Background()

	stored := &domain.User{ID: 1, Name: "Alice", Email: "alice@x.com", IsActive: true}

	mockRepo.On("FindByID", ctx, int64(1)).Return(stored, nil)
	mockRepo.On("Save", ctx, mock.Anything).Return(nil, errors.New("connection refused"))

	resp, err := svc.DeactivateUser(ctx, DeactivateUserRequest{ID: 1})

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "connection refused")
}
