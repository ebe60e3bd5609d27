package user

// CreateUserRequest represents the request payload for creating a new user.
type CreateUserRequest struct {
	Name     string `validate:"required,min=1,max=100"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8,max=72"`
}

// DeactivateUserRequest represents the request payload for soft-deleting a user.
type DeactivateUserRequest struct {
	ID int64 `validate:"required,gt=0"`
}

// UserResponse represents the user DTO returned by the use cases.
// It intentionally carries no password material.
type UserResponse struct {
	ID       int64
	Name     string
	Email    string
	IsActive bool
}
