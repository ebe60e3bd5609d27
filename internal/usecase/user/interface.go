package user

import "context"

// Usecase defines the interface for user account business operations.
type Usecase interface {
	CreateUser(ctx context.Context, in CreateUserRequest) (*UserResponse, error)
	DeactivateUser(ctx context.Context, in DeactivateUserRequest) (*UserResponse, error)
}
