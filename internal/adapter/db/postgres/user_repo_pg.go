package postgres

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-account-service/internal/domain/user"
)

// UserRepoPG implements the Repository interface using PostgreSQL and GORM.
type UserRepoPG struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepoPG creates a new instance of UserRepoPG.
func NewUserRepoPG(db *gorm.DB, log *zap.Logger) *UserRepoPG {
	return &UserRepoPG{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"` // Unique identifier with auto-increment
	Name         string `gorm:"not null"`                 // User's display name (required)
	Email        string `gorm:"not null;unique"`          // User's unique email address (required, unique)
	PasswordHash string `gorm:"not null"`                 // Hashed credential, opaque to the store
	IsActive     bool   `gorm:"not null;default:true"`    // False once the account is soft-deleted
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

// toEntity maps a persisted row back to the domain entity.
func toEntity(m *UserSchema) *user.User {
	return &user.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		IsActive:     m.IsActive,
	}
}

// Save persists the user and returns the stored entity. When the entity has
// no ID yet a new row is inserted and the store-assigned ID is returned.
// When the entity carries an ID, the current row is loaded first and the
// entity's fields are applied to it before writing, so a partially stale
// in-memory entity can never blindly overwrite the whole row. Each call is
// its own transaction.
func (r *UserRepoPG) Save(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	if !u.Persisted() {
		return r.insert(ctx, u)
	}
	return r.update(ctx, u)
}

func (r *UserRepoPG) insert(ctx context.Context, u *user.User) (*user.User, error) {
	model := UserSchema{
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&model).Error
	})
	if err != nil {
		r.log.Error("failed to insert user in db", zap.Error(err), zap.String("email", u.Email))
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	r.log.Info("user inserted in db", zap.Int64("id", model.ID))
	return toEntity(&model), nil
}

func (r *UserRepoPG) update(ctx context.Context, u *user.User) (*user.User, error) {
	var model UserSchema

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Fetch-first: load the current row before applying changes
		if err := tx.First(&model, u.ID).Error; err != nil {
			return err
		}
		model.Name = u.Name
		model.Email = u.Email
		model.PasswordHash = u.PasswordHash
		model.IsActive = u.IsActive
		return tx.Save(&model).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Warn("update target not found", zap.Int64("id", u.ID))
			return nil, fmt.Errorf("failed to update user: no row with id=%d", u.ID)
		}
		r.log.Error("failed to update user in db", zap.Error(err), zap.Int64("id", u.ID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	r.log.Info("user updated in db", zap.Int64("id", model.ID))
	return toEntity(&model), nil
}

// FindByID retrieves a user from the database by their unique ID.
// Returns (nil, nil) when no row matches.
func (r *UserRepoPG) FindByID(ctx context.Context, id int64) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found", zap.Int64("id", id))
			return nil, nil
		}
		r.log.Error("failed to get user from db", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toEntity(&model), nil
}

// FindByEmail retrieves a user from the database by their email address.
// Returns (nil, nil) when no row matches.
func (r *UserRepoPG) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found by email", zap.String("email", email))
			return nil, nil
		}
		r.log.Error("failed to get user by email from db", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return toEntity(&model), nil
}
