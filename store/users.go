// Package store implements the service store contracts on top of gorm.
// Driver conditions are translated into the services sentinels at this
// boundary so nothing above it touches gorm errors.
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/failboard/failboard/models"
	"github.com/failboard/failboard/services"
)

// UserStore persists users.
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a UserStore over the given database handle.
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts the user. The unique index on username turns a racing
// duplicate into services.ErrDuplicate.
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return services.ErrDuplicate
		}
		return err
	}
	return nil
}

// ByID returns the user with the given id.
func (s *UserStore) ByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrNoRecord
		}
		return nil, err
	}
	return &user, nil
}

// ByUsername returns the user with the given username.
func (s *UserStore) ByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrNoRecord
		}
		return nil, err
	}
	return &user, nil
}
