package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/failboard/failboard/models"
	"github.com/failboard/failboard/services"
)

// PostStore persists posts.
type PostStore struct {
	db *gorm.DB
}

// NewPostStore creates a PostStore over the given database handle.
func NewPostStore(db *gorm.DB) *PostStore {
	return &PostStore{db: db}
}

// Create inserts the post.
func (s *PostStore) Create(ctx context.Context, post *models.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

// ByID returns the post with its author preloaded.
func (s *PostStore) ByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).Preload("User").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrNoRecord
		}
		return nil, err
	}
	return &post, nil
}

// List returns posts newest-first with authors preloaded, optionally
// restricted to one category.
func (s *PostStore) List(ctx context.Context, category models.Category) ([]models.Post, error) {
	var posts []models.Post
	query := s.db.WithContext(ctx).Preload("User").Order("created_at DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Delete removes the post after checking ownership against the same locked
// read. The row lock serializes racing deletes: the loser finds no row and
// gets services.ErrNoRecord. Comments and votes go with the post via the
// foreign-key cascade.
func (s *PostStore) Delete(ctx context.Context, postID, requesterID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return services.ErrNoRecord
			}
			return err
		}
		if post.UserID != requesterID {
			return services.ErrNotOwner
		}
		return tx.Delete(&post).Error
	})
}
