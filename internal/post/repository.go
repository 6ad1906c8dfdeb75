// File: internal/post/repository.go
package post

import (
	"context"
	"errors"
	"fmt"

	"plusone_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists posts. CountByUserID doubles as the profile view's
// post-count source.
type Repository interface {
	Create(ctx context.Context, post *Post) error
	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Post, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]Post, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	// FindPage returns one page of the community feed, newest first, with
	// the total row count for pagination.
	FindPage(ctx context.Context, category string, offset, limit int) ([]Post, int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a GORM-backed post repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, post *Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("creating post: %w", err)
	}
	return nil
}

func (r *gormRepository) Update(ctx context.Context, post *Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return fmt.Errorf("updating post %s: %w", post.ID, err)
	}
	return nil
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Post{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("deleting post %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Post not found.")
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	var p Post
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Post not found.")
		}
		return nil, fmt.Errorf("finding post %s: %w", id, err)
	}
	return &p, nil
}

func (r *gormRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]Post, error) {
	var posts []Post
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("finding posts for user %s: %w", userID, err)
	}
	return posts, nil
}

func (r *gormRepository) FindPage(ctx context.Context, category string, offset, limit int) ([]Post, int64, error) {
	query := r.db.WithContext(ctx).Model(&Post{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting posts: %w", err)
	}

	var posts []Post
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("paging posts: %w", err)
	}
	return posts, total, nil
}

func (r *gormRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Post{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting posts for user %s: %w", userID, err)
	}
	return count, nil
}
