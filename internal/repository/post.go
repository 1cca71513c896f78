// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"time"

	"chronicle/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostFilter narrows a visibility query. Nil reference fields are ignored.
// IncludeHidden skips the publication predicate entirely and is reserved for
// the owner's profile listing.
type PostFilter struct {
	CategoryID    *uint
	AuthorID      *uint
	IncludeHidden bool
	Limit         int
	Offset        int
}

// PostRepository defines the interface for post data operations.
//
// Every listing goes through the same visibility predicate: a post is
// publicly visible when its pub_date has passed, it is published, and it
// belongs to a published category. A post without a category is never
// publicly visible; the category join is deliberately an INNER JOIN.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetVisibleByID(ctx context.Context, id uint, now time.Time) (*models.Post, error)
	ListVisible(ctx context.Context, f PostFilter, now time.Time) ([]*models.Post, error)
	CountVisible(ctx context.Context, f PostFilter, now time.Time) (int64, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.applyCommentCount(r.db.WithContext(ctx)).
		Preload("Author").
		Preload("Category").
		Preload("Location").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) GetVisibleByID(ctx context.Context, id uint, now time.Time) (*models.Post, error) {
	var post models.Post
	err := r.applyCommentCount(r.visibleScope(r.db.WithContext(ctx), now)).
		Preload("Author").
		Preload("Category").
		Preload("Location").
		Where("posts.id = ?", id).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) ListVisible(ctx context.Context, f PostFilter, now time.Time) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyCommentCount(r.applyFilter(r.db.WithContext(ctx), f, now)).
		Preload("Author").
		Preload("Category").
		Preload("Location").
		Order("posts.pub_date DESC, posts.id ASC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) CountVisible(ctx context.Context, f PostFilter, now time.Time) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.Post{}), f, now).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// applyFilter combines the visibility predicate with the optional
// category/author restrictions. All conditions compose with AND.
func (r *postRepository) applyFilter(db *gorm.DB, f PostFilter, now time.Time) *gorm.DB {
	if !f.IncludeHidden {
		db = r.visibleScope(db, now)
	}
	if f.CategoryID != nil {
		db = db.Where("posts.category_id = ?", *f.CategoryID)
	}
	if f.AuthorID != nil {
		db = db.Where("posts.author_id = ?", *f.AuthorID)
	}
	return db
}

// visibleScope applies the base publication predicate. The category join is
// an INNER JOIN, so posts without a category are excluded.
func (r *postRepository) visibleScope(db *gorm.DB, now time.Time) *gorm.DB {
	return db.
		Joins("JOIN categories ON categories.id = posts.category_id AND categories.is_published = ?", true).
		Where("posts.pub_date <= ? AND posts.is_published = ?", now, true)
}

// applyCommentCount adds a subquery fetching the live comment count in the
// same query. Counts are never cached or denormalized.
func (r *postRepository) applyCommentCount(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count")
}

// Update writes the post row only; loaded associations are never written back.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes a post and its comments as one atomic unit.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
