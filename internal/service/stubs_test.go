package service

import (
	"context"
	"time"

	"chronicle/internal/models"
	"chronicle/internal/repository"
)

// Function-typed repository stubs. Unset functions fail loudly so a test
// exercising one path cannot silently depend on another.

type stubPostRepo struct {
	createFn         func(ctx context.Context, post *models.Post) error
	getByIDFn        func(ctx context.Context, id uint) (*models.Post, error)
	getVisibleByIDFn func(ctx context.Context, id uint, now time.Time) (*models.Post, error)
	listVisibleFn    func(ctx context.Context, f repository.PostFilter, now time.Time) ([]*models.Post, error)
	countVisibleFn   func(ctx context.Context, f repository.PostFilter, now time.Time) (int64, error)
	updateFn         func(ctx context.Context, post *models.Post) error
	deleteFn         func(ctx context.Context, id uint) error
}

func (s *stubPostRepo) Create(ctx context.Context, post *models.Post) error {
	if s.createFn == nil {
		panic("unexpected call to PostRepository.Create")
	}
	return s.createFn(ctx, post)
}

func (s *stubPostRepo) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	if s.getByIDFn == nil {
		panic("unexpected call to PostRepository.GetByID")
	}
	return s.getByIDFn(ctx, id)
}

func (s *stubPostRepo) GetVisibleByID(ctx context.Context, id uint, now time.Time) (*models.Post, error) {
	if s.getVisibleByIDFn == nil {
		panic("unexpected call to PostRepository.GetVisibleByID")
	}
	return s.getVisibleByIDFn(ctx, id, now)
}

func (s *stubPostRepo) ListVisible(ctx context.Context, f repository.PostFilter, now time.Time) ([]*models.Post, error) {
	if s.listVisibleFn == nil {
		panic("unexpected call to PostRepository.ListVisible")
	}
	return s.listVisibleFn(ctx, f, now)
}

func (s *stubPostRepo) CountVisible(ctx context.Context, f repository.PostFilter, now time.Time) (int64, error) {
	if s.countVisibleFn == nil {
		panic("unexpected call to PostRepository.CountVisible")
	}
	return s.countVisibleFn(ctx, f, now)
}

func (s *stubPostRepo) Update(ctx context.Context, post *models.Post) error {
	if s.updateFn == nil {
		panic("unexpected call to PostRepository.Update")
	}
	return s.updateFn(ctx, post)
}

func (s *stubPostRepo) Delete(ctx context.Context, id uint) error {
	if s.deleteFn == nil {
		panic("unexpected call to PostRepository.Delete")
	}
	return s.deleteFn(ctx, id)
}

type stubCommentRepo struct {
	createFn     func(ctx context.Context, comment *models.Comment) error
	getByIDFn    func(ctx context.Context, id uint) (*models.Comment, error)
	listByPostFn func(ctx context.Context, postID uint) ([]*models.Comment, error)
	updateFn     func(ctx context.Context, comment *models.Comment) error
	deleteFn     func(ctx context.Context, id uint) error
}

func (s *stubCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	if s.createFn == nil {
		panic("unexpected call to CommentRepository.Create")
	}
	return s.createFn(ctx, comment)
}

func (s *stubCommentRepo) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	if s.getByIDFn == nil {
		panic("unexpected call to CommentRepository.GetByID")
	}
	return s.getByIDFn(ctx, id)
}

func (s *stubCommentRepo) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if s.listByPostFn == nil {
		panic("unexpected call to CommentRepository.ListByPost")
	}
	return s.listByPostFn(ctx, postID)
}

func (s *stubCommentRepo) Update(ctx context.Context, comment *models.Comment) error {
	if s.updateFn == nil {
		panic("unexpected call to CommentRepository.Update")
	}
	return s.updateFn(ctx, comment)
}

func (s *stubCommentRepo) Delete(ctx context.Context, id uint) error {
	if s.deleteFn == nil {
		panic("unexpected call to CommentRepository.Delete")
	}
	return s.deleteFn(ctx, id)
}

type stubCategoryRepo struct {
	getByIDFn            func(ctx context.Context, id uint) (*models.Category, error)
	getPublishedBySlugFn func(ctx context.Context, slug string) (*models.Category, error)
}

func (s *stubCategoryRepo) Create(ctx context.Context, category *models.Category) error {
	panic("unexpected call to CategoryRepository.Create")
}

func (s *stubCategoryRepo) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	if s.getByIDFn == nil {
		panic("unexpected call to CategoryRepository.GetByID")
	}
	return s.getByIDFn(ctx, id)
}

func (s *stubCategoryRepo) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	panic("unexpected call to CategoryRepository.GetBySlug")
}

func (s *stubCategoryRepo) GetPublishedBySlug(ctx context.Context, slug string) (*models.Category, error) {
	if s.getPublishedBySlugFn == nil {
		panic("unexpected call to CategoryRepository.GetPublishedBySlug")
	}
	return s.getPublishedBySlugFn(ctx, slug)
}

func (s *stubCategoryRepo) List(ctx context.Context) ([]*models.Category, error) {
	panic("unexpected call to CategoryRepository.List")
}

func (s *stubCategoryRepo) Delete(ctx context.Context, id uint) error {
	panic("unexpected call to CategoryRepository.Delete")
}

type stubUserRepo struct {
	getByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	isStaffFn       func(ctx context.Context, id uint) (bool, error)
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	panic("unexpected call to UserRepository.Create")
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	panic("unexpected call to UserRepository.GetByID")
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	panic("unexpected call to UserRepository.GetByEmail")
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.getByUsernameFn == nil {
		panic("unexpected call to UserRepository.GetByUsername")
	}
	return s.getByUsernameFn(ctx, username)
}

func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error {
	panic("unexpected call to UserRepository.Update")
}

func (s *stubUserRepo) Delete(ctx context.Context, id uint) error {
	panic("unexpected call to UserRepository.Delete")
}

func (s *stubUserRepo) IsStaff(ctx context.Context, id uint) (bool, error) {
	if s.isStaffFn == nil {
		panic("unexpected call to UserRepository.IsStaff")
	}
	return s.isStaffFn(ctx, id)
}
