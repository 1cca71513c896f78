package service

import (
	"context"
	"time"

	"chronicle/internal/models"
	"chronicle/internal/repository"
)

// CommentService owns comment authorization: only visible posts accept new
// comments, and only a comment's author may change or remove it.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	now         func() time.Time
}

// CreateCommentInput carries a new comment.
type CreateCommentInput struct {
	ActorID uint
	PostID  uint
	Text    string
}

// UpdateCommentInput allows editing the text only. The comment must belong
// to the named post.
type UpdateCommentInput struct {
	ActorID   uint
	PostID    uint
	CommentID uint
	Text      string
}

// DeleteCommentInput identifies a comment within its post.
type DeleteCommentInput struct {
	ActorID   uint
	PostID    uint
	CommentID uint
}

// NewCommentService wires a CommentService from its repositories.
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		now:         time.Now,
	}
}

const maxCommentLen = 10000

// CreateComment adds a comment to a currently visible post. The publication
// predicate applies to everyone here, the post's author included, so
// unpublished and future-dated posts take no comments.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if _, err := s.postRepo.GetVisibleByID(ctx, in.PostID, s.now()); err != nil {
		return nil, err
	}

	if in.Text == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(in.Text) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment := &models.Comment{
		Text:     in.Text,
		PostID:   in.PostID,
		AuthorID: in.ActorID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListForPost returns a post's comments oldest first. Callers are expected
// to have resolved post visibility already (the detail view does).
func (s *CommentService) ListForPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID)
}

// UpdateComment edits a comment's text. A comment addressed under the wrong
// post is NotFound; a non-author actor gets the NOT_OWNER redirect outcome
// and nothing changes.
func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != in.PostID {
		return nil, models.NewNotFoundError("Comment", in.CommentID)
	}

	if comment.AuthorID != in.ActorID {
		return nil, models.NewNotOwnerError("Only the author can edit this comment")
	}
	if in.Text == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(in.Text) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment.Text = in.Text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// DeleteComment removes a comment. The comment must belong to the given post
// and the post must be published; otherwise NotFound. Only the comment's
// author may delete it.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return err
	}

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return err
	}
	if comment.PostID != in.PostID || !post.IsPublished {
		return models.NewNotFoundError("Comment", in.CommentID)
	}

	if comment.AuthorID != in.ActorID {
		return models.NewNotOwnerError("Only the author can delete this comment")
	}

	return s.commentRepo.Delete(ctx, in.CommentID)
}
