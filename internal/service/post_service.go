// Package service implements the application's business rules: visibility,
// ownership and validation for posts and comments.
package service

import (
	"context"
	"time"

	"chronicle/internal/models"
	"chronicle/internal/repository"
)

// PostService owns post authorization and the visibility rules shared by the
// feed, detail, category and profile listings.
type PostService struct {
	postRepo     repository.PostRepository
	categoryRepo repository.CategoryRepository
	locationRepo repository.LocationRepository
	userRepo     repository.UserRepository
	isStaff      func(ctx context.Context, userID uint) (bool, error)
	now          func() time.Time
}

// CreatePostInput carries the author-settable fields for a new post.
type CreatePostInput struct {
	ActorID     uint
	Title       string
	Text        string
	PubDate     time.Time
	CategoryID  *uint
	LocationID  *uint
	ImageURL    string
	IsPublished *bool
}

// UpdatePostInput carries the fields an author may change. Zero-valued
// fields are left untouched; the author never changes.
type UpdatePostInput struct {
	ActorID     uint
	PostID      uint
	Title       string
	Text        string
	PubDate     time.Time
	CategoryID  *uint
	LocationID  *uint
	ImageURL    string
	IsPublished *bool
}

// DeletePostInput identifies the post to remove and who is asking.
type DeletePostInput struct {
	ActorID uint
	PostID  uint
}

// NewPostService wires a PostService from its repositories. isStaff resolves
// the staff flag for the delete override; a nil isStaff disables it.
func NewPostService(
	postRepo repository.PostRepository,
	categoryRepo repository.CategoryRepository,
	locationRepo repository.LocationRepository,
	userRepo repository.UserRepository,
	isStaff func(ctx context.Context, userID uint) (bool, error),
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		userRepo:     userRepo,
		isStaff:      isStaff,
		now:          time.Now,
	}
}

const (
	maxTitleLen = 256
	maxTextLen  = 50000
)

// CreatePost validates the input and stores a new post authored by the actor.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 256 characters)")
	}
	if in.Text == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(in.Text) > maxTextLen {
		return nil, models.NewValidationError("Text too long (max 50000 characters)")
	}

	pubDate := in.PubDate
	if pubDate.IsZero() {
		pubDate = s.now()
	}

	if err := s.checkReferences(ctx, in.CategoryID, in.LocationID); err != nil {
		return nil, err
	}

	isPublished := true
	if in.IsPublished != nil {
		isPublished = *in.IsPublished
	}

	post := &models.Post{
		Title:       in.Title,
		Text:        in.Text,
		PubDate:     pubDate,
		AuthorID:    in.ActorID,
		CategoryID:  in.CategoryID,
		LocationID:  in.LocationID,
		ImageURL:    in.ImageURL,
		IsPublished: isPublished,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// GetPostDetail returns a single post. The author sees their own post even
// when it is unpublished or future-dated; everyone else gets NotFound unless
// the post passes the publication predicate.
func (s *PostService) GetPostDetail(ctx context.Context, postID, actorID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if actorID == 0 || post.AuthorID != actorID {
		return s.postRepo.GetVisibleByID(ctx, postID, s.now())
	}
	return post, nil
}

// ListFeed returns the public feed page. The ownership bypass never applies
// to list views.
func (s *PostService) ListFeed(ctx context.Context, page int) (*Page[*models.Post], error) {
	return s.listPage(ctx, repository.PostFilter{}, page)
}

// ListByCategory returns a published category together with its page of
// visible posts. An unknown or hidden slug is NotFound.
func (s *PostService) ListByCategory(ctx context.Context, slug string, page int) (*models.Category, *Page[*models.Post], error) {
	category, err := s.categoryRepo.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	posts, err := s.listPage(ctx, repository.PostFilter{CategoryID: &category.ID}, page)
	if err != nil {
		return nil, nil, err
	}
	return category, posts, nil
}

// ListByAuthor returns a user's profile posts. The owner sees all of their
// posts regardless of publication state; other actors see only what passes
// the publication predicate.
func (s *PostService) ListByAuthor(ctx context.Context, username string, actorID uint, page int) (*models.User, *Page[*models.Post], error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	filter := repository.PostFilter{
		AuthorID:      &author.ID,
		IncludeHidden: actorID != 0 && author.ID == actorID,
	}
	posts, err := s.listPage(ctx, filter, page)
	if err != nil {
		return nil, nil, err
	}
	return author, posts, nil
}

func (s *PostService) listPage(ctx context.Context, f repository.PostFilter, page int) (*Page[*models.Post], error) {
	now := s.now()
	total, err := s.postRepo.CountVisible(ctx, f, now)
	if err != nil {
		return nil, err
	}
	pageNumber, offset := pageBounds(page, total)
	f.Limit = PageSize
	f.Offset = offset
	posts, err := s.postRepo.ListVisible(ctx, f, now)
	if err != nil {
		return nil, err
	}
	return NewPage(posts, pageNumber, total), nil
}

// UpdatePost edits a post's author-settable fields. A non-author actor gets
// a NOT_OWNER outcome, which the transport layer turns into a redirect to
// the detail view rather than an error.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != in.ActorID {
		return nil, models.NewNotOwnerError("Only the author can edit this post")
	}

	if in.Title != "" {
		if len(in.Title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 256 characters)")
		}
		post.Title = in.Title
	}
	if in.Text != "" {
		if len(in.Text) > maxTextLen {
			return nil, models.NewValidationError("Text too long (max 50000 characters)")
		}
		post.Text = in.Text
	}
	if !in.PubDate.IsZero() {
		post.PubDate = in.PubDate
	}
	if err := s.checkReferences(ctx, in.CategoryID, in.LocationID); err != nil {
		return nil, err
	}
	if in.CategoryID != nil {
		post.CategoryID = in.CategoryID
	}
	if in.LocationID != nil {
		post.LocationID = in.LocationID
	}
	if in.ImageURL != "" {
		post.ImageURL = in.ImageURL
	}
	if in.IsPublished != nil {
		post.IsPublished = *in.IsPublished
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// DeletePost removes a post. Allowed for the author and for staff; anyone
// else gets the NOT_OWNER redirect outcome and the post survives.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return err
	}

	if post.AuthorID != in.ActorID {
		if s.isStaff == nil {
			return models.NewNotOwnerError("Only the author or staff can delete this post")
		}
		staff, err := s.isStaff(ctx, in.ActorID)
		if err != nil {
			return err
		}
		if !staff {
			return models.NewNotOwnerError("Only the author or staff can delete this post")
		}
	}

	return s.postRepo.Delete(ctx, in.PostID)
}

// checkReferences verifies optional category/location references point at
// existing rows before they are written.
func (s *PostService) checkReferences(ctx context.Context, categoryID, locationID *uint) error {
	if categoryID != nil && s.categoryRepo != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *categoryID); err != nil {
			return models.NewValidationError("Category does not exist")
		}
	}
	if locationID != nil && s.locationRepo != nil {
		if _, err := s.locationRepo.GetByID(ctx, *locationID); err != nil {
			return models.NewValidationError("Location does not exist")
		}
	}
	return nil
}
