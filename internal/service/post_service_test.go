package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"chronicle/internal/models"
	"chronicle/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newPostService(postRepo repository.PostRepository, opts ...func(*PostService)) *PostService {
	s := NewPostService(postRepo, nil, nil, nil, nil)
	s.now = func() time.Time { return fixedNow }
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func TestCreatePostValidation(t *testing.T) {
	t.Parallel()

	longTitle := make([]byte, maxTitleLen+1)
	for i := range longTitle {
		longTitle[i] = 'a'
	}

	tests := []struct {
		name  string
		input CreatePostInput
	}{
		{"missing title", CreatePostInput{ActorID: 1, Text: "body"}},
		{"missing text", CreatePostInput{ActorID: 1, Title: "hello"}},
		{"title too long", CreatePostInput{ActorID: 1, Title: string(longTitle), Text: "body"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newPostService(&stubPostRepo{})
			_, err := s.CreatePost(context.Background(), tt.input)
			assertErrorCode(t, err, models.CodeValidationError)
		})
	}
}

func TestCreatePostDefaults(t *testing.T) {
	t.Parallel()

	var created *models.Post
	repo := &stubPostRepo{
		createFn: func(_ context.Context, post *models.Post) error {
			post.ID = 42
			created = post
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			return created, nil
		},
	}
	s := newPostService(repo)

	post, err := s.CreatePost(context.Background(), CreatePostInput{
		ActorID: 7,
		Title:   "hello",
		Text:    "body",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), post.AuthorID)
	assert.True(t, post.IsPublished, "posts default to published")
	assert.Equal(t, fixedNow, post.PubDate, "pub_date defaults to creation time")
}

func TestCreatePostFuturePubDateAllowed(t *testing.T) {
	t.Parallel()

	future := fixedNow.Add(72 * time.Hour)
	var created *models.Post
	repo := &stubPostRepo{
		createFn: func(_ context.Context, post *models.Post) error {
			created = post
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			return created, nil
		},
	}
	s := newPostService(repo)

	post, err := s.CreatePost(context.Background(), CreatePostInput{
		ActorID: 7,
		Title:   "scheduled",
		Text:    "body",
		PubDate: future,
	})
	require.NoError(t, err)
	assert.Equal(t, future, post.PubDate)
}

func TestCreatePostUnknownCategory(t *testing.T) {
	t.Parallel()

	catID := uint(99)
	s := newPostService(&stubPostRepo{}, func(s *PostService) {
		s.categoryRepo = &stubCategoryRepo{
			getByIDFn: func(_ context.Context, id uint) (*models.Category, error) {
				return nil, models.NewNotFoundError("Category", id)
			},
		}
	})

	_, err := s.CreatePost(context.Background(), CreatePostInput{
		ActorID:    1,
		Title:      "hello",
		Text:       "body",
		CategoryID: &catID,
	})
	assertErrorCode(t, err, models.CodeValidationError)
}

func TestGetPostDetailAuthorBypass(t *testing.T) {
	t.Parallel()

	hidden := &models.Post{ID: 5, AuthorID: 7, IsPublished: false}
	repo := &stubPostRepo{
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			return hidden, nil
		},
		getVisibleByIDFn: func(_ context.Context, id uint, _ time.Time) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		},
	}
	s := newPostService(repo)

	t.Run("author sees own hidden post", func(t *testing.T) {
		post, err := s.GetPostDetail(context.Background(), 5, 7)
		require.NoError(t, err)
		assert.Equal(t, uint(5), post.ID)
	})

	t.Run("other user gets not found", func(t *testing.T) {
		_, err := s.GetPostDetail(context.Background(), 5, 8)
		assertErrorCode(t, err, models.CodeNotFound)
	})

	t.Run("anonymous gets not found", func(t *testing.T) {
		_, err := s.GetPostDetail(context.Background(), 5, 0)
		assertErrorCode(t, err, models.CodeNotFound)
	})
}

func TestListFeedClampsPage(t *testing.T) {
	t.Parallel()

	var gotFilter repository.PostFilter
	repo := &stubPostRepo{
		countVisibleFn: func(_ context.Context, f repository.PostFilter, _ time.Time) (int64, error) {
			return 25, nil
		},
		listVisibleFn: func(_ context.Context, f repository.PostFilter, _ time.Time) ([]*models.Post, error) {
			gotFilter = f
			return []*models.Post{{ID: 21}}, nil
		},
	}
	s := newPostService(repo)

	// 25 posts is 3 pages; page 9 clamps to the last one
	page, err := s.ListFeed(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 3, page.PageNumber)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, int64(25), page.TotalCount)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrevious)
	assert.Equal(t, 20, gotFilter.Offset)
	assert.Equal(t, PageSize, gotFilter.Limit)
}

func TestListByAuthorOwnerSeesHidden(t *testing.T) {
	t.Parallel()

	author := &models.User{ID: 7, Username: "ada"}
	var gotFilter repository.PostFilter
	repo := &stubPostRepo{
		countVisibleFn: func(_ context.Context, f repository.PostFilter, _ time.Time) (int64, error) {
			return 0, nil
		},
		listVisibleFn: func(_ context.Context, f repository.PostFilter, _ time.Time) ([]*models.Post, error) {
			gotFilter = f
			return nil, nil
		},
	}
	userRepo := &stubUserRepo{
		getByUsernameFn: func(_ context.Context, username string) (*models.User, error) {
			return author, nil
		},
	}
	s := newPostService(repo, func(s *PostService) { s.userRepo = userRepo })

	t.Run("owner", func(t *testing.T) {
		_, _, err := s.ListByAuthor(context.Background(), "ada", 7, 1)
		require.NoError(t, err)
		assert.True(t, gotFilter.IncludeHidden)
	})

	t.Run("visitor", func(t *testing.T) {
		_, _, err := s.ListByAuthor(context.Background(), "ada", 8, 1)
		require.NoError(t, err)
		assert.False(t, gotFilter.IncludeHidden)
	})

	t.Run("anonymous", func(t *testing.T) {
		_, _, err := s.ListByAuthor(context.Background(), "ada", 0, 1)
		require.NoError(t, err)
		assert.False(t, gotFilter.IncludeHidden)
	})
}

func TestListByCategoryHiddenSlug(t *testing.T) {
	t.Parallel()

	s := newPostService(&stubPostRepo{}, func(s *PostService) {
		s.categoryRepo = &stubCategoryRepo{
			getPublishedBySlugFn: func(_ context.Context, slug string) (*models.Category, error) {
				return nil, models.NewNotFoundError("Category", slug)
			},
		}
	})

	_, _, err := s.ListByCategory(context.Background(), "secret", 1)
	assertErrorCode(t, err, models.CodeNotFound)
}

func TestUpdatePostOwnership(t *testing.T) {
	t.Parallel()

	stored := &models.Post{ID: 5, AuthorID: 7, Title: "old", Text: "old body", IsPublished: true}
	repo := &stubPostRepo{
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			copied := *stored
			return &copied, nil
		},
		updateFn: func(_ context.Context, post *models.Post) error {
			stored = post
			return nil
		},
	}
	s := newPostService(repo)

	t.Run("non-author is rejected as not owner", func(t *testing.T) {
		_, err := s.UpdatePost(context.Background(), UpdatePostInput{
			ActorID: 8,
			PostID:  5,
			Title:   "hijacked",
		})
		assertErrorCode(t, err, models.CodeNotOwner)
		assert.Equal(t, "old", stored.Title)
	})

	t.Run("author partial update keeps other fields", func(t *testing.T) {
		post, err := s.UpdatePost(context.Background(), UpdatePostInput{
			ActorID: 7,
			PostID:  5,
			Title:   "new title",
		})
		require.NoError(t, err)
		assert.Equal(t, "new title", post.Title)
		assert.Equal(t, "old body", post.Text)
		assert.Equal(t, uint(7), post.AuthorID)
	})
}

func TestDeletePostAuthorization(t *testing.T) {
	t.Parallel()

	newRepo := func(deleted *bool) *stubPostRepo {
		return &stubPostRepo{
			getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
				return &models.Post{ID: id, AuthorID: 7}, nil
			},
			deleteFn: func(_ context.Context, id uint) error {
				*deleted = true
				return nil
			},
		}
	}

	t.Run("author deletes own post", func(t *testing.T) {
		t.Parallel()
		var deleted bool
		s := newPostService(newRepo(&deleted))
		require.NoError(t, s.DeletePost(context.Background(), DeletePostInput{ActorID: 7, PostID: 5}))
		assert.True(t, deleted)
	})

	t.Run("staff deletes someone else's post", func(t *testing.T) {
		t.Parallel()
		var deleted bool
		s := newPostService(newRepo(&deleted), func(s *PostService) {
			s.isStaff = func(_ context.Context, userID uint) (bool, error) { return true, nil }
		})
		require.NoError(t, s.DeletePost(context.Background(), DeletePostInput{ActorID: 9, PostID: 5}))
		assert.True(t, deleted)
	})

	t.Run("non-author non-staff is rejected", func(t *testing.T) {
		t.Parallel()
		var deleted bool
		s := newPostService(newRepo(&deleted), func(s *PostService) {
			s.isStaff = func(_ context.Context, userID uint) (bool, error) { return false, nil }
		})
		err := s.DeletePost(context.Background(), DeletePostInput{ActorID: 8, PostID: 5})
		assertErrorCode(t, err, models.CodeNotOwner)
		assert.False(t, deleted)
	})

	t.Run("staff lookup failure propagates", func(t *testing.T) {
		t.Parallel()
		var deleted bool
		lookupErr := errors.New("store down")
		s := newPostService(newRepo(&deleted), func(s *PostService) {
			s.isStaff = func(_ context.Context, userID uint) (bool, error) { return false, lookupErr }
		})
		err := s.DeletePost(context.Background(), DeletePostInput{ActorID: 8, PostID: 5})
		require.ErrorIs(t, err, lookupErr)
		assert.False(t, deleted)
	})
}
