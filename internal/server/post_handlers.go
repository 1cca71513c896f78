package server

import (
	"time"

	"chronicle/internal/models"
	"chronicle/internal/service"

	"github.com/gofiber/fiber/v2"
)

// postRequest is the body accepted by create and update. The author is taken
// from the authenticated actor, never from the body.
type postRequest struct {
	Title       string     `json:"title"`
	Text        string     `json:"text"`
	PubDate     *time.Time `json:"pub_date"`
	CategoryID  *uint      `json:"category_id"`
	LocationID  *uint      `json:"location_id"`
	ImageURL    string     `json:"image_url"`
	IsPublished *bool      `json:"is_published"`
}

// ListFeed handles GET /api/posts (public)
func (s *Server) ListFeed(c *fiber.Ctx) error {
	page, err := s.postService.ListFeed(c.UserContext(), parsePage(c))
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}
	return c.JSON(page)
}

// GetPost handles GET /api/posts/:id (public; authors see their own hidden posts)
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPostDetail(c.UserContext(), postID, actorID(c))
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	comments, err := s.commentService.ListForPost(c.UserContext(), postID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"post":     post,
		"comments": comments,
	})
}

// CreatePost handles POST /api/posts (protected)
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.CreatePostInput{
		ActorID:     actorID(c),
		Title:       req.Title,
		Text:        req.Text,
		CategoryID:  req.CategoryID,
		LocationID:  req.LocationID,
		ImageURL:    req.ImageURL,
		IsPublished: req.IsPublished,
	}
	if req.PubDate != nil {
		in.PubDate = *req.PubDate
	}

	post, err := s.postService.CreatePost(c.UserContext(), in)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id (protected; author only).
// Non-authors are redirected to the detail view, not rejected.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.UpdatePostInput{
		ActorID:     actorID(c),
		PostID:      postID,
		Title:       req.Title,
		Text:        req.Text,
		CategoryID:  req.CategoryID,
		LocationID:  req.LocationID,
		ImageURL:    req.ImageURL,
		IsPublished: req.IsPublished,
	}
	if req.PubDate != nil {
		in.PubDate = *req.PubDate
	}

	post, err := s.postService.UpdatePost(c.UserContext(), in)
	if err != nil {
		return respondServiceError(c, err, postDetailPath(postID))
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id (protected; author or staff).
// Unauthorized actors are redirected to the detail view and nothing changes.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	err = s.postService.DeletePost(c.UserContext(), service.DeletePostInput{
		ActorID: actorID(c),
		PostID:  postID,
	})
	if err != nil {
		return respondServiceError(c, err, postDetailPath(postID))
	}
	return c.SendStatus(fiber.StatusNoContent)
}
