package server

import (
	"chronicle/internal/models"
	"chronicle/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/posts/:id/comments (protected).
// The target post must currently be publicly visible; unpublished and
// future-dated posts take no comments, even from their author.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	created, err := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		ActorID: actorID(c),
		PostID:  postID,
		Text:    req.Text,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateComment handles PUT /api/posts/:id/comments/:commentId (protected;
// author only, non-authors are redirected to the post detail view).
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId", "comment ID")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	updated, err := s.commentService.UpdateComment(c.UserContext(), service.UpdateCommentInput{
		ActorID:   actorID(c),
		PostID:    postID,
		CommentID: commentID,
		Text:      req.Text,
	})
	if err != nil {
		return respondServiceError(c, err, postDetailPath(postID))
	}
	return c.JSON(updated)
}

// DeleteComment handles DELETE /api/posts/:id/comments/:commentId (protected;
// author only). On success the client is sent back to the post detail view.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId", "comment ID")
	if err != nil {
		return nil
	}

	err = s.commentService.DeleteComment(c.UserContext(), service.DeleteCommentInput{
		ActorID:   actorID(c),
		PostID:    postID,
		CommentID: commentID,
	})
	if err != nil {
		return respondServiceError(c, err, postDetailPath(postID))
	}
	return c.Redirect(postDetailPath(postID), fiber.StatusSeeOther)
}
