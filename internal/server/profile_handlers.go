package server

import (
	"chronicle/internal/models"
	"chronicle/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/profiles/:username (public; owners see their
// own unpublished and scheduled posts in the listing).
func (s *Server) GetProfile(c *fiber.Ctx) error {
	username := c.Params("username")

	author, page, err := s.postService.ListByAuthor(c.UserContext(), username, actorID(c), parsePage(c))
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}
	return c.JSON(fiber.Map{
		"profile": author,
		"posts":   page,
	})
}

// UpdateProfile handles PUT /api/profile (protected; actors edit only their
// own account).
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var req struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByID(c.UserContext(), actorID(c))
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	if req.Username != "" && req.Username != user.Username {
		if err := validation.ValidateUsername(req.Username); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		user.Username = req.Username
	}
	if req.Email != "" && req.Email != user.Email {
		if err := validation.ValidateEmail(req.Email); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		existing, err := s.userRepo.GetByEmail(c.UserContext(), req.Email)
		if err != nil {
			return models.RespondWithError(c, statusForError(err), err)
		}
		if existing != nil {
			return models.RespondWithError(c, fiber.StatusConflict,
				models.NewValidationError("Email already in use"))
		}
		user.Email = req.Email
	}
	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}

	if err := s.userRepo.Update(c.UserContext(), user); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}
	return c.JSON(user)
}
