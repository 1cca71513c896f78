package server

import (
	"errors"

	"chronicle/internal/models"
	"chronicle/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ListCategories handles GET /api/categories (public). Hidden categories are
// included; only their post listings are gated.
func (s *Server) ListCategories(c *fiber.Ctx) error {
	categories, err := s.categoryRepo.List(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}
	return c.JSON(categories)
}

// ListCategoryPosts handles GET /api/categories/:slug/posts (public).
// Unknown and unpublished slugs both come back 404.
func (s *Server) ListCategoryPosts(c *fiber.Ctx) error {
	slug := c.Params("slug")

	category, page, err := s.postService.ListByCategory(c.UserContext(), slug, parsePage(c))
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}
	return c.JSON(fiber.Map{
		"category": category,
		"posts":    page,
	})
}

// CreateCategory handles POST /api/categories (staff only).
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	if err := s.requireStaff(c); err != nil {
		return nil
	}

	var req struct {
		Title       string `json:"title"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
		IsPublished *bool  `json:"is_published"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Title == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title is required"))
	}
	if err := validation.ValidateSlug(req.Slug); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	existing, err := s.categoryRepo.GetBySlug(c.UserContext(), req.Slug)
	switch {
	case err == nil && existing != nil:
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewValidationError("Slug already in use"))
	case err != nil:
		// only a missing slug clears the way; a store failure must not
		var appErr *models.AppError
		if !errors.As(err, &appErr) || appErr.Code != models.CodeNotFound {
			return models.RespondWithError(c, statusForError(err), err)
		}
	}

	category := &models.Category{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		IsPublished: true,
	}
	if req.IsPublished != nil {
		category.IsPublished = *req.IsPublished
	}
	if err := s.categoryRepo.Create(c.UserContext(), category); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// DeleteCategory handles DELETE /api/categories/:id (staff only).
// Posts in the category survive with their category reference cleared.
func (s *Server) DeleteCategory(c *fiber.Ctx) error {
	if err := s.requireStaff(c); err != nil {
		return nil
	}
	categoryID, err := s.parseID(c, "id", "category ID")
	if err != nil {
		return nil
	}

	if _, err := s.categoryRepo.GetByID(c.UserContext(), categoryID); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}
	if err := s.categoryRepo.Delete(c.UserContext(), categoryID); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListLocations handles GET /api/locations (public)
func (s *Server) ListLocations(c *fiber.Ctx) error {
	locations, err := s.locationRepo.List(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}
	return c.JSON(locations)
}

// CreateLocation handles POST /api/locations (staff only).
func (s *Server) CreateLocation(c *fiber.Ctx) error {
	if err := s.requireStaff(c); err != nil {
		return nil
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Name == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Name is required"))
	}

	location := &models.Location{Name: req.Name}
	if err := s.locationRepo.Create(c.UserContext(), location); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(location)
}

// DeleteLocation handles DELETE /api/locations/:id (staff only).
func (s *Server) DeleteLocation(c *fiber.Ctx) error {
	if err := s.requireStaff(c); err != nil {
		return nil
	}
	locationID, err := s.parseID(c, "id", "location ID")
	if err != nil {
		return nil
	}

	if _, err := s.locationRepo.GetByID(c.UserContext(), locationID); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}
	if err := s.locationRepo.Delete(c.UserContext(), locationID); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// requireStaff rejects the request with 403 unless the actor has the staff
// flag. Returns errResponseWritten after committing the response.
func (s *Server) requireStaff(c *fiber.Ctx) error {
	staff, err := s.isStaffByUserID(c.UserContext(), actorID(c))
	if err != nil {
		_ = models.RespondWithError(c, statusForError(err), err)
		return errResponseWritten
	}
	if !staff {
		_ = models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("Staff access required"))
		return errResponseWritten
	}
	return nil
}
