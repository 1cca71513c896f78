package server

import (
	"context"
	"errors"
	"fmt"

	"chronicle/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param, label string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+label))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parsePage reads the page query parameter; services clamp it further.
func parsePage(c *fiber.Ctx) int {
	return c.QueryInt("page", 1)
}

// actorID returns the authenticated user ID, or 0 for anonymous requests.
func actorID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}

// statusForError maps service error codes to HTTP statuses.
func statusForError(err error) int {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeValidationError:
			return fiber.StatusBadRequest
		case models.CodeNotFound:
			return fiber.StatusNotFound
		case models.CodeUnauthorized:
			return fiber.StatusUnauthorized
		}
	}
	return fiber.StatusInternalServerError
}

// respondServiceError writes the response for a failed mutation. A NOT_OWNER
// outcome becomes a redirect to the entity's detail view instead of a 403,
// so unauthorized callers learn nothing from the response; everything else
// maps to the usual status codes.
func respondServiceError(c *fiber.Ctx, err error, detailPath string) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) && appErr.Code == models.CodeNotOwner {
		return c.Redirect(detailPath, fiber.StatusSeeOther)
	}
	return models.RespondWithError(c, statusForError(err), err)
}

// postDetailPath builds the canonical detail location for a post.
func postDetailPath(postID uint) string {
	return fmt.Sprintf("/api/posts/%d", postID)
}

// isStaffByUserID checks whether the given user has staff privileges.
func (s *Server) isStaffByUserID(ctx context.Context, userID uint) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	return s.userRepo.IsStaff(ctx, userID)
}
