// Package volunteers exposes volunteer roster management over HTTP
package volunteers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/volunteerhub/backend/internal/apperrors"
	"github.com/volunteerhub/backend/internal/services"
	"github.com/volunteerhub/backend/restapi/modules/auth"
	"github.com/volunteerhub/backend/restapi/modules/listparams"
)

// List handles GET /volunteers. Without an organization_id parameter the
// list is scoped to the caller's own organization.
func List(svc *services.VolunteerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		opts, err := listparams.Parse(c)
		if err != nil {
			return err
		}
		opts.Tags = listparams.CSV(c, "skills")

		result, err := svc.List(c.Context(), c.Query("organization_id"), opts, auth.ActorFromCtx(c))
		if err != nil {
			return err
		}
		return c.JSON(result)
	}
}

// Create handles POST /volunteers
func Create(svc *services.VolunteerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreateVolunteerRequest
		if err := c.BodyParser(&req); err != nil {
			return apperrors.BadRequest("Invalid request body")
		}
		if details := req.Validate(); len(details) > 0 {
			return apperrors.Validation("Validation failed", details)
		}

		vol, err := svc.Create(c.Context(), req.Volunteer(), auth.ActorFromCtx(c))
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(vol)
	}
}

// Get handles GET /volunteers/:id
func Get(svc *services.VolunteerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		vol, err := svc.GetByID(c.Context(), c.Params("id"), auth.ActorFromCtx(c))
		if err != nil {
			return err
		}
		return c.JSON(vol)
	}
}

// Patch handles PATCH /volunteers/:id
func Patch(svc *services.VolunteerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req UpdateVolunteerRequest
		if err := c.BodyParser(&req); err != nil {
			return apperrors.BadRequest("Invalid request body")
		}
		if details := req.Validate(); len(details) > 0 {
			return apperrors.Validation("Validation failed", details)
		}

		vol, err := svc.Update(c.Context(), c.Params("id"), *req.Patch(), auth.ActorFromCtx(c))
		if err != nil {
			return err
		}
		return c.JSON(vol)
	}
}

// Delete handles DELETE /volunteers/:id
func Delete(svc *services.VolunteerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id"), auth.ActorFromCtx(c)); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
