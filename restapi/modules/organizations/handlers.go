// Package organizations exposes the organization directory over HTTP
package organizations

import (
	"github.com/gofiber/fiber/v2"

	"github.com/volunteerhub/backend/internal/apperrors"
	"github.com/volunteerhub/backend/internal/services"
	"github.com/volunteerhub/backend/restapi/modules/auth"
	"github.com/volunteerhub/backend/restapi/modules/listparams"
)

// List handles GET /organizations
func List(svc *services.OrganizationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		opts, err := listparams.Parse(c)
		if err != nil {
			return err
		}

		result, err := svc.List(c.Context(), opts)
		if err != nil {
			return err
		}
		return c.JSON(result)
	}
}

// Create handles POST /organizations
func Create(svc *services.OrganizationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreateOrganizationRequest
		if err := c.BodyParser(&req); err != nil {
			return apperrors.BadRequest("Invalid request body")
		}
		if details := req.Validate(); len(details) > 0 {
			return apperrors.Validation("Validation failed", details)
		}

		org, err := svc.Create(c.Context(), req.Organization(), auth.ActorFromCtx(c))
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(org)
	}
}

// Get handles GET /organizations/:id
func Get(svc *services.OrganizationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		org, err := svc.GetByID(c.Context(), c.Params("id"), auth.ActorFromCtx(c))
		if err != nil {
			return err
		}
		return c.JSON(org)
	}
}

// Patch handles PATCH /organizations/:id
func Patch(svc *services.OrganizationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req UpdateOrganizationRequest
		if err := c.BodyParser(&req); err != nil {
			return apperrors.BadRequest("Invalid request body")
		}
		if details := req.Validate(); len(details) > 0 {
			return apperrors.Validation("Validation failed", details)
		}

		org, err := svc.Update(c.Context(), c.Params("id"), *req.Patch(), auth.ActorFromCtx(c))
		if err != nil {
			return err
		}
		return c.JSON(org)
	}
}

// Delete handles DELETE /organizations/:id
func Delete(svc *services.OrganizationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id"), auth.ActorFromCtx(c)); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// Summary handles GET /organizations/:id/summary
func Summary(svc *services.OrganizationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		summary, err := svc.GetSummary(c.Context(), c.Params("id"), auth.ActorFromCtx(c))
		if err != nil {
			return err
		}
		return c.JSON(summary)
	}
}
