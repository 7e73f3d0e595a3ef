package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/volunteerhub/backend/internal/apperrors"
	"github.com/volunteerhub/backend/model"
)

// ActorKey is the fiber.Ctx local and context key under which the
// authenticated actor is stored
const ActorKey = "actor"

// tokenFromRequest reads the bearer credential from the Authorization
// header, falling back to the auth cookie
func tokenFromRequest(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Cookies("auth_token")
}

// RequireAuth validates the JWT credential and blocks guests. A valid
// token yields the actor in c.Locals(ActorKey).
func RequireAuth(c *fiber.Ctx) error {
	token := tokenFromRequest(c)
	if token == "" {
		return apperrors.Unauthorized("")
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		return apperrors.Unauthorized("Invalid or expired session")
	}

	c.Locals(ActorKey, claims.Actor())
	return c.Next()
}

// RequireRole checks that the authenticated actor has one of the required
// roles. Must run after RequireAuth.
func RequireRole(allowedRoles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := c.Locals(ActorKey).(model.Actor)
		if !ok {
			return apperrors.Unauthorized("")
		}

		for _, role := range allowedRoles {
			if actor.Role == role {
				return c.Next()
			}
		}

		return apperrors.Forbidden("")
	}
}

// ActorFromCtx returns the authenticated actor stored by RequireAuth
func ActorFromCtx(c *fiber.Ctx) model.Actor {
	actor, _ := c.Locals(ActorKey).(model.Actor)
	return actor
}

type contextKey string

const actorContextKey contextKey = "actor"

// ContextWithActor carries the actor into a plain context, for resolvers
// running outside the fiber request
func ContextWithActor(ctx context.Context, actor model.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}

// ActorFromContext returns the actor stored by ContextWithActor
func ActorFromContext(ctx context.Context) model.Actor {
	actor, _ := ctx.Value(actorContextKey).(model.Actor)
	return actor
}
