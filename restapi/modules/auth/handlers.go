package auth

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/volunteerhub/backend/config"
	"github.com/volunteerhub/backend/database"
	"github.com/volunteerhub/backend/internal/apperrors"
	"github.com/volunteerhub/backend/internal/store"
	"github.com/volunteerhub/backend/model"
)

// SetAuthCookie writes the session token as an HTTP-only cookie
func SetAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "auth_token",
		Value:    token,
		Expires:  time.Now().Add(GetJWTExpirationTime()),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
}

// Login verifies an email/password pair and issues a session token
func Login(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&req); err != nil {
			return apperrors.BadRequest("Invalid request body")
		}
		if req.Email == "" || req.Password == "" {
			return apperrors.BadRequest("Email and password are required")
		}

		var user model.User
		err := st.GetByField(c.Context(), store.CollectionUsers, "email", req.Email, &user)
		if err != nil {
			// Same response whether the account exists or not
			return apperrors.Unauthorized("Invalid credentials")
		}
		if !user.IsActive || !CheckPasswordHash(req.Password, user.PasswordHash) {
			return apperrors.Unauthorized("Invalid credentials")
		}

		token, err := GenerateJWT(&user)
		if err != nil {
			return apperrors.Internal("")
		}
		SetAuthCookie(c, token)

		user.PasswordHash = ""
		return c.JSON(fiber.Map{
			"token": token,
			"user":  user,
		})
	}
}

// Logout clears the session cookie
func Logout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{
			Name:     "auth_token",
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			Path:     "/",
		})
		return c.JSON(fiber.Map{"success": true})
	}
}

// Me returns the authenticated user's record
func Me(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := ActorFromCtx(c)

		var user model.User
		if err := st.GetByKey(c.Context(), store.CollectionUsers, actor.UID, &user); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return apperrors.Unauthorized("")
			}
			return apperrors.Internal("")
		}

		user.PasswordHash = ""
		return c.JSON(user)
	}
}

// ChangePassword updates the authenticated user's password
func ChangePassword(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			CurrentPassword string `json:"current_password"`
			NewPassword     string `json:"new_password"`
		}
		if err := c.BodyParser(&req); err != nil {
			return apperrors.BadRequest("Invalid request body")
		}
		if len(req.NewPassword) < 8 {
			return apperrors.Validation("Password too weak", []apperrors.FieldError{
				{Field: "new_password", Message: "password must be at least 8 characters long"},
			})
		}

		actor := ActorFromCtx(c)
		var user model.User
		if err := st.GetByKey(c.Context(), store.CollectionUsers, actor.UID, &user); err != nil {
			return apperrors.Unauthorized("")
		}
		if !CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
			return apperrors.Unauthorized("Invalid credentials")
		}

		hash, err := HashPassword(req.NewPassword)
		if err != nil {
			return apperrors.Internal("")
		}
		if err := st.Update(c.Context(), store.CollectionUsers, user.Key, map[string]interface{}{
			"password_hash": hash,
		}, nil); err != nil {
			return apperrors.Internal("")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}

// BootstrapAdmin creates the initial admin account when the users
// collection is empty. Without ADMIN_PASSWORD set, bootstrap is skipped so
// a default credential never ships.
func BootstrapAdmin(ctx context.Context, st store.Store, cfg config.Config) error {
	logger := database.Logger().Sugar()

	count, err := st.Count(ctx, store.CollectionUsers, nil)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if cfg.AdminPass == "" {
		logger.Warnf("No users exist and ADMIN_PASSWORD is unset; skipping admin bootstrap")
		return nil
	}

	hash, err := HashPassword(cfg.AdminPass)
	if err != nil {
		return err
	}

	admin := model.NewUser(cfg.AdminEmail, model.RoleAdmin)
	admin.DisplayName = "Administrator"
	admin.PasswordHash = hash

	if err := st.Create(ctx, store.CollectionUsers, admin, nil); err != nil {
		return err
	}

	logger.Infof("Bootstrapped admin account %s", cfg.AdminEmail)
	return nil
}
