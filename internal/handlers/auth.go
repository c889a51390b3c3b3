package handlers

import (
	"context"
	"errors"
	"net/http"

	"gallery-backend/internal/models"
	"gallery-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserService is the credential store surface the auth handlers need.
type UserService interface {
	Register(ctx context.Context, username, password string) error
	Verify(ctx context.Context, username, password string) (*models.User, error)
	ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error
}

// AuthMiddleware verifies the bearer token on protected routes and stores
// the caller's identity in locals for handlers to pass into services.
func AuthMiddleware(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "No token provided"})
		}

		var token string
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			token = authHeader[7:]
		}
		if token == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("username", claims.Username)
		return c.Next()
	}
}

// RegisterHandler creates a new user account
func RegisterHandler(users UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
		}
		if req.Username == "" || req.Password == "" {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "All fields required"})
		}

		if err := users.Register(c.Context(), req.Username, req.Password); err != nil {
			if errors.Is(err, services.ErrUserExists) {
				return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Username already exists"})
			}
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		return c.JSON(fiber.Map{"message": "User registered"})
	}
}

// LoginHandler checks credentials and returns a signed bearer token
func LoginHandler(users UserService, tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
		}

		user, err := users.Verify(c.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid credentials"})
			}
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		token, err := tokens.Issue(user.ID, user.Username)
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to generate token"})
		}

		return c.JSON(fiber.Map{"token": token})
	}
}

// ChangePasswordHandler replaces the authenticated user's password
func ChangePasswordHandler(users UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(int)

		var req models.ChangePasswordRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
		}
		if req.CurrentPassword == "" || req.NewPassword == "" {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "All fields required"})
		}

		if err := users.ChangePassword(c.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
			case errors.Is(err, services.ErrInvalidCredentials):
				return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Current password is incorrect"})
			default:
				return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
			}
		}

		return c.JSON(fiber.Map{"message": "Password changed successfully"})
	}
}
