package handlers

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"gallery-backend/internal/models"
	"gallery-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PhotoService is the ownership-scoped CRUD surface the photo handlers
// need.
type PhotoService interface {
	Create(ctx context.Context, userID int, in models.PhotoInput) (*models.Photo, error)
	ListOwned(ctx context.Context, userID int) ([]models.Photo, error)
	GetOwned(ctx context.Context, userID int, photoID string) (*models.Photo, error)
	Update(ctx context.Context, userID int, photoID string, in models.PhotoInput) (*models.Photo, error)
	Delete(ctx context.Context, userID int, photoID string) error
}

// UploadConfig tells the photo handlers where uploaded files go and how
// they are addressed from the outside.
type UploadConfig struct {
	Dir     string
	BaseURL string
}

// saveUpload writes the uploaded file under a timestamp-derived name and
// returns the public URL and the path on disk.
func saveUpload(c *fiber.Ctx, fileHeader *multipart.FileHeader, cfg UploadConfig) (url, destPath string, err error) {
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	ext := filepath.Ext(fileHeader.Filename)
	filename := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	destPath = filepath.Join(cfg.Dir, filename)

	if err := c.SaveFile(fileHeader, destPath); err != nil {
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	if cfg.BaseURL == "" {
		url = "/uploads/" + filename
	} else {
		url = fmt.Sprintf("%s/uploads/%s", cfg.BaseURL, filename)
	}
	return url, destPath, nil
}

// parsePhotoInput reads title/description/imageUrl from a JSON body or
// multipart form, and stores an uploaded "image" file if one is present.
// The stored file's URL wins over any submitted imageUrl.
func parsePhotoInput(c *fiber.Ctx, cfg UploadConfig) (in models.PhotoInput, destPath string, err error) {
	// A multipart request with only a file has no parseable fields; that
	// is fine, all fields are optional.
	_ = c.BodyParser(&in)

	fileHeader, ferr := c.FormFile("image")
	if ferr != nil {
		return in, "", nil
	}

	url, destPath, err := saveUpload(c, fileHeader, cfg)
	if err != nil {
		return in, "", err
	}
	in.ImageURL = url
	return in, destPath, nil
}

// CreatePhotoHandler persists a new photo owned by the authenticated user
func CreatePhotoHandler(photos PhotoService, cfg UploadConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(int)

		in, destPath, err := parsePhotoInput(c, cfg)
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		photo, err := photos.Create(c.Context(), userID, in)
		if err != nil {
			// Don't leave an orphaned file behind if the insert failed
			if destPath != "" {
				_ = os.Remove(destPath)
			}
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		return c.Status(http.StatusCreated).JSON(photo)
	}
}

// ListPhotosHandler returns all photos owned by the authenticated user
func ListPhotosHandler(photos PhotoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(int)

		list, err := photos.ListOwned(c.Context(), userID)
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(list)
	}
}

// GetPhotoHandler returns a single photo if the authenticated user owns it
func GetPhotoHandler(photos PhotoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(int)

		photo, err := photos.GetOwned(c.Context(), userID, c.Params("id"))
		if err != nil {
			if errors.Is(err, services.ErrPhotoNotFound) {
				return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
			}
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(photo)
	}
}

// UpdatePhotoHandler rewrites a photo's fields under the same ownership
// filter as get
func UpdatePhotoHandler(photos PhotoService, cfg UploadConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(int)

		in, destPath, err := parsePhotoInput(c, cfg)
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		photo, err := photos.Update(c.Context(), userID, c.Params("id"), in)
		if err != nil {
			if destPath != "" {
				_ = os.Remove(destPath)
			}
			if errors.Is(err, services.ErrPhotoNotFound) {
				return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
			}
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(photo)
	}
}

// DeletePhotoHandler removes a photo if the authenticated user owns it
func DeletePhotoHandler(photos PhotoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(int)

		if err := photos.Delete(c.Context(), userID, c.Params("id")); err != nil {
			if errors.Is(err, services.ErrPhotoNotFound) {
				return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
			}
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"message": "Photo deleted"})
	}
}
