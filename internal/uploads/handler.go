package uploads

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"stockdesk-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxUploadSize = 5 * 1024 * 1024 // 5MB

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// POST /api/uploads
// Image files only; stored under the configured dir with a generated name so
// client-supplied filenames never touch the filesystem.
func UploadImageHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "File could not be read: "+err.Error())
		}

		if fileHeader.Size > maxUploadSize {
			return fiber.NewError(fiber.StatusBadRequest, "File exceeds the 5MB limit")
		}

		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		if !allowedExtensions[ext] {
			return fiber.NewError(fiber.StatusBadRequest, "Only image files are accepted (jpg, jpeg, png, gif, webp)")
		}
		contentType := fileHeader.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			return fiber.NewError(fiber.StatusBadRequest, "Only image content types are accepted")
		}

		if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Upload directory could not be created")
		}

		filename := fmt.Sprintf("%s%s", uuid.NewString(), ext)
		dest := filepath.Join(cfg.UploadDir, filename)
		if err := c.SaveFile(fileHeader, dest); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "File could not be saved")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"filename": filename,
			"size":     fileHeader.Size,
		})
	}
}
