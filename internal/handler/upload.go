package handler

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UploadHandler stores poster images on local disk and hands back the
// public path the catalog records in Movie.Image. The blob store is
// deliberately dumb: one flat directory, random names, no metadata.
type UploadHandler struct {
	Dir string
}

func NewUploadHandler(dir string) *UploadHandler {
	return &UploadHandler{Dir: dir}
}

// acceptedImageTypes maps allowed multipart content types to the file
// extension written on disk.
var acceptedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Upload handles POST /v1/upload with a multipart `image` field.
// Anything that is not an accepted image format is rejected with 400.
func (h *UploadHandler) Upload(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no file uploaded"})
	}
	ext, ok := acceptedImageTypes[strings.ToLower(file.Header.Get("Content-Type"))]
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "only image files are allowed"})
	}

	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "read upload failed"})
	}
	defer src.Close()

	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store upload failed"})
	}
	name := "image-" + uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(h.Dir, name))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store upload failed"})
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store upload failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "image uploaded successfully",
		"image":   "/uploads/" + name,
	})
}
