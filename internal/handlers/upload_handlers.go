package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"feastly/internal/common"
	"feastly/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const maxImageSize = 10 << 20 // 10 MB

// UploadHandlers handles image uploads for menu items.
type UploadHandlers struct {
	minioSvc services.MinioService
	bucket   string
}

func NewUploadHandlers(minioSvc services.MinioService, bucket string) *UploadHandlers {
	return &UploadHandlers{
		minioSvc: minioSvc,
		bucket:   bucket,
	}
}

// UploadImage handles POST /uploads/images
func (h *UploadHandlers) UploadImage(c echo.Context) error {
	ctx := c.Request().Context()

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return common.SendClientError(c, "image file is required")
	}
	if fileHeader.Size > maxImageSize {
		return common.SendClientError(c, "image must not exceed 10MB")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return common.SendClientError(c, "file must be an image")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to read upload")
	}
	defer src.Close()

	objectName := fmt.Sprintf("menu/%s%s", uuid.NewString(), filepath.Ext(fileHeader.Filename))
	if err := h.minioSvc.UploadImage(ctx, h.bucket, objectName, src, fileHeader.Size, contentType); err != nil {
		return common.SendServerError(c, "Failed to store image")
	}

	url, err := h.minioSvc.GetPresignedURL(ctx, h.bucket, objectName, 24*time.Hour)
	if err != nil {
		return common.SendServerError(c, "Failed to generate image URL")
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"object": objectName,
		"url":    url,
	})
}
