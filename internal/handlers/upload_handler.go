package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// MaxUploadSize caps a single image upload.
const MaxUploadSize = 5 << 20

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// uploadName keeps a readable stem and makes the name unique: "Cast Iron.PNG" -> "cast-iron-<uuid>.png".
func uploadName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	stem := slug.Make(strings.TrimSuffix(filepath.Base(original), filepath.Ext(original)))
	if stem == "" {
		return uuid.NewString() + ext
	}
	return fmt.Sprintf("%s-%s%s", stem, uuid.NewString(), ext)
}

// UploadFile handles POST /api/upload for product and profile images.
// It saves the file under the upload directory and returns its public URL.
func (h *Handlers) UploadFile(c *gin.Context) {
	// 1. Get the file from the request
	file, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "No file uploaded")
		return
	}
	if file.Size > MaxUploadSize {
		badRequest(c, "File is too large")
		return
	}
	if !imageExtensions[strings.ToLower(filepath.Ext(file.Filename))] {
		badRequest(c, "Only image files are allowed")
		return
	}

	// 2. Make sure the upload directory exists
	dir := h.Uploads.Dir
	if dir == "" {
		dir = "./uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		h.storeError(c, "Failed to save file", err)
		return
	}

	// 3. Save under a unique name
	name := uploadName(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		h.storeError(c, "Failed to save file", err)
		return
	}

	// 4. Return the public URL
	baseURL := strings.TrimRight(h.Uploads.BaseURL, "/")
	c.JSON(http.StatusOK, gin.H{"url": fmt.Sprintf("%s/uploads/%s", baseURL, name)})
}
