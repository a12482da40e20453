package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"glowdesk/services/storage"
	"glowdesk/utils"

	"github.com/gin-gonic/gin"
)

// allowedBuckets defines permitted upload destinations.
var allowedBuckets = map[string]bool{
	"logos":    true,
	"branches": true,
	"staff":    true,
}

// UploadHandler handles media uploads (tenant logos, branch photos).
type UploadHandler struct {
	storage storage.StorageService
}

// NewUploadHandler creates an UploadHandler. storage may be nil when
// Cloudinary is not configured.
func NewUploadHandler(storage storage.StorageService) *UploadHandler {
	return &UploadHandler{storage: storage}
}

// Upload stores a file in the given bucket and returns its URL.
func (h *UploadHandler) Upload(c *gin.Context) {
	if h.storage == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "media storage not configured", "")
		return
	}

	bucket := c.Param("bucket")
	if !allowedBuckets[bucket] {
		utils.JSONError(c, http.StatusBadRequest, "invalid bucket; allowed values are 'logos', 'branches' and 'staff'", "")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "file not provided", err.Error())
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to save file", err.Error())
		return
	}
	defer os.Remove(tempFilePath)

	destFolder := c.GetString("tenantID") + "/" + bucket
	publicID, url, err := h.storage.UploadFile(c, tempFilePath, destFolder)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to upload file", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"publicId": publicID, "url": url})
}
