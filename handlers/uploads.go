package handlers

import (
	"context"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/postdigester/donation-backend/pkg/logger"
)

// MaxUploadBytes caps avatar uploads.
const MaxUploadBytes = 5 << 20

const presignTTL = 24 * time.Hour

// ObjectStore is the subset of storage.MinIOStorage used for images.
type ObjectStore interface {
	UploadFile(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	DownloadFile(ctx context.Context, key string) (io.ReadCloser, string, error)
	GetPresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

type UploadHandler struct {
	store ObjectStore
}

func NewUploadHandler(s ObjectStore) *UploadHandler {
	return &UploadHandler{store: s}
}

func (h *UploadHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/uploads", h.Upload)
	rg.GET("/uploads/:key", h.Download)
}

// Upload stores a multipart "file" image and returns its key plus a presigned
// URL the client can put in a donor or user image field.
func (h *UploadHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "multipart field \"file\" is required"})
		return
	}
	if fh.Size > MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"success": false, "message": "file too large"})
		return
	}
	ct := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "only image uploads are accepted"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "cannot read upload"})
		return
	}
	defer f.Close()

	key := uuid.NewString() + strings.ToLower(path.Ext(fh.Filename))
	ctx := c.Request.Context()
	if err := h.store.UploadFile(ctx, key, f, fh.Size, ct); err != nil {
		logger.Errorf("upload %s: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to store file"})
		return
	}
	url, err := h.store.GetPresignedURL(ctx, key, presignTTL)
	if err != nil {
		logger.Errorf("presign %s: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to sign file URL"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "file uploaded", "key": key, "url": url})
}

func (h *UploadHandler) Download(c *gin.Context) {
	key := c.Param("key")
	rc, ct, err := h.store.DownloadFile(c.Request.Context(), key)
	if err != nil {
		logger.Debugf("download %s: %v", key, err)
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "file not found"})
		return
	}
	defer rc.Close()
	if ct == "" {
		ct = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, -1, ct, rc, nil)
}
