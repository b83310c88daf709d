package api

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/severetsunamist/real-estate-crm/internal/db"
	"github.com/severetsunamist/real-estate-crm/internal/models"
	"github.com/severetsunamist/real-estate-crm/internal/storage"
)

const (
	requestTimeout = 10 * time.Second
	uploadTimeout  = 30 * time.Second
	maxUploadSize  = 10 * 1024 * 1024
)

// Handler holds the database and file storage and provides the HTTP
// handlers for the admin surface.
type Handler struct {
	db    *db.Database
	store storage.FileStorage
}

// NewHandler creates a new handler instance.
func NewHandler(database *db.Database, store storage.FileStorage) *Handler {
	return &Handler{db: database, store: store}
}

// Health reports database reachability for readiness probes.
func (h *Handler) Health(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "database not initialized"})
		return
	}
	if err := h.db.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseID reads a positive integer path parameter; on failure it
// writes the 400 response and reports false.
func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " format"})
		return 0, false
	}
	return id, true
}

// validationError renders model validation failures as the form-style
// field map the admin frontend expects.
func validationError(c *gin.Context, err error) {
	var fields models.FieldErrors
	if errors.As(err, &fields) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// storeError maps storage-layer failures to HTTP responses. Anything
// the constraints reject is a client error; everything else is fatal
// to the request.
func storeError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msg + " not found"})
	case db.IsForeignKeyViolation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "referenced row does not exist"})
	case db.IsCheckViolation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "value rejected by a storage constraint"})
	default:
		log.Printf("[API] %s: %v", msg, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + msg})
	}
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// openImageUpload validates and opens the multipart file under field:
// size cap, then content sniffing so the declared type cannot lie. On
// failure the response is already written and ok is false.
func openImageUpload(c *gin.Context, field string) (file multipart.File, header *multipart.FileHeader, contentType string, ok bool) {
	header, err := c.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing '" + field + "' form field"})
		return nil, nil, "", false
	}
	if header.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds 10MB limit"})
		return nil, nil, "", false
	}

	file, err = header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open uploaded file"})
		return nil, nil, "", false
	}

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && n == 0 {
		file.Close()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file content"})
		return nil, nil, "", false
	}
	file.Seek(0, 0)

	contentType = http.DetectContentType(buffer[:n])
	if !allowedImageTypes[contentType] {
		file.Close()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Only images are allowed"})
		return nil, nil, "", false
	}

	return file, header, contentType, true
}
