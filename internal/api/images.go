package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/severetsunamist/real-estate-crm/internal/storage"
)

// parseImageID reads the UUID path parameter for image routes.
func parseImageID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("image_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image_id format"})
		return uuid.Nil, false
	}
	return id, true
}

// GetObjectImages handles GET /objects/:id/images in display order.
func (h *Handler) GetObjectImages(c *gin.Context) {
	objectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	images, err := h.db.ListObjectImages(ctx, objectID)
	if err != nil {
		storeError(c, err, "fetch object images")
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": images, "count": len(images)})
}

// UploadObjectImage handles POST /objects/:id/images: multipart file
// under "image" plus an optional "caption" form field. The image lands
// at the end of the display order.
func (h *Handler) UploadObjectImage(c *gin.Context) {
	objectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	file, header, contentType, ok := openImageUpload(c, "image")
	if !ok {
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(c.Request.Context(), uploadTimeout)
	defer cancel()

	key := storage.MakeKey(fmt.Sprintf("object_images/%d", objectID), header.Filename)
	url, err := h.store.Save(ctx, key, contentType, file)
	if err != nil {
		storeError(c, err, "upload image")
		return
	}

	id, err := h.db.AddObjectImage(ctx, objectID, url, c.PostForm("caption"))
	if err != nil {
		storeError(c, err, "save image")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"image_id": id, "image_url": url})
}

// imageEditRequest is the inline caption/order edit payload.
type imageEditRequest struct {
	Caption      string `json:"caption"`
	DisplayOrder int    `json:"display_order"`
}

// UpdateObjectImage handles PUT /images/:image_id.
func (h *Handler) UpdateObjectImage(c *gin.Context) {
	id, ok := parseImageID(c)
	if !ok {
		return
	}
	var req imageEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.db.UpdateObjectImage(ctx, id, req.Caption, req.DisplayOrder); err != nil {
		storeError(c, err, "update image")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "image updated"})
}

// reorderRequest carries image ids in the desired display order.
type reorderRequest struct {
	ImageIDs []uuid.UUID `json:"image_ids"`
}

// ReorderObjectImages handles PUT /objects/:id/images/reorder.
func (h *Handler) ReorderObjectImages(c *gin.Context) {
	objectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if len(req.ImageIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_ids is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.db.ReorderObjectImages(ctx, objectID, req.ImageIDs); err != nil {
		storeError(c, err, "reorder images")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "images reordered"})
}

// DeleteObjectImage handles DELETE /images/:image_id. The stored file
// is removed on a best-effort basis after the row goes.
func (h *Handler) DeleteObjectImage(c *gin.Context) {
	id, ok := parseImageID(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	img, err := h.db.DeleteObjectImage(ctx, id)
	if err != nil {
		storeError(c, err, "delete image")
		return
	}
	if key, ok := storage.KeyFromURL(img.ImageURL); ok {
		if err := h.store.Delete(ctx, key); err != nil {
			// Row is gone; an orphaned file is acceptable.
			c.JSON(http.StatusOK, gin.H{"message": "image deleted", "warning": "stored file not removed"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "image deleted"})
}
