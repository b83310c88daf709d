package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/severetsunamist/real-estate-crm/internal/db"
	"github.com/severetsunamist/real-estate-crm/internal/models"
)

// objectJSON is the detail-screen projection: the object plus offers
// rendered with their derived fields.
type objectJSON struct {
	models.Object
	Offers []offerJSON `json:"offers,omitempty"`
}

func renderObject(o models.Object) objectJSON {
	out := objectJSON{Object: o}
	for _, offer := range o.Offers {
		out.Offers = append(out.Offers, renderOffer(offer))
	}
	out.Object.Offers = nil
	return out
}

// GetObjects handles GET /objects with the type/city/status filter
// dropdowns and the name/address search box.
func (h *Handler) GetObjects(c *gin.Context) {
	filter := db.ObjectFilter{Q: c.Query("q")}

	if raw := c.Query("object_type"); raw != "" {
		t := models.ObjectType(raw)
		filter.ObjectType = &t
	}
	if raw := c.Query("city"); raw != "" {
		city := models.City(raw)
		filter.City = &city
	}
	if raw := c.Query("status"); raw != "" {
		s := models.ObjectStatus(raw)
		filter.Status = &s
	}
	ownerID, ok := queryInt64(c, "owner_id")
	if !ok {
		return
	}
	filter.OwnerID = ownerID

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	objects, err := h.db.ListObjects(ctx, filter)
	if err != nil {
		storeError(c, err, "fetch objects")
		return
	}
	c.JSON(http.StatusOK, gin.H{"objects": objects, "count": len(objects)})
}

// GetObject handles GET /objects/:id with image and offer inlines.
func (h *Handler) GetObject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	object, err := h.db.GetObject(ctx, id)
	if err != nil {
		storeError(c, err, "object")
		return
	}
	c.JSON(http.StatusOK, renderObject(*object))
}

// CreateObject handles POST /objects.
func (h *Handler) CreateObject(c *gin.Context) {
	var object models.Object
	if err := c.ShouldBindJSON(&object); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	object.Normalize()
	if err := object.Validate(); err != nil {
		validationError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	id, err := h.db.CreateObject(ctx, object)
	if err != nil {
		storeError(c, err, "create object")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"object_id": id})
}

// UpdateObject handles PUT /objects/:id.
func (h *Handler) UpdateObject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var object models.Object
	if err := c.ShouldBindJSON(&object); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	object.Normalize()
	if err := object.Validate(); err != nil {
		validationError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.db.UpdateObject(ctx, id, object); err != nil {
		storeError(c, err, "update object")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "object updated"})
}

// DeleteObject handles DELETE /objects/:id. Offers and images cascade.
func (h *Handler) DeleteObject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.db.DeleteObject(ctx, id); err != nil {
		storeError(c, err, "delete object")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "object deleted"})
}
