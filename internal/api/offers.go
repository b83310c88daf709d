package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/severetsunamist/real-estate-crm/internal/db"
	"github.com/severetsunamist/real-estate-crm/internal/models"
	"github.com/severetsunamist/real-estate-crm/internal/storage"
)

// offerJSON adds the derived fields every offer response carries:
// the computed total area and the formatted price string.
type offerJSON struct {
	models.Offer
	TotalArea    float64     `json:"total_area"`
	PriceDisplay string      `json:"price_display"`
	ChildOffers  []offerJSON `json:"child_offers,omitempty"`
}

func renderOffer(o models.Offer) offerJSON {
	out := offerJSON{Offer: o, TotalArea: o.TotalArea(), PriceDisplay: o.PriceDisplay()}
	for _, child := range o.ChildOffers {
		out.ChildOffers = append(out.ChildOffers, renderOffer(child))
	}
	out.Offer.ChildOffers = nil
	return out
}

func renderOffers(offers []models.Offer) []offerJSON {
	out := make([]offerJSON, 0, len(offers))
	for _, o := range offers {
		out = append(out, renderOffer(o))
	}
	return out
}

// GetOffers handles GET /offers with the list screen's filters.
func (h *Handler) GetOffers(c *gin.Context) {
	filter := db.OfferFilter{Q: c.Query("q")}

	objectID, ok := queryInt64(c, "object_id")
	if !ok {
		return
	}
	filter.ObjectID = objectID

	isAvailable, ok := queryBool(c, "is_available")
	if !ok {
		return
	}
	filter.IsAvailable = isAvailable

	if raw := c.Query("vacancy_type"); raw != "" {
		t := models.VacancyType(raw)
		filter.VacancyType = &t
	}
	if raw := c.Query("offer_type"); raw != "" {
		t := models.OfferType(raw)
		filter.OfferType = &t
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	offers, err := h.db.ListOffers(ctx, filter)
	if err != nil {
		storeError(c, err, "fetch offers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": renderOffers(offers), "count": len(offers)})
}

// GetOffer handles GET /offers/:id with sub-divided child offers.
func (h *Handler) GetOffer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	offer, err := h.db.GetOffer(ctx, id)
	if err != nil {
		storeError(c, err, "offer")
		return
	}
	c.JSON(http.StatusOK, renderOffer(*offer))
}

// CreateOffer handles POST /objects/:id/offers, the inline create on
// the object screen.
func (h *Handler) CreateOffer(c *gin.Context) {
	objectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var offer models.Offer
	if err := c.ShouldBindJSON(&offer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	offer.ObjectID = objectID
	offer.Normalize()
	if err := offer.Validate(); err != nil {
		validationError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	id, err := h.db.CreateOffer(ctx, offer)
	if err != nil {
		storeError(c, err, "create offer")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"offer_id": id})
}

// UpdateOffer handles PUT /offers/:id.
func (h *Handler) UpdateOffer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var offer models.Offer
	if err := c.ShouldBindJSON(&offer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	offer.Normalize()
	if err := offer.Validate(); err != nil {
		validationError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.db.UpdateOffer(ctx, id, offer); err != nil {
		storeError(c, err, "update offer")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "offer updated"})
}

// DeleteOffer handles DELETE /offers/:id. Child offers cascade.
func (h *Handler) DeleteOffer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.db.DeleteOffer(ctx, id); err != nil {
		storeError(c, err, "delete offer")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "offer deleted"})
}

// UploadOfferFloorplan handles POST /offers/:id/floorplan.
func (h *Handler) UploadOfferFloorplan(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	file, header, contentType, ok := openImageUpload(c, "floorplan")
	if !ok {
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(c.Request.Context(), uploadTimeout)
	defer cancel()

	key := storage.MakeKey(fmt.Sprintf("floorplans/%d", id), header.Filename)
	url, err := h.store.Save(ctx, key, contentType, file)
	if err != nil {
		storeError(c, err, "upload floorplan")
		return
	}
	if err := h.db.SetOfferFloorplan(ctx, id, url); err != nil {
		storeError(c, err, "save floorplan")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"floorplan_url": url})
}
