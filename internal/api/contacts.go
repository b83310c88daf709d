package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/severetsunamist/real-estate-crm/internal/db"
	"github.com/severetsunamist/real-estate-crm/internal/models"
)

const primaryContactConstraint = "contacts_one_primary_per_company"

// queryInt64 parses an optional int64 query parameter.
func queryInt64(c *gin.Context, name string) (*int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return nil, false
	}
	return &v, true
}

// queryBool parses an optional boolean query parameter.
func queryBool(c *gin.Context, name string) (*bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return nil, false
	}
	return &v, true
}

// GetContacts handles GET /contacts with company/primary filters and
// a name/email search.
func (h *Handler) GetContacts(c *gin.Context) {
	companyID, ok := queryInt64(c, "company_id")
	if !ok {
		return
	}
	isPrimary, ok := queryBool(c, "is_primary")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	contacts, err := h.db.ListContacts(ctx, db.ContactFilter{
		CompanyID: companyID,
		IsPrimary: isPrimary,
		Q:         c.Query("q"),
	})
	if err != nil {
		storeError(c, err, "fetch contacts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"contacts": contacts, "count": len(contacts)})
}

// CreateContact handles POST /companies/:id/contacts, the inline
// create on the company screen.
func (h *Handler) CreateContact(c *gin.Context) {
	companyID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var contact models.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	contact.CompanyID = companyID
	if err := contact.Validate(); err != nil {
		validationError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	id, err := h.db.CreateContact(ctx, contact)
	if err != nil {
		if db.IsUniqueViolation(err, primaryContactConstraint) {
			c.JSON(http.StatusConflict, gin.H{
				"error":      "This company already has a primary contact",
				"error_code": "DUPLICATE_PRIMARY_CONTACT",
			})
			return
		}
		storeError(c, err, "create contact")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"contact_id": id})
}

// UpdateContact handles PUT /contacts/:id.
func (h *Handler) UpdateContact(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var contact models.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := contact.Validate(); err != nil {
		validationError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.db.UpdateContact(ctx, id, contact); err != nil {
		if db.IsUniqueViolation(err, primaryContactConstraint) {
			c.JSON(http.StatusConflict, gin.H{
				"error":      "This company already has a primary contact",
				"error_code": "DUPLICATE_PRIMARY_CONTACT",
			})
			return
		}
		storeError(c, err, "update contact")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "contact updated"})
}

// DeleteContact handles DELETE /contacts/:id. Offers that referenced
// this contact keep living with an empty contact field.
func (h *Handler) DeleteContact(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.db.DeleteContact(ctx, id); err != nil {
		storeError(c, err, "delete contact")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "contact deleted"})
}
