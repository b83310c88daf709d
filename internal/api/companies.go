package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/severetsunamist/real-estate-crm/internal/models"
	"github.com/severetsunamist/real-estate-crm/internal/storage"
)

// GetCompanies handles GET /companies with the q search box.
func (h *Handler) GetCompanies(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	companies, err := h.db.ListCompanies(ctx, c.Query("q"))
	if err != nil {
		storeError(c, err, "fetch companies")
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": companies, "count": len(companies)})
}

// GetCompany handles GET /companies/:id.
func (h *Handler) GetCompany(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	company, err := h.db.GetCompany(ctx, id)
	if err != nil {
		storeError(c, err, "company")
		return
	}
	c.JSON(http.StatusOK, company)
}

// CreateCompany handles POST /companies.
func (h *Handler) CreateCompany(c *gin.Context) {
	var company models.Company
	if err := c.ShouldBindJSON(&company); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := company.Validate(); err != nil {
		validationError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	id, err := h.db.CreateCompany(ctx, company)
	if err != nil {
		storeError(c, err, "create company")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"company_id": id})
}

// UpdateCompany handles PUT /companies/:id.
func (h *Handler) UpdateCompany(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var company models.Company
	if err := c.ShouldBindJSON(&company); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := company.Validate(); err != nil {
		validationError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.db.UpdateCompany(ctx, id, company); err != nil {
		storeError(c, err, "update company")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "company updated"})
}

// DeleteCompany handles DELETE /companies/:id. Contacts and objects
// go with it.
func (h *Handler) DeleteCompany(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.db.DeleteCompany(ctx, id); err != nil {
		storeError(c, err, "delete company")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "company deleted"})
}

// UploadCompanyLogo handles POST /companies/:id/logo.
func (h *Handler) UploadCompanyLogo(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	file, header, contentType, ok := openImageUpload(c, "logo")
	if !ok {
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(c.Request.Context(), uploadTimeout)
	defer cancel()

	key := storage.MakeKey(fmt.Sprintf("company_logos/%d", id), header.Filename)
	url, err := h.store.Save(ctx, key, contentType, file)
	if err != nil {
		storeError(c, err, "upload logo")
		return
	}
	if err := h.db.SetCompanyLogo(ctx, id, url); err != nil {
		storeError(c, err, "save logo")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"logo_url": url})
}
