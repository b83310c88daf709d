package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/severetsunamist/real-estate-crm/internal/db"
	"github.com/severetsunamist/real-estate-crm/internal/models"
)

const agentUserConstraint = "agents_one_per_user"

// GetAgents handles GET /agents with company/active filters.
func (h *Handler) GetAgents(c *gin.Context) {
	companyID, ok := queryInt64(c, "company_id")
	if !ok {
		return
	}
	isActive, ok := queryBool(c, "is_active")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	agents, err := h.db.ListAgents(ctx, db.AgentFilter{CompanyID: companyID, IsActive: isActive})
	if err != nil {
		storeError(c, err, "fetch agents")
		return
	}
	c.JSON(http.StatusOK, gin.H{"agents": agents, "count": len(agents)})
}

// CreateAgent handles POST /agents.
func (h *Handler) CreateAgent(c *gin.Context) {
	var agent models.Agent
	if err := c.ShouldBindJSON(&agent); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := agent.Validate(); err != nil {
		validationError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	id, err := h.db.CreateAgent(ctx, agent)
	if err != nil {
		if db.IsUniqueViolation(err, agentUserConstraint) {
			c.JSON(http.StatusConflict, gin.H{
				"error":      "This user already has an agent profile",
				"error_code": "DUPLICATE_AGENT_USER",
			})
			return
		}
		storeError(c, err, "create agent")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"agent_id": id})
}

// UpdateAgent handles PUT /agents/:id.
func (h *Handler) UpdateAgent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var agent models.Agent
	if err := c.ShouldBindJSON(&agent); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := agent.Validate(); err != nil {
		validationError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.db.UpdateAgent(ctx, id, agent); err != nil {
		if db.IsUniqueViolation(err, agentUserConstraint) {
			c.JSON(http.StatusConflict, gin.H{
				"error":      "This user already has an agent profile",
				"error_code": "DUPLICATE_AGENT_USER",
			})
			return
		}
		storeError(c, err, "update agent")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "agent updated"})
}

// DeleteAgent handles DELETE /agents/:id.
func (h *Handler) DeleteAgent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.db.DeleteAgent(ctx, id); err != nil {
		storeError(c, err, "delete agent")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "agent deleted"})
}
