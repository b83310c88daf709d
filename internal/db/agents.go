package db

import (
	"context"
	"fmt"

	"github.com/severetsunamist/real-estate-crm/internal/models"
)

// AgentFilter narrows agent lists by company and active flag.
type AgentFilter struct {
	CompanyID *int64
	IsActive  *bool
}

const agentColumns = `agent_id, user_id, company_id, telegram_chat_id, is_active`

// ListAgents returns agents, optionally filtered.
func (db *Database) ListAgents(ctx context.Context, f AgentFilter) ([]models.Agent, error) {
	query := `
        SELECT ` + agentColumns + `
        FROM agents
        WHERE ($1::bigint IS NULL OR company_id = $1)
          AND ($2::boolean IS NULL OR is_active = $2)
        ORDER BY agent_id
    `
	rows, err := db.Pool.Query(ctx, query, f.CompanyID, f.IsActive)
	if err != nil {
		return nil, fmt.Errorf("failed to query agents: %w", err)
	}
	defer rows.Close()

	var agents []models.Agent
	for rows.Next() {
		var a models.Agent
		if err := rows.Scan(&a.ID, &a.UserID, &a.CompanyID, &a.TelegramChatID, &a.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan agent: %w", err)
		}
		agents = append(agents, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating agents: %w", err)
	}
	return agents, nil
}

// GetAgent returns a single agent or ErrNotFound.
func (db *Database) GetAgent(ctx context.Context, id int64) (*models.Agent, error) {
	var a models.Agent
	err := db.Pool.QueryRow(ctx, `SELECT `+agentColumns+` FROM agents WHERE agent_id = $1`, id).
		Scan(&a.ID, &a.UserID, &a.CompanyID, &a.TelegramChatID, &a.IsActive)
	if err != nil {
		return nil, wrapQueryErr("agent", err)
	}
	return &a, nil
}

// CreateAgent inserts an agent; a second row for the same user account
// hits the agents_one_per_user constraint.
func (db *Database) CreateAgent(ctx context.Context, a models.Agent) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx, `
        INSERT INTO agents (user_id, company_id, telegram_chat_id, is_active)
        VALUES ($1, $2, $3, $4)
        RETURNING agent_id
    `, a.UserID, a.CompanyID, a.TelegramChatID, a.IsActive).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert agent: %w", err)
	}
	return id, nil
}

// UpdateAgent updates an agent row.
func (db *Database) UpdateAgent(ctx context.Context, id int64, a models.Agent) error {
	tag, err := db.Pool.Exec(ctx, `
        UPDATE agents
        SET user_id = $2, company_id = $3, telegram_chat_id = $4, is_active = $5
        WHERE agent_id = $1
    `, id, a.UserID, a.CompanyID, a.TelegramChatID, a.IsActive)
	if err != nil {
		return fmt.Errorf("failed to update agent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAgent removes an agent row.
func (db *Database) DeleteAgent(ctx context.Context, id int64) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM agents WHERE agent_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete agent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
