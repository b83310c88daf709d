package db

import (
	"context"
	"fmt"

	"github.com/severetsunamist/real-estate-crm/internal/models"
)

// ListCompanies returns companies ordered by name, with the contact
// and object counters the list screen shows. q searches name and
// description.
func (db *Database) ListCompanies(ctx context.Context, q string) ([]models.Company, error) {
	query := `
        SELECT c.company_id, c.name, c.description, c.logo_url, c.website, c.created_at,
               (SELECT COUNT(*) FROM contacts ct WHERE ct.company_id = c.company_id) AS contact_count,
               (SELECT COUNT(*) FROM objects o WHERE o.owner_id = c.company_id) AS object_count
        FROM companies c
        WHERE ($1 = '' OR c.name ILIKE '%' || $1 || '%' OR c.description ILIKE '%' || $1 || '%')
        ORDER BY c.name
    `
	rows, err := db.Pool.Query(ctx, query, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	var companies []models.Company
	for rows.Next() {
		var co models.Company
		if err := rows.Scan(
			&co.ID, &co.Name, &co.Description, &co.LogoURL, &co.Website, &co.CreatedAt,
			&co.ContactCount, &co.ObjectCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, co)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating companies: %w", err)
	}
	return companies, nil
}

// GetCompany returns a single company or ErrNotFound.
func (db *Database) GetCompany(ctx context.Context, id int64) (*models.Company, error) {
	var co models.Company
	err := db.Pool.QueryRow(ctx, `
        SELECT company_id, name, description, logo_url, website, created_at
        FROM companies WHERE company_id = $1
    `, id).Scan(&co.ID, &co.Name, &co.Description, &co.LogoURL, &co.Website, &co.CreatedAt)
	if err != nil {
		return nil, wrapQueryErr("company", err)
	}
	return &co, nil
}

// CreateCompany inserts a company and returns its id.
func (db *Database) CreateCompany(ctx context.Context, co models.Company) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx, `
        INSERT INTO companies (name, description, website)
        VALUES ($1, $2, $3)
        RETURNING company_id
    `, co.Name, co.Description, co.Website).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert company: %w", err)
	}
	return id, nil
}

// UpdateCompany updates the editable fields of a company.
func (db *Database) UpdateCompany(ctx context.Context, id int64, co models.Company) error {
	tag, err := db.Pool.Exec(ctx, `
        UPDATE companies
        SET name = $2, description = $3, website = $4
        WHERE company_id = $1
    `, id, co.Name, co.Description, co.Website)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetCompanyLogo stores the uploaded logo URL.
func (db *Database) SetCompanyLogo(ctx context.Context, id int64, logoURL string) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE companies SET logo_url = $2 WHERE company_id = $1`, id, logoURL)
	if err != nil {
		return fmt.Errorf("failed to set company logo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCompany removes a company; contacts and objects cascade at the
// storage layer.
func (db *Database) DeleteCompany(ctx context.Context, id int64) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM companies WHERE company_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
