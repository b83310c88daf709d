package db

import (
	"context"
	"fmt"

	"github.com/severetsunamist/real-estate-crm/internal/models"
)

// ContactFilter narrows contact lists the way the admin list screen
// does: by company, by primary flag, and by a name/email search.
type ContactFilter struct {
	CompanyID *int64
	IsPrimary *bool
	Q         string
}

const contactColumns = `contact_id, company_id, user_id, first_name, last_name, email, phone, is_primary, telegram_chat_id`

// ListContacts returns contacts ordered by company, primary flag and
// last name.
func (db *Database) ListContacts(ctx context.Context, f ContactFilter) ([]models.Contact, error) {
	query := `
        SELECT ` + contactColumns + `
        FROM contacts
        WHERE ($1::bigint IS NULL OR company_id = $1)
          AND ($2::boolean IS NULL OR is_primary = $2)
          AND ($3 = '' OR first_name ILIKE '%' || $3 || '%' OR last_name ILIKE '%' || $3 || '%' OR email ILIKE '%' || $3 || '%')
        ORDER BY company_id, is_primary DESC, last_name
    `
	rows, err := db.Pool.Query(ctx, query, f.CompanyID, f.IsPrimary, f.Q)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		var ct models.Contact
		if err := rows.Scan(
			&ct.ID, &ct.CompanyID, &ct.UserID, &ct.FirstName, &ct.LastName,
			&ct.Email, &ct.Phone, &ct.IsPrimary, &ct.TelegramChatID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contacts: %w", err)
	}
	return contacts, nil
}

// GetContact returns a single contact or ErrNotFound.
func (db *Database) GetContact(ctx context.Context, id int64) (*models.Contact, error) {
	var ct models.Contact
	err := db.Pool.QueryRow(ctx, `SELECT `+contactColumns+` FROM contacts WHERE contact_id = $1`, id).Scan(
		&ct.ID, &ct.CompanyID, &ct.UserID, &ct.FirstName, &ct.LastName,
		&ct.Email, &ct.Phone, &ct.IsPrimary, &ct.TelegramChatID,
	)
	if err != nil {
		return nil, wrapQueryErr("contact", err)
	}
	return &ct, nil
}

// CreateContact inserts a contact. A second primary contact for the
// same company is rejected by the partial unique index; callers detect
// that with IsUniqueViolation.
func (db *Database) CreateContact(ctx context.Context, ct models.Contact) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx, `
        INSERT INTO contacts (company_id, user_id, first_name, last_name, email, phone, is_primary, telegram_chat_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING contact_id
    `, ct.CompanyID, ct.UserID, ct.FirstName, ct.LastName, ct.Email, ct.Phone, ct.IsPrimary, ct.TelegramChatID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert contact: %w", err)
	}
	return id, nil
}

// UpdateContact updates a contact; flipping is_primary on while
// another primary exists fails the same way a create does.
func (db *Database) UpdateContact(ctx context.Context, id int64, ct models.Contact) error {
	tag, err := db.Pool.Exec(ctx, `
        UPDATE contacts
        SET company_id = $2, user_id = $3, first_name = $4, last_name = $5,
            email = $6, phone = $7, is_primary = $8, telegram_chat_id = $9
        WHERE contact_id = $1
    `, id, ct.CompanyID, ct.UserID, ct.FirstName, ct.LastName, ct.Email, ct.Phone, ct.IsPrimary, ct.TelegramChatID)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteContact removes a contact. Offers that referenced it keep
// living with a nulled contact reference (FK SET NULL).
func (db *Database) DeleteContact(ctx context.Context, id int64) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM contacts WHERE contact_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
