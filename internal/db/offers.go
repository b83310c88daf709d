package db

import (
	"context"
	"fmt"

	"github.com/severetsunamist/real-estate-crm/internal/models"
)

// OfferFilter is the offer list screen's filter set.
type OfferFilter struct {
	ObjectID    *int64
	VacancyType *models.VacancyType
	OfferType   *models.OfferType
	IsAvailable *bool
	Q           string
}

const offerColumns = `offer_id, object_id, vacancy_type, offer_type, parent_offer_id, title, contact_id,
		whs_area, mez_area, office_area, tech_area,
		sale_price, lease_price_per_sqm, currency,
		is_available, available_from,
		height, column_grid, floor_load, floor_type, docks_count,
		fire_alarm, sprinkler_system, smoke_removal, hydrants, special_fire_system,
		ventilation, electricity_kw, water, heating, sewage,
		floorplan_url, description, created_at, updated_at`

func scanOffer(row interface{ Scan(...any) error }, o *models.Offer) error {
	return row.Scan(
		&o.ID, &o.ObjectID, &o.VacancyType, &o.OfferType, &o.ParentOfferID, &o.Title, &o.ContactID,
		&o.WhsArea, &o.MezArea, &o.OfficeArea, &o.TechArea,
		&o.SalePrice, &o.LeasePricePerSqm, &o.Currency,
		&o.IsAvailable, &o.AvailableFrom,
		&o.Height, &o.ColumnGrid, &o.FloorLoad, &o.FloorType, &o.DocksCount,
		&o.FireAlarm, &o.SprinklerSystem, &o.SmokeRemoval, &o.Hydrants, &o.SpecialFireSystem,
		&o.Ventilation, &o.Electricity, &o.Water, &o.Heating, &o.Sewage,
		&o.FloorplanURL, &o.Desc, &o.CreatedAt, &o.UpdatedAt,
	)
}

// ListOffers returns offers newest first.
func (db *Database) ListOffers(ctx context.Context, f OfferFilter) ([]models.Offer, error) {
	query := `
        SELECT ` + offerColumns + `
        FROM offers
        WHERE ($1::bigint IS NULL OR object_id = $1)
          AND ($2::text IS NULL OR vacancy_type = $2)
          AND ($3::text IS NULL OR offer_type = $3)
          AND ($4::boolean IS NULL OR is_available = $4)
          AND ($5 = '' OR title ILIKE '%' || $5 || '%')
        ORDER BY created_at DESC
    `
	rows, err := db.Pool.Query(ctx, query, f.ObjectID, f.VacancyType, f.OfferType, f.IsAvailable, f.Q)
	if err != nil {
		return nil, fmt.Errorf("failed to query offers: %w", err)
	}
	defer rows.Close()

	var offers []models.Offer
	for rows.Next() {
		var o models.Offer
		if err := scanOffer(rows, &o); err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating offers: %w", err)
	}
	return offers, nil
}

// GetOffer returns one offer with its sub-divided child offers loaded.
func (db *Database) GetOffer(ctx context.Context, id int64) (*models.Offer, error) {
	var o models.Offer
	err := scanOffer(db.Pool.QueryRow(ctx, `SELECT `+offerColumns+` FROM offers WHERE offer_id = $1`, id), &o)
	if err != nil {
		return nil, wrapQueryErr("offer", err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT `+offerColumns+` FROM offers WHERE parent_offer_id = $1 ORDER BY created_at`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query child offers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var child models.Offer
		if err := scanOffer(rows, &child); err != nil {
			return nil, fmt.Errorf("failed to scan child offer: %w", err)
		}
		o.ChildOffers = append(o.ChildOffers, child)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating child offers: %w", err)
	}
	return &o, nil
}

// CreateOffer inserts an offer and returns its id.
func (db *Database) CreateOffer(ctx context.Context, o models.Offer) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx, `
        INSERT INTO offers (object_id, vacancy_type, offer_type, parent_offer_id, title, contact_id,
                            whs_area, mez_area, office_area, tech_area,
                            sale_price, lease_price_per_sqm, currency,
                            is_available, available_from,
                            height, column_grid, floor_load, floor_type, docks_count,
                            fire_alarm, sprinkler_system, smoke_removal, hydrants, special_fire_system,
                            ventilation, electricity_kw, water, heating, sewage, description)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
                $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31)
        RETURNING offer_id
    `, o.ObjectID, o.VacancyType, o.OfferType, o.ParentOfferID, o.Title, o.ContactID,
		o.WhsArea, o.MezArea, o.OfficeArea, o.TechArea,
		o.SalePrice, o.LeasePricePerSqm, o.Currency,
		o.IsAvailable, o.AvailableFrom,
		o.Height, o.ColumnGrid, o.FloorLoad, o.FloorType, o.DocksCount,
		o.FireAlarm, o.SprinklerSystem, o.SmokeRemoval, o.Hydrants, o.SpecialFireSystem,
		o.Ventilation, o.Electricity, o.Water, o.Heating, o.Sewage, o.Desc).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert offer: %w", err)
	}
	return id, nil
}

// UpdateOffer updates an offer and bumps updated_at.
func (db *Database) UpdateOffer(ctx context.Context, id int64, o models.Offer) error {
	tag, err := db.Pool.Exec(ctx, `
        UPDATE offers
        SET object_id = $2, vacancy_type = $3, offer_type = $4, parent_offer_id = $5,
            title = $6, contact_id = $7,
            whs_area = $8, mez_area = $9, office_area = $10, tech_area = $11,
            sale_price = $12, lease_price_per_sqm = $13, currency = $14,
            is_available = $15, available_from = $16,
            height = $17, column_grid = $18, floor_load = $19, floor_type = $20, docks_count = $21,
            fire_alarm = $22, sprinkler_system = $23, smoke_removal = $24, hydrants = $25, special_fire_system = $26,
            ventilation = $27, electricity_kw = $28, water = $29, heating = $30, sewage = $31,
            description = $32, updated_at = CURRENT_TIMESTAMP
        WHERE offer_id = $1
    `, id, o.ObjectID, o.VacancyType, o.OfferType, o.ParentOfferID, o.Title, o.ContactID,
		o.WhsArea, o.MezArea, o.OfficeArea, o.TechArea,
		o.SalePrice, o.LeasePricePerSqm, o.Currency,
		o.IsAvailable, o.AvailableFrom,
		o.Height, o.ColumnGrid, o.FloorLoad, o.FloorType, o.DocksCount,
		o.FireAlarm, o.SprinklerSystem, o.SmokeRemoval, o.Hydrants, o.SpecialFireSystem,
		o.Ventilation, o.Electricity, o.Water, o.Heating, o.Sewage, o.Desc)
	if err != nil {
		return fmt.Errorf("failed to update offer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetOfferFloorplan stores the uploaded floorplan URL.
func (db *Database) SetOfferFloorplan(ctx context.Context, id int64, url string) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE offers SET floorplan_url = $2, updated_at = CURRENT_TIMESTAMP WHERE offer_id = $1`, id, url)
	if err != nil {
		return fmt.Errorf("failed to set offer floorplan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOffer removes an offer; child offers cascade at the storage
// layer.
func (db *Database) DeleteOffer(ctx context.Context, id int64) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM offers WHERE offer_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete offer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
