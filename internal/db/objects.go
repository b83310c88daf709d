package db

import (
	"context"
	"fmt"

	"github.com/severetsunamist/real-estate-crm/internal/models"
)

// ObjectFilter is the object list screen's filter set: type, city,
// status dropdowns plus a name/address search box.
type ObjectFilter struct {
	ObjectType *models.ObjectType
	City       *models.City
	Status     *models.ObjectStatus
	OwnerID    *int64
	Q          string
}

const objectColumns = `object_id, name, object_type, status, city, address, latitude, longitude,
		owner_id, total_area, floors, build_year, description, created_at, updated_at`

func scanObject(row interface{ Scan(...any) error }, o *models.Object) error {
	return row.Scan(
		&o.ID, &o.Name, &o.ObjectType, &o.Status, &o.City, &o.Address,
		&o.Latitude, &o.Longitude, &o.OwnerID, &o.TotalArea, &o.Floors,
		&o.BuildYear, &o.Desc, &o.CreatedAt, &o.UpdatedAt,
	)
}

// ListObjects returns objects newest first with the active-offer
// counter populated.
func (db *Database) ListObjects(ctx context.Context, f ObjectFilter) ([]models.Object, error) {
	query := `
        SELECT ` + objectColumns + `,
               (SELECT COUNT(*) FROM offers v WHERE v.object_id = objects.object_id AND v.is_available) AS active_offer_count
        FROM objects
        WHERE ($1::text IS NULL OR object_type = $1)
          AND ($2::text IS NULL OR city = $2)
          AND ($3::text IS NULL OR status = $3)
          AND ($4::bigint IS NULL OR owner_id = $4)
          AND ($5 = '' OR name ILIKE '%' || $5 || '%' OR address ILIKE '%' || $5 || '%')
        ORDER BY created_at DESC
    `
	rows, err := db.Pool.Query(ctx, query, f.ObjectType, f.City, f.Status, f.OwnerID, f.Q)
	if err != nil {
		return nil, fmt.Errorf("failed to query objects: %w", err)
	}
	defer rows.Close()

	var objects []models.Object
	for rows.Next() {
		var o models.Object
		if err := rows.Scan(
			&o.ID, &o.Name, &o.ObjectType, &o.Status, &o.City, &o.Address,
			&o.Latitude, &o.Longitude, &o.OwnerID, &o.TotalArea, &o.Floors,
			&o.BuildYear, &o.Desc, &o.CreatedAt, &o.UpdatedAt, &o.ActiveOfferCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan object: %w", err)
		}
		objects = append(objects, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating objects: %w", err)
	}
	return objects, nil
}

// GetObject returns one object with its image and offer inlines
// loaded, the way the detail screen renders it.
func (db *Database) GetObject(ctx context.Context, id int64) (*models.Object, error) {
	var o models.Object
	err := scanObject(db.Pool.QueryRow(ctx, `SELECT `+objectColumns+` FROM objects WHERE object_id = $1`, id), &o)
	if err != nil {
		return nil, wrapQueryErr("object", err)
	}

	images, err := db.ListObjectImages(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Images = images

	offers, err := db.ListOffers(ctx, OfferFilter{ObjectID: &id})
	if err != nil {
		return nil, err
	}
	o.Offers = offers

	return &o, nil
}

// CreateObject inserts an object and returns its id.
func (db *Database) CreateObject(ctx context.Context, o models.Object) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx, `
        INSERT INTO objects (name, object_type, status, city, address, latitude, longitude,
                             owner_id, total_area, floors, build_year, description)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING object_id
    `, o.Name, o.ObjectType, o.Status, o.City, o.Address, o.Latitude, o.Longitude,
		o.OwnerID, o.TotalArea, o.Floors, o.BuildYear, o.Desc).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert object: %w", err)
	}
	return id, nil
}

// UpdateObject updates an object and bumps updated_at.
func (db *Database) UpdateObject(ctx context.Context, id int64, o models.Object) error {
	tag, err := db.Pool.Exec(ctx, `
        UPDATE objects
        SET name = $2, object_type = $3, status = $4, city = $5, address = $6,
            latitude = $7, longitude = $8, owner_id = $9, total_area = $10,
            floors = $11, build_year = $12, description = $13,
            updated_at = CURRENT_TIMESTAMP
        WHERE object_id = $1
    `, id, o.Name, o.ObjectType, o.Status, o.City, o.Address, o.Latitude, o.Longitude,
		o.OwnerID, o.TotalArea, o.Floors, o.BuildYear, o.Desc)
	if err != nil {
		return fmt.Errorf("failed to update object: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteObject removes an object; offers and images cascade at the
// storage layer.
func (db *Database) DeleteObject(ctx context.Context, id int64) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM objects WHERE object_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
