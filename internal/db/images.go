package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/severetsunamist/real-estate-crm/internal/models"
)

const imageColumns = `image_id, object_id, image_url, caption, display_order, uploaded_at`

// ListObjectImages returns an object's images in display order.
func (db *Database) ListObjectImages(ctx context.Context, objectID int64) ([]models.ObjectImage, error) {
	rows, err := db.Pool.Query(ctx, `
        SELECT `+imageColumns+`
        FROM object_images
        WHERE object_id = $1
        ORDER BY display_order, uploaded_at
    `, objectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query object images: %w", err)
	}
	defer rows.Close()

	var images []models.ObjectImage
	for rows.Next() {
		var img models.ObjectImage
		if err := rows.Scan(&img.ID, &img.ObjectID, &img.ImageURL, &img.Caption, &img.DisplayOrder, &img.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan object image: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating object images: %w", err)
	}
	return images, nil
}

// GetObjectImage returns one image row or ErrNotFound.
func (db *Database) GetObjectImage(ctx context.Context, id uuid.UUID) (*models.ObjectImage, error) {
	var img models.ObjectImage
	err := db.Pool.QueryRow(ctx, `SELECT `+imageColumns+` FROM object_images WHERE image_id = $1`, id).
		Scan(&img.ID, &img.ObjectID, &img.ImageURL, &img.Caption, &img.DisplayOrder, &img.UploadedAt)
	if err != nil {
		return nil, wrapQueryErr("object image", err)
	}
	return &img, nil
}

// AddObjectImage inserts an uploaded image at the end of the object's
// display order and returns the generated id.
func (db *Database) AddObjectImage(ctx context.Context, objectID int64, imageURL, caption string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := db.Pool.Exec(ctx, `
        INSERT INTO object_images (image_id, object_id, image_url, caption, display_order)
        VALUES ($1, $2, $3, $4, (
            SELECT COALESCE(MAX(display_order), 0) + 1
            FROM object_images
            WHERE object_id = $2
        ))
    `, id, objectID, imageURL, caption)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert object image: %w", err)
	}
	return id, nil
}

// UpdateObjectImage edits the caption and display order inline.
func (db *Database) UpdateObjectImage(ctx context.Context, id uuid.UUID, caption string, displayOrder int) error {
	tag, err := db.Pool.Exec(ctx, `
        UPDATE object_images
        SET caption = $2, display_order = $3
        WHERE image_id = $1
    `, id, caption, displayOrder)
	if err != nil {
		return fmt.Errorf("failed to update object image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ReorderObjectImages applies a full ordering for one object's images
// in a single transaction; ids come in the desired display order.
func (db *Database) ReorderObjectImages(ctx context.Context, objectID int64, ids []uuid.UUID) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for i, id := range ids {
		tag, err := tx.Exec(ctx, `
            UPDATE object_images
            SET display_order = $3
            WHERE image_id = $1 AND object_id = $2
        `, id, objectID, i+1)
		if err != nil {
			return fmt.Errorf("failed to reorder image %s: %w", id, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("image %s does not belong to object %d: %w", id, objectID, ErrNotFound)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteObjectImage removes an image row and returns it so the caller
// can clean up the stored file.
func (db *Database) DeleteObjectImage(ctx context.Context, id uuid.UUID) (*models.ObjectImage, error) {
	var img models.ObjectImage
	err := db.Pool.QueryRow(ctx, `
        DELETE FROM object_images
        WHERE image_id = $1
        RETURNING `+imageColumns+`
    `, id).Scan(&img.ID, &img.ObjectID, &img.ImageURL, &img.Caption, &img.DisplayOrder, &img.UploadedAt)
	if err != nil {
		return nil, wrapQueryErr("object image", err)
	}
	return &img, nil
}
