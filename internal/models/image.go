package models

import (
	"time"

	"github.com/google/uuid"
)

// ObjectImage is a photo attached to an object. Images are listed by
// (display_order, uploaded_at).
type ObjectImage struct {
	ID           uuid.UUID `json:"id" db:"image_id"`
	ObjectID     int64     `json:"object_id" db:"object_id"`
	ImageURL     string    `json:"image_url" db:"image_url"`
	Caption      string    `json:"caption" db:"caption"`
	DisplayOrder int       `json:"display_order" db:"display_order"`
	UploadedAt   time.Time `json:"uploaded_at" db:"uploaded_at"`
}
