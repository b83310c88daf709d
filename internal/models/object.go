package models

import (
	"strings"
	"time"
)

// ObjectType classifies the physical asset.
type ObjectType string

const (
	ObjectTypeWarehouse ObjectType = "warehouse"
	ObjectTypeOther     ObjectType = "other"
)

// ObjectStatus is the listing lifecycle state.
type ObjectStatus string

const (
	ObjectStatusActive   ObjectStatus = "active"
	ObjectStatusInactive ObjectStatus = "inactive"
	ObjectStatusDraft    ObjectStatus = "draft"
)

// City is the market the object sits in.
type City string

const (
	CityMoscow City = "msk"
	CitySPB    City = "spb"
)

// Object is a property listing's physical asset: a building or lot
// owned by a company, carrying zero or more offers and images.
type Object struct {
	ID         int64        `json:"id" db:"object_id"`
	Name       string       `json:"name" db:"name"`
	ObjectType ObjectType   `json:"object_type" db:"object_type"`
	Status     ObjectStatus `json:"status" db:"status"`
	City       City         `json:"city" db:"city"`
	Address    string       `json:"address" db:"address"`
	Latitude   *float64     `json:"latitude" db:"latitude"`
	Longitude  *float64     `json:"longitude" db:"longitude"`
	OwnerID    int64        `json:"owner_id" db:"owner_id"`
	TotalArea  float64      `json:"total_area" db:"total_area"`
	Floors     *int         `json:"floors" db:"floors"`
	BuildYear  *int         `json:"build_year" db:"build_year"`
	Desc       string       `json:"description" db:"description"`
	CreatedAt  time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at" db:"updated_at"`

	// Detail-screen inlines, populated on single-object reads.
	Images []ObjectImage `json:"images,omitempty"`
	Offers []Offer       `json:"offers,omitempty"`

	// List-screen counter of offers currently available.
	ActiveOfferCount int `json:"active_offer_count"`
}

// Normalize fills enum defaults the same way the admin form would.
func (o *Object) Normalize() {
	if o.ObjectType == "" {
		o.ObjectType = ObjectTypeWarehouse
	}
	if o.Status == "" {
		o.Status = ObjectStatusActive
	}
	if o.City == "" {
		o.City = CitySPB
	}
}

func (o *Object) Validate() error {
	errs := FieldErrors{}
	if strings.TrimSpace(o.Name) == "" {
		errs["name"] = "name is required"
	}
	if strings.TrimSpace(o.Address) == "" {
		errs["address"] = "address is required"
	}
	if o.OwnerID == 0 {
		errs["owner_id"] = "owner company is required"
	}
	switch o.ObjectType {
	case ObjectTypeWarehouse, ObjectTypeOther:
	default:
		errs["object_type"] = "unknown object type"
	}
	switch o.Status {
	case ObjectStatusActive, ObjectStatusInactive, ObjectStatusDraft:
	default:
		errs["status"] = "unknown status"
	}
	switch o.City {
	case CityMoscow, CitySPB:
	default:
		errs["city"] = "unknown city"
	}
	if o.TotalArea <= 0 {
		errs["total_area"] = "total area must be greater than zero"
	}
	if o.Floors != nil && *o.Floors < 1 {
		errs["floors"] = "floors must be at least 1"
	}
	if o.Latitude != nil && (*o.Latitude < -90 || *o.Latitude > 90) {
		errs["latitude"] = "latitude must be between -90 and 90"
	}
	if o.Longitude != nil && (*o.Longitude < -180 || *o.Longitude > 180) {
		errs["longitude"] = "longitude must be between -180 and 180"
	}
	return errs.OrNil()
}
