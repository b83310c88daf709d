package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// VacancyType says whether an offer covers the whole object or a
// sub-divided unit of it.
type VacancyType string

const (
	VacancyTypeEntireObject VacancyType = "entire_object"
	VacancyTypeUnit         VacancyType = "unit"
)

// OfferType is the deal kind.
type OfferType string

const (
	OfferTypeSale  OfferType = "sale"
	OfferTypeLease OfferType = "lease"
	OfferTypeBoth  OfferType = "both"
)

// FloorType is the warehouse floor finish.
type FloorType string

const (
	FloorTypeConcrete FloorType = "concrete"
	FloorTypeTile     FloorType = "tile"
	FloorTypeAsphalt  FloorType = "asphalt"
	FloorTypeDustfree FloorType = "dustfree"
)

// UtilityType is how a utility is supplied.
type UtilityType string

const (
	UtilityMunicipal UtilityType = "municipal"
	UtilityPrivate   UtilityType = "private"
	UtilityNone      UtilityType = "none"
)

// Offer is a leasable or sellable unit within an object. Child offers
// (sub-divided listings) reference a parent offer and are removed with
// it; the contact person reference is nulled when the contact goes.
type Offer struct {
	ID            int64       `json:"id" db:"offer_id"`
	ObjectID      int64       `json:"object_id" db:"object_id"`
	VacancyType   VacancyType `json:"vacancy_type" db:"vacancy_type"`
	OfferType     OfferType   `json:"offer_type" db:"offer_type"`
	ParentOfferID *int64      `json:"parent_offer_id" db:"parent_offer_id"`
	Title         string      `json:"title" db:"title"`
	ContactID     *int64      `json:"contact_id" db:"contact_id"`

	// Zone areas, m². The total is always derived from these four and
	// never stored, so it cannot drift.
	WhsArea    float64 `json:"whs_area" db:"whs_area"`
	MezArea    float64 `json:"mez_area" db:"mez_area"`
	OfficeArea float64 `json:"office_area" db:"office_area"`
	TechArea   float64 `json:"tech_area" db:"tech_area"`

	// Pricing.
	SalePrice        *float64 `json:"sale_price" db:"sale_price"`
	LeasePricePerSqm *float64 `json:"lease_price_per_sqm" db:"lease_price_per_sqm"`
	Currency         string   `json:"currency" db:"currency"`

	// Availability.
	IsAvailable   bool       `json:"is_available" db:"is_available"`
	AvailableFrom *time.Time `json:"available_from" db:"available_from"`

	// Technical specifications.
	Height     float64   `json:"height" db:"height"`
	ColumnGrid string    `json:"column_grid" db:"column_grid"`
	FloorLoad  float64   `json:"floor_load" db:"floor_load"`
	FloorType  FloorType `json:"floor_type" db:"floor_type"`
	DocksCount int       `json:"docks_count" db:"docks_count"`

	// Fire safety.
	FireAlarm         bool `json:"fire_alarm" db:"fire_alarm"`
	SprinklerSystem   bool `json:"sprinkler_system" db:"sprinkler_system"`
	SmokeRemoval      bool `json:"smoke_removal" db:"smoke_removal"`
	Hydrants          bool `json:"hydrants" db:"hydrants"`
	SpecialFireSystem bool `json:"special_fire_system" db:"special_fire_system"`

	// Utilities.
	Ventilation bool        `json:"ventilation" db:"ventilation"`
	Electricity float64     `json:"electricity_kw" db:"electricity_kw"`
	Water       UtilityType `json:"water" db:"water"`
	Heating     UtilityType `json:"heating" db:"heating"`
	Sewage      UtilityType `json:"sewage" db:"sewage"`

	FloorplanURL *string   `json:"floorplan_url" db:"floorplan_url"`
	Desc         string    `json:"description" db:"description"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`

	// Sub-divided listings, populated on single-offer reads.
	ChildOffers []Offer `json:"child_offers,omitempty"`
}

// TotalArea is the sum of the four zone areas, computed on read.
func (o *Offer) TotalArea() float64 {
	return o.WhsArea + o.MezArea + o.OfficeArea + o.TechArea
}

// PriceDisplay renders the admin list-column price string: the sale
// price, the lease rate, or both joined, skipping absent values.
func (o *Offer) PriceDisplay() string {
	currency := o.Currency
	if currency == "" {
		currency = "RUB"
	}
	var parts []string
	if (o.OfferType == OfferTypeSale || o.OfferType == OfferTypeBoth) && o.SalePrice != nil {
		parts = append(parts, fmt.Sprintf("%s %s", formatAmount(*o.SalePrice), currency))
	}
	if (o.OfferType == OfferTypeLease || o.OfferType == OfferTypeBoth) && o.LeasePricePerSqm != nil {
		parts = append(parts, fmt.Sprintf("%s %s/m²", formatAmount(*o.LeasePricePerSqm), currency))
	}
	if len(parts) == 0 {
		return "price not set"
	}
	return strings.Join(parts, " / ")
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Normalize fills enum defaults the same way the admin form would.
func (o *Offer) Normalize() {
	if o.OfferType == "" {
		o.OfferType = OfferTypeLease
	}
	if o.Currency == "" {
		o.Currency = "RUB"
	}
	if o.Water == "" {
		o.Water = UtilityMunicipal
	}
	if o.Heating == "" {
		o.Heating = UtilityMunicipal
	}
	if o.Sewage == "" {
		o.Sewage = UtilityMunicipal
	}
}

func (o *Offer) Validate() error {
	errs := FieldErrors{}
	if strings.TrimSpace(o.Title) == "" {
		errs["title"] = "title is required"
	}
	if o.ObjectID == 0 {
		errs["object_id"] = "object is required"
	}
	switch o.VacancyType {
	case VacancyTypeEntireObject, VacancyTypeUnit:
	default:
		errs["vacancy_type"] = "unknown vacancy type"
	}
	switch o.OfferType {
	case OfferTypeSale, OfferTypeLease, OfferTypeBoth:
	default:
		errs["offer_type"] = "unknown offer type"
	}
	if o.FloorType != "" {
		switch o.FloorType {
		case FloorTypeConcrete, FloorTypeTile, FloorTypeAsphalt, FloorTypeDustfree:
		default:
			errs["floor_type"] = "unknown floor type"
		}
	}
	for field, v := range map[string]UtilityType{"water": o.Water, "heating": o.Heating, "sewage": o.Sewage} {
		switch v {
		case UtilityMunicipal, UtilityPrivate, UtilityNone:
		default:
			errs[field] = "unknown utility type"
		}
	}
	for field, v := range map[string]float64{
		"whs_area": o.WhsArea, "mez_area": o.MezArea,
		"office_area": o.OfficeArea, "tech_area": o.TechArea,
	} {
		if v < 0 {
			errs[field] = "area cannot be negative"
		}
	}
	if o.SalePrice != nil && *o.SalePrice < 0 {
		errs["sale_price"] = "price cannot be negative"
	}
	if o.LeasePricePerSqm != nil && *o.LeasePricePerSqm < 0 {
		errs["lease_price_per_sqm"] = "price cannot be negative"
	}
	if o.DocksCount < 0 {
		errs["docks_count"] = "dock count cannot be negative"
	}
	return errs.OrNil()
}
