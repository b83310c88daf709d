package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func TestOfferTotalArea(t *testing.T) {
	o := Offer{WhsArea: 1200.5, MezArea: 300, OfficeArea: 150.25, TechArea: 49.25}
	assert.Equal(t, 1700.0, o.TotalArea())
}

func TestOfferTotalAreaFollowsUpdates(t *testing.T) {
	o := Offer{WhsArea: 500}
	assert.Equal(t, 500.0, o.TotalArea())

	o.MezArea = 100
	o.OfficeArea = 80
	o.TechArea = 20
	assert.Equal(t, 700.0, o.TotalArea())
}

func TestOfferPriceDisplayBoth(t *testing.T) {
	o := Offer{
		OfferType:        OfferTypeBoth,
		SalePrice:        f64(500000),
		LeasePricePerSqm: f64(120),
	}
	s := o.PriceDisplay()
	assert.Contains(t, s, "500000")
	assert.Contains(t, s, "120")
	assert.Contains(t, s, "/m²")
}

func TestOfferPriceDisplaySaleOnly(t *testing.T) {
	o := Offer{OfferType: OfferTypeSale, SalePrice: f64(750000), Currency: "RUB"}
	assert.Equal(t, "750000 RUB", o.PriceDisplay())
}

func TestOfferPriceDisplayLeaseOnly(t *testing.T) {
	o := Offer{OfferType: OfferTypeLease, LeasePricePerSqm: f64(95.5), Currency: "RUB"}
	assert.Equal(t, "95.5 RUB/m²", o.PriceDisplay())
}

func TestOfferPriceDisplayNotSet(t *testing.T) {
	o := Offer{OfferType: OfferTypeSale}
	assert.Equal(t, "price not set", o.PriceDisplay())

	// Lease rate present but irrelevant for a pure sale offer.
	o.LeasePricePerSqm = f64(120)
	assert.Equal(t, "price not set", o.PriceDisplay())
}

func TestOfferPriceDisplayBothWithMissingPart(t *testing.T) {
	o := Offer{OfferType: OfferTypeBoth, SalePrice: f64(500000)}
	s := o.PriceDisplay()
	assert.Contains(t, s, "500000")
	assert.NotContains(t, s, "/m²")
}

func TestOfferValidate(t *testing.T) {
	o := Offer{
		ObjectID:    1,
		Title:       "Block A",
		VacancyType: VacancyTypeUnit,
	}
	o.Normalize()
	require.NoError(t, o.Validate())

	assert.Equal(t, OfferTypeLease, o.OfferType)
	assert.Equal(t, "RUB", o.Currency)
	assert.Equal(t, UtilityMunicipal, o.Water)
}

func TestOfferValidateRejectsBadEnums(t *testing.T) {
	o := Offer{ObjectID: 1, Title: "Block A", VacancyType: "penthouse", OfferType: "barter"}
	o.Water, o.Heating, o.Sewage = UtilityMunicipal, UtilityMunicipal, UtilityMunicipal

	err := o.Validate()
	require.Error(t, err)
	fields, ok := err.(FieldErrors)
	require.True(t, ok)
	assert.Contains(t, fields, "vacancy_type")
	assert.Contains(t, fields, "offer_type")
}

func TestOfferValidateRejectsNegativeArea(t *testing.T) {
	o := Offer{ObjectID: 1, Title: "Block A", VacancyType: VacancyTypeUnit, WhsArea: -10}
	o.Normalize()

	err := o.Validate()
	require.Error(t, err)
	assert.Contains(t, err.(FieldErrors), "whs_area")
}
