package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func validObject() Object {
	o := Object{
		Name:      "Shushary Logistics Park",
		Address:   "Moskovskoe shosse 161",
		OwnerID:   1,
		TotalArea: 12500,
	}
	o.Normalize()
	return o
}

func TestObjectValidateAccepts(t *testing.T) {
	o := validObject()
	o.Floors = intp(3)
	require.NoError(t, o.Validate())
}

func TestObjectNormalizeDefaults(t *testing.T) {
	o := validObject()
	assert.Equal(t, ObjectTypeWarehouse, o.ObjectType)
	assert.Equal(t, ObjectStatusActive, o.Status)
	assert.Equal(t, CitySPB, o.City)
}

func TestObjectValidateRejectsZeroFloors(t *testing.T) {
	o := validObject()
	o.Floors = intp(0)

	err := o.Validate()
	require.Error(t, err)
	assert.Contains(t, err.(FieldErrors), "floors")
}

func TestObjectValidateRejectsOutOfRangeCoordinates(t *testing.T) {
	cases := []struct {
		name  string
		lat   *float64
		lon   *float64
		field string
	}{
		{"latitude too high", f64(91), nil, "latitude"},
		{"latitude too low", f64(-90.1), nil, "latitude"},
		{"longitude too high", nil, f64(180.5), "longitude"},
		{"longitude too low", nil, f64(-181), "longitude"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := validObject()
			o.Latitude, o.Longitude = tc.lat, tc.lon

			err := o.Validate()
			require.Error(t, err)
			assert.Contains(t, err.(FieldErrors), tc.field)
		})
	}
}

func TestObjectValidateAcceptsBoundaryCoordinates(t *testing.T) {
	o := validObject()
	o.Latitude = f64(90)
	o.Longitude = f64(-180)
	require.NoError(t, o.Validate())
}

func TestObjectValidateRejectsNonPositiveArea(t *testing.T) {
	o := validObject()
	o.TotalArea = 0

	err := o.Validate()
	require.Error(t, err)
	assert.Contains(t, err.(FieldErrors), "total_area")
}

func TestObjectValidateRequiresOwner(t *testing.T) {
	o := validObject()
	o.OwnerID = 0

	err := o.Validate()
	require.Error(t, err)
	assert.Contains(t, err.(FieldErrors), "owner_id")
}

func TestCompanyValidate(t *testing.T) {
	c := Company{Name: "PNK Group"}
	require.NoError(t, c.Validate())

	c.Name = "   "
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.(FieldErrors), "name")
}

func TestContactValidate(t *testing.T) {
	ct := Contact{CompanyID: 1, FirstName: "Ivan", LastName: "Petrov", Email: "ivan@pnk.ru"}
	require.NoError(t, ct.Validate())
	assert.Equal(t, "Ivan Petrov", ct.FullName())

	ct.Email = "not-an-email"
	err := ct.Validate()
	require.Error(t, err)
	assert.Contains(t, err.(FieldErrors), "email")
}

func TestAgentValidate(t *testing.T) {
	a := Agent{UserID: 7, CompanyID: 2}
	require.NoError(t, a.Validate())

	a.UserID = 0
	err := a.Validate()
	require.Error(t, err)
	assert.Contains(t, err.(FieldErrors), "user_id")
}
