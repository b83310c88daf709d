package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/severetsunamist/real-estate-crm/internal/models"
)

func f64(v float64) *float64 { return &v }

// validationRouter wires only the routes whose request validation runs
// before any database access.
func validationRouter() *gin.Engine {
	h := NewHandler(nil, nil)
	r := gin.New()
	r.POST("/objects", h.CreateObject)
	r.POST("/objects/:id/offers", h.CreateOffer)
	r.POST("/companies", h.CreateCompany)
	r.GET("/health", h.Health)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeFields(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Fields
}

func TestHealthWithoutDatabase(t *testing.T) {
	setGinTestMode()
	r := validationRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCreateObjectRejectsZeroFloors(t *testing.T) {
	setGinTestMode()
	w := postJSON(t, validationRouter(), "/objects", `{
		"name": "Shushary Park",
		"address": "Moskovskoe shosse 161",
		"owner_id": 1,
		"total_area": 12500,
		"floors": 0
	}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeFields(t, w), "floors")
}

func TestCreateObjectRejectsOutOfRangeLatitude(t *testing.T) {
	setGinTestMode()
	w := postJSON(t, validationRouter(), "/objects", `{
		"name": "Shushary Park",
		"address": "Moskovskoe shosse 161",
		"owner_id": 1,
		"total_area": 12500,
		"latitude": 95.0
	}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeFields(t, w), "latitude")
}

func TestCreateObjectRejectsNonPositiveArea(t *testing.T) {
	setGinTestMode()
	w := postJSON(t, validationRouter(), "/objects", `{
		"name": "Shushary Park",
		"address": "Moskovskoe shosse 161",
		"owner_id": 1,
		"total_area": 0
	}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeFields(t, w), "total_area")
}

func TestCreateOfferRejectsUnknownVacancyType(t *testing.T) {
	setGinTestMode()
	w := postJSON(t, validationRouter(), "/objects/1/offers", `{
		"title": "Block A",
		"vacancy_type": "penthouse"
	}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeFields(t, w), "vacancy_type")
}

func TestCreateCompanyRejectsMissingName(t *testing.T) {
	setGinTestMode()
	w := postJSON(t, validationRouter(), "/companies", `{"description": "no name"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeFields(t, w), "name")
}

func TestCreateCompanyRejectsMalformedJSON(t *testing.T) {
	setGinTestMode()
	w := postJSON(t, validationRouter(), "/companies", `{"name": `)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRenderOfferCarriesDerivedFields(t *testing.T) {
	offer := models.Offer{
		OfferType:        models.OfferTypeBoth,
		WhsArea:          1000,
		MezArea:          200,
		OfficeArea:       150,
		TechArea:         50,
		SalePrice:        f64(500000),
		LeasePricePerSqm: f64(120),
		ChildOffers: []models.Offer{
			{OfferType: models.OfferTypeLease, WhsArea: 400},
		},
	}

	out := renderOffer(offer)
	assert.Equal(t, 1400.0, out.TotalArea)
	assert.Contains(t, out.PriceDisplay, "500000")
	assert.Contains(t, out.PriceDisplay, "120")
	require.Len(t, out.ChildOffers, 1)
	assert.Equal(t, 400.0, out.ChildOffers[0].TotalArea)
	assert.Equal(t, "price not set", out.ChildOffers[0].PriceDisplay)
}

func TestRenderOfferJSONShape(t *testing.T) {
	offer := models.Offer{
		OfferType: models.OfferTypeSale,
		WhsArea:   750,
	}

	b, err := json.Marshal(renderOffer(offer))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, 750.0, decoded["total_area"])
	assert.Equal(t, "price not set", decoded["price_display"])
}

func TestParseIDRejectsGarbage(t *testing.T) {
	setGinTestMode()
	h := NewHandler(nil, nil)
	r := gin.New()
	r.GET("/companies/:id", h.GetCompany)

	req := httptest.NewRequest(http.MethodGet, "/companies/abc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadRequiresFile(t *testing.T) {
	setGinTestMode()
	h := NewHandler(nil, nil)
	r := gin.New()
	r.POST("/objects/:id/images", h.UploadObjectImage)

	req := httptest.NewRequest(http.MethodPost, "/objects/1/images", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
