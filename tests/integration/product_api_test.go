package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogapp "github.com/rarerevisit/backend/internal/application/catalog"
)

func TestProductAPI_CRUD(t *testing.T) {
	app := newTestApp(t)

	// Create
	w := app.request(t, http.MethodPost, "/api/v1/catalog/products", map[string]interface{}{
		"name":        "Velvet Oud",
		"description": "A layered amber fragrance with a smoked oud base",
		"price":       "120.00",
		"category":    "fragrance",
		"mood":        "evening",
		"sizes":       []string{"30ml", "50ml"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := dataAs[catalogapp.ProductResponse](t, w)
	assert.Equal(t, "Velvet Oud", created.Name)
	assert.Equal(t, []string{"30ml", "50ml"}, created.Sizes)

	// Read back
	w = app.request(t, http.MethodGet, "/api/v1/catalog/products/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	fetched := dataAs[catalogapp.ProductResponse](t, w)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "evening", fetched.Mood)

	// Update
	w = app.request(t, http.MethodPut, "/api/v1/catalog/products/"+created.ID.String(), map[string]interface{}{
		"name": "Velvet Oud Intense",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := dataAs[catalogapp.ProductResponse](t, w)
	assert.Equal(t, "Velvet Oud Intense", updated.Name)
	assert.Equal(t, "evening", updated.Mood)

	// Delete
	w = app.request(t, http.MethodDelete, "/api/v1/catalog/products/"+created.ID.String(), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// Gone
	w = app.request(t, http.MethodGet, "/api/v1/catalog/products/"+created.ID.String(), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	resp := envelope(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ERR_NOT_FOUND", resp.Error.Code)
}

func TestProductAPI_ListFiltersByMood(t *testing.T) {
	app := newTestApp(t)

	for _, p := range []map[string]interface{}{
		{"name": "Velvet Oud", "mood": "evening", "price": "120.00"},
		{"name": "Morning Iris", "mood": "fresh", "price": "85.00"},
		{"name": "Ember Noir", "mood": "evening", "price": "140.00"},
	} {
		w := app.request(t, http.MethodPost, "/api/v1/catalog/products", p)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := app.request(t, http.MethodGet, "/api/v1/catalog/products?mood=evening", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := envelope(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(2), resp.Meta.Total)

	products := dataAs[[]catalogapp.ProductResponse](t, w)
	require.Len(t, products, 2)
	for _, p := range products {
		assert.Equal(t, "evening", p.Mood)
	}
}

func TestProductAPI_RejectsInvalidPayload(t *testing.T) {
	app := newTestApp(t)

	w := app.request(t, http.MethodPost, "/api/v1/catalog/products", map[string]interface{}{
		"description": "nameless",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := envelope(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ERR_BAD_REQUEST", resp.Error.Code)
}
