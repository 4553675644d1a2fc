package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	e := setup(t)

	// restaurator needs a restaurant binding
	w := e.do(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":     "Olzhas",
		"email":    "owner@pizzasun.kz",
		"password": "secret1",
		"role":     "RESTAURATOR",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":          "Olzhas",
		"email":         "owner@pizzasun.kz",
		"password":      "secret1",
		"role":          "RESTAURATOR",
		"restaurant_id": e.restaurant1.ID,
		"permissions":   []string{"orders", "products"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, decode(t, w)["token"])

	// duplicate email
	w = e.do(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":          "Olzhas",
		"email":         "owner@pizzasun.kz",
		"password":      "secret1",
		"role":          "RESTAURATOR",
		"restaurant_id": e.restaurant1.ID,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// customers never register
	w = e.do(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":     "Dana",
		"email":    "dana@example.com",
		"password": "secret1",
		"role":     "CUSTOMER",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// login
	w = e.do(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    "owner@pizzasun.kz",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	bearer := decode(t, w)["token"].(string)

	w = e.do(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    "owner@pizzasun.kz",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// the issued token carries the restaurant scope
	resp := decode(t, e.do(t, http.MethodGet, "/api/restaurant/", bearer, nil))
	restaurant := resp["restaurant"].(map[string]interface{})
	assert.Equal(t, "Pizza Sun", restaurant["name"])

	// no token at all
	w = e.do(t, http.MethodGet, "/api/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
