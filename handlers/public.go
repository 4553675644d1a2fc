package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"menuva/cache"
	"menuva/httperr"
	"menuva/models"
	"menuva/statemachine"
	"menuva/store"
)

// ListRestaurants returns restaurants (public), served through the redis
// cache when one is configured.
func (a *API) ListRestaurants(c *gin.Context) {
	ctx := c.Request.Context()
	search := c.Query("search")
	openOnly := c.Query("open") == "true"

	key := cache.RestaurantListKey(search, openOnly)
	if restaurants, ok := a.Cache.GetRestaurants(ctx, key); ok {
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(restaurants), "restaurants": restaurants})
		return
	}

	restaurants, err := a.Catalog.ListRestaurants(ctx, store.RestaurantFilter{Search: search, OpenOnly: openOnly})
	if err != nil {
		httperr.Render(c, err)
		return
	}
	a.Cache.SetRestaurants(ctx, key, restaurants)
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(restaurants), "restaurants": restaurants})
}

// GetRestaurant returns a single restaurant with its menu (public)
func (a *API) GetRestaurant(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	restaurant, err := a.Catalog.RestaurantByID(c.Request.Context(), id)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "restaurant": restaurant})
}

// GetMenu returns a restaurant's products, optionally filtered by category
func (a *API) GetMenu(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	restaurant, err := a.Catalog.RestaurantByID(c.Request.Context(), id)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	var categoryID uint
	if raw := c.Query("category_id"); raw != "" {
		if parsed, ok := parseQueryID(raw); ok {
			categoryID = parsed
		}
	}
	products, err := a.Catalog.ListProducts(c.Request.Context(), id, categoryID)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"restaurant": restaurant.Name,
		"count":      len(products),
		"menu":       products,
	})
}

// ListCategories returns all platform categories (public)
func (a *API) ListCategories(c *gin.Context) {
	categories, err := a.Catalog.ListCategories(c.Request.Context())
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(categories), "categories": categories})
}

// TrackOrders is the public customer lookup. It accepts exactly one of
// `number` or `phone` — a lookup key, not an authorization scope — and never
// reads auth state.
func (a *API) TrackOrders(c *gin.Context) {
	number := c.Query("number")
	phone := c.Query("phone")
	if (number == "") == (phone == "") {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"code":    "VALIDATION",
			"message": "provide exactly one of 'number' or 'phone'",
		})
		return
	}

	ctx := c.Request.Context()
	var orders []models.Order
	if number != "" {
		order, err := a.Orders.ByNumber(ctx, number)
		if err != nil {
			httperr.Render(c, err)
			return
		}
		orders = []models.Order{*order}
	} else {
		found, err := a.Orders.ByPhone(ctx, phone)
		if err != nil {
			httperr.Render(c, err)
			return
		}
		orders = found
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(orders), "orders": orderViews(orders)})
}

// TrackQR returns a PNG QR code pointing at the tracking page for an order
func (a *API) TrackQR(c *gin.Context) {
	number := c.Param("number")
	order, err := a.Orders.ByNumber(c.Request.Context(), number)
	if err != nil {
		httperr.Render(c, err)
		return
	}

	base := os.Getenv("PUBLIC_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	png, err := qrcode.Encode(base+"/api/track?number="+order.Number, qrcode.Medium, 256)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// GetStateMachineInfo returns the full lifecycle graph for documentation
func (a *API) GetStateMachineInfo(c *gin.Context) {
	transitions := statemachine.AllTransitions()
	info := make([]gin.H, len(transitions))
	for i, t := range transitions {
		info[i] = gin.H{"from": t.From, "to": t.To, "actor": t.Actor}
	}
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"state_machine":   info,
		"terminal_states": []models.OrderStatus{models.StatusDelivered, models.StatusCancelled},
		"description":     "Order lifecycle state machine",
	})
}
