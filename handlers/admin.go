package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"menuva/httperr"
	"menuva/middleware"
	"menuva/models"
	"menuva/store"
)

// AdminListOrders returns all orders with a status summary — admin only
func (a *API) AdminListOrders(c *gin.Context) {
	filter := store.OrderFilter{Status: models.OrderStatus(c.Query("status"))}
	if raw := c.Query("restaurant_id"); raw != "" {
		if id, ok := parseQueryID(raw); ok {
			filter.RestaurantID = id
		}
	}
	orders, err := a.Orders.List(c.Request.Context(), filter)
	if err != nil {
		httperr.Render(c, err)
		return
	}

	summary := map[string]int{}
	var totalRevenue float64
	for _, o := range orders {
		summary[string(o.Status)]++
		if o.Status == models.StatusDelivered {
			totalRevenue += o.Total
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"order_summary": summary,
		"total_revenue": totalRevenue,
		"count":         len(orders),
		"orders":        orderViews(orders),
	})
}

// AdminUpdateOrderStatus drives transitions with admin reach. Same engine as
// the restaurant path: the admin actor rows grant extra transitions (READY
// cancellation), never a bypass of the graph.
func (a *API) AdminUpdateOrderStatus(c *gin.Context) {
	p := middleware.MustPrincipal(c)
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}
	a.transitionOrder(c, p, orderID, req.Status, req.Note)
}

// AdminListUsers returns all users, optionally filtered by role
func (a *API) AdminListUsers(c *gin.Context) {
	users, err := a.Users.List(c.Request.Context(), models.Role(c.Query("role")))
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(users), "users": users})
}

// AdminListRestaurants returns all restaurants
func (a *API) AdminListRestaurants(c *gin.Context) {
	restaurants, err := a.Catalog.ListRestaurants(c.Request.Context(), store.RestaurantFilter{})
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(restaurants), "restaurants": restaurants})
}

type CreateRestaurantRequest struct {
	Name        string  `json:"name" binding:"required"`
	Address     string  `json:"address" binding:"required"`
	Phone       string  `json:"phone"`
	Description string  `json:"description"`
	DeliveryFee float64 `json:"delivery_fee" binding:"gte=0"`
}

// AdminCreateRestaurant registers a new restaurant on the platform
func (a *API) AdminCreateRestaurant(c *gin.Context) {
	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}
	restaurant := models.Restaurant{
		Name:        req.Name,
		Address:     req.Address,
		Phone:       req.Phone,
		Description: req.Description,
		DeliveryFee: req.DeliveryFee,
		IsOpen:      true,
	}
	if err := a.Catalog.CreateRestaurant(c.Request.Context(), &restaurant); err != nil {
		httperr.Render(c, err)
		return
	}
	a.Cache.InvalidateRestaurants(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Restaurant created", "restaurant": restaurant})
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// AdminCreateCategory adds a platform-wide product category
func (a *API) AdminCreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}
	category := models.Category{Name: req.Name}
	if err := a.Catalog.CreateCategory(c.Request.Context(), &category); err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Category created", "category": category})
}

// AdminDeleteCategory removes a category
func (a *API) AdminDeleteCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := a.Catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category deleted"})
}
