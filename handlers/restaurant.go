package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"menuva/authz"
	"menuva/httperr"
	"menuva/middleware"
	"menuva/models"
)

var errNoUpdatableFields = errors.New("no updatable fields in request body")

func restaurantScope(c *gin.Context) (authz.Principal, uint, bool) {
	p := middleware.MustPrincipal(c)
	if p.RestaurantID == nil {
		httperr.Render(c, fmt.Errorf("%w: account is not bound to a restaurant", authz.ErrForbidden))
		return p, 0, false
	}
	return p, *p.RestaurantID, true
}

// GetMyRestaurant fetches the caller's restaurant
func (a *API) GetMyRestaurant(c *gin.Context) {
	_, restaurantID, ok := restaurantScope(c)
	if !ok {
		return
	}
	restaurant, err := a.Catalog.RestaurantByID(c.Request.Context(), restaurantID)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "restaurant": restaurant})
}

// UpdateMyRestaurant updates details of the caller's restaurant
func (a *API) UpdateMyRestaurant(c *gin.Context) {
	_, restaurantID, ok := restaurantScope(c)
	if !ok {
		return
	}
	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}
	// Only allow safe fields
	allowed := map[string]bool{
		"name": true, "address": true, "phone": true,
		"description": true, "is_open": true, "delivery_fee": true,
	}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	if len(update) == 0 {
		httperr.Validation(c, errNoUpdatableFields)
		return
	}
	restaurant, err := a.Catalog.UpdateRestaurant(c.Request.Context(), restaurantID, update)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	a.Cache.InvalidateRestaurants(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Restaurant updated", "restaurant": restaurant})
}

// ── Product management ──────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	CategoryID  *uint   `json:"category_id"`
}

// ListMyProducts returns the caller's menu
func (a *API) ListMyProducts(c *gin.Context) {
	p, restaurantID, ok := restaurantScope(c)
	if !ok {
		return
	}
	if !p.HasPermission(models.PermProducts) {
		httperr.Render(c, fmt.Errorf("%w: missing %q permission", authz.ErrForbidden, models.PermProducts))
		return
	}
	products, err := a.Catalog.ListProducts(c.Request.Context(), restaurantID, 0)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(products), "products": products})
}

// AddProduct adds a product to the caller's menu
func (a *API) AddProduct(c *gin.Context) {
	p, restaurantID, ok := restaurantScope(c)
	if !ok {
		return
	}
	if !p.HasPermission(models.PermProducts) {
		httperr.Render(c, fmt.Errorf("%w: missing %q permission", authz.ErrForbidden, models.PermProducts))
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}
	product := models.Product{
		RestaurantID: restaurantID,
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		IsAvailable:  true,
	}
	if err := a.Catalog.CreateProduct(c.Request.Context(), &product); err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Product added", "product": product})
}

// UpdateProduct updates one of the caller's products
func (a *API) UpdateProduct(c *gin.Context) {
	p, _, ok := restaurantScope(c)
	if !ok {
		return
	}
	productID, ok := parseID(c, "productId")
	if !ok {
		return
	}

	product, err := a.Catalog.ProductByID(c.Request.Context(), productID)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	if err := authz.CanAccess(p, product); err != nil {
		httperr.Render(c, err)
		return
	}
	if !p.HasPermission(models.PermProducts) {
		httperr.Render(c, fmt.Errorf("%w: missing %q permission", authz.ErrForbidden, models.PermProducts))
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}
	allowed := map[string]bool{
		"name": true, "description": true, "price": true,
		"category_id": true, "is_available": true,
	}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	if len(update) == 0 {
		httperr.Validation(c, errNoUpdatableFields)
		return
	}
	updated, err := a.Catalog.UpdateProduct(c.Request.Context(), productID, update)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product updated", "product": updated})
}

// DeleteProduct removes one of the caller's products
func (a *API) DeleteProduct(c *gin.Context) {
	p, _, ok := restaurantScope(c)
	if !ok {
		return
	}
	productID, ok := parseID(c, "productId")
	if !ok {
		return
	}

	product, err := a.Catalog.ProductByID(c.Request.Context(), productID)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	if err := authz.CanAccess(p, product); err != nil {
		httperr.Render(c, err)
		return
	}
	if !p.HasPermission(models.PermProducts) {
		httperr.Render(c, fmt.Errorf("%w: missing %q permission", authz.ErrForbidden, models.PermProducts))
		return
	}

	if err := a.Catalog.DeleteProduct(c.Request.Context(), productID); err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted"})
}
