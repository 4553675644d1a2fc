package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"menuva/httperr"
	"menuva/models"
	"menuva/statemachine"
)

type CheckoutItem struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type CheckoutRequest struct {
	RestaurantID  uint                `json:"restaurant_id" binding:"required"`
	CustomerName  string              `json:"customer_name" binding:"required"`
	CustomerPhone string              `json:"customer_phone" binding:"required"`
	CustomerEmail string              `json:"customer_email" binding:"omitempty,email"`
	Address       string              `json:"address"`
	DeliveryType  models.DeliveryType `json:"delivery_type" binding:"required,oneof=DELIVERY PICKUP"`
	PaymentMethod string              `json:"payment_method" binding:"required"`
	Notes         string              `json:"notes"`
	Items         []CheckoutItem      `json:"items" binding:"required,min=1,dive"`
}

// Checkout creates an order (public, guest — no account needed). Product
// name and price are snapshotted into the line items; the stored total never
// changes with later catalog edits.
func (a *API) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}
	if req.DeliveryType == models.DeliveryTypeDelivery && req.Address == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"code":    "VALIDATION",
			"message": "address is required for DELIVERY orders",
		})
		return
	}

	ctx := c.Request.Context()
	restaurant, err := a.Catalog.RestaurantByID(ctx, req.RestaurantID)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	if !restaurant.IsOpen {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"code":    "VALIDATION",
			"message": "Restaurant is currently closed",
		})
		return
	}

	var orderItems []models.OrderItem
	var total float64
	for _, reqItem := range req.Items {
		product, err := a.Catalog.ProductByID(ctx, reqItem.ProductID)
		if err != nil {
			httperr.Render(c, err)
			return
		}
		if product.RestaurantID != req.RestaurantID {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"code":    "VALIDATION",
				"message": "Product '" + product.Name + "' does not belong to this restaurant",
			})
			return
		}
		if !product.IsAvailable {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"code":    "VALIDATION",
				"message": "Product '" + product.Name + "' is not available",
			})
			return
		}
		total += product.Price * float64(reqItem.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: product.ID,
			Quantity:  reqItem.Quantity,
			Price:     product.Price,
			Name:      product.Name,
		})
	}
	if req.DeliveryType == models.DeliveryTypeDelivery {
		total += restaurant.DeliveryFee
	}

	order := models.Order{
		Number:        newOrderNumber(),
		RestaurantID:  req.RestaurantID,
		Status:        models.StatusReceived,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Address:       req.Address,
		DeliveryType:  req.DeliveryType,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: models.PaymentPending,
		Notes:         req.Notes,
		Total:         total,
		EstimatedTime: statemachine.EstimateMinutes(len(req.Items)),
		Items:         orderItems,
	}
	if err := a.Orders.Create(ctx, &order); err != nil {
		httperr.Render(c, err)
		return
	}

	created, err := a.Orders.ByID(ctx, order.ID)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Order placed successfully",
		"order":   orderView(*created),
	})
}
