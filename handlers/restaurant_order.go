package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"menuva/authz"
	"menuva/httperr"
	"menuva/models"
	"menuva/store"
)

// ListMyOrders returns the caller's restaurant orders, pre-filtered
// server-side. The restaurant scope comes from the token, never from the
// request, so the caller cannot widen it.
func (a *API) ListMyOrders(c *gin.Context) {
	p, restaurantID, ok := restaurantScope(c)
	if !ok {
		return
	}
	if !p.HasPermission(models.PermOrders) {
		httperr.Render(c, fmt.Errorf("%w: missing %q permission", authz.ErrForbidden, models.PermOrders))
		return
	}

	orders, err := a.Orders.List(c.Request.Context(), store.OrderFilter{
		Status:       models.OrderStatus(c.Query("status")),
		RestaurantID: restaurantID,
	})
	if err != nil {
		httperr.Render(c, err)
		return
	}
	// the visibility filter is authoritative; the SQL predicate above is the
	// same rule pushed down
	orders = authz.Filter(p, orders)

	resp := gin.H{
		"success": true,
		"count":   len(orders),
		"orders":  orderViews(orders),
	}
	// status summary is dashboard material, gated by its own token
	if p.HasPermission(models.PermDashboard) {
		summary := map[string]int{}
		for _, o := range orders {
			summary[string(o.Status)]++
		}
		resp["order_summary"] = summary
	}
	c.JSON(http.StatusOK, resp)
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

// UpdateOrderStatus handles a restaurant's lifecycle transitions
func (a *API) UpdateOrderStatus(c *gin.Context) {
	p, _, ok := restaurantScope(c)
	if !ok {
		return
	}
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

type UpdatePaymentStatusRequest struct {
	PaymentStatus models.PaymentStatus `json:"payment_status" binding:"required,oneof=PENDING PAID REFUNDED"`
}

// UpdatePaymentStatus flips the payment flag on an in-scope order. This is
// bookkeeping, not a lifecycle transition, so it skips the state machine.
func (a *API) UpdatePaymentStatus(c *gin.Context) {
	p, _, ok := restaurantScope(c)
	if !ok {
		return
	}
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	ctx := c.Request.Context()
	order, err := a.Orders.ByID(ctx, orderID)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	if err := authz.CanMutateOrders(p, order); err != nil {
		httperr.Render(c, err)
		return
	}

	updated, err := a.Orders.SetPaymentStatus(ctx, orderID, req.PaymentStatus)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment status updated", "order": orderView(*updated)})
}
