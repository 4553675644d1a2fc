package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"menuva/authz"
	"menuva/cache"
	"menuva/events"
	"menuva/httperr"
	"menuva/models"
	"menuva/statemachine"
	"menuva/store"
)

// API carries the boundary's collaborators. Handlers compose the pure
// transition and visibility checks with the persistence adapter; nothing
// here holds order state between requests.
type API struct {
	Orders  *store.Orders
	Catalog *store.Catalog
	Users   *store.Users
	Events  events.Publisher
	Cache   *cache.Cache
}

func NewAPI(orders *store.Orders, catalog *store.Catalog, users *store.Users, publisher events.Publisher, listCache *cache.Cache) *API {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &API{
		Orders:  orders,
		Catalog: catalog,
		Users:   users,
		Events:  publisher,
		Cache:   listCache,
	}
}

// newOrderNumber generates the customer-shareable MNU-XXXXXXXXX identifier.
func newOrderNumber() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "MNU-" + raw[:9]
}

// orderView is the single wire shape for an order, shared by the tracking
// page, the restaurant dashboard and the admin list so presentation never
// diverges per surface.
func orderView(o models.Order) gin.H {
	view := gin.H{
		"id":                     o.ID,
		"order_number":           o.Number,
		"customer_name":          o.CustomerName,
		"customer_phone":         o.CustomerPhone,
		"customer_email":         o.CustomerEmail,
		"items":                  o.Items,
		"total":                  o.Total,
		"status":                 o.Status,
		"status_label":           statemachine.Label(o.Status),
		"status_category":        statemachine.Category(o.Status),
		"eta":                    statemachine.ETAText(o.Status, o.EstimatedTime),
		"delivery_type":          o.DeliveryType,
		"payment_method":         o.PaymentMethod,
		"payment_status":         o.PaymentStatus,
		"estimated_time_minutes": o.EstimatedTime,
		"created_at":             o.CreatedAt,
		"updated_at":             o.UpdatedAt,
	}
	if o.Restaurant != nil {
		view["restaurant"] = gin.H{"id": o.Restaurant.ID, "name": o.Restaurant.Name}
	}
	if o.Address != "" {
		view["delivery_address"] = o.Address
	}
	if o.Notes != "" {
		view["notes"] = o.Notes
	}
	return view
}

func orderViews(orders []models.Order) []gin.H {
	views := make([]gin.H, len(orders))
	for i, o := range orders {
		views[i] = orderView(o)
	}
	return views
}

// transitionOrder is the one path through which any surface changes order
// status: load, scope check, graph check, conditional write, event.
func (a *API) transitionOrder(c *gin.Context, p authz.Principal, orderID uint, to models.OrderStatus, note string) {
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
	if err := statemachine.CanTransition(order.Status, to, p.Role); err != nil {
		httperr.Render(c, err)
		return
	}

	updated, err := a.Orders.TransitionStatus(ctx, order.ID, order.Status, to, p.Role, p.UserID, note)
	if err != nil {
		httperr.Render(c, err)
		return
	}

	if err := a.Events.PublishStatusChange(ctx, events.OrderStatusChanged{
		OrderID:    updated.ID,
		Number:     updated.Number,
		Restaurant: updated.RestaurantID,
		From:       order.Status,
		To:         updated.Status,
		Actor:      p.Role,
		At:         updated.UpdatedAt,
	}); err != nil {
		// the transition already committed; the event stream catches up later
		log.Printf("publish status change for order %d: %v", updated.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         "Order status updated",
		"previous_status": order.Status,
		"order":           orderView(*updated),
	})
}

var errInvalidID = errors.New("invalid numeric id in path")

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		httperr.Validation(c, errInvalidID)
		return 0, false
	}
	return uint(id), true
}

func parseQueryID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
