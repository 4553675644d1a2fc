package statemachine

import (
	"strconv"

	"menuva/models"
)

// Presentation mapping shared by every surface (tracking page, restaurant
// dashboard, admin list). Pure and total: unknown statuses fall back to the
// raw value rather than diverging per caller.

var statusLabels = map[models.OrderStatus]string{
	models.StatusReceived:   "Order received",
	models.StatusPreparing:  "Being prepared",
	models.StatusReady:      "Ready",
	models.StatusDelivering: "Out for delivery",
	models.StatusDelivered:  "Delivered",
	models.StatusCancelled:  "Cancelled",
}

var statusCategories = map[models.OrderStatus]string{
	models.StatusReceived:   "pending",
	models.StatusPreparing:  "active",
	models.StatusReady:      "active",
	models.StatusDelivering: "active",
	models.StatusDelivered:  "done",
	models.StatusCancelled:  "done",
}

// Label returns the human-readable label for a status.
func Label(status models.OrderStatus) string {
	if l, ok := statusLabels[status]; ok {
		return l
	}
	return string(status)
}

// Category buckets a status for icon/color selection.
func Category(status models.OrderStatus) string {
	if c, ok := statusCategories[status]; ok {
		return c
	}
	return "pending"
}

// ETAText renders the advisory time estimate for a status. estimatedTime is
// the minutes recorded at checkout; it only applies while food is being made.
func ETAText(status models.OrderStatus, estimatedTime int) string {
	switch status {
	case models.StatusReceived, models.StatusPreparing:
		if estimatedTime > 0 {
			return "about " + strconv.Itoa(estimatedTime) + " min"
		}
		return "being estimated"
	case models.StatusReady:
		return "ready now"
	case models.StatusDelivering:
		return "on the way"
	default:
		return ""
	}
}

// EstimateMinutes computes the checkout-time estimate: 30 min base plus 5 per
// distinct line item.
func EstimateMinutes(itemCount int) int {
	return 30 + 5*itemCount
}
