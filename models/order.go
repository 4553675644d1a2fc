package models

import "time"

// OrderStatus represents all possible states of a food order.
// Values are wire-level and case-sensitive: every surface uses them verbatim.
type OrderStatus string

const (
	StatusReceived   OrderStatus = "RECEIVED"
	StatusPreparing  OrderStatus = "PREPARING"
	StatusReady      OrderStatus = "READY"
	StatusDelivering OrderStatus = "DELIVERING"
	StatusDelivered  OrderStatus = "DELIVERED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// DeliveryType tells whether the customer wants the order brought out or picked up
type DeliveryType string

const (
	DeliveryTypeDelivery DeliveryType = "DELIVERY"
	DeliveryTypePickup   DeliveryType = "PICKUP"
)

// PaymentStatus is tracked separately from the order lifecycle
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

type Order struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Number        string         `json:"order_number" gorm:"uniqueIndex;not null"` // MNU-XXXXXXXXX, customer lookup key
	RestaurantID  uint           `json:"restaurant_id" gorm:"not null;index"`
	Restaurant    *Restaurant    `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	Status        OrderStatus    `json:"status" gorm:"not null;default:'RECEIVED'"`
	CustomerName  string         `json:"customer_name" gorm:"not null"`
	CustomerPhone string         `json:"customer_phone" gorm:"not null;index"` // second customer lookup key
	CustomerEmail string         `json:"customer_email,omitempty"`
	Address       string         `json:"address"`
	DeliveryType  DeliveryType   `json:"delivery_type" gorm:"not null;default:'DELIVERY'"`
	PaymentMethod string         `json:"payment_method"`
	PaymentStatus PaymentStatus  `json:"payment_status" gorm:"not null;default:'PENDING'"`
	Notes         string         `json:"notes,omitempty"`
	Total         float64        `json:"total"` // items + delivery fee, fixed at checkout
	EstimatedTime int            `json:"estimated_time_minutes"`
	Items         []OrderItem    `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory []StatusChange `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// ScopeRestaurantID implements authz scoping for orders.
func (o Order) ScopeRestaurantID() uint { return o.RestaurantID }

type OrderItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	OrderID   uint    `json:"order_id" gorm:"not null;index"`
	ProductID uint    `json:"product_id" gorm:"not null"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	Price     float64 `json:"price" gorm:"not null"` // snapshot price at time of order
	Name      string  `json:"name"`                  // snapshot name
}

// StatusChange is one row of the per-order audit trail
type StatusChange struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null;index"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	Actor      Role        `json:"actor"`
	ChangedBy  uint        `json:"changed_by"` // user ID who triggered the transition, 0 for checkout
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
