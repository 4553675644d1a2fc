package models

import "time"

type Restaurant struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Description string    `json:"description"`
	IsOpen      bool      `json:"is_open" gorm:"default:true"`
	DeliveryFee float64   `json:"delivery_fee" gorm:"default:0"`
	Products    []Product `json:"products,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Category is a platform-wide product category managed by admins
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Product struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;index"`
	CategoryID   *uint     `json:"category_id"`
	Category     *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Name         string    `json:"name" gorm:"not null"`
	Description  string    `json:"description"`
	Price        float64   `json:"price" gorm:"not null"`
	IsAvailable  bool      `json:"is_available" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ScopeRestaurantID implements authz scoping for products.
func (p Product) ScopeRestaurantID() uint { return p.RestaurantID }
