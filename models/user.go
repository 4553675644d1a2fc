package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Role defines allowed roles in the system
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleRestaurator Role = "RESTAURATOR"
	RoleCustomer    Role = "CUSTOMER"
)

// Permission tokens a restaurator account can hold
const (
	PermOrders    = "orders"
	PermProducts  = "products"
	PermDashboard = "dashboard"
)

// PermissionSet is a set of permission tokens, stored as a JSON array column.
type PermissionSet []string

// Has reports whether the set contains the given token.
func (p PermissionSet) Has(token string) bool {
	for _, t := range p {
		if t == token {
			return true
		}
	}
	return false
}

func (p PermissionSet) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (p *PermissionSet) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*p = PermissionSet{}
		return nil
	case string:
		return json.Unmarshal([]byte(v), p)
	case []byte:
		return json.Unmarshal(v, p)
	default:
		return errors.New("permission set: unsupported column type")
	}
}

type User struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	Name         string        `json:"name" gorm:"not null"`
	Email        string        `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string        `json:"-" gorm:"not null"`
	Role         Role          `json:"role" gorm:"not null;default:'CUSTOMER'"`
	RestaurantID *uint         `json:"restaurant_id,omitempty"` // set only for RESTAURATOR
	Permissions  PermissionSet `json:"permissions" gorm:"type:text"`
	Phone        string        `json:"phone"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
