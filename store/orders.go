package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"menuva/models"
)

// Orders is the persistence adapter for orders. All status writes go through
// TransitionStatus so the conditional-update guard cannot be bypassed.
type Orders struct {
	db *gorm.DB
}

func NewOrders(db *gorm.DB) *Orders {
	return &Orders{db: db}
}

// OrderFilter narrows List results. Zero values mean "no filter".
type OrderFilter struct {
	Status       models.OrderStatus
	RestaurantID uint
}

// Create inserts a new order with its line items and the initial history row.
func (s *Orders) Create(ctx context.Context, order *models.Order) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Create(&models.StatusChange{
			OrderID:  order.ID,
			ToStatus: order.Status,
			Actor:    models.RoleCustomer,
			Note:     "order placed at checkout",
		}).Error
	})
}

// ByID loads one order with items, restaurant and history.
func (s *Orders) ByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.preloaded(ctx).First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ByNumber finds the single order carrying a customer-shareable number.
func (s *Orders) ByNumber(ctx context.Context, number string) (*models.Order, error) {
	var order models.Order
	err := s.preloaded(ctx).Where("number = ?", number).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, number)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ByPhone finds every order placed with the given phone number.
func (s *Orders) ByPhone(ctx context.Context, phone string) ([]models.Order, error) {
	var orders []models.Order
	err := s.preloaded(ctx).
		Where("customer_phone = ?", phone).
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}

// List returns orders matching the filter, newest first.
func (s *Orders) List(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	q := s.preloaded(ctx)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.RestaurantID != 0 {
		q = q.Where("restaurant_id = ?", f.RestaurantID)
	}
	var orders []models.Order
	err := q.Order("created_at desc").Find(&orders).Error
	return orders, err
}

// TransitionStatus applies from→to as a conditional update. If another
// request already moved the order, zero rows match and ErrConflict comes
// back; the caller's earlier validity check is then stale by definition.
func (s *Orders) TransitionStatus(ctx context.Context, orderID uint, from, to models.OrderStatus, actor models.Role, changedBy uint, note string) (*models.Order, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", orderID, from).
			Update("status", to)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: order %d is no longer %s", ErrConflict, orderID, from)
		}
		return tx.Create(&models.StatusChange{
			OrderID:    orderID,
			FromStatus: from,
			ToStatus:   to,
			Actor:      actor,
			ChangedBy:  changedBy,
			Note:       note,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.ByID(ctx, orderID)
}

// SetPaymentStatus updates the payment flag; not a lifecycle transition.
func (s *Orders) SetPaymentStatus(ctx context.Context, orderID uint, status models.PaymentStatus) (*models.Order, error) {
	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("payment_status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
	}
	return s.ByID(ctx, orderID)
}

func (s *Orders) preloaded(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Items").
		Preload("Restaurant").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("status_changes.id asc")
		})
}
