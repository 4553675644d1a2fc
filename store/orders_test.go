package store

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"menuva/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a single connection keeps the in-memory database alive and shared
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.StatusChange{},
	))
	return db
}

func seedOrder(t *testing.T, orders *Orders, number, phone string, restaurantID uint) *models.Order {
	t.Helper()
	order := &models.Order{
		Number:        number,
		RestaurantID:  restaurantID,
		Status:        models.StatusReceived,
		CustomerName:  "Dana",
		CustomerPhone: phone,
		DeliveryType:  models.DeliveryTypeDelivery,
		PaymentMethod: "CASH",
		PaymentStatus: models.PaymentPending,
		Total:         24.50,
		Items: []models.OrderItem{
			{ProductID: 1, Quantity: 2, Price: 9.75, Name: "Margherita"},
			{ProductID: 2, Quantity: 1, Price: 5.00, Name: "Cola"},
		},
	}
	require.NoError(t, orders.Create(context.Background(), order))
	return order
}

func TestOrders_CreateWritesInitialHistory(t *testing.T) {
	orders := NewOrders(testDB(t))
	created := seedOrder(t, orders, "MNU-AAA111222", "+77010000001", 1)

	loaded, err := orders.ByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReceived, loaded.Status)
	assert.Len(t, loaded.Items, 2)
	require.Len(t, loaded.StatusHistory, 1)
	assert.Equal(t, models.StatusReceived, loaded.StatusHistory[0].ToStatus)
}

func TestOrders_ByNumber(t *testing.T) {
	orders := NewOrders(testDB(t))
	seedOrder(t, orders, "MNU-AAA111222", "+77010000001", 1)
	seedOrder(t, orders, "MNU-BBB333444", "+77010000002", 1)

	found, err := orders.ByNumber(context.Background(), "MNU-BBB333444")
	require.NoError(t, err)
	assert.Equal(t, "+77010000002", found.CustomerPhone)

	_, err = orders.ByNumber(context.Background(), "MNU-NOPE00000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrders_ByPhone(t *testing.T) {
	orders := NewOrders(testDB(t))
	seedOrder(t, orders, "MNU-AAA111222", "+77010000001", 1)
	seedOrder(t, orders, "MNU-BBB333444", "+77010000001", 2)
	seedOrder(t, orders, "MNU-CCC555666", "+77010000002", 1)

	found, err := orders.ByPhone(context.Background(), "+77010000001")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	none, err := orders.ByPhone(context.Background(), "+77019999999")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestOrders_ListFilters(t *testing.T) {
	orders := NewOrders(testDB(t))
	a := seedOrder(t, orders, "MNU-AAA111222", "+77010000001", 1)
	seedOrder(t, orders, "MNU-BBB333444", "+77010000002", 2)

	_, err := orders.TransitionStatus(context.Background(), a.ID, models.StatusReceived, models.StatusPreparing, models.RoleRestaurator, 5, "")
	require.NoError(t, err)

	byRestaurant, err := orders.List(context.Background(), OrderFilter{RestaurantID: 1})
	require.NoError(t, err)
	assert.Len(t, byRestaurant, 1)

	byStatus, err := orders.List(context.Background(), OrderFilter{Status: models.StatusPreparing})
	require.NoError(t, err)
	assert.Len(t, byStatus, 1)
	assert.Equal(t, a.ID, byStatus[0].ID)

	all, err := orders.List(context.Background(), OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestOrders_TransitionStatus(t *testing.T) {
	orders := NewOrders(testDB(t))
	order := seedOrder(t, orders, "MNU-AAA111222", "+77010000001", 1)

	updated, err := orders.TransitionStatus(context.Background(), order.ID, models.StatusReceived, models.StatusPreparing, models.RoleRestaurator, 5, "started cooking")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, updated.Status)

	// audit trail grows with each transition
	require.Len(t, updated.StatusHistory, 2)
	last := updated.StatusHistory[1]
	assert.Equal(t, models.StatusReceived, last.FromStatus)
	assert.Equal(t, models.StatusPreparing, last.ToStatus)
	assert.Equal(t, models.RoleRestaurator, last.Actor)
	assert.Equal(t, uint(5), last.ChangedBy)
}

// A stale expected-status means someone else already moved the order: the
// conditional update matches zero rows and the caller gets a conflict, never
// a silent overwrite.
func TestOrders_TransitionStatusConflict(t *testing.T) {
	orders := NewOrders(testDB(t))
	order := seedOrder(t, orders, "MNU-AAA111222", "+77010000001", 1)

	_, err := orders.TransitionStatus(context.Background(), order.ID, models.StatusReceived, models.StatusPreparing, models.RoleRestaurator, 5, "")
	require.NoError(t, err)

	// second caller still believes the order is RECEIVED
	_, err = orders.TransitionStatus(context.Background(), order.ID, models.StatusReceived, models.StatusCancelled, models.RoleAdmin, 1, "")
	assert.ErrorIs(t, err, ErrConflict)

	// losing request must not have changed anything
	loaded, err := orders.ByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, loaded.Status)
	assert.Len(t, loaded.StatusHistory, 2)
}

func TestOrders_SetPaymentStatus(t *testing.T) {
	orders := NewOrders(testDB(t))
	order := seedOrder(t, orders, "MNU-AAA111222", "+77010000001", 1)

	updated, err := orders.SetPaymentStatus(context.Background(), order.ID, models.PaymentPaid)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, updated.PaymentStatus)
	// lifecycle untouched
	assert.Equal(t, models.StatusReceived, updated.Status)

	_, err = orders.SetPaymentStatus(context.Background(), 9999, models.PaymentPaid)
	assert.ErrorIs(t, err, ErrNotFound)
}
