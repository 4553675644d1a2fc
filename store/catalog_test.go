package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menuva/models"
)

func TestCatalog_Restaurants(t *testing.T) {
	catalog := NewCatalog(testDB(t))
	ctx := context.Background()

	require.NoError(t, catalog.CreateRestaurant(ctx, &models.Restaurant{Name: "Pizza Sun", IsOpen: true, DeliveryFee: 2.5}))
	require.NoError(t, catalog.CreateRestaurant(ctx, &models.Restaurant{Name: "Burger Moon", IsOpen: false}))

	all, err := catalog.ListRestaurants(ctx, RestaurantFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	open, err := catalog.ListRestaurants(ctx, RestaurantFilter{OpenOnly: true})
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "Pizza Sun", open[0].Name)

	matched, err := catalog.ListRestaurants(ctx, RestaurantFilter{Search: "Moon"})
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "Burger Moon", matched[0].Name)

	closed, err := catalog.UpdateRestaurant(ctx, open[0].ID, map[string]interface{}{"is_open": false})
	require.NoError(t, err)
	assert.False(t, closed.IsOpen)

	_, err = catalog.RestaurantByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalog_Products(t *testing.T) {
	catalog := NewCatalog(testDB(t))
	ctx := context.Background()

	restaurant := models.Restaurant{Name: "Pizza Sun", IsOpen: true}
	require.NoError(t, catalog.CreateRestaurant(ctx, &restaurant))
	category := models.Category{Name: "Pizza"}
	require.NoError(t, catalog.CreateCategory(ctx, &category))

	product := models.Product{
		RestaurantID: restaurant.ID,
		CategoryID:   &category.ID,
		Name:         "Margherita",
		Price:        9.75,
		IsAvailable:  true,
	}
	require.NoError(t, catalog.CreateProduct(ctx, &product))

	listed, err := catalog.ListProducts(ctx, restaurant.ID, category.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.NotNil(t, listed[0].Category)
	assert.Equal(t, "Pizza", listed[0].Category.Name)

	updated, err := catalog.UpdateProduct(ctx, product.ID, map[string]interface{}{"price": 10.25, "is_available": false})
	require.NoError(t, err)
	assert.Equal(t, 10.25, updated.Price)
	assert.False(t, updated.IsAvailable)

	require.NoError(t, catalog.DeleteProduct(ctx, product.ID))
	assert.ErrorIs(t, catalog.DeleteProduct(ctx, product.ID), ErrNotFound)
}

func TestCatalog_Categories(t *testing.T) {
	catalog := NewCatalog(testDB(t))
	ctx := context.Background()

	require.NoError(t, catalog.CreateCategory(ctx, &models.Category{Name: "Sushi"}))
	require.NoError(t, catalog.CreateCategory(ctx, &models.Category{Name: "Drinks"}))

	categories, err := catalog.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	// sorted by name
	assert.Equal(t, "Drinks", categories[0].Name)

	require.NoError(t, catalog.DeleteCategory(ctx, categories[0].ID))
	assert.ErrorIs(t, catalog.DeleteCategory(ctx, 999), ErrNotFound)
}
