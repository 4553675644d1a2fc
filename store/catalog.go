package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"menuva/models"
)

// Catalog is the persistence adapter for restaurants, products and
// categories. The order path only reads it: product price and name are
// snapshotted into order items at checkout.
type Catalog struct {
	db *gorm.DB
}

func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// RestaurantFilter narrows ListRestaurants. Zero values mean "no filter".
type RestaurantFilter struct {
	Search   string
	OpenOnly bool
}

func (s *Catalog) ListRestaurants(ctx context.Context, f RestaurantFilter) ([]models.Restaurant, error) {
	q := s.db.WithContext(ctx)
	if f.Search != "" {
		q = q.Where("name LIKE ?", "%"+f.Search+"%")
	}
	if f.OpenOnly {
		q = q.Where("is_open = ?", true)
	}
	var restaurants []models.Restaurant
	err := q.Order("name asc").Find(&restaurants).Error
	return restaurants, err
}

func (s *Catalog) RestaurantByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := s.db.WithContext(ctx).Preload("Products.Category").First(&restaurant, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: restaurant %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (s *Catalog) CreateRestaurant(ctx context.Context, r *models.Restaurant) error {
	return s.db.WithContext(ctx).Create(r).Error
}

// UpdateRestaurant applies a whitelisted field map.
func (s *Catalog) UpdateRestaurant(ctx context.Context, id uint, fields map[string]interface{}) (*models.Restaurant, error) {
	res := s.db.WithContext(ctx).Model(&models.Restaurant{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: restaurant %d", ErrNotFound, id)
	}
	return s.RestaurantByID(ctx, id)
}

// ── Products ────────────────────────────────────────────────────────────────

func (s *Catalog) ProductByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).Preload("Category").First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Catalog) ListProducts(ctx context.Context, restaurantID uint, categoryID uint) ([]models.Product, error) {
	q := s.db.WithContext(ctx).Preload("Category").Where("restaurant_id = ?", restaurantID)
	if categoryID != 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	var products []models.Product
	err := q.Order("name asc").Find(&products).Error
	return products, err
}

func (s *Catalog) CreateProduct(ctx context.Context, p *models.Product) error {
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *Catalog) UpdateProduct(ctx context.Context, id uint, fields map[string]interface{}) (*models.Product, error) {
	res := s.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	return s.ProductByID(ctx, id)
}

func (s *Catalog) DeleteProduct(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	return nil
}

// ── Categories ──────────────────────────────────────────────────────────────

func (s *Catalog) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.WithContext(ctx).Order("name asc").Find(&categories).Error
	return categories, err
}

func (s *Catalog) CreateCategory(ctx context.Context, c *models.Category) error {
	return s.db.WithContext(ctx).Create(c).Error
}

func (s *Catalog) DeleteCategory(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: category %d", ErrNotFound, id)
	}
	return nil
}
