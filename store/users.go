package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"menuva/models"
)

// Users is the persistence adapter for platform accounts.
type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

func (s *Users) Create(ctx context.Context, u *models.User) error {
	return s.db.WithContext(ctx).Create(u).Error
}

func (s *Users) ByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Users) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, email)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Users) List(ctx context.Context, role models.Role) ([]models.User, error) {
	q := s.db.WithContext(ctx)
	if role != "" {
		q = q.Where("role = ?", role)
	}
	var users []models.User
	err := q.Order("created_at desc").Find(&users).Error
	return users, err
}
