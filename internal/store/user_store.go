package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/john9012002/DoAnChuyenNganh/internal/model"
)

// GormUserStore persists users in Postgres through GORM.
type GormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) Create(ctx context.Context, user *model.User) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *GormUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	result := s.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

func (s *GormUserStore) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update applies a partial field set to the user. The role value is written
// as given; it is not checked against the role enum.
func (s *GormUserStore) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return s.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).Updates(fields).Error
}

func (s *GormUserStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id).Error
}

func (s *GormUserStore) AppendSubscription(ctx context.Context, email string, sub model.Subscription) error {
	var user model.User
	result := s.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return result.Error
	}
	user.Subscriptions = append(user.Subscriptions, sub)
	return s.db.WithContext(ctx).Model(&user).
		Update("subscriptions", user.Subscriptions).Error
}
