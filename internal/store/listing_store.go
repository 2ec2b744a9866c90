package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/john9012002/DoAnChuyenNganh/internal/model"
)

// GormListingStore persists listings in Postgres through GORM.
type GormListingStore struct {
	db *gorm.DB
}

func NewGormListingStore(db *gorm.DB) *GormListingStore {
	return &GormListingStore{db: db}
}

// List returns up to limit listings in store-native order. No sort key is
// applied, so the order is whatever the database yields.
func (s *GormListingStore) List(ctx context.Context, limit int) ([]model.Listing, error) {
	var listings []model.Listing
	if err := s.db.WithContext(ctx).Limit(limit).Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (s *GormListingStore) Get(ctx context.Context, id string) (*model.Listing, error) {
	var listing model.Listing
	result := s.db.WithContext(ctx).Where("id = ?", id).First(&listing)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &listing, nil
}

func (s *GormListingStore) Create(ctx context.Context, listing *model.Listing) error {
	if listing.ID == "" {
		listing.ID = uuid.New().String()
	}
	return s.db.WithContext(ctx).Create(listing).Error
}

// InsertMany bulk-inserts the batch, assigning a fresh identifier to every
// row. There is no dedup or upsert: the same batch inserted twice produces
// two copies of each record.
func (s *GormListingStore) InsertMany(ctx context.Context, listings []model.Listing) error {
	if len(listings) == 0 {
		return nil
	}
	for i := range listings {
		listings[i].ID = uuid.New().String()
	}
	return s.db.WithContext(ctx).Create(&listings).Error
}

// Update replaces the attribute set of the listing. A missing id matches
// zero rows and reports no error.
func (s *GormListingStore) Update(ctx context.Context, id string, attrs model.Attributes) error {
	return s.db.WithContext(ctx).Model(&model.Listing{}).
		Where("id = ?", id).Update("attributes", attrs).Error
}

// Delete removes the listing. A missing id matches zero rows and reports
// no error.
func (s *GormListingStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&model.Listing{}, "id = ?", id).Error
}
