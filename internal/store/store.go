package store

import (
	"context"
	"errors"

	"github.com/john9012002/DoAnChuyenNganh/internal/model"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrConflict indicates a uniqueness conflict.
var ErrConflict = errors.New("record already exists")

// UserStore captures the persistence operations the handlers need for users.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	AppendSubscription(ctx context.Context, email string, sub model.Subscription) error
}

// ListingStore captures the persistence operations for listings.
type ListingStore interface {
	List(ctx context.Context, limit int) ([]model.Listing, error)
	Get(ctx context.Context, id string) (*model.Listing, error)
	Create(ctx context.Context, listing *model.Listing) error
	InsertMany(ctx context.Context, listings []model.Listing) error
	Update(ctx context.Context, id string, attrs model.Attributes) error
	Delete(ctx context.Context, id string) error
}
