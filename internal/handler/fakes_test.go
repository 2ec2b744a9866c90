package handler

import (
	"context"
	"fmt"
	"strconv"

	"github.com/john9012002/DoAnChuyenNganh/internal/model"
	"github.com/john9012002/DoAnChuyenNganh/internal/store"
)

// In-memory store fakes so handler tests run without a database.

type fakeUserStore struct {
	nextID uint
	users  []model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1}
}

func (f *fakeUserStore) Create(_ context.Context, user *model.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return store.ErrConflict
		}
	}
	user.ID = f.nextID
	f.nextID++
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for i := range f.users {
		if f.users[i].Email == email {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, len(f.users))
	copy(out, f.users)
	return out, nil
}

func (f *fakeUserStore) Update(_ context.Context, id string, fields map[string]interface{}) error {
	for i := range f.users {
		if strconv.FormatUint(uint64(f.users[i].ID), 10) != id {
			continue
		}
		if v, ok := fields["email"].(string); ok {
			f.users[i].Email = v
		}
		if v, ok := fields["name"].(string); ok {
			f.users[i].Name = v
		}
		if v, ok := fields["role"].(string); ok {
			f.users[i].Role = v
		}
	}
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id string) error {
	kept := f.users[:0]
	for _, u := range f.users {
		if strconv.FormatUint(uint64(u.ID), 10) != id {
			kept = append(kept, u)
		}
	}
	f.users = kept
	return nil
}

func (f *fakeUserStore) AppendSubscription(_ context.Context, email string, sub model.Subscription) error {
	for i := range f.users {
		if f.users[i].Email == email {
			f.users[i].Subscriptions = append(f.users[i].Subscriptions, sub)
			return nil
		}
	}
	return store.ErrNotFound
}

type fakeListingStore struct {
	nextID   int
	listings []model.Listing
}

func newFakeListingStore() *fakeListingStore {
	return &fakeListingStore{nextID: 1}
}

func (f *fakeListingStore) assignID() string {
	id := fmt.Sprintf("listing-%d", f.nextID)
	f.nextID++
	return id
}

func (f *fakeListingStore) List(_ context.Context, limit int) ([]model.Listing, error) {
	if limit > len(f.listings) {
		limit = len(f.listings)
	}
	out := make([]model.Listing, limit)
	copy(out, f.listings[:limit])
	return out, nil
}

func (f *fakeListingStore) Get(_ context.Context, id string) (*model.Listing, error) {
	for i := range f.listings {
		if f.listings[i].ID == id {
			l := f.listings[i]
			return &l, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeListingStore) Create(_ context.Context, listing *model.Listing) error {
	if listing.ID == "" {
		listing.ID = f.assignID()
	}
	f.listings = append(f.listings, *listing)
	return nil
}

func (f *fakeListingStore) InsertMany(_ context.Context, listings []model.Listing) error {
	for i := range listings {
		listings[i].ID = f.assignID()
		f.listings = append(f.listings, listings[i])
	}
	return nil
}

func (f *fakeListingStore) Update(_ context.Context, id string, attrs model.Attributes) error {
	for i := range f.listings {
		if f.listings[i].ID == id {
			f.listings[i].Attributes = attrs
		}
	}
	return nil
}

func (f *fakeListingStore) Delete(_ context.Context, id string) error {
	kept := f.listings[:0]
	for _, l := range f.listings {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	f.listings = kept
	return nil
}
