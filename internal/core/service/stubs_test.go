package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/stayhub/hotel-booking-system/internal/core/domain"
	"github.com/stayhub/hotel-booking-system/internal/core/ports"
)

// memStore is a shared in-memory backing store for the stub repositories. A
// single mutex makes CreateWithOwner atomic the same way the real store's
// transaction does, which the concurrency tests rely on.
type memStore struct {
	mu       sync.Mutex
	users    map[string]*domain.User // by internal id
	hotels   []*domain.Hotel
	bookings map[string]*domain.Booking
	slots    map[string]string // hotelID|date -> booking id
	idemp    map[string]string // ownerID|key -> booking id
	seq      int
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[string]*domain.User),
		bookings: make(map[string]*domain.Booking),
		slots:    make(map[string]string),
		idemp:    make(map[string]string),
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return prefix + strconv.Itoa(m.seq)
}

func slotKey(hotelID string, date time.Time) string {
	return hotelID + "|" + date.Format("2006-01-02")
}

func idempKey(ownerID, key string) string {
	return ownerID + "|" + key
}

type stubUserRepo struct{ store *memStore }

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
		if u.UserID == user.UserID {
			return nil, domain.ErrUserIDTaken
		}
	}
	clone := *user
	clone.ID = r.store.nextID("u")
	r.store.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByUserID(_ context.Context, userID string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.UserID == userID {
			clone := *u
			clone.Bookings = append([]string(nil), u.Bookings...)
			return &clone, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

type stubHotelRepo struct{ store *memStore }

func (r *stubHotelRepo) Create(_ context.Context, hotel *domain.Hotel) (*domain.Hotel, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, h := range r.store.hotels {
		if h.Code == hotel.Code {
			return nil, domain.ErrDuplicateHotelCode
		}
		if h.Name == hotel.Name {
			return nil, domain.ErrDuplicateHotelName
		}
	}
	clone := *hotel
	clone.ID = r.store.nextID("h")
	r.store.hotels = append(r.store.hotels, &clone)
	out := clone
	return &out, nil
}

func (r *stubHotelRepo) FindByCode(_ context.Context, code string) (*domain.Hotel, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, h := range r.store.hotels {
		if h.Code == code {
			clone := *h
			return &clone, nil
		}
	}
	return nil, domain.ErrHotelNotFound
}

func (r *stubHotelRepo) FindByID(_ context.Context, id string) (*domain.Hotel, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, h := range r.store.hotels {
		if h.ID == id {
			clone := *h
			return &clone, nil
		}
	}
	return nil, domain.ErrHotelNotFound
}

func (r *stubHotelRepo) ListExcluding(_ context.Context, excludeIDs []string) ([]*domain.Hotel, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	excluded := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}
	var out []*domain.Hotel
	for _, h := range r.store.hotels {
		if _, skip := excluded[h.ID]; skip {
			continue
		}
		clone := *h
		out = append(out, &clone)
	}
	return out, nil
}

type stubBookingRepo struct{ store *memStore }

func (r *stubBookingRepo) CreateWithOwner(_ context.Context, booking *domain.Booking, ownerID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := slotKey(booking.HotelID, booking.Date)
	if _, taken := r.store.slots[key]; taken {
		return domain.ErrSlotUnavailable
	}
	if booking.IdempotencyKey != "" {
		if _, used := r.store.idemp[idempKey(ownerID, booking.IdempotencyKey)]; used {
			return domain.ErrDuplicateIdempotencyKey
		}
	}
	owner, ok := r.store.users[ownerID]
	if !ok {
		return domain.ErrAccountNotFound
	}

	clone := *booking
	clone.ID = r.store.nextID("b")
	r.store.bookings[clone.ID] = &clone
	r.store.slots[key] = clone.ID
	owner.Bookings = append(owner.Bookings, clone.ID)
	if clone.IdempotencyKey != "" {
		r.store.idemp[idempKey(ownerID, clone.IdempotencyKey)] = clone.ID
	}
	booking.ID = clone.ID
	return nil
}

func (r *stubBookingRepo) FindByID(_ context.Context, id string) (*domain.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s not found", id)
	}
	clone := *b
	return &clone, nil
}

func (r *stubBookingRepo) FindByIdempotencyKey(_ context.Context, ownerID, key string) (*domain.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	id, ok := r.store.idemp[idempKey(ownerID, key)]
	if !ok {
		return nil, errors.New("no booking for idempotency key")
	}
	clone := *r.store.bookings[id]
	return &clone, nil
}

func (r *stubBookingRepo) HotelIDsOnDate(_ context.Context, date time.Time) ([]string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	seen := make(map[string]struct{})
	var out []string
	for _, b := range r.store.bookings {
		if b.Date.Equal(date) {
			if _, dup := seen[b.HotelID]; !dup {
				seen[b.HotelID] = struct{}{}
				out = append(out, b.HotelID)
			}
		}
	}
	return out, nil
}

type stubNotifier struct {
	mu     sync.Mutex
	events []ports.BookingNotification
}

func (n *stubNotifier) Enqueue(event ports.BookingNotification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *stubNotifier) all() []ports.BookingNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]ports.BookingNotification(nil), n.events...)
}
