// Package memory is an in-process implementation of the repositories, used
// for local runs without MongoDB (STORE_DRIVER=memory) and by tests.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"taskhive/database/repository"
	bookingRepo "taskhive/database/repository/booking"
	serviceRepo "taskhive/database/repository/service"
	taskerRepo "taskhive/database/repository/tasker"
	userRepo "taskhive/database/repository/user"
	"taskhive/models"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	_ userRepo.UserRepository       = (*UserRepo)(nil)
	_ taskerRepo.TaskerRepository   = (*TaskerRepo)(nil)
	_ serviceRepo.ServiceRepository = (*ServiceRepo)(nil)
	_ bookingRepo.BookingRepository = (*BookingRepo)(nil)
)

// Store holds every collection behind one lock.
type Store struct {
	mu       sync.RWMutex
	users    map[string]models.User
	taskers  map[string]models.Tasker
	services map[string]models.Service
	bookings map[string]models.Booking
	now      func() time.Time
	last     time.Time
}

func NewStore() *Store {
	return &Store{
		users:    map[string]models.User{},
		taskers:  map[string]models.Tasker{},
		services: map[string]models.Service{},
		bookings: map[string]models.Booking{},
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SetClock overrides the timestamp source.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// stamp returns a strictly increasing millisecond timestamp; callers hold mu.
func (s *Store) stamp() time.Time {
	t := s.now().Truncate(time.Millisecond)
	if !t.After(s.last) {
		t = s.last.Add(time.Millisecond)
	}
	s.last = t
	return t
}

func (s *Store) Users() *UserRepo       { return &UserRepo{s} }
func (s *Store) Taskers() *TaskerRepo   { return &TaskerRepo{s} }
func (s *Store) Services() *ServiceRepo { return &ServiceRepo{s} }
func (s *Store) Bookings() *BookingRepo { return &BookingRepo{s} }

// applySet merges a $set document into v through a BSON round trip, matching
// how the Mongo repositories persist the same patch.
func applySet(v interface{}, set bson.M) error {
	raw, err := bson.Marshal(v)
	if err != nil {
		return err
	}
	doc := bson.M{}
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return err
	}
	for k, val := range set {
		doc[k] = val
	}
	raw, err = bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, v)
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func anyContains(needle string, fields ...string) bool {
	for _, f := range fields {
		if contains(f, needle) {
			return true
		}
	}
	return false
}

func page[T any](items []T, pageNo, limit int) []T {
	if limit <= 0 {
		return items
	}
	start := int(repository.Skip(pageNo, limit))
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func sortNewestFirst[T any](items []T, createdAt func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]).After(createdAt(items[j]))
	})
}
