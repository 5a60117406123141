package memory

import (
	"context"
	"strings"
	"time"

	"taskhive/database/repository"
	"taskhive/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepo implements userRepo.UserRepository in memory.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	for _, existing := range r.s.users {
		if existing.Email == u.Email || existing.ID == u.ID {
			return repository.ErrDuplicate
		}
	}
	now := r.s.stamp()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepo) GetByIDs(_ context.Context, ids []string) ([]models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.User{}
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			u.PasswordHash = ""
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *UserRepo) UpdateFields(_ context.Context, id string, set bson.M) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	if email, ok := set["email"].(string); ok {
		email = strings.ToLower(strings.TrimSpace(email))
		for _, other := range r.s.users {
			if other.Email == email && other.ID != id {
				return repository.ErrDuplicate
			}
		}
		set["email"] = email
	}
	set["updatedAt"] = r.s.now()
	if err := applySet(&u, set); err != nil {
		return err
	}
	r.s.users[id] = u
	return nil
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.users, id)
	return nil
}

func (r *UserRepo) List(_ context.Context, search models.UserSearch) ([]models.User, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []models.User{}
	for _, u := range r.s.users {
		if search.Role != "" && u.Role != search.Role {
			continue
		}
		if search.Status != "" && u.Status != search.Status {
			continue
		}
		if search.Search != "" && !anyContains(search.Search, u.Name, u.Email) {
			continue
		}
		u.PasswordHash = ""
		u.FCMToken = ""
		matched = append(matched, u)
	}
	sortNewestFirst(matched, func(u models.User) time.Time { return u.CreatedAt })
	return page(matched, search.Page, search.Limit), int64(len(matched)), nil
}

func (r *UserRepo) Count(_ context.Context, role string, since time.Time) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, u := range r.s.users {
		if role != "" && u.Role != role {
			continue
		}
		if !since.IsZero() && u.CreatedAt.Before(since) {
			continue
		}
		n++
	}
	return n, nil
}
