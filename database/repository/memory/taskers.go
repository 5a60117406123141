package memory

import (
	"context"
	"time"

	"taskhive/database/repository"
	"taskhive/models"

	"go.mongodb.org/mongo-driver/bson"
)

// TaskerRepo implements taskerRepo.TaskerRepository in memory.
type TaskerRepo struct{ s *Store }

func (r *TaskerRepo) Create(_ context.Context, t *models.Tasker) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.taskers {
		if existing.UserID == t.UserID || existing.ID == t.ID {
			return repository.ErrDuplicate
		}
	}
	now := r.s.stamp()
	t.CreatedAt, t.UpdatedAt = now, now
	r.s.taskers[t.ID] = *t
	return nil
}

func (r *TaskerRepo) GetByID(_ context.Context, id string) (*models.Tasker, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.taskers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (r *TaskerRepo) byUser(userID string) (models.Tasker, bool) {
	for _, t := range r.s.taskers {
		if t.UserID == userID {
			return t, true
		}
	}
	return models.Tasker{}, false
}

func (r *TaskerRepo) GetByUserID(_ context.Context, userID string) (*models.Tasker, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.byUser(userID)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (r *TaskerRepo) GetByIDs(_ context.Context, ids []string) ([]models.Tasker, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.Tasker{}
	for _, id := range ids {
		if t, ok := r.s.taskers[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *TaskerRepo) profile(t models.Tasker) models.TaskerProfile {
	p := models.TaskerProfile{Tasker: t}
	if u, ok := r.s.users[t.UserID]; ok {
		p.Name, p.Email = u.Name, u.Email
	}
	return p
}

func (r *TaskerRepo) GetProfileByUserID(_ context.Context, userID string) (*models.TaskerProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.byUser(userID)
	if !ok {
		return nil, repository.ErrNotFound
	}
	p := r.profile(t)
	return &p, nil
}

func (r *TaskerRepo) ExistsForUser(_ context.Context, userID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.byUser(userID)
	return ok, nil
}

func (r *TaskerRepo) UpdateFields(_ context.Context, id string, set bson.M) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.taskers[id]
	if !ok {
		return repository.ErrNotFound
	}
	set["updatedAt"] = r.s.now()
	if err := applySet(&t, set); err != nil {
		return err
	}
	r.s.taskers[id] = t
	return nil
}

func (r *TaskerRepo) DeleteByUserID(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.byUser(userID)
	if !ok {
		return repository.ErrNotFound
	}
	delete(r.s.taskers, t.ID)
	return nil
}

func (r *TaskerRepo) List(_ context.Context, search models.TaskerSearch) ([]models.TaskerProfile, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []models.TaskerProfile{}
	for _, t := range r.s.taskers {
		if search.Status != "" && t.Status != search.Status {
			continue
		}
		p := r.profile(t)
		if search.Search != "" && !anyContains(search.Search, p.Name, p.Email) {
			continue
		}
		matched = append(matched, p)
	}
	sortNewestFirst(matched, func(p models.TaskerProfile) time.Time { return p.CreatedAt })
	return page(matched, search.Page, search.Limit), int64(len(matched)), nil
}

func (r *TaskerRepo) Count(_ context.Context, status string, since time.Time) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, t := range r.s.taskers {
		if status != "" && t.Status != status {
			continue
		}
		if !since.IsZero() && t.CreatedAt.Before(since) {
			continue
		}
		n++
	}
	return n, nil
}
