package memory

import (
	"context"
	"sort"
	"time"

	"taskhive/database/repository"
	"taskhive/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ServiceRepo implements serviceRepo.ServiceRepository in memory.
type ServiceRepo struct{ s *Store }

func (r *ServiceRepo) Create(_ context.Context, svc *models.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.services[svc.ID]; ok {
		return repository.ErrDuplicate
	}
	now := r.s.stamp()
	svc.CreatedAt, svc.UpdatedAt = now, now
	if svc.Tags == nil {
		svc.Tags = []string{}
	}
	r.s.services[svc.ID] = *svc
	return nil
}

func (r *ServiceRepo) GetByID(_ context.Context, id string) (*models.Service, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	svc, ok := r.s.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &svc, nil
}

func (r *ServiceRepo) GetByIDs(_ context.Context, ids []string) ([]models.Service, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.Service{}
	for _, id := range ids {
		if svc, ok := r.s.services[id]; ok {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (r *ServiceRepo) UpdateVersioned(_ context.Context, id string, expectedVersion int64, set bson.M) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	svc, ok := r.s.services[id]
	if !ok {
		return repository.ErrNotFound
	}
	if svc.Version != expectedVersion {
		return repository.ErrVersionConflict
	}
	set["updatedAt"] = r.s.now()
	set["version"] = svc.Version + 1
	if err := applySet(&svc, set); err != nil {
		return err
	}
	r.s.services[id] = svc
	return nil
}

func (r *ServiceRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.services[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.services, id)
	return nil
}

func (r *ServiceRepo) byTasker(taskerID string) []models.Service {
	out := []models.Service{}
	for _, svc := range r.s.services {
		if svc.TaskerID == taskerID {
			out = append(out, svc)
		}
	}
	sortNewestFirst(out, func(s models.Service) time.Time { return s.CreatedAt })
	return out
}

func (r *ServiceRepo) ListByTasker(_ context.Context, taskerID string) ([]models.Service, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.byTasker(taskerID), nil
}

func (r *ServiceRepo) IDsByTasker(_ context.Context, taskerID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ids := []string{}
	for _, svc := range r.byTasker(taskerID) {
		ids = append(ids, svc.ID)
	}
	return ids, nil
}

func (r *ServiceRepo) ListPublic(_ context.Context, filter models.PublicServiceFilter) ([]models.ServiceListing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []models.ServiceListing{}
	for _, svc := range r.s.services {
		if svc.Status != models.ServiceStatusActive || svc.State != models.ServiceStateApproved {
			continue
		}
		if filter.Category != "" && svc.Category != filter.Category {
			continue
		}

		listing := models.ServiceListing{Service: svc}
		var tasker models.Tasker
		var owner models.User
		if t, ok := r.s.taskers[svc.TaskerID]; ok {
			tasker = t
			owner = r.s.users[t.UserID]
			listing.Tasker = &models.ServiceTasker{
				ID:           t.ID,
				UserID:       t.UserID,
				Name:         owner.Name,
				City:         t.City,
				Region:       t.Region,
				Country:      t.Country,
				HourlyRate:   t.HourlyRate,
				ProfileImage: t.ProfileImage,
			}
		}

		if filter.Search != "" {
			fields := append([]string{
				svc.Title, svc.Description, owner.Name,
				tasker.City, tasker.Region, tasker.Country, tasker.AddressLine1, tasker.AddressLine2,
			}, svc.Tags...)
			if !anyContains(filter.Search, fields...) {
				continue
			}
		}
		out = append(out, listing)
	}
	sortNewestFirst(out, func(l models.ServiceListing) time.Time { return l.CreatedAt })
	return out, nil
}

func (r *ServiceRepo) List(_ context.Context, search models.ServiceSearch) ([]models.Service, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []models.Service{}
	for _, svc := range r.s.services {
		if search.State != "" && svc.State != search.State {
			continue
		}
		if search.Status != "" && svc.Status != search.Status {
			continue
		}
		if search.Category != "" && svc.Category != search.Category {
			continue
		}
		matched = append(matched, svc)
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].CreatedAt.Before(matched[j].CreatedAt) })
	return page(matched, search.Page, search.Limit), int64(len(matched)), nil
}

func (r *ServiceRepo) Count(_ context.Context, state, status string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, svc := range r.s.services {
		if (state == "" || svc.State == state) && (status == "" || svc.Status == status) {
			n++
		}
	}
	return n, nil
}
