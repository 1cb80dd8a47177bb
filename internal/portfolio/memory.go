package portfolio

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/craftd/internal/types"
)

// MemoryRepository serves career records from memory with the same ordering
// as the database repository. It is safe for concurrent use; callers get
// their own copies of the stored slices.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]Records
}

// NewMemoryRepository creates an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[uuid.UUID]Records)}
}

// Put replaces the records stored for userID.
func (r *MemoryRepository) Put(userID uuid.UUID, recs Records) {
	exps := cloneSlice(recs.WorkExperiences)
	sort.SliceStable(exps, func(i, j int) bool {
		a, b := exps[i].StartDate, exps[j].StartDate
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		return a.Before(*b)
	})

	events := cloneSlice(recs.CareerEvents)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].EventDate.After(events[j].EventDate)
	})

	apps := cloneSlice(recs.JobApplications)
	sort.SliceStable(apps, func(i, j int) bool {
		a, b := apps[i].ApplicationDate, apps[j].ApplicationDate
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		return a.After(*b)
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[userID] = Records{WorkExperiences: exps, CareerEvents: events, JobApplications: apps}
}

// ListWorkExperiences returns experiences by ascending start date, undated last.
func (r *MemoryRepository) ListWorkExperiences(ctx context.Context, userID uuid.UUID) ([]types.WorkExperience, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneSlice(r.users[userID].WorkExperiences), nil
}

// ListCareerEvents returns events newest first; limit <= 0 returns all.
func (r *MemoryRepository) ListCareerEvents(ctx context.Context, userID uuid.UUID, limit int) ([]types.CareerEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	events := r.users[userID].CareerEvents
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return cloneSlice(events), nil
}

// ListJobApplications returns applications, most recent first.
func (r *MemoryRepository) ListJobApplications(ctx context.Context, userID uuid.UUID) ([]types.JobApplication, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneSlice(r.users[userID].JobApplications), nil
}

func cloneSlice[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}
