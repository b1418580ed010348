package repository

import (
	"context"
	"sync"
)

// Activity is the stored shape of one extracurricular activity.
// Participants keeps insertion order and contains no duplicates.
type Activity struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	Participants    []string
}

type ActivityRepository interface {
	List(ctx context.Context) ([]*Activity, error)
	Get(ctx context.Context, name string) (*Activity, error)
	AddParticipant(ctx context.Context, name, email string) (*Activity, error)
	RemoveParticipant(ctx context.Context, name, email string) (*Activity, error)
}

// activityRecord owns its participant slice. Each record carries its own
// mutex so signups for unrelated activities never contend; the set of
// records itself is fixed at construction and needs no lock.
type activityRecord struct {
	mu sync.Mutex

	name            string
	description     string
	schedule        string
	maxParticipants int
	participants    []string
}

type memoryActivityRepository struct {
	records map[string]*activityRecord
	order   []string
}

// NewMemoryActivityRepository builds a directory from the given seed. Each
// call returns an independent instance, so tests construct a fresh directory
// instead of resetting shared state. A restart of the process therefore
// resets every roster to the seed.
func NewMemoryActivityRepository(seed []*Activity) ActivityRepository {
	r := &memoryActivityRepository{
		records: make(map[string]*activityRecord, len(seed)),
		order:   make([]string, 0, len(seed)),
	}

	for _, a := range seed {
		if _, ok := r.records[a.Name]; ok {
			continue
		}
		participants := make([]string, len(a.Participants))
		copy(participants, a.Participants)

		r.records[a.Name] = &activityRecord{
			name:            a.Name,
			description:     a.Description,
			schedule:        a.Schedule,
			maxParticipants: a.MaxParticipants,
			participants:    participants,
		}
		r.order = append(r.order, a.Name)
	}

	return r
}

func (r *memoryActivityRepository) List(_ context.Context) ([]*Activity, error) {
	activities := make([]*Activity, 0, len(r.order))
	for _, name := range r.order {
		activities = append(activities, r.records[name].snapshot())
	}
	return activities, nil
}

func (r *memoryActivityRepository) Get(_ context.Context, name string) (*Activity, error) {
	rec, ok := r.records[name]
	if !ok {
		return nil, ErrNotFound
	}
	return rec.snapshot(), nil
}

func (r *memoryActivityRepository) AddParticipant(_ context.Context, name, email string) (*Activity, error) {
	rec, ok := r.records[name]
	if !ok {
		return nil, ErrNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	for _, p := range rec.participants {
		if p == email {
			return nil, ErrAlreadyRegistered
		}
	}
	rec.participants = append(rec.participants, email)

	return rec.snapshotLocked(), nil
}

func (r *memoryActivityRepository) RemoveParticipant(_ context.Context, name, email string) (*Activity, error) {
	rec, ok := r.records[name]
	if !ok {
		return nil, ErrNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	for i, p := range rec.participants {
		if p == email {
			rec.participants = append(rec.participants[:i], rec.participants[i+1:]...)
			return rec.snapshotLocked(), nil
		}
	}

	return nil, ErrNotRegistered
}

func (rec *activityRecord) snapshot() *Activity {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.snapshotLocked()
}

// snapshotLocked copies the record so callers never observe a slice that a
// concurrent signup is appending to. Callers must hold rec.mu.
func (rec *activityRecord) snapshotLocked() *Activity {
	participants := make([]string, len(rec.participants))
	copy(participants, rec.participants)

	return &Activity{
		Name:            rec.name,
		Description:     rec.description,
		Schedule:        rec.schedule,
		MaxParticipants: rec.maxParticipants,
		Participants:    participants,
	}
}
