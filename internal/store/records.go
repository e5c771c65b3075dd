package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"vectorhire/internal/applicant"
)

// ErrDuplicateID is returned when Append sees an identifier already in the slot.
var ErrDuplicateID = errors.New("duplicate application id")

// RecordStore owns the persisted application collection. Every mutation is a
// full read-modify-write of the snapshot held in the slot; a mutex serializes
// writers within this process, last writer wins across processes.
type RecordStore struct {
	mu   sync.Mutex
	slot Slot
}

// NewRecordStore returns a store over the given slot.
func NewRecordStore(slot Slot) *RecordStore {
	return &RecordStore{slot: slot}
}

// List returns all persisted records in storage-insertion order. A missing,
// unreadable, or malformed slot reads as an empty collection; corruption is
// swallowed so the caller always has a usable (possibly empty) view.
func (s *RecordStore) List(ctx context.Context) []applicant.Application {
	data, err := s.slot.Read(ctx)
	if err != nil || len(data) == 0 {
		return []applicant.Application{}
	}

	var apps []applicant.Application
	if err := json.Unmarshal(data, &apps); err != nil {
		return []applicant.Application{}
	}
	if apps == nil {
		apps = []applicant.Application{}
	}
	return apps
}

// ListByJob filters List by exact job-id match.
func (s *RecordStore) ListByJob(ctx context.Context, jobID string) []applicant.Application {
	all := s.List(ctx)
	out := make([]applicant.Application, 0, len(all))
	for _, app := range all {
		if app.JobID == jobID {
			out = append(out, app)
		}
	}
	return out
}

// Append adds one record to the end of the persisted sequence. An identifier
// already present in the collection is rejected rather than silently stacked.
func (s *RecordStore) Append(ctx context.Context, record applicant.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	apps := s.List(ctx)
	for _, existing := range apps {
		if existing.ID == record.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateID, record.ID)
		}
	}
	apps = append(apps, record)
	return s.write(ctx, apps)
}

// UpdatePartial merges patch fields over the record with the matching
// identifier. Absent patch fields are preserved; the identifier itself is
// never changed. No record with the identifier is a no-op.
func (s *RecordStore) UpdatePartial(ctx context.Context, id string, patch applicant.Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	apps := s.List(ctx)
	updated := false
	for i, app := range apps {
		if app.ID == id {
			apps[i] = patch.Apply(app)
			updated = true
			break
		}
	}
	if !updated {
		return nil
	}
	return s.write(ctx, apps)
}

// Remove deletes the record with the matching identifier; absent is a no-op.
func (s *RecordStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	apps := s.List(ctx)
	out := apps[:0]
	removed := false
	for _, app := range apps {
		if app.ID == id {
			removed = true
			continue
		}
		out = append(out, app)
	}
	if !removed {
		return nil
	}
	return s.write(ctx, out)
}

func (s *RecordStore) write(ctx context.Context, apps []applicant.Application) error {
	data, err := json.Marshal(apps)
	if err != nil {
		return fmt.Errorf("encode applications: %w", err)
	}
	if err := s.slot.Write(ctx, data); err != nil {
		return fmt.Errorf("persist applications: %w", err)
	}
	return nil
}
