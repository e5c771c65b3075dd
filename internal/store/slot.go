package store

import (
	"context"
	"sync"
)

// Slot 表示一个具名的持久化槽位：整段读、整段写、整段删。
// 不同后端只需实现这三个操作。
type Slot interface {
	// Read returns the raw slot contents, or (nil, nil) when the slot is absent.
	Read(ctx context.Context) ([]byte, error)
	// Write replaces the slot contents with data.
	Write(ctx context.Context, data []byte) error
	// Delete removes the slot entirely. Deleting an absent slot is not an error.
	Delete(ctx context.Context) error
}

// Well-known slot names.
const (
	SlotApplications = "vectorhire_applications"
	SlotSession      = "vectorhire_user"
	SlotSignups      = "vectorhire_signups"
)

// MemorySlot is an in-process Slot, used by tests and the memory driver.
type MemorySlot struct {
	mu      sync.RWMutex
	data    []byte
	present bool
}

// NewMemorySlot returns an empty in-memory slot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

// Read returns a copy of the stored bytes, or nil when nothing was written.
func (s *MemorySlot) Read(_ context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.present {
		return nil, nil
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

// Write replaces the stored bytes.
func (s *MemorySlot) Write(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make([]byte, len(data))
	copy(s.data, data)
	s.present = true
	return nil
}

// Delete clears the slot.
func (s *MemorySlot) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	s.present = false
	return nil
}
