package layouts

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/clock"
)

type storedLayout struct {
	layout    *entities.Layout
	expiresAt time.Time
}

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	clock clock.Clock
	store map[string]storedLayout
}

// NewInMemory creates a new in-memory repository; a nil clock uses real time
func NewInMemory(c clock.Clock) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	return &InMemoryRepository{
		clock: c,
		store: make(map[string]storedLayout),
	}
}

// Save stores a copy of the layout
func (r *InMemoryRepository) Save(_ context.Context, input *SaveInput) (*SaveOutput, error) {
	if err := validateSave(input); err != nil {
		return nil, err
	}

	cp := *input.Layout
	expiresAt := r.clock.Now().Add(ttlOrDefault(input.TTL))

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[cp.ID] = storedLayout{layout: &cp, expiresAt: expiresAt}
	return &SaveOutput{ExpiresAt: expiresAt}, nil
}

// Get retrieves a layout by ID
func (r *InMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateID(input.ID); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.live(input.ID)
	if !ok {
		return nil, errors.NotFoundf("layout with ID %s not found", input.ID)
	}

	cp := *stored.layout
	return &GetOutput{Layout: &cp}, nil
}

// Delete removes a layout
func (r *InMemoryRepository) Delete(_ context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateID(input.ID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.live(input.ID); !ok {
		return nil, errors.NotFoundf("layout with ID %s not found", input.ID)
	}
	delete(r.store, input.ID)
	return &DeleteOutput{}, nil
}

// ListBySeed returns live layout IDs for a seed
func (r *InMemoryRepository) ListBySeed(_ context.Context, input *ListBySeedInput) (*ListBySeedOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := []string{}
	for id, stored := range r.store {
		if stored.layout.Seed != input.Seed {
			continue
		}
		if _, ok := r.live(id); ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return &ListBySeedOutput{IDs: ids}, nil
}

// live must be called with the lock held
func (r *InMemoryRepository) live(id string) (storedLayout, bool) {
	stored, ok := r.store[id]
	if !ok || !r.clock.Now().Before(stored.expiresAt) {
		return storedLayout{}, false
	}
	return stored, true
}
