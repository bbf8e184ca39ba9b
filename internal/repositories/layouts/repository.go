// Package layouts persists generated dungeon layouts
package layouts

//go:generate mockgen -destination=mock/mock_repository.go -package=layoutsmock github.com/KirkDiggler/rpg-dungeon/internal/repositories/layouts Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
)

// DefaultTTL is how long a saved layout is kept when the caller gives no TTL
const DefaultTTL = 24 * time.Hour

// Repository defines the interface for layout persistence
type Repository interface {
	// Save stores a layout, replacing any layout with the same ID
	// Returns errors.InvalidArgument for a nil layout or empty ID
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	// Get retrieves a layout by ID
	// Returns errors.NotFound if the layout doesn't exist or expired
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Delete removes a layout
	// Returns errors.NotFound if the layout doesn't exist
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)

	// ListBySeed returns the IDs of live layouts generated from a seed, sorted
	ListBySeed(ctx context.Context, input *ListBySeedInput) (*ListBySeedOutput, error)
}

// SaveInput defines the input for saving a layout
type SaveInput struct {
	Layout *entities.Layout
	TTL    time.Duration // DefaultTTL when zero
}

// SaveOutput defines the output for saving a layout
type SaveOutput struct {
	ExpiresAt time.Time
}

// GetInput defines the input for getting a layout
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a layout
type GetOutput struct {
	Layout *entities.Layout
}

// DeleteInput defines the input for deleting a layout
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a layout
type DeleteOutput struct{}

// ListBySeedInput defines the input for listing layouts by seed
type ListBySeedInput struct {
	Seed int64
}

// ListBySeedOutput defines the output for listing layouts by seed
type ListBySeedOutput struct {
	IDs []string
}

func validateSave(input *SaveInput) error {
	if input == nil || input.Layout == nil {
		return errors.InvalidArgument("layout is required")
	}
	if input.Layout.ID == "" {
		return errors.InvalidArgument("layout ID is required")
	}
	if input.TTL < 0 {
		return errors.InvalidArgument("ttl must not be negative")
	}
	return nil
}

func validateID(id string) error {
	if id == "" {
		return errors.InvalidArgument("layout ID is required")
	}
	return nil
}

func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl == 0 {
		return DefaultTTL
	}
	return ttl
}
