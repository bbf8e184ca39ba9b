package layouts

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-dungeon/internal/redis"
)

// Redis key layout. Seed index sets share the layout prefix.
const (
	LayoutKeyPrefix = "dungeon_layout:"
	SeedKeyPrefix   = "dungeon_layout:seed:"
)

// RedisConfig holds the dependencies for the Redis repository
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}

	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a Redis-backed layout repository
func NewRedisRepository(cfg *RedisConfig) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	return &redisRepository{client: cfg.Client, clock: c}, nil
}

func layoutKey(id string) string {
	return LayoutKeyPrefix + id
}

func seedKey(seed int64) string {
	return fmt.Sprintf("%s%d", SeedKeyPrefix, seed)
}

func (r *redisRepository) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if err := validateSave(input); err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Layout)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal layout")
	}

	ttl := ttlOrDefault(input.TTL)

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, layoutKey(input.Layout.ID), data, ttl)
	pipe.SAdd(ctx, seedKey(input.Layout.Seed), input.Layout.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to save layout %s", input.Layout.ID)
	}

	return &SaveOutput{ExpiresAt: r.clock.Now().Add(ttl)}, nil
}

func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	layout, err := r.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Layout: layout}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	layout, err := r.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, layoutKey(layout.ID))
	pipe.SRem(ctx, seedKey(layout.Seed), layout.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete layout %s", layout.ID)
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) ListBySeed(ctx context.Context, input *ListBySeedInput) (*ListBySeedOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	key := seedKey(input.Seed)
	ids, err := r.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list layouts for seed %d", input.Seed)
	}

	// the index outlives expired layouts; prune as we go
	live := make([]string, 0, len(ids))
	for _, id := range ids {
		n, err := r.client.Exists(ctx, layoutKey(id)).Result()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to check layout %s", id)
		}
		if n == 0 {
			if err := r.client.SRem(ctx, key, id).Err(); err != nil {
				return nil, errors.Wrapf(err, "failed to prune layout %s from seed index", id)
			}
			continue
		}
		live = append(live, id)
	}
	sort.Strings(live)

	return &ListBySeedOutput{IDs: live}, nil
}

func (r *redisRepository) load(ctx context.Context, id string) (*entities.Layout, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	result, err := r.client.Get(ctx, layoutKey(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("layout with ID %s not found", id)
		}
		return nil, errors.Wrapf(err, "failed to get layout")
	}

	var layout entities.Layout
	if err := json.Unmarshal([]byte(result), &layout); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal layout")
	}
	return &layout, nil
}
