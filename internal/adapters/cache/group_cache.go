package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/rueidis"

	"agoraun/internal/domain"
)

const (
	groupKeyPrefix = "group:"
	groupTTL       = 15 * time.Minute
)

// Config holds configuration for creating a group cache.
type Config struct {
	Provider string
	Addr     string
}

// NewGroupCache creates a group cache from config. Provider "redis" uses a
// rueidis client; "noop" or unknown caches nothing.
func NewGroupCache(config Config, logger *slog.Logger) (domain.GroupCache, error) {
	switch config.Provider {
	case "redis":
		client, err := rueidis.NewClient(rueidis.ClientOption{
			InitAddress: []string{config.Addr},
		})
		if err != nil {
			return nil, err
		}
		return &redisGroupCache{client: client, logger: logger}, nil
	case "noop":
		return &noopGroupCache{}, nil
	default:
		logger.Warn("unknown cache provider, using noop", "provider", config.Provider)
		return &noopGroupCache{}, nil
	}
}

type redisGroupCache struct {
	client rueidis.Client
	logger *slog.Logger
}

// Get returns the cached group, if present. Cache errors degrade to a miss.
func (c *redisGroupCache) Get(ctx context.Context, id string) (*domain.Group, bool) {
	raw, err := c.client.Do(ctx, c.client.B().Get().Key(groupKeyPrefix+id).Build()).AsBytes()
	if err != nil {
		if !rueidis.IsRedisNil(err) {
			c.logger.WarnContext(ctx, "group cache get failed", "group_id", id, "err", err)
		}
		return nil, false
	}
	group := &domain.Group{}
	if err := json.Unmarshal(raw, group); err != nil {
		c.logger.WarnContext(ctx, "group cache decode failed", "group_id", id, "err", err)
		return nil, false
	}
	return group, true
}

func (c *redisGroupCache) Set(ctx context.Context, group *domain.Group) {
	raw, err := json.Marshal(group)
	if err != nil {
		return
	}
	cmd := c.client.B().Set().Key(groupKeyPrefix + group.ID).Value(string(raw)).Ex(groupTTL).Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		c.logger.WarnContext(ctx, "group cache set failed", "group_id", group.ID, "err", err)
	}
}

func (c *redisGroupCache) Invalidate(ctx context.Context, id string) {
	cmd := c.client.B().Del().Key(groupKeyPrefix + id).Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		c.logger.WarnContext(ctx, "group cache invalidate failed", "group_id", id, "err", err)
	}
}

type noopGroupCache struct{}

func (noopGroupCache) Get(ctx context.Context, id string) (*domain.Group, bool) { return nil, false }
func (noopGroupCache) Set(ctx context.Context, group *domain.Group)             {}
func (noopGroupCache) Invalidate(ctx context.Context, id string)                {}
