// Package views models the per-episode view figure shown on the site: a
// deterministic base derived from the episode id plus a persisted, never
// decremented increment kept in an injected key/value store.
package views

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/AI2HU/gdc/internal/logger"
	"github.com/AI2HU/gdc/internal/models"
)

// DefaultNamespace prefixes every counter key
const DefaultNamespace = "gdc"

// Base view range
const (
	MinBaseViews = 1500
	MaxBaseViews = 3500
)

// Store is the persistence capability the counter needs
type Store interface {
	// Get returns the raw value for key and whether it was present
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key
	Set(ctx context.Context, key, value string) error
}

// BaseViews returns the identity-derived view count of an episode, in [1500, 3500]
func BaseViews(episodeID int) int {
	seed := float64(episodeID)*9973 + 7919
	normalized := math.Mod(math.Abs(math.Sin(seed)*10000), 1)
	return int(math.Floor(MinBaseViews + normalized*(MaxBaseViews-MinBaseViews)))
}

// Key returns the storage key of an episode's increment
func Key(namespace string, episodeID int) string {
	return fmt.Sprintf("%s-views-%d", namespace, episodeID)
}

// ParseKey extracts the episode id from a counter key in namespace
func ParseKey(namespace, key string) (int, bool) {
	prefix := namespace + "-views-"
	if !strings.HasPrefix(key, prefix) {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimPrefix(key, prefix))
	if err != nil {
		return 0, false
	}
	return id, true
}

// Counter combines base views with the persisted increment.
// A nil store behaves like a context without storage access: every increment reads as 0.
type Counter struct {
	store     Store
	namespace string
}

// NewCounter creates a counter over store. An empty namespace uses DefaultNamespace.
func NewCounter(store Store, namespace string) *Counter {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Counter{
		store:     store,
		namespace: namespace,
	}
}

// Namespace returns the key namespace of the counter
func (c *Counter) Namespace() string {
	return c.namespace
}

// Base returns the storage-independent part of the view figure
func (c *Counter) Base(episodeID int) int {
	return BaseViews(episodeID)
}

// StoredIncrement returns the persisted increment, or 0 when it is absent,
// malformed, or the store is unavailable
func (c *Counter) StoredIncrement(ctx context.Context, episodeID int) int {
	if c.store == nil {
		return 0
	}

	key := Key(c.namespace, episodeID)
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		logger.Warning("Failed to read view counter %s: %v", key, err)
		return 0
	}
	if !ok {
		return 0
	}

	return parseIncrement(raw)
}

// Increment records one view and returns the new increment, or 0 when the
// view could not be recorded. A failed read never writes.
// The read-modify-write is not atomic: concurrent writers may lose an update.
func (c *Counter) Increment(ctx context.Context, episodeID int) int {
	if c.store == nil {
		return 0
	}

	key := Key(c.namespace, episodeID)
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		// the stored value is unknown; writing would overwrite it
		logger.Warning("Failed to read view counter %s, view not recorded: %v", key, err)
		return 0
	}

	next := 1
	if ok {
		next = parseIncrement(raw) + 1
	}
	if err := c.store.Set(ctx, key, strconv.Itoa(next)); err != nil {
		logger.Warning("Failed to write view counter %s: %v", key, err)
		return 0
	}

	logger.Debug("Recorded view for episode %d (increment %d)", episodeID, next)
	return next
}

// TotalViews returns base views plus the stored increment
func (c *Counter) TotalViews(ctx context.Context, episodeID int) int {
	return c.Base(episodeID) + c.StoredIncrement(ctx, episodeID)
}

// Snapshot returns the two phases of the view read side by side
func (c *Counter) Snapshot(ctx context.Context, episodeID int) models.ViewSnapshot {
	base := c.Base(episodeID)
	inc := c.StoredIncrement(ctx, episodeID)
	return models.ViewSnapshot{
		EpisodeID: episodeID,
		Base:      base,
		Increment: inc,
		Total:     base + inc,
	}
}

// KeyLister is implemented by stores that can enumerate their keys
type KeyLister interface {
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// Recorded returns the stored increment of every episode that has a counter
// in the namespace. Stores that cannot list keys yield an error.
func (c *Counter) Recorded(ctx context.Context) (map[int]int, error) {
	lister, ok := c.store.(KeyLister)
	if !ok {
		return nil, fmt.Errorf("counter store cannot list keys")
	}

	keys, err := lister.Keys(ctx, c.namespace+"-views-")
	if err != nil {
		return nil, fmt.Errorf("failed to list view counters: %w", err)
	}

	recorded := make(map[int]int, len(keys))
	for _, key := range keys {
		id, ok := ParseKey(c.namespace, key)
		if !ok {
			continue
		}
		recorded[id] = c.StoredIncrement(ctx, id)
	}
	return recorded, nil
}

// parseIncrement reads a decimal counter value. Anything that is not a
// non-negative integer counts as 0.
func parseIncrement(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
