package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// PresenceTTL is how long a last-seen marker stays valid
const PresenceTTL = 5 * time.Minute

// PresenceStore keeps best-effort last activity markers per user
type PresenceStore interface {
	Touch(ctx context.Context, userID uint, at time.Time) error
	LastSeen(ctx context.Context, userIDs []uint) (map[uint]time.Time, error)
}

type presenceEntry struct {
	LastActivity time.Time `json:"last_activity"`
}

func presenceKey(userID uint) string {
	return fmt.Sprintf("last-seen-%d", userID)
}

type redisPresenceStore struct {
	client *redis.Client
}

// NewRedisPresenceStore creates a PresenceStore backed by redis keys with a TTL
func NewRedisPresenceStore(client *redis.Client) PresenceStore {
	return &redisPresenceStore{client: client}
}

func (s *redisPresenceStore) Touch(ctx context.Context, userID uint, at time.Time) error {
	payload, err := json.Marshal(presenceEntry{LastActivity: at.UTC()})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, presenceKey(userID), payload, PresenceTTL).Err()
}

func (s *redisPresenceStore) LastSeen(ctx context.Context, userIDs []uint) (map[uint]time.Time, error) {
	out := make(map[uint]time.Time)
	if len(userIDs) == 0 {
		return out, nil
	}

	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = presenceKey(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var entry presenceEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			continue
		}
		out[userIDs[i]] = entry.LastActivity
	}
	return out, nil
}

type memoryPresenceStore struct {
	mu      sync.RWMutex
	entries map[uint]time.Time
	now     func() time.Time
}

// NewMemoryPresenceStore creates a process-local PresenceStore
func NewMemoryPresenceStore() PresenceStore {
	return newMemoryPresenceStore(time.Now)
}

func newMemoryPresenceStore(now func() time.Time) *memoryPresenceStore {
	return &memoryPresenceStore{entries: make(map[uint]time.Time), now: now}
}

func (s *memoryPresenceStore) Touch(_ context.Context, userID uint, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[userID] = at.UTC()
	return nil
}

func (s *memoryPresenceStore) LastSeen(_ context.Context, userIDs []uint) (map[uint]time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[uint]time.Time)
	cutoff := s.now().Add(-PresenceTTL)
	for _, id := range userIDs {
		if at, ok := s.entries[id]; ok && at.After(cutoff) {
			out[id] = at
		}
	}
	return out, nil
}
