// Package requeststore persists content requests in Redis. Requests are
// stored as JSON blobs keyed by ID, with a per-category sorted set of
// pending IDs ordered by creation time so duplicate checks can page
// through the open backlog.
package requeststore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"contentbot/types"
)

const (
	seqKey        = "requests:seq"
	requestKeyFmt = "request:%d"
	pendingKeyFmt = "requests:pending:%s"

	opTimeout = 5 * time.Second
)

// Store is a Redis-backed request repository.
type Store struct {
	client *redis.Client
}

// StoreConfig configures the Redis connection.
type StoreConfig struct {
	Addr     string // e.g. localhost:6379
	Password string
	DB       int
}

// NewStoreConfigFromEnv builds a StoreConfig from REDIS_ADDR, REDIS_PASS
// and REDIS_DB.
func NewStoreConfigFromEnv() StoreConfig {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	db := 0
	if d := os.Getenv("REDIS_DB"); d != "" {
		if v, err := strconv.Atoi(d); err == nil && v >= 0 {
			db = v
		}
	}
	return StoreConfig{Addr: addr, Password: os.Getenv("REDIS_PASS"), DB: db}
}

// NewStore connects to Redis and verifies connectivity.
func NewStore(cfg StoreConfig) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return &Store{client: client}, nil
}

// Close closes the underlying Redis client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Create assigns the request a sequential ID and timestamps, marks it
// pending and persists it.
func (s *Store) Create(ctx context.Context, req *types.Request) error {
	if req == nil {
		return fmt.Errorf("nil request")
	}
	if req.Title == "" {
		return fmt.Errorf("request title cannot be empty")
	}
	if req.Category == "" {
		req.Category = types.CategoryGeneral
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	id, err := s.client.Incr(ctx, seqKey).Result()
	if err != nil {
		return fmt.Errorf("failed to allocate request ID: %w", err)
	}

	now := time.Now().UTC()
	req.ID = id
	req.Status = types.StatusPending
	req.CreatedAt = now
	req.UpdatedAt = now

	if err := s.put(ctx, req); err != nil {
		return err
	}

	pendingKey := fmt.Sprintf(pendingKeyFmt, req.Category)
	member := strconv.FormatInt(id, 10)
	if err := s.client.ZAdd(ctx, pendingKey, redis.Z{Score: float64(now.Unix()), Member: member}).Err(); err != nil {
		return fmt.Errorf("failed to index pending request %d: %w", id, err)
	}
	return nil
}

// Get loads a request by ID. Returns redis.Nil if it does not exist.
func (s *Store) Get(ctx context.Context, id int64) (*types.Request, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	data, err := s.client.Get(ctx, fmt.Sprintf(requestKeyFmt, id)).Bytes()
	if err != nil {
		return nil, err
	}

	var req types.Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to decode request %d: %w", id, err)
	}
	return &req, nil
}

// GetPending returns up to limit open requests in the category as
// lightweight candidates, oldest first. Satisfies the duplicate
// checker's backlog interface.
func (s *Store) GetPending(ctx context.Context, category types.Category, limit int) ([]types.Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	pendingKey := fmt.Sprintf(pendingKeyFmt, category)
	members, err := s.client.ZRange(ctx, pendingKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	if len(members) == 0 {
		return nil, nil
	}

	candidates := make([]types.Candidate, 0, len(members))
	for _, member := range members {
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			continue
		}
		req, err := s.Get(ctx, id)
		if err == redis.Nil {
			// Stale index entry; drop it and move on.
			s.client.ZRem(ctx, pendingKey, member)
			continue
		}
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, types.Candidate{
			ID:     req.ID,
			Title:  req.Title,
			Status: req.Status,
		})
	}
	return candidates, nil
}

// Fulfill marks a request fulfilled and removes it from the pending index.
func (s *Store) Fulfill(ctx context.Context, id int64, notes string) (*types.Request, error) {
	return s.transition(ctx, id, types.StatusFulfilled, notes)
}

// Reject marks a request rejected and removes it from the pending index.
func (s *Store) Reject(ctx context.Context, id int64, notes string) (*types.Request, error) {
	return s.transition(ctx, id, types.StatusRejected, notes)
}

func (s *Store) transition(ctx context.Context, id int64, status types.RequestStatus, notes string) (*types.Request, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	req, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != types.StatusPending {
		return nil, fmt.Errorf("request %d is already %s", id, req.Status)
	}

	req.Status = status
	req.UpdatedAt = time.Now().UTC()
	if notes != "" {
		req.Notes = notes
	}

	if err := s.put(ctx, req); err != nil {
		return nil, err
	}

	pendingKey := fmt.Sprintf(pendingKeyFmt, req.Category)
	if err := s.client.ZRem(ctx, pendingKey, strconv.FormatInt(id, 10)).Err(); err != nil {
		return nil, fmt.Errorf("failed to unindex request %d: %w", id, err)
	}
	return req, nil
}

func (s *Store) put(ctx context.Context, req *types.Request) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode request %d: %w", req.ID, err)
	}
	if err := s.client.Set(ctx, fmt.Sprintf(requestKeyFmt, req.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store request %d: %w", req.ID, err)
	}
	return nil
}
