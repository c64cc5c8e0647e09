package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ramusita/chitgame/internal/model"
	"github.com/ramusita/chitgame/internal/storage"
)

// hitScript performs the fixed-window check-and-increment in one server-side
// step. Returns {windowStart, count, admitted}.
var hitScript = redis.NewScript(`
local vals = redis.call('HMGET', KEYS[1], 'start', 'count')
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local start = now
local count = 0
if vals[1] then
  start = tonumber(vals[1])
  count = tonumber(vals[2]) or 0
end
if now - start >= window then
  start = now
  count = 0
end
local admitted = 0
if count < limit then
  count = count + 1
  admitted = 1
end
redis.call('HSET', KEYS[1], 'start', start, 'count', count)
redis.call('EXPIRE', KEYS[1], window * 2)
return {start, count, admitted}
`)

// storedSession is the at-rest form of a session; the token is the key
type storedSession struct {
	MatchID   model.MatchID  `json:"match_id"`
	PlayerID  model.PlayerID `json:"player_id"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	if cfg.ScanCount <= 0 {
		cfg.ScanCount = DefaultConfig().ScanCount
	}
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.PlayerSession) error {
	data, err := json.Marshal(storedSession{
		MatchID:   session.MatchID,
		PlayerID:  session.PlayerID,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	})
	if err != nil {
		return err
	}

	// Redis expiry is a backstop; validity is still decided against the
	// session's own ExpiresAt.
	ttl := session.ExpiresAt.Sub(session.CreatedAt)
	if ttl <= 0 {
		ttl = time.Second
	}
	return s.client.Set(ctx, sessionKey(session.Token), data, ttl).Err()
}

func (s *Storage) GetSession(ctx context.Context, token string) (*model.PlayerSession, error) {
	data, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionInvalid
		}
		return nil, err
	}

	var stored storedSession
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, err
	}
	return &model.PlayerSession{
		Token:     token,
		MatchID:   stored.MatchID,
		PlayerID:  stored.PlayerID,
		CreatedAt: stored.CreatedAt,
		ExpiresAt: stored.ExpiresAt,
	}, nil
}

func (s *Storage) DeleteSession(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}

func (s *Storage) DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	return s.sweep(ctx, sessionPattern(), func(key string) (bool, error) {
		data, err := s.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		var stored storedSession
		if err := json.Unmarshal(data, &stored); err != nil {
			// unreadable entries are dropped
			return true, nil
		}
		return now.After(stored.ExpiresAt), nil
	})
}

// Counter operations

func (s *Storage) Hit(ctx context.Context, key string, limit int, windowSeconds int64, now int64) (model.RateCounter, bool, error) {
	res, err := hitScript.Run(ctx, s.client, []string{counterKey(key)}, limit, windowSeconds, now).Int64Slice()
	if err != nil {
		return model.RateCounter{}, false, fmt.Errorf("rate counter %q: %w", key, err)
	}
	if len(res) != 3 {
		return model.RateCounter{}, false, fmt.Errorf("rate counter %q: unexpected reply %v", key, res)
	}
	c := model.RateCounter{Key: key, WindowStart: res[0], Count: int(res[1])}
	return c, res[2] == 1, nil
}

func (s *Storage) DeleteIdleCounters(ctx context.Context, before int64) (int, error) {
	return s.sweep(ctx, counterPattern(), func(key string) (bool, error) {
		start, err := s.client.HGet(ctx, key, "start").Result()
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		n, err := strconv.ParseInt(start, 10, 64)
		if err != nil {
			return true, nil
		}
		return n < before, nil
	})
}

// sweep scans keys matching pattern and deletes those for which expired
// returns true.
func (s *Storage) sweep(ctx context.Context, pattern string, expired func(key string) (bool, error)) (int, error) {
	var doomed []string
	iter := s.client.Scan(ctx, 0, pattern, s.cfg.ScanCount).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		ok, err := expired(key)
		if err != nil {
			return 0, err
		}
		if ok {
			doomed = append(doomed, key)
		}
	}
	if err := iter.Err(); err != nil {
		return 0, err
	}
	if len(doomed) == 0 {
		return 0, nil
	}

	pipe := s.client.Pipeline()
	for _, key := range doomed {
		pipe.Del(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return len(doomed), nil
}
