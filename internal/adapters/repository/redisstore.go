package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/okian/benchboard/internal/config"
	"github.com/okian/benchboard/internal/domain/score"
	"github.com/okian/benchboard/pkg/logger"
)

const redisPingTimeout = 5 * time.Second

// RedisStore keeps scores in Redis:
//   - {prefix}:seq          -> insertion counter
//   - {prefix}:runs         -> zset of every run, score = time, member = seq:payload
//   - {prefix}:best         -> zset of best time per (name, command) key
//   - {prefix}:best:payload -> hash of (name, command) key -> seq:payload
type RedisStore struct {
	client *redis.Client
	prefix string
	log    logger.Logger
}

// redisRecord is the stored payload. Unlike score.Score it keeps the hash.
type redisRecord struct {
	Name     string  `json:"name"`
	Command  string  `json:"command"`
	TimeNS   float64 `json:"time_ns"`
	Hash     string  `json:"hash"`
	Language string  `json:"language"`
}

// insertScript appends a run and updates the best entry for its key when the
// new time is strictly lower, so the earliest of equal times is kept.
// KEYS: seq, runs, best, best payload. ARGV: time, payload, best key.
var insertScript = redis.NewScript(`
	local seq = tostring(redis.call('INCR', KEYS[1]))
	local member = string.rep('0', 20 - #seq) .. seq .. ':' .. ARGV[2]
	redis.call('ZADD', KEYS[2], ARGV[1], member)

	local current = redis.call('ZSCORE', KEYS[3], ARGV[3])
	if (not current) or tonumber(ARGV[1]) < tonumber(current) then
		redis.call('ZADD', KEYS[3], ARGV[1], ARGV[3])
		redis.call('HSET', KEYS[4], ARGV[3], member)
	end
	return tonumber(seq)
`)

// OpenRedis connects to the configured server.
func OpenRedis(ctx context.Context, cfg config.Redis, opts ...Option) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}

	if cfg.Prefix != "" {
		opts = append(opts, WithKeyPrefix(cfg.Prefix))
	}
	return NewRedisStore(client, opts...), nil
}

// NewRedisStore uses an existing client.
func NewRedisStore(client *redis.Client, opts ...Option) *RedisStore {
	o := newOptions(opts...)
	return &RedisStore{client: client, prefix: o.prefix, log: o.logger}
}

func (r *RedisStore) key(parts ...string) string {
	return r.prefix + ":" + strings.Join(parts, ":")
}

func (r *RedisStore) keys() []string {
	return []string{r.key("seq"), r.key("runs"), r.key("best"), r.key("best", "payload")}
}

// bestKey identifies a (name, command) pair unambiguously.
func bestKey(name, command string) (string, error) {
	b, err := json.Marshal([2]string{name, command})
	return string(b), err
}

func (r *RedisStore) Insert(ctx context.Context, s score.Score) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("insert: %w", err)
	}
	payload, err := json.Marshal(redisRecord(s))
	if err != nil {
		return fmt.Errorf("insert: encode: %w", err)
	}
	bk, err := bestKey(s.Name, s.Command)
	if err != nil {
		return fmt.Errorf("insert: encode key: %w", err)
	}
	t := strconv.FormatFloat(s.TimeNS, 'f', -1, 64)
	if err := insertScript.Run(ctx, r.client, r.keys(), t, payload, bk).Err(); err != nil {
		return fmt.Errorf("insert: %w", err)
	}
	return nil
}

func (r *RedisStore) BestPerPlayerAndCommand(ctx context.Context, limit int) ([]score.Score, error) {
	if err := checkLimit(limit); err != nil {
		return nil, fmt.Errorf("best per player and command: %w", err)
	}
	members, err := r.client.HVals(ctx, r.key("best", "payload")).Result()
	if err != nil {
		return nil, fmt.Errorf("best per player and command: %w", err)
	}
	rows, err := decodeMembers(members)
	if err != nil {
		return nil, fmt.Errorf("best per player and command: %w", err)
	}
	slices.SortFunc(rows, bySeqTime)
	return capRows(unwrap(rows), limit), nil
}

// All relies on the zset ordering: equal times fall back to member order,
// which the zero-padded sequence prefix makes insertion order.
func (r *RedisStore) All(ctx context.Context, limit int) ([]score.Score, error) {
	if err := checkLimit(limit); err != nil {
		return nil, fmt.Errorf("all: %w", err)
	}
	stop := int64(limit) - 1
	members, err := r.client.ZRange(ctx, r.key("runs"), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("all: %w", err)
	}
	rows, err := decodeMembers(members)
	if err != nil {
		return nil, fmt.Errorf("all: %w", err)
	}
	return unwrap(rows), nil
}

func (r *RedisStore) Count(ctx context.Context) (int, error) {
	n, err := r.client.ZCard(ctx, r.key("runs")).Result()
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return int(n), nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.keys()...).Err(); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	r.log.Info(ctx, "score keys removed", logger.String("prefix", r.prefix))
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

var errBadMember = errors.New("malformed stored score")

func decodeMembers(members []string) ([]sequenced, error) {
	out := make([]sequenced, 0, len(members))
	for _, m := range members {
		seqText, payload, ok := strings.Cut(m, ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q", errBadMember, m)
		}
		seq, err := strconv.ParseInt(seqText, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errBadMember, err)
		}
		var rec redisRecord
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return nil, fmt.Errorf("%w: %w", errBadMember, err)
		}
		out = append(out, sequenced{seq: seq, Score: score.Score(rec)})
	}
	return out, nil
}
