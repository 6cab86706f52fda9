package security

import (
	"context"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Sliding window rate limit.
// KEYS[1] = rate limit key
// ARGV[1] = max count allowed
// ARGV[2] = window size in milliseconds
// ARGV[3] = current timestamp in milliseconds
// Returns the number of milliseconds until a slot frees up, or 0 when allowed.
const uploadRateLimitScript = `
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)

local count = redis.call('ZCARD', key)
if count >= limit then
    local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
    local wait = window
    if oldest[2] then
        wait = tonumber(oldest[2]) + window - now
    end
    if wait < 1 then
        wait = 1
    end
    return wait
end

redis.call('ZADD', key, now, now .. '-' .. math.random(1000000))
redis.call('PEXPIRE', key, window)
return 0
`

// UploadLimiter caps upload requests per client in a sliding window. With a
// Redis client the window is shared across instances; without one it is kept
// in process memory.
type UploadLimiter struct {
	client *goredis.Client
	limit  int
	window time.Duration
	now    func() time.Time

	mu    sync.Mutex
	local map[string][]time.Time
}

// NewUploadLimiter creates a limiter allowing limit uploads per window. A nil
// client selects the in-memory window.
func NewUploadLimiter(client *goredis.Client, limit int, window time.Duration) *UploadLimiter {
	if limit <= 0 {
		limit = 30
	}
	if window <= 0 {
		window = time.Minute
	}
	return &UploadLimiter{
		client: client,
		limit:  limit,
		window: window,
		now:    time.Now,
		local:  make(map[string][]time.Time),
	}
}

// Allow records one upload for key and reports whether it is within the
// limit. When denied, retryAfter is the time until the oldest entry expires.
// Redis failures are returned with allowed set to true so callers can fail open.
func (ul *UploadLimiter) Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error) {
	if ul.client == nil {
		allowed, retryAfter = ul.allowLocal(key)
		return allowed, retryAfter, nil
	}

	now := ul.now()
	result, err := ul.client.Eval(ctx, uploadRateLimitScript,
		[]string{fmt.Sprintf("ratelimit:upload:%s", key)},
		ul.limit, ul.window.Milliseconds(), now.UnixMilli(),
	).Result()
	if err != nil {
		return true, 0, fmt.Errorf("rate limit check failed: %w", err)
	}
	wait, ok := result.(int64)
	if !ok {
		return true, 0, fmt.Errorf("unexpected result type %T from rate limit script", result)
	}
	if wait > 0 {
		return false, time.Duration(wait) * time.Millisecond, nil
	}
	return true, 0, nil
}

func (ul *UploadLimiter) allowLocal(key string) (bool, time.Duration) {
	ul.mu.Lock()
	defer ul.mu.Unlock()

	now := ul.now()
	cutoff := now.Add(-ul.window)

	hits := ul.local[key]
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= ul.limit {
		ul.local[key] = kept
		return false, kept[0].Add(ul.window).Sub(now)
	}

	ul.local[key] = append(kept, now)
	return true, 0
}
