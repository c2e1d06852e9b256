package redis

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/venkateshtata/context-overflow-mcp/internal/domain"
)

// voteRateLimitScript implements an atomic token bucket. Tokens refill
// continuously at rate/minute up to capacity; each allowed vote consumes one.
// The key expires after two idle minutes, which is indistinguishable from a
// full bucket.
// ARGV: [1]=now_ms, [2]=capacity, [3]=rate per minute
var voteRateLimitScript = goredis.NewScript(`
local tokens = tonumber(redis.call('HGET', KEYS[1], 'tokens'))
local last_refill = tonumber(redis.call('HGET', KEYS[1], 'last_refill'))
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local rate = tonumber(ARGV[3])

if tokens == nil then
	tokens = capacity
	last_refill = now_ms
end

local elapsed = math.max(0, now_ms - last_refill)
tokens = math.min(capacity, tokens + elapsed * rate / 60000.0)

local allowed = 0
if tokens >= 1 then
	tokens = tokens - 1
	allowed = 1
end

redis.call('HSET', KEYS[1], 'tokens', tostring(tokens), 'last_refill', tostring(now_ms))
redis.call('PEXPIRE', KEYS[1], 120000)
return allowed
`)

// VoteRateLimiter implements token bucket rate limiting for votes.
type VoteRateLimiter struct {
	rdb      *goredis.Client
	clock    clockwork.Clock
	capacity int
	rate     int // tokens per minute
}

var _ domain.VoteRateLimiter = (*VoteRateLimiter)(nil)

// NewVoteRateLimiter creates a vote rate limiter.
// capacity: maximum burst size (tokens)
// rate: sustained rate (tokens per minute)
func NewVoteRateLimiter(client *Client, clock clockwork.Clock, capacity, rate int) *VoteRateLimiter {
	return &VoteRateLimiter{
		rdb:      client.rdb,
		clock:    clock,
		capacity: capacity,
		rate:     rate,
	}
}

// CheckVoteRateLimit checks if a vote is allowed for the voter.
// Returns true if allowed (token consumed), false if rate limited.
func (v *VoteRateLimiter) CheckVoteRateLimit(ctx context.Context, voterID string) (bool, error) {
	key := fmt.Sprintf("rate_limit:votes:%s", voterID)

	result, err := voteRateLimitScript.Run(ctx, v.rdb, []string{key},
		v.clock.Now().UnixMilli(),
		v.capacity,
		v.rate,
	).Int()
	if err != nil {
		return false, fmt.Errorf("rate limit check failed: %w", err)
	}

	return result == 1, nil
}
