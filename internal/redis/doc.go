// Package redis wraps the go-redis client with metrics and circuit breaker
// hooks and implements the per-voter vote rate limiter.
package redis
