package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

type Cache interface {
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
}

// NoOp is used when caching is disabled. Every Get misses.
type NoOp struct{}

func (NoOp) Set(context.Context, string, string, time.Duration) error { return nil }
func (NoOp) Get(context.Context, string) (string, error)              { return "", ErrMiss }
func (NoOp) Del(context.Context, string) error                        { return nil }
