// Package cache stores generated summaries so repeated summarization of
// an unchanged document costs one lookup instead of a backend call.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/Pramod3245/Doc-agents/pkg/config"
	"github.com/google/uuid"

	"go.uber.org/zap"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Key identifies one cached summary. It covers the document, its exact
// content and the summarization parameters, so a changed file or changed
// settings can never serve a stale entry.
type Key struct {
	DocumentID  uuid.UUID
	ContentHash string
	ConfigHash  string
}

func (k Key) String() string {
	return fmt.Sprintf("summary:%s:%s:%s", k.DocumentID, k.ContentHash, k.ConfigHash)
}

// ConfigHash folds every parameter that shapes a summary into a short
// stable hash for cache keys.
func ConfigHash(backend, style string, maxLength, windowSize, overlap int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d|%d|%d", backend, style, maxLength, windowSize, overlap)))
	return hex.EncodeToString(sum[:8])
}

// Cache is a summary store. Backends report their own failures; callers
// treat a failed Get as a miss and a failed Set as a no-op, so a broken
// cache slows summarization down but never breaks it.
type Cache interface {
	Get(ctx context.Context, key Key) (string, bool, error)
	Set(ctx context.Context, key Key, summary string, ttl time.Duration) error
}

// New creates the cache named by configuration.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Cache, error) {
	switch cfg.Cache.Backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendRedis:
		return NewRedis(ctx, &cfg.Redis, logger)
	case BackendNone, "":
		return Noop{}, nil
	default:
		return nil, fmt.Errorf("unsupported cache backend: %q", cfg.Cache.Backend)
	}
}

// Noop caches nothing: every Get misses and every Set is discarded.
type Noop struct{}

func (Noop) Get(ctx context.Context, key Key) (string, bool, error) {
	return "", false, nil
}

func (Noop) Set(ctx context.Context, key Key, summary string, ttl time.Duration) error {
	return nil
}
