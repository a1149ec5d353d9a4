// Package statestore keeps a Redis-backed snapshot of the catalog and
// document lists. Clients read the whole snapshot once at startup and
// the snapshot is rewritten whenever state changes, replacing the
// ad hoc per-browser mirror the old frontend kept.
package statestore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// Collection names one snapshotted list.
type Collection string

const (
	Products   Collection = "products"
	Quotations Collection = "quotations"
	Invoices   Collection = "invoices"
	Suppliers  Collection = "suppliers"
)

// SourceFunc produces the current contents of a collection.
type SourceFunc func(ctx context.Context) (any, error)

const keyPrefix = "state:"

// Service owns the snapshot lifecycle: warm at startup, refresh on
// change, serve on demand.
type Service struct {
	client  *redis.Client
	sources map[Collection]SourceFunc
	logger  *slog.Logger
}

// New builds an empty snapshot container; collections are attached with
// Register.
func New(client *redis.Client, logger *slog.Logger) *Service {
	return &Service{
		client:  client,
		sources: make(map[Collection]SourceFunc),
		logger:  logger,
	}
}

// Register attaches a collection source.
func (s *Service) Register(c Collection, fn SourceFunc) {
	s.sources[c] = fn
}

// Refresh rewrites one collection snapshot from its source.
func (s *Service) Refresh(ctx context.Context, c Collection) error {
	fn, ok := s.sources[c]
	if !ok {
		return fmt.Errorf("statestore: unknown collection %q", c)
	}

	data, err := fn(ctx)
	if err != nil {
		return fmt.Errorf("statestore: load %s: %w", c, err)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("statestore: marshal %s: %w", c, err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, keyPrefix+string(c), raw, 0)
	pipe.Set(ctx, keyPrefix+string(c)+":refreshed_at",
		time.Now().UTC().Format(time.RFC3339), 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("statestore: store %s: %w", c, err)
	}

	s.logger.Debug("snapshot refreshed", "collection", c)
	return nil
}

// RefreshAll rewrites every registered collection concurrently. Called
// at startup to warm the snapshot and by the background worker after
// writes.
func (s *Service) RefreshAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for c := range s.sources {
		g.Go(func() error {
			return s.Refresh(ctx, c)
		})
	}
	return g.Wait()
}

// Load reads one collection snapshot into dest. A missing snapshot is
// not an error; dest is left untouched and ok is false.
func (s *Service) Load(ctx context.Context, c Collection, dest any) (bool, error) {
	raw, err := s.client.Get(ctx, keyPrefix+string(c)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("statestore: read %s: %w", c, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("statestore: unmarshal %s: %w", c, err)
	}
	return true, nil
}

// Snapshot returns the raw JSON of every registered collection keyed by
// name, for the startup read.
func (s *Service) Snapshot(ctx context.Context) (map[Collection]json.RawMessage, error) {
	out := make(map[Collection]json.RawMessage, len(s.sources))
	for c := range s.sources {
		raw, err := s.client.Get(ctx, keyPrefix+string(c)).Bytes()
		if err == redis.Nil {
			out[c] = json.RawMessage("null")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("statestore: read %s: %w", c, err)
		}
		out[c] = json.RawMessage(raw)
	}
	return out, nil
}
