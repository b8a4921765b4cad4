// File: internal/store/store.go

// Package store opens the configured RecordStore backend.
package store

import (
	"context"
	"fmt"

	"github.com/Pedro-J-Kukul/salesrecords/internal/data"
	"github.com/Pedro-J-Kukul/salesrecords/internal/store/memory"
	"github.com/Pedro-J-Kukul/salesrecords/internal/store/mongo"
	"github.com/Pedro-J-Kukul/salesrecords/internal/store/postgres"
)

const (
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Backends lists the accepted values of Config.Backend.
var Backends = []string{BackendMongo, BackendPostgres, BackendMemory}

// Config selects a backend and carries its settings.
type Config struct {
	Backend  string
	Mongo    mongo.Config
	Postgres postgres.Config

	// Bootstrap creates missing indexes or tables after connecting.
	Bootstrap bool
}

// Open connects to the configured backend. The returned function releases
// its resources.
func Open(ctx context.Context, cfg Config) (data.RecordStore, func() error, error) {
	switch cfg.Backend {
	case BackendMongo:
		s, err := mongo.Open(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Bootstrap {
			if err := s.EnsureIndexes(ctx); err != nil {
				s.Close()
				return nil, nil, err
			}
		}
		return s, s.Close, nil

	case BackendPostgres:
		s, err := postgres.Open(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Bootstrap {
			if err := s.EnsureSchema(ctx); err != nil {
				s.Close()
				return nil, nil, err
			}
		}
		return s, s.Close, nil

	case BackendMemory:
		return memory.New(), func() error { return nil }, nil
	}

	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}
