// Package bestiary serves monster filter requests.
//
// A request is one JSON-shaped parameter map. The service extracts its
// constraints, opens a read-only connection to the database, plans and runs
// one query and formats the rows. The connection lives for exactly one
// request.
package bestiary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/bestiary/internal/constraint"
	"github.com/roach88/bestiary/internal/format"
	"github.com/roach88/bestiary/internal/planner"
	"github.com/roach88/bestiary/internal/store"
)

// Config configures a Service.
type Config struct {
	// DBPath is the SQLite database file. It must already exist.
	DBPath string

	// MaxResults caps the rows of a filter response. 0 means no cap.
	MaxResults int
}

// Response is the payload of a filter request. Each row holds the columns
// of ir.MonsterColumns as trimmed text with formatted sources.
type Response struct {
	RequestID string     `json:"request_id"`
	Data      [][]string `json:"data"`
}

// Explanation is the compiled form of a filter request.
type Explanation struct {
	RequestID string `json:"request_id"`
	SQL       string `json:"sql"`
	Params    []any  `json:"params"`
}

// Service answers filter and facet requests.
type Service struct {
	cfg Config
	ids IDGenerator
}

// Option configures a Service.
type Option func(*Service)

// WithIDGenerator overrides the request id source.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Service) {
		s.ids = g
	}
}

// New creates a Service.
func New(cfg Config, opts ...Option) *Service {
	s := &Service{
		cfg: cfg,
		ids: UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Monsters runs a filter request.
//
// An empty request means every monster from an official source. Unknown
// sources and out-of-domain CR bounds fail with a FilterError; storage
// failures fail with a STORAGE_UNAVAILABLE FilterError. No rows are
// returned alongside an error.
func (s *Service) Monsters(ctx context.Context, params map[string]any) (Response, error) {
	reqID := s.ids.Generate()
	log := slog.With("request_id", reqID)

	resp := Response{RequestID: reqID}
	err := s.withStore(ctx, func(st *store.Store) error {
		query, args, err := s.compile(ctx, st, params)
		if err != nil {
			return err
		}

		monsters, err := st.QueryMonsters(ctx, query, args...)
		if err != nil {
			return err
		}

		resp.Data = format.Rows(monsters)
		return nil
	})
	if err != nil {
		log.Warn("filter request failed", "error", err)
		return Response{}, err
	}

	log.Info("filter request served", "rows", len(resp.Data))
	return resp, nil
}

// Explain compiles a filter request without running it.
func (s *Service) Explain(ctx context.Context, params map[string]any) (Explanation, error) {
	reqID := s.ids.Generate()
	log := slog.With("request_id", reqID)

	exp := Explanation{RequestID: reqID}
	err := s.withStore(ctx, func(st *store.Store) error {
		query, args, err := s.compile(ctx, st, params)
		if err != nil {
			return err
		}
		exp.SQL, exp.Params = query, args
		return nil
	})
	if err != nil {
		log.Warn("explain request failed", "error", err)
		return Explanation{}, err
	}

	log.Debug("explain request served", "params", len(exp.Params))
	return exp, nil
}

// compile extracts, defaults and compiles the constraints of one request
// against an open store.
func (s *Service) compile(ctx context.Context, st *store.Store, params map[string]any) (string, []any, error) {
	set := constraint.Extract(params)

	if set.IsEmpty() {
		official, err := st.OfficialSources(ctx)
		if err != nil {
			return "", nil, err
		}
		set.Sources = official
		slog.Debug("empty request, defaulting to official sources", "sources", len(official))
	}

	b := planner.New(st, planner.WithLimit(s.cfg.MaxResults))
	return b.Compile(ctx, set)
}

// withStore opens a read-only connection for the duration of fn.
func (s *Service) withStore(ctx context.Context, fn func(*store.Store) error) error {
	st, err := store.OpenReadOnly(s.cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			slog.Warn("closing database", "error", cerr)
		}
	}()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("request cancelled: %w", err)
	}
	return fn(st)
}
