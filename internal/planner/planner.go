// Package planner turns a constraint.Set into a queryir.Select over the
// monsters table and compiles it to parameterized SQL.
//
// Clause order is fixed. Wrap clauses (multi-valued text columns):
// environment, source, alignment. Conjunct clauses (exact-membership
// columns and flags): size, type, cr, legendary, named. The compiled
// parameter list therefore holds environment patterns, source hash patterns,
// alignment patterns, sizes, types and CR labels, in that order.
package planner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/bestiary/internal/constraint"
	"github.com/roach88/bestiary/internal/cr"
	"github.com/roach88/bestiary/internal/ir"
	"github.com/roach88/bestiary/internal/queryir"
	"github.com/roach88/bestiary/internal/querysql"
)

// Table and column names of the monsters table.
const (
	Table = "monsters"

	ColName         = "name"
	ColCR           = "cr"
	ColSize         = "size"
	ColType         = "type"
	ColAlignment    = "alignment"
	ColEnvironment  = "environment"
	ColSourceHashes = "sourcehashes"
	ColLegendary    = "legendary"
	ColNamed        = "named"
)

// Clause names, in plan order.
const (
	ClauseEnvironment = "environment"
	ClauseSource      = "source"
	ClauseAlignment   = "alignment"
	ClauseSize        = "size"
	ClauseType        = "type"
	ClauseCR          = "cr"
	ClauseLegendary   = "legendary"
	ClauseNamed       = "named"
)

// SourceResolver maps a source display name to its hash token.
// Implementations return an ir.ErrUnknownSource FilterError for names with
// no registered source.
type SourceResolver interface {
	ResolveSourceHash(ctx context.Context, name string) (string, error)
}

// Builder plans filter queries.
type Builder struct {
	resolver SourceResolver
	compiler *querysql.SQLCompiler
	limit    int
}

// Option configures a Builder.
type Option func(*Builder)

// WithLimit caps the number of returned rows. 0 means no cap.
func WithLimit(n int) Option {
	return func(b *Builder) {
		b.limit = n
	}
}

// New creates a Builder resolving sources through r.
func New(r SourceResolver, opts ...Option) *Builder {
	b := &Builder{
		resolver: r,
		compiler: querysql.NewSQLCompiler(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build plans the Select for a constraint set.
//
// Returns an UNKNOWN_SOURCE FilterError if a source name does not resolve
// and an INVALID_CHALLENGE_RATING FilterError if a CR bound is outside the
// domain. No partial plan is returned on error.
func (b *Builder) Build(ctx context.Context, s constraint.Set) (queryir.Select, error) {
	var clauses []queryir.Clause

	if len(s.Environments) > 0 {
		clauses = append(clauses, containsAny(ClauseEnvironment, ColEnvironment, s.Environments))
	}

	if len(s.Sources) > 0 {
		hashes, err := b.resolveSources(ctx, s.Sources)
		if err != nil {
			return queryir.Select{}, err
		}
		clauses = append(clauses, containsAny(ClauseSource, ColSourceHashes, hashes))
	}

	if len(s.Alignments) > 0 {
		clauses = append(clauses, containsAny(ClauseAlignment, ColAlignment, s.Alignments))
	}

	if len(s.Sizes) > 0 {
		clauses = append(clauses, in(ClauseSize, ColSize, s.Sizes))
	}

	if len(s.Types) > 0 {
		clauses = append(clauses, in(ClauseType, ColType, s.Types))
	}

	if s.HasCRRange() {
		labels, err := cr.Range(s.MinCR, s.MaxCR)
		if err != nil {
			return queryir.Select{}, err
		}
		clauses = append(clauses, in(ClauseCR, ColCR, labels))
	}

	if c, ok := flagClause(ClauseLegendary, ColLegendary, s.AllowLegendary); ok {
		clauses = append(clauses, c)
	}
	if c, ok := flagClause(ClauseNamed, ColNamed, s.AllowNamed); ok {
		clauses = append(clauses, c)
	}

	return queryir.Select{
		Columns: ir.MonsterColumns,
		From:    Table,
		Clauses: clauses,
		OrderBy: []string{ColName},
		Limit:   b.limit,
	}, nil
}

// Compile plans and renders a constraint set in one step.
func (b *Builder) Compile(ctx context.Context, s constraint.Set) (string, []any, error) {
	sel, err := b.Build(ctx, s)
	if err != nil {
		return "", nil, err
	}

	query, params, err := b.compiler.Compile(sel)
	if err != nil {
		return "", nil, fmt.Errorf("compile filter query: %w", err)
	}

	slog.Debug("compiled filter query",
		"clauses", len(sel.Clauses),
		"params", len(params),
		"sql", query)

	return query, params, nil
}

// resolveSources looks up every name in order. The first failure aborts.
func (b *Builder) resolveSources(ctx context.Context, names []string) ([]string, error) {
	if b.resolver == nil {
		return nil, fmt.Errorf("source filter requested but no resolver configured")
	}

	hashes := make([]string, 0, len(names))
	for _, name := range names {
		hash, err := b.resolver.ResolveSourceHash(ctx, name)
		if err != nil {
			return nil, err
		}
		hashes = append(hashes, hash)
	}
	return hashes, nil
}

// containsAny builds a Wrap clause matching rows whose column contains any
// of the values.
func containsAny(name, column string, values []string) queryir.Clause {
	preds := make([]queryir.Predicate, len(values))
	for i, v := range values {
		preds[i] = queryir.Contains{Field: column, Value: v}
	}
	return queryir.Clause{
		Name:      name,
		Mode:      queryir.Wrap,
		Predicate: queryir.Or{Predicates: preds},
	}
}

func in(name, column string, values []string) queryir.Clause {
	return queryir.Clause{
		Name:      name,
		Mode:      queryir.Conjunct,
		Predicate: queryir.In{Field: column, Values: values},
	}
}

// flagClause translates a tri-state flag into a predicate. Storage marks an
// absent flag with the empty string, so disallowing a flag keeps only blank
// rows; allowing it adds nothing.
func flagClause(name, column string, allow bool) (queryir.Clause, bool) {
	if allow {
		return queryir.Clause{}, false
	}
	return queryir.Clause{
		Name:      name,
		Mode:      queryir.Conjunct,
		Predicate: queryir.IsBlank{Field: column},
	}, true
}
