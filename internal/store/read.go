package store

import (
	"context"
	"database/sql"
	"sort"
	"strings"

	"github.com/roach88/bestiary/internal/cr"
	"github.com/roach88/bestiary/internal/ir"
)

// QueryMonsters runs a compiled filter query and scans the response columns
// (ir.MonsterColumns order). Values are read as text; NULLs become "".
//
// Returns an empty slice (not nil) if nothing matches. On any error no rows
// are returned.
func (s *Store) QueryMonsters(ctx context.Context, query string, args ...any) ([]ir.Monster, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, ir.NewStorageError("query monsters", err)
	}
	defer rows.Close()

	monsters := []ir.Monster{}
	for rows.Next() {
		m, err := scanMonster(rows)
		if err != nil {
			return nil, ir.NewStorageError("scan monster", err)
		}
		monsters = append(monsters, m)
	}

	if err := rows.Err(); err != nil {
		return nil, ir.NewStorageError("iterate monsters", err)
	}

	return monsters, nil
}

func scanMonster(rows *sql.Rows) (ir.Monster, error) {
	var cols [12]sql.NullString
	dest := make([]any, len(cols))
	for i := range cols {
		dest[i] = &cols[i]
	}
	if err := rows.Scan(dest...); err != nil {
		return ir.Monster{}, err
	}

	return ir.Monster{
		Name:      cols[0].String,
		CR:        cols[1].String,
		Size:      cols[2].String,
		Type:      cols[3].String,
		Tags:      cols[4].String,
		Section:   cols[5].String,
		Alignment: cols[6].String,
		Sources:   cols[7].String,
		FID:       cols[8].String,
		HP:        cols[9].String,
		AC:        cols[10].String,
		Init:      cols[11].String,
	}, nil
}

// distinct returns the distinct non-NULL text values of one query column.
func (s *Store) distinct(ctx context.Context, op, query string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, ir.NewStorageError(op, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v sql.NullString
		if err := rows.Scan(&v); err != nil {
			return nil, ir.NewStorageError(op, err)
		}
		if v.Valid {
			values = append(values, v.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, ir.NewStorageError(op, err)
	}
	return values, nil
}

// Environments returns every environment named in the comma-joined
// environment column, trimmed, deduplicated and sorted.
func (s *Store) Environments(ctx context.Context) ([]string, error) {
	values, err := s.distinct(ctx, "list environments", `SELECT DISTINCT environment FROM monsters`)
	if err != nil {
		return nil, err
	}
	return splitUnique(values, func(part string) string { return part }), nil
}

// Sizes returns the sizes present in the data, smallest first.
func (s *Store) Sizes(ctx context.Context) ([]string, error) {
	values, err := s.distinct(ctx, "list sizes", `SELECT DISTINCT size FROM monsters`)
	if err != nil {
		return nil, err
	}

	present := make(map[string]bool, len(values))
	for _, v := range values {
		present[strings.ToLower(strings.TrimSpace(v))] = true
	}

	sizes := []string{}
	for _, size := range ir.Sizes {
		if present[strings.ToLower(size)] {
			sizes = append(sizes, size)
		}
	}
	return sizes, nil
}

// Types returns the distinct creature types, sorted.
func (s *Store) Types(ctx context.Context) ([]string, error) {
	values, err := s.distinct(ctx, "list types", `SELECT DISTINCT type FROM monsters ORDER BY type`)
	if err != nil {
		return nil, err
	}
	return nonNil(values), nil
}

// ChallengeRatings returns the distinct CR labels in challenge order.
func (s *Store) ChallengeRatings(ctx context.Context) ([]string, error) {
	values, err := s.distinct(ctx, "list challenge ratings", `SELECT DISTINCT cr FROM monsters`)
	if err != nil {
		return nil, err
	}
	cr.Sort(values)
	return nonNil(values), nil
}

// Alignments returns the distinct lower-cased alignments, skipping
// "x or y" alternatives.
func (s *Store) Alignments(ctx context.Context) ([]string, error) {
	values, err := s.distinct(ctx, "list alignments", `SELECT DISTINCT alignment FROM monsters`)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	alignments := []string{}
	for _, v := range values {
		a := strings.ToLower(strings.TrimSpace(v))
		if a == "" || strings.Contains(a, " or ") || seen[a] {
			continue
		}
		seen[a] = true
		alignments = append(alignments, a)
	}
	sort.Strings(alignments)
	return alignments, nil
}

// OfficialSources returns the names of official sources, sorted.
func (s *Store) OfficialSources(ctx context.Context) ([]string, error) {
	values, err := s.distinct(ctx, "list official sources",
		`SELECT DISTINCT name FROM sources WHERE official = 1 ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return nonNil(values), nil
}

// UnofficialSources returns the names of unofficial sources, taking the part
// of each registered name before any colon, deduplicated and sorted.
func (s *Store) UnofficialSources(ctx context.Context) ([]string, error) {
	values, err := s.distinct(ctx, "list unofficial sources",
		`SELECT DISTINCT name FROM sources WHERE official = 0`)
	if err != nil {
		return nil, err
	}
	return splitUnique(values, func(part string) string {
		name, _ := ir.SplitSourceRef(part)
		return name
	}), nil
}

// splitUnique comma-splits every value, maps and trims each part, and
// returns the distinct non-empty parts sorted.
func splitUnique(values []string, mapPart func(string) string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			p := strings.TrimSpace(mapPart(strings.TrimSpace(part)))
			if p == "" || seen[p] {
				continue
			}
			seen[p] = true
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
