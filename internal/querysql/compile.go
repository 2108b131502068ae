package querysql

import (
	"fmt"
	"strings"

	"github.com/roach88/bestiary/internal/queryir"
)

// likeEscape is the escape character declared on every LIKE.
const likeEscape = `\`

// SQLCompiler compiles QueryIR to parameterized SQL for SQLite.
//
// Every query has an ORDER BY. Values are only ever bound through the
// parameter list; the text holds identifiers, placeholders and the fixed
// empty-string marker used by IsBlank.
type SQLCompiler struct{}

// NewSQLCompiler creates a new SQLCompiler.
func NewSQLCompiler() *SQLCompiler {
	return &SQLCompiler{}
}

// Compile converts a QueryIR query to parameterized SQL.
// Returns (sql, params, error) tuple.
//
// The parameter list follows the placeholders left to right: values of
// wrap clauses from the innermost out, then values of conjuncts in order.
func (c *SQLCompiler) Compile(q queryir.Query) (string, []any, error) {
	if res := queryir.Validate(q); !res.IsValid {
		return "", nil, res.Err()
	}

	switch query := q.(type) {
	case queryir.Select:
		return c.compileSelect(query)
	case *queryir.Select:
		return c.compileSelect(*query)
	default:
		return "", nil, fmt.Errorf("unsupported query type: %T", q)
	}
}

func (c *SQLCompiler) compileSelect(q queryir.Select) (string, []any, error) {
	fromClause, params, err := c.compileFrom(q)
	if err != nil {
		return "", nil, err
	}

	var whereClause string
	if conjuncts := q.Conjuncts(); len(conjuncts) > 0 {
		parts := make([]string, 0, len(conjuncts))
		for _, cl := range conjuncts {
			sql, clauseParams, err := c.compilePredicate(cl.Predicate, true)
			if err != nil {
				return "", nil, fmt.Errorf("compile %s clause: %w", cl.Name, err)
			}
			parts = append(parts, sql)
			params = append(params, clauseParams...)
		}
		whereClause = " WHERE " + strings.Join(parts, " AND ")
	}

	orderByClause := " ORDER BY " + c.stableOrderKey(q)

	var limitClause string
	if q.Limit > 0 {
		limitClause = fmt.Sprintf(" LIMIT %d", q.Limit)
	}

	sql := fmt.Sprintf("SELECT %s FROM %s%s%s%s",
		strings.Join(q.Columns, ", "),
		fromClause,
		whereClause,
		orderByClause,
		limitClause)

	if params == nil {
		params = []any{}
	}
	return sql, params, nil
}

// compileFrom wraps the base table once per Wrap clause:
//
//	(SELECT * FROM <previous> WHERE <predicate>)
func (c *SQLCompiler) compileFrom(q queryir.Select) (string, []any, error) {
	from := q.From
	var params []any

	for _, cl := range q.Wraps() {
		sql, clauseParams, err := c.compilePredicate(cl.Predicate, false)
		if err != nil {
			return "", nil, fmt.Errorf("compile %s clause: %w", cl.Name, err)
		}
		from = fmt.Sprintf("(SELECT * FROM %s WHERE %s)", from, sql)
		params = append(params, clauseParams...)
	}

	return from, params, nil
}

// stableOrderKey returns the ORDER BY list for a query.
func (c *SQLCompiler) stableOrderKey(q queryir.Select) string {
	keys := make([]string, len(q.OrderBy))
	for i, k := range q.OrderBy {
		keys[i] = k + " ASC"
	}
	return strings.Join(keys, ", ")
}

// compilePredicate compiles a predicate to a SQL fragment and its params.
// nested adds parentheses around OR so it binds correctly inside an outer
// conjunction.
func (c *SQLCompiler) compilePredicate(p queryir.Predicate, nested bool) (string, []any, error) {
	switch pred := p.(type) {
	case queryir.In:
		return c.compileIn(pred)
	case queryir.Contains:
		return c.compileContains(pred)
	case queryir.IsBlank:
		return pred.Field + " = ''", nil, nil
	case queryir.Or:
		return c.compileOr(pred.Predicates, nested)
	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}
}

// compileIn compiles "field IN (?, ?, ...)".
func (c *SQLCompiler) compileIn(in queryir.In) (string, []any, error) {
	placeholders := make([]string, len(in.Values))
	params := make([]any, len(in.Values))
	for i, v := range in.Values {
		placeholders[i] = "?"
		params[i] = v
	}
	sql := fmt.Sprintf("%s IN (%s)", in.Field, strings.Join(placeholders, ", "))
	return sql, params, nil
}

// compileContains compiles a substring match. LIKE metacharacters in the
// value are escaped so they match literally.
func (c *SQLCompiler) compileContains(ct queryir.Contains) (string, []any, error) {
	sql := fmt.Sprintf("%s LIKE ? ESCAPE '%s'", ct.Field, likeEscape)
	return sql, []any{"%" + EscapeLike(ct.Value) + "%"}, nil
}

func (c *SQLCompiler) compileOr(preds []queryir.Predicate, nested bool) (string, []any, error) {
	var sqlParts []string
	var allParams []any

	for _, pred := range preds {
		sql, params, err := c.compilePredicate(pred, true)
		if err != nil {
			return "", nil, err
		}
		sqlParts = append(sqlParts, sql)
		allParams = append(allParams, params...)
	}

	sql := strings.Join(sqlParts, " OR ")
	if nested && len(sqlParts) > 1 {
		sql = "(" + sql + ")"
	}
	return sql, allParams, nil
}

// EscapeLike escapes LIKE metacharacters and the escape character.
func EscapeLike(s string) string {
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return r.Replace(s)
}

// CountPlaceholders returns the number of ? placeholders in sql, ignoring
// any inside single-quoted literals.
func CountPlaceholders(sql string) int {
	n := 0
	inQuote := false
	for _, r := range sql {
		switch {
		case r == '\'':
			inQuote = !inQuote
		case r == '?' && !inQuote:
			n++
		}
	}
	return n
}
