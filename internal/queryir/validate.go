package queryir

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// identPattern matches the identifiers a backend may render verbatim.
var identPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// ValidationResult contains the structural problems found in a query.
type ValidationResult struct {
	// IsValid is true when a backend can render the query safely.
	IsValid bool

	// Problems lists every violation found. Empty when IsValid is true.
	Problems []string
}

// Err returns nil for a valid result, or one error listing all problems.
func (r ValidationResult) Err() error {
	if r.IsValid {
		return nil
	}
	return errors.New("invalid query: " + strings.Join(r.Problems, "; "))
}

// Validate checks a query before rendering.
//
// Rules:
//  1. Table, column, field and order names are plain identifiers
//  2. Columns and OrderBy are not empty
//  3. In lists, Or and And have at least one member
//  4. Contains values are not empty (an empty pattern matches every row)
//  5. Wrap clauses and clause names are present
//
// Validate is a pure function with no side effects.
func Validate(query Query) ValidationResult {
	v := &validator{
		problems: []string{},
	}
	v.validateQuery(query)

	return ValidationResult{
		IsValid:  len(v.problems) == 0,
		Problems: v.problems,
	}
}

// validator accumulates problems during traversal.
type validator struct {
	problems []string
}

func (v *validator) addProblem(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) ident(kind, name string) {
	if !identPattern.MatchString(name) {
		v.addProblem("%s %q is not a plain identifier", kind, name)
	}
}

func (v *validator) validateQuery(q Query) {
	switch query := q.(type) {
	case Select:
		v.validateSelect(query)
	case *Select:
		if query == nil {
			v.addProblem("nil query")
			return
		}
		v.validateSelect(*query)
	case nil:
		v.addProblem("nil query")
	default:
		v.addProblem("unknown query type: %T", q)
	}
}

func (v *validator) validateSelect(sel Select) {
	v.ident("table", sel.From)

	if len(sel.Columns) == 0 {
		v.addProblem("empty column list")
	}
	for _, c := range sel.Columns {
		v.ident("column", c)
	}

	if len(sel.OrderBy) == 0 {
		v.addProblem("missing ORDER BY")
	}
	for _, o := range sel.OrderBy {
		v.ident("order key", o)
	}

	if sel.Limit < 0 {
		v.addProblem("negative limit %d", sel.Limit)
	}

	for i, c := range sel.Clauses {
		if c.Name == "" {
			v.addProblem("clause %d has no name", i)
		}
		if c.Mode != Conjunct && c.Mode != Wrap {
			v.addProblem("clause %q has unknown mode %d", c.Name, c.Mode)
		}
		if c.Predicate == nil {
			v.addProblem("clause %q has no predicate", c.Name)
			continue
		}
		v.validatePredicate(c.Predicate)
	}
}

func (v *validator) validatePredicate(p Predicate) {
	switch pred := p.(type) {
	case In:
		v.ident("field", pred.Field)
		if len(pred.Values) == 0 {
			v.addProblem("empty IN list for %q", pred.Field)
		}
	case Contains:
		v.ident("field", pred.Field)
		if pred.Value == "" {
			v.addProblem("empty substring for %q", pred.Field)
		}
	case IsBlank:
		v.ident("field", pred.Field)
	case Or:
		if len(pred.Predicates) == 0 {
			v.addProblem("empty OR")
		}
		for _, sub := range pred.Predicates {
			v.validatePredicate(sub)
		}
	case nil:
		v.addProblem("nil predicate")
	default:
		v.addProblem("unknown predicate type: %T", p)
	}
}
