package queryir

// Query represents an abstract query in the QueryIR.
//
// This is a sealed interface - only types in this package implement it.
type Query interface {
	queryNode()
}

// Predicate represents a filter condition in the QueryIR.
//
// Predicate types:
//   - In: field IN (values...)
//   - Contains: field contains value as a substring
//   - IsBlank: field is the empty string
//   - Or: any predicate is true
type Predicate interface {
	predicateNode()
}

// ClauseMode says how a clause is applied to a Select.
type ClauseMode int

const (
	// Conjunct clauses become one AND-ed condition of the outer WHERE.
	Conjunct ClauseMode = iota
	// Wrap clauses narrow the row source with a nested subquery.
	Wrap
)

// String returns the mode name.
func (m ClauseMode) String() string {
	switch m {
	case Conjunct:
		return "conjunct"
	case Wrap:
		return "wrap"
	default:
		return "unknown"
	}
}

// Clause is one named filter stage of a Select.
type Clause struct {
	Name      string // e.g. "environment", "size"; used in logs and errors
	Mode      ClauseMode
	Predicate Predicate
}

// Select represents a read of one table narrowed by clauses.
//
// Conceptual SQL for wraps w1, w2 and conjuncts c1, c2:
//
//	SELECT <columns>
//	FROM (SELECT * FROM (SELECT * FROM <from> WHERE w1) WHERE w2)
//	WHERE c1 AND c2
//	ORDER BY <order_by> ASC
//	LIMIT <limit>
type Select struct {
	Columns []string // Explicit column list (required)
	From    string   // Base table name
	Clauses []Clause // Applied in order per mode
	OrderBy []string // Ascending sort keys (required)
	Limit   int      // 0 means no limit
}

func (Select) queryNode() {}

// In represents exact membership of a field in a value list.
//
// Values must not be empty: an empty IN list matches nothing, which is
// never what an absent filter means.
type In struct {
	Field  string
	Values []string
}

func (In) predicateNode() {}

// Contains represents a substring match on a field. It is the membership
// test for columns that store several comma-joined values.
type Contains struct {
	Field string
	Value string
}

func (Contains) predicateNode() {}

// IsBlank matches rows whose field holds the empty-string marker the
// storage format uses for "absent".
type IsBlank struct {
	Field string
}

func (IsBlank) predicateNode() {}

// Or represents a disjunction of predicates (any must be true).
type Or struct {
	Predicates []Predicate
}

func (Or) predicateNode() {}

// Wraps returns the Wrap clauses of s in order.
func (s Select) Wraps() []Clause {
	return s.clausesWithMode(Wrap)
}

// Conjuncts returns the Conjunct clauses of s in order.
func (s Select) Conjuncts() []Clause {
	return s.clausesWithMode(Conjunct)
}

func (s Select) clausesWithMode(mode ClauseMode) []Clause {
	var out []Clause
	for _, c := range s.Clauses {
		if c.Mode == mode {
			out = append(out, c)
		}
	}
	return out
}
