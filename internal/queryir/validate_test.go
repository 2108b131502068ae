package queryir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSelect() Select {
	return Select{
		Columns: []string{"name", "cr"},
		From:    "monsters",
		Clauses: []Clause{
			{Name: "environment", Mode: Wrap, Predicate: Or{Predicates: []Predicate{
				Contains{Field: "environment", Value: "Forest"},
				Contains{Field: "environment", Value: "Swamp"},
			}}},
			{Name: "size", Mode: Conjunct, Predicate: In{Field: "size", Values: []string{"Large", "Huge"}}},
			{Name: "named", Mode: Conjunct, Predicate: IsBlank{Field: "named"}},
		},
		OrderBy: []string{"name"},
	}
}

func TestValidate_ValidQuery(t *testing.T) {
	result := Validate(validSelect())

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Problems)
	assert.NoError(t, result.Err())
}

func TestValidate_PointerQuery(t *testing.T) {
	sel := validSelect()
	result := Validate(&sel)

	assert.True(t, result.IsValid)
}

func TestValidate_NilQuery(t *testing.T) {
	result := Validate(nil)
	assert.False(t, result.IsValid)

	var sel *Select
	result = Validate(sel)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Problems[0], "nil query")
}

func TestValidate_RejectsUnsafeIdentifiers(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Select)
	}{
		{"table", func(s *Select) { s.From = "monsters; DROP TABLE sources" }},
		{"column", func(s *Select) { s.Columns = []string{"name", "cr --"} }},
		{"order key", func(s *Select) { s.OrderBy = []string{"name DESC"} }},
		{"field", func(s *Select) {
			s.Clauses = []Clause{{Name: "x", Mode: Conjunct, Predicate: In{Field: "1=1 OR name", Values: []string{"a"}}}}
		}},
		{"upper case", func(s *Select) { s.From = "Monsters" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := validSelect()
			tt.mutate(&sel)

			result := Validate(sel)
			assert.False(t, result.IsValid)
			assert.Contains(t, result.Problems[0], "not a plain identifier")
		})
	}
}

func TestValidate_RejectsEmptyMembers(t *testing.T) {
	tests := []struct {
		name string
		pred Predicate
		want string
	}{
		{"empty IN", In{Field: "size"}, "empty IN list"},
		{"empty OR", Or{}, "empty OR"},
		{"empty substring", Contains{Field: "environment"}, "empty substring"},
		{"nested empty IN", Or{Predicates: []Predicate{In{Field: "type"}}}, "empty IN list"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := validSelect()
			sel.Clauses = []Clause{{Name: "c", Mode: Conjunct, Predicate: tt.pred}}

			result := Validate(sel)
			require.False(t, result.IsValid)
			assert.Contains(t, result.Problems[0], tt.want)
		})
	}
}

func TestValidate_RequiresColumnsAndOrder(t *testing.T) {
	result := Validate(Select{From: "monsters"})

	require.False(t, result.IsValid)
	assert.Contains(t, result.Problems, "empty column list")
	assert.Contains(t, result.Problems, "missing ORDER BY")
	assert.ErrorContains(t, result.Err(), "invalid query")
}

func TestValidate_ClauseShape(t *testing.T) {
	sel := validSelect()
	sel.Clauses = []Clause{
		{Mode: Conjunct, Predicate: IsBlank{Field: "named"}},
		{Name: "odd", Mode: ClauseMode(7), Predicate: IsBlank{Field: "named"}},
		{Name: "bare", Mode: Wrap},
	}
	sel.Limit = -1

	result := Validate(sel)
	require.False(t, result.IsValid)
	assert.Len(t, result.Problems, 4)
}
