// Package queryir provides the intermediate representation a monster filter
// request is planned into before it is rendered as SQL.
//
// A Select is a base table, a column list, an ordered list of named
// clauses and a mandatory ordering. Each clause is tagged with a mode:
//
//   - Wrap: the clause narrows the current row source. The SQL backend
//     renders it as a nested subquery around whatever came before, so
//     multi-valued text columns can be matched with OR-ed LIKE patterns.
//   - Conjunct: the clause is one condition of the flat outer WHERE,
//     joined with AND.
//
// Wrap clauses apply in slice order, innermost first. Conjuncts apply in
// slice order, left to right. Because parameters are emitted in the same
// order the clauses are rendered, the clause order of a Select fully
// determines the order of its parameter list.
//
// SEALED INTERFACES:
//
// Query and Predicate use the marker method pattern. Only types in this
// package implement them, so backends can switch exhaustively:
//
//	switch p := pred.(type) {
//	case In:
//	case Contains:
//	case Or:
//	...
//	}
//
// Values live only inside predicates, never in identifiers. Validate checks
// that every identifier is a plain lower-case SQL name before a backend
// renders anything.
package queryir
