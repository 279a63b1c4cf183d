package domain

import (
	"fmt"
	"strings"
)

// Result limits accepted by the API. Requests above MaxLimit are clamped.
const (
	DefaultLimit = 1000
	MaxLimit     = 1000
)

// termSeparator transmits a space inside the search expression. The API
// treats "+" as the token separator, so multi-word terms stay one token.
const termSeparator = "+"

// JoinMode is the boolean operator combining all active search clauses.
type JoinMode string

const (
	JoinAnd JoinMode = "AND"
	JoinOr  JoinMode = "OR"
)

// ParseJoinMode normalizes a user-supplied join mode. Input is
// case-insensitive; the empty string defaults to AND. Anything else is
// ErrInvalidJoinMode — there is no silent fallback, retry policy belongs to
// the caller.
func ParseJoinMode(s string) (JoinMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(JoinAnd):
		return JoinAnd, nil
	case string(JoinOr):
		return JoinOr, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidJoinMode, s)
	}
}

// SearchClause is one field-scoped filter expression in the API grammar.
type SearchClause struct {
	Field string
	Expr  string
}

// Render produces the wire form, e.g. `state:("IA"+OR+"TX")`.
func (c SearchClause) Render() string {
	return c.Field + ":" + c.Expr
}

// EncodeParameter turns a categorical filter value into a search clause.
// The value may be a comma-separated list; multiple terms become a
// disjunction of quoted terms in input order, without deduplication:
//
//	"Ames"          -> city:("Ames")
//	"Ames, Boone"   -> city:("Ames"+OR+"Boone")
//	"New York"      -> city:("New+York")
//
// An empty value contributes no clause (ok is false). Pure and idempotent.
func EncodeParameter(field, raw string) (SearchClause, bool) {
	if raw == "" {
		return SearchClause{}, false
	}

	terms := strings.Split(raw, ", ")
	quoted := make([]string, len(terms))
	for i, term := range terms {
		quoted[i] = `"` + strings.ReplaceAll(term, " ", termSeparator) + `"`
	}

	expr := "(" + strings.Join(quoted, termSeparator+"OR"+termSeparator) + ")"
	return SearchClause{Field: field, Expr: expr}, true
}

// QuerySpec is a fully validated request: ordered clauses, one join mode,
// and a clamped result limit. Clause order is the fixed declaration order of
// the calling entry point, not user input order.
type QuerySpec struct {
	Clauses []SearchClause
	Mode    JoinMode
	Limit   int
}

// NewQuerySpec validates the join mode and limit and assembles a QuerySpec.
// A zero limit means unset and takes the default; a negative limit is
// ErrInvalidLimit; a limit above MaxLimit is clamped with a warning.
func NewQuerySpec(clauses []SearchClause, mode string, limit int) (QuerySpec, []Warning, error) {
	joinMode, err := ParseJoinMode(mode)
	if err != nil {
		return QuerySpec{}, nil, err
	}

	var warnings []Warning
	switch {
	case limit < 0:
		return QuerySpec{}, nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	case limit == 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		warnings = append(warnings, warningf(WarnResultLimitExceeded,
			"requested limit %d exceeds the API maximum; clamped to %d", limit, MaxLimit))
		limit = MaxLimit
	}

	return QuerySpec{Clauses: clauses, Mode: joinMode, Limit: limit}, warnings, nil
}

// SearchExpression joins the rendered clauses with the join mode as a flat
// left-to-right expression (the grammar has no precedence). Empty when no
// clause is active.
func (q QuerySpec) SearchExpression() string {
	if len(q.Clauses) == 0 {
		return ""
	}
	rendered := make([]string, len(q.Clauses))
	for i, c := range q.Clauses {
		rendered[i] = c.Render()
	}
	return strings.Join(rendered, termSeparator+string(q.Mode)+termSeparator)
}
