package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Validation failures detected before any network call is made.
var (
	// ErrInvalidDateInput marks a date filter that is present but carries no
	// textual content to parse.
	ErrInvalidDateInput = errors.New("date filter is not a textual date expression")

	// ErrTooManyDateTerms marks a date filter with more than two
	// " to "-separated segments.
	ErrTooManyDateTerms = errors.New("date filter has more than two terms")

	// ErrInvalidJoinMode marks a join mode other than AND or OR.
	ErrInvalidJoinMode = errors.New(`join mode must be "AND" or "OR"`)

	// ErrInvalidLimit marks a negative result limit.
	ErrInvalidLimit = errors.New("result limit must be positive")
)

// TransportError is a fatal, non-retried failure of the single API request:
// any HTTP status other than 200 that is not the recognized no-matches
// response. The response body is kept for diagnostics.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("openFDA API error: status %d: %s", e.StatusCode, e.Body)
}

// WarningCode identifies a non-fatal advisory condition. Warnings never stop
// execution; they travel with the result so callers can surface them.
type WarningCode string

const (
	// WarnResultLimitExceeded: requested limit was above the API maximum and
	// was clamped to 1000.
	WarnResultLimitExceeded WarningCode = "result_limit_exceeded"

	// WarnTruncatedResult: the total match count exceeds the number of
	// records returned; data is valid but incomplete.
	WarnTruncatedResult WarningCode = "truncated_result"

	// WarnUnmatchedStateTokens: state tokens that matched neither an
	// abbreviation nor a full state name and were dropped from the clause.
	WarnUnmatchedStateTokens WarningCode = "unmatched_state_tokens"

	// WarnUnparsedDateBound: a date segment failed every format attempt and
	// was rendered into the range bound as-is.
	WarnUnparsedDateBound WarningCode = "unparsed_date_bound"
)

// Warning is a non-fatal advisory attached to a query result.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}

func warningf(code WarningCode, format string, args ...any) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}

// StateTokenWarning reports state tokens that were dropped during
// normalization because they matched no known state.
func StateTokenWarning(dropped []string) Warning {
	return warningf(WarnUnmatchedStateTokens,
		"state tokens matched no known state and were dropped: %s", strings.Join(dropped, ", "))
}

// TruncationWarning reports a response truncated by the result limit.
func TruncationWarning(total, returned int) Warning {
	return warningf(WarnTruncatedResult,
		"%d of %d matching records returned", returned, total)
}
