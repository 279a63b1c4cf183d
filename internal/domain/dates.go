package domain

import (
	"fmt"
	"strings"
	"time"
)

// rangeSeparator splits a date expression into its two bounds. The literal
// " to " (with spaces) keeps dates like "2023-01-05" intact.
const rangeSeparator = " to "

// compactDate is the wire form of a range bound.
const compactDate = "20060102"

// dateLayouts are the ordered parse attempts for one date segment: full
// dates first (year-month-day, then month-day-year, then day-month-year),
// then partial expressions (year only, then month-and-year). The first
// matching layout wins, so "01/02/2023" is always month-day-year. Partial
// expressions resolve to the first day of their period.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"20060102",
	"01-02-2006",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"2006",
	"2006-01",
	"January 2006",
	"Jan 2006",
}

// ResolveDateRange turns a user date expression into an inclusive range
// clause:
//
//	"January 2023 to May 2023" -> report_date:([20230101+TO+20230501])
//	"2023-06-15"               -> report_date:([20230615+TO+<today>])
//
// A single segment closes against today at call time; the open end is always
// "now", never a fixed lookahead. Two parsed bounds are swapped if reversed
// so start <= end always holds. A segment failing every format attempt is
// rendered into the bound as-is with a [WarnUnparsedDateBound] warning — it
// is never silently dropped. An empty value contributes no clause (ok is
// false); a whitespace-only value is ErrInvalidDateInput; more than two
// segments is ErrTooManyDateTerms.
func ResolveDateRange(field, raw string) (SearchClause, []Warning, bool, error) {
	if raw == "" {
		return SearchClause{}, nil, false, nil
	}
	if strings.TrimSpace(raw) == "" {
		return SearchClause{}, nil, false, fmt.Errorf("%s: %w", field, ErrInvalidDateInput)
	}

	segments := strings.Split(raw, rangeSeparator)
	if len(segments) > 2 {
		return SearchClause{}, nil, false, fmt.Errorf("%s: %w: got %d", field, ErrTooManyDateTerms, len(segments))
	}

	var warnings []Warning
	renderBound := func(segment string) (string, time.Time, bool) {
		segment = strings.TrimSpace(segment)
		if t, ok := parseDateSegment(segment); ok {
			return t.Format(compactDate), t, true
		}
		warnings = append(warnings, warningf(WarnUnparsedDateBound,
			"%s: %q matched no supported date format and is used verbatim", field, segment))
		return segment, time.Time{}, false
	}

	start, startTime, startOK := renderBound(segments[0])

	var end string
	if len(segments) == 1 {
		end = clock.Now().UTC().Format(compactDate)
	} else {
		var endTime time.Time
		var endOK bool
		end, endTime, endOK = renderBound(segments[1])
		if startOK && endOK && startTime.After(endTime) {
			start, end = end, start
		}
	}

	expr := "([" + start + termSeparator + "TO" + termSeparator + end + "])"
	return SearchClause{Field: field, Expr: expr}, warnings, true, nil
}

// parseDateSegment tries each layout in order, returning the first match.
func parseDateSegment(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
