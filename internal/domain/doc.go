// Package domain models openFDA food enforcement report data and the query
// grammar used to search it.
//
// # Data Source
//
// Enforcement reports are published by the openFDA API at
// https://api.fda.gov/food/enforcement.json, one record per product-level
// recall notice. Records that share a single recall action carry the same
// event_id. The API is searched with a field-qualified boolean expression
// passed in the "search" query parameter and returns at most "limit" records
// per request (1..1000).
//
// # Query Grammar
//
// A search clause scopes a filter to one field:
//
//	city:("Ames")
//	state:("IA"+OR+"TX")
//	report_date:([20230101+TO+20230501])
//
// Spaces are transmitted as "+" so that multi-word terms stay a single token
// ("New York" -> "New+York"). Clauses are combined with a single join mode
// ("+AND+" or "+OR+") applied uniformly; the grammar has no operator
// precedence or per-pair operators.
//
// # Date Conventions
//
// The API stores all four date columns (recall_initiation_date, report_date,
// center_classification_date, termination_date) as compact YYYYMMDD strings.
// Range queries use inclusive [start TO end] bounds in the same form. User
// input is accepted in a range of human formats (see [ResolveDateRange]);
// a single date is closed against "today" at call time.
//
// # Sparse Columns
//
// Result objects are heterogeneous: a field absent from a record is simply
// missing from its JSON object, and termination_date is omitted from the
// entire result set when no returned record has one. Normalization projects
// every record onto the full 22-column schema ([RecallRecord]); absent fields
// and empty strings both become null, and the four date columns are
// canonicalized to YYYY-MM-DD.
//
// # Classification And Status
//
// classification is the FDA hazard class ("Class I" most serious through
// "Class III"); status is the recall lifecycle state ("Ongoing",
// "Completed", "Terminated", "Pending"); voluntary_mandated records who
// initiated the action. These values are passed through as-is: the package
// normalizes type and format, never business semantics.
package domain
