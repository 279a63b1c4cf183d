package domain

import (
	"slices"
	"strings"
	"time"
)

// sourceDateLayouts are the textual forms date columns arrive in. The API
// documents YYYYMMDD; the dashed forms appear in older records.
var sourceDateLayouts = []string{"20060102", "2006-01-02", "2006/01/02"}

// canonicalDate is the output form of the four date columns.
const canonicalDate = "2006-01-02"

// Normalize flattens the heterogeneous result objects into the dense
// 22-column record set: every column present on every record, absent fields
// and empty strings as null, the four date columns canonicalized to
// YYYY-MM-DD (unparseable values become null), sorted by report_date
// descending then city ascending, stable, nulls last.
func Normalize(results []map[string]any) []RecallRecord {
	records := make([]RecallRecord, len(results))
	for i, item := range results {
		records[i] = projectRecord(item)
	}

	slices.SortStableFunc(records, compareRecords)
	return records
}

// projectRecord maps one raw result object onto the schema. Missing fields
// stay nil by construction, which is what makes the wholly-absent
// termination_date column come out as a null column in its fixed position.
func projectRecord(item map[string]any) RecallRecord {
	return RecallRecord{
		RecallNumber:             textField(item, "recall_number"),
		RecallingFirm:            textField(item, "recalling_firm"),
		RecallInitiationDate:     dateField(item, "recall_initiation_date"),
		ReportDate:               dateField(item, "report_date"),
		TerminationDate:          dateField(item, "termination_date"),
		CenterClassificationDate: dateField(item, "center_classification_date"),
		Classification:           textField(item, "classification"),
		Status:                   textField(item, "status"),
		VoluntaryMandated:        textField(item, "voluntary_mandated"),
		ReasonForRecall:          textField(item, "reason_for_recall"),
		City:                     textField(item, "city"),
		State:                    textField(item, "state"),
		Country:                  textField(item, "country"),
		Address1:                 textField(item, "address_1"),
		Address2:                 textField(item, "address_2"),
		PostalCode:               textField(item, "postal_code"),
		ProductType:              textField(item, "product_type"),
		ProductDescription:       textField(item, "product_description"),
		ProductQuantity:          textField(item, "product_quantity"),
		CodeInfo:                 textField(item, "code_info"),
		DistributionPattern:      textField(item, "distribution_pattern"),
		EventID:                  textField(item, "event_id"),
	}
}

// textField extracts a string column; absent, non-string, and empty-string
// values are null.
func textField(item map[string]any, key string) *string {
	v, ok := item[key]
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

// dateField extracts a date column and canonicalizes it to YYYY-MM-DD.
// Values that parse under no source layout are null.
func dateField(item map[string]any, key string) *string {
	raw := textField(item, key)
	if raw == nil {
		return nil
	}
	for _, layout := range sourceDateLayouts {
		if t, err := time.Parse(layout, *raw); err == nil {
			canonical := t.Format(canonicalDate)
			return &canonical
		}
	}
	return nil
}

// compareRecords orders by report_date descending, then city ascending.
// Nulls sort last under both keys so incomplete records trail complete ones
// regardless of direction.
func compareRecords(a, b RecallRecord) int {
	if c := compareDescNullsLast(a.ReportDate, b.ReportDate); c != 0 {
		return c
	}
	return compareNullsLast(a.City, b.City)
}

// compareDescNullsLast is a descending string comparison where nil still
// sorts after any value.
func compareDescNullsLast(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return strings.Compare(*b, *a)
	}
}

// compareNullsLast is an ascending string comparison where nil sorts after
// any value.
func compareNullsLast(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return strings.Compare(*a, *b)
	}
}
