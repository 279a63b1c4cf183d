package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Projection(t *testing.T) {
	t.Run("all columns present even when source is sparse", func(t *testing.T) {
		records := Normalize([]map[string]any{
			{
				"recall_number":  "F-0123-2023",
				"recalling_firm": "Acme Foods",
				"report_date":    "20230105",
				"city":           "Ames",
			},
		})

		require.Len(t, records, 1)
		r := records[0]
		assert.Equal(t, "F-0123-2023", *r.RecallNumber)
		assert.Equal(t, "Acme Foods", *r.RecallingFirm)
		assert.Equal(t, "2023-01-05", *r.ReportDate)
		assert.Equal(t, "Ames", *r.City)
		assert.Nil(t, r.TerminationDate)
		assert.Nil(t, r.Classification)
		assert.Nil(t, r.DistributionPattern)
		assert.Nil(t, r.EventID)
		assert.Len(t, r.Values(), 22)
	})

	t.Run("empty strings become null", func(t *testing.T) {
		records := Normalize([]map[string]any{
			{"city": "", "state": "IA", "code_info": ""},
		})

		require.Len(t, records, 1)
		assert.Nil(t, records[0].City)
		assert.Nil(t, records[0].CodeInfo)
		assert.Equal(t, "IA", *records[0].State)
	})

	t.Run("non-string values become null", func(t *testing.T) {
		records := Normalize([]map[string]any{
			{"city": 42, "event_id": "67890"},
		})

		require.Len(t, records, 1)
		assert.Nil(t, records[0].City)
		assert.Equal(t, "67890", *records[0].EventID)
	})

	t.Run("date columns canonicalize to YYYY-MM-DD", func(t *testing.T) {
		records := Normalize([]map[string]any{
			{
				"recall_initiation_date":     "20221215",
				"report_date":                "2023-01-05",
				"center_classification_date": "2023/01/20",
				"termination_date":           "not-a-date",
			},
		})

		require.Len(t, records, 1)
		r := records[0]
		assert.Equal(t, "2022-12-15", *r.RecallInitiationDate)
		assert.Equal(t, "2023-01-05", *r.ReportDate)
		assert.Equal(t, "2023-01-20", *r.CenterClassificationDate)
		assert.Nil(t, r.TerminationDate)
	})
}

// When the API omits termination_date from every record, the output still
// carries the column as null, immediately after report_date.
func TestNormalize_SynthesizedTerminationColumn(t *testing.T) {
	records := Normalize([]map[string]any{
		{"recall_number": "F-1", "report_date": "20230105"},
		{"recall_number": "F-2", "report_date": "20230106"},
	})

	require.Len(t, records, 2)
	for _, r := range records {
		assert.Nil(t, r.TerminationDate)
	}

	cols := Columns()
	reportIdx := -1
	for i, c := range cols {
		if c == "report_date" {
			reportIdx = i
		}
	}
	require.NotEqual(t, -1, reportIdx)
	assert.Equal(t, "termination_date", cols[reportIdx+1])
}

func TestNormalize_Sort(t *testing.T) {
	records := Normalize([]map[string]any{
		{"recall_number": "F-1", "report_date": "20230110", "city": "Boone"},
		{"recall_number": "F-2", "report_date": "20230120", "city": "Ames"},
		{"recall_number": "F-3", "report_date": "20230110", "city": "Ames"},
		{"recall_number": "F-4", "city": "Cedar Rapids"},
		{"recall_number": "F-5", "report_date": "20230110"},
	})

	require.Len(t, records, 5)

	order := make([]string, len(records))
	for i, r := range records {
		order[i] = *r.RecallNumber
	}

	// Newest report first; ties broken by city ascending; null report_date
	// last; within a date, null city after named cities.
	assert.Equal(t, []string{"F-2", "F-3", "F-1", "F-5", "F-4"}, order)
}

func TestNormalize_SortIsStable(t *testing.T) {
	records := Normalize([]map[string]any{
		{"recall_number": "F-1", "report_date": "20230110", "city": "Ames", "event_id": "1"},
		{"recall_number": "F-2", "report_date": "20230110", "city": "Ames", "event_id": "2"},
	})

	require.Len(t, records, 2)
	assert.Equal(t, "F-1", *records[0].RecallNumber)
	assert.Equal(t, "F-2", *records[1].RecallNumber)
}

func TestColumns_Count(t *testing.T) {
	assert.Len(t, Columns(), 22)
}
