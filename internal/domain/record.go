package domain

// RecallRecord is one enforcement report projected onto the fixed 22-column
// schema. Every column is present on every record; a nil pointer is a null
// value (the source field was absent, empty, or unparseable). Field order is
// the output column order and is a contract: termination_date sits
// immediately after report_date even when the API omits it from an entire
// result set.
type RecallRecord struct {
	RecallNumber             *string `json:"recall_number"`
	RecallingFirm            *string `json:"recalling_firm"`
	RecallInitiationDate     *string `json:"recall_initiation_date"`
	ReportDate               *string `json:"report_date"`
	TerminationDate          *string `json:"termination_date"`
	CenterClassificationDate *string `json:"center_classification_date"`
	Classification           *string `json:"classification"`
	Status                   *string `json:"status"`
	VoluntaryMandated        *string `json:"voluntary_mandated"`
	ReasonForRecall          *string `json:"reason_for_recall"`
	City                     *string `json:"city"`
	State                    *string `json:"state"`
	Country                  *string `json:"country"`
	Address1                 *string `json:"address_1"`
	Address2                 *string `json:"address_2"`
	PostalCode               *string `json:"postal_code"`
	ProductType              *string `json:"product_type"`
	ProductDescription       *string `json:"product_description"`
	ProductQuantity          *string `json:"product_quantity"`
	CodeInfo                 *string `json:"code_info"`
	DistributionPattern      *string `json:"distribution_pattern"`
	EventID                  *string `json:"event_id"`
}

// Columns returns the 22 column names in output order.
func Columns() []string {
	return []string{
		"recall_number",
		"recalling_firm",
		"recall_initiation_date",
		"report_date",
		"termination_date",
		"center_classification_date",
		"classification",
		"status",
		"voluntary_mandated",
		"reason_for_recall",
		"city",
		"state",
		"country",
		"address_1",
		"address_2",
		"postal_code",
		"product_type",
		"product_description",
		"product_quantity",
		"code_info",
		"distribution_pattern",
		"event_id",
	}
}

// Values returns the record's cell values in column order. Nil entries are
// null cells.
func (r RecallRecord) Values() []*string {
	return []*string{
		r.RecallNumber,
		r.RecallingFirm,
		r.RecallInitiationDate,
		r.ReportDate,
		r.TerminationDate,
		r.CenterClassificationDate,
		r.Classification,
		r.Status,
		r.VoluntaryMandated,
		r.ReasonForRecall,
		r.City,
		r.State,
		r.Country,
		r.Address1,
		r.Address2,
		r.PostalCode,
		r.ProductType,
		r.ProductDescription,
		r.ProductQuantity,
		r.CodeInfo,
		r.DistributionPattern,
		r.EventID,
	}
}

// RawResponse is the classified outcome of one API request, before
// normalization. Results hold the heterogeneous JSON objects as decoded.
type RawResponse struct {
	// Total is meta.results.total: the true match count, which may exceed
	// len(Results) when the response is truncated by the limit.
	Total   int
	Results []map[string]any

	// NoMatches is set when the API answered with its recognized
	// "No matches found!" payload. Reported, not an error.
	NoMatches bool
}
