// Package search composes the query-building, transport, and normalization
// stages into the two public entry points: location-oriented and
// date-oriented enforcement report searches.
package search

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/recall-search-service/internal/domain"
	"github.com/couchcryptid/recall-search-service/internal/observability"
)

// Fetcher executes one classified request against the enforcement API.
// Implemented by the openfda adapter.
type Fetcher interface {
	Fetch(ctx context.Context, spec domain.QuerySpec) (domain.RawResponse, error)
}

// Service is a state-free composition: each call builds its clauses, makes
// exactly one fetch, and normalizes the payload. Nothing is shared between
// calls beyond the HTTP client's connection pool.
type Service struct {
	fetcher Fetcher
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewService creates a search service over the given fetcher.
func NewService(fetcher Fetcher, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		fetcher: fetcher,
		logger:  logger,
		metrics: metrics,
	}
}

// LocationParams are the filters of the location-oriented entry point.
// Every field is optional; comma-separated lists become disjunctions.
type LocationParams struct {
	City                string
	Country             string
	DistributionPattern string
	RecallingFirm       string
	State               string
	Status              string

	// Mode is the join mode combining all active clauses ("AND"/"OR",
	// case-insensitive; empty means AND).
	Mode string

	// Limit is the maximum record count (0 means the default 1000).
	Limit int
}

// DateParams are the filters of the date-oriented entry point. Date fields
// accept a single point or an "A to B" range in a variety of human formats.
type DateParams struct {
	RecallInitiationDate     string
	CenterClassificationDate string
	ReportDate               string
	TerminationDate          string
	ProductDescription       string
	RecallingFirm            string
	Status                   string

	Mode  string
	Limit int
}

// Result is the normalized outcome of one query. The caller owns it
// entirely; no shared mutable state persists between calls.
type Result struct {
	Records   []domain.RecallRecord `json:"records"`
	Total     int                   `json:"total"`
	NoMatches bool                  `json:"no_matches"`
	Warnings  []domain.Warning      `json:"warnings,omitempty"`
}

// QueryByLocation searches by place and firm attributes. State tokens are
// normalized to USPS abbreviations first; tokens matching no state are
// dropped from the clause and reported in a warning.
func (s *Service) QueryByLocation(ctx context.Context, p LocationParams) (Result, error) {
	var warnings []domain.Warning

	state, dropped := domain.NormalizeStateTokens(p.State)
	if len(dropped) > 0 {
		warnings = append(warnings, domain.StateTokenWarning(dropped))
	}

	// Clause declaration order is fixed per entry point, not input order.
	var clauses []domain.SearchClause
	for _, f := range []struct{ field, value string }{
		{"city", p.City},
		{"country", p.Country},
		{"distribution_pattern", p.DistributionPattern},
		{"recalling_firm", p.RecallingFirm},
		{"state", state},
		{"status", p.Status},
	} {
		if clause, ok := domain.EncodeParameter(f.field, f.value); ok {
			clauses = append(clauses, clause)
		}
	}

	spec, specWarnings, err := domain.NewQuerySpec(clauses, p.Mode, p.Limit)
	if err != nil {
		return Result{}, err
	}
	warnings = append(warnings, specWarnings...)

	return s.execute(ctx, "location", spec, warnings)
}

// QueryByDate searches by the four report date fields plus product and firm
// attributes. All validation happens before the network call.
func (s *Service) QueryByDate(ctx context.Context, p DateParams) (Result, error) {
	var warnings []domain.Warning
	var clauses []domain.SearchClause

	for _, f := range []struct{ field, value string }{
		{"recall_initiation_date", p.RecallInitiationDate},
		{"center_classification_date", p.CenterClassificationDate},
		{"report_date", p.ReportDate},
		{"termination_date", p.TerminationDate},
	} {
		clause, dateWarnings, ok, err := domain.ResolveDateRange(f.field, f.value)
		if err != nil {
			return Result{}, err
		}
		warnings = append(warnings, dateWarnings...)
		if ok {
			clauses = append(clauses, clause)
		}
	}

	for _, f := range []struct{ field, value string }{
		{"product_description", p.ProductDescription},
		{"recalling_firm", p.RecallingFirm},
		{"status", p.Status},
	} {
		if clause, ok := domain.EncodeParameter(f.field, f.value); ok {
			clauses = append(clauses, clause)
		}
	}

	spec, specWarnings, err := domain.NewQuerySpec(clauses, p.Mode, p.Limit)
	if err != nil {
		return Result{}, err
	}
	warnings = append(warnings, specWarnings...)

	return s.execute(ctx, "date", spec, warnings)
}

// execute performs the fetch and normalization shared by both entry points.
func (s *Service) execute(ctx context.Context, entrypoint string, spec domain.QuerySpec, warnings []domain.Warning) (Result, error) {
	resp, err := s.fetcher.Fetch(ctx, spec)
	if err != nil {
		s.metrics.QueriesTotal.WithLabelValues(entrypoint, "error").Inc()
		return Result{}, err
	}

	if resp.NoMatches {
		s.metrics.QueriesTotal.WithLabelValues(entrypoint, "empty").Inc()
		s.logger.Info("query matched nothing",
			"entrypoint", entrypoint,
			"search", spec.SearchExpression(),
		)
		return Result{Records: []domain.RecallRecord{}, NoMatches: true, Warnings: warnings}, nil
	}

	records := domain.Normalize(resp.Results)
	if resp.Total > len(records) {
		warnings = append(warnings, domain.TruncationWarning(resp.Total, len(records)))
	}

	for _, w := range warnings {
		s.metrics.QueryWarnings.WithLabelValues(string(w.Code)).Inc()
	}
	s.metrics.QueriesTotal.WithLabelValues(entrypoint, "success").Inc()
	s.metrics.ResultsReturned.Observe(float64(len(records)))

	s.logger.Info("query completed",
		"entrypoint", entrypoint,
		"search", spec.SearchExpression(),
		"returned", len(records),
		"total", resp.Total,
		"warnings", len(warnings),
	)

	return Result{Records: records, Total: resp.Total, Warnings: warnings}, nil
}
