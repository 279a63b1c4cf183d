package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/recall-search-service/internal/adapter/httpapi"
	kafkaadapter "github.com/couchcryptid/recall-search-service/internal/adapter/kafka"
	"github.com/couchcryptid/recall-search-service/internal/adapter/openfda"
	"github.com/couchcryptid/recall-search-service/internal/config"
	"github.com/couchcryptid/recall-search-service/internal/domain"
	"github.com/couchcryptid/recall-search-service/internal/feed"
	"github.com/couchcryptid/recall-search-service/internal/observability"
	"github.com/couchcryptid/recall-search-service/internal/search"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "recalls",
		Short:         "Query and stream FDA food enforcement reports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(queryCommand(), serveCommand(), feedCommand())
	return root
}

// newService wires the openFDA client and search service from config.
func newService(ctx context.Context) (*search.Service, *config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := openfda.NewClient(cfg.APIKey, cfg.BaseURL, cfg.RequestTimeout, logger, metrics)
	return search.NewService(client, logger, metrics), cfg, nil
}

func queryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a one-shot search against the enforcement API",
	}

	var (
		mode   string
		limit  int
		format string
	)
	cmd.PersistentFlags().StringVar(&mode, "mode", "AND", "join mode for active filters (AND or OR)")
	cmd.PersistentFlags().IntVar(&limit, "limit", 0, "maximum records to return (default 1000, max 1000)")
	cmd.PersistentFlags().StringVar(&format, "format", "json", "output format (json or csv)")

	locationCmd := &cobra.Command{
		Use:   "location",
		Short: "Search by where a recall happened",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			city, _ := flags.GetString("city")
			country, _ := flags.GetString("country")
			distPattern, _ := flags.GetString("distribution-pattern")
			firm, _ := flags.GetString("recalling-firm")
			state, _ := flags.GetString("state")
			status, _ := flags.GetString("status")

			result, err := svc.QueryByLocation(cmd.Context(), search.LocationParams{
				City:                city,
				Country:             country,
				DistributionPattern: distPattern,
				RecallingFirm:       firm,
				State:               state,
				Status:              status,
				Mode:                mode,
				Limit:               limit,
			})
			if err != nil {
				return err
			}
			return renderResult(cmd.OutOrStdout(), result, format)
		},
	}
	locationCmd.Flags().String("city", "", "city name")
	locationCmd.Flags().String("country", "", "country name")
	locationCmd.Flags().String("distribution-pattern", "", "distribution pattern text")
	locationCmd.Flags().String("recalling-firm", "", "recalling firm name")
	locationCmd.Flags().String("state", "", "state names or USPS codes, comma-separated")
	locationCmd.Flags().String("status", "", "recall status (Ongoing, Completed, Terminated, Pending)")

	dateCmd := &cobra.Command{
		Use:   "date",
		Short: "Search by when a recall happened",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			initiation, _ := flags.GetString("recall-initiation-date")
			classification, _ := flags.GetString("center-classification-date")
			report, _ := flags.GetString("report-date")
			termination, _ := flags.GetString("termination-date")
			description, _ := flags.GetString("product-description")
			firm, _ := flags.GetString("recalling-firm")
			status, _ := flags.GetString("status")

			result, err := svc.QueryByDate(cmd.Context(), search.DateParams{
				RecallInitiationDate:     initiation,
				CenterClassificationDate: classification,
				ReportDate:               report,
				TerminationDate:          termination,
				ProductDescription:       description,
				RecallingFirm:            firm,
				Status:                   status,
				Mode:                     mode,
				Limit:                    limit,
			})
			if err != nil {
				return err
			}
			return renderResult(cmd.OutOrStdout(), result, format)
		},
	}
	dateCmd.Flags().String("recall-initiation-date", "", `date or range, e.g. "2023-01-01 to 2023-05-01"`)
	dateCmd.Flags().String("center-classification-date", "", "date or range")
	dateCmd.Flags().String("report-date", "", `date or range, e.g. "January 2023 to May 2023"`)
	dateCmd.Flags().String("termination-date", "", "date or range")
	dateCmd.Flags().String("product-description", "", "product description text")
	dateCmd.Flags().String("recalling-firm", "", "recalling firm name")
	dateCmd.Flags().String("status", "", "recall status")

	cmd.AddCommand(locationCmd, dateCmd)
	return cmd
}

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP search API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			svc, cfg, err := newService(ctx)
			if err != nil {
				return err
			}
			logger := observability.NewLogger(cfg)

			srv := httpapi.NewServer(cfg.HTTPAddr, svc, nil, logger)

			errCh := make(chan error, 1)
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return fmt.Errorf("http server error: %w", err)
			case <-ctx.Done():
			}
			logger.Info("shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("http server shutdown error", "error", err)
			}
			logger.Info("shutdown complete")
			return nil
		},
	}
}

func feedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "feed",
		Short: "Poll recent reports and publish them to Kafka",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := config.Load(ctx)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := cfg.ValidateFeed(); err != nil {
				return err
			}

			logger := observability.NewLogger(cfg)
			metrics := observability.NewMetrics()

			client := openfda.NewClient(cfg.APIKey, cfg.BaseURL, cfg.RequestTimeout, logger, metrics)
			svc := search.NewService(client, logger, metrics)
			writer := kafkaadapter.NewWriter(cfg, logger)

			f := feed.New(svc, writer, logger, metrics, clockwork.NewRealClock(), cfg.FeedInterval, cfg.FeedWindowDays)

			srv := httpapi.NewServer(cfg.HTTPAddr, svc, f, logger)

			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("http server error", "error", err)
				}
			}()

			go func() {
				if err := f.Run(ctx); err != nil {
					logger.Error("feed error", "error", err)
				}
			}()

			<-ctx.Done()
			logger.Info("shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("http server shutdown error", "error", err)
			}
			if err := writer.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
			logger.Info("shutdown complete")
			return nil
		},
	}
}

func renderResult(w io.Writer, result search.Result, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "csv":
		return renderCSV(w, result.Records)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// renderCSV writes records in the fixed column order, with empty cells for
// null fields.
func renderCSV(w io.Writer, records []domain.RecallRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(domain.Columns()); err != nil {
		return err
	}
	row := make([]string, len(domain.Columns()))
	for _, record := range records {
		for i, v := range record.Values() {
			if v == nil {
				row[i] = ""
			} else {
				row[i] = *v
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
