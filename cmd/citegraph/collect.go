package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/pdiddy/citegraph/internal/collect"
	"github.com/pdiddy/citegraph/internal/openalex"
	"github.com/pdiddy/citegraph/internal/secrets"
	"github.com/pdiddy/citegraph/internal/store"
	"github.com/pdiddy/citegraph/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "citegraph/0.1"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Fetch publication records from the works API",
	Long: `Collect queries the OpenAlex works API with the given filter, walks every
result page, and writes the normalized publication records to CSV and the run
database. With --cited-by each work is additionally enriched with the IDs of
the works that cite it.`,
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().String("filter", "", "works API filter expression (required)")
	collectCmd.Flags().StringSlice("select", []string{
		"id", "doi", "title", "primary_topic",
		"referenced_works_count", "referenced_works", "cited_by_count", "cited_by_api_url",
	}, "fields to request")
	collectCmd.Flags().String("sort", "publication_year:desc", "result ordering")
	collectCmd.Flags().Int("per-page", 25, "results per page")
	collectCmd.Flags().String("email", "", "contact email for the polite pool")
	collectCmd.Flags().Bool("browser", false, "fetch pages through a headless browser instead of plain HTTP")
	collectCmd.Flags().Bool("cited-by", false, "enrich each work with its citing work IDs")
	collectCmd.Flags().Duration("cited-by-delay", time.Second, "pause between cited-by lookups")
	collectCmd.Flags().Float64("rps", 5, "request rate limit against the API")
	collectCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	collectCmd.Flags().String("out", "openalex_works.csv", "publications CSV output path")
	collectCmd.Flags().String("data-dir", "data", "run database directory")

	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	filter, _ := cmd.Flags().GetString("filter")
	if filter == "" {
		return fmt.Errorf("--filter is required")
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	selectFields, _ := cmd.Flags().GetStringSlice("select")
	sortOrder, _ := cmd.Flags().GetString("sort")
	perPage, _ := cmd.Flags().GetInt("per-page")
	email, _ := cmd.Flags().GetString("email")
	useBrowser, _ := cmd.Flags().GetBool("browser")
	citedBy, _ := cmd.Flags().GetBool("cited-by")
	citedByDelay, _ := cmd.Flags().GetDuration("cited-by-delay")
	rps, _ := cmd.Flags().GetFloat64("rps")
	out, _ := cmd.Flags().GetString("out")
	dataDir, _ := cmd.Flags().GetString("data-dir")

	cfg := types.CollectConfig{
		Filter:       filter,
		Select:       selectFields,
		Sort:         sortOrder,
		PerPage:      perPage,
		Email:        secretDefault(secrets.KeyOpenAlexEmail, email),
		UseBrowser:   useBrowser,
		CitedBy:      citedBy,
		CitedByDelay: citedByDelay,
		OutputFile:   out,
	}

	var fetcher openalex.PageFetcher
	if cfg.UseBrowser {
		bf, err := openalex.NewBrowserFetcher(cmd.Context())
		if err != nil {
			return fmt.Errorf("starting browser: %w", err)
		}
		defer bf.Close()
		fetcher = bf
	} else {
		fetcher = &openalex.HTTPFetcher{
			Client:    &http.Client{Timeout: timeout},
			UserAgent: defaultUserAgent,
			Limiter:   rate.NewLimiter(rate.Limit(rps), 1),
		}
	}

	db, err := store.NewStore(types.StoreConfig{DataDir: dataDir})
	if err != nil {
		return fmt.Errorf("opening run store: %w", err)
	}
	defer db.Close()

	stage := &collect.Stage{
		Client: &openalex.Client{Fetcher: fetcher, Email: cfg.Email, Log: logger},
		Store:  db,
		Log:    logger,
	}

	res, err := stage.Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "collected %d publication(s)", res.Publications)
	if cfg.CitedBy {
		fmt.Fprintf(os.Stdout, ", %d fully enriched", res.Enriched)
	}
	fmt.Fprintf(os.Stdout, " -> %s\n", res.OutputFile)
	return nil
}
