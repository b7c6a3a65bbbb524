package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citegraph/internal/edges"
	"github.com/pdiddy/citegraph/internal/opencitations"
	"github.com/pdiddy/citegraph/internal/secrets"
	"github.com/pdiddy/citegraph/internal/seeds"
	"github.com/pdiddy/citegraph/internal/store"
	"github.com/pdiddy/citegraph/pkg/types"
)

// defaultSeedBase is the published per-sub-area paper index.
const defaultSeedBase = "https://raw.githubusercontent.com/aserg-ufmg/CSIndex/refs/heads/master/data/"

var edgesCmd = &cobra.Command{
	Use:   "edges",
	Short: "Collect citation edges for the sub-area seed lists",
	Long: `Edges loads every sub-area seed CSV, queries the citation index for each
seed publication's outgoing references and incoming citations, and writes the
deduplicated directed edge list to CSV. A per-seed failure is reported and
skipped; the run continues.`,
	RunE: runEdges,
}

func init() {
	edgesCmd.Flags().String("seed-base", defaultSeedBase, "base URL or directory of per-area seed CSVs")
	edgesCmd.Flags().StringSlice("areas", nil, "sub-areas to collect (default: all configured)")
	edgesCmd.Flags().Int("seed-column", seeds.DefaultDOIColumn, "zero-based DOI column in the seed CSVs")
	edgesCmd.Flags().Int("workers", edges.DefaultWorkers, "concurrent seed collectors")
	edgesCmd.Flags().String("token", "", "citation index access token (default: .secrets/ or token.json)")
	edgesCmd.Flags().String("token-file", "token.json", "JSON file holding the access token")
	edgesCmd.Flags().Float64("rps", 10, "request rate limit against the citation index")
	edgesCmd.Flags().String("out", "citations_edgelist.csv", "edge list CSV output path")
	edgesCmd.Flags().String("report", "", "optional YAML run report path")
	edgesCmd.Flags().String("data-dir", "data", "run database directory")

	rootCmd.AddCommand(edgesCmd)
}

// edgesConfigFromFlags assembles the stage configuration from flag values,
// loaded secrets, and the legacy token file.
func edgesConfigFromFlags(cmd *cobra.Command) types.EdgesConfig {
	seedBase, _ := cmd.Flags().GetString("seed-base")
	seedColumn, _ := cmd.Flags().GetInt("seed-column")
	workers, _ := cmd.Flags().GetInt("workers")
	token, _ := cmd.Flags().GetString("token")
	tokenFile, _ := cmd.Flags().GetString("token-file")
	rps, _ := cmd.Flags().GetFloat64("rps")
	out, _ := cmd.Flags().GetString("out")
	reportPath, _ := cmd.Flags().GetString("report")

	token = secretDefault(secrets.KeyOpenCitationsToken, token)
	if token == "" {
		token = secrets.LoadTokenFile(tokenFile)
	}

	return types.EdgesConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:           defaultTimeout,
			UserAgent:         defaultUserAgent,
			RequestsPerSecond: rps,
		},
		SeedBaseURL: seedBase,
		SeedColumn:  seedColumn,
		Workers:     workers,
		Token:       token,
		OutputFile:  out,
		ReportFile:  reportPath,
	}
}

func runEdges(cmd *cobra.Command, args []string) error {
	areaNames, _ := cmd.Flags().GetStringSlice("areas")
	dataDir, _ := cmd.Flags().GetString("data-dir")

	areas, err := resolveAreas(areaNames)
	if err != nil {
		return err
	}

	cfg := edgesConfigFromFlags(cmd)

	loader := seeds.NewLoader(&http.Client{Timeout: cfg.Timeout}, cfg.SeedColumn, logger)
	seedList := loader.LoadAll(cmd.Context(), cfg.SeedBaseURL, areas)
	if len(seedList) == 0 {
		return fmt.Errorf("no seeds loaded from %s", cfg.SeedBaseURL)
	}
	logger.Info().Int("seeds", len(seedList)).Int("areas", len(areas)).Msg("seed loading complete")

	client := opencitations.NewClient(
		opencitations.WithToken(cfg.Token),
		opencitations.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		opencitations.WithRateLimit(cfg.RequestsPerSecond),
		opencitations.WithUserAgent(cfg.UserAgent),
		opencitations.WithLogger(logger),
	)
	collector := &edges.Collector{Client: client, Log: logger}

	start := time.Now()
	result := edges.Run(cmd.Context(), collector, seedList, cfg.Workers, os.Stdout)

	if err := edges.WriteCSV(cfg.OutputFile, result.Edges); err != nil {
		return err
	}

	db, err := store.NewStore(types.StoreConfig{DataDir: dataDir})
	if err != nil {
		return fmt.Errorf("opening run store: %w", err)
	}
	defer db.Close()

	inserted, err := db.SaveEdges(cmd.Context(), result.Edges)
	if err != nil {
		return fmt.Errorf("persisting edges: %w", err)
	}
	sum, err := db.Summarize(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "store: %d new edge(s), %d total\n", inserted, sum.Edges)

	if cfg.ReportFile != "" {
		names := make([]string, len(areas))
		for i, a := range areas {
			names[i] = string(a)
		}
		report := edges.Report{
			SeedBaseURL: cfg.SeedBaseURL,
			Areas:       names,
			Seeds:       len(seedList),
			Workers:     cfg.Workers,
			Summary: edges.RunStats{
				Processed:         result.Processed,
				Failed:            result.Failed,
				UniqueEdges:       len(result.Edges),
				DuplicatesRemoved: result.DuplicatesRemoved,
				Elapsed:           time.Since(start),
				Failures:          result.Failures,
			},
			Timestamp: time.Now().UTC(),
		}
		if err := edges.WriteReport(cfg.ReportFile, report); err != nil {
			return err
		}
	}

	if result.Failed > 0 {
		return fmt.Errorf("%d seed(s) failed collection", result.Failed)
	}
	return nil
}

// resolveAreas maps flag values to configured sub-areas, defaulting to all.
func resolveAreas(names []string) ([]types.SubArea, error) {
	if len(names) == 0 {
		return types.SubAreas, nil
	}
	areas := make([]types.SubArea, 0, len(names))
	for _, name := range names {
		area := types.SubArea(name)
		if !area.IsConfigured() {
			return nil, fmt.Errorf("unknown sub-area %q", name)
		}
		areas = append(areas, area)
	}
	return areas, nil
}
