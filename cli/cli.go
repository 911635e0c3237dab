package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"pengine-e2e/fixtures"
	"pengine-e2e/reporter"
	"pengine-e2e/suites"
	"pengine-e2e/toolkit"
)

var rootCommand = &cobra.Command{
	Use:   "pengine-e2e",
	Short: "End to end API test harness for the storefront backend",
	Long:  "Drives the deployed storefront backend through its admin, seller, and auth endpoints, asserts response envelopes, and persists a JSON run report.",
	Run:   func(cmd *cobra.Command, args []string) { _ = cmd.Help() },
}

var (
	flagBaseURL string
	flagSuite   string
	flagWorkers int
	flagReport  string
)

var runSuites = &cobra.Command{
	Use:   "run",
	Short: "Executes the test suites against the configured backend",
	Long:  "Loads configuration from the environment (and .env when present), applies flag overrides, runs every registered suite, and writes the run report. Exits non-zero when any case fails.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := toolkit.LoadConfig()
		if err != nil {
			log.Printf("cli.run: config load failed error=%v", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		applyOverrides(&cfg)

		log.Printf("cli.run: starting base=%s suite_filter=%q workers=%d", cfg.BaseURL, flagSuite, cfg.Workers)
		report, err := reporter.Execute(cmd.Context(), suites.All(), flagSuite, cfg)
		if err != nil {
			log.Printf("cli.run: failed error=%v", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		log.Printf("cli.run: completed total=%d passed=%d failed=%d",
			report.Summary.Total, report.Summary.Passed, report.Summary.Failed)
		if report.Summary.Failed > 0 {
			os.Exit(1)
		}
	},
}

// applyOverrides layers flag values over the environment config and fills
// credential gaps with the fixture defaults, so a run against a freshly
// provisioned backend works with just --base-url.
func applyOverrides(cfg *toolkit.HarnessConfig) {
	if flagBaseURL != "" {
		cfg.BaseURL = flagBaseURL
	}
	if flagWorkers > 0 {
		cfg.Workers = flagWorkers
	}
	if flagReport != "" {
		cfg.ReportPath = flagReport
	}
	if cfg.SuperAdmin.Email == "" {
		cfg.SuperAdmin = fixtures.DefaultSuperAdmin()
	}
	if cfg.CurrentAdmin.Email == "" {
		cfg.CurrentAdmin = fixtures.DefaultCurrentAdmin()
	}
	if cfg.Seller.Email == "" {
		cfg.Seller = fixtures.DefaultSeller()
	}
	if cfg.SellerStoreID == "" {
		cfg.SellerStoreID = fixtures.DefaultSellerStoreID
	}
}

func init() {
	runSuites.Flags().StringVar(&flagBaseURL, "base-url", "", "backend base URL (overrides E2E_BASE_URL)")
	runSuites.Flags().StringVar(&flagSuite, "suite", "", "run only suites whose name contains this substring")
	runSuites.Flags().IntVar(&flagWorkers, "workers", 0, "parallel suite workers (overrides E2E_WORKERS)")
	runSuites.Flags().StringVar(&flagReport, "report", "", "report output path (overrides the default ./report.json)")
	rootCommand.AddCommand(runSuites)
}

func Execute() {
	log.Printf("cli.execute: running root command")
	if err := rootCommand.Execute(); err != nil {
		log.Printf("cli.execute: root command failed error=%v", err)
		fmt.Fprintf(os.Stderr, "An error occurred initializing main CLI execution.")
		os.Exit(1)
	}
	log.Printf("cli.execute: root command completed")
}
