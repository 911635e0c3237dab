package reporter

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"pengine-e2e/toolkit"
)

// Execute runs the given suites (optionally filtered by name) against the
// configured backend, persists report.json, and returns the report. A
// non-nil error means the harness itself could not run; failed cases are
// reported through the summary, not the error.
func Execute(ctx context.Context, suites []Suite, filter string, cfg toolkit.HarnessConfig) (toolkit.RunReport, error) {
	if err := cfg.Validate(); err != nil {
		return toolkit.RunReport{}, err
	}

	if filter != "" {
		suites = filterSuites(suites, filter)
		if len(suites) == 0 {
			return toolkit.RunReport{}, fmt.Errorf("no suite matches filter %q", filter)
		}
		log.Printf("reporter.execute: filter=%q matched=%d", filter, len(suites))
	}

	report := Run(ctx, suites, cfg)
	report.Persisted = false

	path, err := filepath.Abs(cfg.ReportPath)
	if err != nil {
		return report, fmt.Errorf("resolve report path: %w", err)
	}
	if err := writeJSON(path, report); err != nil {
		return report, fmt.Errorf("persist report json: %w", err)
	}
	report.Persisted = true
	log.Printf("reporter.execute: report persisted path=%s", path)

	return report, nil
}

func filterSuites(suites []Suite, filter string) []Suite {
	var out []Suite
	for _, s := range suites {
		if strings.Contains(s.Name, filter) {
			out = append(out, s)
		}
	}
	return out
}

func writeJSON(path string, data any) error {
	log.Printf("reporter.write_json: writing file=%s", path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("prepare output directory for %q: %w", path, err)
	}
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json %q: %w", path, err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write json file %q: %w", path, err)
	}
	return nil
}
