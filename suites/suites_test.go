package suites_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pengine-e2e/fixtures"
	"pengine-e2e/reporter"
	"pengine-e2e/suites"
	"pengine-e2e/toolkit"
	"pengine-e2e/twin"
)

func twinConfig(t *testing.T, baseURL string) toolkit.HarnessConfig {
	t.Helper()
	return toolkit.HarnessConfig{
		BaseURL:       baseURL,
		Timeout:       10 * time.Second,
		Workers:       4,
		ReportPath:    filepath.Join(t.TempDir(), "report.json"),
		SuperAdmin:    fixtures.DefaultSuperAdmin(),
		CurrentAdmin:  fixtures.DefaultCurrentAdmin(),
		Seller:        fixtures.DefaultSeller(),
		SellerStoreID: fixtures.DefaultSellerStoreID,
	}
}

// TestAllSuitesAgainstTwin runs the full registry against the in-process
// backend. Every case in every suite must pass; a failure here means a suite
// and the backend contract it encodes have drifted apart.
func TestAllSuitesAgainstTwin(t *testing.T) {
	srv := httptest.NewServer(twin.New().Handler())
	defer srv.Close()

	all := suites.All()
	require.NotEmpty(t, all)

	report := reporter.Run(context.Background(), all, twinConfig(t, srv.URL))

	for _, r := range report.Results {
		if r.Passed {
			continue
		}
		t.Errorf("%s / %s failed (%s): %s", r.Suite, r.Case, r.Failure, r.Error)
	}
	assert.Equal(t, report.Summary.Total, report.Summary.Passed)
	assert.Zero(t, report.Summary.Failed)
}

// TestMutatingSuitesAreRepeatable runs the suites that mutate the shared
// seeded identities twice against one backend instance. The second run is
// only as green as the first if every case restores what it touched,
// including permissions: a replacement set without an admins permission
// would lock the current admin out of its own restore patch.
func TestMutatingSuitesAreRepeatable(t *testing.T) {
	srv := httptest.NewServer(twin.New().Handler())
	defer srv.Close()
	cfg := twinConfig(t, srv.URL)

	mutating := map[string]bool{
		"admin_update_current": true,
		"admin_password":       true,
		"seller_current":       true,
	}
	var picked []reporter.Suite
	for _, s := range suites.All() {
		if mutating[s.Name] {
			picked = append(picked, s)
		}
	}
	require.Len(t, picked, 3)

	for run := 1; run <= 2; run++ {
		report := reporter.Run(context.Background(), picked, cfg)
		for _, r := range report.Results {
			if !r.Passed {
				t.Errorf("run %d: %s / %s failed (%s): %s", run, r.Suite, r.Case, r.Failure, r.Error)
			}
		}
		require.Zero(t, report.Summary.Failed, "run %d left shared identities corrupted", run)
	}
}

// TestRegistryShape pins down the registry invariants the runner depends on:
// unique suite names, no empty suites, and serial marking for every suite
// that mutates shared identities.
func TestRegistryShape(t *testing.T) {
	all := suites.All()

	seen := map[string]bool{}
	for _, s := range all {
		assert.False(t, seen[s.Name], "duplicate suite name %q", s.Name)
		seen[s.Name] = true
		assert.NotEmpty(t, s.Cases, "suite %q has no cases", s.Name)

		names := map[string]bool{}
		for _, c := range s.Cases {
			assert.False(t, names[c.Name], "suite %q duplicates case %q", s.Name, c.Name)
			names[c.Name] = true
			require.NotNil(t, c.Run, "suite %q case %q has no run func", s.Name, c.Name)
		}
	}

	serial := map[string]bool{}
	for _, s := range all {
		if s.Serial {
			serial[s.Name] = true
		}
	}
	for _, name := range []string{"admin_create", "admin_update", "admin_update_current", "admin_password", "admin_delete", "seller_current", "auth_seller_store_signin"} {
		assert.True(t, serial[name], "suite %q mutates shared identities and must be serial", name)
	}
}
