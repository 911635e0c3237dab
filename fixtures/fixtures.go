// Package fixtures holds the literal request payloads the suites send,
// keyed by scenario name. The original harness indexed anonymous arrays
// (jsonData[7]), which broke silently whenever the array was reordered;
// named records make every lookup self-describing.
package fixtures

import (
	"embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"pengine-e2e/toolkit"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Table is one fixture file: scenario name to request payload. Payloads stay
// generic maps so scenarios can express absent keys, explicit nulls, and
// wrong-typed values, all of which the validator suites need.
type Table map[string]map[string]any

var tables = map[string]Table{}

func init() {
	for _, name := range []string{"admin_login", "create_admin", "seller_signin", "super_admin"} {
		raw, err := dataFS.ReadFile("data/" + name + ".yaml")
		if err != nil {
			panic(fmt.Sprintf("fixtures: embedded table %s missing: %v", name, err))
		}
		var t Table
		if err := yaml.Unmarshal(raw, &t); err != nil {
			panic(fmt.Sprintf("fixtures: table %s malformed: %v", name, err))
		}
		tables[name] = t
	}
}

// Get returns a deep copy of one scenario payload. Panics on unknown names:
// a typo in a fixture reference is a harness bug, not a test outcome.
func Get(table, scenario string) map[string]any {
	t, ok := tables[table]
	if !ok {
		panic(fmt.Sprintf("fixtures: unknown table %q", table))
	}
	payload, ok := t[scenario]
	if !ok {
		panic(fmt.Sprintf("fixtures: table %q has no scenario %q (have: %v)", table, scenario, scenarioNames(t)))
	}
	return deepCopy(payload)
}

// AdminLogin returns an admin signin payload by scenario name.
func AdminLogin(scenario string) map[string]any { return Get("admin_login", scenario) }

// CreateAdmin returns an admin creation payload by scenario name.
func CreateAdmin(scenario string) map[string]any { return Get("create_admin", scenario) }

// SellerSignin returns a seller signin payload by scenario name.
func SellerSignin(scenario string) map[string]any { return Get("seller_signin", scenario) }

// SuperAdmin returns a super admin bootstrap payload by scenario name.
func SuperAdmin(scenario string) map[string]any { return Get("super_admin", scenario) }

// Without returns a copy of payload with the named keys removed, for
// missing-field scenarios derived from a valid baseline.
func Without(payload map[string]any, keys ...string) map[string]any {
	out := deepCopy(payload)
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// With returns a copy of payload with overrides applied. A nil override
// value becomes an explicit JSON null on the wire.
func With(payload map[string]any, overrides map[string]any) map[string]any {
	out := deepCopy(payload)
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Default identities for runs that do not override them via environment.

// DefaultSuperAdmin is the provisioned super admin.
func DefaultSuperAdmin() toolkit.Credentials {
	return credsFrom(AdminLogin("valid_credentials"))
}

// DefaultCurrentAdmin is the reusable non-super admin identity.
func DefaultCurrentAdmin() toolkit.Credentials {
	return credsFrom(AdminLogin("current_admin"))
}

// DefaultSeller is the provisioned seller identity.
func DefaultSeller() toolkit.Credentials {
	return credsFrom(SellerSignin("valid_credentials"))
}

// DefaultSellerStoreID is the store the default seller is staff of.
const DefaultSellerStoreID = "gsso0e05ljljvf3jafnzfd51"

func credsFrom(payload map[string]any) toolkit.Credentials {
	email, _ := payload["email"].(string)
	password, _ := payload["password"].(string)
	return toolkit.Credentials{Email: email, Password: password}
}

func deepCopy(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return deepCopy(t)
	case []any:
		cp := make([]any, len(t))
		for i := range t {
			cp[i] = copyValue(t[i])
		}
		return cp
	default:
		return v
	}
}

func scenarioNames(t Table) []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
