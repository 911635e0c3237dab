package suites

import (
	"context"

	"pengine-e2e/fixtures"
	"pengine-e2e/reporter"
	"pengine-e2e/toolkit"
)

// The bootstrap endpoint only works on a virgin deployment. Against a
// provisioned backend every attempt must be rejected, whatever the payload.
func superAdminBootstrapSuite() reporter.Suite {
	attempt := func(ctx context.Context, env *toolkit.Env, scenario string) error {
		resp, err := env.Client.Post(ctx, toolkit.SuperAdminCreate, "", fixtures.SuperAdmin(scenario))
		if err != nil {
			return err
		}
		return check(resp, 400, badRequestMsg("Super admin already exists"))
	}

	return reporter.Suite{
		Name: "admin_super_bootstrap",
		Cases: []reporter.Case{
			{
				Name: "bootstrap with the existing identity",
				Run: func(ctx context.Context, env *toolkit.Env) error {
					return attempt(ctx, env, "existing_super_admin")
				},
			},
			{
				Name: "bootstrap with a fresh identity",
				Run: func(ctx context.Context, env *toolkit.Env) error {
					return attempt(ctx, env, "another_identity")
				},
			},
		},
	}
}
