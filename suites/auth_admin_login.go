package suites

import (
	"context"

	"pengine-e2e/commands"
	"pengine-e2e/fixtures"
	"pengine-e2e/reporter"
	"pengine-e2e/toolkit"
)

func adminLoginSuite() reporter.Suite {
	signin := func(ctx context.Context, env *toolkit.Env, payload map[string]any) (*toolkit.Response, error) {
		return env.Client.Post(ctx, toolkit.AdminLogin, "", payload)
	}

	return reporter.Suite{
		Name: "auth_admin_login",
		Cases: []reporter.Case{
			{
				Name: "valid email and password",
				Run: func(ctx context.Context, env *toolkit.Env) error {
					_, err := commands.LoginSuperAdmin(ctx, env)
					return err
				},
			},
			{
				Name: "valid email with short password",
				Run: func(ctx context.Context, env *toolkit.Env) error {
					resp, err := signin(ctx, env, fixtures.AdminLogin("short_password"))
					if err != nil {
						return err
					}
					return check(resp, 400, badRequestContaining(
						"password must be longer than or equal to 6 characters",
					))
				},
			},
			{
				Name: "unknown credentials",
				Run: func(ctx context.Context, env *toolkit.Env) error {
					resp, err := signin(ctx, env, fixtures.AdminLogin("invalid_credentials"))
					if err != nil {
						return err
					}
					return check(resp, 401, unauthorized("Incorrect email or password"))
				},
			},
			{
				Name: "malformed email with valid password",
				Run: func(ctx context.Context, env *toolkit.Env) error {
					resp, err := signin(ctx, env, fixtures.AdminLogin("invalid_email_format"))
					if err != nil {
						return err
					}
					return check(resp, 400, badRequestContaining("email must be an email"))
				},
			},
			{
				Name: "valid email with incorrect password",
				Run: func(ctx context.Context, env *toolkit.Env) error {
					resp, err := signin(ctx, env, fixtures.AdminLogin("valid_email_wrong_password"))
					if err != nil {
						return err
					}
					return check(resp, 401, unauthorized("Incorrect email or password"))
				},
			},
			{
				Name: "missing password",
				Run: func(ctx context.Context, env *toolkit.Env) error {
					resp, err := signin(ctx, env, fixtures.AdminLogin("missing_password"))
					if err != nil {
						return err
					}
					return check(resp, 400, badRequest(
						"password must be longer than or equal to 6 characters",
						"password must be a string",
						"password should not be empty",
					))
				},
			},
			{
				Name: "missing email",
				Run: func(ctx context.Context, env *toolkit.Env) error {
					resp, err := signin(ctx, env, fixtures.AdminLogin("missing_email"))
					if err != nil {
						return err
					}
					return check(resp, 400, badRequest(
						"email must be an email",
						"email must be a string",
						"email should not be empty",
					))
				},
			},
			{
				Name: "empty request body reports the full message union",
				Run: func(ctx context.Context, env *toolkit.Env) error {
					resp, err := signin(ctx, env, map[string]any{})
					if err != nil {
						return err
					}
					return check(resp, 400, badRequest(
						"email must be an email",
						"email must be a string",
						"email should not be empty",
						"password must be longer than or equal to 6 characters",
						"password must be a string",
						"password should not be empty",
					))
				},
			},
			{
				Name: "sql injection input is rejected as malformed email",
				Run: func(ctx context.Context, env *toolkit.Env) error {
					resp, err := signin(ctx, env, fixtures.AdminLogin("sql_injection"))
					if err != nil {
						return err
					}
					return check(resp, 400, badRequestContaining("email must be an email"))
				},
			},
		},
	}
}
