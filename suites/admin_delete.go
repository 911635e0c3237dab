package suites

import (
	"context"

	"pengine-e2e/commands"
	"pengine-e2e/expect"
	"pengine-e2e/reporter"
	"pengine-e2e/session"
	"pengine-e2e/toolkit"
)

func deleteAdminSuite() reporter.Suite {
	del := func(ctx context.Context, env *toolkit.Env, adminID string) (*toolkit.Response, error) {
		tok := env.Session.Get(session.SuperAdmin)
		if tok == "" {
			var err error
			if tok, err = commands.LoginSuperAdmin(ctx, env); err != nil {
				return nil, err
			}
		}
		return env.Client.Delete(ctx, toolkit.PathID(toolkit.Admins, adminID), tok)
	}

	notFound := func(name, adminID string) reporter.Case {
		return reporter.Case{
			Name: name,
			Run: func(ctx context.Context, env *toolkit.Env) error {
				resp, err := del(ctx, env, adminID)
				if err != nil {
					return err
				}
				return check(resp, 404, notFoundContaining("Admin not found"))
			},
		}
	}

	cases := []reporter.Case{
		{
			Name: "delete a freshly created admin",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				admin, err := commands.CreateAdmin(ctx, env, nil)
				if err != nil {
					return err
				}
				_, err = commands.DeleteAdmin(ctx, env, admin.ID, "")
				return err
			},
		},

		notFound("malformed id is not found", "invalid-id-format"),
		notFound("well formed but unknown id is not found", "nonexistent123456789012345"),

		{
			Name: "missing bearer token",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				admin, err := commands.CreateAdmin(ctx, env, nil)
				if err != nil {
					return err
				}
				defer func() { _, _ = commands.DeleteAdmin(ctx, env, admin.ID, "") }()

				resp, err := env.Client.Delete(ctx, toolkit.PathID(toolkit.Admins, admin.ID), "")
				if err != nil {
					return err
				}
				return check(resp, 401, unauthorizedContaining("Invalid access token"))
			},
		},
		{
			Name: "invalid bearer token",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				admin, err := commands.CreateAdmin(ctx, env, nil)
				if err != nil {
					return err
				}
				defer func() { _, _ = commands.DeleteAdmin(ctx, env, admin.ID, "") }()

				resp, err := env.Client.Delete(ctx, toolkit.PathID(toolkit.Admins, admin.ID), "invalid_token_12345")
				if err != nil {
					return err
				}
				return check(resp, 401, unauthorizedContaining("Invalid access token"))
			},
		},
		{
			Name: "token without admins_write permission",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				limited, err := commands.CreateAdminWithoutPermissions(ctx, env)
				if err != nil {
					return err
				}
				defer func() { _, _ = commands.DeleteAdmin(ctx, env, limited.ID, "") }()

				resp, err := env.Client.Delete(ctx, toolkit.PathID(toolkit.Admins, limited.ID), limited.AccessToken)
				if err != nil {
					return err
				}
				return check(resp, 403, forbidden())
			},
		},

		{
			Name: "empty id segment falls through routing",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				resp, err := del(ctx, env, "")
				if err != nil {
					return err
				}
				return check(resp, 404, expect.ObjectContaining(map[string]any{
					"message":    expect.StringContaining("Cannot DELETE"),
					"error":      "Not Found",
					"statusCode": 404,
				}))
			},
		},

		notFound("literal null id is not found", "null"),

		{
			Name: "path traversal characters in id",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				resp, err := del(ctx, env, "../../../admin")
				if err != nil {
					return err
				}
				return check(resp, 400, expect.ObjectContaining(map[string]any{
					"error":      "Bad Request",
					"statusCode": 400,
				}))
			},
		},

		{
			Name: "deleting twice is not found",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				admin, err := commands.CreateAdmin(ctx, env, nil)
				if err != nil {
					return err
				}
				if _, err := commands.DeleteAdmin(ctx, env, admin.ID, ""); err != nil {
					return err
				}
				resp, err := del(ctx, env, admin.ID)
				if err != nil {
					return err
				}
				return check(resp, 404, notFoundContaining("Admin not found"))
			},
		},
	}

	return reporter.Suite{Name: "admin_delete", Serial: true, Cases: cases}
}
