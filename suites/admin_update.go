package suites

import (
	"context"

	"pengine-e2e/commands"
	"pengine-e2e/expect"
	"pengine-e2e/reporter"
	"pengine-e2e/session"
	"pengine-e2e/toolkit"
)

func updateAdminSuite() reporter.Suite {
	patch := func(ctx context.Context, env *toolkit.Env, adminID string, body any) (*toolkit.Response, error) {
		token := env.Session.Get(session.SuperAdmin)
		if token == "" {
			var err error
			if token, err = commands.LoginSuperAdmin(ctx, env); err != nil {
				return nil, err
			}
		}
		return env.Client.Patch(ctx, toolkit.PathID(toolkit.Admins, adminID), token, body)
	}

	// withAdmin creates a throwaway admin, runs fn against it, and deletes
	// it afterwards regardless of outcome.
	withAdmin := func(ctx context.Context, env *toolkit.Env, fn func(admin *toolkit.Admin) error) error {
		admin, err := commands.CreateAdmin(ctx, env, nil)
		if err != nil {
			return err
		}
		defer func() { _, _ = commands.DeleteAdmin(ctx, env, admin.ID, "") }()
		return fn(admin)
	}

	// patched asserts a partial update lands with status 200 and the echoed
	// body matching shape.
	patched := func(name string, body map[string]any, shape func(body map[string]any) expect.Matcher) reporter.Case {
		return reporter.Case{
			Name: name,
			Run: func(ctx context.Context, env *toolkit.Env) error {
				return withAdmin(ctx, env, func(admin *toolkit.Admin) error {
					resp, err := patch(ctx, env, admin.ID, body)
					if err != nil {
						return err
					}
					return check(resp, 200, shape(body))
				})
			},
		}
	}

	// invalid asserts a partial update is rejected with the given envelope.
	invalid := func(name string, body map[string]any, status int, shape expect.Matcher) reporter.Case {
		return reporter.Case{
			Name: name,
			Run: func(ctx context.Context, env *toolkit.Env) error {
				return withAdmin(ctx, env, func(admin *toolkit.Admin) error {
					resp, err := patch(ctx, env, admin.ID, body)
					if err != nil {
						return err
					}
					return check(resp, status, shape)
				})
			},
		}
	}

	cases := []reporter.Case{
		{
			Name: "full update with a regular admin token",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				adminToken, err := commands.LoginCurrentAdmin(ctx, env, nil)
				if err != nil {
					return err
				}
				return withAdmin(ctx, env, func(admin *toolkit.Admin) error {
					body := map[string]any{
						"firstName":   "Renamed",
						"lastName":    "Fixture",
						"designation": "principal qa",
						"permissions": []any{toolkit.PermAdminsRead, toolkit.PermSellersRead},
					}
					resp, err := env.Client.Patch(ctx, toolkit.PathID(toolkit.Admins, admin.ID), adminToken, body)
					if err != nil {
						return err
					}
					if err := check(resp, 200, adminShape()); err != nil {
						return err
					}
					return check(resp, 200, expect.ObjectContaining(map[string]any{
						"firstName":   body["firstName"],
						"lastName":    body["lastName"],
						"designation": body["designation"],
					}))
				})
			},
		},

		patched("rename first and last name", map[string]any{
			"firstName": "Updated",
			"lastName":  "Name",
		}, func(body map[string]any) expect.Matcher {
			return expect.ObjectContaining(map[string]any{
				"firstName": body["firstName"],
				"lastName":  body["lastName"],
			})
		}),

		patched("replace email", map[string]any{
			"email": "renamed-admin@example.com",
		}, func(body map[string]any) expect.Matcher {
			return expect.ObjectContaining(map[string]any{"email": body["email"]})
		}),

		patched("replace permissions", map[string]any{
			"permissions": []any{toolkit.PermAdminsRead, toolkit.PermSellersRead},
		}, func(body map[string]any) expect.Matcher {
			return expect.ObjectContaining(map[string]any{"permissions": body["permissions"]})
		}),

		patched("deactivate via isActive", map[string]any{
			"isActive": false,
		}, func(body map[string]any) expect.Matcher {
			return expect.ObjectContaining(map[string]any{"isActive": false})
		}),

		{
			Name: "malformed id is not found",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				resp, err := patch(ctx, env, "invalid-id-format", map[string]any{"firstName": "Nobody"})
				if err != nil {
					return err
				}
				return check(resp, 404, notFoundContaining("Admin not found"))
			},
		},
		{
			Name: "well formed but unknown id is not found",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				resp, err := patch(ctx, env, "nonexistent123456789012345", map[string]any{"firstName": "Nobody"})
				if err != nil {
					return err
				}
				return check(resp, 404, notFoundContaining("Admin not found"))
			},
		},

		{
			Name: "missing bearer token",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				return withAdmin(ctx, env, func(admin *toolkit.Admin) error {
					resp, err := env.Client.Patch(ctx, toolkit.PathID(toolkit.Admins, admin.ID), "", map[string]any{"firstName": "Nobody"})
					if err != nil {
						return err
					}
					return check(resp, 401, unauthorizedContaining("Invalid access token"))
				})
			},
		},
		{
			Name: "invalid bearer token",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				return withAdmin(ctx, env, func(admin *toolkit.Admin) error {
					resp, err := env.Client.Patch(ctx, toolkit.PathID(toolkit.Admins, admin.ID), "invalid_token_12345", map[string]any{"firstName": "Nobody"})
					if err != nil {
						return err
					}
					return check(resp, 401, unauthorizedContaining("Invalid access token"))
				})
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

				return withAdmin(ctx, env, func(admin *toolkit.Admin) error {
					resp, err := env.Client.Patch(ctx, toolkit.PathID(toolkit.Admins, admin.ID), limited.AccessToken, map[string]any{"firstName": "Nobody"})
					if err != nil {
						return err
					}
					return check(resp, 403, forbidden())
				})
			},
		},

		invalid("empty firstName", map[string]any{"firstName": ""}, 400,
			badRequestContaining("firstName should not be empty")),
		invalid("empty lastName", map[string]any{"lastName": ""}, 400,
			badRequestContaining("lastName should not be empty")),
		invalid("null firstName", map[string]any{"firstName": nil}, 400,
			badRequestContaining("firstName must be a string", "firstName should not be empty")),
		invalid("null lastName", map[string]any{"lastName": nil}, 400,
			badRequestContaining("lastName must be a string", "lastName should not be empty")),
		invalid("unknown permission value", map[string]any{"permissions": []any{"invalid_permission"}}, 400,
			badRequestContaining(PermissionEnumMessage)),
		invalid("empty permissions array", map[string]any{"permissions": []any{}}, 400,
			badRequestContaining("permissions should not be empty")),
		invalid("permission all is rejected as a literal grant", map[string]any{"permissions": []any{"all"}}, 400,
			badRequestMsg("Invalid permission requested: all")),
		invalid("duplicate permission values", map[string]any{"permissions": []any{toolkit.PermAdminsRead, toolkit.PermAdminsRead}}, 400,
			badRequestContaining(PermissionUniqueMessage)),

		{
			Name: "empty body is a no-op partial update",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				return withAdmin(ctx, env, func(admin *toolkit.Admin) error {
					resp, err := patch(ctx, env, admin.ID, map[string]any{})
					if err != nil {
						return err
					}
					return check(resp, 200, adminShape())
				})
			},
		},

		{
			Name: "empty id segment",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				resp, err := patch(ctx, env, "", map[string]any{"firstName": "Nobody"})
				if err != nil {
					return err
				}
				return expect.Status(resp, 404)
			},
		},
		{
			Name: "path traversal characters in id",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				resp, err := patch(ctx, env, "../../../admin", map[string]any{"firstName": "Nobody"})
				if err != nil {
					return err
				}
				return check(resp, 400, expect.ObjectContaining(map[string]any{
					"error":      "Bad Request",
					"statusCode": 400,
				}))
			},
		},

		patched("partial update keeps untouched fields", map[string]any{
			"firstName": "Solo",
		}, func(body map[string]any) expect.Matcher {
			return expect.ObjectContaining(map[string]any{"firstName": body["firstName"]})
		}),

		{
			Name: "partial update of permissions only",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				return withAdmin(ctx, env, func(admin *toolkit.Admin) error {
					body := map[string]any{"permissions": []any{toolkit.PermSellersRead, toolkit.PermSellersWrite}}
					resp, err := patch(ctx, env, admin.ID, body)
					if err != nil {
						return err
					}
					if err := check(resp, 200, expect.ObjectContaining(map[string]any{
						"permissions": body["permissions"],
						"lastName":    admin.LastName,
						"email":       admin.Email,
					})); err != nil {
						return err
					}
					return nil
				})
			},
		},
	}

	return reporter.Suite{Name: "admin_update", Serial: true, Cases: cases}
}
