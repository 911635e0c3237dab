package suites

import (
	"context"
	"fmt"

	"pengine-e2e/commands"
	"pengine-e2e/expect"
	"pengine-e2e/fixtures"
	"pengine-e2e/reporter"
	"pengine-e2e/session"
	"pengine-e2e/toolkit"
)

func updateCurrentAdminSuite() reporter.Suite {
	token := func(ctx context.Context, env *toolkit.Env) (string, error) {
		if tok := env.Session.Get(session.CurrentAdmin); tok != "" {
			return tok, nil
		}
		return commands.LoginCurrentAdmin(ctx, env, nil)
	}

	patchCurrent := func(ctx context.Context, env *toolkit.Env, body any) (*toolkit.Response, error) {
		tok, err := token(ctx, env)
		if err != nil {
			return nil, err
		}
		return env.Client.Patch(ctx, toolkit.CurrentAdmin, tok, body)
	}

	// restoring reads the signed-in admin's profile, runs fn, and patches
	// the named fields back so the seeded identity stays intact for later
	// suites and runs.
	restoring := func(ctx context.Context, env *toolkit.Env, fields []string, fn func(before map[string]any) error) error {
		tok, err := token(ctx, env)
		if err != nil {
			return err
		}
		resp, err := env.Client.Get(ctx, toolkit.CurrentAdmin, tok)
		if err != nil {
			return err
		}
		before, err := resp.Map()
		if err != nil {
			return err
		}

		runErr := fn(before)

		revert := map[string]any{}
		for _, f := range fields {
			if v, ok := before[f]; ok {
				revert[f] = v
			}
		}
		if len(revert) > 0 {
			resp, err := patchCurrent(ctx, env, revert)
			if err == nil {
				err = expect.Status(resp, 200)
			}
			// A failed restore poisons every later case that signs in as
			// this identity, so it fails the case even when fn passed.
			if err != nil && runErr == nil {
				runErr = fmt.Errorf("restore fields %v: %w", fields, err)
			}
		}
		return runErr
	}

	mutated := func(name string, fields []string, body map[string]any, shape func(body map[string]any) expect.Matcher) reporter.Case {
		return reporter.Case{
			Name: name,
			Run: func(ctx context.Context, env *toolkit.Env) error {
				return restoring(ctx, env, fields, func(map[string]any) error {
					resp, err := patchCurrent(ctx, env, body)
					if err != nil {
						return err
					}
					return check(resp, 200, shape(body))
				})
			},
		}
	}

	invalid := func(name string, body map[string]any, shape expect.Matcher) reporter.Case {
		return reporter.Case{
			Name: name,
			Run: func(ctx context.Context, env *toolkit.Env) error {
				resp, err := patchCurrent(ctx, env, body)
				if err != nil {
					return err
				}
				return check(resp, 400, shape)
			},
		}
	}

	cases := []reporter.Case{
		{
			Name: "profile update with password rotation round trip",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				creds := fixtures.DefaultCurrentAdmin()
				rotated := "rotated-" + creds.Password

				return restoring(ctx, env, []string{"firstName", "lastName", "designation"}, func(map[string]any) error {
					body := map[string]any{
						"firstName":   "Rotated",
						"lastName":    "Identity",
						"designation": "release qa",
						"password":    rotated,
					}
					resp, err := patchCurrent(ctx, env, body)
					if err != nil {
						return err
					}

					// Undo the rotation even when a later step fails;
					// otherwise the shared identity stays locked out for
					// every suite and run after this one.
					restored := false
					defer func() {
						if restored {
							return
						}
						if _, err := commands.LoginCurrentAdmin(ctx, env, &toolkit.Credentials{
							Email: creds.Email, Password: rotated,
						}); err != nil {
							return
						}
						if resp, err := patchCurrent(ctx, env, map[string]any{"password": creds.Password}); err != nil || resp.Status != 200 {
							return
						}
						_, _ = commands.LoginCurrentAdmin(ctx, env, nil)
					}()

					if err := check(resp, 200, adminShape()); err != nil {
						return err
					}
					if err := check(resp, 200, expect.ObjectContaining(map[string]any{
						"firstName":   body["firstName"],
						"lastName":    body["lastName"],
						"designation": body["designation"],
					})); err != nil {
						return err
					}

					// The new password must sign in.
					if _, err := commands.LoginCurrentAdmin(ctx, env, &toolkit.Credentials{
						Email: creds.Email, Password: rotated,
					}); err != nil {
						return err
					}

					// Put the original password back and confirm it works.
					if resp, err = patchCurrent(ctx, env, map[string]any{"password": creds.Password}); err != nil {
						return err
					}
					if err := expect.Status(resp, 200); err != nil {
						return err
					}
					restored = true
					_, err = commands.LoginCurrentAdmin(ctx, env, nil)
					return err
				})
			},
		},

		mutated("rename first and last name", []string{"firstName", "lastName"}, map[string]any{
			"firstName": "Updated",
			"lastName":  "Name",
		}, func(body map[string]any) expect.Matcher {
			return expect.ObjectContaining(map[string]any{
				"firstName": body["firstName"],
				"lastName":  body["lastName"],
			})
		}),

		{
			Name: "replace email and restore it",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				return restoring(ctx, env, []string{"email"}, func(map[string]any) error {
					body := map[string]any{"email": "renamed-current-admin@example.com"}
					resp, err := patchCurrent(ctx, env, body)
					if err != nil {
						return err
					}
					return check(resp, 200, expect.ObjectContaining(map[string]any{"email": body["email"]}))
				})
			},
		},

		mutated("replace permissions", []string{"permissions"}, map[string]any{
			"permissions": []any{toolkit.PermAdminsRead, toolkit.PermSellersRead},
		}, func(body map[string]any) expect.Matcher {
			return expect.ObjectContaining(map[string]any{"permissions": body["permissions"]})
		}),

		mutated("deactivate via isActive", []string{"isActive"}, map[string]any{
			"isActive": false,
		}, func(body map[string]any) expect.Matcher {
			return expect.ObjectContaining(map[string]any{"isActive": false})
		}),

		{
			Name: "missing bearer token",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				resp, err := env.Client.Patch(ctx, toolkit.CurrentAdmin, "", map[string]any{"firstName": "Nobody"})
				if err != nil {
					return err
				}
				return check(resp, 401, unauthorizedContaining("Invalid access token"))
			},
		},
		{
			Name: "invalid bearer token",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				resp, err := env.Client.Patch(ctx, toolkit.CurrentAdmin, "invalid_token_12345", map[string]any{"firstName": "Nobody"})
				if err != nil {
					return err
				}
				return check(resp, 401, unauthorizedContaining("Invalid access token"))
			},
		},
		{
			Name: "token without permissions",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				limited, err := commands.CreateAdminWithoutPermissions(ctx, env)
				if err != nil {
					return err
				}
				defer func() { _, _ = commands.DeleteAdmin(ctx, env, limited.ID, "") }()

				resp, err := env.Client.Patch(ctx, toolkit.CurrentAdmin, limited.AccessToken, map[string]any{"firstName": "Nobody"})
				if err != nil {
					return err
				}
				return check(resp, 403, forbidden())
			},
		},

		invalid("empty firstName", map[string]any{"firstName": ""},
			badRequestContaining("firstName should not be empty")),
		invalid("empty lastName", map[string]any{"lastName": ""},
			badRequestContaining("lastName should not be empty")),
		invalid("null firstName", map[string]any{"firstName": nil},
			badRequestContaining("firstName must be a string", "firstName should not be empty")),
		invalid("null lastName", map[string]any{"lastName": nil},
			badRequestContaining("lastName must be a string", "lastName should not be empty")),
		invalid("unknown permission value", map[string]any{"permissions": []any{"invalid_permission"}},
			badRequestContaining(PermissionEnumMessage)),
		invalid("empty permissions array", map[string]any{"permissions": []any{}},
			badRequestContaining("permissions should not be empty")),
		invalid("permission all is rejected as a literal grant", map[string]any{"permissions": []any{"all"}},
			badRequestMsg("Invalid permission requested: all")),
		invalid("duplicate permission values", map[string]any{"permissions": []any{toolkit.PermAdminsRead, toolkit.PermAdminsRead}},
			badRequestContaining(PermissionUniqueMessage)),

		{
			Name: "empty body is a no-op partial update",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				resp, err := patchCurrent(ctx, env, map[string]any{})
				if err != nil {
					return err
				}
				return check(resp, 200, adminShape())
			},
		},

		mutated("partial update keeps untouched fields", []string{"firstName"}, map[string]any{
			"firstName": "Solo",
		}, func(body map[string]any) expect.Matcher {
			return expect.ObjectContaining(map[string]any{
				"firstName": body["firstName"],
				"lastName":  expect.NonEmptyString(),
				"email":     expect.NonEmptyString(),
			})
		}),

		// The replacement set keeps an admins permission: dropping both
		// admins_read and admins_write would lock this identity out of the
		// restore patch.
		mutated("partial update of permissions only", []string{"permissions"}, map[string]any{
			"permissions": []any{toolkit.PermAdminsRead, toolkit.PermSellersWrite},
		}, func(body map[string]any) expect.Matcher {
			return expect.ObjectContaining(map[string]any{"permissions": body["permissions"]})
		}),
	}

	return reporter.Suite{Name: "admin_update_current", Serial: true, Cases: cases}
}
