package suites

import (
	"context"

	"pengine-e2e/commands"
	"pengine-e2e/expect"
	"pengine-e2e/fixtures"
	"pengine-e2e/reporter"
	"pengine-e2e/session"
	"pengine-e2e/toolkit"
)

var (
	oldPasswordMessages = []string{
		"oldPassword must be longer than or equal to 6 characters",
		"oldPassword must be a string",
		"oldPassword should not be empty",
	}
	newPasswordMessages = []string{
		"newPassword must be longer than or equal to 6 characters",
		"newPassword must be a string",
		"newPassword should not be empty",
	}
)

func updatePasswordSuite() reporter.Suite {
	changePassword := func(ctx context.Context, env *toolkit.Env, body any) (*toolkit.Response, error) {
		tok := env.Session.Get(session.CurrentAdmin)
		if tok == "" {
			var err error
			if tok, err = commands.LoginCurrentAdmin(ctx, env, nil); err != nil {
				return nil, err
			}
		}
		return env.Client.Patch(ctx, toolkit.CurrentAdminPassword, tok, body)
	}

	invalid := func(name string, body map[string]any, status int, shape expect.Matcher) reporter.Case {
		return reporter.Case{
			Name: name,
			Run: func(ctx context.Context, env *toolkit.Env) error {
				resp, err := changePassword(ctx, env, body)
				if err != nil {
					return err
				}
				return check(resp, status, shape)
			},
		}
	}

	cases := []reporter.Case{
		{
			Name: "rotate password and rotate it back",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				creds := fixtures.DefaultCurrentAdmin()
				rotated := "rotated-" + creds.Password

				resp, err := changePassword(ctx, env, map[string]any{
					"oldPassword": creds.Password,
					"newPassword": rotated,
				})
				if err != nil {
					return err
				}
				if err := expect.Status(resp, 200); err != nil {
					return err
				}

				// Undo the rotation even when a later step fails; a
				// half-rotated shared identity poisons every later run.
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
					_, _ = changePassword(ctx, env, map[string]any{
						"oldPassword": rotated,
						"newPassword": creds.Password,
					})
					_, _ = commands.LoginCurrentAdmin(ctx, env, nil)
				}()

				// The rotated password must sign in. This refreshes the
				// session token, which the rotate-back call then uses.
				if _, err := commands.LoginCurrentAdmin(ctx, env, &toolkit.Credentials{
					Email: creds.Email, Password: rotated,
				}); err != nil {
					return err
				}

				resp, err = changePassword(ctx, env, map[string]any{
					"oldPassword": rotated,
					"newPassword": creds.Password,
				})
				if err != nil {
					return err
				}
				if err := expect.Status(resp, 200); err != nil {
					return err
				}
				restored = true
				_, err = commands.LoginCurrentAdmin(ctx, env, nil)
				return err
			},
		},

		invalid("wrong old password", map[string]any{
			"oldPassword": "invalidPassword",
			"newPassword": "valid-new-password",
		}, 401, unauthorized("Incorrect old password")),

		invalid("missing old password", map[string]any{
			"newPassword": "valid-new-password",
		}, 400, badRequestContaining(oldPasswordMessages...)),

		invalid("missing new password", map[string]any{
			"oldPassword": fixtures.DefaultCurrentAdmin().Password,
		}, 400, badRequestContaining(newPasswordMessages...)),

		invalid("short new password", map[string]any{
			"oldPassword": fixtures.DefaultCurrentAdmin().Password,
			"newPassword": "123",
		}, 400, badRequestContaining("newPassword must be longer than or equal to 6 characters")),

		invalid("short old password", map[string]any{
			"oldPassword": "123",
			"newPassword": "valid-new-password",
		}, 400, badRequestContaining("oldPassword must be longer than or equal to 6 characters")),

		invalid("null old password", map[string]any{
			"oldPassword": nil,
			"newPassword": "valid-new-password",
		}, 400, badRequestContaining(oldPasswordMessages...)),
	}

	return reporter.Suite{Name: "admin_password", Serial: true, Cases: cases}
}
