package suites

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"pengine-e2e/commands"
	"pengine-e2e/expect"
	"pengine-e2e/fixtures"
	"pengine-e2e/reporter"
	"pengine-e2e/session"
	"pengine-e2e/toolkit"
)

var (
	firstNameMessages = []string{
		"firstName must be a string",
		"firstName should not be empty",
	}
	lastNameMessages = []string{
		"lastName must be a string",
		"lastName should not be empty",
	}
	adminEmailMessages = []string{
		"email must be an email",
		"email must be a string",
		"email should not be empty",
	}
	adminPasswordMessages = []string{
		"password must be longer than or equal to 6 characters",
		"password must be a string",
		"password should not be empty",
	}
)

// randomAdminMap is the map form of a valid creation payload, for scenarios
// that need to null or drop individual keys.
func randomAdminMap() map[string]any {
	tag := strings.Split(uuid.NewString(), "-")[0]
	return map[string]any{
		"firstName":   "E2e" + tag,
		"lastName":    "Fixture",
		"email":       fmt.Sprintf("e2e-admin-%s@example.com", uuid.NewString()),
		"password":    "pw-" + tag + "-secret",
		"designation": "qa fixture",
		"permissions": []any{toolkit.PermAdminsRead, toolkit.PermAdminsWrite},
		"isActive":    true,
	}
}

func createAdminSuite() reporter.Suite {
	ensureSuper := func(ctx context.Context, env *toolkit.Env) (string, error) {
		if tok := env.Session.Get(session.SuperAdmin); tok != "" {
			return tok, nil
		}
		return commands.LoginSuperAdmin(ctx, env)
	}

	create := func(ctx context.Context, env *toolkit.Env, payload any) (*toolkit.Response, error) {
		token, err := ensureSuper(ctx, env)
		if err != nil {
			return nil, err
		}
		return env.Client.Post(ctx, toolkit.Admins, token, payload)
	}

	// rejected builds the common negative case: send payload, expect the
	// given envelope.
	rejected := func(name string, payload func() map[string]any, status int, shape expect.Matcher) reporter.Case {
		return reporter.Case{
			Name: name,
			Run: func(ctx context.Context, env *toolkit.Env) error {
				resp, err := create(ctx, env, payload())
				if err != nil {
					return err
				}
				return check(resp, status, shape)
			},
		}
	}

	// accepted sends a payload the backend must take, then deletes the
	// created record so runs stay repeatable.
	accepted := func(name string, payload func() map[string]any) reporter.Case {
		return reporter.Case{
			Name: name,
			Run: func(ctx context.Context, env *toolkit.Env) error {
				resp, err := create(ctx, env, payload())
				if err != nil {
					return err
				}
				if err := check(resp, 200, adminShape()); err != nil {
					return err
				}
				var admin toolkit.Admin
				if err := resp.JSON(&admin); err != nil {
					return err
				}
				_, err = commands.DeleteAdmin(ctx, env, admin.ID, "")
				return err
			},
		}
	}

	baseline := func() map[string]any { return fixtures.CreateAdmin("all_fields") }

	cases := []reporter.Case{
		{
			Name: "create admin with valid payload",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				admin, err := commands.CreateAdmin(ctx, env, nil)
				if err != nil {
					return err
				}
				_, err = commands.DeleteAdmin(ctx, env, admin.ID, "")
				return err
			},
		},

		rejected("missing firstName", func() map[string]any {
			return fixtures.Without(baseline(), "firstName")
		}, 400, badRequest(firstNameMessages...)),

		rejected("missing lastName", func() map[string]any {
			return fixtures.Without(baseline(), "lastName")
		}, 400, badRequest(lastNameMessages...)),

		rejected("missing email", func() map[string]any {
			return fixtures.Without(baseline(), "email")
		}, 400, badRequest(adminEmailMessages...)),

		rejected("missing permissions", func() map[string]any {
			return fixtures.Without(baseline(), "permissions")
		}, 400, badRequest(
			PermissionEnumMessage,
			PermissionUniqueMessage,
			"permissions should not be empty",
			"permissions must be an array",
		)),

		rejected("missing password", func() map[string]any {
			return fixtures.Without(baseline(), "password")
		}, 400, badRequest(adminPasswordMessages...)),

		rejected("empty firstName and lastName together", func() map[string]any {
			return fixtures.CreateAdmin("empty_first_and_last_name")
		}, 400, badRequest(
			"firstName should not be empty",
			"lastName should not be empty",
		)),

		rejected("permission all is rejected as a literal grant", func() map[string]any {
			return fixtures.CreateAdmin("permit_with_all")
		}, 400, badRequestMsg("Invalid permission requested: all")),

		rejected("unknown permission value", func() map[string]any {
			return fixtures.CreateAdmin("invalid_permission")
		}, 400, badRequest(PermissionEnumMessage)),

		rejected("null firstName", func() map[string]any {
			return fixtures.With(baseline(), map[string]any{"firstName": nil})
		}, 400, badRequest(firstNameMessages...)),

		rejected("null lastName", func() map[string]any {
			return fixtures.With(baseline(), map[string]any{"lastName": nil})
		}, 400, badRequest(lastNameMessages...)),

		rejected("null email", func() map[string]any {
			return fixtures.With(baseline(), map[string]any{"email": nil})
		}, 400, badRequest(adminEmailMessages...)),

		accepted("null designation is accepted", func() map[string]any {
			return fixtures.With(randomAdminMap(), map[string]any{"designation": nil})
		}),

		rejected("null password", func() map[string]any {
			return fixtures.With(baseline(), map[string]any{"password": nil})
		}, 400, badRequest(adminPasswordMessages...)),

		rejected("null permission element", func() map[string]any {
			return fixtures.With(baseline(), map[string]any{"permissions": []any{nil}})
		}, 400, badRequest(PermissionEnumMessage)),

		accepted("null isActive is accepted", func() map[string]any {
			return fixtures.With(randomAdminMap(), map[string]any{"isActive": nil})
		}),

		rejected("empty firstName", func() map[string]any {
			return fixtures.CreateAdmin("empty_first_name")
		}, 400, badRequest("firstName should not be empty")),

		rejected("empty lastName", func() map[string]any {
			return fixtures.CreateAdmin("empty_last_name")
		}, 400, badRequest("lastName should not be empty")),

		rejected("empty email", func() map[string]any {
			return fixtures.CreateAdmin("empty_email")
		}, 400, badRequest(
			"email must be an email",
			"email should not be empty",
		)),

		accepted("empty designation is accepted", func() map[string]any {
			return fixtures.With(randomAdminMap(), map[string]any{"designation": ""})
		}),

		rejected("empty password", func() map[string]any {
			return fixtures.CreateAdmin("empty_password")
		}, 400, badRequest(
			"password must be longer than or equal to 6 characters",
			"password should not be empty",
		)),

		rejected("empty permission element", func() map[string]any {
			return fixtures.CreateAdmin("empty_permission")
		}, 400, badRequest(PermissionEnumMessage)),

		rejected("numeric password type", func() map[string]any {
			return fixtures.CreateAdmin("invalid_password_type")
		}, 400, badRequest(
			"password must be longer than or equal to 6 and shorter than or equal to 100 characters",
			"password must be a string",
		)),

		rejected("short password", func() map[string]any {
			return fixtures.CreateAdmin("short_password")
		}, 400, badRequest("password must be longer than or equal to 6 characters")),

		rejected("malformed email", func() map[string]any {
			return fixtures.CreateAdmin("invalid_email")
		}, 400, badRequest("email must be an email")),

		{
			Name: "duplicate email conflicts",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				admin, err := commands.CreateAdmin(ctx, env, nil)
				if err != nil {
					return err
				}
				defer func() { _, _ = commands.DeleteAdmin(ctx, env, admin.ID, "") }()

				dup := fixtures.With(randomAdminMap(), map[string]any{"email": admin.Email})
				resp, err := create(ctx, env, dup)
				if err != nil {
					return err
				}
				return check(resp, 409, conflict("An admin already exists with this email"))
			},
		},

		accepted("unknown extra field is ignored", func() map[string]any {
			return fixtures.With(randomAdminMap(), map[string]any{"extraField": "extraField"})
		}),

		rejected("empty body reports the full message union", func() map[string]any {
			return map[string]any{}
		}, 400, badRequestContaining(
			"firstName must be a string",
			"firstName should not be empty",
			"lastName must be a string",
			"lastName should not be empty",
			"email must be an email",
			"email must be a string",
			"email should not be empty",
			"password must be longer than or equal to 6 characters",
			"password must be a string",
			"password should not be empty",
			PermissionEnumMessage,
			PermissionUniqueMessage,
			"permissions should not be empty",
		)),

		{
			Name: "invalid bearer token",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				if _, err := ensureSuper(ctx, env); err != nil {
					return err
				}
				restore := env.Session.Swap(session.SuperAdmin, "invalid_token_12345")
				defer restore()

				resp, err := env.Client.Post(ctx, toolkit.Admins, env.Session.Get(session.SuperAdmin), baseline())
				if err != nil {
					return err
				}
				return check(resp, 401, unauthorized("Invalid access token"))
			},
		},
	}

	return reporter.Suite{Name: "admin_create", Serial: true, Cases: cases}
}
