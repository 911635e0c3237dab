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

func sellerSignupSuite() reporter.Suite {
	return reporter.Suite{
		Name: "auth_seller_signup",
		Cases: []reporter.Case{
			{
				Name: "signup with valid names email and password",
				Run: func(ctx context.Context, env *toolkit.Env) error {
					tag := strings.Split(uuid.NewString(), "-")[0]
					payload := map[string]any{
						"firstName": "E2e" + tag,
						"lastName":  "Seller",
						"email":     fmt.Sprintf("e2e-seller-%s@example.com", uuid.NewString()),
						"password":  "pw-" + tag + "-secret",
					}
					resp, err := env.Client.Post(ctx, toolkit.SellerSignup, "", payload)
					if err != nil {
						return err
					}
					if err := check(resp, 200, expect.ObjectContaining(map[string]any{
						"id":                expect.NonEmptyString(),
						"firstName":         payload["firstName"],
						"lastName":          payload["lastName"],
						"email":             payload["email"],
						"isProfileComplete": false,
						"isActive":          true,
						"createdAt":         expect.ISOTimestamp(),
						"updatedAt":         expect.ISOTimestamp(),
					})); err != nil {
						return err
					}
					return nil
				},
			},
			{
				Name: "signup with short password",
				Run: func(ctx context.Context, env *toolkit.Env) error {
					payload := map[string]any{
						"firstName": "E2e",
						"lastName":  "Seller",
						"email":     fmt.Sprintf("e2e-seller-%s@example.com", uuid.NewString()),
						"password":  "123",
					}
					resp, err := env.Client.Post(ctx, toolkit.SellerSignup, "", payload)
					if err != nil {
						return err
					}
					return check(resp, 400, badRequestContaining(
						"password must be longer than or equal to 6 characters",
					))
				},
			},
		},
	}
}

func sellerSigninSuite() reporter.Suite {
	signin := func(ctx context.Context, env *toolkit.Env, payload map[string]any) (*toolkit.Response, error) {
		return env.Client.Post(ctx, toolkit.SellerSignin, "", payload)
	}

	// The seller signin validator reports the 100-character cap as its own
	// line, unlike the admin login validator.
	passwordMessages := []string{
		"password must be shorter than or equal to 100 characters",
		"password must be longer than or equal to 6 characters",
		"password must be a string",
		"password should not be empty",
	}
	emailMessages := []string{
		"email must be an email",
		"email must be a string",
		"email should not be empty",
	}

	cases := []reporter.Case{
		{
			Name: "valid seller credentials",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				_, err := commands.SellerSignIn(ctx, env, nil)
				return err
			},
		},
		{
			Name: "unknown email with valid password",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				resp, err := signin(ctx, env, fixtures.SellerSignin("invalid_email"))
				if err != nil {
					return err
				}
				return check(resp, 401, unauthorized("Incorrect email or password"))
			},
		},
		{
			Name: "valid email with wrong password",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				resp, err := signin(ctx, env, fixtures.SellerSignin("invalid_password"))
				if err != nil {
					return err
				}
				return check(resp, 401, unauthorized("Incorrect email or password"))
			},
		},
		{
			Name: "missing password",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				resp, err := signin(ctx, env, fixtures.Without(fixtures.SellerSignin("valid_credentials"), "password"))
				if err != nil {
					return err
				}
				return check(resp, 400, badRequest(passwordMessages...))
			},
		},
		{
			Name: "missing email",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				resp, err := signin(ctx, env, fixtures.Without(fixtures.SellerSignin("valid_credentials"), "email"))
				if err != nil {
					return err
				}
				return check(resp, 400, badRequestContaining(emailMessages...))
			},
		},
		{
			Name: "missing email with unknown password",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				resp, err := signin(ctx, env, fixtures.SellerSignin("missing_email"))
				if err != nil {
					return err
				}
				return check(resp, 400, badRequestContaining(emailMessages...))
			},
		},
		{
			Name: "empty request body reports the full message union",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				resp, err := signin(ctx, env, map[string]any{})
				if err != nil {
					return err
				}
				all := append(append([]string{}, emailMessages...), passwordMessages...)
				return check(resp, 400, badRequest(all...))
			},
		},
		{
			Name: "short password",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				resp, err := signin(ctx, env, fixtures.SellerSignin("short_password"))
				if err != nil {
					return err
				}
				return check(resp, 400, badRequestContaining(
					"password must be longer than or equal to 6 characters",
				))
			},
		},
		{
			Name: "email with leading spaces",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				resp, err := signin(ctx, env, fixtures.SellerSignin("email_with_spaces"))
				if err != nil {
					return err
				}
				return check(resp, 400, badRequestContaining("email must be an email"))
			},
		},
		{
			Name: "password over 100 characters",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				resp, err := signin(ctx, env, fixtures.SellerSignin("long_password"))
				if err != nil {
					return err
				}
				return check(resp, 400, badRequestContaining(
					"password must be shorter than or equal to 100 characters",
				))
			},
		},
		{
			Name: "null email",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				resp, err := signin(ctx, env, fixtures.SellerSignin("null_email"))
				if err != nil {
					return err
				}
				return check(resp, 400, badRequestContaining(emailMessages...))
			},
		},
		{
			Name: "null password",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				resp, err := signin(ctx, env, fixtures.SellerSignin("null_password"))
				if err != nil {
					return err
				}
				return check(resp, 400, badRequestContaining(passwordMessages...))
			},
		},
		{
			Name: "numeric password type",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				resp, err := signin(ctx, env, fixtures.SellerSignin("wrong_password_type"))
				if err != nil {
					return err
				}
				return check(resp, 400, badRequestContaining(
					"password must be shorter than or equal to 100 characters",
					"password must be longer than or equal to 6 characters",
					"password must be a string",
				))
			},
		},
		{
			Name: "sql injection input is rejected as malformed email",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				resp, err := signin(ctx, env, fixtures.SellerSignin("sql_injection"))
				if err != nil {
					return err
				}
				return check(resp, 400, badRequestContaining("email must be an email"))
			},
		},
	}

	return reporter.Suite{Name: "auth_seller_signin", Cases: cases}
}

func sellerStoreSigninSuite() reporter.Suite {
	storeSignin := func(ctx context.Context, env *toolkit.Env, storeID, bearer string) (*toolkit.Response, error) {
		return env.Client.Post(ctx, toolkit.SellerSigninStores+"/"+storeID, bearer, nil)
	}

	return reporter.Suite{
		Name:   "auth_seller_store_signin",
		Serial: true,
		Cases: []reporter.Case{
			{
				Name: "signin for store with valid store id",
				Run: func(ctx context.Context, env *toolkit.Env) error {
					_, err := commands.SellerSignInForStore(ctx, env, env.Config.SellerStoreID)
					return err
				},
			},
			{
				Name: "signin for store with unknown store id",
				Run: func(ctx context.Context, env *toolkit.Env) error {
					if _, err := commands.SellerSignIn(ctx, env, nil); err != nil {
						return err
					}
					resp, err := storeSignin(ctx, env, "gsso0e05ljljvf3jafnzfd5123565989", env.Session.Get(session.Seller))
					if err != nil {
						return err
					}
					return check(resp, 401, unauthorized("Unauthorized to access this store"))
				},
			},
			{
				Name: "signin for store with admin token is forbidden",
				Run: func(ctx context.Context, env *toolkit.Env) error {
					adminToken, err := commands.LoginSuperAdmin(ctx, env)
					if err != nil {
						return err
					}
					resp, err := storeSignin(ctx, env, env.Config.SellerStoreID, adminToken)
					if err != nil {
						return err
					}
					return check(resp, 403, forbidden())
				},
			},
			{
				Name: "signin for store with garbage store id",
				Run: func(ctx context.Context, env *toolkit.Env) error {
					if _, err := commands.SellerSignIn(ctx, env, nil); err != nil {
						return err
					}
					resp, err := storeSignin(ctx, env, "asd", env.Session.Get(session.Seller))
					if err != nil {
						return err
					}
					return check(resp, 401, unauthorized("Unauthorized to access this store"))
				},
			},
		},
	}
}
