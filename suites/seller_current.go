package suites

import (
	"context"

	"pengine-e2e/commands"
	"pengine-e2e/expect"
	"pengine-e2e/reporter"
	"pengine-e2e/session"
	"pengine-e2e/toolkit"
)

// checkSellerProfile validates the full current-seller payload: base shape,
// timestamp formats, optional profile photo, and at least one store.
func checkSellerProfile(resp *toolkit.Response) error {
	if err := check(resp, 200, sellerShape()); err != nil {
		return err
	}

	body, err := resp.Map()
	if err != nil {
		return err
	}

	if photo, ok := body["profilePhoto"].(map[string]any); ok && photo != nil {
		if err := expect.Match(expect.ObjectContaining(map[string]any{
			"id":        expect.NonEmptyString(),
			"url":       expect.StringContaining("https://"),
			"createdAt": expect.ISOTimestamp(),
			"updatedAt": expect.ISOTimestamp(),
			"variants": expect.ObjectContaining(map[string]any{
				"tiny": expect.ObjectContaining(map[string]any{
					"url": expect.StringContaining("https://"),
				}),
			}),
		}), photo); err != nil {
			return err
		}
	}

	stores, _ := body["stores"].([]any)
	if len(stores) == 0 {
		return &expect.MatchError{Path: "stores", Reason: "expected at least one store"}
	}
	storeShape := expect.ObjectContaining(map[string]any{
		"id":        expect.NonEmptyString(),
		"name":      expect.AnyString(),
		"isActive":  expect.AnyBool(),
		"createdAt": expect.ISOTimestamp(),
		"updatedAt": expect.ISOTimestamp(),
	})
	for _, store := range stores {
		if err := expect.Match(storeShape, store); err != nil {
			return err
		}
	}
	return nil
}

func currentSellerSuite() reporter.Suite {
	sellerToken := func(ctx context.Context, env *toolkit.Env) (string, error) {
		if tok := env.Session.Get(session.Seller); tok != "" {
			return tok, nil
		}
		return commands.SellerSignIn(ctx, env, nil)
	}

	cases := []reporter.Case{
		{
			Name: "fetch profile with a seller token",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				tok, err := sellerToken(ctx, env)
				if err != nil {
					return err
				}
				resp, err := env.Client.Get(ctx, toolkit.CurrentSeller, tok)
				if err != nil {
					return err
				}
				return checkSellerProfile(resp)
			},
		},
		{
			Name: "fetch profile with an invalid token",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				resp, err := env.Client.Get(ctx, toolkit.CurrentSeller, "invalid_token_12345")
				if err != nil {
					return err
				}
				return check(resp, 401, unauthorizedContaining("Invalid access token"))
			},
		},
		{
			Name: "fetch profile with an admin token",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				tok, err := commands.LoginCurrentAdmin(ctx, env, nil)
				if err != nil {
					return err
				}
				resp, err := env.Client.Get(ctx, toolkit.CurrentSeller, tok)
				if err != nil {
					return err
				}
				return check(resp, 401, unauthorizedContaining("Invalid access token"))
			},
		},
		{
			Name: "rename via patch and restore",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				tok, err := sellerToken(ctx, env)
				if err != nil {
					return err
				}

				before, err := env.Client.Get(ctx, toolkit.CurrentSeller, tok)
				if err != nil {
					return err
				}
				original, err := before.Map()
				if err != nil {
					return err
				}

				resp, err := env.Client.Patch(ctx, toolkit.CurrentSeller, tok, map[string]any{
					"firstName": "Renamed",
					"lastName":  "Seller",
				})
				if err != nil {
					return err
				}
				if err := checkSellerProfile(resp); err != nil {
					return err
				}
				if err := check(resp, 200, expect.ObjectContaining(map[string]any{
					"firstName": "Renamed",
					"lastName":  "Seller",
				})); err != nil {
					return err
				}

				restore, err := env.Client.Patch(ctx, toolkit.CurrentSeller, tok, map[string]any{
					"firstName": original["firstName"],
					"lastName":  original["lastName"],
				})
				if err != nil {
					return err
				}
				return expect.Status(restore, 200)
			},
		},
		{
			Name: "patch profile with an invalid token",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				resp, err := env.Client.Patch(ctx, toolkit.CurrentSeller, "invalid_token_12345", map[string]any{"firstName": "Nobody"})
				if err != nil {
					return err
				}
				return check(resp, 401, unauthorizedContaining("Invalid access token"))
			},
		},
		{
			Name: "patch profile with an admin token",
			Run: func(ctx context.Context, env *toolkit.Env) error {
				tok, err := commands.LoginCurrentAdmin(ctx, env, nil)
				if err != nil {
					return err
				}
				resp, err := env.Client.Patch(ctx, toolkit.CurrentSeller, tok, map[string]any{"firstName": "Nobody"})
				if err != nil {
					return err
				}
				return check(resp, 401, unauthorizedContaining("Invalid access token"))
			},
		},
	}

	return reporter.Suite{Name: "seller_current", Serial: true, Cases: cases}
}
