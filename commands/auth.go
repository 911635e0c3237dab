package commands

import (
	"context"
	"log"
	"net/http"

	"pengine-e2e/session"
	"pengine-e2e/toolkit"
)

// signin hits a signin endpoint, validates the token pair shape, and stores
// the access token under the given role.
func signin(ctx context.Context, env *toolkit.Env, op, path, bearer string, body any, role session.Role) (string, error) {
	resp, err := env.Client.Post(ctx, path, bearer, body)
	if err != nil {
		return "", precondition(op, err)
	}
	if resp.Status != http.StatusOK {
		return "", preconditionf(op, "expected 200, got %d body=%s", resp.Status, resp.Body)
	}

	var pair toolkit.TokenPair
	if err := resp.JSON(&pair); err != nil {
		return "", precondition(op, err)
	}
	if pair.AccessToken == "" || pair.SearchToken == "" {
		return "", preconditionf(op, "token pair incomplete: accessToken_present=%t searchToken_present=%t",
			pair.AccessToken != "", pair.SearchToken != "")
	}

	env.Session.Set(role, pair.AccessToken)
	log.Printf("commands.%s: authenticated role=%s", op, role)
	return pair.AccessToken, nil
}

// LoginSuperAdmin authenticates the provisioned super admin and stores its
// token under the super_admin role.
func LoginSuperAdmin(ctx context.Context, env *toolkit.Env) (string, error) {
	return signin(ctx, env, "login_super_admin", toolkit.AdminLogin, "", env.Config.SuperAdmin, session.SuperAdmin)
}

// LoginCurrentAdmin authenticates the reusable non-super admin. Passing
// creds overrides the configured identity so tests can authenticate as a
// just-created admin.
func LoginCurrentAdmin(ctx context.Context, env *toolkit.Env, creds *toolkit.Credentials) (string, error) {
	c := env.Config.CurrentAdmin
	if creds != nil {
		c = *creds
	}
	return signin(ctx, env, "login_current_admin", toolkit.AdminLogin, "", c, session.CurrentAdmin)
}

// SellerSignIn authenticates the seller identity and stores its token under
// the seller role.
func SellerSignIn(ctx context.Context, env *toolkit.Env, creds *toolkit.Credentials) (string, error) {
	c := env.Config.Seller
	if creds != nil {
		c = *creds
	}
	return signin(ctx, env, "seller_signin", toolkit.SellerSignin, "", c, session.Seller)
}

// SellerSignInForStore exchanges the seller token for a store-scoped one.
// Unlike the other signin endpoints this one requires an existing bearer; a
// missing seller session is established first.
func SellerSignInForStore(ctx context.Context, env *toolkit.Env, storeID string) (string, error) {
	bearer := env.Session.Get(session.Seller)
	if bearer == "" {
		var err error
		if bearer, err = SellerSignIn(ctx, env, nil); err != nil {
			return "", err
		}
	}
	path := toolkit.SellerSigninStores + "/" + storeID
	return signin(ctx, env, "seller_signin_for_store", path, bearer, nil, session.SellerStore)
}
