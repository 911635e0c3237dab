package commands_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pengine-e2e/commands"
	"pengine-e2e/fixtures"
	"pengine-e2e/session"
	"pengine-e2e/toolkit"
	"pengine-e2e/twin"
)

func newEnv(t *testing.T) *toolkit.Env {
	t.Helper()
	srv := httptest.NewServer(twin.New().Handler())
	t.Cleanup(srv.Close)

	cfg := toolkit.HarnessConfig{
		BaseURL:       srv.URL,
		Timeout:       5 * time.Second,
		Workers:       1,
		SuperAdmin:    fixtures.DefaultSuperAdmin(),
		CurrentAdmin:  fixtures.DefaultCurrentAdmin(),
		Seller:        fixtures.DefaultSeller(),
		SellerStoreID: fixtures.DefaultSellerStoreID,
	}
	return toolkit.NewEnv(toolkit.NewClient(cfg.BaseURL, cfg.Timeout), cfg)
}

func TestLoginsStoreTokensByRole(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	superTok, err := commands.LoginSuperAdmin(ctx, env)
	require.NoError(t, err)
	assert.Equal(t, superTok, env.Session.Get(session.SuperAdmin))

	curTok, err := commands.LoginCurrentAdmin(ctx, env, nil)
	require.NoError(t, err)
	assert.Equal(t, curTok, env.Session.Get(session.CurrentAdmin))
	assert.NotEqual(t, superTok, curTok)

	sellerTok, err := commands.SellerSignIn(ctx, env, nil)
	require.NoError(t, err)
	assert.Equal(t, sellerTok, env.Session.Get(session.Seller))
}

func TestLoginWithBadCredentialsIsPrecondition(t *testing.T) {
	env := newEnv(t)
	env.Config.SuperAdmin.Password = "not-the-password"

	_, err := commands.LoginSuperAdmin(context.Background(), env)
	require.Error(t, err)

	var pre *commands.PreconditionError
	require.ErrorAs(t, err, &pre)
	assert.Equal(t, "login_super_admin", pre.Op)
	assert.Empty(t, env.Session.Get(session.SuperAdmin))
}

func TestCreateAndDeleteAdmin(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	admin, err := commands.CreateAdmin(ctx, env, nil)
	require.NoError(t, err)
	require.NotEmpty(t, admin.ID)
	assert.NotEmpty(t, admin.Password)

	// Created admins can authenticate with the password the payload carried.
	_, err = commands.LoginCurrentAdmin(ctx, env, &toolkit.Credentials{Email: admin.Email, Password: admin.Password})
	require.NoError(t, err)

	body, err := commands.DeleteAdmin(ctx, env, admin.ID, "")
	require.NoError(t, err)
	require.NotNil(t, body)
	assert.Equal(t, admin.ID, body["id"])

	_, err = commands.DeleteAdmin(ctx, env, admin.ID, "")
	require.Error(t, err)
	var pre *commands.PreconditionError
	assert.True(t, errors.As(err, &pre))
}

func TestCreateAdminWithoutPermissions(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	admin, err := commands.CreateAdminWithoutPermissions(ctx, env)
	require.NoError(t, err)
	require.NotEmpty(t, admin.AccessToken)
	assert.Equal(t, []string{toolkit.PermFilesRead}, admin.Permissions)

	// The restricted token must not be able to create admins.
	resp, err := env.Client.Post(ctx, toolkit.Admins, admin.AccessToken, commands.RandomAdminPayload())
	require.NoError(t, err)
	assert.Equal(t, 403, resp.Status)

	_, err = commands.DeleteAdmin(ctx, env, admin.ID, "")
	require.NoError(t, err)
}

func TestSellerSignInForStore(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	tok, err := commands.SellerSignInForStore(ctx, env, env.Config.SellerStoreID)
	require.NoError(t, err)
	assert.Equal(t, tok, env.Session.Get(session.SellerStore))
	// The seller session is established implicitly when absent.
	assert.NotEmpty(t, env.Session.Get(session.Seller))

	_, err = commands.SellerSignInForStore(ctx, env, "not-a-real-store-id-0000")
	require.Error(t, err)
	var pre *commands.PreconditionError
	assert.True(t, errors.As(err, &pre))
}
