package twin_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pengine-e2e/twin"
)

type testResp struct {
	status int
	body   map[string]any
}

func (r testResp) messages(t *testing.T) []string {
	t.Helper()
	arr, ok := r.body["message"].([]any)
	require.True(t, ok, "message should be an array, got %v", r.body["message"])
	out := make([]string, 0, len(arr))
	for _, el := range arr {
		out = append(out, el.(string))
	}
	return out
}

func newTwin(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(twin.New().Handler())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, token string, body any) testResp {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return testResp{status: resp.StatusCode, body: decoded}
}

func superLogin(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp := do(t, srv, "POST", "/auth/admins/signin", "", map[string]any{
		"email": "rezwankabirrobin@gmail.com", "password": "11111111",
	})
	require.Equal(t, 200, resp.status)
	token, _ := resp.body["accessToken"].(string)
	require.NotEmpty(t, token)
	return token
}

func sellerLogin(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp := do(t, srv, "POST", "/auth/sellers/signin", "", map[string]any{
		"email": "rezwankabirrobin@gmail.com", "password": "11111111",
	})
	require.Equal(t, 200, resp.status)
	token, _ := resp.body["accessToken"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestAdminSignin(t *testing.T) {
	srv := newTwin(t)

	resp := do(t, srv, "POST", "/auth/admins/signin", "", map[string]any{
		"email": "rezwankabirrobin@gmail.com", "password": "11111111",
	})
	require.Equal(t, 200, resp.status)
	assert.NotEmpty(t, resp.body["accessToken"])
	assert.NotEmpty(t, resp.body["searchToken"])

	wrong := do(t, srv, "POST", "/auth/admins/signin", "", map[string]any{
		"email": "rezwankabirrobin@gmail.com", "password": "wrong-password",
	})
	assert.Equal(t, 401, wrong.status)
	assert.Equal(t, "Incorrect email or password", wrong.body["message"])

	malformed := do(t, srv, "POST", "/auth/admins/signin", "", map[string]any{
		"email": "not-an-email", "password": "12345678",
	})
	assert.Equal(t, 400, malformed.status)
	assert.Contains(t, malformed.messages(t), "email must be an email")
}

func TestSellerSigninValidationUnion(t *testing.T) {
	srv := newTwin(t)

	resp := do(t, srv, "POST", "/auth/sellers/signin", "", map[string]any{})
	require.Equal(t, 400, resp.status)
	msgs := resp.messages(t)
	assert.Len(t, msgs, 7)
	assert.Contains(t, msgs, "email must be an email")
	assert.Contains(t, msgs, "email should not be empty")
	assert.Contains(t, msgs, "password must be shorter than or equal to 100 characters")
	assert.Contains(t, msgs, "password must be longer than or equal to 6 characters")
	assert.Contains(t, msgs, "password should not be empty")
}

func TestSellerSignup(t *testing.T) {
	srv := newTwin(t)

	resp := do(t, srv, "POST", "/auth/sellers/signup", "", map[string]any{
		"firstName": "New", "lastName": "Seller",
		"email": "new-seller@example.com", "password": "12345678",
	})
	require.Equal(t, 200, resp.status)
	assert.NotEmpty(t, resp.body["id"])
	assert.Equal(t, false, resp.body["isProfileComplete"])
	assert.Equal(t, true, resp.body["isActive"])

	// The new seller can sign in immediately.
	signin := do(t, srv, "POST", "/auth/sellers/signin", "", map[string]any{
		"email": "new-seller@example.com", "password": "12345678",
	})
	assert.Equal(t, 200, signin.status)
}

func TestStoreSignin(t *testing.T) {
	srv := newTwin(t)
	seller := sellerLogin(t, srv)

	ok := do(t, srv, "POST", "/auth/sellers/signin/stores/gsso0e05ljljvf3jafnzfd51", seller, nil)
	require.Equal(t, 200, ok.status)
	assert.NotEmpty(t, ok.body["accessToken"])

	unknown := do(t, srv, "POST", "/auth/sellers/signin/stores/zzzz0e05ljljvf3jafnzfd51", seller, nil)
	assert.Equal(t, 401, unknown.status)
	assert.Equal(t, "Unauthorized to access this store", unknown.body["message"])

	admin := superLogin(t, srv)
	forbidden := do(t, srv, "POST", "/auth/sellers/signin/stores/gsso0e05ljljvf3jafnzfd51", admin, nil)
	assert.Equal(t, 403, forbidden.status)
	assert.Equal(t, "Forbidden resource", forbidden.body["message"])
}

func TestSuperAdminBootstrapRejected(t *testing.T) {
	srv := newTwin(t)

	resp := do(t, srv, "POST", "/admins/super", "", map[string]any{
		"email": "fresh@example.com", "password": "12345678",
		"firstName": "A", "lastName": "B", "permissions": []any{"all"},
	})
	assert.Equal(t, 400, resp.status)
	assert.Equal(t, "Super admin already exists", resp.body["message"])
}

func TestCreateAdminLifecycle(t *testing.T) {
	srv := newTwin(t)
	super := superLogin(t, srv)

	created := do(t, srv, "POST", "/admins", super, map[string]any{
		"firstName": "QA", "lastName": "Bot",
		"email": "qa-bot@example.com", "password": "12345678",
		"permissions": []any{"admins_read", "admins_write"},
	})
	require.Equal(t, 200, created.status)
	id, _ := created.body["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, true, created.body["isActive"])

	// Duplicate email conflicts.
	dup := do(t, srv, "POST", "/admins", super, map[string]any{
		"firstName": "QA", "lastName": "Bot",
		"email": "qa-bot@example.com", "password": "12345678",
		"permissions": []any{"admins_read"},
	})
	assert.Equal(t, 409, dup.status)
	assert.Equal(t, "An admin already exists with this email", dup.body["message"])

	// The created admin can sign in but may not manage admins beyond its
	// grants.
	patched := do(t, srv, "PATCH", "/admins/"+id, super, map[string]any{"firstName": "Renamed"})
	require.Equal(t, 200, patched.status)
	assert.Equal(t, "Renamed", patched.body["firstName"])

	deleted := do(t, srv, "DELETE", "/admins/"+id, super, nil)
	require.Equal(t, 200, deleted.status)
	assert.Equal(t, id, deleted.body["id"])

	again := do(t, srv, "DELETE", "/admins/"+id, super, nil)
	assert.Equal(t, 404, again.status)
	assert.Equal(t, "Admin not found", again.body["message"])
}

func TestCreateAdminValidation(t *testing.T) {
	srv := newTwin(t)
	super := superLogin(t, srv)

	missing := do(t, srv, "POST", "/admins", super, map[string]any{
		"lastName": "Bot", "email": "x@example.com", "password": "12345678",
		"permissions": []any{"admins_read"},
	})
	require.Equal(t, 400, missing.status)
	assert.ElementsMatch(t, []string{
		"firstName must be a string",
		"firstName should not be empty",
	}, missing.messages(t))

	all := do(t, srv, "POST", "/admins", super, map[string]any{
		"firstName": "QA", "lastName": "Bot",
		"email": "y@example.com", "password": "12345678",
		"permissions": []any{"all"},
	})
	assert.Equal(t, 400, all.status)
	assert.Equal(t, "Invalid permission requested: all", all.body["message"])

	dupPerm := do(t, srv, "POST", "/admins", super, map[string]any{
		"firstName": "QA", "lastName": "Bot",
		"email": "z@example.com", "password": "12345678",
		"permissions": []any{"admins_read", "admins_read"},
	})
	assert.Equal(t, 400, dupPerm.status)
	assert.Contains(t, dupPerm.messages(t), "All permissions's elements must be unique")

	numericPassword := do(t, srv, "POST", "/admins", super, map[string]any{
		"firstName": "QA", "lastName": "Bot",
		"email": "w@example.com", "password": 123,
		"permissions": []any{"admins_read"},
	})
	require.Equal(t, 400, numericPassword.status)
	assert.ElementsMatch(t, []string{
		"password must be longer than or equal to 6 and shorter than or equal to 100 characters",
		"password must be a string",
	}, numericPassword.messages(t))
}

func TestAdminPermissionGuards(t *testing.T) {
	srv := newTwin(t)
	super := superLogin(t, srv)

	created := do(t, srv, "POST", "/admins", super, map[string]any{
		"firstName": "Limited", "lastName": "Admin",
		"email": "limited@example.com", "password": "12345678",
		"permissions": []any{"files_read"},
	})
	require.Equal(t, 200, created.status)

	signin := do(t, srv, "POST", "/auth/admins/signin", "", map[string]any{
		"email": "limited@example.com", "password": "12345678",
	})
	require.Equal(t, 200, signin.status)
	limited := signin.body["accessToken"].(string)

	denied := do(t, srv, "POST", "/admins", limited, map[string]any{
		"firstName": "X", "lastName": "Y",
		"email": "nope@example.com", "password": "12345678",
		"permissions": []any{"admins_read"},
	})
	assert.Equal(t, 403, denied.status)
	assert.Equal(t, "Forbidden resource", denied.body["message"])

	profile := do(t, srv, "PATCH", "/admins/current", limited, map[string]any{"firstName": "Still"})
	assert.Equal(t, 403, profile.status)

	noToken := do(t, srv, "GET", "/admins/current", "", nil)
	assert.Equal(t, 401, noToken.status)
	assert.Equal(t, "Invalid access token", noToken.body["message"])

	badToken := do(t, srv, "GET", "/admins/current", "invalid_token_12345", nil)
	assert.Equal(t, 401, badToken.status)
}

func TestCurrentAdminPasswordChange(t *testing.T) {
	srv := newTwin(t)

	signin := do(t, srv, "POST", "/auth/admins/signin", "", map[string]any{
		"email": "robin.rezwan@gmail.com", "password": "12345678",
	})
	require.Equal(t, 200, signin.status)
	token := signin.body["accessToken"].(string)

	wrong := do(t, srv, "PATCH", "/admins/current/password", token, map[string]any{
		"oldPassword": "not-the-password", "newPassword": "12345678",
	})
	assert.Equal(t, 401, wrong.status)
	assert.Equal(t, "Incorrect old password", wrong.body["message"])

	rotate := do(t, srv, "PATCH", "/admins/current/password", token, map[string]any{
		"oldPassword": "12345678", "newPassword": "new-password",
	})
	require.Equal(t, 200, rotate.status)

	relogin := do(t, srv, "POST", "/auth/admins/signin", "", map[string]any{
		"email": "robin.rezwan@gmail.com", "password": "new-password",
	})
	assert.Equal(t, 200, relogin.status)

	stale := do(t, srv, "POST", "/auth/admins/signin", "", map[string]any{
		"email": "robin.rezwan@gmail.com", "password": "12345678",
	})
	assert.Equal(t, 401, stale.status)
}

func TestCurrentSeller(t *testing.T) {
	srv := newTwin(t)
	seller := sellerLogin(t, srv)

	profile := do(t, srv, "GET", "/sellers/current", seller, nil)
	require.Equal(t, 200, profile.status)
	stores, _ := profile.body["stores"].([]any)
	require.NotEmpty(t, stores)
	photo, _ := profile.body["profilePhoto"].(map[string]any)
	require.NotNil(t, photo)
	assert.Contains(t, photo["url"], "https://")

	// Admin tokens are invalid here, not merely forbidden.
	admin := superLogin(t, srv)
	denied := do(t, srv, "GET", "/sellers/current", admin, nil)
	assert.Equal(t, 401, denied.status)
	assert.Equal(t, "Invalid access token", denied.body["message"])

	renamed := do(t, srv, "PATCH", "/sellers/current", seller, map[string]any{"firstName": "Renamed"})
	require.Equal(t, 200, renamed.status)
	assert.Equal(t, "Renamed", renamed.body["firstName"])
}

func TestRouterMissEnvelope(t *testing.T) {
	srv := newTwin(t)
	super := superLogin(t, srv)

	resp := do(t, srv, "DELETE", "/admins/", super, nil)
	assert.Equal(t, 404, resp.status)
	msg, _ := resp.body["message"].(string)
	assert.Contains(t, msg, "Cannot DELETE")
}

func TestMalformedIDRejectedOnUpdateAndDelete(t *testing.T) {
	srv := newTwin(t)
	super := superLogin(t, srv)

	// An escaped traversal segment is a malformed key, not a lookup miss,
	// on both id-taking admin routes.
	for _, method := range []string{"PATCH", "DELETE"} {
		resp := do(t, srv, method, "/admins/..%2F..%2F..%2Fadmin", super, nil)
		assert.Equal(t, 400, resp.status, "%s should reject the malformed id", method)
		assert.Equal(t, "Bad Request", resp.body["error"], "%s envelope", method)
	}

	miss := do(t, srv, "DELETE", "/admins/wellformedbutunknown00000", super, nil)
	assert.Equal(t, 404, miss.status)
	assert.Equal(t, "Admin not found", miss.body["message"])
}
