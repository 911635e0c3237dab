package fixtures_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pengine-e2e/fixtures"
)

func TestGetReturnsScenario(t *testing.T) {
	payload := fixtures.AdminLogin("valid_credentials")
	assert.Equal(t, "rezwankabirrobin@gmail.com", payload["email"])
	assert.Equal(t, "11111111", payload["password"])
}

func TestGetReturnsIndependentCopies(t *testing.T) {
	a := fixtures.CreateAdmin("all_fields")
	a["email"] = "mutated@example.com"
	a["permissions"].([]any)[0] = "mutated"

	b := fixtures.CreateAdmin("all_fields")
	assert.Equal(t, "test@test.com", b["email"])
	assert.Equal(t, "admins_read", b["permissions"].([]any)[0], "nested values must be copied too")
}

func TestGetUnknownScenarioPanics(t *testing.T) {
	assert.Panics(t, func() { fixtures.Get("admin_login", "no_such_scenario") })
	assert.Panics(t, func() { fixtures.Get("no_such_table", "valid_credentials") })
}

func TestWithout(t *testing.T) {
	base := fixtures.SellerSignin("valid_credentials")
	trimmed := fixtures.Without(base, "password")

	_, ok := trimmed["password"]
	assert.False(t, ok)
	assert.Equal(t, base["email"], trimmed["email"])

	_, ok = base["password"]
	assert.True(t, ok, "source payload must not be modified")
}

func TestWith(t *testing.T) {
	base := fixtures.CreateAdmin("all_fields")
	overridden := fixtures.With(base, map[string]any{"firstName": nil, "extra": true})

	assert.Nil(t, overridden["firstName"])
	assert.Equal(t, true, overridden["extra"])
	assert.Equal(t, "TEST", base["firstName"], "source payload must not be modified")
}

func TestScenarioTypesSurviveYAML(t *testing.T) {
	// The wrong-type scenarios rely on YAML keeping numbers numeric.
	payload := fixtures.CreateAdmin("invalid_password_type")
	_, isString := payload["password"].(string)
	assert.False(t, isString, "password must stay a number to exercise the type validator")

	nullEmail := fixtures.SellerSignin("null_email")
	v, ok := nullEmail["email"]
	require.True(t, ok, "null email must be present, not absent")
	assert.Nil(t, v)
}

func TestDefaults(t *testing.T) {
	super := fixtures.DefaultSuperAdmin()
	assert.Equal(t, "rezwankabirrobin@gmail.com", super.Email)
	assert.NotEmpty(t, super.Password)

	current := fixtures.DefaultCurrentAdmin()
	assert.Equal(t, "robin.rezwan@gmail.com", current.Email)

	seller := fixtures.DefaultSeller()
	assert.NotEmpty(t, seller.Email)
	assert.Len(t, fixtures.DefaultSellerStoreID, 24)
}
