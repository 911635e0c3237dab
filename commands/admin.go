package commands

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"pengine-e2e/expect"
	"pengine-e2e/session"
	"pengine-e2e/toolkit"
)

// createdAdminShape is the response contract every successful admin creation
// must satisfy.
var createdAdminShape = expect.ObjectContaining(map[string]any{
	"id":          expect.NonEmptyString(),
	"firstName":   expect.AnyString(),
	"lastName":    expect.AnyString(),
	"designation": expect.AnyString(),
	"email":       expect.AnyString(),
	"permissions": expect.AnyArray(),
	"isActive":    expect.AnyBool(),
	"createdAt":   expect.ISOTimestamp(),
	"updatedAt":   expect.ISOTimestamp(),
})

// RandomAdminPayload builds a syntactically valid creation payload with a
// run-unique email, so concurrently running suites can never collide on the
// backend's uniqueness constraint.
func RandomAdminPayload() toolkit.AdminPayload {
	tag := strings.Split(uuid.NewString(), "-")[0]
	return toolkit.AdminPayload{
		FirstName:   "E2e" + tag,
		LastName:    "Fixture",
		Email:       fmt.Sprintf("e2e-admin-%s@example.com", uuid.NewString()),
		Password:    "pw-" + tag + "-secret",
		Designation: "qa fixture",
		Permissions: []string{toolkit.PermAdminsRead, toolkit.PermAdminsWrite},
		IsActive:    true,
	}
}

// superAdminToken returns the stored super admin token, logging in first
// when this session has none yet.
func superAdminToken(ctx context.Context, env *toolkit.Env) (string, error) {
	if tok := env.Session.Get(session.SuperAdmin); tok != "" {
		return tok, nil
	}
	return LoginSuperAdmin(ctx, env)
}

// CreateAdmin creates a fixture admin as the super admin and returns the
// parsed record. A nil override uses a random payload.
func CreateAdmin(ctx context.Context, env *toolkit.Env, override *toolkit.AdminPayload) (*toolkit.Admin, error) {
	const op = "create_admin"

	payload := RandomAdminPayload()
	if override != nil {
		payload = *override
	}

	token, err := superAdminToken(ctx, env)
	if err != nil {
		return nil, err
	}

	resp, err := env.Client.Post(ctx, toolkit.Admins, token, payload)
	if err != nil {
		return nil, precondition(op, err)
	}
	if resp.Status != http.StatusOK {
		return nil, preconditionf(op, "expected 200, got %d body=%s", resp.Status, resp.Body)
	}
	if err := expect.Body(resp, createdAdminShape); err != nil {
		return nil, precondition(op, err)
	}

	var admin toolkit.Admin
	if err := resp.JSON(&admin); err != nil {
		return nil, precondition(op, err)
	}
	admin.Password = payload.Password
	log.Printf("commands.create_admin: created id=%s email=%s", admin.ID, admin.Email)
	return &admin, nil
}

// CreateAdminWithoutPermissions creates an admin holding only files_read,
// then logs in as it. The returned record carries the new admin's own access
// token, which negative-authorization cases swap in to provoke 403s. The
// token is returned, not stored in the session.
func CreateAdminWithoutPermissions(ctx context.Context, env *toolkit.Env) (*toolkit.Admin, error) {
	const op = "create_admin_without_permissions"

	payload := RandomAdminPayload()
	payload.Permissions = []string{toolkit.PermFilesRead}

	admin, err := CreateAdmin(ctx, env, &payload)
	if err != nil {
		return nil, err
	}

	resp, err := env.Client.Post(ctx, toolkit.AdminLogin, "", toolkit.Credentials{
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		return nil, precondition(op, err)
	}
	if resp.Status != http.StatusOK {
		return nil, preconditionf(op, "login as created admin: expected 200, got %d body=%s", resp.Status, resp.Body)
	}
	var pair toolkit.TokenPair
	if err := resp.JSON(&pair); err != nil {
		return nil, precondition(op, err)
	}
	if pair.AccessToken == "" {
		return nil, preconditionf(op, "login as created admin returned empty accessToken")
	}

	admin.AccessToken = pair.AccessToken
	return admin, nil
}

// DeleteAdmin removes a fixture admin. An empty token falls back to the
// super admin session. The backend contract returns 200 with a body on
// delete, never 204; an empty body yields a nil result.
func DeleteAdmin(ctx context.Context, env *toolkit.Env, adminID, token string) (map[string]any, error) {
	const op = "delete_admin"

	if token == "" {
		var err error
		if token, err = superAdminToken(ctx, env); err != nil {
			return nil, err
		}
	}

	resp, err := env.Client.Delete(ctx, toolkit.PathID(toolkit.Admins, adminID), token)
	if err != nil {
		return nil, precondition(op, err)
	}
	if resp.Status != http.StatusOK {
		return nil, preconditionf(op, "expected 200, got %d body=%s", resp.Status, resp.Body)
	}
	if resp.Empty() {
		return nil, nil
	}
	body, err := resp.Map()
	if err != nil {
		return nil, precondition(op, err)
	}
	log.Printf("commands.delete_admin: deleted id=%s", adminID)
	return body, nil
}
