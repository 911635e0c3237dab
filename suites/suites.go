// Package suites declares the test case sets the harness runs against the
// storefront backend, grouped per resource/action. Cases compose the auth
// and fixture commands, issue requests through the shared client, and assert
// response shape through the expect matchers.
package suites

import (
	"strings"

	"pengine-e2e/expect"
	"pengine-e2e/reporter"
	"pengine-e2e/toolkit"
)

// All returns every suite in registration order. Serial suites keep their
// declared case order; the rest are parallel-safe.
func All() []reporter.Suite {
	return []reporter.Suite{
		adminLoginSuite(),
		sellerSignupSuite(),
		sellerSigninSuite(),
		sellerStoreSigninSuite(),
		superAdminBootstrapSuite(),
		createAdminSuite(),
		updateAdminSuite(),
		updateCurrentAdminSuite(),
		updatePasswordSuite(),
		deleteAdminSuite(),
		currentSellerSuite(),
	}
}

// PermissionEnumMessage is the validator's rejection line for out-of-set
// permission values, embedding the full allowed list.
var PermissionEnumMessage = "each value in permissions must be one of the following values: " +
	strings.Join(toolkit.AllowedPermissions, ", ")

// PermissionUniqueMessage rejects duplicate entries in a permission array.
const PermissionUniqueMessage = "All permissions's elements must be unique"

// check asserts status then, when expected is non-nil, the body shape.
func check(resp *toolkit.Response, status int, expected any) error {
	if err := expect.Status(resp, status); err != nil {
		return err
	}
	if expected == nil {
		return nil
	}
	return expect.Body(resp, expected)
}

// badRequest matches a 400 envelope whose message array contains exactly the
// given validation lines: each must be present and the total length must
// equal their count, so over- and under-reporting both fail.
func badRequest(msgs ...string) expect.Matcher {
	return expect.ObjectContaining(map[string]any{
		"message":    expect.ArrayContaining(anySlice(msgs)...).WithLen(len(msgs)),
		"error":      "Bad Request",
		"statusCode": 400,
	})
}

// badRequestContaining matches a 400 envelope whose message array contains
// at least the given lines, without pinning the total.
func badRequestContaining(msgs ...string) expect.Matcher {
	return expect.ObjectContaining(map[string]any{
		"message":    expect.ArrayContaining(anySlice(msgs)...),
		"error":      "Bad Request",
		"statusCode": 400,
	})
}

// badRequestMsg matches a 400 envelope carrying a single business-rule
// string, not an array.
func badRequestMsg(msg string) expect.Matcher {
	return expect.ObjectContaining(map[string]any{
		"message":    msg,
		"error":      "Bad Request",
		"statusCode": 400,
	})
}

func unauthorized(msg string) expect.Matcher {
	return expect.ObjectContaining(map[string]any{
		"message":    msg,
		"error":      "Unauthorized",
		"statusCode": 401,
	})
}

func unauthorizedContaining(sub string) expect.Matcher {
	return expect.ObjectContaining(map[string]any{
		"message":    expect.StringContaining(sub),
		"error":      "Unauthorized",
		"statusCode": 401,
	})
}

func forbidden() expect.Matcher {
	return expect.ObjectContaining(map[string]any{
		"message":    "Forbidden resource",
		"error":      "Forbidden",
		"statusCode": 403,
	})
}

func notFoundContaining(sub string) expect.Matcher {
	return expect.ObjectContaining(map[string]any{
		"message":    expect.StringContaining(sub),
		"error":      "Not Found",
		"statusCode": 404,
	})
}

func conflict(msg string) expect.Matcher {
	return expect.ObjectContaining(map[string]any{
		"message":    msg,
		"error":      "Conflict",
		"statusCode": 409,
	})
}

// adminShape is the admin record contract. designation is nullable and left
// out here; cases that care assert it explicitly.
func adminShape() expect.Matcher {
	return expect.ObjectContaining(map[string]any{
		"id":          expect.NonEmptyString(),
		"firstName":   expect.AnyString(),
		"lastName":    expect.AnyString(),
		"email":       expect.AnyString(),
		"permissions": expect.AnyArray(),
		"isActive":    expect.AnyBool(),
		"updatedAt":   expect.ISOTimestamp(),
	})
}

// sellerShape is the full seller record contract.
func sellerShape() expect.Matcher {
	return expect.ObjectContaining(map[string]any{
		"id":                expect.NonEmptyString(),
		"firstName":         expect.AnyString(),
		"lastName":          expect.AnyString(),
		"email":             expect.StringContaining("@"),
		"isProfileComplete": expect.AnyBool(),
		"isActive":          expect.AnyBool(),
		"createdAt":         expect.ISOTimestamp(),
		"updatedAt":         expect.ISOTimestamp(),
	})
}

func anySlice[T any](in []T) []any {
	out := make([]any, len(in))
	for i := range in {
		out[i] = in[i]
	}
	return out
}
