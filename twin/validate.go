package twin

import (
	"regexp"
	"strings"
)

var emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validation mirrors the backend's field validators: each rule that fails
// contributes its message line, and a request fails with the union of lines
// across fields. Null and absent values fail every rule for the field.

func validateEmail(body map[string]any, msgs []string) []string {
	v, present := body["email"]
	str, isStr := v.(string)
	switch {
	case !present || v == nil:
		msgs = append(msgs, "email must be an email", "email must be a string", "email should not be empty")
	case !isStr:
		msgs = append(msgs, "email must be an email", "email must be a string")
	case str == "":
		msgs = append(msgs, "email must be an email", "email should not be empty")
	case !emailRE.MatchString(str):
		msgs = append(msgs, "email must be an email")
	}
	return msgs
}

// validatePassword covers the signin validators. withMax adds the seller
// validator's 100-character cap line.
func validatePassword(body map[string]any, field string, withMax bool, msgs []string) []string {
	min := field + " must be longer than or equal to 6 characters"
	max := field + " must be shorter than or equal to 100 characters"
	str := field + " must be a string"
	empty := field + " should not be empty"

	v, present := body[field]
	s, isStr := v.(string)
	switch {
	case !present || v == nil:
		if withMax {
			msgs = append(msgs, max)
		}
		msgs = append(msgs, min, str, empty)
	case !isStr:
		if withMax {
			msgs = append(msgs, max, min, str)
		} else {
			msgs = append(msgs, field+" must be longer than or equal to 6 and shorter than or equal to 100 characters", str)
		}
	case s == "":
		msgs = append(msgs, min, empty)
	case len(s) < 6:
		msgs = append(msgs, min)
	case len(s) > 100:
		msgs = append(msgs, max)
	}
	return msgs
}

func validateName(body map[string]any, field string, msgs []string) []string {
	v, present := body[field]
	s, isStr := v.(string)
	switch {
	case !present || v == nil:
		msgs = append(msgs, field+" must be a string", field+" should not be empty")
	case !isStr:
		msgs = append(msgs, field+" must be a string")
	case s == "":
		msgs = append(msgs, field+" should not be empty")
	}
	return msgs
}

// permissionEnumMessage embeds the full allowed list, in declaration order.
var permissionEnumMessage = "each value in permissions must be one of the following values: " +
	strings.Join(allowedPermissions, ", ")

var allowedPermissions = []string{
	"all",
	"admins_read", "admins_write",
	"sellers_read", "sellers_write",
	"inventory_products_read", "inventory_products_write",
	"catalog_products_read", "catalog_products_write",
	"products_read", "products_write",
	"orders_read", "orders_write",
	"stores_read", "stores_write",
	"files_read", "files_write",
	"transactions_read",
	"analytics_read", "analytics_write",
	"finance_read", "finance_write",
	"settings_read", "settings_write",
}

func permissionAllowed(p string) bool {
	for _, a := range allowedPermissions {
		if a == p {
			return true
		}
	}
	return false
}

func validatePermissions(body map[string]any, msgs []string) []string {
	v, present := body["permissions"]
	arr, isArr := v.([]any)
	if !present || v == nil || !isArr {
		return append(msgs,
			permissionEnumMessage,
			"All permissions's elements must be unique",
			"permissions should not be empty",
			"permissions must be an array",
		)
	}
	if len(arr) == 0 {
		return append(msgs, "permissions should not be empty")
	}
	seen := map[string]bool{}
	var badValue, dup bool
	for _, el := range arr {
		p, ok := el.(string)
		if !ok || !permissionAllowed(p) {
			badValue = true
			continue
		}
		if seen[p] {
			dup = true
		}
		seen[p] = true
	}
	if badValue {
		msgs = append(msgs, permissionEnumMessage)
	}
	if dup {
		msgs = append(msgs, "All permissions's elements must be unique")
	}
	return msgs
}

// permissionsContainAll reports the literal "all" grant, which passes the
// enum validator but is rejected by the service with its own message.
func permissionsContainAll(body map[string]any) bool {
	arr, _ := body["permissions"].([]any)
	for _, el := range arr {
		if el == "all" {
			return true
		}
	}
	return false
}

func toStrings(v any) []string {
	arr, _ := v.([]any)
	out := make([]string, 0, len(arr))
	for _, el := range arr {
		if s, ok := el.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// validID gates path ids: anything with separator or escape characters is a
// malformed request rather than a lookup miss.
var validID = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
