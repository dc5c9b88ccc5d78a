package auth

import "crypto/subtle"

// AdminSessionValue is the cookie value marking an authenticated admin.
// There is one shared admin credential and no per-user identity.
const AdminSessionValue = "1"

// CheckAdminPassword compares the submitted password against the configured
// one in constant time.
func CheckAdminPassword(submitted, configured string) bool {
	if configured == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(configured)) == 1
}
