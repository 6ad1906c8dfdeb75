// File: internal/common/context_keys.go
package common

const (
	// UserIDKey is the gin context key the auth middleware stores the
	// authenticated account id under.
	UserIDKey = "userID"
	// UserEmailKey holds the authenticated account's email.
	UserEmailKey = "userEmail"

	AuthorizationHeader     = "Authorization"
	AuthorizationTypeBearer = "Bearer"
)
