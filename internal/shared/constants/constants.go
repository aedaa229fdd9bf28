package constants

const (
	// HTTP Headers
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderRetryAfter    = "Retry-After"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"

	// Database table names (public schema, owned by Supabase migrations)
	TableGates         = "gates"
	TableSpaceMembers  = "space_members"
	TableSpaceMessages = "space_messages"
	TableSpaceThreads  = "space_threads"

	// Stripe Sync Engine tables, qualified with the configured billing schema
	TableStripeCustomers          = "customers"
	TableStripeActiveEntitlements = "active_entitlements"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgValidationFailed    = "Validation failed"
)
