package constant

type ContextKey string

const (
	// UserIDKey carries the authenticated user's id through the request context.
	UserIDKey ContextKey = "user_id"
	// PrincipalKey carries the resolved principal (id, email, admin).
	PrincipalKey ContextKey = "principal"
)
