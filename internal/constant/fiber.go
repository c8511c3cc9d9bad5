package constant

const (
	ContextKeyRequestID = "requestid"

	RequestIDHeader = "X-Mergington-Request-ID"

	// MutationIDHeader carries the audit id of a successful signup or
	// unregister so that a mutation can be correlated with its log entry.
	MutationIDHeader = "X-Mutation-Id"
)
