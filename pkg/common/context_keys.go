package common

type contextKey string

const (
	TraceIdKey         contextKey = "trace_id"
	UserIDContextKey   contextKey = "user_id"
	RateLimitResultKey contextKey = "rate_limit_result"
)
