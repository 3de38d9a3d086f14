package common

const (
	TraceIDHeader = "X-Trace-Id"

	// UnknownAddress is the subject value used when no client address is known.
	UnknownAddress = "unknown"
)
