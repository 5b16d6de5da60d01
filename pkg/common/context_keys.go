package common

type contextKey string

const (
	RequestIDKey      contextKey = "request_id"
	ClientIDKey       contextKey = "client_id"
	LatencyContextKey contextKey = "__execution_time"
)
