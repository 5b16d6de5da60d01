package common

const (
	RequestIDHeader  = "X-Request-Id"
	RetryAfterHeader = "Retry-After"

	ServiceName        = "YouTube Chapter Generator API"
	ServiceDescription = "Generate chapter timestamps for YouTube videos"
	DocsPath           = "/docs"

	DefaultLanguage = "en"

	RateLimitDetail     = "Rate limit exceeded. Please wait a minute before trying again."
	InternalErrorDetail = "Internal server error"
)
