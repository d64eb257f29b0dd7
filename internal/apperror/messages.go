package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	CodeRequiredField:   "Required field is missing",
	CodeInvalidInput:    "Invalid input provided",
	CodeNotFound:        "Resource not found",
	CodeValidationError: "Validation error",

	CodeConfigurationError: "Configuration error",

	CodeExternalServiceError: "External service error",
	CodeServiceTimeout:       "Service request timeout",

	CodeInternalError: "Internal error",
	CodeUnknownError:  "An unknown error occurred",

	CodeMarketFetchFailed:     "Failed to fetch store listings",
	CodeRecipeFetchFailed:     "Failed to fetch recipe catalog",
	CodeMarketDataUnavailable: "Market data unavailable",
	CodeFallbackNotFound:      "Local store snapshot not found",
	CodeFallbackInvalid:       "Local store snapshot is not valid JSON",
	CodeInvalidPayload:        "Unexpected response payload",

	CodeChatDeliveryFailed: "Failed to deliver chat message",
	CodeChatNotConfigured:  "Chat delivery is not configured",
	CodeScheduleInvalid:    "Invalid schedule expression",

	CodeCircuitOpen:     "Circuit breaker is open",
	CodeCircuitHalfOpen: "Circuit breaker is half-open",
}
