package apperror

// Code represents a unique error code for the application
type Code string

// General error codes
const (
	CodeRequiredField   Code = "REQUIRED_FIELD"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidationError Code = "VALIDATION_ERROR"

	CodeConfigurationError Code = "CONFIGURATION_ERROR"

	CodeExternalServiceError Code = "EXTERNAL_SERVICE_ERROR"
	CodeServiceTimeout       Code = "SERVICE_TIMEOUT"

	CodeInternalError Code = "INTERNAL_ERROR"
	CodeUnknownError  Code = "UNKNOWN_ERROR"
)

// Market data error codes
const (
	CodeMarketFetchFailed     Code = "MARKET_FETCH_FAILED"
	CodeRecipeFetchFailed     Code = "RECIPE_FETCH_FAILED"
	CodeMarketDataUnavailable Code = "MARKET_DATA_UNAVAILABLE"
	CodeFallbackNotFound      Code = "FALLBACK_NOT_FOUND"
	CodeFallbackInvalid       Code = "FALLBACK_INVALID"
	CodeInvalidPayload        Code = "INVALID_PAYLOAD"
)

// Delivery error codes
const (
	CodeChatDeliveryFailed Code = "CHAT_DELIVERY_FAILED"
	CodeChatNotConfigured  Code = "CHAT_NOT_CONFIGURED"
	CodeScheduleInvalid    Code = "SCHEDULE_INVALID"
)

// Circuit breaker error codes
const (
	CodeCircuitOpen     Code = "CIRCUIT_OPEN"
	CodeCircuitHalfOpen Code = "CIRCUIT_HALF_OPEN"
)
