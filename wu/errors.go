package wu

import "wunderground/internal/types"

// Error is the error type returned by the client.
type Error = types.AppError

// ErrorCode categorizes an Error.
type ErrorCode = types.ErrorCode

// SecretString wraps the API key so it is redacted when printed.
type SecretString = types.SecretString

// Sentinels for errors.Is. Any *Error with the same Code matches.
var (
	// ErrMissingKey is returned by New when the key is blank and
	// raiseApiError is enabled.
	ErrMissingKey = &Error{Code: types.ErrCodeMissingKey}
	// ErrService is the error raised for a service-reported error envelope.
	ErrService = &Error{Code: types.ErrCodeServiceError}
)
