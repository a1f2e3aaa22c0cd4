package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidPeriod    ErrorCode = 100
	ErrCodeInsufficientData ErrorCode = 101

	// Data/Resource errors (200-299)
	ErrCodeDataSourceUnavailable ErrorCode = 200
	ErrCodeQueryFailed           ErrorCode = 201
	ErrCodeNoDataFound           ErrorCode = 202
	ErrCodeMalformedSeries       ErrorCode = 203

	// Strategy errors (400-499)
	ErrCodeStrategyConfigError ErrorCode = 400
	ErrCodeUnsupportedStrategy ErrorCode = 401
	ErrCodeVersionMismatch     ErrorCode = 402

	// Scan errors (500-599)
	ErrCodeScanFailed        ErrorCode = 500
	ErrCodeScanNoStrategies  ErrorCode = 501
	ErrCodeScanNoSymbols     ErrorCode = 502
	ErrCodeScanNoDatasource  ErrorCode = 503
	ErrCodeScanConfigError   ErrorCode = 504
	ErrCodeScanInvalidFilter ErrorCode = 505
)
