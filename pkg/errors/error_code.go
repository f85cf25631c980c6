package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation and configuration errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidPeriod        ErrorCode = 102
	ErrCodeInvalidWindow        ErrorCode = 103
	ErrCodeInvalidMultiplier    ErrorCode = 104
	ErrCodeInvalidTicker        ErrorCode = 105
	ErrCodeInvalidLookback      ErrorCode = 106

	// Price series errors (200-299)
	ErrCodeEmptySeries       ErrorCode = 200
	ErrCodeNonAscendingDates ErrorCode = 201
	ErrCodeDuplicateDate     ErrorCode = 202
	ErrCodeInvalidOHLC       ErrorCode = 203
	ErrCodeNegativePrice     ErrorCode = 204
	ErrCodeNegativeVolume    ErrorCode = 205

	// Data provider errors (300-399)
	ErrCodeProviderUnavailable ErrorCode = 300
	ErrCodeNoDataFound         ErrorCode = 301
	ErrCodeFetchFailed         ErrorCode = 302
	ErrCodeQueryFailed         ErrorCode = 303
	ErrCodeWriteFailed         ErrorCode = 304
	ErrCodeInsufficientData    ErrorCode = 305

	// Analysis errors (400-499)
	ErrCodeAnalysisFailed    ErrorCode = 400
	ErrCodeScoringFailed     ErrorCode = 401
	ErrCodeRenderFailed      ErrorCode = 402
	ErrCodeCacheUnavailable  ErrorCode = 403
	ErrCodeServerStartFailed ErrorCode = 404
)
