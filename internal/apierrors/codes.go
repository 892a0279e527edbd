package apierrors

// ErrorSource indicates where an error originated.
type ErrorSource string

const (
	// SourceShipEngine is an error raised by ShipEngine itself or by this client.
	SourceShipEngine ErrorSource = "shipengine"
	// SourceCarrier is an error reported by a shipping carrier.
	SourceCarrier ErrorSource = "carrier"
	// SourceOrderSource is an error reported by an order source integration.
	SourceOrderSource ErrorSource = "order_source"
)

// ErrorType is the broad category of an error.
type ErrorType string

const (
	TypeAccountStatus ErrorType = "account_status"
	TypeBusinessRules ErrorType = "business_rules"
	TypeIntegrations  ErrorType = "integrations"
	TypeSecurity      ErrorType = "security"
	TypeSystem        ErrorType = "system"
	TypeValidation    ErrorType = "validation"
)

// ErrorCode is a stable, machine-readable error identifier.
type ErrorCode string

const (
	CodeFieldValueRequired ErrorCode = "FIELD_VALUE_REQUIRED"

	CodeInvalidAddress      ErrorCode = "invalid_address"
	CodeInvalidFieldValue   ErrorCode = "invalid_field_value"
	CodeInvalidIdentifier   ErrorCode = "invalid_identifier"
	CodeRateLimitExceeded   ErrorCode = "rate_limit_exceeded"
	CodeRequestBodyRequired ErrorCode = "request_body_required"
	CodeUnauthorized        ErrorCode = "unauthorized"
	CodeUnspecified         ErrorCode = "unspecified"
)
