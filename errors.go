package shipengine

import "github.com/shipengine/shipengine-go/internal/apierrors"

// Error is returned by every failed call. Branch on its kind with errors.Is
// and the sentinels below, and read its fields with errors.As.
type Error = apierrors.Error

// ErrorSource indicates where an error originated.
type ErrorSource = apierrors.ErrorSource

// ErrorType is the broad category of an error.
type ErrorType = apierrors.ErrorType

// ErrorCode is a stable, machine-readable error identifier.
type ErrorCode = apierrors.ErrorCode

// Sentinel errors for errors.Is() checks
var (
	ErrValidation         = apierrors.ErrValidation
	ErrFieldValueRequired = apierrors.ErrFieldValueRequired
	ErrBusinessRules      = apierrors.ErrBusinessRules
	ErrSystem             = apierrors.ErrSystem
	ErrSecurity           = apierrors.ErrSecurity
	ErrRateLimited        = apierrors.ErrRateLimited
)

// Error sources.
const (
	SourceShipEngine  = apierrors.SourceShipEngine
	SourceCarrier     = apierrors.SourceCarrier
	SourceOrderSource = apierrors.SourceOrderSource
)

// Error types.
const (
	TypeAccountStatus = apierrors.TypeAccountStatus
	TypeBusinessRules = apierrors.TypeBusinessRules
	TypeIntegrations  = apierrors.TypeIntegrations
	TypeSecurity      = apierrors.TypeSecurity
	TypeSystem        = apierrors.TypeSystem
	TypeValidation    = apierrors.TypeValidation
)

// Error codes produced by this client. The API may return others.
const (
	CodeFieldValueRequired  = apierrors.CodeFieldValueRequired
	CodeInvalidAddress      = apierrors.CodeInvalidAddress
	CodeInvalidFieldValue   = apierrors.CodeInvalidFieldValue
	CodeInvalidIdentifier   = apierrors.CodeInvalidIdentifier
	CodeRateLimitExceeded   = apierrors.CodeRateLimitExceeded
	CodeRequestBodyRequired = apierrors.CodeRequestBodyRequired
	CodeUnauthorized        = apierrors.CodeUnauthorized
	CodeUnspecified         = apierrors.CodeUnspecified
)
