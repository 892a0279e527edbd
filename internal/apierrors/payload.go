package apierrors

import (
	"encoding/json"
	"net/http"
)

// RESTErrorBody is the error document returned by the REST endpoints.
type RESTErrorBody struct {
	RequestID string            `json:"request_id"`
	Errors    []RESTErrorDetail `json:"errors"`
}

// RESTErrorDetail is a single entry of RESTErrorBody.Errors.
type RESTErrorDetail struct {
	ErrorSource ErrorSource `json:"error_source"`
	ErrorType   ErrorType   `json:"error_type"`
	ErrorCode   ErrorCode   `json:"error_code"`
	Message     string      `json:"message"`
}

// RPCErrorBody is the error member of a JSON-RPC response envelope.
type RPCErrorBody struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Data    RPCErrorData `json:"data"`
}

// RPCErrorData carries the structured ShipEngine fields of an RPC error.
type RPCErrorData struct {
	Source     ErrorSource `json:"source"`
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	RetryAfter *float64    `json:"retryAfter,omitempty"`
}

// FromREST builds an error from a REST error response. Only the first entry
// of the errors array is used. fallbackRequestID is used when the body does
// not carry a request id (typically the x-shipengine-requestid header).
func FromREST(statusCode int, body []byte, url, fallbackRequestID string) *Error {
	e := &Error{
		StatusCode: statusCode,
		URL:        url,
		RequestID:  fallbackRequestID,
	}

	var doc RESTErrorBody
	if err := json.Unmarshal(body, &doc); err != nil || len(doc.Errors) == 0 {
		if doc.RequestID != "" {
			e.RequestID = doc.RequestID
		}
		e.Message = http.StatusText(statusCode)
		if statusCode == http.StatusUnauthorized {
			e.Type = TypeSecurity
			e.Code = CodeUnauthorized
		}
		return e
	}

	first := doc.Errors[0]
	if doc.RequestID != "" {
		e.RequestID = doc.RequestID
	}
	e.Message = first.Message
	e.Source = first.ErrorSource
	e.Type = first.ErrorType
	e.Code = first.ErrorCode
	return e
}

// FromRPC builds an error from the error member of a JSON-RPC envelope.
func FromRPC(statusCode int, rpcErr RPCErrorBody, requestID, url string) *Error {
	return &Error{
		Message:    rpcErr.Message,
		RequestID:  requestID,
		Source:     rpcErr.Data.Source,
		Type:       rpcErr.Data.Type,
		Code:       rpcErr.Data.Code,
		URL:        url,
		StatusCode: statusCode,
	}
}

// SourceFromREST extracts the error source and request id from a REST body,
// ignoring anything else. It is used for 429 responses where the rest of the
// payload is not surfaced.
func SourceFromREST(body []byte) (ErrorSource, string) {
	var doc RESTErrorBody
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", ""
	}
	if len(doc.Errors) == 0 {
		return "", doc.RequestID
	}
	return doc.Errors[0].ErrorSource, doc.RequestID
}
