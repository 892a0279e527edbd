// Package events defines the lifecycle events the ShipEngine client reports
// while it talks to the API, and the Emitter interface that receives them.
//
// For every physical HTTP attempt the client emits exactly one
// [RequestSent] event. When a response arrives it emits [ResponseReceived];
// when the call ends in failure it emits a final [Error] event before the
// error is returned. Retries are therefore visible to an emitter as repeated
// RequestSent/ResponseReceived pairs sharing one RequestID.
//
// Emitters are invoked synchronously on the calling goroutine. A client that
// is used from several goroutines shares one emitter, so implementations
// must be safe for concurrent use.
package events

import (
	"net/http"
	"time"
)

// Type identifies the kind of an event.
type Type string

const (
	// TypeRequestSent is the type of RequestSent events.
	TypeRequestSent Type = "request_sent"
	// TypeResponseReceived is the type of ResponseReceived events.
	TypeResponseReceived Type = "response_received"
	// TypeError is the type of Error events.
	TypeError Type = "error"
)

// Event is implemented by RequestSent, ResponseReceived and Error.
type Event interface {
	EventType() Type
	EventTime() time.Time
}

// RequestSent is emitted immediately before an HTTP attempt is made.
type RequestSent struct {
	Timestamp time.Time
	Message   string
	RequestID string
	URL       string
	// Body is the JSON request body, nil for requests without one.
	Body    []byte
	Headers http.Header
	Timeout time.Duration
	// RetryAttempt is zero for the first attempt of a call.
	RetryAttempt int
}

// EventType implements Event.
func (e RequestSent) EventType() Type { return TypeRequestSent }

// EventTime implements Event.
func (e RequestSent) EventTime() time.Time { return e.Timestamp }

// ResponseReceived is emitted when an HTTP response has been read.
type ResponseReceived struct {
	Timestamp    time.Time
	Message      string
	RequestID    string
	URL          string
	StatusCode   int
	Body         []byte
	Headers      http.Header
	Elapsed      time.Duration
	RetryAttempt int
	// Success is set when this response completes the call. It is false for
	// retried responses and for responses that end in an Error event,
	// including JSON-RPC errors returned with a 2xx status.
	Success bool
}

// EventType implements Event.
func (e ResponseReceived) EventType() Type { return TypeResponseReceived }

// EventTime implements Event.
func (e ResponseReceived) EventTime() time.Time { return e.Timestamp }

// Error is emitted once when a call fails after at least one attempt.
type Error struct {
	Timestamp  time.Time
	Message    string
	RequestID  string
	URL        string
	StatusCode int
	Source     string
	Type       string
	Code       string
}

// EventType implements Event.
func (e Error) EventType() Type { return TypeError }

// EventTime implements Event.
func (e Error) EventTime() time.Time { return e.Timestamp }
