// Package api implements the request pipeline shared by every ShipEngine
// operation: request building, the retry loop, response classification and
// event emission.
//
// # Transports
//
// Two wire formats are supported. REST calls ([Request] with a Path) go to
// the base URL plus the path and report errors in an errors array. JSON-RPC
// calls ([Request] with an RPCMethod) are posted to the base URL in a 2.0
// envelope whose id is the call's correlation id.
//
// # Retry Behavior
//
// Only 429 Too Many Requests is retried. A call makes at most
// Settings.Retries+1 attempts. Attempts after the first carry a Retries
// header with the attempt number. A Retry-After header, either seconds or an
// HTTP date, delays the next attempt; the wait ends early when the context is
// canceled.
//
// # Events
//
// Every attempt emits a RequestSent event and every response read emits a
// ResponseReceived event. A call that fails after sending emits exactly one
// Error event. All three share the call's correlation id.
//
// # Thread Safety
//
// [Client] holds no per-call state and is safe for concurrent use.
package api
