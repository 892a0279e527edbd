package api

import (
	"encoding/json"

	"github.com/shipengine/shipengine-go/internal/apierrors"
)

const rpcVersion = "2.0"

// rpcRequest is the JSON-RPC 2.0 request envelope.
type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// rpcResponse is the JSON-RPC 2.0 response envelope. Exactly one of Result
// and Error is set by a conforming server.
type rpcResponse struct {
	JSONRPC   string                  `json:"jsonrpc"`
	ID        string                  `json:"id"`
	RequestID string                  `json:"request_id,omitempty"`
	Result    json.RawMessage         `json:"result,omitempty"`
	Error     *apierrors.RPCErrorBody `json:"error,omitempty"`
}
