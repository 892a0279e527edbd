// Package requestid generates correlation ids for outbound API calls.
package requestid

import (
	"strings"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
)

// Prefix is prepended to every generated id.
const Prefix = "req_"

// New returns a fresh id of the form "req_<base58 uuid>".
// The base58 alphabet omits look-alike characters so ids are safe to read
// aloud or paste into a support ticket.
func New() string {
	id := uuid.New()
	return Prefix + base58.Encode(id[:])
}

// Valid reports whether s looks like an id produced by New.
func Valid(s string) bool {
	rest, ok := strings.CutPrefix(s, Prefix)
	if !ok || rest == "" {
		return false
	}
	raw, err := base58.Decode(rest)
	if err != nil {
		return false
	}
	_, err = uuid.FromBytes(raw)
	return err == nil
}
