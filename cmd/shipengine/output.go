package main

import (
	"encoding/json"
	"fmt"
	"io"
)

type errorOutput struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Message    string `json:"message"`
	RequestID  string `json:"request_id,omitempty"`
	Source     string `json:"source,omitempty"`
	Type       string `json:"type,omitempty"`
	Code       string `json:"code,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
	Field      string `json:"field,omitempty"`
}

type versionOutput struct {
	Version    string `json:"version"`
	Commit     string `json:"commit"`
	SDKVersion string `json:"sdk_version"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
