package api

import (
	"fmt"
	"runtime"
)

// SDKName and SDKVersion identify this client in the User-Agent header.
const (
	SDKName    = "shipengine-go"
	SDKVersion = "1.0.0"
)

// DefaultUserAgent returns "<sdk-name>/<version> (<platform>)".
func DefaultUserAgent() string {
	return fmt.Sprintf("%s/%s (%s/%s; %s)", SDKName, SDKVersion, runtime.GOOS, runtime.GOARCH, runtime.Version())
}
