package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/shipengine/shipengine-go/internal/apierrors"
)

type state int

const (
	stateSuccess state = iota
	stateRetryable
	stateFatal
)

// outcome is the tagged result of one attempt: a response, a retry request
// or a terminal error.
type outcome struct {
	state    state
	response *Response
	err      error

	// Populated for stateRetryable.
	retryAfter   time.Duration
	retryAttempt int
	body         []byte
	header       http.Header
}

func fatal(err error) outcome {
	return outcome{state: stateFatal, err: err}
}

// classify maps a received response to an outcome. Only 429 is retryable;
// every other status of 400 or above is fatal.
func classify(cl *call, req *http.Request, resp *http.Response, body []byte) outcome {
	status := resp.StatusCode
	headerID := resp.Header.Get(HeaderRequestID)

	if status == http.StatusTooManyRequests {
		return outcome{
			state:        stateRetryable,
			retryAfter:   parseRetryAfter(resp.Header.Get(HeaderRetryAfter)),
			retryAttempt: retryAttempt(req),
			body:         body,
			header:       resp.Header,
		}
	}

	if cl.rpc {
		return classifyRPC(cl, status, headerID, body)
	}

	if status >= 400 {
		return fatal(apierrors.FromREST(status, body, cl.url, headerID))
	}

	return outcome{
		state: stateSuccess,
		response: &Response{
			StatusCode: status,
			Header:     resp.Header,
			Body:       body,
			RequestID:  headerID,
			URL:        cl.url,
		},
	}
}

func classifyRPC(cl *call, status int, headerID string, body []byte) outcome {
	var env rpcResponse
	if err := json.Unmarshal(body, &env); err != nil {
		if status >= 400 {
			return fatal(apierrors.FromREST(status, body, cl.url, headerID))
		}
		return fatal(apierrors.NewDecode(err, headerID, cl.url, status))
	}

	requestID := firstNonEmpty(env.RequestID, headerID, env.ID)

	if env.Error != nil {
		return fatal(apierrors.FromRPC(status, *env.Error, requestID, cl.url))
	}
	if status >= 400 {
		return fatal(apierrors.FromREST(status, body, cl.url, requestID))
	}

	return outcome{
		state: stateSuccess,
		response: &Response{
			StatusCode: status,
			Body:       env.Result,
			RequestID:  requestID,
			URL:        cl.url,
		},
	}
}

// rateLimitError builds the terminal error for a 429 that has no retries left.
func (o outcome) rateLimitError(cl *call) *apierrors.Error {
	var (
		source    apierrors.ErrorSource
		requestID string
	)
	if cl.rpc {
		var env rpcResponse
		if err := json.Unmarshal(o.body, &env); err == nil {
			requestID = firstNonEmpty(env.RequestID, env.ID)
			if env.Error != nil {
				source = env.Error.Data.Source
			}
		}
	} else {
		source, requestID = apierrors.SourceFromREST(o.body)
	}
	if requestID == "" && o.header != nil {
		requestID = o.header.Get(HeaderRequestID)
	}
	return apierrors.NewRateLimit(o.retryAttempt, source, requestID, cl.url)
}

// retryAttempt reads the attempt count back from the Retries header the
// pipeline set on the outgoing request.
func retryAttempt(req *http.Request) int {
	n, err := strconv.Atoi(req.Header.Get(HeaderRetries))
	if err != nil {
		return 0
	}
	return n
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
