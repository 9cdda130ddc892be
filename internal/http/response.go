package http

import (
	"io"
	"net/http"
	"time"
)

// Response wraps one HTTP exchange's outcome. In the default mode the body
// is fully buffered and, for application/json responses, decoded; in raw
// mode only Stream is populated and the caller owns the read/close lifecycle.
type Response struct {
	StatusCode int
	Status     string
	Headers    http.Header

	// Body is the decoded body: any JSON value for application/json
	// responses, a string for everything else, nil in raw mode.
	Body any

	// RawBody holds the buffered bytes; nil in raw mode.
	RawBody []byte

	// Stream is the live response stream, set only in raw mode.
	Stream io.ReadCloser

	ResponseTime time.Duration
}

// Text returns the buffered body as a string. Empty in raw mode.
func (r *Response) Text() string {
	return string(r.RawBody)
}

// GetHeader returns the value of the specified header.
func (r *Response) GetHeader(key string) string {
	return r.Headers.Get(key)
}

// IsSuccess returns true if the response status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsRedirect returns true if the response status code is in the 3xx range.
func (r *Response) IsRedirect() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400
}

// IsClientError returns true if the response status code is in the 4xx range.
func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

// IsServerError returns true if the response status code is in the 5xx range.
func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500 && r.StatusCode < 600
}

// GetResponseTimeMillis returns the response time in milliseconds.
func (r *Response) GetResponseTimeMillis() int64 {
	return r.ResponseTime.Milliseconds()
}
