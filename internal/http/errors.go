package http

import "fmt"

// InvalidURLError indicates a request URL that could not be resolved to at
// least a host component.
type InvalidURLError struct {
	URL string
	Err error
}

func (e *InvalidURLError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid URL %q: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("invalid URL %q", e.URL)
}

func (e *InvalidURLError) Unwrap() error { return e.Err }

// MalformedResponseError indicates a response that declared
// application/json but whose body failed to parse.
type MalformedResponseError struct {
	URL string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed JSON response from %s: %v", e.URL, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// HTTPError is the structured error raised for responses with a status code
// outside [200,300). It carries the originating method, the full resolved
// URL, the status code, and the decoded error body.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       any
}

// NewHTTPError builds an HTTPError from a failed exchange.
func NewHTTPError(method, url string, statusCode int, body any) *HTTPError {
	return &HTTPError{Method: method, URL: url, StatusCode: statusCode, Body: body}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s returned %d: %+v", e.Method, e.URL, e.StatusCode, e.Body)
}
