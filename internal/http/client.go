package http

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"time"
)

// Client issues requests with a layer of instance-level default options
// applied under each call's own options.
type Client struct {
	httpClient *http.Client
	defaults   Options
}

// DefaultClient backs the package-level Get, Post, and Stream helpers.
var DefaultClient = NewClient()

// NewClient creates a client. The given option layers become the instance
// defaults, merged lowest-to-highest in argument order.
func NewClient(opts ...Options) *Client {
	return &Client{
		httpClient: &http.Client{
			// A 3xx is reported through status evaluation, never followed.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		defaults: MergeOptions(opts...),
	}
}

// Get issues a GET request and returns the normalized response.
func (c *Client) Get(ctx context.Context, rawurl string, opts ...Options) (*Response, error) {
	return c.do(ctx, rawurl, http.MethodGet, opts)
}

// Post issues a form-encoded POST request and returns the normalized
// response.
func (c *Client) Post(ctx context.Context, rawurl string, opts ...Options) (*Response, error) {
	return c.do(ctx, rawurl, http.MethodPost, opts)
}

// Stream issues a GET request in raw mode: the response body is not
// buffered, and the caller must consume and close Response.Stream.
func (c *Client) Stream(ctx context.Context, rawurl string, opts ...Options) (*Response, error) {
	return c.do(ctx, rawurl, http.MethodGet, append(opts, Options{Raw: true}))
}

// Get issues a GET request on the default client.
func Get(ctx context.Context, rawurl string, opts ...Options) (*Response, error) {
	return DefaultClient.Get(ctx, rawurl, opts...)
}

// Post issues a form-encoded POST request on the default client.
func Post(ctx context.Context, rawurl string, opts ...Options) (*Response, error) {
	return DefaultClient.Post(ctx, rawurl, opts...)
}

// Stream issues a raw-mode GET request on the default client.
func Stream(ctx context.Context, rawurl string, opts ...Options) (*Response, error) {
	return DefaultClient.Stream(ctx, rawurl, opts...)
}

// do runs the whole pipeline for one call: option merge, URL resolution,
// request middleware, transport dispatch, body buffering/decoding, response
// middleware, status evaluation.
func (c *Client) do(ctx context.Context, rawurl, method string, callOpts []Options) (*Response, error) {
	layers := make([]Options, 0, len(callOpts)+2)
	layers = append(layers, Options{Method: method}, c.defaults)
	layers = append(layers, callOpts...)
	opts := MergeOptions(layers...)

	req, err := NewRequest(rawurl, opts)
	if err != nil {
		return nil, err
	}

	if opts.RequestMiddleware != nil {
		if err := opts.RequestMiddleware(req); err != nil {
			return nil, err
		}
	}

	httpReq, err := req.Build(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	// Transport failures (DNS, refused, reset, TLS) propagate unchanged.
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Headers:    httpResp.Header,
	}

	if req.Raw {
		resp.Stream = httpResp.Body
		resp.ResponseTime = time.Since(start)
	} else {
		raw, err := io.ReadAll(httpResp.Body)
		httpResp.Body.Close()
		if err != nil {
			return nil, err
		}
		resp.RawBody = raw
		resp.ResponseTime = time.Since(start)

		body, err := decodeBody(raw, httpResp.Header.Get("Content-Type"))
		if err != nil {
			if resp.IsSuccess() {
				return nil, &MalformedResponseError{URL: req.URL(), Err: err}
			}
			// On an error status the body only feeds diagnostics; fall
			// back to the raw text rather than masking the HTTP error.
			body = string(raw)
		}
		resp.Body = body
	}

	if opts.ResponseMiddleware != nil {
		if err := opts.ResponseMiddleware(resp); err != nil {
			if resp.Stream != nil {
				resp.Stream.Close()
			}
			return nil, err
		}
	}

	if !resp.IsSuccess() {
		body := resp.Body
		if req.Raw {
			// The error body is small and diagnostic; buffer it even in
			// raw mode so the error can carry it.
			raw, readErr := io.ReadAll(resp.Stream)
			resp.Stream.Close()
			if readErr == nil {
				if decoded, decErr := decodeBody(raw, httpResp.Header.Get("Content-Type")); decErr == nil {
					body = decoded
				} else {
					body = string(raw)
				}
			}
		}
		return nil, NewHTTPError(req.Method, req.URL(), resp.StatusCode, body)
	}

	return resp, nil
}

// decodeBody parses buffered bytes according to the response content type:
// application/json bodies are JSON-decoded, everything else is returned as
// text verbatim.
func decodeBody(raw []byte, contentType string) (any, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "application/json" {
		return string(raw), nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}
