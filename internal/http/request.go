package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	ProtocolHTTP  = "http"
	ProtocolHTTPS = "https"
)

// Request is the fully resolved descriptor for one outbound call. It is
// constructed fresh per call and never reused.
type Request struct {
	Method   string
	Protocol string
	Host     string
	Port     int
	Path     string
	Headers  map[string]string
	Body     map[string]string
	Raw      bool
}

// NewRequest resolves a URL string and a merged option set into a request
// descriptor. Option-level Protocol/Host/Port/Path override the URL-derived
// values. When no port is given, it defaults to 443 for https and 80
// otherwise.
func NewRequest(rawurl string, opts Options) (*Request, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, &InvalidURLError{URL: rawurl, Err: err}
	}

	req := &Request{
		Method:   opts.Method,
		Protocol: u.Scheme,
		Host:     u.Hostname(),
		Path:     u.Path,
		Headers:  make(map[string]string, len(opts.Headers)),
		Body:     opts.Body,
		Raw:      opts.Raw,
	}
	for k, v := range opts.Headers {
		req.Headers[k] = v
	}
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	if u.RawQuery != "" {
		req.Path += "?" + u.RawQuery
	}
	if p := u.Port(); p != "" {
		// url.Parse has already rejected non-numeric ports.
		req.Port, _ = strconv.Atoi(p)
	}

	if opts.Protocol != "" {
		req.Protocol = opts.Protocol
	}
	if opts.Host != "" {
		req.Host = opts.Host
	}
	if opts.Port != 0 {
		req.Port = opts.Port
	}
	if opts.Path != "" {
		req.Path = opts.Path
	}

	if req.Host == "" {
		return nil, &InvalidURLError{URL: rawurl, Err: errors.New("missing host")}
	}
	if req.Protocol == "" {
		req.Protocol = ProtocolHTTPS
	}
	if req.Port == 0 {
		req.Port = defaultPort(req.Protocol)
	}
	if req.Path == "" {
		req.Path = "/"
	}

	return req, nil
}

// URL reassembles the full resolved URL. The port is omitted when it matches
// the protocol's default.
func (r *Request) URL() string {
	host := r.Host
	if r.Port != defaultPort(r.Protocol) {
		host = fmt.Sprintf("%s:%d", r.Host, r.Port)
	}
	path := r.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return fmt.Sprintf("%s://%s%s", r.Protocol, host, path)
}

// Build constructs the net/http request that carries this descriptor. POST
// bodies are form-encoded, with Content-Type set accordingly; Content-Length
// is derived from the encoded form by net/http.
func (r *Request) Build(ctx context.Context) (*http.Request, error) {
	var body io.Reader
	encoded := ""
	if r.Method == http.MethodPost && r.Body != nil {
		form := make(url.Values, len(r.Body))
		for k, v := range r.Body {
			form.Set(k, v)
		}
		encoded = form.Encode()
		body = strings.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, r.Method, r.URL(), body)
	if err != nil {
		return nil, &InvalidURLError{URL: r.URL(), Err: err}
	}

	for k, v := range r.Headers {
		httpReq.Header.Set(k, v)
	}
	if encoded != "" {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	return httpReq, nil
}

func defaultPort(protocol string) int {
	if protocol == ProtocolHTTPS {
		return 443
	}
	return 80
}
