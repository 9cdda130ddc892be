package http

// RequestMiddleware is invoked with the fully resolved request descriptor
// immediately before transport dispatch. It may mutate the descriptor.
type RequestMiddleware func(*Request) error

// ResponseMiddleware is invoked with the response wrapper immediately after
// body decoding and before status evaluation. It may mutate body or headers.
type ResponseMiddleware func(*Response) error

// Options is one layer of request configuration. Zero-valued fields are
// treated as unset and do not participate in merging.
type Options struct {
	// Method is the HTTP method (GET, POST, PATCH, PUT, DELETE).
	Method string

	// Headers maps case-sensitive header names to values.
	Headers map[string]string

	// Body holds form fields for POST requests; they are serialized as
	// application/x-www-form-urlencoded before sending.
	Body map[string]string

	// Raw skips body buffering and decoding; the live response stream is
	// handed to the caller instead.
	Raw bool

	// Protocol, Host, Port, and Path override the corresponding values
	// derived from the request URL when set.
	Protocol string
	Host     string
	Port     int
	Path     string

	RequestMiddleware  RequestMiddleware
	ResponseMiddleware ResponseMiddleware
}

// MergeOptions combines configuration layers ordered from lowest to highest
// precedence. Headers merge key-by-key across all layers, with later layers
// winning per key; every other field follows last-set-wins, where "set"
// means non-zero. A Raw value of true in any layer is sticky, since a false
// is indistinguishable from unset.
func MergeOptions(layers ...Options) Options {
	var merged Options

	for _, layer := range layers {
		if layer.Method != "" {
			merged.Method = layer.Method
		}
		if len(layer.Headers) > 0 {
			if merged.Headers == nil {
				merged.Headers = make(map[string]string, len(layer.Headers))
			}
			for k, v := range layer.Headers {
				merged.Headers[k] = v
			}
		}
		if layer.Body != nil {
			merged.Body = layer.Body
		}
		if layer.Raw {
			merged.Raw = true
		}
		if layer.Protocol != "" {
			merged.Protocol = layer.Protocol
		}
		if layer.Host != "" {
			merged.Host = layer.Host
		}
		if layer.Port != 0 {
			merged.Port = layer.Port
		}
		if layer.Path != "" {
			merged.Path = layer.Path
		}
		if layer.RequestMiddleware != nil {
			merged.RequestMiddleware = layer.RequestMiddleware
		}
		if layer.ResponseMiddleware != nil {
			merged.ResponseMiddleware = layer.ResponseMiddleware
		}
	}

	return merged
}
