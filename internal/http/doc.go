// Package http implements a small convenience layer over net/http: it merges
// layered request options, resolves URLs into a request descriptor, issues a
// single request through the platform transport, and normalizes the response
// (JSON-aware body decoding, typed errors for non-2xx status codes).
//
// Every call is one independent request/response exchange. There is no
// connection pooling beyond what net/http provides, no retries, no redirect
// following, and no library-level timeout; cancellation comes from the
// caller's context.
package http
