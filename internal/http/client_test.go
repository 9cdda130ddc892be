package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestClient_GetDecodesJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			t.Errorf("Expected method GET, got %s", r.Method)
		}
		if r.URL.Path != "/users/1" {
			t.Errorf("Expected path /users/1, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":1}`))
	}))
	defer server.Close()

	resp, err := NewClient().Get(context.Background(), server.URL+"/users/1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	want := map[string]any{"id": float64(1)}
	if !reflect.DeepEqual(resp.Body, want) {
		t.Errorf("Body = %v, want %v", resp.Body, want)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
}

func TestClient_GetPlainTextBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("hello"))
	}))
	defer server.Close()

	resp, err := NewClient().Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if resp.Body != "hello" {
		t.Errorf("Body = %v, want %q", resp.Body, "hello")
	}
}

func TestClient_NonSuccessRaisesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("not found"))
	}))
	defer server.Close()

	_, err := NewClient().Get(context.Background(), server.URL+"/missing")

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("Get() error = %v, want *HTTPError", err)
	}
	if httpErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", httpErr.StatusCode)
	}
	if httpErr.Body != "not found" {
		t.Errorf("Body = %v, want %q", httpErr.Body, "not found")
	}
	if httpErr.Method != "GET" {
		t.Errorf("Method = %q, want GET", httpErr.Method)
	}
}

func TestClient_RedirectIsNotFollowed(t *testing.T) {
	followed := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/target" {
			followed = true
			w.Write([]byte("target"))
			return
		}
		http.Redirect(w, r, "/target", http.StatusFound)
	}))
	defer server.Close()

	_, err := NewClient().Get(context.Background(), server.URL+"/start")

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("Get() error = %v, want *HTTPError", err)
	}
	if httpErr.StatusCode != http.StatusFound {
		t.Errorf("StatusCode = %d, want 302", httpErr.StatusCode)
	}
	if followed {
		t.Error("redirect was followed")
	}
}

func TestClient_MalformedJSONRaises(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"broken`))
	}))
	defer server.Close()

	_, err := NewClient().Get(context.Background(), server.URL)

	var malformedErr *MalformedResponseError
	if !errors.As(err, &malformedErr) {
		t.Fatalf("Get() error = %v, want *MalformedResponseError", err)
	}
}

func TestClient_MalformedJSONOnErrorStatusFallsBackToText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`oops, not json`))
	}))
	defer server.Close()

	_, err := NewClient().Get(context.Background(), server.URL)

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("Get() error = %v, want *HTTPError", err)
	}
	if httpErr.Body != "oops, not json" {
		t.Errorf("Body = %v, want raw text fallback", httpErr.Body)
	}
}

func TestClient_PostFormEncoding(t *testing.T) {
	var gotBody string
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	_, err := NewClient().Post(context.Background(), server.URL+"/form", Options{
		Body: map[string]string{"a": "1", "b": "2"},
	})
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}

	if gotBody != "a=1&b=2" {
		t.Errorf("body = %q, want %q", gotBody, "a=1&b=2")
	}
	if gotContentType != "application/x-www-form-urlencoded" {
		t.Errorf("Content-Type = %q, want application/x-www-form-urlencoded", gotContentType)
	}
}

func TestClient_StreamDeliversRawBytes(t *testing.T) {
	payload := []byte("chunk-one chunk-two chunk-three")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	resp, err := NewClient().Stream(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}
	defer resp.Stream.Close()

	if resp.Body != nil {
		t.Errorf("Body = %v, want nil in raw mode", resp.Body)
	}
	if resp.RawBody != nil {
		t.Error("RawBody populated in raw mode")
	}

	// Consume incrementally to make sure the handle is a live stream.
	var got []byte
	buf := make([]byte, 7)
	for {
		n, err := resp.Stream.Read(buf)
		got = append(got, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("reading stream: %v", err)
		}
	}
	if string(got) != string(payload) {
		t.Errorf("stream bytes = %q, want %q", got, payload)
	}
}

func TestClient_StreamErrorStatusBuffersBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"denied"}`))
	}))
	defer server.Close()

	_, err := NewClient().Stream(context.Background(), server.URL)

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("Stream() error = %v, want *HTTPError", err)
	}
	want := map[string]any{"error": "denied"}
	if !reflect.DeepEqual(httpErr.Body, want) {
		t.Errorf("Body = %v, want %v", httpErr.Body, want)
	}
}

func TestClient_DefaultOptionsMergeUnderCallOptions(t *testing.T) {
	var gotA, gotB string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotA = r.Header.Get("X-A")
		gotB = r.Header.Get("X-B")
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := NewClient(
		Options{Headers: map[string]string{"X-A": "1"}},
		Options{Headers: map[string]string{"X-B": "2"}},
	)

	_, err := client.Get(context.Background(), server.URL, Options{
		Headers: map[string]string{"X-A": "3"},
	})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if gotA != "3" {
		t.Errorf("X-A = %q, want 3 (call layer wins)", gotA)
	}
	if gotB != "2" {
		t.Errorf("X-B = %q, want 2 (instance layer preserved)", gotB)
	}
}

func TestClient_RequestMiddleware(t *testing.T) {
	var gotHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Injected")
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	_, err := NewClient().Get(context.Background(), server.URL, Options{
		RequestMiddleware: func(req *Request) error {
			req.Headers["X-Injected"] = "by-middleware"
			return nil
		},
	})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if gotHeader != "by-middleware" {
		t.Errorf("X-Injected = %q, want by-middleware", gotHeader)
	}
}

func TestClient_RequestMiddlewareErrorAbortsCall(t *testing.T) {
	reached := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))
	defer server.Close()

	wantErr := errors.New("rejected")
	_, err := NewClient().Get(context.Background(), server.URL, Options{
		RequestMiddleware: func(*Request) error { return wantErr },
	})

	if !errors.Is(err, wantErr) {
		t.Fatalf("Get() error = %v, want %v", err, wantErr)
	}
	if reached {
		t.Error("transport dispatch happened despite middleware error")
	}
}

func TestClient_ResponseMiddlewareRunsBeforeStatusEvaluation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}))
	defer server.Close()

	var observedStatus int
	_, err := NewClient().Get(context.Background(), server.URL, Options{
		ResponseMiddleware: func(resp *Response) error {
			observedStatus = resp.StatusCode
			resp.Body = "rewritten"
			return nil
		},
	})

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("Get() error = %v, want *HTTPError", err)
	}
	if observedStatus != http.StatusTeapot {
		t.Errorf("middleware saw status %d, want 418", observedStatus)
	}
	if httpErr.Body != "rewritten" {
		t.Errorf("Body = %v, want middleware-rewritten body", httpErr.Body)
	}
}

func TestClient_TransportErrorPropagatesUnchanged(t *testing.T) {
	// A closed server makes the connection refused.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient().Get(context.Background(), url)
	if err == nil {
		t.Fatal("Get() expected transport error, got nil")
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		t.Errorf("transport error was retyped as *HTTPError: %v", err)
	}
	var malformedErr *MalformedResponseError
	if errors.As(err, &malformedErr) {
		t.Errorf("transport error was retyped as *MalformedResponseError: %v", err)
	}
}

func TestClient_JSONRoundTrip(t *testing.T) {
	payload := `{"id":1,"name":"ada","tags":["x","y"],"meta":{"active":true,"score":9.5}}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(payload))
	}))
	defer server.Close()

	resp, err := NewClient().Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	want := map[string]any{
		"id":   float64(1),
		"name": "ada",
		"tags": []any{"x", "y"},
		"meta": map[string]any{"active": true, "score": 9.5},
	}
	if !reflect.DeepEqual(resp.Body, want) {
		t.Errorf("Body = %v, want %v", resp.Body, want)
	}
}

func TestPackageLevelHelpersUseDefaultClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	resp, err := Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if resp.Body != "ok" {
		t.Errorf("Body = %v, want ok", resp.Body)
	}

	streamResp, err := Stream(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}
	streamResp.Stream.Close()
}
