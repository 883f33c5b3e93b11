package testutil

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"time"
)

// TestAccessToken is the token the fake gateway hands out
const TestAccessToken = "test-access-token"

// MockResponse is a canned gateway reply
type MockResponse struct {
	StatusCode int
	Body       []byte
	Headers    map[string]string
}

// RecordedRequest is what the fake gateway saw for one call
type RecordedRequest struct {
	Method      string
	Path        string
	Query       url.Values
	Form        url.Values
	JSON        map[string]any
	ContentType string
	Token       string
}

// FakeGateway serves canned envelopes on an httptest server and records
// every business request. The token endpoint is answered automatically.
type FakeGateway struct {
	Server *httptest.Server

	mu        sync.RWMutex
	routes    map[string]MockResponse
	requests  []RecordedRequest
	exchanges int
	tokenTTL  time.Duration
}

func NewFakeGateway() *FakeGateway {
	g := &FakeGateway{
		routes:   make(map[string]MockResponse),
		tokenTTL: 30 * time.Minute,
	}
	g.Server = httptest.NewServer(http.HandlerFunc(g.serve))
	return g
}

// URL is the base url clients should use
func (g *FakeGateway) URL() string {
	return g.Server.URL + "/"
}

func (g *FakeGateway) Close() {
	g.Server.Close()
}

// SetTokenTTL changes the lifetime reported for issued tokens
func (g *FakeGateway) SetTokenTTL(ttl time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tokenTTL = ttl
}

// RegisterResponse registers a raw reply for method and path
func (g *FakeGateway) RegisterResponse(method, path string, resp MockResponse) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.routes[routeKey(method, path)] = resp
}

// RegisterEnvelope registers a 200 reply wrapping response in the gateway
// envelope with the given code and message
func (g *FakeGateway) RegisterEnvelope(method, path string, code int, message string, response any) {
	body, err := json.Marshal(map[string]any{
		"code":     code,
		"message":  message,
		"response": response,
	})
	if err != nil {
		panic(err)
	}
	g.RegisterResponse(method, path, MockResponse{StatusCode: http.StatusOK, Body: body})
}

// RegisterSuccess registers a code 0 envelope around response
func (g *FakeGateway) RegisterSuccess(method, path string, response any) {
	g.RegisterEnvelope(method, path, 0, "", response)
}

// Requests returns the recorded business requests in arrival order
func (g *FakeGateway) Requests() []RecordedRequest {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]RecordedRequest(nil), g.requests...)
}

// LastRequest returns the most recent business request
func (g *FakeGateway) LastRequest() (RecordedRequest, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if len(g.requests) == 0 {
		return RecordedRequest{}, false
	}
	return g.requests[len(g.requests)-1], true
}

// Exchanges counts token exchanges served
func (g *FakeGateway) Exchanges() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.exchanges
}

// Hits counts every request the gateway received, token exchanges included
func (g *FakeGateway) Hits() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.exchanges + len(g.requests)
}

// Clear forgets routes and recorded requests
func (g *FakeGateway) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.routes = make(map[string]MockResponse)
	g.requests = nil
	g.exchanges = 0
}

func (g *FakeGateway) serve(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/users/getToken" {
		g.serveToken(w, r)
		return
	}

	rec := RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Token:  r.Header.Get("X-ImpTokenHeader"),
	}
	rec.ContentType, _, _ = mime.ParseMediaType(r.Header.Get("Content-Type"))

	body, _ := io.ReadAll(r.Body)
	switch rec.ContentType {
	case "application/json":
		_ = json.Unmarshal(body, &rec.JSON)
	case "application/x-www-form-urlencoded":
		rec.Form, _ = url.ParseQuery(string(body))
	}

	g.mu.Lock()
	g.requests = append(g.requests, rec)
	resp, ok := g.routes[routeKey(r.Method, r.URL.Path)]
	g.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	if resp.StatusCode == 0 {
		resp.StatusCode = http.StatusOK
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(resp.Body)
}

func (g *FakeGateway) serveToken(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	g.exchanges++
	ttl := g.tokenTTL
	g.mu.Unlock()

	now := time.Now().Unix()
	_ = json.NewEncoder(w).Encode(map[string]any{
		"code":    0,
		"message": nil,
		"response": map[string]any{
			"access_token": TestAccessToken,
			"now":          now,
			"expired_at":   now + int64(ttl/time.Second),
		},
	})
}

func routeKey(method, path string) string {
	return method + " /" + strings.TrimPrefix(path, "/")
}
