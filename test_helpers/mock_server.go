package test_helpers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// MockServer provides a configurable mock LinkedIn API server for testing.
type MockServer struct {
	server     *httptest.Server
	handler    *mockHandler
	requestLog []RequestEntry
	logMutex   sync.Mutex
}

// RequestEntry logs incoming requests for assertions.
type RequestEntry struct {
	Method       string
	Path         string
	RawQuery     string
	Headers      http.Header
	Body         string
	Timestamp    time.Time
	ResponseCode int
}

// MockResponse defines a mock API response.
type MockResponse struct {
	Status  int
	Body    string
	Headers map[string]string
}

type mockHandler struct {
	server      *MockServer
	responses   map[string]*MockResponse
	defaultResp *MockResponse
	mutex       sync.RWMutex
}

// NewMockServer creates a new mock server instance.
func NewMockServer() *MockServer {
	ms := &MockServer{}
	ms.handler = &mockHandler{
		server:    ms,
		responses: make(map[string]*MockResponse),
		defaultResp: &MockResponse{
			Status: http.StatusOK,
			Body:   `{"message": "mock response"}`,
		},
	}
	ms.server = httptest.NewServer(ms.handler)
	return ms
}

// URL returns the base URL of the mock server.
func (ms *MockServer) URL() string {
	return ms.server.URL
}

// Close shuts down the mock server.
func (ms *MockServer) Close() {
	ms.server.Close()
}

// SetResponse configures a response for a specific path (without query string).
func (ms *MockServer) SetResponse(path string, response *MockResponse) {
	ms.handler.mutex.Lock()
	defer ms.handler.mutex.Unlock()
	ms.handler.responses[path] = response
}

// SetDefaultResponse configures the response for unmatched paths.
func (ms *MockServer) SetDefaultResponse(response *MockResponse) {
	ms.handler.mutex.Lock()
	defer ms.handler.mutex.Unlock()
	ms.handler.defaultResp = response
}

// Requests returns a copy of the request log.
func (ms *MockServer) Requests() []RequestEntry {
	ms.logMutex.Lock()
	defer ms.logMutex.Unlock()
	out := make([]RequestEntry, len(ms.requestLog))
	copy(out, ms.requestLog)
	return out
}

// RequestCount returns the number of requests received so far.
func (ms *MockServer) RequestCount() int {
	ms.logMutex.Lock()
	defer ms.logMutex.Unlock()
	return len(ms.requestLog)
}

// LastRequest returns the most recent request, or nil if none were made.
func (ms *MockServer) LastRequest() *RequestEntry {
	ms.logMutex.Lock()
	defer ms.logMutex.Unlock()
	if len(ms.requestLog) == 0 {
		return nil
	}
	entry := ms.requestLog[len(ms.requestLog)-1]
	return &entry
}

func (h *mockHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	h.mutex.RLock()
	resp, ok := h.responses[r.URL.Path]
	if !ok {
		resp = h.defaultResp
	}
	h.mutex.RUnlock()

	h.server.logMutex.Lock()
	h.server.requestLog = append(h.server.requestLog, RequestEntry{
		Method:       r.Method,
		Path:         r.URL.Path,
		RawQuery:     r.URL.RawQuery,
		Headers:      r.Header.Clone(),
		Body:         string(body),
		Timestamp:    time.Now(),
		ResponseCode: resp.Status,
	})
	h.server.logMutex.Unlock()

	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.Status)
	_, _ = w.Write([]byte(resp.Body))
}
