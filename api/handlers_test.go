package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kztmrngs/FastSieve/config"
)

func testServer() *Server {
	cfg := config.DefaultConfig()
	cfg.API.MaxSpan = 1_000_000
	cfg.API.MaxList = 1000
	return NewServerWithVersion(cfg, "test")
}

func doGet(t *testing.T, s *Server, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doGet(t, testServer(), "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "test", resp.Version)
}

func TestPrimesAllMode(t *testing.T) {
	rec := doGet(t, testServer(), "/api/v1/primes?hi=100")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PrimesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 25, resp.Count)
	require.Len(t, resp.Primes, 25)
	assert.Equal(t, uint64(2), resp.Primes[0])
	assert.Equal(t, uint64(97), resp.Primes[24])
	assert.False(t, resp.Truncated)
}

func TestPrimesRangeMode(t *testing.T) {
	rec := doGet(t, testServer(), "/api/v1/primes?lo=100&hi=200")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PrimesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 21, resp.Count)
	assert.Equal(t, uint64(101), resp.Primes[0])
	assert.Equal(t, uint64(199), resp.Primes[20])
}

func TestPrimesEmptyRange(t *testing.T) {
	rec := doGet(t, testServer(), "/api/v1/primes?hi=1")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PrimesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Zero(t, resp.Count)
	assert.NotNil(t, resp.Primes)
}

func TestPrimesTruncation(t *testing.T) {
	rec := doGet(t, testServer(), "/api/v1/primes?hi=100000&limit=10")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PrimesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 9592, resp.Count)
	assert.Len(t, resp.Primes, 10)
	assert.True(t, resp.Truncated)
}

func TestPrimesBadRequests(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"missing hi", "/api/v1/primes"},
		{"malformed hi", "/api/v1/primes?hi=abc"},
		{"malformed lo", "/api/v1/primes?lo=-1&hi=10"},
		{"lo above hi", "/api/v1/primes?lo=100&hi=10"},
		{"span too wide", "/api/v1/primes?hi=99000000"},
		{"bad limit", "/api/v1/primes?hi=10&limit=0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGet(t, testServer(), tt.url)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, http.StatusBadRequest, resp.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestCount(t *testing.T) {
	rec := doGet(t, testServer(), "/api/v1/count?hi=1000000")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 78498, resp.Count)
}

func TestMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/primes?hi=10", nil)
	rec := httptest.NewRecorder()
	testServer().Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORSForLocalhost(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	testServer().Handler().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSRejectsRemoteOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	testServer().Handler().ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
