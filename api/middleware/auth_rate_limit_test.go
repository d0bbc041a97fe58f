package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubLimiterStore struct {
	counts map[string]int64
	err    error
}

func (s *stubLimiterStore) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	if s.counts == nil {
		s.counts = map[string]int64{}
	}
	s.counts[key]++
	return s.counts[key], nil
}

func loginRequest(username string) *http.Request {
	body := strings.NewReader(`{"username":"` + username + `","password":"x"}`)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body)
	r.RemoteAddr = "203.0.113.9:51234"
	return r
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRateLimitAllowsUnderLimit(t *testing.T) {
	store := &stubLimiterStore{}
	policy := NewAuthRateLimitPolicy("login", time.Minute, 10, 5)
	handler := AuthRateLimit(policy, store, nil)(okHandler())

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, loginRequest("rex"))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestAuthRateLimitBlocksUsernameOverLimit(t *testing.T) {
	store := &stubLimiterStore{}
	policy := NewAuthRateLimitPolicy("login", time.Minute, 100, 2)
	handler := AuthRateLimit(policy, store, nil)(okHandler())

	handler.ServeHTTP(httptest.NewRecorder(), loginRequest("rex"))
	handler.ServeHTTP(httptest.NewRecorder(), loginRequest("rex"))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, loginRequest("rex"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// a different username is still allowed
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, loginRequest("maria"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRateLimitBlocksIPOverLimit(t *testing.T) {
	store := &stubLimiterStore{}
	policy := NewAuthRateLimitPolicy("login", time.Minute, 2, 0)
	handler := AuthRateLimit(policy, store, nil)(okHandler())

	handler.ServeHTTP(httptest.NewRecorder(), loginRequest("a"))
	handler.ServeHTTP(httptest.NewRecorder(), loginRequest("b"))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, loginRequest("c"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestAuthRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	handler := AuthRateLimit(AuthRateLimitPolicy{}, &stubLimiterStore{}, nil)(okHandler())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, loginRequest("rex"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRateLimitHashesUsernameKeys(t *testing.T) {
	store := &stubLimiterStore{}
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 5)
	handler := AuthRateLimit(policy, store, nil)(okHandler())

	handler.ServeHTTP(httptest.NewRecorder(), loginRequest("rex"))

	for key := range store.counts {
		assert.NotContains(t, key, "rex")
	}
}
