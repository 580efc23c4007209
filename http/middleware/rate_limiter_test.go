package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/switchback-web/switchback/http/middleware"
)

func TestRateLimit(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	limited := middleware.RateLimit(middleware.NewVisitors())(handler)

	// burst budget is 20; the 21st immediate request is rejected
	var last int
	for i := 0; i < 21; i++ {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Forwarded-For", "93.184.216.34")
		limited.ServeHTTP(w, r)
		last = w.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, last)
}
