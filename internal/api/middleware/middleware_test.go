package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{}) {}
func (nopLogger) Warn(format string, v ...interface{}) {}

func TestAuthRejectsMissingUserID(t *testing.T) {
	called := false
	h := Auth(nopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	for _, raw := range []string{"", "abc", "0", "-5"} {
		req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
		if raw != "" {
			req.Header.Set(HeaderUserID, raw)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "X-User-ID=%q", raw)
		assert.False(t, called)
	}
}

func TestAuthPutsUserIDInContext(t *testing.T) {
	var gotID int64
	h := Auth(nopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserID(r.Context())
		require.True(t, ok)
		gotID = id
	}))

	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	req.Header.Set(HeaderUserID, "17")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, int64(17), gotID)
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	var ctxID string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = RequestIDFrom(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))
	assert.Equal(t, rec.Header().Get(HeaderRequestID), ctxID)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "req-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get(HeaderRequestID))
	assert.Equal(t, "req-123", ctxID)
}
