package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/eliezerb2/presence/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{name: "echoes caller id", header: "abc-123", keep: true},
		{name: "mints when missing", header: ""},
		{name: "replaces overlong id", header: strings.Repeat("x", 65)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			r := gin.New()
			r.Use(RequestID())
			r.GET("/ping", func(c *gin.Context) {
				seen = contextutil.GetRequestID(c.Request.Context())
				c.Status(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.header != "" {
				req.Header.Set(HeaderRequestID, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get(HeaderRequestID)
			require.NotEmpty(t, got)
			assert.Equal(t, got, seen)
			if tt.keep {
				assert.Equal(t, tt.header, got)
			} else {
				assert.NotEqual(t, tt.header, got)
				assert.LessOrEqual(t, len(got), 64)
			}
		})
	}
}

func TestContextLogger_CarriesRequestFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	r := gin.New()
	r.Use(RequestID(), Actor("manager"), ContextLogger(zap.New(core)))
	r.GET("/api/v1/claims", func(c *gin.Context) {
		contextutil.GetLogger(c.Request.Context(), nil).Info("listed")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/claims", nil)
	req.Header.Set(HeaderRequestID, "rid-1")
	req.Header.Set("X-Actor-Name", "Dana")
	r.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("listed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "rid-1", fields["request_id"])
	assert.Equal(t, "manager", fields["actor"])
	assert.Equal(t, "Dana", fields["actor_name"])
	assert.Equal(t, "/api/v1/claims", fields["route"])
}

func TestRateLimitByParam(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.POST("/kiosk/:student_id", RateLimitByParam("student_id", rate.Every(time.Hour), 1), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	hit := func(id string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/kiosk/"+id, nil))
		return w
	}

	assert.Equal(t, http.StatusOK, hit("s1").Code)
	assert.Equal(t, http.StatusOK, hit("s2").Code)

	w := hit("s1")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	var body struct {
		Ok    bool           `json:"ok"`
		Error map[string]any `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Ok)
	assert.Equal(t, "RATE_LIMITED", body.Error["code"])
	assert.Equal(t, w.Header().Get(HeaderRequestID), body.Error["requestId"])
}

func TestKeyedRateLimiter_EvictsIdleKeys(t *testing.T) {
	now := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	l := NewKeyedRateLimiter(rate.Every(time.Hour), 1)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("s1"))
	assert.False(t, l.Allow("s1"))

	now = now.Add(limiterIdleTTL + time.Minute)
	assert.True(t, l.Allow("s2"))
	assert.Equal(t, 1, l.size())
}
