package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func realIPRouter() *gin.Engine {
	r := gin.New()
	r.GET("/", RealIP(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("real_ip"))
	})
	return r
}

func TestRealIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{
			name:    "cloudflare header wins",
			headers: map[string]string{"CF-Connecting-IP": "203.0.113.7", "X-Forwarded-For": "198.51.100.1"},
			want:    "203.0.113.7",
		},
		{
			name:    "left-most forwarded-for",
			headers: map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.1"},
			want:    "198.51.100.1",
		},
		{
			name:    "invalid header falls through",
			headers: map[string]string{"CF-Connecting-IP": "not-an-ip"},
			want:    "", // falls back to ClientIP, empty in httptest without RemoteAddr parsing
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := realIPRouter()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if tt.want != "" {
				assert.Equal(t, tt.want, w.Body.String())
			}
		})
	}
}

func TestRateLimit_NilRedisPassesThrough(t *testing.T) {
	r := gin.New()
	r.GET("/", RateLimit(nil, 10, 0, KeyByIP(), nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
