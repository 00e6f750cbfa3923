package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newContext(remoteAddr string, headers map[string]string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest("GET", "/catalog", nil)
	req.RemoteAddr = remoteAddr
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	c.Request = req
	return c
}

func TestExtractClientIP(t *testing.T) {
	headers := map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}

	t.Run("ignores proxy headers when untrusted", func(t *testing.T) {
		c := newContext("192.0.2.10:51234", headers)
		assert.Equal(t, "192.0.2.10", ExtractClientIP(c, false))
	})

	t.Run("uses first forwarded ip when trusted", func(t *testing.T) {
		c := newContext("10.0.0.1:443", headers)
		assert.Equal(t, "203.0.113.7", ExtractClientIP(c, true))
	})

	t.Run("falls back to x-real-ip", func(t *testing.T) {
		c := newContext("10.0.0.1:443", map[string]string{"X-Real-IP": "198.51.100.4"})
		assert.Equal(t, "198.51.100.4", ExtractClientIP(c, true))
	})

	t.Run("ipv6 remote addr", func(t *testing.T) {
		c := newContext("[2001:db8::1]:8080", nil)
		assert.Equal(t, "2001:db8::1", ExtractClientIP(c, false))
	})
}
