package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	// 5 reqs/sec, 10 reqs/min, 1s ban
	rl := NewRateLimiter(5, 10, 1*time.Second)
	ip := "127.0.0.1"

	// Initial requests should be allowed
	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow(ip), "Request %d should be allowed", i)
	}

	// 6th request should fail due to per-second limit
	assert.False(t, rl.Allow(ip), "6th request should be blocked")
	assert.True(t, rl.IsBanned(ip), "IP should be banned")

	// Other IPs are unaffected
	assert.True(t, rl.Allow("10.0.0.1"))
}

func TestMessageRateLimiter(t *testing.T) {
	// 5 msgs/sec, warning threshold is max/2 = 2
	ml := NewMessageRateLimiter(5)
	clientID := "client1"

	for i := 0; i < 5; i++ {
		allowed, warning := ml.AllowMessage(clientID)
		assert.True(t, allowed)
		if i >= 3 {
			assert.True(t, warning, "Should warn after threshold")
		}
	}

	// 6th message should be blocked and counted as a warning
	allowed, warning := ml.AllowMessage(clientID)
	assert.False(t, allowed)
	assert.True(t, warning)
	assert.Equal(t, 1, ml.GetWarningCount(clientID))

	// Removing the client resets its record
	ml.RemoveClient(clientID)
	assert.Equal(t, 0, ml.GetWarningCount(clientID))
	allowed, _ = ml.AllowMessage(clientID)
	assert.True(t, allowed)
}

func TestOriginChecker(t *testing.T) {
	makeReq := func(origin string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/ws", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		return r
	}

	// Empty list allows everything
	oc := NewOriginChecker(nil)
	assert.True(t, oc.Check(makeReq("https://evil.example")))

	// Wildcard allows everything
	oc = NewOriginChecker([]string{"*"})
	assert.True(t, oc.Check(makeReq("https://evil.example")))

	// Explicit list is case-insensitive and blocks the rest
	oc = NewOriginChecker([]string{"https://game.example.com"})
	assert.True(t, oc.Check(makeReq("https://Game.Example.Com")))
	assert.False(t, oc.Check(makeReq("https://evil.example")))

	// Missing Origin header is treated as same-origin
	assert.True(t, oc.Check(makeReq("")))
}

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.RemoteAddr = "192.168.1.10:54321"
	assert.Equal(t, "192.168.1.10", GetClientIP(r))

	r.Header.Set("X-Real-IP", "203.0.113.7")
	assert.Equal(t, "203.0.113.7", GetClientIP(r))

	// X-Forwarded-For wins and takes the first hop
	r.Header.Set("X-Forwarded-For", "198.51.100.1, 203.0.113.7")
	assert.Equal(t, "198.51.100.1", GetClientIP(r))
}
