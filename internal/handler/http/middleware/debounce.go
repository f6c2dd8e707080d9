package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/handler/http/response"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// SearchDebouncer rejects a client's repeated search requests that arrive
// within the configured window of the previous accepted one.
type SearchDebouncer struct {
	window  time.Duration
	clients map[string]*clientLimiter
	mu      sync.Mutex
	now     func() time.Time
}

func NewSearchDebouncer(window time.Duration) *SearchDebouncer {
	return &SearchDebouncer{
		window:  window,
		clients: make(map[string]*clientLimiter),
		now:     time.Now,
	}
}

// Allow reports whether the client identified by key may search now.
func (d *SearchDebouncer) Allow(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	c, ok := d.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rate.Every(d.window), 1)}
		d.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// Sweep forgets clients idle for longer than maxIdle and returns how many were dropped.
func (d *SearchDebouncer) Sweep(maxIdle time.Duration) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	cutoff := d.now().Add(-maxIdle)
	dropped := 0
	for key, c := range d.clients {
		if c.lastSeen.Before(cutoff) {
			delete(d.clients, key)
			dropped++
		}
	}
	return dropped
}

func (d *SearchDebouncer) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !d.Allow(clientAddress(r)) {
			response.TooManyRequests(w, "Search requested too frequently, try again shortly")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
