package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports the liveness of one infrastructure dependency.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}

// FuncChecker adapts a name and a ping function to a HealthChecker, for
// dependencies whose client type exposes a Ping(ctx) error method
// directly rather than implementing HealthChecker itself.
type FuncChecker struct {
	CheckerName string
	Ping        func(ctx context.Context) error
}

func (f FuncChecker) Name() string { return f.CheckerName }

func (f FuncChecker) Check(ctx context.Context) error { return f.Ping(ctx) }

// HealthHandler answers liveness and readiness probes.
type HealthHandler struct {
	checkers []HealthChecker
	version  string
	startAt  time.Time
}

// NewHealthHandler constructs a HealthHandler over the given checkers.
func NewHealthHandler(version string, checkers ...HealthChecker) *HealthHandler {
	return &HealthHandler{checkers: checkers, version: version, startAt: time.Now()}
}

// Liveness always reports 200 once the process is running.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "alive",
		"version": h.version,
		"uptime":  time.Since(h.startAt).Truncate(time.Second).String(),
	})
}

// Readiness reports 503 if any registered dependency fails its check.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if len(h.checkers) == 0 {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	components := h.checkAll(ctx)
	healthy := true
	for _, status := range components {
		if status != "healthy" {
			healthy = false
			break
		}
	}

	if healthy {
		c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
		return
	}
	c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
}

func (h *HealthHandler) checkAll(ctx context.Context) map[string]string {
	results := make(map[string]string, len(h.checkers))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, checker := range h.checkers {
		wg.Add(1)
		go func(chk HealthChecker) {
			defer wg.Done()
			status := "healthy"
			if err := chk.Check(ctx); err != nil {
				status = "unhealthy: " + err.Error()
			}
			mu.Lock()
			results[chk.Name()] = status
			mu.Unlock()
		}(checker)
	}
	wg.Wait()
	return results
}
