package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/postdigester/donation-backend/pkg/logger"
)

var startTime = time.Now()

// Dependency is one backing service probed by /ready.
type Dependency struct {
	Name string
	Ping func(ctx context.Context) error
}

// RegisterStatus mounts the root status payload, /health and /ready.
func RegisterStatus(r *gin.Engine, deps ...Dependency) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Server is running", "timestamp": time.Now().UTC()})
	})

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// 200 only when every dependency answers its ping
	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		ready := true
		status := map[string]bool{}
		for _, d := range deps {
			err := d.Ping(ctx)
			status[d.Name] = err == nil
			if err != nil {
				logger.Warnf("readiness: %s: %v", d.Name, err)
				ready = false
			}
		}
		uptime := time.Since(startTime).String()
		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": status, "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": status, "uptime": uptime})
	})
}
