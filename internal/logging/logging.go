// Package logging writes one JSON line per event so the service's
// stdout can be shipped to a collector without a parsing step.
package logging

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request id back to the caller so a
// support ticket can be matched to a log line.
const RequestIDHeader = "X-Request-ID"

// Requests slower than this log at warn even when they succeed.
const slowRequestThreshold = 2 * time.Second

func init() {
	log.SetOutput(os.Stdout)
}

type fields map[string]interface{}

func emit(level, msg string, f fields) {
	line := fields{
		"level": level,
		"ts":    time.Now().UTC().Format(time.RFC3339Nano),
		"msg":   msg,
	}
	for k, v := range f {
		line[k] = v
	}
	b, _ := json.Marshal(line)
	log.Println(string(b))
}

// RequestLogger assigns each request an id, echoes it in
// RequestIDHeader, and writes a summary line once the handler chain
// finishes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := uuid.New().String()
		c.Header(RequestIDHeader, reqID)
		c.Set("request_id", reqID)

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		level := "info"
		switch {
		case status >= http.StatusInternalServerError || len(c.Errors) > 0:
			level = "error"
		case latency > slowRequestThreshold:
			level = "warn"
		}

		f := fields{
			"request_id": reqID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"query":      c.Request.URL.RawQuery,
			"status":     status,
			"latency_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":  c.ClientIP(),
			"bytes_out":  c.Writer.Size(),
		}
		if len(c.Errors) > 0 {
			f["error"] = c.Errors.String()
		}

		emit(level, "request", f)
	}
}
