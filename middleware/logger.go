package middleware

import (
	"encoding/json"
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger replaces Gin's default access log with one JSON line per request,
// suitable for centralized aggregation. Request bodies and credentials are
// never logged.
func Logger() gin.HandlerFunc {
	hostname, _ := os.Hostname()
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		requestID, _ := param.Keys["requestId"].(string)
		entry := struct {
			Timestamp string  `json:"ts"`
			Level     string  `json:"level"`
			Hostname  string  `json:"host"`
			RequestID string  `json:"requestId,omitempty"`
			ClientIP  string  `json:"ip"`
			Method    string  `json:"method"`
			Path      string  `json:"path"`
			Status    int     `json:"status"`
			LatencyMs float64 `json:"latencyMs"`
			BodySize  int     `json:"size"`
			Error     string  `json:"error,omitempty"`
		}{
			Timestamp: param.TimeStamp.UTC().Format(time.RFC3339Nano),
			Level:     "info",
			Hostname:  hostname,
			RequestID: requestID,
			ClientIP:  param.ClientIP,
			Method:    param.Method,
			Path:      param.Path,
			Status:    param.StatusCode,
			LatencyMs: float64(param.Latency) / float64(time.Millisecond),
			BodySize:  param.BodySize,
			Error:     param.ErrorMessage,
		}
		b, _ := json.Marshal(entry)
		return string(b) + "\n"
	})
}
