package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type accessLine struct {
	Time     string `json:"time"`
	Level    string `json:"level"`
	Msg      string `json:"msg"`
	TraceID  string `json:"trace_id"`
	Method   string `json:"method"`
	Path     string `json:"path"`
	Status   int    `json:"status"`
	Latency  string `json:"latency"`
	ClientIP string `json:"client_ip"`
	Error    string `json:"error,omitempty"`
}

// SetupGin 安装 JSON 访问日志与 panic 恢复
func SetupGin(r *gin.Engine) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output:    LogWriter,
		SkipPaths: []string{"/metrics"},
		Formatter: formatAccessLine,
	}))

	r.Use(gin.Recovery())
}

func formatAccessLine(p gin.LogFormatterParams) string {
	line := accessLine{
		Time:     p.TimeStamp.Format(time.RFC3339),
		Level:    "INFO",
		Msg:      "GIN_ACCESS",
		Method:   p.Method,
		Path:     p.Path,
		Status:   p.StatusCode,
		Latency:  p.Latency.String(),
		ClientIP: p.ClientIP,
		Error:    p.ErrorMessage,
	}
	if id, ok := p.Keys[TraceIDKey].(string); ok {
		line.TraceID = id
	}
	if line.TraceID == "" && p.Request != nil {
		line.TraceID = TraceID(p.Request.Context())
	}
	if p.StatusCode >= 500 {
		line.Level = "ERROR"
	}

	b, err := json.Marshal(line)
	if err != nil {
		return ""
	}
	return string(b) + "\n"
}
