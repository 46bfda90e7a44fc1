package logging

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// LogFormatter plugs the application logger into chi's RequestLogger middleware
type LogFormatter struct {
	logger LoggerInterface
}

func (f *LogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	entry := new(LogEntry)

	entry.logger = f.logger
	entry.method = r.Method
	entry.path = r.URL.Path
	entry.requestID = middleware.GetReqID(r.Context())
	entry.remoteAddr = r.RemoteAddr

	return entry
}

type LogEntry struct {
	logger LoggerInterface

	method     string
	path       string
	requestID  string
	remoteAddr string
}

func (e *LogEntry) Write(status, bytes int, header http.Header, elapsed time.Duration, extra interface{}) {
	e.logger.Debugf(
		"request_id=%s method=%s path=%s remote=%s status=%d bytes=%d elapsed=%s",
		e.requestID, e.method, e.path, e.remoteAddr, status, bytes, elapsed,
	)
}

func (e *LogEntry) Panic(v interface{}, stack []byte) {
	e.logger.Error(fmt.Sprintf("request_id=%s panic=%v stack=%s", e.requestID, v, stack))
}

func NewLogFormatter(logger LoggerInterface) *LogFormatter {
	f := new(LogFormatter)

	f.logger = logger

	return f
}
