package logging

import (
	"os"
	"regexp"
	"sync"

	"go.uber.org/zap"
)

const traceparentHeader = "traceparent"

// version-traceid-spanid-flags, e.g.
// 00-ab42124a3c573678d4d8b21ba52df3bf-d21f7bc17caa5aba-01
var traceparentRe = regexp.MustCompile(`^[0-9a-fA-F]{2}-([0-9a-fA-F]{32})-([0-9a-fA-F]{16})-([0-9a-fA-F]{2})$`)

// projectEnv lists the variables that may carry the Google Cloud project,
// in lookup order.
var projectEnv = []string{
	"FIREBASE_PROJECT_ID",
	"GOOGLE_CLOUD_PROJECT",
	"GCP_PROJECT",
	"GCLOUD_PROJECT",
	"PROJECT_ID",
}

var projectID = sync.OnceValue(func() string {
	for _, key := range projectEnv {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
})

// span is a parsed W3C traceparent header.
type span struct {
	traceID string
	spanID  string
	sampled bool
}

func parseTraceparent(header string) (span, bool) {
	m := traceparentRe.FindStringSubmatch(header)
	if m == nil {
		return span{}, false
	}
	return span{traceID: m[1], spanID: m[2], sampled: m[3] == "01"}, true
}

// resource is the Cloud Trace resource name, empty without a project.
func (s span) resource(project string) string {
	if project == "" || s.traceID == "" {
		return ""
	}
	return "projects/" + project + "/traces/" + s.traceID
}

// fields correlates log entries with the trace in Cloud Logging.
func (s span) fields(project string) []zap.Field {
	res := s.resource(project)
	if res == "" {
		return nil
	}
	return []zap.Field{
		zap.String("logging.googleapis.com/trace", res),
		zap.String("logging.googleapis.com/spanId", s.spanID),
		zap.Bool("logging.googleapis.com/trace_sampled", s.sampled),
	}
}

// requestLogger derives the per-request logger from base.
func requestLogger(base *zap.Logger, s span, project, requestID string) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	fields := s.fields(project)
	if requestID != "" {
		fields = append(fields, zap.String("requestId", requestID))
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}
