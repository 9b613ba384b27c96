package logging

import (
	"context"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestLogAuditEvent(t *testing.T) {
	logger, logs := observe(zapcore.InfoLevel)
	ctx := contextWithLogger(context.Background(), logger)

	LogAuditEvent(ctx, "update", "admin-1", "property", "gramado-house-1", AuditSuccess,
		map[string]any{"fields": []string{"price", "featured"}})
	LogAuditEvent(ctx, "toggle", "user-7", "favorite", "user-7_canela-land-1", AuditFailure, nil)

	entries := logs.FilterMessage("audit event").All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(entries))
	}

	first := fieldMap(entries[0])
	want := map[string]string{
		"audit.action":        "update",
		"audit.user_id":       "admin-1",
		"audit.resource_type": "property",
		"audit.resource_id":   "gramado-house-1",
		"audit.result":        "success",
	}
	for k, v := range want {
		if first[k] != v {
			t.Errorf("%s: got %v, want %s", k, first[k], v)
		}
	}
	details, ok := first["audit.details"].(map[string]any)
	if !ok || details["fields"] == nil {
		t.Fatalf("expected details, got %v", first["audit.details"])
	}

	if fieldMap(entries[1])["audit.result"] != "failure" {
		t.Fatalf("unexpected result %v", fieldMap(entries[1])["audit.result"])
	}
}
