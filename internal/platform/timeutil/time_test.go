package timeutil

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
)

func TestMarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"whole seconds", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), `"2024-01-15T10:30:00.000Z"`},
		{"truncates nanoseconds", time.Date(2024, 1, 15, 10, 30, 0, 123456789, time.UTC), `"2024-01-15T10:30:00.123Z"`},
		{"converts to UTC", time.Date(2024, 1, 15, 7, 30, 0, 0, time.FixedZone("BRT", -3*60*60)), `"2024-01-15T10:30:00.000Z"`},
		{"zero value", time.Time{}, `"0001-01-01T00:00:00.000Z"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(NewTime(tt.in))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(data) != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, data)
			}
		})
	}
}

func TestUnmarshalJSON(t *testing.T) {
	var got Time
	if err := json.Unmarshal([]byte(`"2024-01-15T07:30:00.5-03:00"`), &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 1, 15, 10, 30, 0, 500000000, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got.Time)
	}

	if err := json.Unmarshal([]byte("null"), &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(want) {
		t.Fatal("null must keep the existing value")
	}

	for _, in := range []string{`"2024-01-15"`, `"2024-01-15T10:30:00"`, `""`, `12`} {
		var bad Time
		if err := json.Unmarshal([]byte(in), &bad); err == nil {
			t.Fatalf("expected error for %s", in)
		}
	}
}

func TestCBOREncodesText(t *testing.T) {
	type listing struct {
		CreatedAt Time `cbor:"createdAt"`
	}
	in := listing{CreatedAt: NewTime(time.Date(2024, 6, 15, 14, 30, 45, 123000000, time.UTC))}

	data, err := cbor.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := cbor.Unmarshal(data, &raw); err != nil {
		t.Fatalf("decode raw: %v", err)
	}
	if raw["createdAt"] != "2024-06-15T14:30:45.123Z" {
		t.Fatalf("expected text timestamp, got %#v", raw["createdAt"])
	}

	var out listing
	if err := cbor.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !out.CreatedAt.Equal(in.CreatedAt.Time) {
		t.Fatalf("expected %v, got %v", in.CreatedAt, out.CreatedAt)
	}
}

func TestUnmarshalCBORNull(t *testing.T) {
	ts := NewTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	null, _ := cbor.Marshal(nil)
	if err := cbor.Unmarshal(null, &ts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ts.Year() != 2024 {
		t.Fatalf("null must keep the existing value, got %v", ts.Time)
	}
}

func TestString(t *testing.T) {
	ts := NewTime(time.Date(2024, 2, 29, 12, 0, 0, 1000000, time.UTC))
	if ts.String() != "2024-02-29T12:00:00.001Z" {
		t.Fatalf("unexpected %s", ts.String())
	}
	before := time.Now()
	if Now().Before(before) {
		t.Fatal("Now must not go backwards")
	}
}

func TestSchema(t *testing.T) {
	s := Time{}.Schema(nil)
	if s.Type != "string" || s.Format != "date-time" {
		t.Fatalf("unexpected schema %+v", s)
	}
}
