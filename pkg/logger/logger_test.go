package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_JSONWithService(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	log := Init(Options{Level: "info", Service: "orderdesk", Output: &buf})
	log.Info().Str("order_id", "20260309-140507").Msg("order submitted")
	log.Debug().Msg("hidden")

	var event map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &event); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", buf.String(), err)
	}
	if event["service"] != "orderdesk" || event["order_id"] != "20260309-140507" || event["level"] != "info" {
		t.Fatalf("unexpected event %v", event)
	}
}

func TestInit_OnlyFirstCallApplies(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	Init(Options{Output: &second})
	log := Get()
	log.Info().Msg("hello")

	if first.Len() == 0 || second.Len() != 0 {
		t.Fatalf("expected output on the first writer only, got %q / %q", first.String(), second.String())
	}
}

func TestGet_BeforeInitIsDisabled(t *testing.T) {
	Reset()
	if Get().GetLevel() != zerolog.Disabled {
		t.Fatal("expected a disabled logger before Init")
	}
}

func TestInitialized(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if Initialized() {
		t.Fatal("expected no logger before Init")
	}

	var out bytes.Buffer
	Init(Options{Output: &out, Service: "orderdesk"})
	if !Initialized() {
		t.Fatal("expected Init to be recorded")
	}

	log := Get()
	log.Error().Msg("startup failed")
	if !bytes.Contains(out.Bytes(), []byte(`"message":"startup failed"`)) {
		t.Fatalf("expected the error on the configured writer, got %q", out.String())
	}

	Reset()
	if Initialized() {
		t.Fatal("expected Reset to forget the logger")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
