package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	kit "leadintake/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestParseLevel_AllBranches(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.DebugLevel},
		{"   nonsense   ", zerolog.DebugLevel},
	}
	for _, c := range cases {
		if got := parseLevel(c.in); got != c.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestInit_Get_Named_C_WithRequest(t *testing.T) {
	var buf bytes.Buffer

	Init(Options{
		Level:        "info",
		Format:       "console",
		Service:      "leadintake-test",
		Component:    "root",
		Writer:       &buf,
		WithCaller:   true,
		SampleEvery:  2,
		StaticFields: map[string]string{"build": "test"},
	})

	// re-sample to N=1 so every line is emitted
	rv := Get().Sample(&zerolog.BasicSampler{N: 1})
	(&rv).Info().Str("k", "v").Msg("root-msg")

	nv := Named("contact").Sample(&zerolog.BasicSampler{N: 1})
	(&nv).Info().Msg("named-msg")

	ctx := WithRequest(context.Background(), "req-123", "203.0.113.9")
	cv := C(ctx).Sample(&zerolog.BasicSampler{N: 1})
	(&cv).Info().Msg("ctx-msg")

	if got := RequestID(ctx); got != "req-123" {
		t.Fatalf("RequestID = %q", got)
	}
	if got := RequestID(context.Background()); got != "" {
		t.Fatalf("RequestID on bare ctx = %q", got)
	}

	out := buf.String()
	kit.MustContain(t, out, "root-msg")
	kit.MustContain(t, out, "named-msg")
	kit.MustContain(t, out, "ctx-msg")
	kit.MustContain(t, out, "contact")
	kit.MustContain(t, out, "request_id=")
	kit.MustContain(t, out, "req-123")
	kit.MustContain(t, out, "client_ip=")
	kit.MustContain(t, out, "203.0.113.9")
	kit.MustContain(t, out, "service=")
	kit.MustContain(t, out, "leadintake-test")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("LOG_SERVICE", "")
	opt := FromEnv()
	if opt.Level != "debug" || opt.Format != "console" || opt.Service != "leadintake" {
		t.Fatalf("dev defaults mismatch: %+v", opt)
	}

	t.Setenv("APP_ENV", "production")
	opt = FromEnv()
	if opt.Level != "info" || opt.Format != "json" {
		t.Fatalf("production defaults mismatch: %+v", opt)
	}

	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_SERVICE", "svc-b")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "5")
	opt = FromEnv()
	if strings.ToLower(opt.Level) != "warn" || opt.Service != "svc-b" {
		t.Fatalf("explicit values mismatch: %+v", opt)
	}
	if !opt.WithCaller || opt.SampleEvery != 5 {
		t.Fatalf("caller/sample mismatch: %+v", opt)
	}
}
