package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestZeroLogger_Info(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter("development", buf)

	log.Info("hub matched", Field{Key: "hub", Value: "DXB"}, Field{Key: "itineraries", Value: 3})

	output := buf.String()
	if !strings.Contains(output, "hub matched") {
		t.Errorf("expected message in log, got: %s", output)
	}
	if !strings.Contains(output, `"hub":"DXB"`) {
		t.Errorf("expected field hub=DXB, got: %s", output)
	}
	if !strings.Contains(output, `"itineraries":3`) {
		t.Errorf("expected numeric field, got: %s", output)
	}
	if !strings.Contains(output, `"level":"info"`) {
		t.Errorf("expected level=info, got: %s", output)
	}
}

func TestZeroLogger_DebugShownInDev(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter("development", buf)

	log.Debug("debug-test")

	if !strings.Contains(buf.String(), "debug-test") {
		t.Errorf("expected debug log in development, got: %s", buf.String())
	}
}

func TestZeroLogger_DebugHiddenInProduction(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter("production", buf)

	log.Debug("debug-hidden")

	if buf.String() != "" {
		t.Errorf("expected NO debug log output in production, got: %s", buf.String())
	}
}

func TestZeroLogger_WarnWithError(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter("development", buf)

	log.Warn("skipping flight", Field{Key: "flight_id", Value: "f-1"}, Err(errors.New("malformed duration")))

	output := buf.String()
	if !strings.Contains(output, `"level":"warn"`) {
		t.Errorf("expected warn level, got: %s", output)
	}
	if !strings.Contains(output, `"err":"malformed duration"`) {
		t.Errorf("expected err field, got: %s", output)
	}
}

func TestZeroLogger_DurationField(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter("development", buf)

	log.Error("search failed", Field{Key: "elapsed", Value: 1500 * time.Millisecond})

	output := buf.String()
	if !strings.Contains(output, `"level":"error"`) {
		t.Errorf("expected error level, got: %s", output)
	}
	if !strings.Contains(output, `"elapsed":1500`) {
		t.Errorf("expected duration in milliseconds, got: %s", output)
	}
}

func TestZeroLogger_With(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter("development", buf).With(Field{Key: "request_id", Value: "42"})

	log.Info("scoped")

	if !strings.Contains(buf.String(), `"request_id":"42"`) {
		t.Errorf("expected inherited field, got: %s", buf.String())
	}
}

func TestNop(t *testing.T) {
	// must not panic
	Nop().Error("ignored", Field{Key: "k", Value: "v"})
}
