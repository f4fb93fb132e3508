//go:build !integration

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestWith_AttachesContextFields(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	ctx := WithTraceID(context.Background(), "trace-42")
	ctx = WithSessID(ctx, "sess-7")

	With(ctx, &base).Info().Msg("hello")

	line := buf.String()
	if !strings.Contains(line, `"trace_id":"trace-42"`) {
		t.Errorf("log line missing trace_id: %s", line)
	}
	if !strings.Contains(line, `"session_id":"sess-7"`) {
		t.Errorf("log line missing session_id: %s", line)
	}
}

func TestWith_PlainContextAddsNothing(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	With(context.Background(), &base).Info().Msg("hello")

	line := buf.String()
	if strings.Contains(line, "trace_id") || strings.Contains(line, "session_id") {
		t.Errorf("unexpected context fields in log line: %s", line)
	}
}

func TestTraceDuration_LogsStartAndFinish(t *testing.T) {
	old := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	defer zerolog.SetGlobalLevel(old)

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	done := TraceDuration(&logger, "Repo.FindByID")
	done()

	out := buf.String()
	if !strings.Contains(out, `"message":"start"`) {
		t.Errorf("missing start entry: %s", out)
	}
	if !strings.Contains(out, `"message":"finish"`) {
		t.Errorf("missing finish entry: %s", out)
	}
	if !strings.Contains(out, `"method":"Repo.FindByID"`) {
		t.Errorf("missing method field: %s", out)
	}
	if !strings.Contains(out, `"duration"`) {
		t.Errorf("missing duration field: %s", out)
	}
}
