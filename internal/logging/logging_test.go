package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "json", "info")
	log.Info().Str("insulin", "Lantus").Msg("calculated")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v: %s", err, buf.String())
	}
	if entry["insulin"] != "Lantus" || entry["message"] != "calculated" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "json", "warn")
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("level filter not applied: %s", out)
	}
}

func TestNew_UnknownLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "json", "loud")
	log.Debug().Msg("debug")
	log.Info().Msg("info")

	out := buf.String()
	if strings.Contains(out, `"debug"`) || !strings.Contains(out, `"info"`) {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "text", "")
	log.Info().Msg("catalog loaded")

	if strings.HasPrefix(buf.String(), "{") {
		t.Errorf("text format wrote JSON: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "catalog loaded") {
		t.Errorf("missing message: %s", buf.String())
	}
}
