package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantDebug bool
		wantWarn  bool
	}{
		{name: "quiet", cfg: Config{}, wantDebug: false, wantWarn: true},
		{name: "verbose", cfg: Config{Verbose: true}, wantDebug: true, wantWarn: true},
		{name: "json", cfg: Config{JSON: true}, wantDebug: false, wantWarn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer Reset()

			var buf bytes.Buffer
			tt.cfg.Output = &buf
			Setup(tt.cfg)

			L().Debug("debug message")
			L().Warn("warn message")

			out := buf.String()
			if got := strings.Contains(out, "debug message"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v\n%s", got, tt.wantDebug, out)
			}
			if got := strings.Contains(out, "warn message"); got != tt.wantWarn {
				t.Errorf("warn logged = %v, want %v\n%s", got, tt.wantWarn, out)
			}
			if tt.cfg.JSON && !strings.Contains(out, `"level":"WARN"`) {
				t.Errorf("expected JSON output, got %s", out)
			}
		})
	}
}

func TestDefaultDiscards(t *testing.T) {
	Reset()
	if L() == nil {
		t.Fatal("L() returned nil")
	}
	// Must not panic or write anywhere.
	L().Warn("dropped")
}
