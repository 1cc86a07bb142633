package main

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	tu "github.com/KaparthyReddy/ai-design-studio/internal/testing"
)

func TestNewRunner(t *testing.T) {
	t.Run("applies defaults for omitted options", func(t *testing.T) {
		r := NewRunner(RunnerOpts{Gateway: &tu.MockGateway{}})

		if r.config == nil {
			t.Error("expected default config")
		}
		if r.logger == nil {
			t.Error("expected default logger")
		}
		if r.output == nil {
			t.Error("expected default output")
		}
		if r.httpClient != http.DefaultClient {
			t.Error("expected default HTTP client")
		}
		if r.workflow == nil || r.gallery == nil || r.mixer == nil {
			t.Error("expected task coordinators constructed")
		}
	})

	t.Run("keeps provided options", func(t *testing.T) {
		var buf bytes.Buffer
		gateway := &tu.MockGateway{}
		client := &http.Client{}

		r := NewRunner(RunnerOpts{Gateway: gateway, Output: &buf, HTTPClient: client})

		if r.gateway != gateway {
			t.Error("expected provided gateway")
		}
		if r.output != &buf {
			t.Error("expected provided output")
		}
		if r.httpClient != client {
			t.Error("expected provided client")
		}
	})

	t.Run("register yields every command", func(t *testing.T) {
		r := NewRunner(RunnerOpts{Gateway: &tu.MockGateway{}})

		commands := r.register()

		if len(commands) != 9 {
			t.Fatalf("expected 9 commands, got %d", len(commands))
		}
		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command %d is nil", i)
			} else if cmd.Name == "" {
				t.Errorf("command %d has no name", i)
			}
		}
	})
}

func TestRunnerOutput(t *testing.T) {
	t.Run("writeJSON", func(t *testing.T) {
		t.Run("compact", func(t *testing.T) {
			var buf bytes.Buffer
			r := NewRunner(RunnerOpts{Gateway: &tu.MockGateway{}, Output: &buf})

			if err := r.writeJSON(map[string]string{"status": "ok"}, false); err != nil {
				t.Fatalf("writeJSON failed: %v", err)
			}

			if got := buf.String(); got != "{\"status\":\"ok\"}\n" {
				t.Errorf("unexpected output %q", got)
			}
		})

		t.Run("pretty", func(t *testing.T) {
			var buf bytes.Buffer
			r := NewRunner(RunnerOpts{Gateway: &tu.MockGateway{}, Output: &buf})

			if err := r.writeJSON(map[string]string{"status": "ok"}, true); err != nil {
				t.Fatalf("writeJSON failed: %v", err)
			}

			if !strings.Contains(buf.String(), "  \"status\": \"ok\"") {
				t.Errorf("expected indented output, got %q", buf.String())
			}
		})

		t.Run("unmarshalable data fails", func(t *testing.T) {
			r := NewRunner(RunnerOpts{Gateway: &tu.MockGateway{}, Output: &bytes.Buffer{}})

			if err := r.writeJSON(make(chan int), false); err == nil {
				t.Error("expected an error")
			}
		})

		t.Run("write failure surfaces", func(t *testing.T) {
			r := NewRunner(RunnerOpts{Gateway: &tu.MockGateway{}, Output: &tu.FWriter{}})

			if err := r.writeJSON("ok", false); err == nil {
				t.Error("expected an error")
			}
		})

		t.Run("newline write failure surfaces", func(t *testing.T) {
			w := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			r := NewRunner(RunnerOpts{Gateway: &tu.MockGateway{}, Output: &w})

			if err := r.writeJSON("ok", false); err == nil {
				t.Error("expected an error on the newline write")
			}
		})
	})

	t.Run("writePlain formats into the output", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewRunner(RunnerOpts{Gateway: &tu.MockGateway{}, Output: &buf})

		if err := r.writePlain("count: %d\n", 3); err != nil {
			t.Fatalf("writePlain failed: %v", err)
		}

		if buf.String() != "count: 3\n" {
			t.Errorf("unexpected output %q", buf.String())
		}
	})

	t.Run("writePlainln pads with newlines", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewRunner(RunnerOpts{Gateway: &tu.MockGateway{}, Output: &buf})

		if err := r.writePlainln("done"); err != nil {
			t.Fatalf("writePlainln failed: %v", err)
		}

		if buf.String() != "\ndone\n" {
			t.Errorf("unexpected output %q", buf.String())
		}
	})

	t.Run("writePlainHeader frames the title", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewRunner(RunnerOpts{Gateway: &tu.MockGateway{}, Output: &buf})

		r.writePlainHeader("Transfer Complete!")

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		if len(lines) != 3 || lines[1] != "Transfer Complete!" {
			t.Errorf("unexpected output %q", buf.String())
		}
		if !strings.HasPrefix(lines[0], "═") {
			t.Errorf("expected bar line, got %q", lines[0])
		}
	})
}
