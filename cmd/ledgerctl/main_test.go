package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledgerctl.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults_without_file", func(t *testing.T) {
		t.Setenv("LEDGERLINE_API_URL", "")
		t.Setenv("PIPELINE_API_KEY", "")
		t.Setenv("LEDGERLINE_TIMEOUT", "")
		cfg, err := loadConfig("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.APIURL != "http://localhost:8080" || cfg.Currency != "USD" || cfg.timeout.String() != "30s" {
			t.Errorf("unexpected defaults: %+v", cfg)
		}
	})

	t.Run("reads_toml_file", func(t *testing.T) {
		t.Setenv("LEDGERLINE_API_URL", "")
		t.Setenv("PIPELINE_API_KEY", "")
		t.Setenv("LEDGERLINE_TIMEOUT", "")
		path := writeConfig(t, `
api_url = "https://ledger.example.com"
api_key = "from-file"
timeout = "5s"
currency = "eur"
`)
		cfg, err := loadConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.APIURL != "https://ledger.example.com" || cfg.APIKey != "from-file" || cfg.Currency != "EUR" {
			t.Errorf("unexpected config: %+v", cfg)
		}
		if cfg.timeout.Seconds() != 5 {
			t.Errorf("expected 5s timeout, got %v", cfg.timeout)
		}
	})

	t.Run("env_overrides_file", func(t *testing.T) {
		path := writeConfig(t, `api_key = "from-file"`)
		t.Setenv("PIPELINE_API_KEY", "from-env")
		t.Setenv("LEDGERLINE_API_URL", "http://api:9000")
		t.Setenv("LEDGERLINE_TIMEOUT", "")
		cfg, err := loadConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.APIKey != "from-env" || cfg.APIURL != "http://api:9000" {
			t.Errorf("expected env overrides, got %+v", cfg)
		}
	})

	t.Run("rejects_unknown_keys", func(t *testing.T) {
		path := writeConfig(t, `api_token = "typo"`)
		if _, err := loadConfig(path); err == nil {
			t.Error("expected error for unknown key")
		}
	})

	t.Run("rejects_bad_timeout", func(t *testing.T) {
		t.Setenv("LEDGERLINE_TIMEOUT", "soon")
		if _, err := loadConfig(""); err == nil {
			t.Error("expected error for invalid timeout")
		}
	})
}

func TestOccurrencesCmd(t *testing.T) {
	t.Run("monthly_skips_short_months", func(t *testing.T) {
		out, err := execute(t, "occurrences", "--frequency", "monthly", "--start", "2024-01-31", "--to", "2024-05-31")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		lines := strings.Fields(out)
		want := []string{"2024-01-31", "2024-03-31", "2024-05-31"}
		if len(lines) != len(want) {
			t.Fatalf("expected %v, got %v", want, lines)
		}
		for i := range want {
			if lines[i] != want[i] {
				t.Errorf("line %d: expected %s, got %s", i, want[i], lines[i])
			}
		}
	})

	t.Run("count_limits_output", func(t *testing.T) {
		out, err := execute(t, "occurrences", "--frequency", "weekly", "--start", "2024-03-04", "--count", "2", "--to", "2024-12-31")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if lines := strings.Fields(out); len(lines) != 2 || lines[1] != "2024-03-11" {
			t.Errorf("unexpected output: %q", out)
		}
	})

	t.Run("amount_shows_running_total", func(t *testing.T) {
		t.Setenv("LEDGERLINE_TIMEOUT", "")
		out, err := execute(t, "occurrences", "--frequency", "monthly", "--start", "2024-01-15", "--to", "2024-03-31", "--amount", "150000")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "1500.00") || !strings.Contains(out, "4500.00") {
			t.Errorf("expected amounts and total in output, got:\n%s", out)
		}
	})

	t.Run("rejects_count_and_until", func(t *testing.T) {
		_, err := execute(t, "occurrences", "--start", "2024-01-15", "--to", "2024-03-31", "--count", "2", "--until", "2024-02-28")
		if err == nil {
			t.Error("expected error")
		}
	})

	t.Run("rejects_invalid_rule", func(t *testing.T) {
		_, err := execute(t, "occurrences", "--frequency", "hourly", "--start", "2024-01-15", "--to", "2024-03-31")
		if err == nil {
			t.Error("expected error")
		}
	})
}

func TestPipelineCmds(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.Header.Get("X-API-Key") != "cli-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/api/v1/pipeline/realize":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"result": map[string]int{"templates": 2, "created": 4},
				"today":  "2024-03-15",
			})
		case "/api/v1/pipeline/snapshots":
			_ = json.NewEncoder(w).Encode(map[string]any{"snapshots_recorded": 1, "recorded_at": "2024-03-15"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	t.Setenv("LEDGERLINE_API_URL", server.URL)
	t.Setenv("PIPELINE_API_KEY", "cli-key")
	t.Setenv("LEDGERLINE_TIMEOUT", "")

	t.Run("realize", func(t *testing.T) {
		out, err := execute(t, "realize", "--today", "2024-03-15")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Realized 4 transaction(s) from 2 template(s) up to 2024-03-15") {
			t.Errorf("unexpected output: %q", out)
		}
	})

	t.Run("realize_rejects_bad_date", func(t *testing.T) {
		if _, err := execute(t, "realize", "--today", "15/03/2024"); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("snapshots", func(t *testing.T) {
		out, err := execute(t, "snapshots")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Recorded 1 snapshot(s) for 2024-03-15") {
			t.Errorf("unexpected output: %q", out)
		}
	})

	t.Run("run", func(t *testing.T) {
		paths = nil
		out, err := execute(t, "run")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(paths) != 2 || paths[0] != "/api/v1/pipeline/realize" || paths[1] != "/api/v1/pipeline/snapshots" {
			t.Errorf("unexpected calls: %v", paths)
		}
		if !strings.Contains(out, "Snapshots:  1") {
			t.Errorf("unexpected output: %q", out)
		}
	})

	t.Run("missing_key", func(t *testing.T) {
		t.Setenv("PIPELINE_API_KEY", "")
		if _, err := execute(t, "realize"); err == nil {
			t.Error("expected error without an API key")
		}
	})
}
