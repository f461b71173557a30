package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "Store backend: sqlite")
	requireContains(t, out, "Workbook:      "+env.bookPath)
	requireContains(t, out, "Load cache:    300s")

	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected error when config exists without --overwrite")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigValidateRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[paths]\nstate_dir = \""+dir+"\"\nbogus = 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, err := runCLI(t, []string{"config", "validate"}, path); err == nil {
		t.Fatal("expected error for unknown config key")
	}
}

func TestConfigValidateReportsSheetsSettings(t *testing.T) {
	t.Setenv("TVLOG_SPREADSHEET_ID", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	credentials := filepath.Join(dir, "service-account.json")
	content := fmt.Sprintf(`[paths]
state_dir = %q

[store]
backend = "sheets"

[sheets]
spreadsheet_id = "sheet-123"
credentials_file = %q
requests_per_minute = 30

[cache]
ttl_seconds = 0
`, filepath.Join(dir, "state"), credentials)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, _, err := runCLI(t, []string{"config", "validate"}, path)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Store backend: sheets")
	requireContains(t, out, "Spreadsheet:   sheet-123")
	requireContains(t, out, "Credentials:   "+credentials)
	requireContains(t, out, "Rate limit:    30 requests/minute")
	requireContains(t, out, "Load cache:    disabled")

	out, _, err = runCLI(t, []string{"--json", "config", "validate"}, path)
	if err != nil {
		t.Fatalf("config validate --json: %v", err)
	}
	var summary struct {
		Backend       string `json:"backend"`
		SpreadsheetID string `json:"spreadsheet_id"`
		Workbook      string `json:"workbook"`
	}
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if summary.Backend != "sheets" || summary.SpreadsheetID != "sheet-123" || summary.Workbook != "" {
		t.Fatalf("unexpected summary %+v", summary)
	}
}
