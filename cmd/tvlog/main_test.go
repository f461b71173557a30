package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"tvlog/internal/store/sqlitebook"
	"tvlog/internal/testsupport"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	bookPath   string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		bookPath:   filepath.Join(base, "workbook.db"),
	}
	testsupport.WriteFile(t, env.configPath, fmt.Sprintf(`[paths]
state_dir = %q

[sqlite]
path = %q

[logging]
level = "error"
`, filepath.Join(base, "state"), env.bookPath))

	book, err := sqlitebook.Open(env.bookPath)
	if err != nil {
		t.Fatalf("sqlitebook.Open: %v", err)
	}
	testsupport.SeedSheet(t, book, "Lost", testsupport.TrackedHeader, testsupport.LostRows())
	testsupport.SeedSheet(t, book, "Breaking Bad", testsupport.BreakingBadHeader, testsupport.BreakingBadRows())
	if err := book.Close(); err != nil {
		t.Fatalf("close seeded book: %v", err)
	}
	return env
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestShowsCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"shows"}, env.configPath)
	if err != nil {
		t.Fatalf("shows: %v", err)
	}
	requireContains(t, out, "2 shows, 6 episodes across 3 seasons")
	requireContains(t, out, "Lost")
	requireContains(t, out, "Breaking Bad")
	requireContains(t, out, "2/4 (50%)")
}

func TestShowsCommandJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"--json", "shows"}, env.configPath)
	if err != nil {
		t.Fatalf("shows --json: %v", err)
	}
	var payload struct {
		Overview struct {
			Shows    int `json:"shows"`
			Episodes int `json:"episodes"`
		} `json:"overview"`
		Shows []struct {
			Name string `json:"name"`
		} `json:"shows"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if payload.Overview.Shows != 2 || payload.Overview.Episodes != 6 {
		t.Fatalf("unexpected overview %+v", payload.Overview)
	}
	if len(payload.Shows) != 2 || payload.Shows[0].Name != "Lost" {
		t.Fatalf("unexpected shows %+v", payload.Shows)
	}
}

func TestShowCommandSuggestsCloseNames(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"show", "breaking bad"}, env.configPath)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	requireContains(t, out, "Breaking Bad")
	requireContains(t, out, "Pilot")

	_, _, err = runCLI(t, []string{"show", "Breakin Bad"}, env.configPath)
	if err == nil {
		t.Fatal("expected unknown show error")
	}
	requireContains(t, err.Error(), "Breaking Bad")
}

func TestEpisodesCommandFilters(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"episodes", "Lost", "--status", "watched"}, env.configPath)
	if err != nil {
		t.Fatalf("episodes: %v", err)
	}
	requireContains(t, out, "Pilot (1)")
	requireContains(t, out, "Pilot (2)")
	if strings.Contains(out, "Adrift") {
		t.Fatalf("unwatched episode listed under --status watched:\n%s", out)
	}

	out, _, err = runCLI(t, []string{"episodes", "Lost", "--season", "2"}, env.configPath)
	if err != nil {
		t.Fatalf("episodes --season: %v", err)
	}
	requireContains(t, out, "Adrift")
	if strings.Contains(out, "Pilot (1)") {
		t.Fatalf("season 1 episode listed under --season 2:\n%s", out)
	}

	if _, _, err := runCLI(t, []string{"episodes", "Lost", "--status", "bingeing"}, env.configPath); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestMarkCommandWritesWorkbook(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"mark", "Lost", "3", "--watched", "yes", "--rating", "7.5", "--date", "2024-02-01"}, env.configPath)
	if err != nil {
		t.Fatalf("mark: %v", err)
	}
	requireContains(t, out, "Updated Lost position 3 (row 5)")

	out, _, err = runCLI(t, []string{"episodes", "Lost", "--status", "watched"}, env.configPath)
	if err != nil {
		t.Fatalf("episodes after mark: %v", err)
	}
	requireContains(t, out, "Adrift")
	requireContains(t, out, "02-01-2024")
}

func TestMarkCommandRejectsInvalidInput(t *testing.T) {
	env := setupCLITestEnv(t)

	cases := [][]string{
		{"mark", "Lost", "abc", "--watched", "yes"},
		{"mark", "Lost", "99", "--watched", "yes"},
		{"mark", "Lost", "0", "--rating", "11"},
		{"mark", "Lost", "0", "--today", "--date", "2024-01-01"},
	}
	for _, args := range cases {
		if _, _, err := runCLI(t, args, env.configPath); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestStatsCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"stats", "--top", "2"}, env.configPath)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	requireContains(t, out, "Dated episodes: 2")
	requireContains(t, out, "Saturday")
	requireContains(t, out, "January")
	requireContains(t, out, "Pilot")
}

func TestImportCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	csvPath := filepath.Join(env.baseDir, "The Wire.csv")
	testsupport.WriteCSV(t, csvPath, [][]string{
		{"Season", "Episode", "Episode Title", "Rating"},
		{"1", "1", "The Target", "8.3"},
		{"1", "2", "The Detail", "8.4"},
	})

	out, _, err := runCLI(t, []string{"import", csvPath}, env.configPath)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	requireContains(t, out, `Imported 2 episodes into "The Wire"`)
	requireContains(t, out, "Added a Show Name column")
	requireContains(t, out, "Added tracking columns: Watched, Personal Rating, Favorite, Watch Date")

	out, _, err = runCLI(t, []string{"mark", "The Wire", "0", "--watched", "yes"}, env.configPath)
	if err != nil {
		t.Fatalf("mark imported show: %v", err)
	}
	requireContains(t, out, "Updated The Wire position 0 (row 2): Watched")

	out, _, err = runCLI(t, []string{"show", "The Wire"}, env.configPath)
	if err != nil {
		t.Fatalf("show after import: %v", err)
	}
	requireContains(t, out, "The Detail")

	if _, _, err := runCLI(t, []string{"import", csvPath}, env.configPath); err == nil {
		t.Fatal("expected error importing an existing sheet")
	}
}

func TestDoctorCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"doctor"}, env.configPath)
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	requireContains(t, out, "State directory")
	if strings.Contains(out, "FAIL") {
		t.Fatalf("unexpected failing check:\n%s", out)
	}
}
