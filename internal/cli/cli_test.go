// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/medrec/internal/audit"
	"github.com/jeranaias/medrec/internal/commands"
	"github.com/jeranaias/medrec/internal/config"
	"github.com/jeranaias/medrec/internal/export"
)

const addAlex = "add n/S1234567A nm/Alex Yeoh p/87438807 e/alexyeoh@example.com a/Blk 30 Geylang Street 29"

// =============================================================================
// TEST HELPERS
// =============================================================================

type testEnv struct {
	dir        string
	configPath string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	for _, key := range []string{"MEDREC_DATA", "MEDREC_BACKEND", "MEDREC_LOG_LEVEL", "MEDREC_AUDIT"} {
		t.Setenv(key, "")
	}

	configPath := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf(`[storage]
backend = "json"
path = %q
autosave = true

[ui]
mode = "repl"
history_file = ""

[logging]
level = "debug"
file = %q

[audit]
enabled = true
path = %q
`, filepath.Join(dir, "patients.json"), filepath.Join(dir, "medrec.log"), filepath.Join(dir, "audit.log"))
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0600))

	return &testEnv{dir: dir, configPath: configPath}
}

func (e *testEnv) run(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	streams := Streams{In: strings.NewReader(stdin), Out: &out, Err: &errOut}
	code = Execute(context.Background(), append([]string{"--config", e.configPath}, args...), streams)
	return code, out.String(), errOut.String()
}

// =============================================================================
// EXEC TESTS
// =============================================================================

func TestExec_RunsAndPersists(t *testing.T) {
	env := newTestEnv(t)

	code, out, stderr := env.run(t, "", "exec", addAlex, "addmr n/S1234567A al/Peanuts ill/Flu", "list")
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Contains(t, out, "New patient added: Alex Yeoh")
	assert.Contains(t, out, "Medical report added for S1234567A")
	assert.Contains(t, out, commands.MessageListSuccess)

	code, out, stderr = env.run(t, "", "exec", "viewmr 1")
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Contains(t, out, "Allergy:      Peanuts")
	assert.Contains(t, out, "Illness:      Flu")

	data, err := os.ReadFile(filepath.Join(env.dir, "patients.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"nric": "S1234567A"`)
}

func TestExec_ReadsLinesFromStdin(t *testing.T) {
	env := newTestEnv(t)

	script := "# seed\n" + addAlex + "\n\nfind alex\n"
	code, out, stderr := env.run(t, script, "exec")
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Contains(t, out, "1 patients listed!")
}

func TestExec_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		line string
		want int
	}{
		{"unknown command", "frobnicate", ExitUsageError},
		{"bad format", "clearmu", ExitUsageError},
		{"bad field", "addmr n/S1234567A al/@@@", ExitUsageError},
		{"missing patient", "viewmr n/T7654321B", ExitNotFoundError},
		{"bad index", "viewmr 9", ExitNotFoundError},
		{"duplicate patient", addAlex, ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			code, _, stderr := env.run(t, "", "exec", addAlex)
			require.Equal(t, ExitSuccess, code, stderr)

			code, _, stderr = env.run(t, "", "exec", tt.line)
			assert.Equal(t, tt.want, code)
			assert.Contains(t, stderr, "[ERROR]")
			assert.Equal(t, 1, strings.Count(stderr, "[ERROR]"), "error shown once")
		})
	}
}

func TestExec_DestructiveNeedsYes(t *testing.T) {
	env := newTestEnv(t)
	code, _, _ := env.run(t, "", "exec", addAlex)
	require.Equal(t, ExitSuccess, code)

	code, _, stderr := env.run(t, "", "exec", "clear")
	assert.Equal(t, ExitUsageError, code)
	assert.Contains(t, stderr, "--yes")

	code, out, _ := env.run(t, "", "exec", "list")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, commands.MessageListSuccess)

	code, out, stderr = env.run(t, "", "exec", "--yes", "clear", "find alex")
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Contains(t, out, commands.MessageClearSuccess)
	assert.Contains(t, out, "0 patients listed!")
}

func TestExec_KeepGoing(t *testing.T) {
	env := newTestEnv(t)

	code, out, _ := env.run(t, "", "exec", "viewmr 1", addAlex)
	assert.Equal(t, ExitNotFoundError, code)
	assert.NotContains(t, out, "New patient added")

	code, out, _ = env.run(t, "", "exec", "--keep-going", "viewmr 1", addAlex)
	assert.Equal(t, ExitNotFoundError, code, "first failure decides the exit code")
	assert.Contains(t, out, "New patient added")
}

func TestExec_JSON(t *testing.T) {
	env := newTestEnv(t)

	code, out, _ := env.run(t, "", "exec", "--json", "--keep-going", addAlex, "viewmr 4")
	assert.Equal(t, ExitNotFoundError, code)

	decoder := json.NewDecoder(strings.NewReader(out))
	var first, second struct {
		Success bool    `json:"success"`
		Error   *string `json:"error"`
		Command string  `json:"command"`
		Data    struct {
			Feedback string `json:"feedback"`
			Kind     string `json:"kind"`
		} `json:"data"`
	}
	require.NoError(t, decoder.Decode(&first))
	require.NoError(t, decoder.Decode(&second))

	assert.True(t, first.Success)
	assert.Equal(t, addAlex, first.Command)
	assert.Contains(t, first.Data.Feedback, "New patient added")

	assert.False(t, second.Success)
	require.NotNil(t, second.Error)
	assert.Equal(t, commands.MessageInvalidPatientDisplayedIndex, *second.Error)
	assert.Equal(t, commands.ErrInvalidDisplayedIndex.Error(), second.Data.Kind)
}

func TestExec_NoLines(t *testing.T) {
	env := newTestEnv(t)
	code, _, stderr := env.run(t, "", "exec")
	assert.Equal(t, ExitUsageError, code)
	assert.Contains(t, stderr, "no command lines given")
}

// =============================================================================
// REPL TESTS
// =============================================================================

func TestREPL_Script(t *testing.T) {
	env := newTestEnv(t)

	script := strings.Join([]string{
		addAlex,
		"addmu 1 mn/Paracetamol dos/2 tablets sd/2024-01-01 ed/2024-01-10",
		"clearmu n/S1234567A",
		"n",
		"clearmu n/S1234567A",
		"yes",
		"bogus",
		"help",
		"exit",
		"list",
	}, "\n") + "\n"

	code, out, stderr := env.run(t, script, "repl")
	require.Equal(t, ExitSuccess, code, stderr)

	assert.Contains(t, out, "Medicine usage added to S1234567A")
	assert.Contains(t, out, "Are you sure you want to clear all medicine usages of n/S1234567A? [y/N]: ")
	assert.Contains(t, out, "Command cancelled.")
	assert.Contains(t, out, "Medicine usage successfully deleted from S1234567A")
	assert.Contains(t, out, "[ERROR] Unknown command")
	assert.Contains(t, out, "Patients:")
	assert.Contains(t, out, commands.MessageExitAcknowledgement)
	assert.NotContains(t, out, commands.MessageListSuccess, "lines after exit are not run")
}

func TestREPL_EndOfInput(t *testing.T) {
	env := newTestEnv(t)
	code, out, _ := env.run(t, addAlex+"\n", "repl")
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "New patient added")

	code, out, _ = env.run(t, "list\n", "exec")
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, commands.MessageListSuccess)
}

// =============================================================================
// CONFIG COMMAND TESTS
// =============================================================================

func TestConfigCommands(t *testing.T) {
	env := newTestEnv(t)

	code, out, _ := env.run(t, "", "config", "get", "storage.backend")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "json\n", out)

	code, out, _ = env.run(t, "", "config", "set", "storage.backend", "sqlite")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "storage.backend = sqlite")

	cfg, err := config.LoadFromPath(env.configPath)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)

	code, _, stderr := env.run(t, "", "config", "set", "storage.backend", "csv")
	assert.Equal(t, ExitConfigError, code)
	assert.Contains(t, stderr, "storage.backend")

	code, _, stderr = env.run(t, "", "config", "get", "storage.nope")
	assert.Equal(t, ExitUsageError, code)
	assert.Contains(t, stderr, "unknown field")

	code, out, _ = env.run(t, "", "config", "show")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "[storage]")
	assert.Contains(t, out, "backend:")
	assert.Less(t, strings.Index(out, "version:"), strings.Index(out, "[audit]"))

	code, out, _ = env.run(t, "", "config", "path")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, env.configPath+"\n", out)
}

func TestConfigInit(t *testing.T) {
	env := newTestEnv(t)
	target := filepath.Join(env.dir, "fresh", "config.toml")

	var out, errOut bytes.Buffer
	streams := Streams{In: strings.NewReader(""), Out: &out, Err: &errOut}
	code := Execute(context.Background(), []string{"--config", target, "config", "init"}, streams)
	require.Equal(t, ExitSuccess, code, errOut.String())

	cfg, err := config.LoadFromPath(target)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Storage.Backend)

	code = Execute(context.Background(), []string{"--config", target, "config", "init"}, streams)
	assert.Equal(t, ExitUsageError, code)
}

func TestBadConfigFile(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(env.configPath, []byte("[storage]\nbackend = \"xml\"\n"), 0600))

	code, _, stderr := env.run(t, "", "exec", "list")
	assert.Equal(t, ExitConfigError, code)
	assert.Contains(t, stderr, "storage.backend")
}

func TestBackendFlag(t *testing.T) {
	env := newTestEnv(t)
	dbPath := filepath.Join(env.dir, "patients.db")

	code, _, stderr := env.run(t, "", "--backend", "sqlite", "--data", dbPath, "exec", addAlex)
	require.Equal(t, ExitSuccess, code, stderr)
	_, err := os.Stat(dbPath)
	require.NoError(t, err)

	code, out, _ := env.run(t, "", "--backend", "SQLite", "--data", dbPath, "exec", "find yeoh")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "1 patients listed!")

	code, _, _ = env.run(t, "", "--backend", "xml", "exec", "list")
	assert.Equal(t, ExitConfigError, code)
}

// =============================================================================
// AUDIT COMMAND TESTS
// =============================================================================

func TestAuditCommands(t *testing.T) {
	env := newTestEnv(t)
	env.run(t, "", "exec", addAlex, "viewmr 5")

	code, out, _ := env.run(t, "", "audit", "show")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "add")
	assert.Contains(t, out, "[OK]")
	assert.Contains(t, out, "[FAIL]")
	assert.Contains(t, out, commands.MessageInvalidPatientDisplayedIndex)

	code, out, _ = env.run(t, "", "audit", "show", "--command", "viewmr", "--json")
	require.Equal(t, ExitSuccess, code)
	var resp struct {
		Data struct {
			Count   int           `json:"count"`
			Entries []audit.Event `json:"entries"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, 1, resp.Data.Count)
	assert.Equal(t, audit.OutcomeFailure, resp.Data.Entries[0].Outcome)

	code, out, _ = env.run(t, "", "audit", "export", "--format", "csv", "--outcome", "success")
	require.Equal(t, ExitSuccess, code)
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "add", records[1][4])
	assert.Equal(t, "n/S1234567A", records[1][5])

	code, out, _ = env.run(t, "", "audit", "stats")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "Sessions:")

	code, _, _ = env.run(t, "", "audit", "export", "--format", "xml")
	assert.Equal(t, ExitUsageError, code)

	code, _, _ = env.run(t, "", "audit", "show", "--since", "yesterday")
	assert.Equal(t, ExitUsageError, code)
}

func TestExportCommand(t *testing.T) {
	env := newTestEnv(t)
	code, _, stderr := env.run(t, "", "exec", addAlex, "addmr n/S1234567A al/Peanuts")
	require.Equal(t, ExitSuccess, code, stderr)

	code, out, stderr := env.run(t, "", "export", "--format", "markdown", "--stdout")
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Contains(t, out, "## 1. Alex Yeoh (S1234567A)")
	assert.Contains(t, out, "- **Allergy**: Peanuts")

	dir := filepath.Join(env.dir, "exports")
	code, out, stderr = env.run(t, "", "export", "--format", "json", "--dir", dir)
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Contains(t, out, "Exported 1 patient to "+dir)

	files, err := filepath.Glob(filepath.Join(dir, "patients_*.json"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	code, out, stderr = env.run(t, "", "--data", files[0], "exec", "viewmr n/S1234567A")
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Contains(t, out, "Allergy:      Peanuts")

	code, _, stderr = env.run(t, "", "export", "--format", "pdf", "--stdout")
	assert.Equal(t, ExitUsageError, code)
	assert.Contains(t, stderr, "unsupported export format")
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)
	code, out, _ := env.run(t, "", "version")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "medrec "+Version)
}

// =============================================================================
// HELPER TESTS
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"generic", errors.New("boom"), ExitGeneralError},
		{"usage", &UsageError{Reason: "bad"}, ExitUsageError},
		{"config", fmt.Errorf("%w: missing", ErrConfig), ExitConfigError},
		{"config validation", config.ValidateErrors{{Field: "ui.mode", Message: "bad"}}, ExitConfigError},
		{"parse kind", &commands.ParseError{Kind: commands.ErrInvalidCommandFormat}, ExitUsageError},
		{"not found", &commands.CommandError{Kind: commands.ErrPersonNotFound}, ExitNotFoundError},
		{"duplicate", &commands.CommandError{Kind: commands.ErrDuplicateUsage}, ExitGeneralError},
		{"wrapped silenced", silenced{&commands.CommandError{Kind: commands.ErrInvalidDisplayedIndex}}, ExitNotFoundError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestResolveMode(t *testing.T) {
	tests := []struct {
		mode   string
		stdin  bool
		stdout bool
		want   string
	}{
		{ModeAuto, true, true, ModeTUI},
		{ModeAuto, true, false, ModeREPL},
		{ModeAuto, false, true, ModeREPL},
		{ModeREPL, true, true, ModeREPL},
		{ModeTUI, false, false, ModeTUI},
		{"", true, true, ModeTUI},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveMode(tt.mode, tt.stdin, tt.stdout), "%+v", tt)
	}
}

func TestConfirmer(t *testing.T) {
	p := commands.NewParser(commands.NewRegistry())
	cmd, err := p.Parse("deletemr 2")
	require.NoError(t, err)

	answer := func(s string) LinePrompter {
		return func(string) (string, error) { return s, nil }
	}

	ok, err := Confirmer(ConfirmationOptions{Yes: true}, nil)(cmd)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = Confirmer(ConfirmationOptions{JSONMode: true, Interactive: true}, answer("y"))(cmd)
	assert.Equal(t, ExitUsageError, GetExitCode(err))

	_, err = Confirmer(ConfirmationOptions{}, answer("y"))(cmd)
	assert.Equal(t, ExitUsageError, GetExitCode(err))

	for input, want := range map[string]bool{"y\n": true, " YES ": true, "n": false, "": false, "yep": false} {
		ok, err := Confirmer(ConfirmationOptions{Interactive: true}, answer(input))(cmd)
		require.NoError(t, err)
		assert.Equal(t, want, ok, "input %q", input)
	}

	assert.Equal(t, "reset the medical report of 2", commands.DescribeAction(cmd))
}

func TestReaderPrompter(t *testing.T) {
	var out bytes.Buffer
	prompt := ReaderPrompter(strings.NewReader("yes\n"), &out)
	input, err := prompt("Continue? ")
	require.NoError(t, err)
	assert.Equal(t, "yes\n", input)
	assert.Equal(t, "Continue? ", out.String())

	_, err = prompt("Again? ")
	assert.Error(t, err)
}

func TestParseSince(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)

	got, err := ParseSince("24h", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(-24*time.Hour), got)

	got, err = ParseSince("7d", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(-7*24*time.Hour), got)

	got, err = ParseSince("2025-01-31", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.Local), got)

	_, err = ParseSince("last week", now)
	assert.Error(t, err)
}

func TestFilterEvents(t *testing.T) {
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	events := []audit.Event{
		{Timestamp: base.Add(2 * time.Minute), Type: audit.EventCommand, Command: "clearmu", Outcome: audit.OutcomeSuccess},
		{Timestamp: base, Type: audit.EventCommand, Command: "add", Outcome: audit.OutcomeSuccess},
		{Timestamp: base.Add(time.Minute), Type: audit.EventCommand, Command: "delete", Outcome: audit.OutcomeCancelled},
		{Timestamp: base.Add(3 * time.Minute), Type: audit.EventSessionEnd},
	}

	all := FilterEvents(events, AuditFilter{})
	require.Len(t, all, 4)
	assert.Equal(t, "add", all[0].Command, "chronological order")

	latest := FilterEvents(events, AuditFilter{Limit: 2})
	require.Len(t, latest, 2)
	assert.Equal(t, "clearmu", latest[0].Command)

	assert.Len(t, FilterEvents(events, AuditFilter{Outcome: "cancelled"}), 1)
	assert.Len(t, FilterEvents(events, AuditFilter{Command: "add"}), 1)
	assert.Len(t, FilterEvents(events, AuditFilter{Since: base.Add(90 * time.Second)}), 2)
}

func TestComputeAuditStats(t *testing.T) {
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	stats := ComputeAuditStats([]audit.Event{
		{Timestamp: base, Type: audit.EventSessionStart, SessionID: "a"},
		{Timestamp: base.Add(time.Second), Type: audit.EventCommand, SessionID: "a", Command: "add", Outcome: audit.OutcomeSuccess},
		{Timestamp: base.Add(time.Hour), Type: audit.EventCommand, SessionID: "b", Command: "add", Outcome: audit.OutcomeFailure},
	})

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Sessions)
	assert.Equal(t, 2, stats.CommandCounts["add"])
	assert.Equal(t, 1, stats.OutcomeCounts[audit.OutcomeFailure])
	assert.Equal(t, base, stats.Oldest)
	assert.Equal(t, base.Add(time.Hour), stats.Newest)
}

func TestRenderHelp_Plain(t *testing.T) {
	help := RenderHelp(commands.NewRegistry(), "dark", 80, false)
	assert.Contains(t, help, "clearmu")
	assert.Contains(t, help, "Medicine usages:")
}

func TestHighlight(t *testing.T) {
	src := `{"patients": [{"nric": "S1234567A"}]}`

	out := Highlight(src, "json", "dark")
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "S1234567A")
	assert.NotEqual(t, src, out)

	light := Highlight(src, "json", "light")
	assert.NotEqual(t, out, light)
}

func TestLexerFor(t *testing.T) {
	for format, want := range map[string]string{"json": "json", "markdown": "markdown", "html": "html"} {
		e, err := export.New(format, nil)
		require.NoError(t, err)
		assert.Equal(t, want, lexerFor(e))
	}
}
