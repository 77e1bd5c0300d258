package gwtrack

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/louisbranch/gwtrack/internal/services/tracker/content"
	"github.com/louisbranch/gwtrack/internal/services/tracker/status"
)

const testQuests = `Name: Ascalon City
Campaign: Prophecies
Quests:
  Charr at the Gate:
    Type: Primary
    XP: 1500
    Reward: [Gold, Skills]
  Vaettir Trouble:
    Type: Secondary
`

const testMissions = `Missions:
  Iron Mines of Moladune:
    Rank: 1
    Z_XP: 2000
`

func TestParseConfigDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	unsetEnv(t, "GWTRACK_DATA_DIR", "GWTRACK_CONTENT_DIR", "GWTRACK_LOCALE", "GWTRACK_LOG_FORMAT", "GWTRACK_LENIENT_STATES")

	cfg, err := ParseConfig()
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DataDir != filepath.Join(home, ".gwtrack") {
		t.Fatalf("data dir = %q", cfg.DataDir)
	}
	if cfg.Locale != "en-US" || cfg.LogFormat != "console" || cfg.LenientStates {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestParseConfigFromEnv(t *testing.T) {
	t.Setenv("GWTRACK_CONTENT_DIR", "/srv/content")
	t.Setenv("GWTRACK_DATA_DIR", "/srv/data")
	t.Setenv("GWTRACK_LENIENT_STATES", "true")
	t.Setenv("GWTRACK_COLLECT_ERRORS", "true")

	cfg, err := ParseConfig()
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.ContentDir != "/srv/content" || cfg.DataDir != "/srv/data" || !cfg.LenientStates || !cfg.CollectErrors {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestParseConfigRejectsBadBool(t *testing.T) {
	t.Setenv("GWTRACK_LENIENT_STATES", "sometimes")
	if _, err := ParseConfig(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidateReportsCounts(t *testing.T) {
	cfg := testConfig(t)
	out, err := run(t, cfg, "validate")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	for _, line := range []string{"quests: 1 areas", "missions: 1 areas", "no areas: skills, vanquish"} {
		if !strings.Contains(out, line) {
			t.Fatalf("output missing %q:\n%s", line, out)
		}
	}
}

func TestValidateFailsOnBadContent(t *testing.T) {
	cfg := testConfig(t)
	writeContent(t, cfg.ContentDir, "skills/broken.yaml", "Skills:\n  Signet:\n    Profession: Bard\n")

	_, err := run(t, cfg, "validate")
	if !errors.Is(err, content.ErrContentValidation) {
		t.Fatalf("expected content validation error, got %v", err)
	}
	if ExitCode(err) != 2 {
		t.Fatalf("exit code = %d, want 2", ExitCode(err))
	}
	if ExitCode(errors.New("other")) != 1 {
		t.Fatal("expected exit code 1 for other errors")
	}
}

func TestAreasListsGroups(t *testing.T) {
	cfg := testConfig(t)
	out, err := run(t, cfg, "areas", "Quests")
	if err != nil {
		t.Fatalf("areas: %v", err)
	}
	if out != "Prophecies\n  Ascalon City\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestShowSuggestsOnMiss(t *testing.T) {
	cfg := testConfig(t)
	_, err := run(t, cfg, "show", "quest", "Ascalon Cty")
	if err == nil || !strings.Contains(err.Error(), "did you mean: Ascalon City?") {
		t.Fatalf("expected suggestion, got %v", err)
	}
}

func TestCharacterProgressFlow(t *testing.T) {
	cfg := testConfig(t)

	if _, err := run(t, cfg, "char", "create", "--name", "Rurik Guard", "--type", "Tyrian", "--profession", "Warrior"); err != nil {
		t.Fatalf("char create: %v", err)
	}
	out, err := run(t, cfg, "char", "list")
	if err != nil {
		t.Fatalf("char list: %v", err)
	}
	if !strings.Contains(out, "Rurik Guard") || !strings.Contains(out, "rurik_guard.db") {
		t.Fatalf("char list output:\n%s", out)
	}

	if _, err := run(t, cfg, "status", "set", "mission", "missions", "Iron Mines of Moladune", "Master", "--char", "Rurik Guard", "--hard"); err != nil {
		t.Fatalf("status set: %v", err)
	}
	out, err = run(t, cfg, "status", "get", "mission", "missions", "Iron Mines of Moladune", "--char", "Rurik Guard", "--hard")
	if err != nil {
		t.Fatalf("status get: %v", err)
	}
	wantKey := status.Key(content.KindMission, "missions", "Iron Mines of Moladune", true)
	if out != wantKey+"\tMaster\n" {
		t.Fatalf("status get output %q", out)
	}

	out, err = run(t, cfg, "status", "get", "mission", "missions", "Iron Mines of Moladune", "--char", "Rurik Guard")
	if err != nil {
		t.Fatalf("status get normal: %v", err)
	}
	if !strings.HasSuffix(out, "\t(not set)\n") {
		t.Fatalf("normal mode should be unset, got %q", out)
	}

	if _, err := run(t, cfg, "status", "set", "quest", "Ascalon City", "Charr at the Gate", "Done", "--char", "Rurik Guard"); err != nil {
		t.Fatalf("status set quest: %v", err)
	}
	out, err = run(t, cfg, "show", "quest", "Ascalon City", "--char", "Rurik Guard")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and two rows, got:\n%s", out)
	}
	if !strings.HasSuffix(lines[0], "Status") || !strings.HasSuffix(lines[1], "Done") {
		t.Fatalf("unexpected show output:\n%s", out)
	}
	if !strings.Contains(lines[1], "1,500") || !strings.Contains(lines[2], "---") {
		t.Fatalf("expected formatted XP columns:\n%s", out)
	}

	if _, err := run(t, cfg, "status", "clear", "quest", "Ascalon City", "Charr at the Gate", "--char", "Rurik Guard"); err != nil {
		t.Fatalf("status clear: %v", err)
	}
	out, err = run(t, cfg, "status", "get", "quest", "Ascalon City", "Charr at the Gate", "--char", "Rurik Guard")
	if err != nil {
		t.Fatalf("status get after clear: %v", err)
	}
	if !strings.HasSuffix(out, "\t(cleared)\n") {
		t.Fatalf("expected cleared state, got %q", out)
	}

	out, err = run(t, cfg, "status", "list", "--char", "Rurik Guard")
	if err != nil {
		t.Fatalf("status list: %v", err)
	}
	lines = strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two stored states, got:\n%s", out)
	}
	questKey := status.Key(content.KindQuest, "Ascalon City", "Charr at the Gate", false)
	if !strings.HasPrefix(lines[0], questKey) || !strings.HasSuffix(lines[0], "(cleared)") {
		t.Fatalf("unexpected first state line %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], wantKey) || !strings.HasSuffix(lines[1], "Master") {
		t.Fatalf("unexpected second state line %q", lines[1])
	}
}

func TestCharListEmpty(t *testing.T) {
	cfg := testConfig(t)
	out, err := run(t, cfg, "char", "list")
	if err != nil {
		t.Fatalf("char list: %v", err)
	}
	if out != "no characters in "+cfg.DataDir+"\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestStatusRejectsInvalidStateAndUnknownItem(t *testing.T) {
	cfg := testConfig(t)
	if _, err := run(t, cfg, "char", "create", "--name", "Mhenlo", "--profession", "Monk"); err != nil {
		t.Fatalf("char create: %v", err)
	}

	_, err := run(t, cfg, "status", "set", "quest", "Ascalon City", "Charr at the Gate", "Master", "--char", "Mhenlo")
	if !errors.Is(err, status.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if !strings.Contains(err.Error(), `(valid: "", Active, Complete, Done, N/A)`) {
		t.Fatalf("expected valid states in error, got %v", err)
	}

	_, err = run(t, cfg, "status", "get", "quest", "Ascalon City", "Char at the Gate", "--char", "Mhenlo")
	if err == nil || !strings.Contains(err.Error(), "did you mean: Charr at the Gate?") {
		t.Fatalf("expected item suggestion, got %v", err)
	}

	cfg.LenientStates = true
	if _, err := run(t, cfg, "status", "set", "quest", "Ascalon City", "Charr at the Gate", "Master", "--char", "Mhenlo"); err != nil {
		t.Fatalf("lenient set: %v", err)
	}
}

func TestShowDetailAddsWikiAndRewards(t *testing.T) {
	cfg := testConfig(t)
	out, err := run(t, cfg, "show", "quest", "Ascalon City", "--detail")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and two rows, got:\n%s", out)
	}
	if !strings.HasSuffix(lines[0], "Reward Detail") {
		t.Fatalf("missing detail headers:\n%s", out)
	}
	if !strings.Contains(lines[1], "https://wiki.guildwars.com/wiki/Charr_at_the_Gate") || !strings.HasSuffix(lines[1], "Gold, Skills") {
		t.Fatalf("unexpected detail row:\n%s", out)
	}
}

func TestCharListFlagsUnsupportedStore(t *testing.T) {
	cfg := testConfig(t)
	if _, err := run(t, cfg, "char", "create", "--name", "Devona", "--profession", "Warrior"); err != nil {
		t.Fatalf("char create: %v", err)
	}
	db, err := sql.Open("sqlite", filepath.Join(cfg.DataDir, "devona.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if _, err := db.Exec("UPDATE config SET value = '7' WHERE key = 'Version'"); err != nil {
		t.Fatalf("set version: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}

	out, err := run(t, cfg, "char", "list")
	if err != nil {
		t.Fatalf("char list: %v", err)
	}
	if !strings.Contains(out, "(unsupported version 7)") || !strings.Contains(out, "devona.db") {
		t.Fatalf("expected unsupported store in listing:\n%s", out)
	}
}

func TestStatusRequiresChar(t *testing.T) {
	cfg := testConfig(t)
	if _, err := run(t, cfg, "status", "get", "quest", "Ascalon City", "Charr at the Gate"); err == nil {
		t.Fatal("expected missing --char error")
	}
}

// unsetEnv removes keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}
}

func testConfig(t *testing.T) Config {
	t.Helper()
	root := t.TempDir()
	cfg := Config{
		ContentDir: filepath.Join(root, "content"),
		DataDir:    filepath.Join(root, "data"),
		LogLevel:   "error",
		LogFormat:  "console",
		Locale:     "en-US",
	}
	writeContent(t, cfg.ContentDir, "quests/ascalon.yaml", testQuests)
	writeContent(t, cfg.ContentDir, "missions/missions.yaml", testMissions)
	return cfg
}

func writeContent(t *testing.T, root, name, data string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func run(t *testing.T, cfg Config, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := Run(context.Background(), cfg, args, &out, &errOut)
	return out.String(), err
}
