package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"writingsystems/internal/engines"
	"writingsystems/internal/romanize"
	"writingsystems/internal/romanstore"
	"writingsystems/internal/testsupport"
)

func TestTextCommandPrintsTabSeparatedResults(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"text", "Αθήνα", "--lang", "grc"}, env.configPath, "")
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 result lines, got %q", out)
	}
	if lines[0] != "Athena\tunidecode\tgrc-Grek" {
		t.Fatalf("expected generic engine first, got %q", lines[0])
	}
	requireContains(t, out, "Athēna\tgreek-scholarly\tgrc-Grek")
	requireContains(t, out, "Athena\tgreek-scholarly\tgrc-Grek")
}

func TestTextCommandJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"text", "Москва", "--lang", "ru", "--json"}, env.configPath, "")
	if err != nil {
		t.Fatalf("text --json: %v", err)
	}
	var results []engines.RomanString
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	if len(results) == 0 {
		t.Fatal("expected romanizations")
	}
	engineNames := make(map[string]bool)
	for _, rs := range results {
		if rs.Original != "Москва" || rs.OriginalLangTag != "ru-Cyrl" {
			t.Fatalf("unexpected result %+v", rs)
		}
		if !strings.EqualFold(rs.Romanized, "moskva") {
			t.Fatalf("expected Moskva, got %+v", rs)
		}
		engineNames[rs.Engine] = true
	}
	if !engineNames["unidecode"] || !engineNames["cyrillic"] {
		t.Fatalf("expected unidecode and cyrillic results, got %+v", results)
	}
}

func TestTextCommandEmptyOutcomes(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"text", "Athens", "--lang", "grc", "--json"}, env.configPath, "")
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Fatalf("expected empty JSON array, got %q", out)
	}

	out, _, err = runCLI(t, []string{"text", "Athens", "--lang", "grc"}, env.configPath, "")
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	if out != "" {
		t.Fatalf("expected no output when piped, got %q", out)
	}
}

func TestTextCommandRejectsInvalidTag(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"text", "Αθήνα", "--lang", "not a tag"}, env.configPath, "")
	if !errors.Is(err, romanize.ErrInvalidTag) {
		t.Fatalf("expected ErrInvalidTag, got %v", err)
	}
}

func TestIndexAndSearch(t *testing.T) {
	env := setupCLITestEnv(t)

	stdin := "Αθήνα\tgrc\nМосква\tru\n\n   \nΑθήνα\tnot a tag\n"
	out, _, err := runCLI(t, []string{"index", "-", "--json"}, env.configPath, stdin)
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	var summary indexSummary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decode summary %q: %v", out, err)
	}
	if summary.Lines != 3 || summary.Skipped != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if summary.BatchID == "" || summary.Saved == 0 {
		t.Fatalf("expected saved rows under a batch, got %+v", summary)
	}

	out, _, err = runCLI(t, []string{"search", "ath"}, env.configPath, "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	requireContains(t, out, "Αθήνα\tAthena\tunidecode\tgrc-Grek")
	requireContains(t, out, "Αθήνα\tAthēna\tgreek-scholarly\tgrc-Grek")
	requireNotContains(t, out, "Москва")

	out, _, err = runCLI(t, []string{"search", "MOSK", "--json"}, env.configPath, "")
	if err != nil {
		t.Fatalf("search --json: %v", err)
	}
	var records []romanstore.Record
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("decode records %q: %v", out, err)
	}
	if len(records) == 0 {
		t.Fatal("expected matches for mosk")
	}
	for _, r := range records {
		if r.Original != "Москва" || r.BatchID != summary.BatchID || r.RequestedTags != "ru" {
			t.Fatalf("unexpected record %+v", r)
		}
	}

	out, _, err = runCLI(t, []string{"search", "sparta", "--json"}, env.configPath, "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Fatalf("expected no matches, got %q", out)
	}
}

func TestIndexFileUsesFallbackTag(t *testing.T) {
	env := setupCLITestEnv(t)

	input := filepath.Join(env.baseDir, "names.txt")
	testsupport.WriteLines(t, input, "Σωκράτης", "Πλάτων")
	out, _, err := runCLI(t, []string{"index", input, "--lang", "grc"}, env.configPath, "")
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	requireContains(t, out, "Indexed 2 lines")

	store := testsupport.MustOpenStore(t, env.cfg)
	records, err := store.Lookup(t.Context(), "Πλάτων")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(records) == 0 {
		t.Fatal("expected stored romanizations")
	}
	for _, r := range records {
		if r.OriginalLangTag != "grc-Grek" || r.RequestedTags != "grc" {
			t.Fatalf("unexpected record %+v", r)
		}
	}
}

func TestEnginesCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"engines"}, env.configPath, "")
	if err != nil {
		t.Fatalf("engines: %v", err)
	}
	want := "1\tunidecode\n2\tgreek-scholarly\n3\telot743\n4\tcyrillic\n5\trevised-romanization\n"
	if out != want {
		t.Fatalf("engines output = %q, want %q", out, want)
	}

	disabled := setupCLITestEnv(t, testsupport.WithDisabledEngines("elot743", "cyrillic"))
	out, _, err = runCLI(t, []string{"engines"}, disabled.configPath, "")
	if err != nil {
		t.Fatalf("engines: %v", err)
	}
	want = "1\tunidecode\n2\tgreek-scholarly\n3\trevised-romanization\n"
	if out != want {
		t.Fatalf("engines output = %q, want %q", out, want)
	}

	out, _, err = runCLI(t, []string{"engines", "--all"}, disabled.configPath, "")
	if err != nil {
		t.Fatalf("engines --all: %v", err)
	}
	want = "1\tunidecode\tyes\n2\tgreek-scholarly\tyes\n3\telot743\tno\n4\tcyrillic\tno\n5\trevised-romanization\tyes\n"
	if out != want {
		t.Fatalf("engines --all output = %q, want %q", out, want)
	}
}

func TestRegistryShow(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"registry", "show", "Hang"}, env.configPath, "")
	if err != nil {
		t.Fatalf("registry show Hang: %v", err)
	}
	requireContains(t, out, "Script:       Hang")
	requireContains(t, out, "Descriptions: Hangul; Hangŭl")
	requireContains(t, out, "Languages:    none")

	out, _, err = runCLI(t, []string{"registry", "show", "Cyrl"}, env.configPath, "")
	if err != nil {
		t.Fatalf("registry show Cyrl: %v", err)
	}
	requireContains(t, out, "Languages:    bg, ru, uk")

	out, _, err = runCLI(t, []string{"registry", "show", "EL"}, env.configPath, "")
	if err != nil {
		t.Fatalf("registry show EL: %v", err)
	}
	requireContains(t, out, "Language:     el")
	requireContains(t, out, "Script:       Grek")

	if _, _, err := runCLI(t, []string{"registry", "show", "grc"}, env.configPath, ""); err == nil {
		t.Fatal("expected an error for a language without suppress-script")
	}
}

func TestRegistryInfoLocalFile(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"registry", "info"}, env.configPath, "")
	if err != nil {
		t.Fatalf("registry info: %v", err)
	}
	requireContains(t, out, "Path:    "+env.cfg.Registry.File)
	requireContains(t, out, "Source:  local file")
	requireContains(t, out, "Present: yes")
	requireNotContains(t, out, "Stale:")

	_, _, err = runCLI(t, []string{"registry", "refresh"}, env.configPath, "")
	if err == nil {
		t.Fatal("expected refresh to fail for a local registry file")
	}
}

func TestRegistryRefreshAndInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testsupport.RegistryDocument))
	}))
	t.Cleanup(server.Close)
	env := setupCLITestEnv(t, testsupport.WithRegistryURL(server.URL))

	out, _, err := runCLI(t, []string{"registry", "info"}, env.configPath, "")
	if err != nil {
		t.Fatalf("registry info: %v", err)
	}
	requireContains(t, out, "Source:  "+server.URL)
	requireContains(t, out, "Max age: 30 days")
	requireContains(t, out, "Present: no")

	out, _, err = runCLI(t, []string{"registry", "refresh"}, env.configPath, "")
	if err != nil {
		t.Fatalf("registry refresh: %v", err)
	}
	requireContains(t, out, "Registry refreshed (file date 2025-08-25")

	out, _, err = runCLI(t, []string{"registry", "info"}, env.configPath, "")
	if err != nil {
		t.Fatalf("registry info: %v", err)
	}
	requireContains(t, out, "Path:    "+env.cfg.RegistryCachePath())
	requireContains(t, out, "Present: yes")
	requireContains(t, out, "Stale:   no")
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath, "")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Config path: "+env.configPath)
	requireContains(t, out, "Store:       "+env.cfg.StorePath())
	requireContains(t, out, "Registry:    "+env.cfg.Registry.File+" (local file)")
	requireContains(t, out, "Disabled:    none")
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "", "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, "", ""); err == nil {
		t.Fatal("expected init to refuse overwriting without --force")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--force"}, "", ""); err != nil {
		t.Fatalf("config init --force: %v", err)
	}

	out, _, err = runCLI(t, []string{"config", "validate"}, target, "")
	if err != nil {
		t.Fatalf("validate sample: %v", err)
	}
	requireContains(t, out, "Configuration valid")
}

func TestSplitIndexLine(t *testing.T) {
	tests := []struct {
		line     string
		wantText string
		wantTag  string
	}{
		{"Αθήνα", "Αθήνα", "und"},
		{"Αθήνα\tgrc", "Αθήνα", "grc"},
		{"  Αθήνα \t el ", "Αθήνα", "el"},
		{"Αθήνα\t", "Αθήνα", "und"},
		{"\tru", "", "ru"},
	}
	for _, tc := range tests {
		text, tag := splitIndexLine(tc.line, "und")
		if text != tc.wantText || tag != tc.wantTag {
			t.Fatalf("splitIndexLine(%q) = (%q, %q), want (%q, %q)", tc.line, text, tag, tc.wantText, tc.wantTag)
		}
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]column{{title: "#", right: true}, {title: "Engine"}},
		[][]string{{"1", "unidecode"}, {"2"}},
	)
	requireContains(t, out, "ENGINE")
	requireContains(t, out, "unidecode")
	if lines := strings.Count(out, "\n"); lines < 5 {
		t.Fatalf("expected bordered table, got %q", out)
	}
}
