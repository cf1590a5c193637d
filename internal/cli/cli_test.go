package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/bonntanname/figure-checker/internal/results"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func seedImages(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func decodeData(t *testing.T, out []byte) map[string]any {
	t.Helper()
	var v map[string]any
	if err := json.Unmarshal(out, &v); err != nil {
		t.Fatalf("unmarshal output: %v\nstdout:\n%s", err, string(out))
	}
	return v
}

func TestScan_ListsImages(t *testing.T) {
	t.Setenv("FIGCHECK_CONFIG_DIR", t.TempDir())
	dir := seedImages(t, "a.png", "b.JPG", "notes.txt")

	out, errOut, err := runCLI(t, []string{"scan", dir})
	if err != nil {
		t.Fatalf("scan error: %v\nstderr:\n%s", err, string(errOut))
	}

	v := decodeData(t, out)
	data, ok := v["data"].(map[string]any)
	if !ok {
		t.Fatalf("missing data envelope: %s", string(out))
	}
	images, ok := data["images"].([]any)
	if !ok || len(images) != 2 {
		t.Fatalf("expected 2 images, got %v", data["images"])
	}
	if data["writeCapable"] != true {
		t.Fatalf("expected writeCapable listing, got %v", data["writeCapable"])
	}
}

func TestLabel_CreatesAndUpsertsResultsFile(t *testing.T) {
	t.Setenv("FIGCHECK_CONFIG_DIR", t.TempDir())
	dir := seedImages(t, "a.png", "b.png")

	if _, errOut, err := runCLI(t, []string{"label", dir, "a.png", "Y"}); err != nil {
		t.Fatalf("label error: %v\nstderr:\n%s", err, string(errOut))
	}

	path, ok := results.Latest(dir)
	if !ok {
		t.Fatal("expected a results file after label")
	}
	choices, err := results.Load(path)
	if err != nil {
		t.Fatalf("load results: %v", err)
	}
	if len(choices) != 1 || choices[0].Image != "a.png" || choices[0].Value != "Y" {
		t.Fatalf("unexpected choices: %+v", choices)
	}

	// Second label upserts into the same file, keeping the first choice.
	if _, errOut, err := runCLI(t, []string{"label", dir, "b.png", "N"}); err != nil {
		t.Fatalf("second label error: %v\nstderr:\n%s", err, string(errOut))
	}
	if _, _, err := runCLI(t, []string{"label", dir, "a.png", "N"}); err != nil {
		t.Fatalf("re-label error: %v", err)
	}

	path, _ = results.Latest(dir)
	choices, err = results.Load(path)
	if err != nil {
		t.Fatalf("load results: %v", err)
	}
	if len(choices) != 2 {
		t.Fatalf("expected 2 choices, got %+v", choices)
	}
	if choices[0].Image != "a.png" || choices[0].Value != "N" {
		t.Fatalf("expected a.png re-labeled in place, got %+v", choices[0])
	}
}

func TestLabel_UnknownImage(t *testing.T) {
	t.Setenv("FIGCHECK_CONFIG_DIR", t.TempDir())
	dir := seedImages(t, "a.png")

	_, errOut, err := runCLI(t, []string{"label", dir, "missing.png", "Y"})
	if err == nil {
		t.Fatal("expected error for unknown image")
	}
	if !bytes.Contains(errOut, []byte("not found")) {
		t.Fatalf("expected not-found message, got: %s", string(errOut))
	}
}

func TestResultsShow_ReportsProgress(t *testing.T) {
	t.Setenv("FIGCHECK_CONFIG_DIR", t.TempDir())
	dir := seedImages(t, "a.png", "b.png", "c.png")

	if _, _, err := runCLI(t, []string{"label", dir, "a.png", "Y"}); err != nil {
		t.Fatalf("label: %v", err)
	}

	out, errOut, err := runCLI(t, []string{"results", "show", dir})
	if err != nil {
		t.Fatalf("results show error: %v\nstderr:\n%s", err, string(errOut))
	}

	v := decodeData(t, out)
	data := v["data"].(map[string]any)
	progress, ok := data["progress"].(map[string]any)
	if !ok {
		t.Fatalf("missing progress: %s", string(out))
	}
	if progress["labeled"] != float64(1) || progress["total"] != float64(3) {
		t.Fatalf("unexpected progress: %v", progress)
	}
}

func TestResultsShow_NoFile(t *testing.T) {
	t.Setenv("FIGCHECK_CONFIG_DIR", t.TempDir())
	dir := seedImages(t, "a.png")

	if _, _, err := runCLI(t, []string{"results", "show", dir}); err == nil {
		t.Fatal("expected error when no results file exists")
	}
}

func TestResultsJournal_ScopedToDirectory(t *testing.T) {
	t.Setenv("FIGCHECK_CONFIG_DIR", t.TempDir())
	dir := seedImages(t, "a.png")
	other := seedImages(t, "b.png")

	if _, _, err := runCLI(t, []string{"label", dir, "a.png", "Y"}); err != nil {
		t.Fatalf("label: %v", err)
	}
	if _, _, err := runCLI(t, []string{"label", other, "b.png", "N"}); err != nil {
		t.Fatalf("label other: %v", err)
	}

	out, errOut, err := runCLI(t, []string{"results", "journal", dir})
	if err != nil {
		t.Fatalf("journal error: %v\nstderr:\n%s", err, string(errOut))
	}
	v := decodeData(t, out)
	recs, ok := v["data"].([]any)
	if !ok || len(recs) != 1 {
		t.Fatalf("expected 1 journal record for %s, got %v", dir, v["data"])
	}

	out, _, err = runCLI(t, []string{"results", "journal"})
	if err != nil {
		t.Fatalf("journal all error: %v", err)
	}
	v = decodeData(t, out)
	if recs, ok := v["data"].([]any); !ok || len(recs) != 2 {
		t.Fatalf("expected 2 journal records total, got %v", v["data"])
	}
}

func TestSchema_SetShowReset(t *testing.T) {
	t.Setenv("FIGCHECK_CONFIG_DIR", t.TempDir())

	out, errOut, err := runCLI(t, []string{"schema", "set", "g=Good", "b=Bad"})
	if err != nil {
		t.Fatalf("schema set error: %v\nstderr:\n%s", err, string(errOut))
	}
	v := decodeData(t, out)
	if defs, ok := v["data"].([]any); !ok || len(defs) != 2 {
		t.Fatalf("expected 2 defs, got %v", v["data"])
	}

	// show reflects the stored schema.
	out, _, err = runCLI(t, []string{"schema", "show"})
	if err != nil {
		t.Fatalf("schema show error: %v", err)
	}
	v = decodeData(t, out)
	defs := v["data"].([]any)
	first := defs[0].(map[string]any)
	if first["key"] != "g" || first["value"] != "Good" {
		t.Fatalf("unexpected first def: %v", first)
	}

	// reset restores the built-ins.
	if _, _, err := runCLI(t, []string{"schema", "reset"}); err != nil {
		t.Fatalf("schema reset error: %v", err)
	}
	out, _, err = runCLI(t, []string{"schema", "show"})
	if err != nil {
		t.Fatalf("schema show after reset: %v", err)
	}
	v = decodeData(t, out)
	defs = v["data"].([]any)
	if len(defs) != 2 || defs[0].(map[string]any)["key"] != "y" {
		t.Fatalf("expected default schema after reset, got %v", defs)
	}
}

func TestSchema_SetRejectsInvalid(t *testing.T) {
	t.Setenv("FIGCHECK_CONFIG_DIR", t.TempDir())

	// Seed a valid schema first; a failed set must not clobber it.
	if _, _, err := runCLI(t, []string{"schema", "set", "g=Good"}); err != nil {
		t.Fatalf("schema set: %v", err)
	}

	cases := [][]string{
		{"schema", "set", "nopair"},
		{"schema", "set", "gg=TooLong"},
		{"schema", "set", "g=Good", "G=Dup"},
		{"schema", "set", "g="},
	}
	for _, args := range cases {
		if _, _, err := runCLI(t, args); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}

	out, _, err := runCLI(t, []string{"schema", "show"})
	if err != nil {
		t.Fatalf("schema show: %v", err)
	}
	v := decodeData(t, out)
	defs := v["data"].([]any)
	if len(defs) != 1 || defs[0].(map[string]any)["value"] != "Good" {
		t.Fatalf("expected stored schema untouched, got %v", defs)
	}
}

func TestResolveListing(t *testing.T) {
	t.Parallel()

	dir := seedImages(t, "a.png", "b.png")

	l, err := resolveListing([]string{dir})
	if err != nil {
		t.Fatalf("resolve dir: %v", err)
	}
	if !l.WriteCapable || len(l.Images) != 2 {
		t.Fatalf("expected write-capable dir listing, got %+v", l)
	}

	// Explicit files yield a read-only selection.
	l, err = resolveListing([]string{filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png")})
	if err != nil {
		t.Fatalf("resolve files: %v", err)
	}
	if l.WriteCapable || len(l.Images) != 2 {
		t.Fatalf("expected read-only file listing, got %+v", l)
	}

	// A single non-directory argument is a file selection too.
	l, err = resolveListing([]string{filepath.Join(dir, "a.png")})
	if err != nil {
		t.Fatalf("resolve single file: %v", err)
	}
	if l.WriteCapable || len(l.Images) != 1 {
		t.Fatalf("expected read-only single-file listing, got %+v", l)
	}

	// A single nonexistent path is an error, not an empty selection.
	if _, err := resolveListing([]string{filepath.Join(dir, "nope")}); err == nil {
		t.Fatal("expected error for nonexistent path")
	}
}

func TestDocs_ListsTopics(t *testing.T) {
	t.Setenv("FIGCHECK_CONFIG_DIR", t.TempDir())

	out, errOut, err := runCLI(t, []string{"docs"})
	if err != nil {
		t.Fatalf("docs error: %v\nstderr:\n%s", err, string(errOut))
	}
	v := decodeData(t, out)
	data, ok := v["data"].(map[string]any)
	if !ok {
		t.Fatalf("missing data envelope: %s", string(out))
	}
	topics, ok := data["topics"].([]any)
	if !ok || len(topics) == 0 {
		t.Fatalf("expected topic list, got %v", data["topics"])
	}
}

func TestDocs_UnknownTopic(t *testing.T) {
	t.Setenv("FIGCHECK_CONFIG_DIR", t.TempDir())

	if _, _, err := runCLI(t, []string{"docs", "no-such-topic"}); err == nil {
		t.Fatal("expected error for unknown topic")
	}
}
