package results

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bonntanname/figure-checker/internal/model"
)

func TestFilename_UTCDate(t *testing.T) {
	t.Parallel()

	// 23:30 in UTC-5 is already the next day in UTC.
	loc := time.FixedZone("minus5", -5*3600)
	at := time.Date(2026, 3, 1, 23, 30, 0, 0, loc)
	if got := Filename(at); got != "results-2026-03-02.csv" {
		t.Fatalf("Filename = %q", got)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	in := []model.Choice{
		{Image: "a.png", Value: "Y"},
		{Image: "b.png", Value: "N"},
	}
	out, err := Decode(Encode(in))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 2 || out[0] != in[0] || out[1] != in[1] {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestDecode_SkipsMalformedLines(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		"Image,Choice",
		"a.png,Y",
		"no-comma-here",
		" ,Y",
		"b.png , N ",
		"",
	}, "\n")

	out, err := Decode(content)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 choices, got %d: %+v", len(out), out)
	}
	if out[1].Image != "b.png" || out[1].Value != "N" {
		t.Fatalf("expected trimmed fields, got %+v", out[1])
	}
}

func TestDecode_CRLF(t *testing.T) {
	t.Parallel()

	out, err := Decode("Image,Choice\r\na.png,Y\r\n")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0].Image != "a.png" {
		t.Fatalf("unexpected choices: %+v", out)
	}
}

func TestDecode_RejectsTruncated(t *testing.T) {
	t.Parallel()

	for _, content := range []string{"", "Image,Choice", "Image,Choice\n"} {
		if _, err := Decode(content); err == nil {
			t.Fatalf("expected error for %q", content)
		}
	}
}

func TestDecode_HeaderOnlyPlusRowYieldsEmpty(t *testing.T) {
	t.Parallel()

	// A header plus a malformed row decodes to zero choices, not an error.
	out, err := Decode("Image,Choice\ngarbage\n")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected no choices, got %+v", out)
	}
}

func TestSaveLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	choices := []model.Choice{{Image: "a.png", Value: "Y"}}
	path, err := Save(dir, choices, now)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Base(path) != "results-2026-08-25.csv" {
		t.Fatalf("unexpected file name: %s", path)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0] != choices[0] {
		t.Fatalf("unexpected choices: %+v", got)
	}

	// No temp file left behind.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be gone, stat err = %v", err)
	}
}

func TestLatest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	if _, ok := Latest(dir); ok {
		t.Fatal("expected no results file in empty dir")
	}

	write := func(name string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte("Image,Choice\na.png,Y\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	write("results.csv")
	path, ok := Latest(dir)
	if !ok || filepath.Base(path) != "results.csv" {
		t.Fatalf("expected legacy fallback, got %q ok=%v", path, ok)
	}

	write("results-2026-08-01.csv")
	write("results-2026-08-20.csv")
	write("results-20xx-bad.csv")
	path, ok = Latest(dir)
	if !ok || filepath.Base(path) != "results-2026-08-20.csv" {
		t.Fatalf("expected newest dated file, got %q ok=%v", path, ok)
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := []model.Choice{
		{Image: "a.png", Value: "Y"},
		{Image: "b.png", Value: "N"},
	}
	extra := []model.Choice{
		{Image: "b.png", Value: "Y"}, // upsert
		{Image: "c.png", Value: "N"}, // append
	}

	got := Merge(base, extra)
	want := []model.Choice{
		{Image: "a.png", Value: "Y"},
		{Image: "b.png", Value: "Y"},
		{Image: "c.png", Value: "N"},
	}
	if len(got) != len(want) {
		t.Fatalf("merge length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("merge[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}
