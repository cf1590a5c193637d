package results

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/bonntanname/figure-checker/internal/model"
)

// Results files are deliberately naive CSV: a fixed header and one
// `identifier,value` line per choice, with no quoting or escaping. This is
// the on-disk contract shared with earlier iterations of the tool; embedded
// commas in identifiers or values corrupt the format silently.

const Header = "Image,Choice"

const legacyFileName = "results.csv"

var datedFileRe = regexp.MustCompile(`^results-\d{4}-\d{2}-\d{2}\.csv$`)

// Filename returns the dated results file name for a save at t (UTC date).
func Filename(t time.Time) string {
	return "results-" + t.UTC().Format("2006-01-02") + ".csv"
}

// Encode serializes choices in the given order.
func Encode(choices []model.Choice) string {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteString("\n")
	for _, c := range choices {
		b.WriteString(c.Image)
		b.WriteString(",")
		b.WriteString(c.Value)
		b.WriteString("\n")
	}
	return b.String()
}

// Decode parses results CSV content back into choices.
//
// The first line is skipped as the header. Each remaining line splits on the
// first comma; both fields are trimmed. Malformed lines (no comma, empty
// identifier) are skipped silently. Content with fewer than two lines is
// rejected so an empty or truncated file never silently wipes prior state.
func Decode(content string) ([]model.Choice, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	if len(lines) < 2 {
		return nil, errors.New("invalid results file: expected a header and at least one row")
	}

	out := []model.Choice{}
	for _, line := range lines[1:] {
		image, value, ok := strings.Cut(line, ",")
		if !ok {
			continue
		}
		image = strings.TrimSpace(image)
		value = strings.TrimSpace(value)
		if image == "" {
			continue
		}
		out = append(out, model.Choice{Image: image, Value: value})
	}
	return out, nil
}

// Load reads and decodes a results file.
func Load(path string) ([]model.Choice, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	return Decode(string(b))
}

// Save writes choices to the dated results file inside dir and returns its
// path. The write is atomic (temp file + rename) so a failure mid-write
// leaves any previous file intact.
func Save(dir string, choices []model.Choice, now time.Time) (string, error) {
	path := filepath.Join(dir, Filename(now))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(Encode(choices)), 0o644); err != nil {
		return "", fmt.Errorf("save results: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("save results: %w", err)
	}
	return path, nil
}

// Latest returns the most recent results file in dir, if any.
//
// Dated names sort chronologically as strings, so the lexical maximum wins.
// A bare legacy `results.csv` is only offered when no dated file exists.
func Latest(dir string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	best := ""
	legacy := false
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		switch {
		case datedFileRe.MatchString(name):
			if name > best {
				best = name
			}
		case name == legacyFileName:
			legacy = true
		}
	}
	if best != "" {
		return filepath.Join(dir, best), true
	}
	if legacy {
		return filepath.Join(dir, legacyFileName), true
	}
	return "", false
}

// Merge upserts extra choices into base, preserving base's order for images
// it already contains and appending new images in extra's order.
func Merge(base, extra []model.Choice) []model.Choice {
	idx := map[string]int{}
	out := append([]model.Choice{}, base...)
	for i, c := range out {
		idx[c.Image] = i
	}
	for _, c := range extra {
		if i, ok := idx[c.Image]; ok {
			out[i].Value = c.Value
			continue
		}
		idx[c.Image] = len(out)
		out = append(out, c)
	}
	return out
}
