package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bonntanname/figure-checker/internal/model"
)

// Listing is the result of opening an image source.
//
// WriteCapable means results may be written back into Dir. The flat file-list
// fallback yields a read-only listing whose label is derived from the common
// path prefix of the selected files.
type Listing struct {
	Label        string             `json:"label"`
	Dir          string             `json:"dir,omitempty"`
	Images       []model.ImageEntry `json:"images"`
	WriteCapable bool               `json:"writeCapable"`
}

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// IsImageName reports whether name has an accepted image extension.
// Matching is case-insensitive and against the bare file name only.
func IsImageName(name string) bool {
	return imageExts[strings.ToLower(filepath.Ext(filepath.Base(name)))]
}

// Scan lists the labelable images directly inside dir, in enumeration order.
// Subdirectories are not descended into. Dir is absolutized so the listing
// stays valid as a journal/session key regardless of the caller's cwd.
func Scan(dir string) (*Listing, error) {
	dir = filepath.Clean(dir)
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	l := &Listing{
		Label:        filepath.Base(dir),
		Dir:          dir,
		Images:       []model.ImageEntry{},
		WriteCapable: true,
	}
	for _, e := range entries {
		if e.IsDir() || !IsImageName(e.Name()) {
			continue
		}
		l.Images = append(l.Images, model.ImageEntry{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
		})
	}
	return l, nil
}

// FromFiles builds a read-only listing from an explicit file selection.
// Non-image paths are filtered out; duplicates (same bare name) keep the
// first occurrence so identifiers stay unique. Dir is the common directory
// of the selection so journal records and saved sessions stay keyed even
// though nothing is ever written back into it.
func FromFiles(paths []string) (*Listing, error) {
	if len(paths) == 0 {
		return nil, errors.New("no files selected")
	}

	l := &Listing{Images: []model.ImageEntry{}}
	seen := map[string]bool{}
	var dirs []string
	for _, p := range paths {
		if !IsImageName(p) {
			continue
		}
		name := filepath.Base(p)
		if seen[name] {
			continue
		}
		seen[name] = true
		l.Images = append(l.Images, model.ImageEntry{Name: name, Path: p})
		dirs = append(dirs, filepath.Dir(filepath.Clean(p)))
	}

	common := commonDir(dirs)
	if common != "" {
		if abs, err := filepath.Abs(common); err == nil {
			common = abs
		}
	}
	l.Dir = common
	l.Label = filepath.Base(common)
	return l, nil
}

// commonDir returns the longest directory prefix shared by all paths,
// compared segment-wise so "a/bc" and "a/bd" share "a", not "a/b".
func commonDir(dirs []string) string {
	if len(dirs) == 0 {
		return ""
	}
	common := strings.Split(dirs[0], string(os.PathSeparator))
	for _, d := range dirs[1:] {
		parts := strings.Split(d, string(os.PathSeparator))
		if len(parts) < len(common) {
			common = common[:len(parts)]
		}
		for i := range common {
			if common[i] != parts[i] {
				common = common[:i]
				break
			}
		}
	}
	return strings.Join(common, string(os.PathSeparator))
}
