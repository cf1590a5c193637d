package session

import (
	"strings"

	"github.com/bonntanname/figure-checker/internal/model"
	"github.com/bonntanname/figure-checker/internal/source"
)

// Session holds the in-memory labeling state for one opened source: the
// ordered image list, the cursor, and the choice map.
//
// Advance policy is cyclic: moving past the last image wraps to index 0.
// (The alternative terminal policy — stop after the last image — was a
// behavioral fork in earlier iterations of this tool; cyclic was chosen so
// the user can always revisit and re-label.)
type Session struct {
	Label        string
	Dir          string
	WriteCapable bool

	images []model.ImageEntry
	cursor int

	choices map[string]string
	order   []string // choice insertion order, for CSV serialization
}

func New(l *source.Listing) *Session {
	s := &Session{
		choices: map[string]string{},
	}
	if l != nil {
		s.Label = l.Label
		s.Dir = l.Dir
		s.WriteCapable = l.WriteCapable
		s.images = append(s.images, l.Images...)
	}
	return s
}

func (s *Session) Images() []model.ImageEntry { return s.images }
func (s *Session) Len() int                   { return len(s.images) }
func (s *Session) Cursor() int                { return s.cursor }

// Current returns the image under the cursor, if any.
func (s *Session) Current() (model.ImageEntry, bool) {
	if len(s.images) == 0 {
		return model.ImageEntry{}, false
	}
	return s.images[s.cursor], true
}

// SetCursor clamps i into range; no-op on an empty list.
func (s *Session) SetCursor(i int) {
	if len(s.images) == 0 {
		s.cursor = 0
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= len(s.images) {
		i = len(s.images) - 1
	}
	s.cursor = i
}

// Record assigns value to the current image and advances. Re-labeling the
// same image overwrites the previous value (idempotent upsert); the image
// keeps its original position in the serialization order.
//
// No-op when the image list is empty.
func (s *Session) Record(value string) (model.ImageEntry, bool) {
	cur, ok := s.Current()
	if !ok {
		return model.ImageEntry{}, false
	}
	s.put(cur.Name, value)
	s.Advance()
	return cur, true
}

func (s *Session) put(name, value string) {
	if _, ok := s.choices[name]; !ok {
		s.order = append(s.order, name)
	}
	s.choices[name] = value
}

// Advance moves the cursor forward, wrapping to 0 past the last image.
func (s *Session) Advance() {
	if len(s.images) == 0 {
		return
	}
	s.cursor = (s.cursor + 1) % len(s.images)
}

// Prev moves the cursor backward, wrapping to the last image.
func (s *Session) Prev() {
	if len(s.images) == 0 {
		return
	}
	s.cursor = (s.cursor - 1 + len(s.images)) % len(s.images)
}

// JumpToNextUnlabeled places the cursor on the lowest-indexed image with no
// recorded choice, or on index 0 when every image is labeled.
func (s *Session) JumpToNextUnlabeled() {
	if len(s.images) == 0 {
		return
	}
	for i, img := range s.images {
		if _, ok := s.choices[img.Name]; !ok {
			s.cursor = i
			return
		}
	}
	s.cursor = 0
}

// Choice looks up the recorded value for an image identifier.
func (s *Session) Choice(name string) (string, bool) {
	v, ok := s.choices[name]
	return v, ok
}

// Choices returns all recorded choices in insertion order.
func (s *Session) Choices() []model.Choice {
	out := make([]model.Choice, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, model.Choice{Image: name, Value: s.choices[name]})
	}
	return out
}

func (s *Session) LabeledCount() int { return len(s.choices) }

// LabeledInList counts recorded choices for images present in the listing.
// Resumed choices for files no longer on disk are excluded, so progress
// display never exceeds the image count.
func (s *Session) LabeledInList() int {
	n := 0
	for _, img := range s.images {
		if _, ok := s.choices[img.Name]; ok {
			n++
		}
	}
	return n
}

// ReplaceChoices bulk-replaces the choice map (resume from CSV) and moves the
// cursor to the first image absent from the loaded map, or 0 if all present.
// Loaded identifiers are kept even when they do not appear in the current
// image list; stored choices are not validated against the active schema.
func (s *Session) ReplaceChoices(choices []model.Choice) {
	s.choices = map[string]string{}
	s.order = nil
	for _, c := range choices {
		if strings.TrimSpace(c.Image) == "" {
			continue
		}
		s.put(c.Image, c.Value)
	}
	s.cursor = 0
	s.JumpToNextUnlabeled()
}

// Tally counts recorded choices per label value, for progress display.
func (s *Session) Tally() map[string]int {
	out := map[string]int{}
	for _, v := range s.choices {
		out[v]++
	}
	return out
}
