package model

import "time"

// ImageEntry is one labelable image discovered by a source.
//
// Name is the identifier used everywhere else (CSV cells, choice keys); it is
// the bare file name and is unique within a listing. Path is where the bytes
// live, for on-demand preview decoding.
type ImageEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// LabelDef binds one keyboard key to a label value.
//
// Key is a single character, matched case-insensitively. Value is used both
// as the CSV cell and as the button caption in the TUI.
type LabelDef struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Choice is one (image, label value) association.
type Choice struct {
	Image string `json:"image"`
	Value string `json:"value"`
}

// ChoiceRecord is one journaled labeling action (cross-session history).
type ChoiceRecord struct {
	Directory string    `json:"directory"`
	Image     string    `json:"image"`
	Choice    string    `json:"choice"`
	Timestamp time.Time `json:"timestamp"`
}

// DefaultLabelDefs returns the built-in two-label schema.
func DefaultLabelDefs() []LabelDef {
	return []LabelDef{
		{Key: "y", Value: "Y"},
		{Key: "n", Value: "N"},
	}
}
