package schema

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bonntanname/figure-checker/internal/model"
)

// Schema is the ordered, validated set of label definitions active during a
// session. Insertion order determines display order and color assignment.
//
// Invariants (enforced by New):
// - at least one definition
// - every key is a single character, every value non-empty
// - keys are unique case-insensitively
type Schema struct {
	Defs []model.LabelDef
}

func Default() Schema {
	return Schema{Defs: model.DefaultLabelDefs()}
}

// New builds a Schema from defs, rejecting the whole set on any violation.
// There is no partial apply: callers keep their previous schema on error.
func New(defs []model.LabelDef) (Schema, error) {
	if err := Validate(defs); err != nil {
		return Schema{}, err
	}
	out := make([]model.LabelDef, len(defs))
	for i, d := range defs {
		out[i] = model.LabelDef{
			Key:   strings.TrimSpace(d.Key),
			Value: strings.TrimSpace(d.Value),
		}
	}
	return Schema{Defs: out}, nil
}

func Validate(defs []model.LabelDef) error {
	if len(defs) == 0 {
		return fmt.Errorf("schema must have at least one label")
	}
	seen := map[string]int{}
	for i, d := range defs {
		key := strings.TrimSpace(d.Key)
		value := strings.TrimSpace(d.Value)
		if key == "" {
			return fmt.Errorf("label %d: empty key", i+1)
		}
		if utf8.RuneCountInString(key) != 1 {
			return fmt.Errorf("label %d: key %q must be a single character", i+1, key)
		}
		if value == "" {
			return fmt.Errorf("label %d: empty value", i+1)
		}
		folded := strings.ToLower(key)
		if prev, ok := seen[folded]; ok {
			return fmt.Errorf("label %d: key %q already used by label %d", i+1, key, prev+1)
		}
		seen[folded] = i
	}
	return nil
}

// Match resolves a keystroke against the schema, case-insensitively.
// Key uniqueness guarantees at most one definition can match.
func (s Schema) Match(key string) (model.LabelDef, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return model.LabelDef{}, false
	}
	for _, d := range s.Defs {
		if strings.ToLower(d.Key) == key {
			return d, true
		}
	}
	return model.LabelDef{}, false
}

// Len reports the number of definitions.
func (s Schema) Len() int { return len(s.Defs) }
