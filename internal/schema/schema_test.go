package schema

import (
	"testing"

	"github.com/bonntanname/figure-checker/internal/model"
)

func TestNew_Valid(t *testing.T) {
	t.Parallel()

	sch, err := New([]model.LabelDef{
		{Key: "g", Value: "Good"},
		{Key: "b", Value: "Bad"},
		{Key: "s", Value: "Skip"},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if sch.Len() != 3 {
		t.Fatalf("expected 3 defs, got %d", sch.Len())
	}
}

func TestNew_TrimsFields(t *testing.T) {
	t.Parallel()

	sch, err := New([]model.LabelDef{{Key: " y ", Value: " Yes "}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if sch.Defs[0].Key != "y" || sch.Defs[0].Value != "Yes" {
		t.Fatalf("expected trimmed def, got %+v", sch.Defs[0])
	}
}

func TestNew_Invalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		defs []model.LabelDef
	}{
		{"empty", nil},
		{"empty key", []model.LabelDef{{Key: "", Value: "Yes"}}},
		{"multi-rune key", []model.LabelDef{{Key: "yes", Value: "Yes"}}},
		{"empty value", []model.LabelDef{{Key: "y", Value: ""}}},
		{"duplicate key", []model.LabelDef{{Key: "y", Value: "Yes"}, {Key: "y", Value: "Other"}}},
		{"duplicate key different case", []model.LabelDef{{Key: "y", Value: "Yes"}, {Key: "Y", Value: "Other"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.defs); err == nil {
				t.Fatalf("expected error for %v", tc.defs)
			}
		})
	}
}

func TestMatch_CaseInsensitive(t *testing.T) {
	t.Parallel()

	sch := Default()

	for _, key := range []string{"y", "Y"} {
		def, ok := sch.Match(key)
		if !ok {
			t.Fatalf("expected %q to match", key)
		}
		if def.Value != "Y" {
			t.Fatalf("expected value Y for key %q, got %q", key, def.Value)
		}
	}

	if _, ok := sch.Match("x"); ok {
		t.Fatal("expected no match for unbound key")
	}
	if _, ok := sch.Match(""); ok {
		t.Fatal("expected no match for empty key")
	}
}

func TestDefault(t *testing.T) {
	t.Parallel()

	sch := Default()
	if sch.Len() != 2 {
		t.Fatalf("expected 2 default defs, got %d", sch.Len())
	}
	if def, ok := sch.Match("n"); !ok || def.Value != "N" {
		t.Fatalf("expected n -> N, got %+v ok=%v", def, ok)
	}
}
