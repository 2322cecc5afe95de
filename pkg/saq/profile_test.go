package saq

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestBuiltinProfilesValidate(t *testing.T) {
	for name, profile := range Builtins() {
		if err := profile.Validate(); err != nil {
			t.Errorf("built-in profile %q invalid: %v", name, err)
		}
	}
}

func TestProfileYAMLRoundTrip(t *testing.T) {
	original := French()

	data, err := MarshalProfile(original)
	if err != nil {
		t.Fatalf("MarshalProfile failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "french.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing profile: %v", err)
	}

	loaded, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}

	if !reflect.DeepEqual(loaded, original) {
		t.Errorf("round trip mismatch:\nloaded:   %+v\noriginal: %+v", loaded, original)
	}
}

func TestLoadProfileRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing name", "test_markers: [\"• Check\"]\napplicability_marker: A\nguidance_marker: G\n"},
		{"no markers", "name: custom\napplicability_marker: A\nguidance_marker: G\n"},
		{"bad pattern", "name: custom\ntest_markers: [\"• Check\"]\napplicability_marker: A\nguidance_marker: G\nignore_patterns: [\"^(\"]\n"},
		{"not yaml", "{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "profile.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
				t.Fatalf("writing fixture: %v", err)
			}
			if _, err := LoadProfile(path); err == nil {
				t.Error("LoadProfile accepted an invalid profile")
			}
		})
	}
}

func TestLoadProfileMissingFile(t *testing.T) {
	if _, err := LoadProfile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadProfile accepted a missing file")
	}
}

// A parser built from a custom profile behaves like the built-ins: the
// language is pure data.
func TestParserFromCustomProfile(t *testing.T) {
	profile := Profile{
		Name:                "klingon",
		TestMarkers:         []string{"• Check"},
		ApplicabilityMarker: "Scope Notes",
		GuidanceMarker:      "Advice",
	}

	p, err := NewParser(profile)
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}

	got := p.ParseLines([]string{
		"5.1.2 Anti-malware mechanisms are maintained and monitored continuously.",
		"• Check the anti-malware solution configuration on sampled systems.",
		"Advice: keep the definitions current across the whole fleet.",
	})

	if len(got) != 1 {
		t.Fatalf("got %d requirements, want 1", len(got))
	}
	if len(got[0].Tests) != 1 {
		t.Errorf("got %d tests, want 1: %q", len(got[0].Tests), got[0].Tests)
	}
	if got[0].Guidance == "" {
		t.Error("guidance not captured with custom marker")
	}
}
