package saq

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadProfile reads a language profile from a YAML file. The file layout
// mirrors the Profile struct; see the output of MarshalProfile for a
// reference document.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("reading profile: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parsing profile %s: %w", path, err)
	}

	if err := p.Validate(); err != nil {
		return Profile{}, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

// MarshalProfile renders a profile as YAML, suitable as a starting point for
// a new language.
func MarshalProfile(p Profile) ([]byte, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshaling profile %q: %w", p.Name, err)
	}
	return data, nil
}

// Validate checks that the profile carries enough vocabulary to drive a
// parse, and that every pattern compiles.
func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile has no name")
	}
	if len(p.TestMarkers) == 0 {
		return fmt.Errorf("profile has no test markers")
	}
	if p.ApplicabilityMarker == "" || p.GuidanceMarker == "" {
		return fmt.Errorf("profile is missing a section marker")
	}
	if _, err := p.compile(); err != nil {
		return err
	}
	return nil
}
