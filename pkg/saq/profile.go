// Package saq parses self-assessment questionnaire text into structured
// requirement records. The input is raw page text extracted from a PDF; the
// output is one record per numbered requirement carrying its description,
// ordered testing procedures, and applicability/guidance notes.
package saq

import (
	"fmt"
	"regexp"
)

// Profile holds the per-language vocabulary the parser is configured with:
// the bullet-prefixed verb phrases that open a testing procedure, the section
// header strings, and the boilerplate patterns to discard. Adding a language
// is pure data; the parser itself is language-neutral.
type Profile struct {
	// Name identifies the profile ("french", "english", ...).
	Name string `yaml:"name"`

	// TestMarkers are the bullet-prefixed verb phrases that open a testing
	// procedure line, e.g. "• Examiner". The bullet glyph is part of the
	// marker.
	TestMarkers []string `yaml:"test_markers"`

	// ApplicabilityMarker is the literal header of the applicability notes
	// section.
	ApplicabilityMarker string `yaml:"applicability_marker"`

	// GuidanceMarker is the literal header of the guidance section.
	GuidanceMarker string `yaml:"guidance_marker"`

	// IgnorePatterns are line-prefix regexes identifying boilerplate lines
	// that are dropped outright during the parse walk.
	IgnorePatterns []string `yaml:"ignore_patterns"`

	// DocumentRules are regexes removed from the whole concatenated document
	// before line splitting (running headers, copyright blocks, checkbox
	// tables). The page-header rule spans lines and uses (?s).
	DocumentRules []string `yaml:"document_rules"`

	// FragmentRules are regexes removed from a single assembled string
	// (a test, the description, guidance) during the parse walk.
	FragmentRules []string `yaml:"fragment_rules"`

	// ArtifactRules are regexes removed from every field in the final
	// per-requirement pass, including runs of checkbox-table tokens.
	ArtifactRules []string `yaml:"artifact_rules"`
}

// compiledProfile is a Profile with every pattern list compiled. Built once
// per parser.
type compiledProfile struct {
	Profile
	ignore    []*regexp.Regexp
	document  []*regexp.Regexp
	fragment  []*regexp.Regexp
	artifacts []*regexp.Regexp
}

func (p Profile) compile() (*compiledProfile, error) {
	cp := &compiledProfile{Profile: p}
	for _, group := range []struct {
		name string
		src  []string
		dst  *[]*regexp.Regexp
	}{
		{"ignore_patterns", p.IgnorePatterns, &cp.ignore},
		{"document_rules", p.DocumentRules, &cp.document},
		{"fragment_rules", p.FragmentRules, &cp.fragment},
		{"artifact_rules", p.ArtifactRules, &cp.artifacts},
	} {
		for _, src := range group.src {
			re, err := regexp.Compile(src)
			if err != nil {
				return nil, fmt.Errorf("profile %q: %s: %w", p.Name, group.name, err)
			}
			*group.dst = append(*group.dst, re)
		}
	}
	return cp, nil
}

// French returns the built-in profile for French SAQ D documents.
func French() Profile {
	return Profile{
		Name:                "french",
		TestMarkers:         []string{"• Examiner", "• Observer", "• Interroger", "• Vérifier", "• Inspecter"},
		ApplicabilityMarker: "Notes d'Applicabilité",
		GuidanceMarker:      "Conseils",
		IgnorePatterns: []string{
			`(?i)^SAQ D de PCI DSS`,
			`(?i)^© 2006-\d+`,
			`(?i)^Page \d+`,
			`(?i)^Octobre 2024`,
			`(?i)^Exigence de PCI DSS`,
			`(?i)^Tests Prévus`,
			`(?i)^Réponse`,
			`(?i)^En Place`,
			`(?i)^Pas en Place`,
			`(?i)^Non Applicable`,
			`(?i)^Non Testé`,
			`(?i)^♦ Se reporter`,
			`(?i)^\(Cocher une réponse`,
			`(?i)^Section \d+`,
			`(?i)^Tous Droits Réservés`,
			`(?i)^LLC\.`,
			`(?i)^PCI Security Standards Council`,
		},
		DocumentRules: []string{
			`(?is)SAQ D de PCI DSS v[\d.]+.*?Page \d+.*?(?:En Place|Pas en Place)`,
			`(?i)© 2006-\d+.*?LLC.*?Tous Droits Réservés\.`,
			`(?i)Octobre 2024`,
			`(?i)♦\s*Se reporter[^\n]*`,
			`(?i)\(Cocher une réponse[^\n]*?\)`,
			`(?i)Section \d+ :`,
			`(?i)En Place\s+En Place avec CCW\s+Non Applicable\s+Non Testé\s+Pas en Place`,
			`(?i)avec CCW\s+Non Applicable\s+Non Testé\s+Pas en Place`,
			`(?i)avec CCW Non Applicable Non Testé Pas[^\n]*`,
		},
		FragmentRules: []string{
			`(?i)SAQ D de PCI DSS.*?Page \d+.*`,
			`(?i)© 2006-.*?LLC.*`,
			`(?i)En Place.*?Pas en Place`,
			`(?i)♦\s*Se reporter.*`,
			`(?i)avec CCW Non Applicable Non Testé Pas.*`,
			`(?i)En Place\s+En Place avec CCW\s+Non Applicable\s+Non Testé\s+Pas en Place`,
			`(?i)(En Place|Pas en Place|Non Applicable|Non Testé|CCW)(\s+(En Place|Pas en Place|Non Applicable|Non Testé|CCW))*`,
		},
		ArtifactRules: []string{
			`(?i)avec CCW Non Applicable Non Testé Pas[^\n]*`,
			`(?i)En Place\s+En Place avec CCW\s+Non Applicable\s+Non Testé\s+Pas en Place`,
			`(?i)avec CCW\s+Non Applicable\s+Non Testé\s+Pas en Place`,
			`(?i)En Place.*?Pas en Place[^\n]*`,
			`(?i)(En Place|Pas en Place|Non Applicable|Non Testé|CCW)(\s+(En Place|Pas en Place|Non Applicable|Non Testé|CCW))+`,
			`(?i)♦\s*Se reporter[^\n]*`,
			`(?i)\(Cocher une réponse[^\n]*?\)`,
		},
	}
}

// English returns the built-in profile for English SAQ D documents.
func English() Profile {
	return Profile{
		Name:                "english",
		TestMarkers:         []string{"• Examine", "• Observe", "• Interview", "• Verify", "• Inspect"},
		ApplicabilityMarker: "Applicability Notes",
		GuidanceMarker:      "Guidance",
		IgnorePatterns: []string{
			`(?i)^PCI DSS SAQ D`,
			`(?i)^© 2006-\d+`,
			`(?i)^Page \d+`,
			`(?i)^October 2024`,
			`(?i)^PCI DSS Requirement`,
			`(?i)^Testing Procedures`,
			`(?i)^Response`,
			`(?i)^In Place`,
			`(?i)^Not in Place`,
			`(?i)^Not Applicable`,
			`(?i)^Not Tested`,
			`(?i)^♦ Refer to`,
			`(?i)^\(Check one response`,
			`(?i)^Section \d+`,
			`(?i)^All Rights Reserved`,
			`(?i)^LLC\.`,
			`(?i)^PCI Security Standards Council`,
		},
		DocumentRules: []string{
			`(?is)PCI DSS SAQ D v[\d.]+.*?Page \d+.*?(?:In Place|Not in Place)`,
			`(?i)© 2006-\d+.*?LLC.*?All Rights Reserved\.`,
			`(?i)October 2024`,
			`(?i)♦\s*Refer to[^\n]*`,
			`(?i)\(Check one response[^\n]*?\)`,
			`(?i)Section \d+ :`,
			`(?i)In Place\s+In Place with CCW\s+Not Applicable\s+Not Tested\s+Not in Place`,
			`(?i)with CCW\s+Not Applicable\s+Not Tested\s+Not in Place`,
			`(?i)with CCW Not Applicable Not Tested Not[^\n]*`,
		},
		FragmentRules: []string{
			`(?i)PCI DSS SAQ D.*?Page \d+.*`,
			`(?i)© 2006-.*?LLC.*`,
			`(?i)In Place.*?Not in Place`,
			`(?i)♦\s*Refer to.*`,
			`(?i)with CCW Not Applicable Not Tested Not.*`,
			`(?i)In Place\s+In Place with CCW\s+Not Applicable\s+Not Tested\s+Not in Place`,
			`(?i)(In Place|Not in Place|Not Applicable|Not Tested|CCW)(\s+(In Place|Not in Place|Not Applicable|Not Tested|CCW))*`,
		},
		ArtifactRules: []string{
			`(?i)with CCW Not Applicable Not Tested Not[^\n]*`,
			`(?i)In Place\s+In Place with CCW\s+Not Applicable\s+Not Tested\s+Not in Place`,
			`(?i)with CCW\s+Not Applicable\s+Not Tested\s+Not in Place`,
			`(?i)In Place.*?Not in Place[^\n]*`,
			`(?i)(In Place|Not in Place|Not Applicable|Not Tested|CCW)(\s+(In Place|Not in Place|Not Applicable|Not Tested|CCW))+`,
			`(?i)♦\s*Refer to[^\n]*`,
			`(?i)\(Check one response[^\n]*?\)`,
		},
	}
}

// Builtins returns the built-in profiles keyed by name.
func Builtins() map[string]Profile {
	return map[string]Profile{
		"french":  French(),
		"english": English(),
	}
}
