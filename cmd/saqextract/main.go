// Command saqextract extracts structured requirement records from
// self-assessment questionnaire PDFs.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Thomas9824/saqextract/pkg/api"
	"github.com/Thomas9824/saqextract/pkg/lang"
	"github.com/Thomas9824/saqextract/pkg/pdftext"
	"github.com/Thomas9824/saqextract/pkg/saq"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "saqextract",
		Short: "Compliance questionnaire requirement extractor",
		Long: `saqextract turns the raw, layout-mangled text of a compliance
questionnaire PDF into structured records: one per numbered requirement,
each carrying its description, its testing procedures, and its
applicability/guidance notes.

The document language (French or English) is detected automatically from a
page sample; additional languages can be supplied as YAML profiles.`,
		Version: version,
	}

	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(detectCmd())
	rootCmd.AddCommand(profilesCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func extractCmd() *cobra.Command {
	var (
		source      string
		language    string
		profilePath string
		output      string
		stats       bool
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract requirements from a questionnaire PDF",
		Long: `Extract parses the requirement pages of a questionnaire PDF and prints
the requirement list as JSON, numerically sorted.

Example:
  saqextract extract --source saq-d.pdf
  saqextract extract --source saq-d.pdf --lang en --output requirements.json --stats`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(source)
			if err != nil {
				return fmt.Errorf("reading source: %w", err)
			}

			extractor := pdftext.New()
			profile, err := resolveProfile(extractor, data, language, profilePath)
			if err != nil {
				return err
			}

			parser, err := saq.NewParser(profile)
			if err != nil {
				return err
			}

			text, err := extractor.RequirementText(data)
			if err != nil {
				return err
			}

			requirements := parser.Parse(text)
			if len(requirements) == 0 {
				return fmt.Errorf("no requirements found in %s (profile %q)", source, profile.Name)
			}
			saq.SortRequirements(requirements)

			encoded, err := json.MarshalIndent(requirements, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding output: %w", err)
			}

			if output != "" {
				if err := os.WriteFile(output, append(encoded, '\n'), 0o644); err != nil {
					return fmt.Errorf("writing output: %w", err)
				}
				fmt.Fprintf(os.Stderr, "Wrote %d requirements to %s\n", len(requirements), output)
			} else {
				fmt.Println(string(encoded))
			}

			if stats {
				summary := saq.Summarize(requirements)
				fmt.Fprintf(os.Stderr, "Requirements: %d\n", summary.Total)
				fmt.Fprintf(os.Stderr, "With tests: %d\n", summary.WithTests)
				fmt.Fprintf(os.Stderr, "With guidance: %d\n", summary.WithGuidance)
				fmt.Fprintf(os.Stderr, "Total tests: %d\n", summary.TotalTests)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "questionnaire PDF to parse (required)")
	cmd.Flags().StringVar(&language, "lang", "auto", "language: auto, fr, or en")
	cmd.Flags().StringVar(&profilePath, "profile", "", "YAML language profile (overrides --lang)")
	cmd.Flags().StringVar(&output, "output", "", "write JSON to file instead of stdout")
	cmd.Flags().BoolVar(&stats, "stats", false, "print summary statistics to stderr")
	_ = cmd.MarkFlagRequired("source")

	return cmd
}

// resolveProfile picks the parse vocabulary: an explicit YAML profile wins,
// then an explicit language, then keyword detection on a page sample.
func resolveProfile(extractor *pdftext.Extractor, data []byte, language, profilePath string) (saq.Profile, error) {
	if profilePath != "" {
		return saq.LoadProfile(profilePath)
	}

	switch strings.ToLower(language) {
	case "fr", "french":
		return saq.French(), nil
	case "en", "english":
		return saq.English(), nil
	case "auto", "":
		sample, err := extractor.Sample(data)
		if err != nil {
			return saq.Profile{}, err
		}
		result := lang.Detect(sample)
		fmt.Fprintf(os.Stderr, "Detected language: %s (confidence %.1f%%)\n",
			result.Language, result.Confidence*100)
		return lang.ProfileFor(result.Language), nil
	default:
		return saq.Profile{}, fmt.Errorf("unknown language %q (want auto, fr, or en)", language)
	}
}

func detectCmd() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Detect the language of a questionnaire PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(source)
			if err != nil {
				return fmt.Errorf("reading source: %w", err)
			}

			sample, err := pdftext.New().Sample(data)
			if err != nil {
				return err
			}

			result := lang.Detect(sample)
			fmt.Printf("Language: %s\n", result.Language)
			fmt.Printf("Confidence: %.1f%%\n", result.Confidence*100)
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "questionnaire PDF to sample (required)")
	_ = cmd.MarkFlagRequired("source")

	return cmd
}

func profilesCmd() *cobra.Command {
	var (
		export string
		output string
	)

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List built-in language profiles or export one as YAML",
		Long: `Without flags, profiles lists the built-in language profiles. With
--export, it writes one as a YAML file that can be edited into a new
language and passed to extract --profile.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if export == "" {
				for name, p := range saq.Builtins() {
					fmt.Printf("%-10s %d test markers, %d ignore patterns\n",
						name, len(p.TestMarkers), len(p.IgnorePatterns))
				}
				return nil
			}

			profile, ok := builtinFor(export)
			if !ok {
				return fmt.Errorf("unknown profile %q (want fr or en)", export)
			}

			data, err := saq.MarshalProfile(profile)
			if err != nil {
				return err
			}
			if output == "" {
				fmt.Print(string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("writing profile: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Wrote profile %q to %s\n", profile.Name, output)
			return nil
		},
	}

	cmd.Flags().StringVar(&export, "export", "", "profile to export: fr or en")
	cmd.Flags().StringVar(&output, "output", "", "write YAML to file instead of stdout")

	return cmd
}

func builtinFor(name string) (saq.Profile, bool) {
	switch strings.ToLower(name) {
	case "fr", "french":
		return saq.French(), true
	case "en", "english":
		return saq.English(), true
	}
	return saq.Profile{}, false
}

func serveCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the extraction REST API",
		Long: `Serve starts an HTTP server exposing GET /health and POST /api/extract
(multipart PDF upload).

Configuration is read from flags, a config file, and SAQEXTRACT_* environment
variables, in that order of precedence.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.SetDefault("listen", ":8080")

			if configFile != "" {
				viper.SetConfigFile(configFile)
			} else {
				viper.SetConfigName("saqextract")
				viper.SetConfigType("yaml")
				viper.AddConfigPath(".")
			}
			viper.SetEnvPrefix("SAQEXTRACT")
			viper.AutomaticEnv()

			if err := viper.ReadInConfig(); err == nil {
				fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
			}

			if flagListen, _ := cmd.Flags().GetString("listen"); cmd.Flags().Changed("listen") {
				viper.Set("listen", flagListen)
			}

			engine := api.NewEngine(pdftext.New())
			listen := viper.GetString("listen")
			fmt.Fprintf(os.Stderr, "Listening on %s\n", listen)
			return engine.Run(listen)
		},
	}

	cmd.Flags().String("listen", ":8080", "listen address")
	cmd.Flags().StringVar(&configFile, "config", "", "config file (default: ./saqextract.yaml)")

	return cmd
}
