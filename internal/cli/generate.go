package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/refyne/openapi2rust/internal/rustgen"
	genspec "github.com/refyne/openapi2rust/internal/spec"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// DefaultSpecURL is where the generator looks when no source is configured
// anywhere, matching a locally running API server.
const DefaultSpecURL = "http://localhost:8080/openapi.json"

// DefaultOutput is the conventional location of the generated types module
// inside a Rust crate.
const DefaultOutput = "src/types.rs"

// GenerateConfig captures all inputs that influence the generate command after
// merging defaults, config file values, environment, and CLI overrides.
type GenerateConfig struct {
	URL        string
	File       string
	Output     string
	ConfigPath string
	DryRun     bool
	Verbose    bool
}

func defaultGenerateConfig() GenerateConfig {
	return GenerateConfig{Output: DefaultOutput}
}

var generateRunner = runGenerate

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate Rust types from an OpenAPI document",
		Long: "Generate serde-annotated Rust type declarations from an OpenAPI document. " +
			"The source can be provided via flags, config file, or environment.",
		Example: strings.TrimSpace(`  openapi2rust generate --url https://api.example.com/openapi.json
  openapi2rust generate --file openapi.yaml --output src/types.rs
  openapi2rust --config openapi2rust.yaml generate --dry-run`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveGenerateConfig(cmd)
			if err != nil {
				return err
			}
			return generateRunner(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("url", "", "URL of the OpenAPI document")
	flags.String("file", "", "Path to a local OpenAPI document (takes precedence over --url)")
	flags.StringP("output", "o", "", "Output path for the generated Rust file (default src/types.rs)")
	flags.Bool("dry-run", false, "Print the generated types to stdout without writing files")

	return cmd
}

func resolveGenerateConfig(cmd *cobra.Command) (*GenerateConfig, error) {
	cfg := defaultGenerateConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	configPath = strings.TrimSpace(configPath)
	if configPath != "" {
		cfg.ConfigPath = configPath
		if err := applyGenerateConfigFromFile(&cfg, configPath); err != nil {
			return nil, err
		}
	}

	if err := applyGenerateFlagOverrides(cmd.Flags(), &cfg); err != nil {
		return nil, err
	}

	cfg.normalize()
	cfg.applyEnvFallback()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyGenerateFlagOverrides(flags *pflag.FlagSet, cfg *GenerateConfig) error {
	if flags.Changed("url") {
		value, err := flags.GetString("url")
		if err != nil {
			return err
		}
		cfg.URL = strings.TrimSpace(value)
	}
	if flags.Changed("file") {
		value, err := flags.GetString("file")
		if err != nil {
			return err
		}
		cfg.File = strings.TrimSpace(value)
	}
	if flags.Changed("output") {
		value, err := flags.GetString("output")
		if err != nil {
			return err
		}
		cfg.Output = strings.TrimSpace(value)
	}
	if flags.Changed("dry-run") {
		value, err := flags.GetBool("dry-run")
		if err != nil {
			return err
		}
		cfg.DryRun = value
	}
	if flags.Changed("verbose") {
		value, err := flags.GetBool("verbose")
		if err != nil {
			return err
		}
		cfg.Verbose = value
	}

	return nil
}

func (c *GenerateConfig) normalize() {
	c.URL = strings.TrimSpace(c.URL)
	c.File = strings.TrimSpace(c.File)
	c.Output = strings.TrimSpace(c.Output)
	if c.Output == "" {
		c.Output = DefaultOutput
	}
}

// applyEnvFallback consults the environment only when neither flags nor the
// config file named a source. A file beats a URL at every level.
func (c *GenerateConfig) applyEnvFallback() {
	if c.URL != "" || c.File != "" {
		return
	}
	if v := strings.TrimSpace(os.Getenv("OPENAPI_SPEC_FILE")); v != "" {
		c.File = v
		return
	}
	if v := strings.TrimSpace(os.Getenv("OPENAPI_SPEC_URL")); v != "" {
		c.URL = v
	}
}

func (c *GenerateConfig) validate() error {
	if c.Output == "" {
		return newUsageError("generate: --output must not be empty")
	}
	return nil
}

// source returns the resolved spec input and whether it is a local file.
func (c *GenerateConfig) source() (input string, isFile bool) {
	if c.File != "" {
		return c.File, true
	}
	if c.URL != "" {
		return c.URL, false
	}
	return DefaultSpecURL, false
}

func runGenerate(ctx context.Context, cfg *GenerateConfig) error {
	input, isFile := cfg.source()
	if isFile {
		fmt.Fprintf(os.Stdout, "Loading OpenAPI spec from file: %s\n", input)
	} else {
		fmt.Fprintf(os.Stdout, "Fetching OpenAPI spec from: %s\n", input)
	}

	t, raw, err := genspec.Load(ctx, input)
	if err != nil {
		// Map structured spec errors into friendly messages
		var se *genspec.SpecError
		if errors.As(err, &se) {
			msg := fmt.Sprintf("spec: %s", se.Message)
			if se.Location != "" {
				msg = fmt.Sprintf("%s\nLocation: %s", msg, se.Location)
			}
			return newUsageError(msg)
		}
		return err
	}

	doc, err := genspec.Build(t, raw)
	if err != nil {
		return fmt.Errorf("build model: %w", err)
	}

	fmt.Fprintf(os.Stdout, "OpenAPI version: %s\n", doc.OpenAPIVersion)
	fmt.Fprintf(os.Stdout, "API title: %s\n", doc.Title)
	fmt.Fprintf(os.Stdout, "API version: %s\n", doc.APIVersion)
	if cfg.Verbose {
		fmt.Fprintf(os.Stdout, "Schemas found: %d\n", len(doc.Schemas))
	}

	res := rustgen.Generate(doc)

	if cfg.DryRun {
		fmt.Fprintf(os.Stdout, "Dry run: would write %d bytes to %s\n", len(res.Content), cfg.Output)
		fmt.Fprintln(os.Stdout, res.Content)
	} else {
		if err := rustgen.WriteFile(cfg.Output, res.Content); err != nil {
			return wrapOutputError(err, cfg.Output)
		}
		absOut := cfg.Output
		if ap, err := filepath.Abs(cfg.Output); err == nil {
			absOut = ap
		}
		fmt.Fprintf(os.Stdout, "Types written to: %s\n", absOut)
	}

	fmt.Fprintf(os.Stdout, "Generated %d types + %d inline enums\n", res.SchemaCount, res.InlineEnumCount)
	return nil
}

func wrapOutputError(err error, out string) error {
	// Provide clearer guidance for common FS failures.
	msg := err.Error()
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "permission") || strings.Contains(lower, "read-only") || strings.Contains(lower, "mkdir") || strings.Contains(lower, "rename") {
		return newUsageError(fmt.Sprintf("output error for %s: %s\nHint: choose a different --output path.", out, msg))
	}
	return err
}

func applyGenerateConfigFromFile(cfg *GenerateConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return newUsageError(fmt.Sprintf("read config file %q: %v", path, err))
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return newUsageError(fmt.Sprintf("parse config file %q: %v", path, err))
	}

	for key, value := range raw {
		normalized := normalizeKey(key)
		switch normalized {
		case "url", "specurl":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.URL = str
		case "file", "specfile":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.File = str
		case "output", "out":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Output = str
		case "dryrun":
			val, err := valueAsBool(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.DryRun = val
		case "verbose":
			val, err := valueAsBool(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Verbose = val
		default:
			return newUsageError(fmt.Sprintf("config file %q: unknown field %q", path, key))
		}
	}

	return nil
}

func normalizeKey(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	lowered = strings.ReplaceAll(lowered, "-", "")
	lowered = strings.ReplaceAll(lowered, "_", "")
	return lowered
}

func valueAsString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("expected string, got %T", v)
	}
}

func valueAsBool(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		trimmed := strings.ToLower(strings.TrimSpace(val))
		switch trimmed {
		case "true", "t", "1", "yes", "y":
			return true, nil
		case "false", "f", "0", "no", "n":
			return false, nil
		case "":
			return false, nil
		default:
			return false, fmt.Errorf("invalid boolean value %q", val)
		}
	case nil:
		return false, nil
	default:
		return false, fmt.Errorf("expected boolean, got %T", v)
	}
}
