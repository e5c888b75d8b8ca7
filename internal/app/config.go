package app

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/vk/cellan/internal/analyser"
)

// validate is shared; validator.Validate caches struct metadata and is safe
// for concurrent use.
var validate = validator.New()

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ModelPath string `yaml:"model" validate:"required"`

	// Externals lists variables supplied by the caller, written as
	// "component.variable", optionally followed by ":" and a comma-separated
	// list of the variables it depends on.
	Externals []string `yaml:"externals" validate:"dive,required,contains=."`

	OutputFormat    string `yaml:"output" validate:"oneof=text json yaml"`
	LogFormat       string `yaml:"log_format" validate:"oneof=text json"`
	LogLevel        string `yaml:"log_level" validate:"oneof=debug info warn error"`
	UnitsCheck      bool   `yaml:"units_check"`
	UnitsStrictness string `yaml:"units_strictness" validate:"oneof=warning error"`
	MetricsFile     string `yaml:"metrics_file"`

	// FlattenTo, when set, receives the loaded model as one canonical HCL
	// file before it is analysed.
	FlattenTo string `yaml:"flatten_to"`
}

// DefaultConfig returns the configuration used for every option that is not
// set explicitly.
func DefaultConfig() Config {
	return Config{
		OutputFormat:    "text",
		LogFormat:       "text",
		LogLevel:        "info",
		UnitsCheck:      true,
		UnitsStrictness: "warning",
	}
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	cfg.OutputFormat = strings.ToLower(cfg.OutputFormat)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.UnitsStrictness = strings.ToLower(cfg.UnitsStrictness)

	if err := validate.Struct(cfg); err != nil {
		return nil, formatValidationError(err)
	}
	if _, err := cfg.ExternalVariables(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfigFile reads a YAML configuration file over base. Keys missing from
// the file keep the value they have in base; unknown keys are an error.
func LoadConfigFile(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read config file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	cfg := base
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return base, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// ExternalVariables parses Externals.
func (c *Config) ExternalVariables() ([]*analyser.ExternalVariable, error) {
	out := make([]*analyser.ExternalVariable, 0, len(c.Externals))
	for _, entry := range c.Externals {
		target, deps, _ := strings.Cut(entry, ":")
		ref, err := parseVariableRef(target)
		if err != nil {
			return nil, fmt.Errorf("invalid external variable %q: %w", entry, err)
		}
		ev := analyser.NewExternalVariable(ref.Component, ref.Variable)
		if deps != "" {
			for _, dep := range strings.Split(deps, ",") {
				depRef, err := parseVariableRef(dep)
				if err != nil {
					return nil, fmt.Errorf("invalid dependency in external variable %q: %w", entry, err)
				}
				ev.AddDependency(depRef)
			}
		}
		out = append(out, ev)
	}
	return out, nil
}

func parseVariableRef(s string) (analyser.VariableRef, error) {
	component, variable, ok := strings.Cut(strings.TrimSpace(s), ".")
	if !ok || component == "" || variable == "" || strings.Contains(variable, ".") {
		return analyser.VariableRef{}, fmt.Errorf("%q is not of the form component.variable", s)
	}
	return analyser.VariableRef{Component: component, Variable: variable}, nil
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value()))
		case "contains":
			msgs = append(msgs, fmt.Sprintf("%s must be of the form component.variable, got %q", fe.Field(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed the %s check", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}
