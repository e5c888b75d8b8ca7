package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/cellan/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// listFlag collects every occurrence of a repeatable flag.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	if v == "" {
		return errors.New("value must not be empty")
	}
	*l = append(*l, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
//
// Options are layered: built-in defaults, then the file given with -config,
// then every flag set explicitly on the command line.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("cellan", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
cellan - Static analysis of mathematical models of biological cells.

Usage:
  cellan [options] [MODEL_PATH]

Arguments:
  MODEL_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Exit codes:
  0 the model is valid, 1 an error occurred, 2 invalid usage,
  3 the model was analysed but is not valid.

Options:
`)
		flagSet.PrintDefaults()
	}

	defaults := app.DefaultConfig()
	var externals listFlag
	modelFlag := flagSet.String("model", "", "Path to the model file or directory.")
	mFlag := flagSet.String("m", "", "Path to the model file or directory (shorthand).")
	flagSet.Var(&externals, "external", "Variable supplied by the caller, as component.variable[:dep.var,...]. Repeatable.")
	outputFlag := flagSet.String("output", defaults.OutputFormat, "Report format. Options: 'text', 'json' or 'yaml'.")
	logFormatFlag := flagSet.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	unitsCheckFlag := flagSet.Bool("units-check", defaults.UnitsCheck, "Check that the units of every equation are consistent.")
	strictnessFlag := flagSet.String("units-strictness", defaults.UnitsStrictness, "Level of units mismatch issues. Options: 'warning' or 'error'.")
	metricsFlag := flagSet.String("metrics-file", "", "Write Prometheus metrics in text format to this file.")
	flattenFlag := flagSet.String("flatten-to", "", "Write the loaded model as a single HCL file to this path.")
	configFlag := flagSet.String("config", "", "YAML file with default options.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	cfg := defaults
	if *configFlag != "" {
		var err error
		cfg, err = app.LoadConfigFile(*configFlag, defaults)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		slog.Debug("Config file loaded.", "path", *configFlag)
	}

	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "external":
			cfg.Externals = append(cfg.Externals, externals...)
		case "output":
			cfg.OutputFormat = *outputFlag
		case "log-format":
			cfg.LogFormat = *logFormatFlag
		case "log-level":
			cfg.LogLevel = *logLevelFlag
		case "units-check":
			cfg.UnitsCheck = *unitsCheckFlag
		case "units-strictness":
			cfg.UnitsStrictness = *strictnessFlag
		case "metrics-file":
			cfg.MetricsFile = *metricsFlag
		case "flatten-to":
			cfg.FlattenTo = *flattenFlag
		}
	})

	switch {
	case *modelFlag != "":
		cfg.ModelPath = *modelFlag
	case *mFlag != "":
		cfg.ModelPath = *mFlag
	case flagSet.NArg() > 0:
		cfg.ModelPath = flagSet.Arg(0)
	}
	slog.Debug("Model path determined.", "path", cfg.ModelPath)

	if cfg.ModelPath == "" {
		slog.Debug("No model path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
