package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"

	"github.com/vk/delaygen/internal/app"
	"github.com/vk/delaygen/internal/emitter"
	"github.com/vk/delaygen/internal/probe"
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

var (
	legalLogFormats = []string{"text", "json"}
	legalLogLevels  = []string{"debug", "info", "warn", "error"}
)

// Options holds the raw flag values of the command.
type Options struct {
	ModelName    string
	Package      string
	TemplatePath string
	OutputPath   string
	Require      []string
	Probe        string
	ProbeWorkers int
	LogFormat    string
	LogLevel     string
}

// envDefaults are flag defaults taken from the environment.
type envDefaults struct {
	Package      string `envconfig:"DELAYGEN_PACKAGE"`
	ProbeWorkers int    `envconfig:"DELAYGEN_PROBE_WORKERS" default:"0"`
	LogFormat    string `envconfig:"DELAYGEN_LOG_FORMAT" default:"text"`
	LogLevel     string `envconfig:"DELAYGEN_LOG_LEVEL" default:"info"`
}

// DefaultOptions returns the flag defaults, overridden by DELAYGEN_*
// environment variables.
func DefaultOptions() (*Options, error) {
	env := envDefaults{Package: emitter.DefaultPackage}
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}
	return &Options{
		Package:      env.Package,
		ProbeWorkers: env.ProbeWorkers,
		LogFormat:    env.LogFormat,
		LogLevel:     env.LogLevel,
	}, nil
}

func (o *Options) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.ModelName, "model-name", "m", o.ModelName, "Name of the delay model; also seeds the generated symbol names. Required.")
	fs.StringVar(&o.Package, "package", o.Package, "Go package name of the generated file.")
	fs.StringVar(&o.TemplatePath, "template", o.TemplatePath, "Path to a template replacing the built-in Go template.")
	fs.StringVarP(&o.OutputPath, "output", "o", o.OutputPath, "Write the artifact to this file instead of stdout.")
	fs.StringSliceVar(&o.Require, "require", o.Require, "Comma-separated operations the delay model must cover.")
	fs.StringVar(&o.Probe, "probe", o.Probe, "Width vectors to evaluate every operation at, e.g. '8,8,8;32,32,32'. Results are logged.")
	fs.IntVar(&o.ProbeWorkers, "probe-workers", o.ProbeWorkers, "Number of concurrent probe workers. 0 uses GOMAXPROCS.")
	fs.StringVar(&o.LogFormat, "log-format", o.LogFormat, fmt.Sprintf("Log output format. One of: (%s).", strings.Join(legalLogFormats, ", ")))
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, fmt.Sprintf("Logging level. One of: (%s).", strings.Join(legalLogLevels, ", ")))
}

func (o *Options) Validate() error {
	o.LogFormat = strings.ToLower(o.LogFormat)
	if !funk.Contains(legalLogFormats, o.LogFormat) {
		return fmt.Errorf("invalid log-format: must be one of %s", strings.Join(legalLogFormats, ", "))
	}
	o.LogLevel = strings.ToLower(o.LogLevel)
	if !funk.Contains(legalLogLevels, o.LogLevel) {
		return fmt.Errorf("invalid log-level: must be one of %s", strings.Join(legalLogLevels, ", "))
	}
	if funk.ContainsString(o.Require, "") {
		return fmt.Errorf("invalid require: empty operation name")
	}
	return nil
}

// Config builds the application configuration from the options and the
// specification path.
func (o *Options) Config(specPath string) (*app.Config, error) {
	widths, err := probe.ParseWidths(o.Probe)
	if err != nil {
		return nil, fmt.Errorf("invalid probe: %w", err)
	}
	return app.NewConfig(app.Config{
		SpecPath:     specPath,
		ModelName:    o.ModelName,
		Package:      o.Package,
		TemplatePath: o.TemplatePath,
		OutputPath:   o.OutputPath,
		Required:     funk.UniqString(o.Require),
		ProbeWidths:  widths,
		ProbeWorkers: o.ProbeWorkers,
		LogFormat:    o.LogFormat,
		LogLevel:     o.LogLevel,
	})
}

// specPathArg accepts exactly one positional argument.
func specPathArg(_ *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		return fmt.Errorf("missing specification path")
	case len(args) > 1:
		return fmt.Errorf("too many command-line arguments")
	}
	return nil
}

// NewCommand returns the root command with o bound to its flags. On
// success the parsed configuration is stored in *out.
func NewCommand(o *Options, out **app.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delaygen --model-name NAME [flags] SPEC_PATH",
		Short: "Compile a delay model specification into Go source.",
		Long: `delaygen validates a delay model specification (.hcl, .yaml, .yml or .json)
and writes Go source that registers the model under its name.

Arguments:
  SPEC_PATH
    Path to the specification file.`,
		Args: specPathArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Validate(); err != nil {
				return err
			}
			cfg, err := o.Config(args[0])
			if err != nil {
				return err
			}
			*out = cfg
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	o.Bind(cmd.Flags())
	_ = cmd.MarkFlagRequired("model-name")
	return cmd
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, outW, errW io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	o, err := DefaultOptions()
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("Error: %v", err)}
	}

	var cfg *app.Config
	cmd := NewCommand(o, &cfg)
	cmd.SetArgs(args)
	cmd.SetOut(outW)
	cmd.SetErr(errW)

	if err := cmd.Execute(); err != nil {
		return nil, false, &ExitError{
			Code:    2,
			Message: fmt.Sprintf("Error: %v\nRun '%s --help' for usage.", err, cmd.Name()),
		}
	}
	if cfg == nil {
		// Help was requested and printed.
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "spec", cfg.SpecPath, "model", cfg.ModelName)
	return cfg, false, nil
}
