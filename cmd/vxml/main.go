package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vxml/internal/config"
	"github.com/vango-dev/vxml/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cli holds state shared by all commands, resolved before any command runs.
type cli struct {
	configPath string
	color      string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	app := &cli{}

	rootCmd := &cobra.Command{
		Use:   "vxml",
		Short: "Render element trees to XML/HTML",
		Long: `vxml renders element trees to XML/HTML markup.

Trees are written as YAML or JSON documents:

  tag: asdf
  attrs: {f: asdf}
  children:
    - test
    - {tag: qwerty, attrs: {x: "123"}, children: [asdf]}

and render to:

  <asdf f="asdf">test<qwerty x="123">asdf</qwerty></asdf>`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&app.configPath, "config", "c", "", "Config file (default ./"+config.ConfigFileName+" if present)")
	flags.StringVar(&app.color, "color", "auto", "Colorize errors: auto, always or never")
	flags.StringVar(&app.logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides config)")

	rootCmd.AddCommand(
		renderCmd(app),
		serveCmd(app),
		versionCmd(),
	)
	return rootCmd
}

// setup applies the color mode, loads the config and builds the logger.
func (app *cli) setup(cmd *cobra.Command) error {
	if err := applyColor(app.color, cmd.ErrOrStderr()); err != nil {
		return err
	}

	var (
		cfg *config.Config
		err error
	)
	if app.configPath != "" {
		cfg, err = config.LoadFile(app.configPath)
	} else {
		cfg, err = config.LoadOptional(filepath.Join(".", config.ConfigFileName))
	}
	if err != nil {
		return err
	}

	if app.logLevel != "" {
		cfg.Log.Level = app.logLevel
		if err := cfg.Validate(); err != nil {
			return usageError("invalid --log-level %q", app.logLevel).Wrap(err)
		}
	}

	app.cfg = cfg
	app.logger = newLogger(cmd.ErrOrStderr(), cfg.Log)
	slog.SetDefault(app.logger)
	return nil
}

func newLogger(w io.Writer, lc config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: lc.SlogLevel()}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// applyColor enables or disables colored error output. In auto mode colors
// are used only when w is a terminal.
func applyColor(mode string, w io.Writer) error {
	switch mode {
	case "always":
		errors.EnableColors()
	case "never":
		errors.DisableColors()
	case "auto", "":
		if isTerminal(w) {
			errors.EnableColors()
		} else {
			errors.DisableColors()
		}
	default:
		return usageError("invalid --color %q", mode).
			WithSuggestion("Use one of: auto, always, never")
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func usageError(format string, args ...any) *errors.Error {
	return errors.New(errors.CodeUsage).WithDetailf(format, args...)
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errors.Fprint(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}
