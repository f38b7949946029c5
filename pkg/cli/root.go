// Package cli implements the docindex command-line interface.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"docindex/internal/config"
	"docindex/internal/domain"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	return execute(os.Args[1:], os.Stdout, os.Stderr)
}

func execute(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.Execute(); err != nil {
		output, _ := rootCmd.PersistentFlags().GetString("output")
		if output == "json" {
			errObj := map[string]interface{}{"error": err.Error()}
			var variantErr *domain.UnrecognizedVariantError
			if errors.As(err, &variantErr) {
				errObj["code"] = "unrecognized_item"
			}
			_ = printJSON(stdout, errObj)
		} else {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// siteFlags are the persistent flags shared by every command. Set flags win
// over DOCINDEX_* variables, which win over the .env file.
type siteFlags struct {
	envFile  string
	sidebars string
	docs     string
	i18nDir  string
	locale   string
	siteURL  string
	logLevel string
	output   string
}

func (f *siteFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.envFile, "env-file", ".env", "Path to a .env file (optional)")
	fs.StringVar(&f.sidebars, "sidebars", "", "Sidebars file, YAML or JSON (env DOCINDEX_SIDEBARS)")
	fs.StringVar(&f.docs, "docs", "", "Doc metadata file (env DOCINDEX_DOCS)")
	fs.StringVar(&f.i18nDir, "i18n-dir", "", "Directory of <locale>/code.json catalogs (env DOCINDEX_I18N_DIR)")
	fs.StringVar(&f.locale, "locale", "", "Locale for translated descriptions (env DOCINDEX_LOCALE)")
	fs.StringVar(&f.siteURL, "site-url", "", "Absolute site URL; same-host links are internal (env DOCINDEX_SITE_URL)")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error (env DOCINDEX_LOG_LEVEL)")
	fs.StringVarP(&f.output, "output", "o", "auto", "Output format (auto, text, json)")
}

// load resolves the configuration for a command invocation.
func (f *siteFlags) load(fs *pflag.FlagSet) (*config.Config, error) {
	if err := config.LoadDotEnv(f.envFile); err != nil {
		return nil, err
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, err
	}
	override := func(name string, dst *string, value string) {
		if fs.Changed(name) {
			*dst = value
		}
	}
	override("sidebars", &cfg.SidebarsPath, f.sidebars)
	override("docs", &cfg.DocsPath, f.docs)
	override("i18n-dir", &cfg.I18nDir, f.i18nDir)
	override("locale", &cfg.Locale, f.locale)
	override("site-url", &cfg.SiteURL, f.siteURL)
	override("log-level", &cfg.LogLevel, f.logLevel)
	return cfg, nil
}

// env is what PersistentPreRunE hands to subcommands.
type env struct {
	flags  siteFlags
	cfg    *config.Config
	logger *slog.Logger
}

func (e *env) outputFormat(w io.Writer) string {
	switch e.flags.output {
	case "text", "json":
		return e.flags.output
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "text"
	}
	return "json"
}

func newRootCmd() *cobra.Command {
	e := &env{}

	rootCmd := &cobra.Command{
		Use:           "docindex",
		Short:         "Render doc cards and generated category index pages",
		Long:          "docindex turns a documentation sidebar into navigational doc cards and generated category index pages.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch e.flags.output {
			case "auto", "text", "json":
			default:
				return fmt.Errorf("unsupported output format %q: use 'auto', 'text' or 'json'", e.flags.output)
			}

			cfg, err := e.flags.load(cmd.Flags())
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.SlogLevel()}))
			if cfg.IsProduction() {
				e.logger = cfg.NewLogger()
			}
			for _, w := range cfg.Warnings {
				e.logger.Debug("config warning", "warning", w)
			}
			return nil
		},
	}

	e.flags.register(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newRenderCmd(e))
	rootCmd.AddCommand(newServeCmd(e))
	rootCmd.AddCommand(newCardCmd(e))
	rootCmd.AddCommand(newValidateCmd(e))
	rootCmd.AddCommand(newVersionCmd(e))

	return rootCmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
