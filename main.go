// Command githeat renders a Gitea user's contribution heatmap as SVG and HTML.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/spf13/cobra"
)

// rootOptions holds flag values before they are merged over env and file config.
type rootOptions struct {
	flags      Config
	envFile    string
	configPath string
}

func main() {
	// Recover from panics so the terminal is left usable
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", r)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprint(os.Stderr, renderFatal(err))
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{flags: DefaultConfig()}
	defaults := DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "githeat",
		Short: "Generate a contribution heatmap for a Gitea user",
		Long: `githeat fetches a Gitea user's daily contributions and renders them as an
SVG heatmap plus an HTML page with hover tooltips.

Contributions come from the first source that works: the user heatmap
endpoint, then the activity feed, then a scan of commits in the user's
repositories. The commit scan only reads the first 100 repositories and the
latest 100 commits of each, so very active accounts are under-counted.

Settings are read from flags, then the environment (GITTEA_URL, GITTEA_TOKEN,
GITTEA_USERNAME, OUTPUT_FILE, START_DATE, END_DATE, also loaded from .env),
then the config file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerateCmd(cmd, opts)
		},
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ConfigError{Parameter: "flags", Err: err}
	})

	f := rootCmd.Flags()
	f.StringVar(&opts.flags.URL, "url", "", "Gitea instance URL, e.g. https://git.example.com")
	f.StringVar(&opts.flags.Token, "token", "", "personal access token with read access")
	f.StringVar(&opts.flags.Username, "username", "", "user whose contributions to render")
	f.StringVar(&opts.flags.Output, "output", defaults.Output, "SVG output file; the HTML file is written next to it")
	f.StringVar(&opts.flags.StartDate, "start-date", "", "first day, YYYY-MM-DD (default: Jan 1 of this year)")
	f.StringVar(&opts.flags.EndDate, "end-date", "", "last day, YYYY-MM-DD (default: Dec 31 of this year)")
	f.StringVar(&opts.flags.Theme, "theme", defaults.Theme, "color theme (see 'githeat themes')")
	f.StringVar(&opts.flags.ThemeFile, "theme-file", "", "YAML terminal color scheme to build the palette from")
	f.StringVar(&opts.flags.Locale, "locale", defaults.Locale, "label language: "+strings.Join(LocaleCodes(), ", "))
	f.BoolVar(&opts.flags.Preview, "preview", false, "also print the heatmap in the terminal")
	f.BoolVar(&opts.flags.Avatar, "avatar", false, "print the user's avatar in the heatmap colors")
	f.DurationVar(&opts.flags.RepoTimeout, "repo-timeout", defaults.RepoTimeout, "timeout for each repository during a commit scan")
	f.DurationVar(&opts.flags.Timeout, "timeout", defaults.Timeout, "timeout for any single API request")
	f.DurationVar(&opts.flags.CacheTTL, "cache-ttl", 0, "cache API responses on disk for this long (0 disables)")
	f.BoolVar(&opts.flags.DebugHTTP, "debug-http", false, "dump API requests and responses to stderr")
	f.StringVar(&opts.flags.LogLevel, "log-level", defaults.LogLevel, "log level: debug, info, warn, error")
	f.StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load")
	f.StringVar(&opts.configPath, "config", DefaultConfigPath(), "TOML config file")

	rootCmd.AddCommand(newThemesCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runGenerateCmd(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(cmd, opts, os.Getenv)
	if err != nil {
		return err
	}

	now := time.Now()
	if err := cfg.Validate(now); err != nil {
		return err
	}

	return generate(cmd.Context(), cfg, now, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// loadConfig merges defaults, the config file, the environment (after
// loading the env file) and changed flags, in increasing precedence.
func loadConfig(cmd *cobra.Command, opts *rootOptions, getenv func(string) string) (Config, error) {
	if err := LoadEnvFile(opts.envFile); err != nil {
		return Config{}, err
	}

	fileCfg, err := LoadFileConfig(opts.configPath)
	if err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	if err := cfg.ApplyFile(fileCfg); err != nil {
		return Config{}, err
	}
	if err := cfg.ApplyEnv(getenv); err != nil {
		return Config{}, err
	}
	applyFlags(cmd, &cfg, &opts.flags)

	return cfg, nil
}

// applyFlags copies every explicitly set flag over cfg.
func applyFlags(cmd *cobra.Command, cfg *Config, flags *Config) {
	changed := cmd.Flags().Changed

	for name, p := range map[string][2]*string{
		"url":        {&cfg.URL, &flags.URL},
		"token":      {&cfg.Token, &flags.Token},
		"username":   {&cfg.Username, &flags.Username},
		"output":     {&cfg.Output, &flags.Output},
		"start-date": {&cfg.StartDate, &flags.StartDate},
		"end-date":   {&cfg.EndDate, &flags.EndDate},
		"theme":      {&cfg.Theme, &flags.Theme},
		"theme-file": {&cfg.ThemeFile, &flags.ThemeFile},
		"locale":     {&cfg.Locale, &flags.Locale},
		"log-level":  {&cfg.LogLevel, &flags.LogLevel},
	} {
		if changed(name) {
			*p[0] = *p[1]
		}
	}

	for name, p := range map[string][2]*time.Duration{
		"repo-timeout": {&cfg.RepoTimeout, &flags.RepoTimeout},
		"timeout":      {&cfg.Timeout, &flags.Timeout},
		"cache-ttl":    {&cfg.CacheTTL, &flags.CacheTTL},
	} {
		if changed(name) {
			*p[0] = *p[1]
		}
	}

	if changed("preview") {
		cfg.Preview = flags.Preview
	}
	if changed("avatar") {
		cfg.Avatar = flags.Avatar
	}
	if changed("debug-http") {
		cfg.DebugHTTP = flags.DebugHTTP
	}
}

// generate fetches contributions and writes the SVG and HTML files.
// cfg must already be validated.
func generate(ctx context.Context, cfg Config, now time.Time, out, errOut io.Writer) error {
	level, err := ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logCfg := DefaultLoggerConfig()
	logCfg.Level = level
	logCfg.Output = errOut
	logger := NewLogger(logCfg)

	start, end, err := cfg.DateRange(now)
	if err != nil {
		return err
	}
	loc, err := LookupLocale(cfg.Locale)
	if err != nil {
		return err
	}
	palette, err := resolvePalette(cfg)
	if err != nil {
		return err
	}

	clientOpts := ClientOptions{
		BaseURL:  cfg.URL,
		Token:    cfg.Token,
		Timeout:  cfg.Timeout,
		CacheTTL: cfg.CacheTTL,
	}
	if cfg.DebugHTTP {
		clientOpts.DebugLog = errOut
	}
	client, err := NewGiteaClient(clientOpts)
	if err != nil {
		return err
	}

	svgPath, htmlPath := OutputPaths(cfg.Output)
	if !strings.HasSuffix(svgPath, ".svg") {
		logger.Warn("output file does not end in .svg", "output", svgPath, "html", htmlPath)
	}

	fmt.Fprintln(errOut, titleStyle.Render("Gitea contribution heatmap"))
	fmt.Fprintf(errOut, "  %s %s\n", labelStyle.Render("Instance:"), client.BaseURL())
	fmt.Fprintf(errOut, "  %s %s\n", labelStyle.Render("User:    "), cfg.Username)
	fmt.Fprintf(errOut, "  %s %s to %s\n", labelStyle.Render("Range:   "), DateKey(start), DateKey(end))
	fmt.Fprintf(errOut, "  %s %s\n\n", labelStyle.Render("Output:  "), svgPath)

	showProgress := isTerminalWriter(errOut) && level <= slog.LevelInfo && !cfg.DebugHTTP

	var result *FetchResult
	err = runWithProgress(ctx, showProgress, level, logger, func(ctx context.Context, l *Logger) error {
		query := Query{Username: cfg.Username, Start: start, End: end}
		var fetchErr error
		result, fetchErr = FetchContributions(ctx, client, DefaultSources(client, cfg.RepoTimeout, l), query, l)
		return fetchErr
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(errOut, successLine("Found user %s (id %d)", result.User.Login, result.User.ID))
	fmt.Fprintln(errOut, successLine("Got %d days of data via %s", len(result.Counts), result.Source))

	doc := BuildDocument(cfg.Username, result.Counts, start, end, now, palette, loc)

	if err := WriteOutputs(doc, svgPath, htmlPath); err != nil {
		return err
	}
	fmt.Fprintln(errOut, successLine("SVG heatmap written to %s", svgPath))
	fmt.Fprintln(errOut, successLine("HTML heatmap written to %s", htmlPath))
	fmt.Fprintln(errOut)

	if cfg.Avatar {
		if img, err := client.FetchAvatar(ctx, result.User.AvatarURL); err != nil {
			logger.Warn("avatar unavailable", "error", err)
		} else {
			fmt.Fprint(out, RenderAvatar(img, palette))
		}
	}
	if cfg.Preview {
		width, _, err := term.FromEnv().Size()
		if err != nil {
			width = 0
		}
		fmt.Fprintln(out, NewGraph(doc).RenderResponsive(width))
	}
	fmt.Fprintln(out, renderSummary(doc, result.Source))

	return nil
}

// resolvePalette picks the theme file palette over the named theme.
func resolvePalette(cfg Config) (Palette, error) {
	if cfg.ThemeFile != "" {
		return LoadPaletteFile(cfg.ThemeFile)
	}
	return LookupPalette(cfg.Theme)
}

// isTerminalWriter reports whether w is a terminal.
func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(f)
}

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List available color themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, name := range ThemeNames() {
				if name == DefaultThemeName {
					fmt.Fprintf(out, "%s (default)\n", name)
					continue
				}
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}

func newConfigCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create the config file if missing and print its path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := writeConfigTemplate(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", DefaultConfigPath(), "config file location")
	return cmd
}

// writeConfigTemplate writes the commented default config unless path exists.
func writeConfigTemplate(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
