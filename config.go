package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config is the resolved runtime configuration.
type Config struct {
	URL      string
	Token    string
	Username string

	Output    string
	StartDate string
	EndDate   string

	Theme     string
	ThemeFile string
	Locale    string
	Preview   bool
	Avatar    bool

	RepoTimeout time.Duration
	Timeout     time.Duration
	CacheTTL    time.Duration
	DebugHTTP   bool
	LogLevel    string
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Output:      DefaultOutputFile,
		Theme:       DefaultThemeName,
		Locale:      DefaultLocale,
		RepoTimeout: DefaultRepoTimeout,
		Timeout:     defaultRequestTimeout,
		LogLevel:    "info",
	}
}

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Gitea  GiteaFileConfig  `toml:"gitea"`
	Render RenderFileConfig `toml:"render"`
}

// GiteaFileConfig maps connection settings. Durations use Go syntax ("10s").
type GiteaFileConfig struct {
	URL         *string `toml:"url"`
	Token       *string `toml:"token"`
	Username    *string `toml:"username"`
	RepoTimeout *string `toml:"repo-timeout"`
	Timeout     *string `toml:"timeout"`
	CacheTTL    *string `toml:"cache-ttl"`
}

// RenderFileConfig maps output settings.
type RenderFileConfig struct {
	Output    *string `toml:"output"`
	Theme     *string `toml:"theme"`
	ThemeFile *string `toml:"theme-file"`
	Locale    *string `toml:"locale"`
	Preview   *bool   `toml:"preview"`
	Avatar    *bool   `toml:"avatar"`
}

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "githeat", "config.toml")
}

// LoadFileConfig reads a TOML config from the given path. Missing file is not an error.
func LoadFileConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, &ConfigError{Parameter: "config", Value: path, Err: err}
	}
	return cfg, nil
}

// LoadEnvFile loads KEY=VALUE pairs from path into the environment.
// Variables that are already set win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return &ConfigError{Parameter: "env-file", Value: path, Err: err}
	}
	return nil
}

// ApplyFile overlays every value set in the config file.
func (c *Config) ApplyFile(f FileConfig) error {
	var problems []error

	setString(&c.URL, f.Gitea.URL)
	setString(&c.Token, f.Gitea.Token)
	setString(&c.Username, f.Gitea.Username)
	setString(&c.Output, f.Render.Output)
	setString(&c.Theme, f.Render.Theme)
	setString(&c.ThemeFile, f.Render.ThemeFile)
	setString(&c.Locale, f.Render.Locale)
	if f.Render.Preview != nil {
		c.Preview = *f.Render.Preview
	}
	if f.Render.Avatar != nil {
		c.Avatar = *f.Render.Avatar
	}

	for _, d := range []struct {
		name   string
		value  *string
		target *time.Duration
	}{
		{"gitea.repo-timeout", f.Gitea.RepoTimeout, &c.RepoTimeout},
		{"gitea.timeout", f.Gitea.Timeout, &c.Timeout},
		{"gitea.cache-ttl", f.Gitea.CacheTTL, &c.CacheTTL},
	} {
		if d.value == nil {
			continue
		}
		parsed, err := time.ParseDuration(*d.value)
		if err != nil {
			problems = append(problems, &ConfigError{Parameter: d.name, Value: *d.value, Err: err})
			continue
		}
		*d.target = parsed
	}

	return joinProblems(problems)
}

// ApplyEnv overlays values from environment variables. getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	var problems []error

	for _, v := range []struct {
		key    string
		target *string
	}{
		{"GITTEA_URL", &c.URL},
		{"GITTEA_TOKEN", &c.Token},
		{"GITTEA_USERNAME", &c.Username},
		{"OUTPUT_FILE", &c.Output},
		{"START_DATE", &c.StartDate},
		{"END_DATE", &c.EndDate},
		{"GITHEAT_THEME", &c.Theme},
		{"GITHEAT_THEME_FILE", &c.ThemeFile},
		{"GITHEAT_LOCALE", &c.Locale},
		{"GITHEAT_LOG_LEVEL", &c.LogLevel},
	} {
		if value := getenv(v.key); value != "" {
			*v.target = value
		}
	}

	for _, d := range []struct {
		key    string
		target *time.Duration
	}{
		{"GITHEAT_REPO_TIMEOUT", &c.RepoTimeout},
		{"GITHEAT_TIMEOUT", &c.Timeout},
		{"GITHEAT_CACHE_TTL", &c.CacheTTL},
	} {
		value := getenv(d.key)
		if value == "" {
			continue
		}
		parsed, err := time.ParseDuration(value)
		if err != nil {
			problems = append(problems, &ConfigError{Parameter: d.key, Value: value, Err: err})
			continue
		}
		*d.target = parsed
	}

	return joinProblems(problems)
}

// Validate checks the configuration and reports every problem at once.
// The returned error matches ErrConfiguration.
func (c *Config) Validate(now time.Time) error {
	var problems []error

	c.URL = strings.TrimRight(strings.TrimSpace(c.URL), "/")
	if c.URL == "" {
		problems = append(problems, &ConfigError{Parameter: "url", Err: errors.New("required (--url or GITTEA_URL)")})
	} else if u, err := url.Parse(c.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		problems = append(problems, &ConfigError{Parameter: "url", Value: c.URL, Err: errors.New("must be an http(s) URL such as https://git.example.com")})
	}

	if strings.TrimSpace(c.Token) == "" {
		problems = append(problems, &ConfigError{Parameter: "token", Err: errors.New("required (--token or GITTEA_TOKEN)")})
	}
	if strings.TrimSpace(c.Username) == "" {
		problems = append(problems, &ConfigError{Parameter: "username", Err: errors.New("required (--username or GITTEA_USERNAME)")})
	}

	if _, _, err := c.DateRange(now); err != nil {
		problems = append(problems, err)
	}

	if _, err := LookupLocale(c.Locale); err != nil {
		problems = append(problems, err)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		problems = append(problems, err)
	}

	if c.RepoTimeout <= 0 {
		problems = append(problems, &ConfigError{Parameter: "repo-timeout", Value: c.RepoTimeout, Err: errors.New("must be > 0")})
	}
	if c.Timeout <= 0 {
		problems = append(problems, &ConfigError{Parameter: "timeout", Value: c.Timeout, Err: errors.New("must be > 0")})
	}
	if c.CacheTTL < 0 {
		problems = append(problems, &ConfigError{Parameter: "cache-ttl", Value: c.CacheTTL, Err: errors.New("must be >= 0")})
	}

	return joinProblems(problems)
}

// DateRange resolves the configured start and end dates, defaulting to
// the calendar year of now.
func (c *Config) DateRange(now time.Time) (time.Time, time.Time, error) {
	start, end := DefaultRange(now)

	if c.StartDate != "" {
		parsed, err := ParseDate(c.StartDate)
		if err != nil {
			return time.Time{}, time.Time{}, &ConfigError{Parameter: "start-date", Value: c.StartDate, Err: errors.New("want YYYY-MM-DD")}
		}
		start = parsed
	}
	if c.EndDate != "" {
		parsed, err := ParseDate(c.EndDate)
		if err != nil {
			return time.Time{}, time.Time{}, &ConfigError{Parameter: "end-date", Value: c.EndDate, Err: errors.New("want YYYY-MM-DD")}
		}
		end = parsed
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, &ConfigError{
			Parameter: "end-date",
			Value:     DateKey(end),
			Err:       fmt.Errorf("must not be before start date %s", DateKey(start)),
		}
	}
	return start, end, nil
}

// ValidationError lists every configuration problem found.
type ValidationError struct {
	Problems []error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	lines := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		lines[i] = p.Error()
	}
	return "configuration validation failed:\n- " + strings.Join(lines, "\n- ")
}

// Unwrap exposes ErrConfiguration and each individual problem.
func (e *ValidationError) Unwrap() []error {
	return append([]error{ErrConfiguration}, e.Problems...)
}

func joinProblems(problems []error) error {
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

func setString(target *string, value *string) {
	if value != nil {
		*target = *value
	}
}

// defaultConfigTemplate is written by the config subcommand.
func defaultConfigTemplate() string {
	return fmt.Sprintf(`# githeat configuration
# Uncomment a value to enable it. Environment variables and CLI flags
# override config values.

[gitea]
# url = "https://git.example.com"
# token = ""
# username = ""
# repo-timeout = "%s"
# timeout = "%s"
# cache-ttl = "0s"

[render]
# output = "%s"
# theme = "%s"
# theme-file = ""
# locale = "%s"
# preview = false
# avatar = false
`, DefaultRepoTimeout, defaultRequestTimeout, DefaultOutputFile, DefaultThemeName, DefaultLocale)
}
