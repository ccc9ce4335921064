package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.URL = "https://git.example.com/"
	cfg.Token = "secret"
	cfg.Username = "alice"
	return cfg
}

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Output != "contribution-heatmap.svg" {
		t.Errorf("Output = %q, want contribution-heatmap.svg", cfg.Output)
	}
	if cfg.RepoTimeout != 10*time.Second {
		t.Errorf("RepoTimeout = %v, want 10s", cfg.RepoTimeout)
	}
	if cfg.Theme != DefaultThemeName || cfg.Locale != DefaultLocale {
		t.Errorf("Theme, Locale = %q, %q", cfg.Theme, cfg.Locale)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(envMap(map[string]string{
		"GITTEA_URL":           "https://git.example.com",
		"GITTEA_TOKEN":         "secret",
		"GITTEA_USERNAME":      "alice",
		"OUTPUT_FILE":          "out/heat.svg",
		"START_DATE":           "2024-02-01",
		"END_DATE":             "2024-03-01",
		"GITHEAT_LOCALE":       "zh",
		"GITHEAT_REPO_TIMEOUT": "3s",
		"GITHEAT_TIMEOUT":      "45s",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	if cfg.URL != "https://git.example.com" || cfg.Token != "secret" || cfg.Username != "alice" {
		t.Errorf("connection settings = %q %q %q", cfg.URL, cfg.Token, cfg.Username)
	}
	if cfg.Output != "out/heat.svg" || cfg.StartDate != "2024-02-01" || cfg.EndDate != "2024-03-01" {
		t.Errorf("output settings = %q %q %q", cfg.Output, cfg.StartDate, cfg.EndDate)
	}
	if cfg.Locale != "zh" || cfg.RepoTimeout != 3*time.Second || cfg.Timeout != 45*time.Second {
		t.Errorf("Locale, RepoTimeout, Timeout = %q, %v, %v", cfg.Locale, cfg.RepoTimeout, cfg.Timeout)
	}
	// Unset variables keep their defaults.
	if cfg.Theme != DefaultThemeName {
		t.Errorf("Theme = %q, want default", cfg.Theme)
	}
}

func TestApplyEnvBadDuration(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(envMap(map[string]string{"GITHEAT_CACHE_TTL": "soon", "GITHEAT_TIMEOUT": "later"}))

	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("ApplyEnv() error = %v, want ErrConfiguration", err)
	}
	for _, key := range []string{"GITHEAT_CACHE_TTL", "GITHEAT_TIMEOUT"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("ApplyEnv() error = %q, want it to name %s", err, key)
		}
	}
	if cfg.Timeout != defaultRequestTimeout {
		t.Errorf("Timeout = %v, want the default after a bad value", cfg.Timeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr []string
	}{
		{
			name:   "valid",
			modify: func(*Config) {},
		},
		{
			name:    "missing everything",
			modify:  func(c *Config) { c.URL, c.Token, c.Username = "", "", "" },
			wantErr: []string{"url: required", "token: required", "username: required"},
		},
		{
			name:    "not http",
			modify:  func(c *Config) { c.URL = "ftp://git.example.com" },
			wantErr: []string{"must be an http(s) URL"},
		},
		{
			name:    "no scheme",
			modify:  func(c *Config) { c.URL = "git.example.com" },
			wantErr: []string{"must be an http(s) URL"},
		},
		{
			name:    "bad date",
			modify:  func(c *Config) { c.StartDate = "2024/01/01" },
			wantErr: []string{"start-date"},
		},
		{
			name:    "end before start",
			modify:  func(c *Config) { c.StartDate, c.EndDate = "2024-05-01", "2024-04-30" },
			wantErr: []string{"must not be before start date 2024-05-01"},
		},
		{
			name:    "unknown locale",
			modify:  func(c *Config) { c.Locale = "fr" },
			wantErr: []string{"locale = fr"},
		},
		{
			name:    "bad timeouts",
			modify:  func(c *Config) { c.RepoTimeout, c.Timeout, c.CacheTTL = 0, -time.Second, -time.Second },
			wantErr: []string{"repo-timeout", "timeout", "cache-ttl"},
		},
		{
			name:    "bad log level",
			modify:  func(c *Config) { c.LogLevel = "loud" },
			wantErr: []string{"log-level"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)

			err := cfg.Validate(testNow)

			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("Validate() error = %v, want ErrConfiguration", err)
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("Validate() error = %q, want it to contain %q", err, want)
				}
			}
		})
	}
}

func TestValidateTrimsURL(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(testNow); err != nil {
		t.Fatal(err)
	}
	if cfg.URL != "https://git.example.com" {
		t.Errorf("URL = %q, want trailing slash removed", cfg.URL)
	}
}

func TestDateRange(t *testing.T) {
	tests := []struct {
		start, end         string
		wantStart, wantEnd string
	}{
		{"", "", "2024-01-01", "2024-12-31"},
		{"2024-03-01", "", "2024-03-01", "2024-12-31"},
		{"", "2024-03-01", "2024-01-01", "2024-03-01"},
		{"2023-06-01", "2024-05-31", "2023-06-01", "2024-05-31"},
		{"2024-02-02", "2024-02-02", "2024-02-02", "2024-02-02"},
	}

	for _, tt := range tests {
		cfg := Config{StartDate: tt.start, EndDate: tt.end}
		start, end, err := cfg.DateRange(testNow)
		if err != nil {
			t.Errorf("DateRange(%q, %q) error = %v", tt.start, tt.end, err)
			continue
		}
		if DateKey(start) != tt.wantStart || DateKey(end) != tt.wantEnd {
			t.Errorf("DateRange(%q, %q) = %s..%s, want %s..%s",
				tt.start, tt.end, DateKey(start), DateKey(end), tt.wantStart, tt.wantEnd)
		}
	}
}

func TestLoadFileConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
[gitea]
url = "https://git.example.com"
username = "bob"
repo-timeout = "5s"

[render]
theme = "Dracula"
preview = true
`)

	fileCfg, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}

	cfg := DefaultConfig()
	if err := cfg.ApplyFile(fileCfg); err != nil {
		t.Fatalf("ApplyFile() error = %v", err)
	}

	if cfg.URL != "https://git.example.com" || cfg.Username != "bob" {
		t.Errorf("URL, Username = %q, %q", cfg.URL, cfg.Username)
	}
	if cfg.RepoTimeout != 5*time.Second {
		t.Errorf("RepoTimeout = %v, want 5s", cfg.RepoTimeout)
	}
	if cfg.Theme != "Dracula" || !cfg.Preview {
		t.Errorf("Theme, Preview = %q, %v", cfg.Theme, cfg.Preview)
	}
	if cfg.Output != DefaultOutputFile {
		t.Errorf("Output = %q, want default kept", cfg.Output)
	}
}

func TestLoadFileConfigMissing(t *testing.T) {
	fileCfg, err := LoadFileConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFileConfig(missing) error = %v", err)
	}
	if fileCfg.Gitea.URL != nil {
		t.Error("LoadFileConfig(missing) returned values")
	}
}

func TestLoadFileConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[gitea\nurl = ")

	_, err := LoadFileConfig(path)
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("LoadFileConfig(invalid) error = %v, want ErrConfiguration", err)
	}
}

func TestApplyFileBadDuration(t *testing.T) {
	bad := "forever"
	cfg := DefaultConfig()
	err := cfg.ApplyFile(FileConfig{Gitea: GiteaFileConfig{Timeout: &bad}})

	if !errors.Is(err, ErrConfiguration) || !strings.Contains(err.Error(), "gitea.timeout") {
		t.Errorf("ApplyFile() error = %v, want gitea.timeout problem", err)
	}
}

func TestLoadEnvFile(t *testing.T) {
	t.Setenv("GITTEA_TOKEN", "from-env")
	t.Setenv("GITTEA_USERNAME", "")

	path := filepath.Join(t.TempDir(), ".env")
	writeFile(t, path, "GITTEA_USERNAME=carol\nGITTEA_TOKEN=from-file\n")

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile() error = %v", err)
	}

	// Both keys go through t.Setenv so nothing leaks into other tests.
	// Variables already present, even empty ones, are not overridden.
	if got := os.Getenv("GITTEA_TOKEN"); got != "from-env" {
		t.Errorf("GITTEA_TOKEN = %q, want from-env", got)
	}
}

func TestLoadEnvFileMissing(t *testing.T) {
	if err := LoadEnvFile(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("LoadEnvFile(missing) error = %v", err)
	}
	if err := LoadEnvFile(""); err != nil {
		t.Errorf("LoadEnvFile(\"\") error = %v", err)
	}
}

func TestWriteConfigTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "githeat", "config.toml")

	if err := writeConfigTemplate(path); err != nil {
		t.Fatalf("writeConfigTemplate() error = %v", err)
	}
	fileCfg, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("template does not parse: %v", err)
	}
	if fileCfg.Gitea.URL != nil || fileCfg.Render.Theme != nil {
		t.Error("template sets values; every entry should be commented out")
	}

	writeFile(t, path, "# mine\n")
	if err := writeConfigTemplate(path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "# mine\n" {
		t.Error("writeConfigTemplate() overwrote an existing file")
	}
}
