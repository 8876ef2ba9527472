package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"wunderground/wu"
)

// testSecretProvider is a configurable mock for testing SSM resolution.
type testSecretProvider struct {
	values     map[string]string
	err        error
	calledWith []string
	callCount  int
}

func (p *testSecretProvider) GetParametersBatch(_ context.Context, keys []string) (map[string]string, error) {
	p.callCount++
	p.calledWith = append(p.calledWith, keys...)
	if p.err != nil {
		return nil, p.err
	}
	result := make(map[string]string)
	for _, k := range keys {
		if v, ok := p.values[k]; ok {
			result[k] = v
		}
	}
	return result, nil
}

var configEnvVars = []string{
	"APP_ENV", "LOG_LEVEL", "LOG_FORMAT",
	"WU_API_KEY", "WU_API_KEY_SSM_PARAM", "WU_LANG", "WU_PWS", "WU_BESTFCT",
	"WU_ICON_SET", "WU_FORMAT", "WU_RAISE_ERRORS", "WU_RAISE_API_ERROR",
	"WU_API_URL", "WU_AUTOCOMPLETE_URL", "WU_ICON_URL",
	"HTTP_TIMEOUT", "HTTP_BREAKER_THRESHOLD", "HTTP_USER_AGENT",
	"AWS_REGION", "ENABLE_METRICS", "METRIC_NAMESPACE",
}

// clearConfigEnv unsets every variable the loader reads, restoring them
// when the test ends.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, k := range configEnvVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig(nil)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Environment != "local" {
		t.Errorf("Environment = %q, want %q", cfg.Environment, "local")
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("LogLevel/LogFormat = %q/%q, want info/text", cfg.LogLevel, cfg.LogFormat)
	}
	s := cfg.Service
	if !s.APIKey.IsBlank() {
		t.Errorf("APIKey should default to blank")
	}
	if s.Lang != "en" || s.IconSet != "k" || s.Format != "json" {
		t.Errorf("Lang/IconSet/Format = %q/%q/%q", s.Lang, s.IconSet, s.Format)
	}
	if s.PWS != "1" || s.BestFct != "1" || s.RaiseErrors || !s.RaiseAPIError {
		t.Errorf("unexpected flag defaults: %+v", s)
	}
	if s.APIURL != "http://api.wunderground.com/api" {
		t.Errorf("APIURL = %q", s.APIURL)
	}
	if cfg.HTTP.Timeout != 30*time.Second {
		t.Errorf("HTTP.Timeout = %v, want 30s", cfg.HTTP.Timeout)
	}
	if cfg.HTTP.BreakerThreshold != 5 {
		t.Errorf("HTTP.BreakerThreshold = %d, want 5", cfg.HTTP.BreakerThreshold)
	}
	if cfg.AWS.Region != "us-east-1" {
		t.Errorf("AWS.Region = %q", cfg.AWS.Region)
	}
	if cfg.Observability.EnableMetrics {
		t.Error("metrics should be off by default")
	}
	if cfg.Build.Version != "dev" {
		t.Errorf("Build.Version = %q, want %q", cfg.Build.Version, "dev")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("WU_API_KEY", "abc123")
	t.Setenv("WU_LANG", "fr")
	t.Setenv("WU_PWS", "false")
	t.Setenv("WU_RAISE_ERRORS", "true")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := LoadConfig(nil)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Service.APIKey.Unmask() != "abc123" {
		t.Errorf("APIKey.Unmask() = %q", cfg.Service.APIKey.Unmask())
	}
	if cfg.Service.APIKey.String() != "***REDACTED***" {
		t.Errorf("APIKey.String() should be redacted, got %q", cfg.Service.APIKey.String())
	}
	if cfg.Service.Lang != "fr" || cfg.Service.PWS != "false" || !cfg.Service.RaiseErrors {
		t.Errorf("overrides not applied: %+v", cfg.Service)
	}
	if cfg.HTTP.Timeout != 5*time.Second {
		t.Errorf("HTTP.Timeout = %v, want 5s", cfg.HTTP.Timeout)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q", cfg.LogFormat)
	}
}

func TestLoadConfigFlagWords(t *testing.T) {
	clearConfigEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("WU_PWS", "yes")
	t.Setenv("WU_BESTFCT", "off")

	cfg, err := LoadConfig(nil)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	opts := wu.Resolve(cfg.ClientOptions(), nil)
	if got := opts.String(wu.KeyPWS); got != "1" {
		t.Errorf("pws = %q, want %q", got, "1")
	}
	if got := opts.String(wu.KeyBestFct); got != "0" {
		t.Errorf("bestFct = %q, want %q", got, "0")
	}
}

func TestLoadConfigValidationFailure(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"xml format", "WU_FORMAT", "xml"},
		{"bad api url", "WU_API_URL", "not a url"},
		{"bad environment", "APP_ENV", "qa"},
		{"bad log level", "LOG_LEVEL", "loud"},
		{"zero breaker threshold", "HTTP_BREAKER_THRESHOLD", "0"},
		{"non-alphanumeric icon set", "WU_ICON_SET", "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			t.Chdir(t.TempDir())
			if tt.key != "APP_ENV" {
				t.Setenv("APP_ENV", "local")
			}
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig(nil)

			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigError, got %v", err)
			}
			if cfgErr.Type != ErrValidation {
				t.Errorf("Type = %q, want %q", cfgErr.Type, ErrValidation)
			}
		})
	}
}

func TestLoadConfigParsingFailure(t *testing.T) {
	clearConfigEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_TIMEOUT", "soon")

	_, err := LoadConfig(nil)

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Type != ErrParsing {
		t.Fatalf("expected parsing ConfigError, got %v", err)
	}
}

func TestLoadConfigDotenvFile(t *testing.T) {
	clearConfigEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("WU_API_KEY=fromdotenv\nWU_LANG=de\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WU_LANG", "es")
	// dotenv writes into the process environment; restore afterwards.
	t.Cleanup(func() { os.Unsetenv("WU_API_KEY") })

	cfg, err := LoadConfig(nil)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Service.APIKey.Unmask() != "fromdotenv" {
		t.Errorf("APIKey = %q, want value from .env", cfg.Service.APIKey.Unmask())
	}
	if cfg.Service.Lang != "es" {
		t.Errorf("Lang = %q, environment should win over .env", cfg.Service.Lang)
	}
}

func TestLoadConfigNamedDotenvMissing(t *testing.T) {
	clearConfigEnv(t)
	t.Chdir(t.TempDir())

	_, err := LoadConfig(nil, "does-not-exist.env")

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Type != ErrDotenv {
		t.Fatalf("expected dotenv ConfigError, got %v", err)
	}
}

func TestLoadConfigSSMResolution(t *testing.T) {
	clearConfigEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "prod")
	t.Setenv("WU_API_KEY_SSM_PARAM", "/prod/wunderground/api_key")
	t.Cleanup(func() { os.Unsetenv("WU_API_KEY") })

	provider := &testSecretProvider{values: map[string]string{
		"/prod/wunderground/api_key": "from-ssm",
	}}

	cfg, err := LoadConfig(provider)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Service.APIKey.Unmask() != "from-ssm" {
		t.Errorf("APIKey = %q, want SSM value", cfg.Service.APIKey.Unmask())
	}
	if provider.callCount != 1 {
		t.Errorf("provider called %d times, want 1", provider.callCount)
	}
}

func TestLoadConfigSSMSkippedForLocal(t *testing.T) {
	clearConfigEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "local")
	t.Setenv("WU_API_KEY_SSM_PARAM", "/dev/wunderground/api_key")

	provider := &testSecretProvider{}
	if _, err := LoadConfig(provider); err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if provider.callCount != 0 {
		t.Errorf("provider should not be called for local, got %d calls", provider.callCount)
	}
}

func TestLoadConfigSSMNilProviderNonLocal(t *testing.T) {
	clearConfigEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "staging")
	t.Setenv("WU_API_KEY_SSM_PARAM", "/staging/wunderground/api_key")

	_, err := LoadConfig(nil)

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Type != ErrSSMResolution {
		t.Fatalf("expected SSM ConfigError, got %v", err)
	}
	if !strings.Contains(cfgErr.Message, "WU_API_KEY") {
		t.Errorf("message should name the target variable: %q", cfgErr.Message)
	}
}

func TestLoadConfigSSMProviderError(t *testing.T) {
	clearConfigEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "dev")
	t.Setenv("WU_API_KEY_SSM_PARAM", "/dev/wunderground/api_key")

	boom := errors.New("throttled")
	_, err := LoadConfig(&testSecretProvider{err: boom})

	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped provider error, got %v", err)
	}
}

func TestResolveSSMParams(t *testing.T) {
	env := map[string]string{
		"WU_API_KEY_SSM_PARAM":    "/p/key",
		"OTHER_SSM_PARAM":         "/p/other",
		"ALREADY_SET":             "direct",
		"ALREADY_SET_SSM_PARAM":   "/p/already",
		"EMPTY_PATH_SSM_PARAM":    "",
		"UNRELATED_VARIABLE_NAME": "x",
	}
	deps := loaderDeps{
		lookupEnv: func(k string) (string, bool) {
			v, ok := env[k]
			return v, ok
		},
		setEnv: func(k, v string) error {
			env[k] = v
			return nil
		},
		environ: func() []string {
			out := make([]string, 0, len(env))
			for k, v := range env {
				out = append(out, k+"="+v)
			}
			return out
		},
	}
	provider := &testSecretProvider{values: map[string]string{
		"/p/key":   "k",
		"/p/other": "o",
	}}

	if err := resolveSSMParams(provider, deps); err != nil {
		t.Fatalf("resolveSSMParams returned error: %v", err)
	}

	if env["WU_API_KEY"] != "k" || env["OTHER"] != "o" {
		t.Errorf("resolved values not injected: %v", env)
	}
	if env["ALREADY_SET"] != "direct" {
		t.Errorf("direct env var should win, got %q", env["ALREADY_SET"])
	}
	if strings.Join(provider.calledWith, ",") != "/p/key,/p/other" {
		t.Errorf("provider called with %v", provider.calledWith)
	}
}

func TestResolveSSMParamsMissing(t *testing.T) {
	deps := loaderDeps{
		lookupEnv: func(string) (string, bool) { return "", false },
		setEnv:    func(string, string) error { return nil },
		environ:   func() []string { return []string{"WU_API_KEY_SSM_PARAM=/p/key"} },
	}

	err := resolveSSMParams(&testSecretProvider{}, deps)

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) || !strings.Contains(cfgErr.Message, "WU_API_KEY") {
		t.Fatalf("expected missing-parameter error naming WU_API_KEY, got %v", err)
	}
}

func TestConfigErrorError(t *testing.T) {
	inner := errors.New("inner")
	tests := []struct {
		err  *ConfigError
		want string
	}{
		{&ConfigError{Type: ErrValidation, Message: "bad"}, "[VALIDATION_FAILED] bad"},
		{&ConfigError{Type: ErrParsing, Message: "bad", Err: inner}, "[PARSING_FAILED] bad: inner"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
	if !errors.Is(tests[1].err, inner) {
		t.Error("Unwrap should expose the inner error")
	}
}
