// Package config loads the settings of the wu command and of any process
// that embeds the client. Values are read once at startup:
//
//	OS Environment (Highest) -> Dotenv File -> AWS SSM Parameter Store (Lowest)
//
// A missing or malformed value fails the load with a *ConfigError.
package config

import (
	"strings"
	"time"

	"wunderground/internal/types"
	"wunderground/wu"
)

// SecretString is an alias for types.SecretString so the API key is never
// printed by accident.
type SecretString = types.SecretString

// Config is the top-level configuration.
type Config struct {
	Environment string `envconfig:"APP_ENV" default:"local" validate:"required,oneof=local dev staging prod"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"text" validate:"oneof=text json"`

	Service       ServiceConfig
	HTTP          HTTPConfig
	AWS           AWSConfig
	Observability ObservabilityConfig

	// Build Metadata (Injected via ldflags, not Env)
	Build BuildInfo
}

// ServiceConfig holds the API key, the client-level options and the
// service base URLs.
type ServiceConfig struct {
	// Optional here; the client rejects a blank key unless RaiseAPIError is off.
	APIKey SecretString `envconfig:"WU_API_KEY"`

	Lang          string `envconfig:"WU_LANG" default:"en" validate:"omitempty,alpha,max=3"`
	// Flag values ("1", "yes", "true", "0", ...); the client coerces them.
	PWS           string `envconfig:"WU_PWS" default:"1"`
	BestFct       string `envconfig:"WU_BESTFCT" default:"1"`
	IconSet       string `envconfig:"WU_ICON_SET" default:"k" validate:"required,alphanum"`
	Format        string `envconfig:"WU_FORMAT" default:"json" validate:"oneof=json"`
	RaiseErrors   bool   `envconfig:"WU_RAISE_ERRORS" default:"false"`
	RaiseAPIError bool   `envconfig:"WU_RAISE_API_ERROR" default:"true"`

	APIURL          string `envconfig:"WU_API_URL" default:"http://api.wunderground.com/api" validate:"required,url"`
	AutocompleteURL string `envconfig:"WU_AUTOCOMPLETE_URL" default:"http://autocomplete.wunderground.com/aq" validate:"required,url"`
	IconURL         string `envconfig:"WU_ICON_URL" default:"http://icons.wxug.com/i/c" validate:"required,url"`
}

// HTTPConfig tunes the outbound transport.
type HTTPConfig struct {
	Timeout          time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s" validate:"gt=0"`
	BreakerThreshold uint32        `envconfig:"HTTP_BREAKER_THRESHOLD" default:"5" validate:"gte=1"`
	// Empty means "wunderground-go/<build version>".
	UserAgent string `envconfig:"HTTP_USER_AGENT"`
}

// AWSConfig holds the region used for SSM and CloudWatch.
type AWSConfig struct {
	Region string `envconfig:"AWS_REGION" default:"us-east-1"`
}

// ObservabilityConfig holds telemetry settings.
type ObservabilityConfig struct {
	EnableMetrics   bool   `envconfig:"ENABLE_METRICS" default:"false"`
	MetricNamespace string `envconfig:"METRIC_NAMESPACE" default:"Wunderground"`
}

// BuildInfo holds build-time metadata injected via ldflags.
// These values are NOT populated from environment variables.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// ConfigErrorType categorizes configuration loading failures to aid debugging.
type ConfigErrorType string

const (
	// ErrSSMResolution indicates a failure when fetching secrets from AWS SSM.
	ErrSSMResolution ConfigErrorType = "SSM_FAILURE"
	// ErrValidation indicates the configuration failed struct validation rules.
	ErrValidation ConfigErrorType = "VALIDATION_FAILED"
	// ErrParsing indicates a failure when parsing environment variable values
	// into their target types.
	ErrParsing ConfigErrorType = "PARSING_FAILED"
	// ErrDotenv indicates an explicitly named dotenv file could not be read.
	ErrDotenv ConfigErrorType = "DOTENV_FAILED"
)

// ClientOptions converts the service settings into client-level options.
func (c *Config) ClientOptions() *wu.Options {
	s := c.Service
	return wu.NewOptions(
		wu.Pair{Key: wu.KeyRaiseErrors, Value: s.RaiseErrors},
		wu.Pair{Key: wu.KeyRaiseAPIError, Value: s.RaiseAPIError},
		wu.Pair{Key: wu.KeyFormat, Value: s.Format},
		wu.Pair{Key: wu.KeyLang, Value: s.Lang},
		wu.Pair{Key: wu.KeyPWS, Value: s.PWS},
		wu.Pair{Key: wu.KeyBestFct, Value: s.BestFct},
		wu.Pair{Key: wu.KeyIconSet, Value: s.IconSet},
	)
}

// Endpoints returns the configured service base URLs.
func (c *Config) Endpoints() wu.Endpoints {
	return wu.Endpoints{
		API:          strings.TrimRight(c.Service.APIURL, "/"),
		Autocomplete: c.Service.AutocompleteURL,
		Icons:        strings.TrimRight(c.Service.IconURL, "/"),
	}
}

// UserAgent returns the configured user agent, or one derived from the
// build version.
func (c *Config) UserAgent() string {
	if c.HTTP.UserAgent != "" {
		return c.HTTP.UserAgent
	}
	return "wunderground-go/" + c.Build.Version
}
