package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"wunderground/internal/config"
	"wunderground/internal/external"
	"wunderground/internal/types"
	"wunderground/wu"
)

type rootFlags struct {
	key         string
	lang        string
	format      string
	extract     string
	envFiles    []string
	pws         bool
	bestFct     bool
	raiseErrors bool
}

// app carries what the commands share. The client is built in the root
// PersistentPreRunE once flags and configuration are known.
type app struct {
	out    io.Writer
	errOut io.Writer

	// loadConfig and transport are replaced in tests.
	loadConfig func(envFiles []string) (*config.Config, error)
	transport  wu.Transport

	flags  rootFlags
	cfg    *config.Config
	logger *slog.Logger
	client *wu.Client
}

func newApp(out, errOut io.Writer) *app {
	return &app{
		out:        out,
		errOut:     errOut,
		loadConfig: loadConfig,
	}
}

func loadConfig(envFiles []string) (*config.Config, error) {
	return config.LoadConfig(secretProvider(), envFiles...)
}

// secretProvider picks SSM outside local development.
func secretProvider() config.SecretProvider {
	switch env := os.Getenv("APP_ENV"); env {
	case "", "local":
		return config.NewEnvVarProvider()
	default:
		region := os.Getenv("AWS_REGION")
		if region == "" {
			region = "us-east-1"
		}
		return config.NewSSMProvider(region)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "wu",
		Short:         "Query the Weather Underground data service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	f := root.PersistentFlags()
	f.StringVar(&a.flags.key, "key", "", "API key (default $WU_API_KEY)")
	f.StringVar(&a.flags.lang, "lang", "", "language code (default $WU_LANG)")
	f.BoolVar(&a.flags.pws, "pws", true, "use personal weather stations")
	f.BoolVar(&a.flags.bestFct, "bestfct", true, "use the best forecast model")
	f.StringVar(&a.flags.format, "format", "", "response format")
	f.BoolVar(&a.flags.raiseErrors, "raise-errors", false, "fail when the service reports an error")
	f.StringVar(&a.flags.extract, "extract", "", "print only the value at this dotted path")
	f.StringArrayVar(&a.flags.envFiles, "env-file", nil, "dotenv file to load (repeatable)")

	for _, feature := range []wu.Feature{
		wu.FeatureGeolookup, wu.FeatureConditions, wu.FeatureAlerts,
		wu.FeatureForecast, wu.FeatureForecast10Day, wu.FeatureHourly,
	} {
		root.AddCommand(newDataCmd(a, feature))
	}
	root.AddCommand(
		newAutocompleteCmd(a),
		newReportCmd(a),
		newImageryCmd(a, wu.ImageryRadar),
		newImageryCmd(a, wu.ImagerySatellite),
		newIconCmd(a),
		newRadarAttrsCmd(a),
		newVersionCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := a.loadConfig(a.flags.envFiles)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	a.cfg = cfg
	a.logger = newLogger(a.errOut, cfg.LogLevel, cfg.LogFormat)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = types.WithRequestID(ctx, uuid.NewString())
	cmd.SetContext(ctx)

	transport := a.transport
	if transport == nil {
		transport, err = a.newTransport(ctx)
		if err != nil {
			return err
		}
	}

	key := cfg.Service.APIKey.Unmask()
	if a.flags.key != "" {
		key = a.flags.key
	}

	client, err := wu.New(key,
		wu.WithOptions(a.clientOptions(cmd)),
		wu.WithEndpoints(cfg.Endpoints()),
		wu.WithTransport(transport),
		wu.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}
	a.client = client
	return nil
}

// clientOptions layers explicitly set flags over the configured options.
func (a *app) clientOptions(cmd *cobra.Command) *wu.Options {
	opts := a.cfg.ClientOptions()
	flags := cmd.Flags()
	if flags.Changed("lang") {
		opts.Set(wu.KeyLang, a.flags.lang)
	}
	if flags.Changed("pws") {
		opts.Set(wu.KeyPWS, a.flags.pws)
	}
	if flags.Changed("bestfct") {
		opts.Set(wu.KeyBestFct, a.flags.bestFct)
	}
	if flags.Changed("format") {
		opts.Set(wu.KeyFormat, a.flags.format)
	}
	if flags.Changed("raise-errors") {
		opts.Set(wu.KeyRaiseErrors, a.flags.raiseErrors)
	}
	return opts
}

func (a *app) newTransport(ctx context.Context) (wu.Transport, error) {
	cfg := a.cfg
	base := external.NewBaseClient(
		external.NewHTTPClient(cfg.HTTP.Timeout),
		"wunderground",
		cfg.UserAgent(),
		external.WithFailureThreshold(cfg.HTTP.BreakerThreshold),
	)

	var metrics external.FetchMetrics = external.NoopFetchMetrics{}
	if cfg.Observability.EnableMetrics {
		cw, err := external.NewCloudWatchClient(ctx, cfg.AWS.Region)
		if err != nil {
			return nil, fmt.Errorf("creating CloudWatch client: %w", err)
		}
		metrics = external.NewCloudWatchFetchMetrics(cw, cfg.Observability.MetricNamespace, a.logger)
	}

	return external.NewJSONFetcher(base,
		external.WithMetrics(metrics),
		external.WithFetchLogger(a.logger),
	), nil
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		// No client needed.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(*cobra.Command, []string) error {
			b := config.NewBuildInfo()
			_, err := fmt.Fprintf(a.out, "wu %s (commit %s, built %s)\n", b.Version, b.Commit, b.BuildTime)
			return err
		},
	}
}
