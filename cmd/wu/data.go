package main

import (
	"context"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"wunderground/wu"
)

var featureShort = map[wu.Feature]string{
	wu.FeatureGeolookup:     "City, postal code and nearby stations for a location",
	wu.FeatureConditions:    "Current conditions",
	wu.FeatureAlerts:        "Active severe weather alerts",
	wu.FeatureForecast:      "Three day forecast",
	wu.FeatureForecast10Day: "Ten day forecast",
	wu.FeatureHourly:        "Hourly forecast for the next 36 hours",
}

func newDataCmd(a *app, feature wu.Feature) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   string(feature) + " <query>",
		Short: featureShort[feature],
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := parseSets(sets)
			if err != nil {
				return err
			}
			resp, err := a.fetchFeature(cmd.Context(), feature, joinQuery(args), opts)
			if err != nil {
				return err
			}
			if err := a.checkResponse(string(feature), resp); err != nil {
				return err
			}
			return a.emit(resp)
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "per-call option key=value (repeatable)")
	return cmd
}

func (a *app) fetchFeature(ctx context.Context, feature wu.Feature, query string, opts *wu.Options) (any, error) {
	c := a.client
	switch feature {
	case wu.FeatureGeolookup:
		return c.Geolookup(ctx, query, opts)
	case wu.FeatureConditions:
		return c.Conditions(ctx, query, opts)
	case wu.FeatureAlerts:
		return c.Alerts(ctx, query, opts)
	case wu.FeatureForecast:
		return c.Forecast(ctx, query, opts)
	case wu.FeatureForecast10Day:
		return c.ExtendedForecast(ctx, query, opts)
	default:
		return c.Hourly(ctx, query, opts)
	}
}

func newAutocompleteCmd(a *app) *cobra.Command {
	var hurricanes bool
	cmd := &cobra.Command{
		Use:   "autocomplete <query>",
		Short: "Locations (and hurricanes) matching a partial name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := wu.NewOptions(wu.Pair{Key: wu.KeyHurricanes, Value: hurricanes})
			resp, err := a.client.Autocomplete(cmd.Context(), joinQuery(args), opts)
			if err != nil {
				return err
			}
			return a.emit(resp)
		},
	}
	cmd.Flags().BoolVar(&hurricanes, "hurricanes", false, "include hurricanes in the results")
	return cmd
}

// reportFeatures are fetched concurrently by the report command.
var reportFeatures = []wu.Feature{wu.FeatureConditions, wu.FeatureForecast, wu.FeatureAlerts}

func newReportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "report <query>",
		Short: "Conditions, forecast and alerts in one document",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.report(cmd.Context(), joinQuery(args))
			if err != nil {
				return err
			}
			return a.emit(report)
		},
	}
}

func (a *app) report(ctx context.Context, query string) (map[string]any, error) {
	var mu sync.Mutex
	report := make(map[string]any, len(reportFeatures))

	g, gCtx := errgroup.WithContext(ctx)
	for _, feature := range reportFeatures {
		g.Go(func() error {
			resp, err := a.fetchFeature(gCtx, feature, query, nil)
			if err != nil {
				return err
			}
			if err := a.checkResponse(string(feature), resp); err != nil {
				return err
			}
			mu.Lock()
			report[string(feature)] = resp
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}
