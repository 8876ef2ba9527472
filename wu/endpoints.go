package wu

import (
	"context"

	"github.com/iancoleman/strcase"
)

// Geolookup returns the city, postal code, coordinates and nearby personal
// weather stations for the query.
func (c *Client) Geolookup(ctx context.Context, query string, opts *Options) (any, error) {
	return c.data(ctx, FeatureGeolookup, query, opts)
}

// Conditions returns current temperature, weather, humidity, wind, feels-like
// temperature, pressure and visibility.
func (c *Client) Conditions(ctx context.Context, query string, opts *Options) (any, error) {
	return c.data(ctx, FeatureConditions, query, opts)
}

// Alerts returns the severe alerts issued for the location, if any.
func (c *Client) Alerts(ctx context.Context, query string, opts *Options) (any, error) {
	return c.data(ctx, FeatureAlerts, query, opts)
}

// Forecast returns a three day summary.
func (c *Client) Forecast(ctx context.Context, query string, opts *Options) (any, error) {
	return c.data(ctx, FeatureForecast, query, opts)
}

// ExtendedForecast returns a ten day summary.
func (c *Client) ExtendedForecast(ctx context.Context, query string, opts *Options) (any, error) {
	return c.data(ctx, FeatureForecast10Day, query, opts)
}

// Forecast10Day is ExtendedForecast under the service's own name.
func (c *Client) Forecast10Day(ctx context.Context, query string, opts *Options) (any, error) {
	return c.ExtendedForecast(ctx, query, opts)
}

// Hourly returns the next 36 hours.
func (c *Client) Hourly(ctx context.Context, query string, opts *Options) (any, error) {
	return c.data(ctx, FeatureHourly, query, opts)
}

// DataURL returns the URL a data endpoint call would request.
func (c *Client) DataURL(feature Feature, query string, opts *Options) string {
	return c.urls.DataURL(feature, c.resolveCall(opts), query)
}

func (c *Client) data(ctx context.Context, feature Feature, query string, opts *Options) (any, error) {
	return c.fetch(ctx, string(feature), c.DataURL(feature, query, opts))
}

// Autocomplete returns locations (and hurricanes, with h set) matching a
// partial query. Recognized per-call options are format and h. The decoded
// response is kept as the last autocomplete response.
func (c *Client) Autocomplete(ctx context.Context, query string, opts *Options) (any, error) {
	resp, err := c.fetch(ctx, "autocomplete", c.AutocompleteURL(query, opts))
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.lastAutocomplete = resp
	c.mu.Unlock()
	return resp, nil
}

// AutocompleteURL returns the URL an Autocomplete call would request.
func (c *Client) AutocompleteURL(query string, opts *Options) string {
	return c.urls.AutocompleteURL(c.resolveCall(opts), query)
}

// LastAutocomplete returns the most recent successful autocomplete response,
// or nil before the first one.
func (c *Client) LastAutocomplete() any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastAutocomplete
}

// LastAutocompleteValue extracts path from the last autocomplete response.
func (c *Client) LastAutocompleteValue(path string) any {
	return Extract(c.LastAutocomplete(), path)
}

// RadarURL returns the URL of a radar image. Set queryType to
// "animatedradar" (with imageType "gif" or "swf") for an animation.
func (c *Client) RadarURL(query string, opts *Options) string {
	return c.urls.ImageryURL(ImageryRadar, opts, query)
}

// SatelliteURL returns the URL of a satellite image. Set queryType to
// "animatedsatellite" (with imageType "gif") for an animation.
func (c *Client) SatelliteURL(query string, opts *Options) string {
	return c.urls.ImageryURL(ImagerySatellite, opts, query)
}

// IconURL returns the URL of a condition icon in the client's icon set.
func (c *Client) IconURL(name string) string {
	return c.urls.IconURL(c.options.String(KeyIconSet), name)
}

// RadarDataAttributes renders the data-radar-* attributes a front-end radar
// widget reads, with per-call overrides over the radar defaults.
func (c *Client) RadarDataAttributes(query string, opts *Options, escape bool) string {
	attrs := kebabKeys(NewOptions(
		Pair{KeyQueryURL, c.urls.APIBase() + "/radar/q/"},
		Pair{KeyQuery, SanitizeQuery(query)},
		Pair{keyLegacyType, "png"},
		Pair{"radius", "100"},
		Pair{"width", "300"},
		Pair{"height", "300"},
		Pair{"newmaps", "1"},
	))
	// imageType is what the imagery URLs take; the widget reads "type".
	kebabKeys(opts).each(func(k string, v any) {
		if k == strcase.ToKebab(KeyImageType) {
			k = keyLegacyType
		}
		attrs.Set(k, v)
	})
	return DataAttributes(attrs, escape)
}
