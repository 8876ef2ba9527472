package wu

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cast"
)

// Endpoints are the base URLs of the service. They are plain values handed
// to the client at construction; nothing in this package mutates them.
type Endpoints struct {
	// API is the data/imagery root. The API key is appended as the next
	// path segment.
	API string
	// Autocomplete is the location search endpoint.
	Autocomplete string
	// Icons is the root of the condition icon sets.
	Icons string
}

// DefaultEndpoints returns the production service URLs.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		API:          "http://api.wunderground.com/api",
		Autocomplete: "http://autocomplete.wunderground.com/aq",
		Icons:        "http://icons.wxug.com/i/c",
	}
}

// Feature names a data endpoint.
type Feature string

const (
	FeatureGeolookup     Feature = "geolookup"
	FeatureConditions    Feature = "conditions"
	FeatureAlerts        Feature = "alerts"
	FeatureForecast      Feature = "forecast"
	FeatureForecast10Day Feature = "forecast10day"
	FeatureHourly        Feature = "hourly"
)

// ImageryKind names an imagery layer.
type ImageryKind string

const (
	ImageryRadar     ImageryKind = "radar"
	ImagerySatellite ImageryKind = "satellite"
)

// imageryDefaults lists the per-call defaults of each imagery layer, in the
// order they appear in the query string.
func imageryDefaults(kind ImageryKind) *Options {
	o := NewOptions(
		Pair{KeyQueryType, string(kind)},
		Pair{KeyImageType, "png"},
		Pair{"radius", "100"},
		Pair{"width", "300"},
		Pair{"height", "300"},
	)
	switch kind {
	case ImagerySatellite:
		o.Set("basemap", "1")
	default:
		o.Set("newmaps", "1")
	}
	return o
}

// settingsTerms is the fixed order of the settings segment.
var settingsTerms = []struct {
	name string
	key  string
}{
	{"lang", KeyLang},
	{"pws", KeyPWS},
	{"bestfct", KeyBestFct},
}

// URLBuilder composes request URLs. It never performs I/O.
type URLBuilder struct {
	endpoints Endpoints
	apiKey    string
}

// NewURLBuilder returns a builder for the given endpoints and key. An empty
// key is allowed and produces an empty key segment.
func NewURLBuilder(endpoints Endpoints, apiKey string) URLBuilder {
	return URLBuilder{endpoints: endpoints, apiKey: apiKey}
}

// APIBase returns the API root with the key segment appended.
func (b URLBuilder) APIBase() string {
	return strings.TrimRight(b.endpoints.API, "/") + "/" + url.PathEscape(b.apiKey)
}

// SettingsSegment renders lang/pws/bestfct as "lang:EN/pws:1/bestfct:1",
// skipping empty values.
func SettingsSegment(opts *Options) string {
	terms := make([]string, 0, len(settingsTerms))
	for _, t := range settingsTerms {
		if v := opts.String(t.key); v != "" {
			terms = append(terms, t.name+":"+v)
		}
	}
	return strings.Join(terms, "/")
}

// DataURL builds <api>/<feature>/<settings>/q/<query>.<format>. opts must
// already be resolved.
func (b URLBuilder) DataURL(feature Feature, opts *Options, query string) string {
	parts := []string{b.APIBase(), string(feature)}
	if settings := SettingsSegment(opts); settings != "" {
		parts = append(parts, settings)
	}
	parts = append(parts, "q", pathQuery(query)+"."+formatOf(opts))
	return strings.Join(parts, "/")
}

// AutocompleteURL builds <autocomplete>?format=F&h=H&query=Q. The key order
// is fixed; h is truthy-coerced and defaults to "0".
func (b URLBuilder) AutocompleteURL(opts *Options, query string) string {
	return fmt.Sprintf("%s?format=%s&h=%s&query=%s",
		b.endpoints.Autocomplete,
		url.QueryEscape(formatOf(opts)),
		Flag(optionValue(opts, KeyHurricanes)),
		url.QueryEscape(SanitizeQuery(query)),
	)
}

// ImageryURL builds <api>/<queryType>/q/<query>.<imageType>?<params>.
// overrides layer over the kind's defaults; queryType and imageType are
// consumed and every other key becomes a query parameter in insertion order.
func (b URLBuilder) ImageryURL(kind ImageryKind, overrides *Options, query string) string {
	params := imageryDefaults(kind)
	params.merge(normalizeImageryOverrides(overrides))

	queryType := params.String(KeyQueryType)
	if queryType == "" {
		queryType = string(kind)
	}
	imageType := params.String(KeyImageType)
	if imageType == "" {
		imageType = "png"
	}
	params.delete(KeyQueryType)
	params.delete(KeyImageType)

	u := fmt.Sprintf("%s/%s/q/%s.%s", b.APIBase(), queryType, pathQuery(query), imageType)
	if qs := EncodeParams(params); qs != "" {
		u += "?" + qs
	}
	return u
}

// IconURL builds <icons>/<iconSet>/<name>.gif.
func (b URLBuilder) IconURL(iconSet, name string) string {
	return fmt.Sprintf("%s/%s/%s.gif", strings.TrimRight(b.endpoints.Icons, "/"), iconSet, name)
}

// EncodeParams serializes opts as percent-encoded key=value pairs joined by
// "&", keeping insertion order (url.Values would sort them).
func EncodeParams(opts *Options) string {
	pairs := make([]string, 0, opts.Len())
	opts.each(func(k string, v any) {
		pairs = append(pairs, url.QueryEscape(k)+"="+url.QueryEscape(cast.ToString(v)))
	})
	return strings.Join(pairs, "&")
}

// normalizeImageryOverrides maps the legacy "type" key onto imageType
// without touching the caller's map.
func normalizeImageryOverrides(overrides *Options) *Options {
	out := overrides.Clone()
	if v, ok := out.Get(keyLegacyType); ok {
		if !out.Has(KeyImageType) {
			out.Set(KeyImageType, v)
		}
		out.delete(keyLegacyType)
	}
	return out
}

// pathQuery sanitizes query and path-escapes each "/"-separated piece.
// "/" stays a separator ("CA/San_Francisco"); ":" and "," stay literal for
// "zmw:94107.1.99999" and "37.8,-122.4" style queries.
func pathQuery(query any) string {
	pieces := strings.Split(SanitizeQuery(query), "/")
	for i, p := range pieces {
		pieces[i] = strings.ReplaceAll(url.PathEscape(p), "%2C", ",")
	}
	return strings.Join(pieces, "/")
}

func formatOf(opts *Options) string {
	if f := strings.ToLower(opts.String(KeyFormat)); f != "" {
		return f
	}
	return "json"
}

func optionValue(opts *Options, key string) any {
	v, _ := opts.Get(key)
	return v
}
