package wu

import (
	"sort"
	"strings"

	"github.com/spf13/cast"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Option keys understood by the client. Endpoint-specific keys (radar
// width, height, ...) are not listed; unknown keys pass through untouched.
const (
	KeyRaiseErrors   = "raiseErrors"
	KeyRaiseAPIError = "raiseApiError"
	KeyFormat        = "format"
	KeyLang          = "lang"
	KeyPWS           = "pws"
	KeyBestFct       = "bestFct"
	KeyIconSet       = "iconSet"

	KeyHurricanes = "h"
	KeyQueryType  = "queryType"
	KeyImageType  = "imageType"
	KeyQueryURL   = "queryUrl"
	KeyQuery      = "query"

	// keyLegacyType is the old spelling of KeyImageType for imagery calls.
	keyLegacyType = "type"
)

// Pair is a single key/value entry of an Options map.
type Pair struct {
	Key   string
	Value any
}

// Options is an insertion-ordered option map. A nil *Options behaves as an
// empty map for every read.
//
// Order matters only for imagery URLs, whose query strings list the
// parameters in the order they were added.
type Options struct {
	m *orderedmap.OrderedMap[string, any]
}

// NewOptions builds an Options map from pairs, in order. A repeated key
// keeps its first position and its last value.
func NewOptions(pairs ...Pair) *Options {
	o := &Options{m: orderedmap.New[string, any]()}
	for _, p := range pairs {
		o.m.Set(p.Key, p.Value)
	}
	return o
}

// OptionsFromMap converts a plain map. Keys are added in sorted order so the
// result is deterministic.
func OptionsFromMap(src map[string]any) *Options {
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	o := NewOptions()
	for _, k := range keys {
		o.m.Set(k, src[k])
	}
	return o
}

// Set adds or replaces key and returns o for chaining. Set is meant for
// building maps before handing them to the client; the client never calls
// it on a map it received.
func (o *Options) Set(key string, value any) *Options {
	if o.m == nil {
		o.m = orderedmap.New[string, any]()
	}
	o.m.Set(key, value)
	return o
}

// Get returns the raw value stored under key.
func (o *Options) Get(key string) (any, bool) {
	if o == nil || o.m == nil {
		return nil, false
	}
	return o.m.Get(key)
}

// Has reports whether key is present.
func (o *Options) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// String returns the value under key as a string, or "" when absent.
func (o *Options) String(key string) string {
	v, _ := o.Get(key)
	return cast.ToString(v)
}

// Bool returns the truthy coercion of the value under key.
func (o *Options) Bool(key string) bool {
	v, _ := o.Get(key)
	return Truthy(v)
}

// Len returns the number of keys.
func (o *Options) Len() int {
	if o == nil || o.m == nil {
		return 0
	}
	return o.m.Len()
}

// Keys returns the keys in insertion order.
func (o *Options) Keys() []string {
	keys := make([]string, 0, o.Len())
	o.each(func(k string, _ any) {
		keys = append(keys, k)
	})
	return keys
}

// Pairs returns the entries in insertion order.
func (o *Options) Pairs() []Pair {
	pairs := make([]Pair, 0, o.Len())
	o.each(func(k string, v any) {
		pairs = append(pairs, Pair{Key: k, Value: v})
	})
	return pairs
}

// Map returns the entries as a plain map.
func (o *Options) Map() map[string]any {
	out := make(map[string]any, o.Len())
	o.each(func(k string, v any) {
		out[k] = v
	})
	return out
}

// Clone returns an independent copy. Values are shared, not deep-copied.
func (o *Options) Clone() *Options {
	c := NewOptions()
	c.merge(o)
	return c
}

func (o *Options) each(fn func(key string, value any)) {
	if o == nil || o.m == nil {
		return
	}
	for p := o.m.Oldest(); p != nil; p = p.Next() {
		fn(p.Key, p.Value)
	}
}

// merge copies every entry of src over o, in src's order.
func (o *Options) merge(src *Options) {
	src.each(func(k string, v any) {
		o.Set(k, v)
	})
}

func (o *Options) delete(key string) {
	if o == nil || o.m == nil {
		return
	}
	o.m.Delete(key)
}

// Defaults returns a fresh copy of the built-in client defaults.
func Defaults() *Options {
	return NewOptions(
		Pair{KeyRaiseErrors, false},
		Pair{KeyRaiseAPIError, true},
		Pair{KeyFormat, "json"},
		Pair{KeyLang, "en"},
		Pair{KeyPWS, "1"},
		Pair{KeyBestFct, "1"},
		Pair{KeyIconSet, "k"},
	)
}

// Resolve layers overrides over base over the built-in defaults and
// normalizes the result: lang is uppercased when non-empty, pws and bestFct
// become exactly "0" or "1". Neither argument is modified.
func Resolve(base, overrides *Options) *Options {
	out := Defaults()
	out.merge(base)
	out.merge(overrides)

	if lang := out.String(KeyLang); lang != "" {
		out.Set(KeyLang, strings.ToUpper(lang))
	}
	for _, key := range []string{KeyPWS, KeyBestFct} {
		v, _ := out.Get(key)
		out.Set(key, Flag(v))
	}
	return out
}

// Truthy is the one boolean-like coercion used for every flag option.
// true and the strings "1", "true" and "yes" (any case, surrounding
// whitespace ignored) are truthy; everything else, nil included, is not.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

// Flag renders the truthy coercion of v as the service's "1"/"0".
func Flag(v any) string {
	if Truthy(v) {
		return "1"
	}
	return "0"
}
