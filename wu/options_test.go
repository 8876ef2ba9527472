package wu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruthy(t *testing.T) {
	truthy := []any{"1", "true", "yes", "TRUE", "Yes", " yes ", true, 1}
	for _, v := range truthy {
		assert.Truef(t, Truthy(v), "Truthy(%#v)", v)
		assert.Equalf(t, "1", Flag(v), "Flag(%#v)", v)
	}

	falsy := []any{"", "0", "no", "false", "off", "10", "y", nil, false, 0, 2.5, []string{"1"}}
	for _, v := range falsy {
		assert.Falsef(t, Truthy(v), "Truthy(%#v)", v)
		assert.Equalf(t, "0", Flag(v), "Flag(%#v)", v)
	}
}

func TestResolve_Defaults(t *testing.T) {
	got := Resolve(nil, nil)

	assert.Equal(t, []string{
		KeyRaiseErrors, KeyRaiseAPIError, KeyFormat, KeyLang, KeyPWS, KeyBestFct, KeyIconSet,
	}, got.Keys())
	assert.False(t, got.Bool(KeyRaiseErrors))
	assert.True(t, got.Bool(KeyRaiseAPIError))
	assert.Equal(t, "json", got.String(KeyFormat))
	assert.Equal(t, "EN", got.String(KeyLang))
	assert.Equal(t, "1", got.String(KeyPWS))
	assert.Equal(t, "1", got.String(KeyBestFct))
	assert.Equal(t, "k", got.String(KeyIconSet))
}

func TestResolve_Precedence(t *testing.T) {
	base := NewOptions(
		Pair{KeyLang, "fr"},
		Pair{KeyIconSet, "i"},
		Pair{KeyPWS, false},
	)
	overrides := NewOptions(
		Pair{KeyLang, "de"},
		Pair{"width", 640},
	)

	got := Resolve(base, overrides)

	assert.Equal(t, "DE", got.String(KeyLang), "override wins over base")
	assert.Equal(t, "i", got.String(KeyIconSet), "base wins over defaults")
	assert.Equal(t, "0", got.String(KeyPWS), "bool false coerces to 0")
	assert.Equal(t, "1", got.String(KeyBestFct), "default kept")
	assert.Equal(t, "640", got.String("width"), "unknown keys pass through")
	v, _ := got.Get("width")
	assert.Equal(t, 640, v, "unknown keys keep their type")
}

func TestResolve_DoesNotMutateInputs(t *testing.T) {
	base := NewOptions(Pair{KeyLang, "fr"}, Pair{KeyPWS, "yes"})
	overrides := NewOptions(Pair{KeyBestFct, "no"})

	_ = Resolve(base, overrides)

	assert.Equal(t, "fr", base.String(KeyLang))
	assert.Equal(t, "yes", base.String(KeyPWS))
	assert.Equal(t, 2, base.Len())
	assert.Equal(t, "no", overrides.String(KeyBestFct))
	assert.Equal(t, 1, overrides.Len())
}

func TestResolve_FlagsAlwaysCanonical(t *testing.T) {
	inputs := []any{nil, "", "maybe", "YES", true, false, 1, 0}
	for _, in := range inputs {
		got := Resolve(NewOptions(Pair{KeyPWS, in}, Pair{KeyBestFct, in}), nil)
		for _, key := range []string{KeyPWS, KeyBestFct} {
			v, _ := got.Get(key)
			assert.Containsf(t, []any{"0", "1"}, v, "%s for input %#v", key, in)
		}
	}
}

func TestResolve_EmptyLangStaysEmpty(t *testing.T) {
	got := Resolve(NewOptions(Pair{KeyLang, ""}), nil)
	assert.Equal(t, "", got.String(KeyLang))
}

func TestOptions_NilIsEmpty(t *testing.T) {
	var o *Options

	assert.Equal(t, 0, o.Len())
	assert.Empty(t, o.Keys())
	assert.Equal(t, "", o.String("anything"))
	assert.False(t, o.Has("anything"))
	assert.Equal(t, 0, o.Clone().Len())
}

func TestOptions_InsertionOrder(t *testing.T) {
	o := NewOptions(Pair{"b", 1}, Pair{"a", 2}).Set("c", 3).Set("b", 4)

	assert.Equal(t, []string{"b", "a", "c"}, o.Keys())
	assert.Equal(t, []Pair{{"b", 4}, {"a", 2}, {"c", 3}}, o.Pairs())
}

func TestOptionsFromMap_SortsKeys(t *testing.T) {
	o := OptionsFromMap(map[string]any{"width": "1", "height": "2", "basemap": "0"})

	assert.Equal(t, []string{"basemap", "height", "width"}, o.Keys())
	assert.Equal(t, map[string]any{"width": "1", "height": "2", "basemap": "0"}, o.Map())
}

func TestOptions_CloneIsIndependent(t *testing.T) {
	o := NewOptions(Pair{"a", 1})
	c := o.Clone()
	c.Set("b", 2)

	assert.Equal(t, 1, o.Len())
	assert.Equal(t, 2, c.Len())
}
