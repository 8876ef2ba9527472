package wu

import (
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
)

const dataAttrPrefix = "data-radar-"

// DataAttributes renders opts as ` data-radar-<key>="<value>" ...` for
// embedding radar settings in markup. Keys are kebab-cased; keys that
// kebab-case alike ("queryUrl", "query_url") collapse into one token, the
// later value winning. Tokens are sorted and the result carries one leading
// space. An empty map renders as "".
func DataAttributes(opts *Options, escape bool) string {
	attrs := kebabKeys(opts)
	if attrs.Len() == 0 {
		return ""
	}

	tokens := make([]string, 0, attrs.Len())
	attrs.each(func(k string, v any) {
		tokens = append(tokens, dataAttribute(k, v, escape))
	})
	sort.Strings(tokens)
	return " " + strings.Join(tokens, " ")
}

// kebabKeys re-keys opts by kebab-cased name, keeping first positions.
func kebabKeys(opts *Options) *Options {
	out := NewOptions()
	opts.each(func(k string, v any) {
		out.Set(strcase.ToKebab(k), v)
	})
	return out
}

func dataAttribute(kebabKey string, value any, escape bool) string {
	text := attributeText(value)
	if escape {
		text = html.EscapeString(text)
	}
	return fmt.Sprintf(`%s%s="%s"`, dataAttrPrefix, kebabKey, text)
}

// attributeText: strings and decimals verbatim, sequences space-joined,
// anything else compact JSON.
func attributeText(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case []string:
		return strings.Join(v, " ")
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = attributeText(e)
		}
		return strings.Join(parts, " ")
	}

	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return string(b)
}

var dataAttrPattern = regexp.MustCompile(`data-radar-([A-Za-z0-9-]+)="([^"]*)"`)

// ParseDataAttributes reads tokens produced by DataAttributes back into a
// map keyed by the kebab-cased name, unescaping HTML entities.
func ParseDataAttributes(s string) map[string]string {
	out := make(map[string]string)
	for _, m := range dataAttrPattern.FindAllStringSubmatch(s, -1) {
		out[m[1]] = html.UnescapeString(m[2])
	}
	return out
}
