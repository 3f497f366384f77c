package codec

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/CodeGra-de/apigen/pkg/descriptor"
)

// CoerceString turns a parameter value into its wire text. Nil becomes the
// empty string; everything else is plain string coercion.
func CoerceString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		return ""
	}
}

// AppendQuery encodes one parameter value into vals according to its
// serialization style.
func AppendQuery(vals url.Values, name string, style descriptor.Style, explode bool, v any) {
	switch style {
	case descriptor.StyleSpaceDelimited:
		vals.Add(name, strings.Join(coerceSlice(v), " "))
	case descriptor.StylePipeDelimited:
		vals.Add(name, strings.Join(coerceSlice(v), "|"))
	case descriptor.StyleDeepObject:
		appendDeepObject(vals, name, v)
	default:
		appendForm(vals, name, explode, v)
	}
}

// appendForm is the default array/object serialization: repeat-key when
// exploded, comma-joined otherwise.
func appendForm(vals url.Values, name string, explode bool, v any) {
	switch value := v.(type) {
	case []any:
		if explode {
			for _, item := range value {
				vals.Add(name, CoerceString(item))
			}
			return
		}
		vals.Add(name, strings.Join(coerceSlice(value), ","))
	case map[string]any:
		keys := sortedKeys(value)
		if explode {
			for _, k := range keys {
				vals.Add(k, CoerceString(value[k]))
			}
			return
		}
		pairs := make([]string, 0, 2*len(keys))
		for _, k := range keys {
			pairs = append(pairs, k, CoerceString(value[k]))
		}
		vals.Add(name, strings.Join(pairs, ","))
	default:
		vals.Add(name, CoerceString(v))
	}
}

// appendDeepObject flattens an object into bracket-keyed pairs, recursing
// through nested objects: filter[owner][id]=7.
func appendDeepObject(vals url.Values, name string, v any) {
	obj, ok := v.(map[string]any)
	if !ok {
		vals.Add(name, CoerceString(v))
		return
	}
	for _, k := range sortedKeys(obj) {
		appendDeepObject(vals, name+"["+k+"]", obj[k])
	}
}

// EncodeQuery renders the wire query string, keys sorted.
func EncodeQuery(vals url.Values) string {
	return vals.Encode()
}

// ParseQuery decodes a wire query string.
func ParseQuery(query string) (url.Values, error) {
	return url.ParseQuery(query)
}

// EncodeForm renders an application/x-www-form-urlencoded body: one
// percent-encoded key/value pair per top-level field.
func EncodeForm(body map[string]any) string {
	vals := url.Values{}
	for _, k := range sortedKeys(body) {
		vals.Set(k, CoerceString(body[k]))
	}
	return vals.Encode()
}

func coerceSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{CoerceString(v)}
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = CoerceString(item)
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
