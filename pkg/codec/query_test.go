package codec

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeGra-de/apigen/pkg/descriptor"
)

func TestCoerceString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{true, "true"},
		{1.5, "1.5"},
		{float64(3), "3"},
		{42, "42"},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, CoerceString(test.in))
	}
}

func TestAppendQueryStyles(t *testing.T) {
	arr := []any{"a", "b", "c"}

	tests := []struct {
		name    string
		style   descriptor.Style
		explode bool
		value   any
		want    url.Values
	}{
		{
			name:  "space delimited",
			style: descriptor.StyleSpaceDelimited,
			value: arr,
			want:  url.Values{"k": {"a b c"}},
		},
		{
			name:  "pipe delimited",
			style: descriptor.StylePipeDelimited,
			value: arr,
			want:  url.Values{"k": {"a|b|c"}},
		},
		{
			name:  "deep object",
			style: descriptor.StyleDeepObject,
			value: map[string]any{"a": 1.0, "nested": map[string]any{"b": "x"}},
			want:  url.Values{"k[a]": {"1"}, "k[nested][b]": {"x"}},
		},
		{
			name:    "form exploded array",
			style:   descriptor.StyleForm,
			explode: true,
			value:   arr,
			want:    url.Values{"k": {"a", "b", "c"}},
		},
		{
			name:  "form array",
			style: descriptor.StyleForm,
			value: arr,
			want:  url.Values{"k": {"a,b,c"}},
		},
		{
			name:    "form exploded object",
			style:   descriptor.StyleForm,
			explode: true,
			value:   map[string]any{"x": 1.0, "y": 2.0},
			want:    url.Values{"x": {"1"}, "y": {"2"}},
		},
		{
			name:  "form object",
			style: descriptor.StyleForm,
			value: map[string]any{"x": 1.0, "y": 2.0},
			want:  url.Values{"k": {"x,1,y,2"}},
		},
		{
			name:  "scalar",
			style: descriptor.StyleForm,
			value: "v",
			want:  url.Values{"k": {"v"}},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			vals := url.Values{}
			AppendQuery(vals, "k", test.style, test.explode, test.value)
			assert.Equal(t, test.want, vals)
		})
	}
}

func TestEncodeParseQueryRoundTrip(t *testing.T) {
	vals := url.Values{}
	AppendQuery(vals, "filter", descriptor.StyleDeepObject, true, map[string]any{"a": "1", "b": "2"})
	AppendQuery(vals, "tags", descriptor.StyleForm, true, []any{"x", "y"})

	parsed, err := ParseQuery(EncodeQuery(vals))
	require.NoError(t, err)
	assert.Equal(t, vals, parsed)
}

func TestEncodeForm(t *testing.T) {
	got := EncodeForm(map[string]any{"name": "a b", "count": 2.0})
	assert.Equal(t, "count=2&name=a+b", got)
}
