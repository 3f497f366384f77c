package utils

import (
	"reflect"
	"testing"
)

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"hello", "Hello"},
		{"helloWorld", "HelloWorld"},
		{"hello-world", "HelloWorld"},
		{"hello_world", "HelloWorld"},
		{"HELLO_WORLD", "HelloWorld"},
		{"user.id", "UserId"},
		{"XMLHttpRequest", "XmlHttpRequest"},
		{"crème brûlée", "CremeBrulee"},
		{"listUserResources", "ListUserResources"},
	}
	for _, test := range tests {
		if got := ToPascalCase(test.input); got != test.expected {
			t.Errorf("ToPascalCase(%q) = %q, expected %q", test.input, got, test.expected)
		}
	}
}

func TestToCamelCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"User", "user"},
		{"user_id", "userId"},
		{"filter[name]", "filterName"},
		{"X-Request-Id", "xRequestId"},
	}
	for _, test := range tests {
		if got := ToCamelCase(test.input); got != test.expected {
			t.Errorf("ToCamelCase(%q) = %q, expected %q", test.input, got, test.expected)
		}
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"UserProfile", "user_profile"},
		{"getUserById", "get_user_by_id"},
		{"hello world", "hello_world"},
	}
	for _, test := range tests {
		if got := ToSnakeCase(test.input); got != test.expected {
			t.Errorf("ToSnakeCase(%q) = %q, expected %q", test.input, got, test.expected)
		}
	}
}

func TestSplitWords(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"helloWorld", []string{"hello", "World"}},
		{"getUserById", []string{"get", "User", "By", "Id"}},
		{"users_v1", []string{"users", "v1"}},
	}
	for _, test := range tests {
		if got := SplitWords(test.input); !reflect.DeepEqual(got, test.expected) {
			t.Errorf("SplitWords(%q) = %v, expected %v", test.input, got, test.expected)
		}
	}
}

func TestIsIdentifier(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"", false},
		{"foo", true},
		{"fooBar2", true},
		{"_private", true},
		{"2fast", false},
		{"foo-bar", false},
		{"foo bar", false},
	}
	for _, test := range tests {
		if got := IsIdentifier(test.input); got != test.expected {
			t.Errorf("IsIdentifier(%q) = %v, expected %v", test.input, got, test.expected)
		}
	}
}
