package css_test

import (
	"testing"

	"stylemod/css"
)

func TestUnprefixProperty(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"-webkit-transition", "transition"},
		{" -moz-appearance ", "appearance"},
		{"-ms-flex-align", "flex-align"},
		{"-o-transform", "transform"},
		{"-WEBKIT-Line-Clamp", "-webkit-line-clamp"},
		{"-moz-osx-font-smoothing", "-moz-osx-font-smoothing"},
		{"-foo-bar", "-foo-bar"},
		{"--var", "--var"},
		{"Color", "color"},
	}
	for _, tt := range tests {
		if got := css.UnprefixProperty(tt.input); got != tt.want {
			t.Errorf("UnprefixProperty(%q): expected %q, got %q", tt.input, tt.want, got)
		}
	}
}

func TestCamelCaseProperty(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"background-color", "backgroundColor"},
		{"-webkit-line-clamp", "WebkitLineClamp"},
		{"-moz-osx-font-smoothing", "MozOsxFontSmoothing"},
		{"-ms-grid", "msGrid"},
		{"color", "color"},
		{"--custom-prop", "--custom-prop"},
		{"border-top-left-radius", "borderTopLeftRadius"},
	}
	for _, tt := range tests {
		if got := css.CamelCaseProperty(tt.input); got != tt.want {
			t.Errorf("CamelCaseProperty(%q): expected %q, got %q", tt.input, tt.want, got)
		}
	}
}

func TestHyphenateProperty(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"backgroundColor", "background-color"},
		{"WebkitLineClamp", "-webkit-line-clamp"},
		{"msGrid", "-ms-grid"},
		{"color", "color"},
		{"background-color", "background-color"},
		{"--customProp", "--customProp"},
	}
	for _, tt := range tests {
		if got := css.HyphenateProperty(tt.input); got != tt.want {
			t.Errorf("HyphenateProperty(%q): expected %q, got %q", tt.input, tt.want, got)
		}
	}
}

func TestPropertyNames_RoundTrip(t *testing.T) {
	for _, name := range []string{"transition-timing-function", "-webkit-box-orient", "-ms-grid-row", "z-index"} {
		if got := css.HyphenateProperty(css.CamelCaseProperty(name)); got != name {
			t.Errorf("%q: expected round trip, got %q", name, got)
		}
	}
}
