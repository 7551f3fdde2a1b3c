package css_test

import (
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"stylemod/css"
)

func newExtractor(t *testing.T, opts ...css.ExtractorOption) *css.Extractor {
	t.Helper()
	return css.NewExtractor(zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1))), opts...)
}

type declSummary struct {
	selector, state, breakpoint, property string
}

func summarize(decls []css.ParsedStyleDecl) []declSummary {
	out := make([]declSummary, 0, len(decls))
	for _, d := range decls {
		out = append(out, declSummary{d.Selector, d.State, d.Breakpoint.Key(), d.Property})
	}
	return out
}

func findDecl(decls []css.ParsedStyleDecl, selector, state, property string) (css.ParsedStyleDecl, bool) {
	for _, d := range decls {
		if d.Selector == selector && d.State == state && d.Property == property {
			return d, true
		}
	}
	return css.ParsedStyleDecl{}, false
}

func TestExtract_Stylesheet(t *testing.T) {
	input := `
/* buttons */
.btn { color: red; padding: 10px 20px; }
.btn:hover { color: blue; }
@media screen and (min-width: 768px) {
	.btn { width: 50%; }
}
@media print { .btn { display: none; } }
@media (orientation: landscape) { .btn { display: block; } }
@font-face { font-family: X; src: url(x.woff); }
@import url("other.css");
.a .b { color: green; }
`
	decls := newExtractor(t).Extract(input, "test.css")

	want := []declSummary{
		{".btn", "", "", "color"},
		{".btn", "", "", "paddingTop"},
		{".btn", "", "", "paddingRight"},
		{".btn", "", "", "paddingBottom"},
		{".btn", "", "", "paddingLeft"},
		{".btn", ":hover", "", "color"},
		{".btn", "", "768--", "width"},
	}
	if got := summarize(decls); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if !reflect.DeepEqual(decls[0].Value, rgb(255, 0, 0, 1)) {
		t.Errorf("expected red, got %#v", decls[0].Value)
	}
	if !reflect.DeepEqual(decls[2].Value, unit(20, "px")) {
		t.Errorf("expected 20px right padding, got %#v", decls[2].Value)
	}
	if !reflect.DeepEqual(decls[5].Value, rgb(0, 0, 255, 1)) {
		t.Errorf("expected blue, got %#v", decls[5].Value)
	}

	last := decls[6]
	if last.Breakpoint == nil || last.Breakpoint.MinWidth == nil || *last.Breakpoint.MinWidth != 768 {
		t.Errorf("expected min-width 768 breakpoint, got %+v", last.Breakpoint)
	}
	if last.Breakpoint != nil && last.Breakpoint.MaxWidth != nil {
		t.Errorf("expected no max-width, got %v", *last.Breakpoint.MaxWidth)
	}
	if !reflect.DeepEqual(last.Value, unit(50, css.UnitPercent)) {
		t.Errorf("expected 50%%, got %#v", last.Value)
	}
}

func TestExtract_Deduplication(t *testing.T) {
	input := `.a { color: red; width: 1px } .b { width: 3px } .a { color: blue }`
	decls := css.Extract(input)

	want := []declSummary{
		{".a", "", "", "color"},
		{".a", "", "", "width"},
		{".b", "", "", "width"},
	}
	if got := summarize(decls); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if !reflect.DeepEqual(decls[0].Value, rgb(0, 0, 255, 1)) {
		t.Errorf("expected later declaration to win, got %#v", decls[0].Value)
	}
}

func TestExtract_SameDeclarationDifferentContext(t *testing.T) {
	input := `
.a { width: 1px }
.a:hover { width: 2px }
@media (max-width: 600px) { .a { width: 3px } }
@media (min-width: 600px) { .a { width: 4px } }
`
	decls := css.Extract(input)
	if len(decls) != 4 {
		t.Fatalf("expected 4 declarations, got %d: %v", len(decls), summarize(decls))
	}
	keys := map[string]bool{}
	for _, d := range decls {
		keys[d.Key()] = true
	}
	for _, k := range []string{":.a::width", ":.a::hover:width", "--600:.a::width", "600--:.a::width"} {
		if !keys[k] {
			t.Errorf("expected key %q among %v", k, keys)
		}
	}
}

func TestExtract_Selectors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []declSummary
	}{
		{
			name:  "type and class list",
			input: `p, .note { width: 1px }`,
			want:  []declSummary{{"p", "", "", "width"}, {".note", "", "", "width"}},
		},
		{
			name:  "pseudo element",
			input: `p::before { width: 1px }`,
			want:  []declSummary{{"p", "::before", "", "width"}},
		},
		{
			name:  "functional pseudo class",
			input: `li:nth-child(2n+1) { width: 1px }`,
			want:  []declSummary{{"li", ":nth-child(2n+1)", "", "width"}},
		},
		{
			name:  "combinators skipped",
			input: `.a > .b, .a .b, .a+.b, .c { width: 1px }`,
			want:  []declSummary{{".c", "", "", "width"}},
		},
		{
			name:  "compound skipped",
			input: `p.note, #id, [href], * { width: 1px }`,
			want:  []declSummary{},
		},
		{
			name:  "two pseudo classes skipped",
			input: `a:hover:focus { width: 1px }`,
			want:  []declSummary{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := summarize(newExtractor(t).Extract(tt.input))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestExtract_MediaRules(t *testing.T) {
	input := `
@media print { .a { width: 1px } }
@media screen and (orientation: portrait) { .a { width: 2px } }
@media (min-width: 10em) { .a { width: 3px } }
@media (min-width: 100px) and (max-width: 200px) { .a { width: 4px } }
@media all and (max-width: 600px) {
	@supports (display: grid) { .a { width: 5px } }
	.b { width: 6px }
}
@media screen { .c { width: 7px } }
`
	decls := newExtractor(t).Extract(input)
	want := []declSummary{
		{".b", "", "--600", "width"},
		{".c", "", "", "width"},
	}
	if got := summarize(decls); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if decls[1].Breakpoint != nil {
		t.Errorf("expected no breakpoint for plain screen media, got %+v", decls[1].Breakpoint)
	}
}

func TestExtract_Declarations(t *testing.T) {
	input := `.a {
	-webkit-transform: none;
	-webkit-line-clamp: 3;
	-moz-box-sizing: border-box;
	color: var(--brand);
	width: ;
	height: 10px !important;
	--spacing: 4px;
	*zoom: 1;
	color red;
	font-family: Helvetica Neue, Arial;
}`
	decls := newExtractor(t).Extract(input)

	tests := []struct {
		property string
		want     css.StyleValue
	}{
		{"transform", kw("none")},
		{"WebkitLineClamp", unit(3, css.UnitNumber)},
		{"boxSizing", kw("border-box")},
		{"color", kw("unset")},
		{"width", kw("unset")},
		{"height", unit(10, "px")},
		{"fontFamily", css.UnparsedValue{Value: "Helvetica Neue, Arial"}},
	}
	if len(decls) != len(tests) {
		t.Fatalf("expected %d declarations, got %d: %v", len(tests), len(decls), summarize(decls))
	}
	for i, tt := range tests {
		if decls[i].Property != tt.property {
			t.Errorf("expected property %q at %d, got %q", tt.property, i, decls[i].Property)
			continue
		}
		if !reflect.DeepEqual(decls[i].Value, tt.want) {
			t.Errorf("%s: expected %#v, got %#v", tt.property, tt.want, decls[i].Value)
		}
	}
}

func TestExtract_VarInShorthand(t *testing.T) {
	decls := css.Extract(`.a { margin: var(--m) 0 }`)
	want := []string{"marginTop", "marginRight", "marginBottom", "marginLeft"}
	if len(decls) != len(want) {
		t.Fatalf("expected %d declarations, got %d", len(want), len(decls))
	}
	for i, d := range decls {
		if d.Property != want[i] {
			t.Errorf("expected %s, got %s", want[i], d.Property)
		}
		if !reflect.DeepEqual(d.Value, kw("unset")) {
			t.Errorf("expected unset for %s, got %#v", d.Property, d.Value)
		}
	}
}

func TestExtract_KeptPrefixes(t *testing.T) {
	ex := newExtractor(t, css.WithKeptPrefixes("-webkit-appearance"))
	decls := ex.Extract(`.a { -webkit-appearance: none; -moz-appearance: none }`)
	got := summarize(decls)
	want := []declSummary{
		{".a", "", "", "WebkitAppearance"},
		{".a", "", "", "appearance"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtract_Unparseable(t *testing.T) {
	inputs := []string{
		`.a { color: red } }`,
		`.a { color: red } .b`,
		`.a { color: red } @media (min-width: 10px) { .b { color: red } ) }`,
	}
	for _, input := range inputs {
		if decls := newExtractor(t).Extract(input); len(decls) != 0 {
			t.Errorf("expected empty result for %q, got %v", input, summarize(decls))
		}
	}
}

func TestExtract_Empty(t *testing.T) {
	if decls := css.Extract(""); len(decls) != 0 {
		t.Errorf("expected no declarations, got %v", summarize(decls))
	}
	if decls := css.Extract("/* nothing */"); len(decls) != 0 {
		t.Errorf("expected no declarations, got %v", summarize(decls))
	}
}

func TestExtractStyleAttribute(t *testing.T) {
	decls := newExtractor(t).ExtractStyleAttribute(`color: red; margin: 0 auto; bogus; width: 10`)

	want := []declSummary{
		{"", "", "", "color"},
		{"", "", "", "marginTop"},
		{"", "", "", "marginRight"},
		{"", "", "", "marginBottom"},
		{"", "", "", "marginLeft"},
		{"", "", "", "width"},
	}
	if got := summarize(decls); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if d, ok := findDecl(decls, "", "", "marginRight"); !ok || !reflect.DeepEqual(d.Value, kw("auto")) {
		t.Errorf("expected auto right margin, got %#v", d.Value)
	}
	if d, ok := findDecl(decls, "", "", "width"); !ok || !reflect.DeepEqual(d.Value, css.InvalidValue{Value: "10"}) {
		t.Errorf("expected invalid width, got %#v", d.Value)
	}
}
