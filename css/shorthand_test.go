package css_test

import (
	"reflect"
	"testing"

	"stylemod/css"
)

func expand(property, value string) [][2]string {
	return css.ExpandShorthands([][2]string{{property, value}})
}

func pairs(kv ...string) [][2]string {
	out := make([][2]string, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, [2]string{kv[i], kv[i+1]})
	}
	return out
}

func TestExpandShorthands(t *testing.T) {
	tests := []struct {
		name     string
		property string
		value    string
		want     [][2]string
	}{
		{
			"margin one", "margin", "10px",
			pairs("margin-top", "10px", "margin-right", "10px", "margin-bottom", "10px", "margin-left", "10px"),
		},
		{
			"padding three", "padding", "1px 2px 3px",
			pairs("padding-top", "1px", "padding-right", "2px", "padding-bottom", "3px", "padding-left", "2px"),
		},
		{
			"inset four", "inset", "1px 2px 3px 4px",
			pairs("top", "1px", "right", "2px", "bottom", "3px", "left", "4px"),
		},
		{
			"border color", "border-color", "red rgb(0, 0, 0)",
			pairs("border-top-color", "red", "border-right-color", "rgb(0, 0, 0)", "border-bottom-color", "red", "border-left-color", "rgb(0, 0, 0)"),
		},
		{
			"radius slash", "border-radius", "10px 5% / 20px",
			pairs(
				"border-top-left-radius", "10px 20px", "border-top-right-radius", "5% 20px",
				"border-bottom-right-radius", "10px 20px", "border-bottom-left-radius", "5% 20px",
			),
		},
		{
			"margin inline", "margin-inline", "auto",
			pairs("margin-inline-start", "auto", "margin-inline-end", "auto"),
		},
		{
			"gap", "gap", "1em 2em",
			pairs("row-gap", "1em", "column-gap", "2em"),
		},
		{
			"place items", "place-items", "first baseline center",
			pairs("align-items", "first baseline", "justify-items", "center"),
		},
		{
			"border", "border", "1px solid red",
			pairs(
				"border-top-width", "1px", "border-right-width", "1px", "border-bottom-width", "1px", "border-left-width", "1px",
				"border-top-style", "solid", "border-right-style", "solid", "border-bottom-style", "solid", "border-left-style", "solid",
				"border-top-color", "red", "border-right-color", "red", "border-bottom-color", "red", "border-left-color", "red",
			),
		},
		{
			"border side defaults", "border-left", "dashed",
			pairs("border-left-width", "medium", "border-left-style", "dashed", "border-left-color", "currentcolor"),
		},
		{
			"outline", "outline", "#000 thick auto",
			pairs("outline-width", "thick", "outline-style", "auto", "outline-color", "#000"),
		},
		{
			"background color only", "background", "red",
			pairs(
				"background-image", "none", "background-position-x", "0%", "background-position-y", "0%",
				"background-size", "auto", "background-repeat", "repeat", "background-attachment", "scroll",
				"background-origin", "padding-box", "background-clip", "border-box", "background-color", "red",
			),
		},
		{
			"background layers", "background", `url(a.png) right 10px top / cover no-repeat, linear-gradient(red, blue) content-box #fff`,
			pairs(
				"background-image", "url(a.png), linear-gradient(red, blue)",
				"background-position-x", "right 10px, 0%",
				"background-position-y", "top, 0%",
				"background-size", "cover, auto",
				"background-repeat", "no-repeat, repeat",
				"background-attachment", "scroll, scroll",
				"background-origin", "padding-box, content-box",
				"background-clip", "border-box, content-box",
				"background-color", "#fff",
			),
		},
		{
			"background position", "background-position", "center bottom, 10px 20%",
			pairs("background-position-x", "center, 10px", "background-position-y", "bottom, 20%"),
		},
		{
			"transition", "transition", "opacity 1s ease-in 200ms, transform 2s",
			pairs(
				"transition-property", "opacity, transform",
				"transition-duration", "1s, 2s",
				"transition-timing-function", "ease-in, ease",
				"transition-delay", "200ms, 0s",
				"transition-behavior", "normal, normal",
			),
		},
		{
			"flex number", "flex", "2",
			pairs("flex-grow", "2", "flex-shrink", "1", "flex-basis", "0%"),
		},
		{
			"flex none", "flex", "none",
			pairs("flex-grow", "0", "flex-shrink", "0", "flex-basis", "auto"),
		},
		{
			"flex full", "flex", "1 0 200px",
			pairs("flex-grow", "1", "flex-shrink", "0", "flex-basis", "200px"),
		},
		{
			"flex flow", "flex-flow", "wrap column",
			pairs("flex-direction", "column", "flex-wrap", "wrap"),
		},
		{
			"text decoration", "text-decoration", "underline dotted red",
			pairs(
				"text-decoration-line", "underline", "text-decoration-style", "dotted",
				"text-decoration-color", "red", "text-decoration-thickness", "auto",
			),
		},
		{
			"list style", "list-style", "square inside",
			pairs("list-style-type", "square", "list-style-position", "inside", "list-style-image", "none"),
		},
		{
			"list style none", "list-style", "none",
			pairs("list-style-type", "none", "list-style-position", "outside", "list-style-image", "none"),
		},
		{
			"columns", "columns", "3 200px",
			pairs("column-width", "200px", "column-count", "3"),
		},
		{
			"grid row", "grid-row", "1 / span 2",
			pairs("grid-row-start", "1", "grid-row-end", "span 2"),
		},
		{
			"grid column ident", "grid-column", "main",
			pairs("grid-column-start", "main", "grid-column-end", "main"),
		},
		{
			"grid area", "grid-area", "2 / 1",
			pairs("grid-row-start", "2", "grid-column-start", "1", "grid-row-end", "auto", "grid-column-end", "auto"),
		},
		{
			"white space", "white-space", "pre-line",
			pairs("white-space-collapse", "preserve-breaks", "text-wrap-mode", "wrap"),
		},
		{
			"text wrap", "text-wrap", "balance",
			pairs("text-wrap-mode", "wrap", "text-wrap-style", "balance"),
		},
		{
			"font", "font", "italic bold 12px/1.5 Helvetica Neue, serif",
			pairs(
				"font-style", "italic", "font-variant-caps", "normal", "font-weight", "bold", "font-stretch", "normal",
				"font-size", "12px", "line-height", "1.5", "font-family", "Helvetica Neue, serif",
			),
		},
		{
			"css wide", "padding", "inherit",
			pairs("padding-top", "inherit", "padding-right", "inherit", "padding-bottom", "inherit", "padding-left", "inherit"),
		},
		{
			"variable", "gap", "var(--g)",
			pairs("row-gap", "var(--g)", "column-gap", "var(--g)"),
		},
		{
			"not a shorthand", "color", "red",
			pairs("color", "red"),
		},
		{
			"unexpandable", "margin", "1px 2px 3px 4px 5px",
			pairs("margin", "1px 2px 3px 4px 5px"),
		},
		{
			"font without family", "font", "12px",
			pairs("font", "12px"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expand(tt.property, tt.value); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestExpandShorthands_KeepsOrder(t *testing.T) {
	got := css.ExpandShorthands(pairs("color", "red", "gap", "1px", "width", "2px"))
	want := pairs("color", "red", "row-gap", "1px", "column-gap", "1px", "width", "2px")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestLonghands(t *testing.T) {
	if got, want := css.Longhands("gap"), []string{"row-gap", "column-gap"}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if got := css.Longhands("flexFlow"); len(got) != 2 || got[0] != "flex-direction" {
		t.Errorf("expected camel cased name to be accepted, got %v", got)
	}
	if got := css.Longhands("color"); got != nil {
		t.Errorf("expected nil for longhand, got %v", got)
	}

	names := css.Shorthands()
	for _, name := range names {
		if len(css.Longhands(name)) == 0 {
			t.Errorf("%s: expected longhands", name)
		}
	}
	for _, name := range []string{"margin", "background", "font", "border-radius"} {
		found := false
		for _, n := range names {
			found = found || n == name
		}
		if !found {
			t.Errorf("expected %s among shorthands", name)
		}
	}
}
