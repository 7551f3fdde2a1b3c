// Package output encodes extracted declarations in requested formats.
package output

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"stylemod/css"
)

// Source is a single processed input.
type Source struct {
	// Name is the path of the input relative to what was requested on the
	// command line, always including file name.
	Name         string
	Kind         string // css or html
	Charset      string
	Declarations []css.ParsedStyleDecl
}

// Breakpoint is a width range in pixels, either bound may be absent.
type Breakpoint struct {
	MinWidth *float64 `json:"minWidth,omitempty" yaml:"minWidth,omitempty" ion:"minWidth,omitempty"`
	MaxWidth *float64 `json:"maxWidth,omitempty" yaml:"maxWidth,omitempty" ion:"maxWidth,omitempty"`
}

// Declaration is encoder friendly form of css.ParsedStyleDecl.
type Declaration struct {
	Property   string         `json:"property" yaml:"property" ion:"property"`
	Selector   string         `json:"selector" yaml:"selector" ion:"selector"`
	State      string         `json:"state,omitempty" yaml:"state,omitempty" ion:"state,omitempty"`
	Breakpoint *Breakpoint    `json:"breakpoint,omitempty" yaml:"breakpoint,omitempty" ion:"breakpoint,omitempty"`
	Text       string         `json:"text" yaml:"text" ion:"text"`
	Value      map[string]any `json:"value" yaml:"value" ion:"value"`
}

// Kind returns type of the classified value.
func (d Declaration) Kind() string {
	kind, _ := d.Value["type"].(string)
	return kind
}

// CSSProperty returns hyphenated property name.
func (d Declaration) CSSProperty() string {
	return css.HyphenateProperty(d.Property)
}

// Media returns breakpoint as media query condition, empty when declaration
// is not restricted.
func (d Declaration) Media() string {
	if d.Breakpoint == nil {
		return ""
	}
	var parts []string
	if d.Breakpoint.MinWidth != nil {
		parts = append(parts, "(min-width: "+strconv.FormatFloat(*d.Breakpoint.MinWidth, 'f', -1, 64)+"px)")
	}
	if d.Breakpoint.MaxWidth != nil {
		parts = append(parts, "(max-width: "+strconv.FormatFloat(*d.Breakpoint.MaxWidth, 'f', -1, 64)+"px)")
	}
	return strings.Join(parts, " and ")
}

// Document is what per source encoders write out.
type Document struct {
	Source       string        `json:"source" yaml:"source" ion:"source"`
	Kind         string        `json:"kind" yaml:"kind" ion:"kind"`
	Charset      string        `json:"charset,omitempty" yaml:"charset,omitempty" ion:"charset,omitempty"`
	RunID        string        `json:"runId" yaml:"runId" ion:"runId"`
	Declarations []Declaration `json:"declarations" yaml:"declarations" ion:"declarations"`
}

// Invalid returns number of declarations with rejected values.
func (d *Document) Invalid() int {
	count := 0
	for _, decl := range d.Declarations {
		if decl.Kind() == css.ValueKindInvalid.String() {
			count++
		}
	}
	return count
}

// NewDocument converts extracted declarations into a document.
func NewDocument(src *Source, runID uuid.UUID) *Document {
	doc := &Document{
		Source:       src.Name,
		Kind:         src.Kind,
		Charset:      src.Charset,
		RunID:        runID.String(),
		Declarations: make([]Declaration, 0, len(src.Declarations)),
	}
	for _, d := range src.Declarations {
		doc.Declarations = append(doc.Declarations, newDeclaration(d))
	}
	return doc
}

func newDeclaration(d css.ParsedStyleDecl) Declaration {
	decl := Declaration{
		Property: d.Property,
		Selector: d.Selector,
		State:    d.State,
		Text:     css.ToText(d.Value),
		Value:    css.Document(d.Value),
	}
	if !d.Breakpoint.IsEmpty() {
		decl.Breakpoint = &Breakpoint{MinWidth: d.Breakpoint.MinWidth, MaxWidth: d.Breakpoint.MaxWidth}
	}
	return decl
}
