package css

//go:generate go tool go-enum --names --marshal --nocase --mustparse

// Kind of a classified style value.
// ENUM(keyword, unit, rgb, image, tuple, layers, function, unparsed, invalid)
type ValueKind int

// StyleValue is a classified CSS value. The set of implementations is closed:
// KeywordValue, UnitValue, RGBValue, ImageValue, TupleValue, LayersValue,
// FunctionValue, UnparsedValue and InvalidValue.
type StyleValue interface {
	Kind() ValueKind
	styleValue()
}

// Unit is a CSS unit of a numeric value.
type Unit string

const (
	UnitNumber  Unit = "number"
	UnitPercent Unit = "%"
)

// KeywordValue is a CSS-wide or property specific keyword.
type KeywordValue struct {
	Value string
}

// UnitValue is a number with optional dimension.
type UnitValue struct {
	Value float64
	Unit  Unit
}

// RGBValue is a resolved color.
type RGBValue struct {
	R, G, B uint8
	Alpha   float64
}

// ImageSource references an image resource.
type ImageSource struct {
	Type string // always "url"
	URL  string
}

// ImageValue is an image reference.
type ImageValue struct {
	Value ImageSource
}

// TupleValue is a fixed arity composite (for example x and y offsets).
type TupleValue struct {
	Value []StyleValue
}

// LayersValue is a comma separated list of independent values.
type LayersValue struct {
	Value []StyleValue
}

// FunctionValue is a function call, Args is either TupleValue or LayersValue.
type FunctionValue struct {
	Name string
	Args StyleValue
}

// UnparsedValue is admissible CSS which was not decomposed, kept verbatim.
type UnparsedValue struct {
	Value string
}

// InvalidValue is rejected CSS, kept verbatim for diagnostics.
type InvalidValue struct {
	Value string
}

func (KeywordValue) Kind() ValueKind  { return ValueKindKeyword }
func (UnitValue) Kind() ValueKind     { return ValueKindUnit }
func (RGBValue) Kind() ValueKind      { return ValueKindRgb }
func (ImageValue) Kind() ValueKind    { return ValueKindImage }
func (TupleValue) Kind() ValueKind    { return ValueKindTuple }
func (LayersValue) Kind() ValueKind   { return ValueKindLayers }
func (FunctionValue) Kind() ValueKind { return ValueKindFunction }
func (UnparsedValue) Kind() ValueKind { return ValueKindUnparsed }
func (InvalidValue) Kind() ValueKind  { return ValueKindInvalid }

func (KeywordValue) styleValue()  {}
func (UnitValue) styleValue()     {}
func (RGBValue) styleValue()      {}
func (ImageValue) styleValue()    {}
func (TupleValue) styleValue()    {}
func (LayersValue) styleValue()   {}
func (FunctionValue) styleValue() {}
func (UnparsedValue) styleValue() {}
func (InvalidValue) styleValue()  {}

// IsInvalid reports whether v is an InvalidValue (or nil).
func IsInvalid(v StyleValue) bool {
	return v == nil || v.Kind() == ValueKindInvalid
}

// Document converts a value into a generic tree of maps and slices suitable
// for any structured encoder. Every node carries its kind under "type".
func Document(v StyleValue) map[string]any {
	switch v := v.(type) {
	case KeywordValue:
		return map[string]any{"type": v.Kind().String(), "value": v.Value}
	case UnitValue:
		return map[string]any{"type": v.Kind().String(), "value": v.Value, "unit": string(v.Unit)}
	case RGBValue:
		return map[string]any{"type": v.Kind().String(), "r": int(v.R), "g": int(v.G), "b": int(v.B), "alpha": v.Alpha}
	case ImageValue:
		return map[string]any{"type": v.Kind().String(), "value": map[string]any{"type": v.Value.Type, "url": v.Value.URL}}
	case TupleValue:
		return map[string]any{"type": v.Kind().String(), "value": documents(v.Value)}
	case LayersValue:
		return map[string]any{"type": v.Kind().String(), "value": documents(v.Value)}
	case FunctionValue:
		return map[string]any{"type": v.Kind().String(), "name": v.Name, "args": Document(v.Args)}
	case UnparsedValue:
		return map[string]any{"type": v.Kind().String(), "value": v.Value}
	case InvalidValue:
		return map[string]any{"type": v.Kind().String(), "value": v.Value}
	}
	return map[string]any{"type": ValueKindInvalid.String(), "value": ""}
}

func documents(values []StyleValue) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, Document(v))
	}
	return out
}
