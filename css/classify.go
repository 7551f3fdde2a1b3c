package css

import (
	"strings"

	"go.uber.org/zap"
)

// Classifier maps (property, raw value) pairs to typed style values.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	log       *zap.Logger
	validator *Validator
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithValidator replaces the default validator.
func WithValidator(v *Validator) ClassifierOption {
	return func(c *Classifier) {
		c.validator = v
	}
}

// NewClassifier creates a new value classifier.
func NewClassifier(log *zap.Logger, opts ...ClassifierOption) *Classifier {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Classifier{log: log.Named("css-classifier")}
	for _, opt := range opts {
		opt(c)
	}
	if c.validator == nil {
		c.validator = NewValidator()
	}
	return c
}

var defaultClassifier = NewClassifier(nil)

// Classify classifies value of a camel cased longhand property using the
// default classifier.
func Classify(property, input string) StyleValue {
	return defaultClassifier.Classify(property, input, true)
}

// Classify produces exactly one style value for property and input. Nested
// calls (layer segments and tuple members) pass topLevel false.
func (c *Classifier) Classify(property, input string, topLevel bool) StyleValue {
	trimmed := strings.TrimSpace(input)
	lower := strings.ToLower(trimmed)

	if isCSSWide(lower) {
		return KeywordValue{Value: lower}
	}
	if property == "transitionProperty" && lower == "none" {
		if topLevel {
			return KeywordValue{Value: "none"}
		}
		return UnparsedValue{Value: input}
	}
	if property == "scale" {
		return parseScale(input)
	}
	if trimmed == "" {
		return InvalidValue{Value: input}
	}
	if !c.validator.IsValid(property, trimmed) {
		return InvalidValue{Value: input}
	}

	root, err := ParseValue(trimmed)
	if err != nil {
		c.log.Warn("Unable to parse value", zap.String("property", property), zap.String("value", input), zap.Error(err))
		return InvalidValue{Value: input}
	}
	nodes := root.Significant()

	switch property {
	case "translate":
		return parseTranslate(input, nodes)
	case "transform":
		return parseTransform(input, nodes)
	case "filter", "backdropFilter":
		return parseFilter(input, nodes)
	case "boxShadow":
		return parseShadow(input, nodes, true)
	case "textShadow":
		return parseShadow(input, nodes, false)
	}

	if topLevel && RepeatableProperties[property] {
		return c.splitLayers(property, input, nodes)
	}

	switch property {
	case "transitionBehavior":
		for _, k := range transitionBehaviors {
			if lower == k {
				return KeywordValue{Value: k}
			}
		}
		return InvalidValue{Value: input}
	case "transitionTimingFunction":
		if len(nodes) == 1 {
			switch nodes[0].Kind {
			case NodeIdentifier:
				return KeywordValue{Value: strings.ToLower(nodes[0].Value)}
			case NodeFunction:
				return parseTimingFunction(input, nodes[0])
			}
		}
	}

	if len(nodes) == 1 {
		if v, ok := c.singleToken(property, input, nodes[0]); ok {
			return v
		}
	}

	if strings.Contains(strings.ToLower(property), "color") {
		if rgba, ok := ParseColor(trimmed); ok {
			return RGBValue{R: rgba.R, G: rgba.G, B: rgba.B, Alpha: rgba.A}
		}
	}

	if len(nodes) == 2 {
		first := c.Classify(property, Generate(nodes[0]), false)
		second := c.Classify(property, Generate(nodes[1]), false)
		if tupleMember(first) && tupleMember(second) {
			return TupleValue{Value: []StyleValue{first, second}}
		}
	}

	return UnparsedValue{Value: input}
}

// singleToken classifies value consisting of a single node. It returns false
// when classification has to continue.
func (c *Classifier) singleToken(property, input string, n *Node) (StyleValue, bool) {
	switch n.Kind {
	case NodeNumber, NodePercentage:
		v, ok := numericValue(n)
		if !ok {
			return InvalidValue{Value: input}, true
		}
		return v, true
	case NodeDimension:
		v, ok := numericValue(n)
		if !ok {
			// unknown unit
			return InvalidValue{Value: input}, true
		}
		return v, true
	case NodeIdentifier:
		keyword, found, hasTable := MatchKeyword(property, n.Value)
		if found {
			return KeywordValue{Value: keyword}, true
		}
		if !hasTable {
			return UnparsedValue{Value: input}, true
		}
	case NodeURL:
		return ImageValue{Value: ImageSource{Type: "url", URL: n.Value}}, true
	}
	return nil, false
}

// tupleMember reports whether v may be an item of a two value tuple.
func tupleMember(v StyleValue) bool {
	switch v.Kind() {
	case ValueKindUnit, ValueKindKeyword, ValueKindRgb, ValueKindUnparsed, ValueKindFunction:
		return true
	}
	return false
}

// splitLayers classifies every comma separated segment of a repeatable
// property. Any invalid segment invalidates the whole value.
func (c *Classifier) splitLayers(property, input string, nodes []*Node) StyleValue {
	segments := splitOnCommas(nodes)
	layers := make([]StyleValue, 0, len(segments))
	for _, seg := range segments {
		if len(seg) == 0 {
			return InvalidValue{Value: input}
		}
		v := c.Classify(property, generateNodes(seg), false)
		if IsInvalid(v) {
			return InvalidValue{Value: input}
		}
		layers = append(layers, v)
	}
	return LayersValue{Value: layers}
}
