package css

import (
	"strconv"
	"strings"
)

type argKind int

const (
	argLength argKind = iota
	argLengthPercentage
	argNumber
	argNumberPercentage
	argAngle
)

// signature describes arguments of a transform or filter function. Arguments
// past min are optional.
type signature struct {
	name string // canonical spelling
	args []argKind
	min  int
}

// transformSignatures is keyed by lowercased function name.
var transformSignatures = map[string]signature{
	"translate":   {"translate", []argKind{argLengthPercentage, argLengthPercentage}, 1},
	"translatex":  {"translateX", []argKind{argLengthPercentage}, 1},
	"translatey":  {"translateY", []argKind{argLengthPercentage}, 1},
	"translatez":  {"translateZ", []argKind{argLength}, 1},
	"translate3d": {"translate3d", []argKind{argLengthPercentage, argLengthPercentage, argLength}, 3},
	"scale":       {"scale", []argKind{argNumberPercentage, argNumberPercentage}, 1},
	"scalex":      {"scaleX", []argKind{argNumberPercentage}, 1},
	"scaley":      {"scaleY", []argKind{argNumberPercentage}, 1},
	"scalez":      {"scaleZ", []argKind{argNumberPercentage}, 1},
	"scale3d":     {"scale3d", []argKind{argNumberPercentage, argNumberPercentage, argNumberPercentage}, 3},
	"rotate":      {"rotate", []argKind{argAngle}, 1},
	"rotatex":     {"rotateX", []argKind{argAngle}, 1},
	"rotatey":     {"rotateY", []argKind{argAngle}, 1},
	"rotatez":     {"rotateZ", []argKind{argAngle}, 1},
	"rotate3d":    {"rotate3d", []argKind{argNumber, argNumber, argNumber, argAngle}, 4},
	"skew":        {"skew", []argKind{argAngle, argAngle}, 1},
	"skewx":       {"skewX", []argKind{argAngle}, 1},
	"skewy":       {"skewY", []argKind{argAngle}, 1},
	"matrix":      {"matrix", repeatArg(argNumber, 6), 6},
	"matrix3d":    {"matrix3d", repeatArg(argNumber, 16), 16},
	"perspective": {"perspective", []argKind{argLength}, 1},
}

// filterSignatures is keyed by lowercased function name. drop-shadow is
// handled separately.
var filterSignatures = map[string]signature{
	"blur":        {"blur", []argKind{argLength}, 1},
	"brightness":  {"brightness", []argKind{argNumberPercentage}, 1},
	"contrast":    {"contrast", []argKind{argNumberPercentage}, 1},
	"grayscale":   {"grayscale", []argKind{argNumberPercentage}, 1},
	"invert":      {"invert", []argKind{argNumberPercentage}, 1},
	"opacity":     {"opacity", []argKind{argNumberPercentage}, 1},
	"saturate":    {"saturate", []argKind{argNumberPercentage}, 1},
	"sepia":       {"sepia", []argKind{argNumberPercentage}, 1},
	"hue-rotate":  {"hue-rotate", []argKind{argAngle}, 1},
	"drop-shadow": {"drop-shadow", nil, 0},
}

func repeatArg(k argKind, n int) []argKind {
	out := make([]argKind, n)
	for i := range out {
		out[i] = k
	}
	return out
}

// numericValue converts Number, Dimension or Percentage node to UnitValue.
func numericValue(n *Node) (UnitValue, bool) {
	v, err := strconv.ParseFloat(n.Value, 64)
	if err != nil {
		return UnitValue{}, false
	}
	switch n.Kind {
	case NodeNumber:
		return UnitValue{Value: v, Unit: UnitNumber}, true
	case NodePercentage:
		return UnitValue{Value: v, Unit: UnitPercent}, true
	case NodeDimension:
		if u, ok := KnownUnit(n.Unit); ok {
			return UnitValue{Value: v, Unit: u}, true
		}
	}
	return UnitValue{}, false
}

func argMatches(kind argKind, n *Node) bool {
	switch kind {
	case argLength:
		return n.Kind == NodeDimension && unitIn(n.Unit, "length") || isZero(n)
	case argLengthPercentage:
		return n.Kind == NodeDimension && unitIn(n.Unit, "length") || isZero(n) || n.Kind == NodePercentage
	case argNumber:
		return n.Kind == NodeNumber
	case argNumberPercentage:
		return n.Kind == NodeNumber || n.Kind == NodePercentage
	case argAngle:
		return n.Kind == NodeDimension && unitIn(n.Unit, "angle") || isZero(n)
	}
	return false
}

// commaArgs returns function arguments which must be separated by commas.
func commaArgs(fn *Node) ([]*Node, bool) {
	var out []*Node
	for _, seg := range splitOnCommas(fn.Significant()) {
		if len(seg) != 1 {
			if len(seg) == 0 && len(out) == 0 {
				// no arguments at all
				return nil, len(fn.Significant()) == 0
			}
			return nil, false
		}
		out = append(out, seg[0])
	}
	return out, true
}

// applySignature validates function call against signature and builds
// function value with tuple arguments.
func applySignature(sig signature, fn *Node) (FunctionValue, bool) {
	args, ok := commaArgs(fn)
	if !ok || len(args) < sig.min || len(args) > len(sig.args) {
		return FunctionValue{}, false
	}
	values := make([]StyleValue, 0, len(args))
	for i, a := range args {
		if !argMatches(sig.args[i], a) {
			return FunctionValue{}, false
		}
		v, ok := numericValue(a)
		if !ok {
			return FunctionValue{}, false
		}
		values = append(values, v)
	}
	return FunctionValue{Name: sig.name, Args: TupleValue{Value: values}}, true
}

// parseTranslate accepts one to three length or percentage components.
func parseTranslate(input string, nodes []*Node) StyleValue {
	if len(nodes) == 0 || len(nodes) > 3 {
		return InvalidValue{Value: input}
	}
	values := make([]StyleValue, 0, len(nodes))
	for i, n := range nodes {
		kind := argLengthPercentage
		if i == 2 {
			kind = argLength
		}
		if !argMatches(kind, n) {
			return InvalidValue{Value: input}
		}
		v, ok := numericValue(n)
		if !ok {
			return InvalidValue{Value: input}
		}
		values = append(values, v)
	}
	return TupleValue{Value: values}
}

// parseScale accepts one to three space separated numbers or percentages,
// mixing the two is not allowed.
func parseScale(input string) StyleValue {
	root, err := ParseValue(strings.TrimSpace(input))
	if err != nil {
		return InvalidValue{Value: input}
	}
	nodes := root.Significant()
	if len(nodes) == 0 || len(nodes) > 3 {
		return InvalidValue{Value: input}
	}
	kind := nodes[0].Kind
	if kind != NodeNumber && kind != NodePercentage {
		return InvalidValue{Value: input}
	}
	values := make([]StyleValue, 0, len(nodes))
	for _, n := range nodes {
		if n.Kind != kind {
			return InvalidValue{Value: input}
		}
		v, ok := numericValue(n)
		if !ok {
			return InvalidValue{Value: input}
		}
		values = append(values, v)
	}
	return TupleValue{Value: values}
}

// parseTransform accepts none or a space separated list of transform
// functions.
func parseTransform(input string, nodes []*Node) StyleValue {
	if len(nodes) == 1 && nodes[0].IsIdent("none") {
		return KeywordValue{Value: "none"}
	}
	return parseFunctionList(input, nodes, transformSignatures)
}

// parseFilter accepts none or a space separated list of filter functions.
func parseFilter(input string, nodes []*Node) StyleValue {
	if len(nodes) == 1 && nodes[0].IsIdent("none") {
		return KeywordValue{Value: "none"}
	}
	return parseFunctionList(input, nodes, filterSignatures)
}

func parseFunctionList(input string, nodes []*Node, signatures map[string]signature) StyleValue {
	if len(nodes) == 0 {
		return InvalidValue{Value: input}
	}
	values := make([]StyleValue, 0, len(nodes))
	for _, n := range nodes {
		sig, ok := signatures[n.FunctionName()]
		if !ok {
			return InvalidValue{Value: input}
		}
		var fv FunctionValue
		if sig.name == "drop-shadow" {
			layer, ok := parseShadowLayer(n.Significant(), false)
			if !ok {
				return InvalidValue{Value: input}
			}
			fv = FunctionValue{Name: sig.name, Args: layer}
		} else if fv, ok = applySignature(sig, n); !ok {
			return InvalidValue{Value: input}
		}
		values = append(values, fv)
	}
	return TupleValue{Value: values}
}

// parseShadow handles box-shadow and text-shadow.
func parseShadow(input string, nodes []*Node, box bool) StyleValue {
	if len(nodes) == 1 && nodes[0].IsIdent("none") {
		return KeywordValue{Value: "none"}
	}
	var layers []StyleValue
	for _, seg := range splitOnCommas(nodes) {
		layer, ok := parseShadowLayer(seg, box)
		if !ok {
			return InvalidValue{Value: input}
		}
		layers = append(layers, layer)
	}
	return LayersValue{Value: layers}
}

// parseShadowLayer parses one shadow. Result tuple is normalized to
// offset-x offset-y [blur [spread]] [color] [inset].
func parseShadowLayer(nodes []*Node, box bool) (TupleValue, bool) {
	maxLengths := 3
	if box {
		maxLengths = 4
	}

	var (
		lengths []StyleValue
		color   StyleValue
		inset   bool
		lastLen = -1 // index of last length node
	)
	for i, n := range nodes {
		switch {
		case box && n.IsIdent("inset"):
			// only at the start or at the end of the layer
			if inset || (i != 0 && i != len(nodes)-1) {
				return TupleValue{}, false
			}
			inset = true
		case argMatches(argLength, n):
			if lastLen >= 0 && lastLen != i-1 {
				// lengths have to be contiguous
				return TupleValue{}, false
			}
			lastLen = i
			v, ok := numericValue(n)
			if !ok {
				return TupleValue{}, false
			}
			lengths = append(lengths, v)
		default:
			if color != nil {
				return TupleValue{}, false
			}
			c, ok := shadowColor(n)
			if !ok {
				return TupleValue{}, false
			}
			color = c
		}
	}
	if len(lengths) < 2 || len(lengths) > maxLengths {
		return TupleValue{}, false
	}

	items := lengths
	if color != nil {
		items = append(items, color)
	}
	if inset {
		items = append(items, KeywordValue{Value: "inset"})
	}
	return TupleValue{Value: items}, true
}

func shadowColor(n *Node) (StyleValue, bool) {
	if n.IsIdent("currentcolor") {
		return KeywordValue{Value: "currentColor"}, true
	}
	switch n.Kind {
	case NodeHash, NodeIdentifier, NodeFunction:
		if c, ok := ParseColor(Generate(n)); ok {
			return RGBValue{R: c.R, G: c.G, B: c.B, Alpha: c.A}, true
		}
	}
	return nil, false
}

// parseTimingFunction builds function value for easing functions. Numbers
// are kept as keywords with literal text.
func parseTimingFunction(input string, fn *Node) StyleValue {
	var args []StyleValue
	for _, seg := range splitOnCommas(fn.Significant()) {
		switch len(seg) {
		case 0:
			return InvalidValue{Value: input}
		case 1:
			v, ok := timingArgument(seg[0])
			if !ok {
				return InvalidValue{Value: input}
			}
			args = append(args, v)
		default:
			items := make([]StyleValue, 0, len(seg))
			for _, n := range seg {
				v, ok := timingArgument(n)
				if !ok {
					return InvalidValue{Value: input}
				}
				items = append(items, v)
			}
			args = append(args, TupleValue{Value: items})
		}
	}
	return FunctionValue{Name: fn.FunctionName(), Args: LayersValue{Value: args}}
}

func timingArgument(n *Node) (StyleValue, bool) {
	switch n.Kind {
	case NodeNumber:
		return KeywordValue{Value: n.Value}, true
	case NodeIdentifier:
		return KeywordValue{Value: strings.ToLower(n.Value)}, true
	case NodeDimension, NodePercentage:
		v, ok := numericValue(n)
		return v, ok
	}
	return nil, false
}
