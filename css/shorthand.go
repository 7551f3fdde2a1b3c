package css

import (
	"slices"
	"strings"
)

// shorthand expands a value into values of its longhands, in order.
type shorthand struct {
	longhands []string
	expand    func(value string) ([]string, bool)
}

var shorthands map[string]shorthand

func init() {
	four := func(prefix, suffix string) []string {
		return []string{prefix + "top" + suffix, prefix + "right" + suffix, prefix + "bottom" + suffix, prefix + "left" + suffix}
	}
	pair := func(a, b string) []string { return []string{a, b} }

	borderLonghands := append(append(four("border-", "-width"), four("border-", "-style")...), four("border-", "-color")...)

	shorthands = map[string]shorthand{
		"margin":         {four("margin-", ""), expandSides},
		"padding":        {four("padding-", ""), expandSides},
		"inset":          {four("", ""), expandSides},
		"scroll-margin":  {four("scroll-margin-", ""), expandSides},
		"scroll-padding": {four("scroll-padding-", ""), expandSides},
		"border-width":   {four("border-", "-width"), expandSides},
		"border-style":   {four("border-", "-style"), expandSides},
		"border-color":   {four("border-", "-color"), expandSides},
		"border-radius": {
			[]string{"border-top-left-radius", "border-top-right-radius", "border-bottom-right-radius", "border-bottom-left-radius"},
			expandRadius,
		},

		"margin-block":   {pair("margin-block-start", "margin-block-end"), expandPair},
		"margin-inline":  {pair("margin-inline-start", "margin-inline-end"), expandPair},
		"padding-block":  {pair("padding-block-start", "padding-block-end"), expandPair},
		"padding-inline": {pair("padding-inline-start", "padding-inline-end"), expandPair},
		"inset-block":    {pair("inset-block-start", "inset-block-end"), expandPair},
		"inset-inline":   {pair("inset-inline-start", "inset-inline-end"), expandPair},
		"gap":            {pair("row-gap", "column-gap"), expandPair},
		"overflow":       {pair("overflow-x", "overflow-y"), expandPair},
		"place-content":  {pair("align-content", "justify-content"), expandPlace},
		"place-items":    {pair("align-items", "justify-items"), expandPlace},
		"place-self":     {pair("align-self", "justify-self"), expandPlace},

		"border": {borderLonghands, func(value string) ([]string, bool) {
			w, s, c, ok := borderParts(value)
			if !ok {
				return nil, false
			}
			return []string{w, w, w, w, s, s, s, s, c, c, c, c}, true
		}},
		"border-top":    {[]string{"border-top-width", "border-top-style", "border-top-color"}, expandBorderSide},
		"border-right":  {[]string{"border-right-width", "border-right-style", "border-right-color"}, expandBorderSide},
		"border-bottom": {[]string{"border-bottom-width", "border-bottom-style", "border-bottom-color"}, expandBorderSide},
		"border-left":   {[]string{"border-left-width", "border-left-style", "border-left-color"}, expandBorderSide},
		"outline":       {[]string{"outline-width", "outline-style", "outline-color"}, expandBorderSide},
		"column-rule":   {[]string{"column-rule-width", "column-rule-style", "column-rule-color"}, expandBorderSide},

		"background": {
			[]string{
				"background-image", "background-position-x", "background-position-y", "background-size",
				"background-repeat", "background-attachment", "background-origin", "background-clip",
				"background-color",
			},
			expandBackground,
		},
		"background-position": {pair("background-position-x", "background-position-y"), expandBackgroundPosition},
		"transition": {
			[]string{
				"transition-property", "transition-duration", "transition-timing-function",
				"transition-delay", "transition-behavior",
			},
			expandTransition,
		},
		"flex":      {[]string{"flex-grow", "flex-shrink", "flex-basis"}, expandFlex},
		"flex-flow": {pair("flex-direction", "flex-wrap"), expandFlexFlow},

		"text-decoration": {
			[]string{"text-decoration-line", "text-decoration-style", "text-decoration-color", "text-decoration-thickness"},
			expandTextDecoration,
		},
		"list-style":  {[]string{"list-style-type", "list-style-position", "list-style-image"}, expandListStyle},
		"columns":     {pair("column-width", "column-count"), expandColumns},
		"grid-area":   {[]string{"grid-row-start", "grid-column-start", "grid-row-end", "grid-column-end"}, expandGridArea},
		"grid-row":    {pair("grid-row-start", "grid-row-end"), expandGridLine},
		"grid-column": {pair("grid-column-start", "grid-column-end"), expandGridLine},
		"white-space": {pair("white-space-collapse", "text-wrap-mode"), expandWhiteSpace},
		"text-wrap":   {pair("text-wrap-mode", "text-wrap-style"), expandTextWrap},
		"font": {
			[]string{"font-style", "font-variant-caps", "font-weight", "font-stretch", "font-size", "line-height", "font-family"},
			expandFont,
		},
	}
}

// ExpandShorthands replaces shorthand declarations with their longhands.
// Property names are hyphenated. Values using var() and CSS-wide keywords are
// copied to every longhand; values which cannot be expanded and unknown
// properties are passed through.
func ExpandShorthands(decls [][2]string) [][2]string {
	out := make([][2]string, 0, len(decls))
	for _, d := range decls {
		sh, ok := shorthands[d[0]]
		if !ok {
			out = append(out, d)
			continue
		}

		value := strings.TrimSpace(d[1])
		var values []string
		if value == "" || isCSSWide(value) || strings.Contains(strings.ToLower(value), "var(") {
			values = make([]string, len(sh.longhands))
			for i := range values {
				values[i] = value
			}
		} else if values, ok = sh.expand(value); !ok || len(values) != len(sh.longhands) {
			out = append(out, d)
			continue
		}

		for i, l := range sh.longhands {
			out = append(out, [2]string{l, values[i]})
		}
	}
	return out
}

// Shorthands returns hyphenated names of every expandable shorthand.
func Shorthands() []string {
	out := make([]string, 0, len(shorthands))
	for name := range shorthands {
		out = append(out, name)
	}
	return out
}

// Longhands returns longhands of a shorthand in expansion order, nil for
// anything else.
func Longhands(property string) []string {
	sh, ok := shorthands[HyphenateProperty(property)]
	if !ok {
		return nil
	}
	return slices.Clone(sh.longhands)
}

// components returns regenerated text of every top level value node.
func components(value string) ([]*Node, bool) {
	root, err := ParseValue(value)
	if err != nil {
		return nil, false
	}
	nodes := root.Significant()
	return nodes, len(nodes) > 0
}

func texts(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = Generate(n)
	}
	return out
}

func hasOperator(nodes []*Node, op string) bool {
	for _, n := range nodes {
		if n.IsOperator(op) {
			return true
		}
	}
	return false
}

func sides(v []string) ([]string, bool) {
	switch len(v) {
	case 1:
		return []string{v[0], v[0], v[0], v[0]}, true
	case 2:
		return []string{v[0], v[1], v[0], v[1]}, true
	case 3:
		return []string{v[0], v[1], v[2], v[1]}, true
	case 4:
		return v, true
	}
	return nil, false
}

func expandSides(value string) ([]string, bool) {
	nodes, ok := components(value)
	if !ok || hasOperator(nodes, ",") || hasOperator(nodes, "/") {
		return nil, false
	}
	return sides(texts(nodes))
}

func expandPair(value string) ([]string, bool) {
	nodes, ok := components(value)
	if !ok || hasOperator(nodes, ",") {
		return nil, false
	}
	v := texts(nodes)
	switch len(v) {
	case 1:
		return []string{v[0], v[0]}, true
	case 2:
		return v, true
	}
	return nil, false
}

// expandPlace keeps prefixes like "first baseline" or "safe center" together.
func expandPlace(value string) ([]string, bool) {
	nodes, ok := components(value)
	if !ok {
		return nil, false
	}
	var groups []string
	pending := ""
	for _, n := range nodes {
		if n.IsIdent("first") || n.IsIdent("last") || n.IsIdent("safe") || n.IsIdent("unsafe") {
			if pending != "" {
				return nil, false
			}
			pending = Generate(n)
			continue
		}
		text := Generate(n)
		if pending != "" {
			text = pending + " " + text
			pending = ""
		}
		groups = append(groups, text)
	}
	if pending != "" {
		return nil, false
	}
	switch len(groups) {
	case 1:
		return []string{groups[0], groups[0]}, true
	case 2:
		return groups, true
	}
	return nil, false
}

func expandRadius(value string) ([]string, bool) {
	nodes, ok := components(value)
	if !ok {
		return nil, false
	}
	parts := splitOnOperator(nodes, "/")
	if len(parts) > 2 {
		return nil, false
	}
	horizontal, ok := sides(texts(parts[0]))
	if !ok {
		return nil, false
	}
	if len(parts) == 1 {
		return horizontal, true
	}
	vertical, ok := sides(texts(parts[1]))
	if !ok {
		return nil, false
	}
	// corners are listed top-left, top-right, bottom-right, bottom-left
	out := make([]string, 4)
	for i := range out {
		out[i] = horizontal[i] + " " + vertical[i]
	}
	return out, true
}

func isKeywordOf(n *Node, grammarName string) bool {
	return n.Kind == NodeIdentifier && matchAll(compiledNamed[grammarName], []*Node{n})
}

// borderParts splits a border like value into width, style and color.
func borderParts(value string) (width, style, color string, ok bool) {
	nodes, ok := components(value)
	if !ok || len(nodes) > 3 {
		return "", "", "", false
	}
	for _, n := range nodes {
		text := Generate(n)
		switch {
		case style == "" && (isKeywordOf(n, "line-style") || n.IsIdent("auto")):
			style = text
		case width == "" && matchAll(compiledNamed["line-width"], []*Node{n}):
			width = text
		case color == "" && typePredicates["color"](n):
			color = text
		default:
			return "", "", "", false
		}
	}
	return or(width, "medium"), or(style, "none"), or(color, "currentcolor"), true
}

func expandBorderSide(value string) ([]string, bool) {
	w, s, c, ok := borderParts(value)
	if !ok {
		return nil, false
	}
	return []string{w, s, c}, true
}

func or(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

var positionKeywords = map[string]string{
	"left": "x", "right": "x", "top": "y", "bottom": "y", "center": "",
}

func isPositionPart(n *Node) bool {
	if n.Kind == NodeIdentifier {
		_, ok := positionKeywords[strings.ToLower(n.Value)]
		return ok
	}
	return typePredicates["length-percentage"](n)
}

// splitPosition converts one to four position components into horizontal
// and vertical parts.
func splitPosition(nodes []*Node) (x, y string, ok bool) {
	axis := func(n *Node) string {
		if n.Kind != NodeIdentifier {
			return "offset"
		}
		return positionKeywords[strings.ToLower(n.Value)]
	}

	switch len(nodes) {
	case 1:
		if axis(nodes[0]) == "y" {
			return "center", Generate(nodes[0]), true
		}
		return Generate(nodes[0]), "center", true
	case 2:
		a, b := nodes[0], nodes[1]
		if axis(a) == "y" || axis(b) == "x" {
			if axis(a) == "offset" || axis(b) == "offset" {
				return "", "", false
			}
			return Generate(b), Generate(a), true
		}
		return Generate(a), Generate(b), true
	case 3, 4:
		var centers int
		for i := 0; i < len(nodes); i++ {
			n := nodes[i]
			if n.Kind != NodeIdentifier {
				return "", "", false
			}
			text := Generate(n)
			if i+1 < len(nodes) && nodes[i+1].Kind != NodeIdentifier {
				text += " " + Generate(nodes[i+1])
				i++
			}
			switch axis(n) {
			case "x":
				if x != "" {
					return "", "", false
				}
				x = text
			case "y":
				if y != "" {
					return "", "", false
				}
				y = text
			default:
				centers++
			}
		}
		if centers > 1 {
			return "", "", false
		}
		return or(x, "center"), or(y, "center"), true
	}
	return "", "", false
}

func expandBackgroundPosition(value string) ([]string, bool) {
	nodes, ok := components(value)
	if !ok {
		return nil, false
	}
	var xs, ys []string
	for _, layer := range splitOnCommas(nodes) {
		x, y, ok := splitPosition(layer)
		if !ok {
			return nil, false
		}
		xs, ys = append(xs, x), append(ys, y)
	}
	return []string{strings.Join(xs, ", "), strings.Join(ys, ", ")}, true
}

type backgroundLayer struct {
	image, x, y, size, repeat, attachment, origin, clip, color string
}

func parseBackgroundLayer(nodes []*Node, last bool) (backgroundLayer, bool) {
	var (
		l        backgroundLayer
		position []*Node
		repeats  []string
		boxes    []string
	)
	for i := 0; i < len(nodes); i++ {
		n := nodes[i]
		switch {
		case n.IsOperator("/"):
			// size follows position
			if len(position) == 0 || l.size != "" {
				return l, false
			}
			var size []string
			for i+1 < len(nodes) && len(size) < 2 &&
				(typePredicates["length-percentage"](nodes[i+1]) || nodes[i+1].IsIdent("auto") ||
					nodes[i+1].IsIdent("cover") || nodes[i+1].IsIdent("contain")) {
				size = append(size, Generate(nodes[i+1]))
				i++
			}
			if len(size) == 0 {
				return l, false
			}
			l.size = strings.Join(size, " ")
		case l.image == "" && (n.IsIdent("none") || typePredicates["image"](n)):
			l.image = Generate(n)
		case isPositionPart(n):
			if len(position) > 0 && !isPositionPart(nodes[i-1]) {
				return l, false
			}
			position = append(position, n)
		case n.Kind == NodeIdentifier && isKeywordOf(n, "repeat-style"):
			repeats = append(repeats, Generate(n))
		case l.attachment == "" && isKeywordOf(n, "attachment"):
			l.attachment = Generate(n)
		case isKeywordOf(n, "box") || n.IsIdent("text"):
			boxes = append(boxes, Generate(n))
		case last && l.color == "" && typePredicates["color"](n):
			l.color = Generate(n)
		default:
			return l, false
		}
	}

	if len(position) > 0 {
		var ok bool
		if l.x, l.y, ok = splitPosition(position); !ok {
			return l, false
		}
	}
	if len(repeats) > 2 {
		return l, false
	}
	l.repeat = strings.Join(repeats, " ")

	switch len(boxes) {
	case 0:
	case 1:
		l.origin, l.clip = boxes[0], boxes[0]
	case 2:
		l.origin, l.clip = boxes[0], boxes[1]
	default:
		return l, false
	}
	return l, true
}

func expandBackground(value string) ([]string, bool) {
	nodes, ok := components(value)
	if !ok {
		return nil, false
	}
	segments := splitOnCommas(nodes)
	columns := make([][]string, 8)
	color := "transparent"
	for i, seg := range segments {
		if len(seg) == 0 {
			return nil, false
		}
		l, ok := parseBackgroundLayer(seg, i == len(segments)-1)
		if !ok {
			return nil, false
		}
		for j, v := range []string{
			or(l.image, "none"), or(l.x, "0%"), or(l.y, "0%"), or(l.size, "auto"),
			or(l.repeat, "repeat"), or(l.attachment, "scroll"), or(l.origin, "padding-box"), or(l.clip, "border-box"),
		} {
			columns[j] = append(columns[j], v)
		}
		if l.color != "" {
			color = l.color
		}
	}
	out := make([]string, 0, 9)
	for _, c := range columns {
		out = append(out, strings.Join(c, ", "))
	}
	return append(out, color), true
}

func expandTransition(value string) ([]string, bool) {
	nodes, ok := components(value)
	if !ok {
		return nil, false
	}
	columns := make([][]string, 5)
	for _, seg := range splitOnCommas(nodes) {
		if len(seg) == 0 {
			return nil, false
		}
		var property, easing, behavior string
		var times []string
		for _, n := range seg {
			text := Generate(n)
			switch {
			case typePredicates["time"](n):
				if len(times) == 2 {
					return nil, false
				}
				times = append(times, text)
			case easing == "" && typePredicates["easing-function"](n):
				easing = text
			case behavior == "" && (n.IsIdent("normal") || n.IsIdent("allow-discrete")):
				behavior = text
			case property == "" && n.Kind == NodeIdentifier:
				property = text
			default:
				return nil, false
			}
		}
		times = append(times, "0s", "0s")
		for j, v := range []string{or(property, "all"), times[0], or(easing, "ease"), times[1], or(behavior, "normal")} {
			columns[j] = append(columns[j], v)
		}
	}
	out := make([]string, 0, 5)
	for _, c := range columns {
		out = append(out, strings.Join(c, ", "))
	}
	return out, true
}

func expandFlex(value string) ([]string, bool) {
	nodes, ok := components(value)
	if !ok || len(nodes) > 3 {
		return nil, false
	}
	if len(nodes) == 1 {
		switch {
		case nodes[0].IsIdent("none"):
			return []string{"0", "0", "auto"}, true
		case nodes[0].IsIdent("auto"):
			return []string{"1", "1", "auto"}, true
		}
	}

	var numbers []string
	basis := ""
	for _, n := range nodes {
		if n.Kind == NodeNumber && !isZeroBasis(n, numbers) {
			numbers = append(numbers, Generate(n))
			continue
		}
		if basis != "" {
			return nil, false
		}
		basis = Generate(n)
	}
	if len(numbers) > 2 {
		return nil, false
	}

	grow, shrink := "1", "1"
	if len(numbers) > 0 {
		grow = numbers[0]
		if basis == "" {
			basis = "0%"
		}
	}
	if len(numbers) > 1 {
		shrink = numbers[1]
	}
	return []string{grow, shrink, or(basis, "auto")}, true
}

// isZeroBasis reports whether a unitless zero in third position is a basis.
func isZeroBasis(n *Node, numbers []string) bool {
	return len(numbers) == 2 && isZero(n)
}

func expandFlexFlow(value string) ([]string, bool) {
	nodes, ok := components(value)
	if !ok || len(nodes) > 2 {
		return nil, false
	}
	var direction, wrap string
	for _, n := range nodes {
		switch {
		case direction == "" && (n.IsIdent("row") || n.IsIdent("row-reverse") || n.IsIdent("column") || n.IsIdent("column-reverse")):
			direction = Generate(n)
		case wrap == "" && (n.IsIdent("nowrap") || n.IsIdent("wrap") || n.IsIdent("wrap-reverse")):
			wrap = Generate(n)
		default:
			return nil, false
		}
	}
	return []string{or(direction, "row"), or(wrap, "nowrap")}, true
}

var decorationLines = map[string]bool{"underline": true, "overline": true, "line-through": true, "blink": true}

func expandTextDecoration(value string) ([]string, bool) {
	nodes, ok := components(value)
	if !ok {
		return nil, false
	}
	var (
		lines                   []string
		style, color, thickness string
	)
	for _, n := range nodes {
		text := Generate(n)
		switch {
		case n.Kind == NodeIdentifier && decorationLines[strings.ToLower(n.Value)]:
			lines = append(lines, text)
		case n.IsIdent("none") && len(lines) == 0:
			lines = append(lines, text)
		case style == "" && (n.IsIdent("solid") || n.IsIdent("double") || n.IsIdent("dotted") || n.IsIdent("dashed") || n.IsIdent("wavy")):
			style = text
		case thickness == "" && (n.IsIdent("auto") || n.IsIdent("from-font") || typePredicates["length-percentage"](n)):
			thickness = text
		case color == "" && typePredicates["color"](n):
			color = text
		default:
			return nil, false
		}
	}
	line := strings.Join(lines, " ")
	return []string{or(line, "none"), or(style, "solid"), or(color, "currentcolor"), or(thickness, "auto")}, true
}

func expandListStyle(value string) ([]string, bool) {
	nodes, ok := components(value)
	if !ok || len(nodes) > 3 {
		return nil, false
	}
	var typ, position, image string
	nones := 0
	for _, n := range nodes {
		text := Generate(n)
		switch {
		case n.IsIdent("none"):
			nones++
		case position == "" && (n.IsIdent("inside") || n.IsIdent("outside")):
			position = text
		case image == "" && typePredicates["image"](n):
			image = text
		case typ == "" && (n.Kind == NodeIdentifier || n.Kind == NodeString):
			typ = text
		default:
			return nil, false
		}
	}
	// none applies to whichever of type and image is not given
	switch {
	case nones > 2 || (nones == 2 && (typ != "" || image != "")):
		return nil, false
	case nones > 0 && typ == "":
		typ = "none"
	}
	if nones > 0 && image == "" {
		image = "none"
	}
	return []string{or(typ, "disc"), or(position, "outside"), or(image, "none")}, true
}

func expandColumns(value string) ([]string, bool) {
	nodes, ok := components(value)
	if !ok || len(nodes) > 2 {
		return nil, false
	}
	var width, count string
	for _, n := range nodes {
		text := Generate(n)
		switch {
		case n.IsIdent("auto"):
		case count == "" && n.Kind == NodeNumber:
			count = text
		case width == "" && typePredicates["length"](n):
			width = text
		default:
			return nil, false
		}
	}
	return []string{or(width, "auto"), or(count, "auto")}, true
}

// gridLineParts splits a value on "/" into at most limit grid line texts.
func gridLineParts(value string, limit int) ([]string, []bool, bool) {
	nodes, ok := components(value)
	if !ok {
		return nil, nil, false
	}
	parts := splitOnOperator(nodes, "/")
	if len(parts) > limit {
		return nil, nil, false
	}
	lines := make([]string, len(parts))
	idents := make([]bool, len(parts))
	for i, p := range parts {
		if len(p) == 0 {
			return nil, nil, false
		}
		lines[i] = generateNodes(p)
		idents[i] = len(p) == 1 && typePredicates["custom-ident"](p[0]) && !p[0].IsIdent("auto") && !p[0].IsIdent("span")
	}
	return lines, idents, true
}

func expandGridLine(value string) ([]string, bool) {
	parts, idents, ok := gridLineParts(value, 2)
	if !ok {
		return nil, false
	}
	if len(parts) == 1 {
		end := "auto"
		if idents[0] {
			end = parts[0]
		}
		return []string{parts[0], end}, true
	}
	return parts, true
}

func expandGridArea(value string) ([]string, bool) {
	parts, idents, ok := gridLineParts(value, 4)
	if !ok {
		return nil, false
	}
	fill := func(i, from int) {
		if i < len(parts) {
			return
		}
		v := "auto"
		if idents[from] {
			v = parts[from]
		}
		parts = append(parts, v)
		idents = append(idents, idents[from])
	}
	fill(1, 0) // column start
	fill(2, 0) // row end
	fill(3, 1) // column end
	return parts, true
}

var whiteSpaceModes = map[string][2]string{
	"normal":       {"collapse", "wrap"},
	"pre":          {"preserve", "nowrap"},
	"nowrap":       {"collapse", "nowrap"},
	"pre-wrap":     {"preserve", "wrap"},
	"pre-line":     {"preserve-breaks", "wrap"},
	"break-spaces": {"break-spaces", "wrap"},
}

func expandWhiteSpace(value string) ([]string, bool) {
	m, ok := whiteSpaceModes[strings.ToLower(value)]
	if !ok {
		return nil, false
	}
	return m[:], true
}

func expandTextWrap(value string) ([]string, bool) {
	nodes, ok := components(value)
	if !ok || len(nodes) > 2 {
		return nil, false
	}
	var mode, style string
	for _, n := range nodes {
		v := strings.ToLower(Generate(n))
		switch {
		case mode == "" && (v == "wrap" || v == "nowrap"):
			mode = v
		case style == "" && (v == "auto" || v == "balance" || v == "stable" || v == "pretty"):
			style = v
		default:
			return nil, false
		}
	}
	return []string{or(mode, "wrap"), or(style, "auto")}, true
}

var fontStretches = map[string]bool{
	"ultra-condensed": true, "extra-condensed": true, "condensed": true, "semi-condensed": true,
	"semi-expanded": true, "expanded": true, "extra-expanded": true, "ultra-expanded": true,
}

var fontSizes = map[string]bool{
	"xx-small": true, "x-small": true, "small": true, "medium": true, "large": true,
	"x-large": true, "xx-large": true, "xxx-large": true, "larger": true, "smaller": true,
}

func expandFont(value string) ([]string, bool) {
	nodes, ok := components(value)
	if !ok {
		return nil, false
	}

	var style, variant, weight, stretch, size, lineHeight string
	i := 0
	for ; i < len(nodes) && size == ""; i++ {
		n := nodes[i]
		text := Generate(n)
		lower := strings.ToLower(text)
		switch {
		case n.Kind == NodeDimension || n.Kind == NodePercentage || isMath(n) ||
			(n.Kind == NodeIdentifier && fontSizes[lower]):
			size = text
		case lower == "normal":
		case style == "" && (lower == "italic" || lower == "oblique"):
			style = text
			if lower == "oblique" && i+1 < len(nodes) && typePredicates["angle"](nodes[i+1]) && nodes[i+1].Kind == NodeDimension {
				style += " " + Generate(nodes[i+1])
				i++
			}
		case variant == "" && lower == "small-caps":
			variant = text
		case weight == "" && (lower == "bold" || lower == "bolder" || lower == "lighter" || n.Kind == NodeNumber):
			weight = text
		case stretch == "" && n.Kind == NodeIdentifier && fontStretches[lower]:
			stretch = text
		default:
			return nil, false
		}
	}
	if size == "" {
		return nil, false
	}
	if i < len(nodes) && nodes[i].IsOperator("/") {
		if i+1 >= len(nodes) {
			return nil, false
		}
		lineHeight = Generate(nodes[i+1])
		i += 2
	}
	family := generateNodes(nodes[i:])
	if family == "" {
		return nil, false
	}
	return []string{
		or(style, "normal"), or(variant, "normal"), or(weight, "normal"), or(stretch, "normal"),
		size, or(lineHeight, "normal"), family,
	}, true
}
