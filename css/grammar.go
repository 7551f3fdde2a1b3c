package css

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// grammar matches a run of value nodes. Matching is backtracking: match calls
// k with every position the grammar can end at until k returns true.
type grammar interface {
	match(toks []*Node, i int, k func(int) bool) bool
}

type (
	gKeyword  struct{ word string }
	gOperator struct{ op string }
	gType     struct{ name string }
	gFunction struct {
		name  string
		inner grammar
	}
	gSeq    struct{ items []grammar }
	gAlt    struct{ items []grammar }
	gAnyOf  struct{ items []grammar } // a || b
	gAllOf  struct{ items []grammar } // a && b
	gRepeat struct {
		item     grammar
		min, max int // max < 0 means unbounded
		comma    bool
	}
)

func (g gKeyword) match(toks []*Node, i int, k func(int) bool) bool {
	return i < len(toks) && toks[i].IsIdent(g.word) && k(i+1)
}

func (g gOperator) match(toks []*Node, i int, k func(int) bool) bool {
	return i < len(toks) && toks[i].IsOperator(g.op) && k(i+1)
}

func (g gType) match(toks []*Node, i int, k func(int) bool) bool {
	if sub, ok := compiledNamed[g.name]; ok {
		return sub.match(toks, i, k)
	}
	if i >= len(toks) {
		return false
	}
	pred, ok := typePredicates[g.name]
	return ok && pred(toks[i]) && k(i+1)
}

func (g gFunction) match(toks []*Node, i int, k func(int) bool) bool {
	if i >= len(toks) || toks[i].FunctionName() != g.name {
		return false
	}
	args := toks[i].Significant()
	return matchAll(g.inner, args) && k(i+1)
}

func (g gSeq) match(toks []*Node, i int, k func(int) bool) bool {
	var step func(n, pos int) bool
	step = func(n, pos int) bool {
		if n == len(g.items) {
			return k(pos)
		}
		return g.items[n].match(toks, pos, func(end int) bool {
			return step(n+1, end)
		})
	}
	return step(0, i)
}

func (g gAlt) match(toks []*Node, i int, k func(int) bool) bool {
	for _, item := range g.items {
		if item.match(toks, i, k) {
			return true
		}
	}
	return false
}

func (g gAnyOf) match(toks []*Node, i int, k func(int) bool) bool {
	return matchUnordered(g.items, false, toks, i, k)
}

func (g gAllOf) match(toks []*Node, i int, k func(int) bool) bool {
	return matchUnordered(g.items, true, toks, i, k)
}

// matchUnordered matches items in any order, each at most once. When all is
// set every item has to match, otherwise at least one.
func matchUnordered(items []grammar, all bool, toks []*Node, i int, k func(int) bool) bool {
	used := make([]bool, len(items))
	var step func(pos, count int) bool
	step = func(pos, count int) bool {
		for j, item := range items {
			if used[j] {
				continue
			}
			used[j] = true
			ok := item.match(toks, pos, func(end int) bool {
				if end == pos && !all {
					return false
				}
				return step(end, count+1)
			})
			used[j] = false
			if ok {
				return true
			}
		}
		if all {
			return count == len(items) && k(pos)
		}
		return count > 0 && k(pos)
	}
	return step(i, 0)
}

func (g gRepeat) match(toks []*Node, i int, k func(int) bool) bool {
	var step func(n, pos int) bool
	step = func(n, pos int) bool {
		if g.max < 0 || n < g.max {
			start := pos
			if g.comma && n > 0 {
				if start >= len(toks) || !toks[start].IsOperator(",") {
					start = -1
				} else {
					start++
				}
			}
			if start >= 0 && g.item.match(toks, start, func(end int) bool {
				if end == pos {
					// no progress, further repetitions cannot help
					return false
				}
				return step(n+1, end)
			}) {
				return true
			}
		}
		return n >= g.min && k(pos)
	}
	return step(0, i)
}

// matchAll reports whether g matches the whole of toks.
func matchAll(g grammar, toks []*Node) bool {
	return g.match(toks, 0, func(end int) bool { return end == len(toks) })
}

var grammarToken = regexp.MustCompile(`^(\[|\]|<[a-z-]+>|-?[a-z][a-z0-9-]*\(|\)|-?[a-z][a-z0-9-]*|,|/|\|\||\||&&)((?:[?*+#]|\{\d+(?:,\d*)?\})*)$`)

type grammarTok struct {
	text string
	mult string
}

type grammarParser struct {
	toks []grammarTok
	pos  int
}

// compileGrammar compiles CSS value definition syntax into a matcher.
func compileGrammar(def string) (grammar, error) {
	p := &grammarParser{}
	for _, f := range strings.Fields(def) {
		m := grammarToken.FindStringSubmatch(f)
		if m == nil {
			return nil, fmt.Errorf("bad grammar token %q in %q", f, def)
		}
		p.toks = append(p.toks, grammarTok{text: m[1], mult: m[2]})
	}
	g, err := p.alternatives()
	if err != nil {
		return nil, fmt.Errorf("%w in %q", err, def)
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("unexpected %q in %q", p.toks[p.pos].text, def)
	}
	return g, nil
}

func mustCompileGrammar(def string) grammar {
	g, err := compileGrammar(def)
	if err != nil {
		panic(err)
	}
	return g
}

func (p *grammarParser) peek() string {
	if p.pos < len(p.toks) {
		return p.toks[p.pos].text
	}
	return ""
}

// alternatives: a | b (lowest precedence)
func (p *grammarParser) alternatives() (grammar, error) {
	return p.combined("|", p.anyOf, func(items []grammar) grammar { return gAlt{items} })
}

// anyOf: a || b
func (p *grammarParser) anyOf() (grammar, error) {
	return p.combined("||", p.allOf, func(items []grammar) grammar { return gAnyOf{items} })
}

// allOf: a && b
func (p *grammarParser) allOf() (grammar, error) {
	return p.combined("&&", p.sequence, func(items []grammar) grammar { return gAllOf{items} })
}

func (p *grammarParser) combined(sep string, next func() (grammar, error), build func([]grammar) grammar) (grammar, error) {
	first, err := next()
	if err != nil {
		return nil, err
	}
	items := []grammar{first}
	for p.peek() == sep {
		p.pos++
		item, err := next()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if len(items) == 1 {
		return first, nil
	}
	return build(items), nil
}

// sequence: juxtaposed terms (highest precedence)
func (p *grammarParser) sequence() (grammar, error) {
	var items []grammar
	for {
		switch p.peek() {
		case "", "|", "||", "&&", "]", ")":
			switch len(items) {
			case 0:
				return nil, fmt.Errorf("empty group")
			case 1:
				return items[0], nil
			}
			return gSeq{items}, nil
		}
		item, err := p.term()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}

func (p *grammarParser) term() (grammar, error) {
	tok := p.toks[p.pos]
	p.pos++

	var g grammar
	switch {
	case tok.text == "[":
		inner, err := p.alternatives()
		if err != nil {
			return nil, err
		}
		if p.peek() != "]" {
			return nil, fmt.Errorf("missing ]")
		}
		tok.mult = p.toks[p.pos].mult
		p.pos++
		g = inner
	case strings.HasSuffix(tok.text, "("):
		inner, err := p.alternatives()
		if err != nil {
			return nil, err
		}
		if p.peek() != ")" {
			return nil, fmt.Errorf("missing )")
		}
		tok.mult = p.toks[p.pos].mult
		p.pos++
		g = gFunction{name: strings.TrimSuffix(tok.text, "("), inner: inner}
	case strings.HasPrefix(tok.text, "<"):
		g = gType{name: strings.Trim(tok.text, "<>")}
	case tok.text == "," || tok.text == "/":
		g = gOperator{op: tok.text}
	default:
		g = gKeyword{word: tok.text}
	}
	return applyMultiplier(g, tok.mult)
}

var braces = regexp.MustCompile(`^\{(\d+)(?:(,)(\d*))?\}`)

func applyMultiplier(g grammar, mult string) (grammar, error) {
	for mult != "" {
		switch mult[0] {
		case '?':
			g, mult = gRepeat{item: g, min: 0, max: 1}, mult[1:]
		case '*':
			g, mult = gRepeat{item: g, min: 0, max: -1}, mult[1:]
		case '+':
			g, mult = gRepeat{item: g, min: 1, max: -1}, mult[1:]
		case '#':
			g, mult = gRepeat{item: g, min: 1, max: -1, comma: true}, mult[1:]
		case '{':
			m := braces.FindStringSubmatch(mult)
			if m == nil {
				return nil, fmt.Errorf("bad multiplier %q", mult)
			}
			lo, _ := strconv.Atoi(m[1])
			hi := lo
			if m[2] != "" {
				hi = -1
				if m[3] != "" {
					hi, _ = strconv.Atoi(m[3])
				}
			}
			g, mult = gRepeat{item: g, min: lo, max: hi}, mult[len(m[0]):]
		default:
			return nil, fmt.Errorf("bad multiplier %q", mult)
		}
	}
	return g, nil
}

var mathFunctions = map[string]bool{
	"calc": true, "min": true, "max": true, "clamp": true, "round": true, "mod": true, "rem": true,
	"abs": true, "sign": true, "sin": true, "cos": true, "tan": true, "asin": true, "acos": true,
	"atan": true, "atan2": true, "pow": true, "sqrt": true, "hypot": true, "log": true, "exp": true,
}

var imageFunctions = map[string]bool{
	"url": true, "image": true, "image-set": true, "-webkit-image-set": true, "cross-fade": true, "element": true,
	"linear-gradient": true, "radial-gradient": true, "conic-gradient": true,
	"repeating-linear-gradient": true, "repeating-radial-gradient": true, "repeating-conic-gradient": true,
	"-webkit-linear-gradient": true, "-webkit-radial-gradient": true,
}

var easingKeywords = map[string]bool{
	"linear": true, "ease": true, "ease-in": true, "ease-out": true, "ease-in-out": true,
	"step-start": true, "step-end": true,
}

func isMath(n *Node) bool {
	return mathFunctions[n.FunctionName()]
}

func isZero(n *Node) bool {
	if n.Kind != NodeNumber {
		return false
	}
	v, err := strconv.ParseFloat(n.Value, 64)
	return err == nil && v == 0
}

func dimensionIn(group string) func(*Node) bool {
	return func(n *Node) bool {
		return n.Kind == NodeDimension && unitIn(n.Unit, group) || isMath(n)
	}
}

var typePredicates map[string]func(*Node) bool

func init() {
	isLength := func(n *Node) bool {
		return n.Kind == NodeDimension && unitIn(n.Unit, "length") || isZero(n) || isMath(n)
	}
	isPercentage := func(n *Node) bool {
		return n.Kind == NodePercentage || isMath(n)
	}
	typePredicates = map[string]func(*Node) bool{
		"length":     isLength,
		"percentage": isPercentage,
		"length-percentage": func(n *Node) bool {
			return isLength(n) || isPercentage(n)
		},
		"number": func(n *Node) bool {
			return n.Kind == NodeNumber || isMath(n)
		},
		"integer": func(n *Node) bool {
			if n.Kind == NodeNumber {
				_, err := strconv.ParseInt(strings.TrimPrefix(n.Value, "+"), 10, 64)
				return err == nil
			}
			return isMath(n)
		},
		"angle": func(n *Node) bool {
			return n.Kind == NodeDimension && unitIn(n.Unit, "angle") || isZero(n) || isMath(n)
		},
		"time":       dimensionIn("time"),
		"frequency":  dimensionIn("frequency"),
		"resolution": dimensionIn("resolution"),
		"flex":       dimensionIn("flex"),
		"color": func(n *Node) bool {
			switch n.Kind {
			case NodeHash:
				_, ok := parseHexColor(n.Value)
				return ok
			case NodeIdentifier:
				return isNamedColor(n.Value)
			case NodeFunction:
				return isColorFunction(n.Value)
			}
			return false
		},
		"image": func(n *Node) bool {
			return n.Kind == NodeURL || imageFunctions[n.FunctionName()]
		},
		"url": func(n *Node) bool {
			return n.Kind == NodeURL || n.FunctionName() == "url" || n.FunctionName() == "src"
		},
		"string": func(n *Node) bool {
			return n.Kind == NodeString
		},
		"ident": func(n *Node) bool {
			return n.Kind == NodeIdentifier
		},
		"custom-ident": func(n *Node) bool {
			return n.Kind == NodeIdentifier && !isCSSWide(n.Value) && !n.IsIdent("default")
		},
		"easing-function": func(n *Node) bool {
			switch n.Kind {
			case NodeIdentifier:
				return easingKeywords[strings.ToLower(n.Value)]
			case NodeFunction:
				switch n.FunctionName() {
				case "cubic-bezier", "steps", "linear":
					return true
				}
			}
			return false
		},
		"transform-function": func(n *Node) bool {
			_, ok := transformSignatures[n.FunctionName()]
			return ok
		},
		"filter-function": func(n *Node) bool {
			_, ok := filterSignatures[n.FunctionName()]
			return ok || n.Kind == NodeURL
		},
	}
}

var (
	compiledNamed      = map[string]grammar{}
	compiledProperties = map[string]grammar{}
)

func init() {
	for name, def := range namedGrammars {
		compiledNamed[name] = mustCompileGrammar(def)
	}
	for property, def := range PropertyGrammars {
		compiledProperties[property] = mustCompileGrammar(def)
	}
}

// MatchGrammar matches value nodes against grammar of a hyphenated property.
// known is false when there is no grammar for the property.
func MatchGrammar(property string, nodes []*Node) (matched, known bool) {
	g, ok := compiledProperties[property]
	if !ok {
		return false, false
	}
	return matchAll(g, nodes), true
}
