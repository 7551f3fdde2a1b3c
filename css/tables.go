package css

import (
	"regexp"
	"slices"
	"strings"
)

// CSSWideKeywords are accepted by every property.
var CSSWideKeywords = []string{"inherit", "initial", "unset", "revert", "revert-layer"}

func isCSSWide(s string) bool {
	return slices.Contains(CSSWideKeywords, strings.ToLower(s))
}

// UnitGroups lists known units by dimension.
var UnitGroups = map[string][]string{
	"length": {
		"px", "em", "rem", "ex", "rex", "ch", "rch", "cap", "rcap", "ic", "ric", "lh", "rlh",
		"vw", "vh", "vi", "vb", "vmin", "vmax",
		"svw", "svh", "svi", "svb", "svmin", "svmax",
		"lvw", "lvh", "lvi", "lvb", "lvmin", "lvmax",
		"dvw", "dvh", "dvi", "dvb", "dvmin", "dvmax",
		"cqw", "cqh", "cqi", "cqb", "cqmin", "cqmax",
		"cm", "mm", "q", "in", "pt", "pc",
	},
	"angle":      {"deg", "grad", "rad", "turn"},
	"time":       {"s", "ms"},
	"frequency":  {"hz", "khz"},
	"resolution": {"dpi", "dpcm", "dppx", "x"},
	"flex":       {"fr"},
}

// unitGroup maps lowercased unit to its group name.
var unitGroup = func() map[string]string {
	m := make(map[string]string)
	for group, units := range UnitGroups {
		for _, u := range units {
			m[u] = group
		}
	}
	return m
}()

// KnownUnit returns canonical (lowercased) unit and true when unit is known.
func KnownUnit(unit string) (Unit, bool) {
	u := strings.ToLower(unit)
	_, ok := unitGroup[u]
	return Unit(u), ok
}

func unitIn(unit, group string) bool {
	return unitGroup[strings.ToLower(unit)] == group
}

// RepeatableProperties accept comma separated layers.
var RepeatableProperties = map[string]bool{
	"backgroundImage":          true,
	"backgroundPositionX":      true,
	"backgroundPositionY":      true,
	"backgroundSize":           true,
	"backgroundRepeat":         true,
	"backgroundAttachment":     true,
	"backgroundOrigin":         true,
	"backgroundClip":           true,
	"backgroundBlendMode":      true,
	"transitionProperty":       true,
	"transitionDuration":       true,
	"transitionDelay":          true,
	"transitionTimingFunction": true,
	"transitionBehavior":       true,
}

// Fixed keyword sets for properties which are validated without grammar.
var allowListed = map[string][]string{
	"white-space-collapse": {"collapse", "discard", "preserve", "preserve-breaks", "preserve-spaces", "break-spaces"},
	"text-wrap-mode":       {"wrap", "nowrap"},
	"text-wrap-style":      {"auto", "balance", "stable", "pretty"},
}

// transitionBehaviors are the only keywords transition-behavior accepts.
var transitionBehaviors = []string{"normal", "allow-discrete"}

const (
	alignPositions = "center | start | end | self-start | self-end | flex-start | flex-end"
	sizing         = "<length-percentage> | min-content | max-content | fit-content | fit-content( <length-percentage> ) | stretch"
	sideGrammar    = "auto | <length-percentage>"
)

// namedGrammars are reusable value definitions referenced as <name>.
var namedGrammars = map[string]string{
	"line-style":   "none | hidden | dotted | dashed | solid | double | groove | ridge | inset | outset",
	"line-width":   "<length> | thin | medium | thick",
	"position":     "[ left | center | right | top | bottom | <length-percentage> ]{1,4}",
	"bg-size":      "[ <length-percentage> | auto ]{1,2} | cover | contain",
	"repeat-style": "repeat-x | repeat-y | [ repeat | space | round | no-repeat ]{1,2}",
	"attachment":   "scroll | fixed | local",
	"box":          "border-box | padding-box | content-box",
	"blend-mode": "normal | multiply | screen | overlay | darken | lighten | color-dodge | color-burn | " +
		"hard-light | soft-light | difference | exclusion | hue | saturation | color | luminosity",
	"shadow":      "inset? && <length>{2,4} && <color>?",
	"text-shadow": "<length>{2,3} && <color>?",
	"ratio":       "<number> [ / <number> ]?",
	"baseline":    "[ first | last ]? baseline",
	"grid-line":   "auto | <custom-ident> | [ <integer> && <custom-ident>? ] | [ span && [ <integer> || <custom-ident> ] ]",
}

// PropertyGrammars maps hyphenated property names to CSS value definition
// syntax. Properties not listed are not validated.
var PropertyGrammars = map[string]string{
	"width":           "auto | " + sizing,
	"height":          "auto | " + sizing,
	"min-width":       "auto | " + sizing,
	"min-height":      "auto | " + sizing,
	"max-width":       "none | " + sizing,
	"max-height":      "none | " + sizing,
	"inline-size":     "auto | " + sizing,
	"block-size":      "auto | " + sizing,
	"min-inline-size": "auto | " + sizing,
	"min-block-size":  "auto | " + sizing,
	"max-inline-size": "none | " + sizing,
	"max-block-size":  "none | " + sizing,

	"margin-top":          sideGrammar,
	"margin-right":        sideGrammar,
	"margin-bottom":       sideGrammar,
	"margin-left":         sideGrammar,
	"margin-block-start":  sideGrammar,
	"margin-block-end":    sideGrammar,
	"margin-inline-start": sideGrammar,
	"margin-inline-end":   sideGrammar,

	"padding-top":          "<length-percentage>",
	"padding-right":        "<length-percentage>",
	"padding-bottom":       "<length-percentage>",
	"padding-left":         "<length-percentage>",
	"padding-block-start":  "<length-percentage>",
	"padding-block-end":    "<length-percentage>",
	"padding-inline-start": "<length-percentage>",
	"padding-inline-end":   "<length-percentage>",

	"top":                sideGrammar,
	"right":              sideGrammar,
	"bottom":             sideGrammar,
	"left":               sideGrammar,
	"inset-block-start":  sideGrammar,
	"inset-block-end":    sideGrammar,
	"inset-inline-start": sideGrammar,
	"inset-inline-end":   sideGrammar,

	"scroll-margin-top":     "<length>",
	"scroll-margin-right":   "<length>",
	"scroll-margin-bottom":  "<length>",
	"scroll-margin-left":    "<length>",
	"scroll-padding-top":    sideGrammar,
	"scroll-padding-right":  sideGrammar,
	"scroll-padding-bottom": sideGrammar,
	"scroll-padding-left":   sideGrammar,

	"border-top-width":    "<line-width>",
	"border-right-width":  "<line-width>",
	"border-bottom-width": "<line-width>",
	"border-left-width":   "<line-width>",
	"border-top-style":    "<line-style>",
	"border-right-style":  "<line-style>",
	"border-bottom-style": "<line-style>",
	"border-left-style":   "<line-style>",
	"border-top-color":    "<color>",
	"border-right-color":  "<color>",
	"border-bottom-color": "<color>",
	"border-left-color":   "<color>",

	"border-top-left-radius":     "<length-percentage>{1,2}",
	"border-top-right-radius":    "<length-percentage>{1,2}",
	"border-bottom-right-radius": "<length-percentage>{1,2}",
	"border-bottom-left-radius":  "<length-percentage>{1,2}",

	"outline-width":  "<line-width>",
	"outline-style":  "auto | <line-style>",
	"outline-color":  "auto | <color>",
	"outline-offset": "<length>",

	"color":                     "<color>",
	"background-color":          "<color>",
	"text-decoration-color":     "<color>",
	"column-rule-color":         "<color>",
	"caret-color":               "auto | <color>",
	"accent-color":              "auto | <color>",
	"-webkit-text-fill-color":   "<color>",
	"-webkit-text-stroke-color": "<color>",
	"-webkit-text-stroke-width": "<line-width>",

	"opacity":     "<number> | <percentage>",
	"z-index":     "auto | <integer>",
	"order":       "<integer>",
	"flex-grow":   "<number>",
	"flex-shrink": "<number>",
	"flex-basis":  "auto | content | " + sizing,

	"flex-direction": "row | row-reverse | column | column-reverse",
	"flex-wrap":      "nowrap | wrap | wrap-reverse",
	"display": "[ block | inline | run-in ] || [ flow | flow-root | table | flex | grid | ruby ] | list-item | " +
		"inline-block | inline-flex | inline-grid | inline-table | table-row-group | table-header-group | " +
		"table-footer-group | table-row | table-cell | table-column-group | table-column | table-caption | " +
		"contents | none | -webkit-box",
	"position":     "static | relative | absolute | sticky | fixed",
	"visibility":   "visible | hidden | collapse",
	"overflow-x":   "visible | hidden | clip | scroll | auto",
	"overflow-y":   "visible | hidden | clip | scroll | auto",
	"box-sizing":   "content-box | border-box",
	"float":        "left | right | none | inline-start | inline-end",
	"clear":        "none | left | right | both | inline-start | inline-end",
	"isolation":    "auto | isolate",
	"table-layout": "auto | fixed",
	"border-collapse": "collapse | separate",
	"cursor": "[ <url> [ <number> <number> ]? , ]* [ auto | default | none | context-menu | help | pointer | " +
		"progress | wait | cell | crosshair | text | vertical-text | alias | copy | move | no-drop | " +
		"not-allowed | grab | grabbing | e-resize | n-resize | ne-resize | nw-resize | s-resize | se-resize | " +
		"sw-resize | w-resize | ew-resize | ns-resize | nesw-resize | nwse-resize | col-resize | row-resize | " +
		"all-scroll | zoom-in | zoom-out ]",
	"pointer-events": "auto | none | visible-painted | visible-fill | visible-stroke | visible | painted | fill | stroke | all",
	"user-select":    "auto | text | none | contain | all",
	"resize":         "none | both | horizontal | vertical | block | inline",
	"will-change":    "auto | <custom-ident>#",

	"align-items":     "normal | stretch | <baseline> | [ unsafe | safe ]? [ " + alignPositions + " ]",
	"align-self":      "auto | normal | stretch | <baseline> | [ unsafe | safe ]? [ " + alignPositions + " ]",
	"justify-items":   "normal | stretch | legacy | <baseline> | [ unsafe | safe ]? [ " + alignPositions + " | left | right ] | legacy && [ left | right | center ]",
	"justify-self":    "auto | normal | stretch | <baseline> | [ unsafe | safe ]? [ " + alignPositions + " | left | right ]",
	"align-content":   "normal | <baseline> | space-between | space-around | space-evenly | stretch | [ unsafe | safe ]? [ center | start | end | flex-start | flex-end ]",
	"justify-content": "normal | space-between | space-around | space-evenly | stretch | [ unsafe | safe ]? [ center | start | end | flex-start | flex-end | left | right ]",
	"row-gap":         "normal | <length-percentage>",
	"column-gap":      "normal | <length-percentage>",

	"grid-row-start":    "<grid-line>",
	"grid-row-end":      "<grid-line>",
	"grid-column-start": "<grid-line>",
	"grid-column-end":   "<grid-line>",
	"grid-auto-flow":    "[ row | column ] || dense",

	"font-size":   "xx-small | x-small | small | medium | large | x-large | xx-large | xxx-large | larger | smaller | <length-percentage> | math",
	"font-weight": "normal | bold | bolder | lighter | <number>",
	"font-style":  "normal | italic | oblique <angle>?",
	"font-family": "[ <string> | <custom-ident>+ ]#",
	"font-variant-caps": "normal | small-caps | all-small-caps | petite-caps | all-petite-caps | unicase | titling-caps",
	"line-height":    "normal | <number> | <length-percentage>",
	"letter-spacing": "normal | <length-percentage>",
	"word-spacing":   "normal | <length-percentage>",
	"text-align":     "start | end | left | right | center | justify | match-parent | justify-all",
	"text-transform": "none | capitalize | uppercase | lowercase | full-width | full-size-kana",
	"text-indent":    "<length-percentage> && hanging? && each-line?",
	"text-overflow":  "[ clip | ellipsis | <string> ]{1,2}",
	"vertical-align": "baseline | sub | super | text-top | text-bottom | middle | top | bottom | <length-percentage>",
	"word-break":     "normal | break-all | keep-all | break-word | auto-phrase",
	"overflow-wrap":  "normal | break-word | anywhere",

	"text-decoration-line":      "none | [ underline || overline || line-through || blink ]",
	"text-decoration-style":     "solid | double | dotted | dashed | wavy",
	"text-decoration-thickness": "auto | from-font | <length-percentage>",
	"text-underline-offset":     "auto | <length-percentage>",

	"background-image":      "[ none | <image> ]#",
	"background-position-x": "[ center | [ left | right | x-start | x-end ] || <length-percentage> ]#",
	"background-position-y": "[ center | [ top | bottom | y-start | y-end ] || <length-percentage> ]#",
	"background-size":       "<bg-size>#",
	"background-repeat":     "<repeat-style>#",
	"background-attachment": "<attachment>#",
	"background-origin":     "<box>#",
	"background-clip":       "[ <box> | text | border-area ]#",
	"background-blend-mode": "<blend-mode>#",
	"mix-blend-mode":        "<blend-mode> | plus-darker | plus-lighter",

	"transition-property":        "none | [ all | <custom-ident> ]#",
	"transition-duration":        "<time>#",
	"transition-delay":           "<time>#",
	"transition-timing-function": "<easing-function>#",

	"transform":           "none | <transform-function>+",
	"translate":           "none | <length-percentage> [ <length-percentage> <length>? ]?",
	"rotate":              "none | <angle> | [ x | y | z | <number>{3} ] && <angle>",
	"scale":               "none | [ <number> | <percentage> ]{1,3}",
	"transform-origin":    "[ left | center | right | top | bottom | <length-percentage> ]{1,2} <length>?",
	"perspective":         "none | <length>",
	"backface-visibility": "visible | hidden",
	"filter":              "none | <filter-function>+",
	"backdrop-filter":     "none | <filter-function>+",
	"box-shadow":          "none | <shadow>#",
	"text-shadow":         "none | <text-shadow>#",

	"aspect-ratio":    "auto || <ratio>",
	"object-fit":      "fill | contain | cover | none | scale-down",
	"object-position": "<position>",

	"list-style-type":     "<custom-ident> | <string> | none",
	"list-style-position": "inside | outside",
	"list-style-image":    "none | <image>",

	"column-count":      "auto | <integer>",
	"column-width":      "auto | <length>",
	"column-rule-width": "<line-width>",
	"column-rule-style": "<line-style>",

	"scroll-behavior":    "auto | smooth",
	"-webkit-line-clamp": "none | <integer>",
	"-webkit-box-orient": "horizontal | vertical | inline-axis | block-axis",
}

// KeywordTables maps camel cased property names to keywords the property
// accepts. Tables are derived from property grammars: every literal keyword
// is collected, properties accepting <color> also get currentColor.
var KeywordTables = buildKeywordTables()

var (
	grammarLiteral   = regexp.MustCompile(`^-?[a-z][a-z0-9-]*$`)
	grammarReference = regexp.MustCompile(`<([a-z-]+)>`)
)

func grammarKeywords(grammar string, seen map[string]bool) []string {
	var out []string
	for _, tok := range strings.Fields(grammar) {
		tok = strings.Trim(tok, "[]?*+#")
		if i := strings.IndexByte(tok, '{'); i >= 0 {
			tok = tok[:i]
		}
		if grammarLiteral.MatchString(tok) {
			out = append(out, tok)
		}
	}
	for _, ref := range grammarReference.FindAllStringSubmatch(grammar, -1) {
		name := ref[1]
		if name == "color" {
			out = append(out, "currentColor")
			continue
		}
		if sub, ok := namedGrammars[name]; ok && !seen[name] {
			seen[name] = true
			out = append(out, grammarKeywords(sub, seen)...)
		}
	}
	return out
}

func buildKeywordTables() map[string][]string {
	tables := make(map[string][]string, len(PropertyGrammars))
	for property, grammar := range PropertyGrammars {
		var keywords []string
		for _, k := range grammarKeywords(grammar, map[string]bool{}) {
			if !slices.Contains(keywords, k) {
				keywords = append(keywords, k)
			}
		}
		if len(keywords) > 0 {
			tables[CamelCaseProperty(property)] = keywords
		}
	}
	for property, keywords := range allowListed {
		tables[CamelCaseProperty(property)] = keywords
	}
	tables["transitionBehavior"] = transitionBehaviors
	return tables
}

// lettersOnly lowercases s and drops everything except ASCII letters.
func lettersOnly(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
			sb.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			sb.WriteByte(c + 'a' - 'A')
		}
	}
	return sb.String()
}

// MatchKeyword looks ident up in the property keyword table. It returns the
// canonical keyword and whether a match was found; hasTable is false when
// the property has no keyword table at all.
func MatchKeyword(property, ident string) (keyword string, found, hasTable bool) {
	table, ok := KeywordTables[property]
	if !ok {
		return "", false, false
	}
	want := lettersOnly(ident)
	for _, k := range table {
		if lettersOnly(k) == want {
			return k, true, true
		}
	}
	return "", false, true
}
