package css

import (
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBA is a resolved sRGB color with alpha in 0..1.
type RGBA struct {
	R, G, B uint8
	A       float64
}

// namedColors maps CSS named colors to 0xRRGGBB.
var namedColors = map[string]uint32{
	"black": 0x000000,
	"silver": 0xc0c0c0,
	"gray": 0x808080,
	"grey": 0x808080,
	"white": 0xffffff,
	"maroon": 0x800000,
	"red": 0xff0000,
	"purple": 0x800080,
	"fuchsia": 0xff00ff,
	"green": 0x008000,
	"lime": 0x00ff00,
	"olive": 0x808000,
	"yellow": 0xffff00,
	"navy": 0x000080,
	"blue": 0x0000ff,
	"teal": 0x008080,
	"aqua": 0x00ffff,
	"aliceblue": 0xf0f8ff,
	"antiquewhite": 0xfaebd7,
	"aquamarine": 0x7fffd4,
	"azure": 0xf0ffff,
	"beige": 0xf5f5dc,
	"bisque": 0xffe4c4,
	"blanchedalmond": 0xffebcd,
	"blueviolet": 0x8a2be2,
	"brown": 0xa52a2a,
	"burlywood": 0xdeb887,
	"cadetblue": 0x5f9ea0,
	"chartreuse": 0x7fff00,
	"chocolate": 0xd2691e,
	"coral": 0xff7f50,
	"cornflowerblue": 0x6495ed,
	"cornsilk": 0xfff8dc,
	"crimson": 0xdc143c,
	"cyan": 0x00ffff,
	"darkblue": 0x00008b,
	"darkcyan": 0x008b8b,
	"darkgoldenrod": 0xb8860b,
	"darkgray": 0xa9a9a9,
	"darkgrey": 0xa9a9a9,
	"darkgreen": 0x006400,
	"darkkhaki": 0xbdb76b,
	"darkmagenta": 0x8b008b,
	"darkolivegreen": 0x556b2f,
	"darkorange": 0xff8c00,
	"darkorchid": 0x9932cc,
	"darkred": 0x8b0000,
	"darksalmon": 0xe9967a,
	"darkseagreen": 0x8fbc8f,
	"darkslateblue": 0x483d8b,
	"darkslategray": 0x2f4f4f,
	"darkslategrey": 0x2f4f4f,
	"darkturquoise": 0x00ced1,
	"darkviolet": 0x9400d3,
	"deeppink": 0xff1493,
	"deepskyblue": 0x00bfff,
	"dimgray": 0x696969,
	"dimgrey": 0x696969,
	"dodgerblue": 0x1e90ff,
	"firebrick": 0xb22222,
	"floralwhite": 0xfffaf0,
	"forestgreen": 0x228b22,
	"gainsboro": 0xdcdcdc,
	"ghostwhite": 0xf8f8ff,
	"gold": 0xffd700,
	"goldenrod": 0xdaa520,
	"greenyellow": 0xadff2f,
	"honeydew": 0xf0fff0,
	"hotpink": 0xff69b4,
	"indianred": 0xcd5c5c,
	"indigo": 0x4b0082,
	"ivory": 0xfffff0,
	"khaki": 0xf0e68c,
	"lavender": 0xe6e6fa,
	"lavenderblush": 0xfff0f5,
	"lawngreen": 0x7cfc00,
	"lemonchiffon": 0xfffacd,
	"lightblue": 0xadd8e6,
	"lightcoral": 0xf08080,
	"lightcyan": 0xe0ffff,
	"lightgoldenrodyellow": 0xfafad2,
	"lightgray": 0xd3d3d3,
	"lightgrey": 0xd3d3d3,
	"lightgreen": 0x90ee90,
	"lightpink": 0xffb6c1,
	"lightsalmon": 0xffa07a,
	"lightseagreen": 0x20b2aa,
	"lightskyblue": 0x87cefa,
	"lightslategray": 0x778899,
	"lightslategrey": 0x778899,
	"lightsteelblue": 0xb0c4de,
	"lightyellow": 0xffffe0,
	"limegreen": 0x32cd32,
	"linen": 0xfaf0e6,
	"magenta": 0xff00ff,
	"mediumaquamarine": 0x66cdaa,
	"mediumblue": 0x0000cd,
	"mediumorchid": 0xba55d3,
	"mediumpurple": 0x9370db,
	"mediumseagreen": 0x3cb371,
	"mediumslateblue": 0x7b68ee,
	"mediumspringgreen": 0x00fa9a,
	"mediumturquoise": 0x48d1cc,
	"mediumvioletred": 0xc71585,
	"midnightblue": 0x191970,
	"mintcream": 0xf5fffa,
	"mistyrose": 0xffe4e1,
	"moccasin": 0xffe4b5,
	"navajowhite": 0xffdead,
	"oldlace": 0xfdf5e6,
	"olivedrab": 0x6b8e23,
	"orange": 0xffa500,
	"orangered": 0xff4500,
	"orchid": 0xda70d6,
	"palegoldenrod": 0xeee8aa,
	"palegreen": 0x98fb98,
	"paleturquoise": 0xafeeee,
	"palevioletred": 0xdb7093,
	"papayawhip": 0xffefd5,
	"peachpuff": 0xffdab9,
	"peru": 0xcd853f,
	"pink": 0xffc0cb,
	"plum": 0xdda0dd,
	"powderblue": 0xb0e0e6,
	"rebeccapurple": 0x663399,
	"rosybrown": 0xbc8f8f,
	"royalblue": 0x4169e1,
	"saddlebrown": 0x8b4513,
	"salmon": 0xfa8072,
	"sandybrown": 0xf4a460,
	"seagreen": 0x2e8b57,
	"seashell": 0xfff5ee,
	"sienna": 0xa0522d,
	"skyblue": 0x87ceeb,
	"slateblue": 0x6a5acd,
	"slategray": 0x708090,
	"slategrey": 0x708090,
	"snow": 0xfffafa,
	"springgreen": 0x00ff7f,
	"steelblue": 0x4682b4,
	"tan": 0xd2b48c,
	"thistle": 0xd8bfd8,
	"tomato": 0xff6347,
	"turquoise": 0x40e0d0,
	"violet": 0xee82ee,
	"wheat": 0xf5deb3,
	"whitesmoke": 0xf5f5f5,
	"yellowgreen": 0x9acd32,
}

// ParseColor resolves a CSS color value to RGBA. Only colors which can be
// resolved without context are supported: currentcolor, system colors and
// color-mix() are not.
func ParseColor(text string) (RGBA, bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return RGBA{}, false
	}
	if s == "transparent" {
		return RGBA{}, true
	}
	if rgb, ok := namedColors[s]; ok {
		return RGBA{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb), A: 1}, true
	}
	if s[0] == '#' {
		return parseHexColor(s[1:])
	}

	root, err := ParseValue(s)
	if err != nil {
		return RGBA{}, false
	}
	nodes := root.Significant()
	if len(nodes) != 1 || nodes[0].Kind != NodeFunction {
		return RGBA{}, false
	}
	return parseColorFunction(nodes[0])
}

func parseHexColor(hex string) (RGBA, bool) {
	for i := 0; i < len(hex); i++ {
		c := hex[i]
		if !isDigit(c) && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return RGBA{}, false
		}
	}

	alpha := 1.0
	switch len(hex) {
	case 4:
		a, _ := strconv.ParseUint(strings.Repeat(hex[3:], 2), 16, 8)
		alpha = float64(a) / 255
		hex = hex[:3]
	case 8:
		a, _ := strconv.ParseUint(hex[6:], 16, 8)
		alpha = float64(a) / 255
		hex = hex[:6]
	case 3, 6:
	default:
		return RGBA{}, false
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return RGBA{}, false
	}
	return fromColorful(c, alpha), true
}

func fromColorful(c colorful.Color, alpha float64) RGBA {
	r, g, b := c.Clamped().RGB255()
	return RGBA{R: r, G: g, B: b, A: roundAlpha(alpha)}
}

// roundAlpha clamps alpha to 0..1 and drops float noise.
func roundAlpha(a float64) float64 {
	a = math.Max(0, math.Min(1, a))
	return math.Round(a*1000) / 1000
}

// colorArgs splits color function arguments into channel components and an
// optional alpha. Both legacy comma syntax and modern space syntax with
// "/ alpha" are accepted.
func colorArgs(fn *Node) (channels []*Node, alpha *Node, ok bool) {
	args := fn.Significant()
	if len(args) == 0 {
		return nil, nil, false
	}

	hasComma := false
	for _, a := range args {
		if a.IsOperator(",") {
			hasComma = true
			break
		}
	}

	if hasComma {
		for _, seg := range splitOnCommas(args) {
			if len(seg) != 1 {
				return nil, nil, false
			}
			channels = append(channels, seg[0])
		}
		switch len(channels) {
		case 3:
		case 4:
			alpha, channels = channels[3], channels[:3]
		default:
			return nil, nil, false
		}
		return channels, alpha, true
	}

	for i, a := range args {
		if a.IsOperator("/") {
			if i != 3 || len(args) != 5 {
				return nil, nil, false
			}
			return args[:3], args[4], true
		}
	}
	if len(args) != 3 {
		return nil, nil, false
	}
	return args, nil, true
}

// component converts a color channel node to a number. Percentages are
// scaled by pct (value of 100%), "none" is zero.
func component(n *Node, pct float64) (float64, bool) {
	switch n.Kind {
	case NodeNumber:
		v, err := strconv.ParseFloat(n.Value, 64)
		return v, err == nil
	case NodePercentage:
		v, err := strconv.ParseFloat(n.Value, 64)
		return v / 100 * pct, err == nil
	case NodeIdentifier:
		return 0, n.IsIdent("none")
	}
	return 0, false
}

// hue converts a hue node to degrees in 0..360.
func hue(n *Node) (float64, bool) {
	var deg float64
	switch n.Kind {
	case NodeNumber:
		v, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return 0, false
		}
		deg = v
	case NodeDimension:
		v, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return 0, false
		}
		switch strings.ToLower(n.Unit) {
		case "deg":
			deg = v
		case "rad":
			deg = v * 180 / math.Pi
		case "grad":
			deg = v * 0.9
		case "turn":
			deg = v * 360
		default:
			return 0, false
		}
	case NodeIdentifier:
		if !n.IsIdent("none") {
			return 0, false
		}
	default:
		return 0, false
	}
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg, true
}

func parseColorFunction(fn *Node) (RGBA, bool) {
	channels, alphaNode, ok := colorArgs(fn)
	if !ok {
		return RGBA{}, false
	}

	alpha := 1.0
	if alphaNode != nil {
		if alpha, ok = component(alphaNode, 1); !ok {
			return RGBA{}, false
		}
	}

	var c colorful.Color
	switch fn.FunctionName() {
	case "rgb", "rgba":
		var v [3]float64
		for i, ch := range channels {
			if v[i], ok = component(ch, 255); !ok {
				return RGBA{}, false
			}
		}
		c = colorful.Color{R: v[0] / 255, G: v[1] / 255, B: v[2] / 255}

	case "hsl", "hsla":
		h, ok1 := hue(channels[0])
		s, ok2 := component(channels[1], 1)
		l, ok3 := component(channels[2], 1)
		if !ok1 || !ok2 || !ok3 {
			return RGBA{}, false
		}
		// bare numbers are percentages in modern syntax
		if channels[1].Kind == NodeNumber {
			s /= 100
		}
		if channels[2].Kind == NodeNumber {
			l /= 100
		}
		c = colorful.Hsl(h, clamp01(s), clamp01(l))

	case "hwb":
		h, ok1 := hue(channels[0])
		w, ok2 := component(channels[1], 1)
		b, ok3 := component(channels[2], 1)
		if !ok1 || !ok2 || !ok3 {
			return RGBA{}, false
		}
		if channels[1].Kind == NodeNumber {
			w /= 100
		}
		if channels[2].Kind == NodeNumber {
			b /= 100
		}
		w, b = clamp01(w), clamp01(b)
		if w+b >= 1 {
			gray := w / (w + b)
			c = colorful.Color{R: gray, G: gray, B: gray}
		} else {
			c = colorful.Hsv(h, 1-w/(1-b), 1-b)
		}

	case "lab":
		l, ok1 := component(channels[0], 100)
		a, ok2 := component(channels[1], 125)
		b, ok3 := component(channels[2], 125)
		if !ok1 || !ok2 || !ok3 {
			return RGBA{}, false
		}
		c = labD50(l, a, b)

	case "lch":
		l, ok1 := component(channels[0], 100)
		ch, ok2 := component(channels[1], 150)
		h, ok3 := hue(channels[2])
		if !ok1 || !ok2 || !ok3 {
			return RGBA{}, false
		}
		rad := h * math.Pi / 180
		c = labD50(l, ch*math.Cos(rad), ch*math.Sin(rad))

	case "oklab":
		l, ok1 := component(channels[0], 1)
		a, ok2 := component(channels[1], 0.4)
		b, ok3 := component(channels[2], 0.4)
		if !ok1 || !ok2 || !ok3 {
			return RGBA{}, false
		}
		c = colorful.OkLab(l, a, b)

	case "oklch":
		l, ok1 := component(channels[0], 1)
		ch, ok2 := component(channels[1], 0.4)
		h, ok3 := hue(channels[2])
		if !ok1 || !ok2 || !ok3 {
			return RGBA{}, false
		}
		c = colorful.OkLch(l, ch, h)

	default:
		return RGBA{}, false
	}
	return fromColorful(c, alpha), true
}

// bradfordD50ToD65 adapts XYZ from D50 to D65 white.
var bradfordD50ToD65 = [3][3]float64{
	{0.955473421488075, -0.02309845494876471, 0.06325924320057072},
	{-0.0283697093338637, 1.0099953980813041, 0.021041441191917323},
	{0.012314014864481998, -0.020507649298898964, 1.330365926242124},
}

// labD50 converts CIE Lab (L in 0..100) to sRGB. CSS lab() and lch() are
// relative to D50 while sRGB is D65.
func labD50(l, a, b float64) colorful.Color {
	x, y, z := colorful.LabToXyzWhiteRef(l/100, a/100, b/100, colorful.D50)
	m := bradfordD50ToD65
	return colorful.Xyz(
		m[0][0]*x+m[0][1]*y+m[0][2]*z,
		m[1][0]*x+m[1][1]*y+m[1][2]*z,
		m[2][0]*x+m[2][1]*y+m[2][2]*z,
	)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// isColorFunction reports whether name is a CSS color function, including
// the ones ParseColor cannot resolve.
func isColorFunction(name string) bool {
	switch strings.ToLower(name) {
	case "rgb", "rgba", "hsl", "hsla", "hwb", "lab", "lch", "oklab", "oklch",
		"color", "color-mix", "light-dark", "device-cmyk":
		return true
	}
	return false
}

// isNamedColor reports whether ident is a color keyword.
func isNamedColor(ident string) bool {
	s := strings.ToLower(ident)
	_, ok := namedColors[s]
	return ok || s == "transparent" || s == "currentcolor"
}
