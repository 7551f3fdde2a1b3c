package css

import (
	"strings"
)

var vendorPrefixes = []string{"-webkit-", "-moz-", "-ms-", "-o-"}

// keptPrefixed lists vendor prefixed properties which have no standard
// equivalent and are kept as is.
var keptPrefixed = map[string]bool{
	"-webkit-line-clamp":          true,
	"-webkit-box-orient":          true,
	"-webkit-text-stroke":         true,
	"-webkit-text-stroke-width":   true,
	"-webkit-text-stroke-color":   true,
	"-webkit-text-fill-color":     true,
	"-webkit-font-smoothing":      true,
	"-moz-osx-font-smoothing":     true,
	"-webkit-tap-highlight-color": true,
	"-webkit-touch-callout":       true,
}

// UnprefixProperty strips vendor prefix from a hyphenated property name
// unless the prefixed property is on the keep list.
func UnprefixProperty(property string) string {
	p := strings.ToLower(strings.TrimSpace(property))
	if !strings.HasPrefix(p, "-") || strings.HasPrefix(p, "--") || keptPrefixed[p] {
		return p
	}
	for _, prefix := range vendorPrefixes {
		if strings.HasPrefix(p, prefix) {
			return p[len(prefix):]
		}
	}
	return p
}

// CamelCaseProperty converts hyphenated property name to camel case:
// "background-color" becomes "backgroundColor", "-webkit-line-clamp" becomes
// "WebkitLineClamp" and "-ms-grid" becomes "msGrid".
func CamelCaseProperty(property string) string {
	p := strings.TrimSpace(property)
	if strings.HasPrefix(p, "--") || !strings.Contains(p, "-") {
		return p
	}
	if strings.HasPrefix(p, "-ms-") {
		p = p[1:]
	}

	var sb strings.Builder
	sb.Grow(len(p))
	upper := false
	for i := 0; i < len(p); i++ {
		c := p[i]
		if c == '-' {
			upper = true
			continue
		}
		if upper && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		upper = false
		sb.WriteByte(c)
	}
	return sb.String()
}

// HyphenateProperty is the reverse of CamelCaseProperty. Already hyphenated
// names are returned lowercased.
func HyphenateProperty(property string) string {
	p := strings.TrimSpace(property)
	if strings.HasPrefix(p, "--") {
		return p
	}
	if strings.HasPrefix(p, "ms") && len(p) > 2 && p[2] >= 'A' && p[2] <= 'Z' {
		p = "M" + p[1:]
	}

	var sb strings.Builder
	sb.Grow(len(p) + 4)
	for i := 0; i < len(p); i++ {
		c := p[i]
		if c >= 'A' && c <= 'Z' {
			sb.WriteByte('-')
			c += 'a' - 'A'
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
