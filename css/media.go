package css

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Breakpoint is a media query reduced to pixel width bounds.
type Breakpoint struct {
	MinWidth *float64
	MaxWidth *float64
}

// Key returns string usable for grouping declarations by breakpoint. Empty
// breakpoint has empty key.
func (b *Breakpoint) Key() string {
	if b.IsEmpty() {
		return ""
	}
	bound := func(v *float64) string {
		if v == nil {
			return "-"
		}
		return formatNumber(*v)
	}
	return fmt.Sprintf("%s-%s", bound(b.MinWidth), bound(b.MaxWidth))
}

// IsEmpty reports whether breakpoint has no bounds.
func (b *Breakpoint) IsEmpty() bool {
	return b == nil || (b.MinWidth == nil && b.MaxWidth == nil)
}

// ResolveMediaQuery reduces a media query prelude to a breakpoint. Only
// "screen", "all", "only" and "and" are allowed besides a single min-width or
// max-width feature in pixels. Anything else reports false.
func ResolveMediaQuery(text string) (Breakpoint, bool) {
	var (
		bp       Breakpoint
		features int
	)

	l := css.NewLexer(parse.NewInputString(text))
	next := func() (css.TokenType, []byte) {
		for {
			tt, data := l.Next()
			if tt != css.WhitespaceToken && tt != css.CommentToken {
				return tt, data
			}
		}
	}

	for {
		tt, data := next()
		switch tt {
		case css.ErrorToken:
			if err := l.Err(); err != nil && !errors.Is(err, io.EOF) {
				return Breakpoint{}, false
			}
			return bp, true

		case css.IdentToken:
			switch strings.ToLower(string(data)) {
			case "screen", "all", "only", "and":
			default:
				// print, not, other media types and connectives
				return Breakpoint{}, false
			}

		case css.LeftParenthesisToken:
			features++
			if features > 1 {
				return Breakpoint{}, false
			}
			name, ok := mediaFeature(next)
			if !ok {
				return Breakpoint{}, false
			}
			px, ok := mediaPixels(next)
			if !ok {
				return Breakpoint{}, false
			}
			if tt, _ := next(); tt != css.RightParenthesisToken {
				return Breakpoint{}, false
			}
			if name == "min-width" {
				bp.MinWidth = &px
			} else {
				bp.MaxWidth = &px
			}

		default:
			// commas, ranges, functions
			return Breakpoint{}, false
		}
	}
}

func mediaFeature(next func() (css.TokenType, []byte)) (string, bool) {
	tt, data := next()
	if tt != css.IdentToken {
		return "", false
	}
	name := strings.ToLower(string(data))
	if name != "min-width" && name != "max-width" {
		return "", false
	}
	if tt, _ := next(); tt != css.ColonToken {
		return "", false
	}
	return name, true
}

func mediaPixels(next func() (css.TokenType, []byte)) (float64, bool) {
	tt, data := next()
	switch tt {
	case css.DimensionToken:
		num, unit := splitDimension(string(data))
		if !strings.EqualFold(unit, "px") {
			return 0, false
		}
		v, err := strconv.ParseFloat(num, 64)
		return v, err == nil
	case css.NumberToken:
		v, err := strconv.ParseFloat(string(data), 64)
		return v, err == nil && v == 0
	}
	return 0, false
}
