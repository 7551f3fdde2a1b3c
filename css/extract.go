package css

import (
	"errors"
	"io"
	"slices"
	"strings"

	"github.com/elliotchance/orderedmap/v3"
	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// ParsedStyleDecl is a single classified longhand declaration.
type ParsedStyleDecl struct {
	Property   string // camel cased longhand
	Value      StyleValue
	Selector   string      // ".class" or "type", empty for inline styles
	State      string      // pseudo class or element, e.g. ":hover" or "::before"
	Breakpoint *Breakpoint // nil when declared outside of media rules
}

// Key identifies declaration for deduplication.
func (d ParsedStyleDecl) Key() string {
	return d.Breakpoint.Key() + ":" + d.Selector + ":" + d.State + ":" + d.Property
}

// Extractor walks stylesheets and produces deduplicated classified
// declarations.
type Extractor struct {
	log        *zap.Logger
	classifier *Classifier
	keep       map[string]bool
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithClassifier replaces the default classifier.
func WithClassifier(c *Classifier) ExtractorOption {
	return func(e *Extractor) {
		e.classifier = c
	}
}

// WithKeptPrefixes adds vendor prefixed properties which are not to be
// unprefixed.
func WithKeptPrefixes(properties ...string) ExtractorOption {
	return func(e *Extractor) {
		for _, p := range properties {
			e.keep[strings.ToLower(strings.TrimSpace(p))] = true
		}
	}
}

// NewExtractor creates a new declaration extractor.
func NewExtractor(log *zap.Logger, opts ...ExtractorOption) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Extractor{log: log.Named("css-extractor"), keep: make(map[string]bool)}
	for _, opt := range opts {
		opt(e)
	}
	if e.classifier == nil {
		e.classifier = NewClassifier(log)
	}
	return e
}

var defaultExtractor = NewExtractor(nil)

// Extract extracts declarations from stylesheet text using default extractor.
func Extract(text string) []ParsedStyleDecl {
	return defaultExtractor.Extract(text)
}

type declarations = orderedmap.OrderedMap[string, ParsedStyleDecl]

// Extract parses stylesheet text. Only rules at top level and inside top level
// @media rules are considered. When stylesheet structure cannot be parsed the
// result is empty.
// The optional source parameter identifies what's being parsed (for debug logging).
func (e *Extractor) Extract(text string, source ...string) []ParsedStyleDecl {
	if len(source) > 0 && source[0] != "" {
		e.log.Debug("Extracting declarations", zap.String("source", source[0]), zap.Int("bytes", len(text)))
	}

	out := orderedmap.NewOrderedMap[string, ParsedStyleDecl]()
	parser := css.NewParser(parse.NewInputString(text), false)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if !e.finished(parser) {
				return nil
			}
			return slices.Collect(out.Values())

		case css.BeginAtRuleGrammar:
			atRule := string(data)
			if atRule != "@media" {
				e.log.Debug("Skipping @-rule", zap.String("rule", atRule))
				skipAtRuleBlock(parser)
				continue
			}
			query := tokensText(parser.Values())
			bp, ok := ResolveMediaQuery(query)
			if !ok {
				e.log.Debug("Skipping @media block", zap.String("query", query))
				skipAtRuleBlock(parser)
				continue
			}
			var bpp *Breakpoint
			if !bp.IsEmpty() {
				bpp = &bp
			}
			if !e.parseMediaBlock(parser, bpp, out) {
				return nil
			}

		case css.BeginRulesetGrammar:
			if !e.parseRuleset(parser, nil, out) {
				return nil
			}
		}
	}
}

// ExtractStyleAttribute classifies inline declaration list (content of a
// style attribute). Resulting declarations have empty selector.
func (e *Extractor) ExtractStyleAttribute(text string) []ParsedStyleDecl {
	out := orderedmap.NewOrderedMap[string, ParsedStyleDecl]()
	parser := css.NewParser(parse.NewInputString(text), true)

	targets := []selectorState{{}}
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if parser.HasParseError() {
				e.log.Debug("Skipping malformed declaration", zap.Error(parser.Err()))
				continue
			}
			if !e.finished(parser) {
				return nil
			}
			return slices.Collect(out.Values())
		case css.BeginAtRuleGrammar:
			skipAtRuleBlock(parser)
		case css.DeclarationGrammar:
			e.declaration(string(data), parser.Values(), targets, nil, out)
		}
	}
}

// finished reports whether parser stopped at the end of input rather than
// because of a structural error.
func (e *Extractor) finished(parser *css.Parser) bool {
	if parser.HasParseError() {
		e.log.Debug("CSS parse error", zap.Error(parser.Err()))
		return false
	}
	if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
		e.log.Debug("CSS read error", zap.Error(err))
		return false
	}
	return true
}

// parseMediaBlock handles rules inside of @media block. Nested at-rules are
// skipped.
func (e *Extractor) parseMediaBlock(parser *css.Parser, bp *Breakpoint, out *declarations) bool {
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			return e.finished(parser)
		case css.EndAtRuleGrammar:
			return true
		case css.BeginAtRuleGrammar:
			e.log.Debug("Skipping nested @-rule", zap.String("rule", string(data)))
			skipAtRuleBlock(parser)
		case css.BeginRulesetGrammar:
			if !e.parseRuleset(parser, bp, out) {
				return false
			}
		}
	}
}

// parseRuleset handles declarations of a single ruleset, parser is positioned
// right after the ruleset prelude.
func (e *Extractor) parseRuleset(parser *css.Parser, bp *Breakpoint, out *declarations) bool {
	targets := e.parseSelectors(parser.Values())

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.EndRulesetGrammar:
			return true

		case css.ErrorGrammar:
			if parser.HasParseError() {
				// broken declaration, parser recovers at the next one
				e.log.Debug("Skipping malformed declaration", zap.Error(parser.Err()))
				continue
			}
			return e.finished(parser)

		case css.BeginAtRuleGrammar:
			skipAtRuleBlock(parser)

		case css.CustomPropertyGrammar:
			// CSS custom properties (--var) are not style declarations
			continue

		case css.DeclarationGrammar:
			if len(targets) > 0 {
				e.declaration(string(data), parser.Values(), targets, bp, out)
			}
		}
	}
}

type selectorState struct {
	selector, state string
}

// parseSelectors splits selector list and keeps supported selectors only.
func (e *Extractor) parseSelectors(tokens []css.Token) []selectorState {
	var out []selectorState
	for _, group := range splitTokens(tokens, css.CommaToken) {
		sel, ok := parseSelector(group)
		if !ok {
			e.log.Debug("Skipping unsupported selector", zap.String("selector", tokensText(group)))
			continue
		}
		out = append(out, sel)
	}
	return out
}

// parseSelector accepts a single type or class selector optionally followed
// by one pseudo-class or pseudo-element (with arguments).
func parseSelector(tokens []css.Token) (selectorState, bool) {
	tokens = trimTokens(tokens)
	var sel selectorState

	i := 0
	switch {
	case len(tokens) >= 2 && isDelim(tokens[0], '.') && tokens[1].TokenType == css.IdentToken:
		sel.selector = "." + string(tokens[1].Data)
		i = 2
	case len(tokens) >= 1 && tokens[0].TokenType == css.IdentToken:
		sel.selector = string(tokens[0].Data)
		i = 1
	default:
		return sel, false
	}
	if i == len(tokens) {
		return sel, true
	}

	if tokens[i].TokenType != css.ColonToken {
		return sel, false
	}
	state := ":"
	i++
	if i < len(tokens) && tokens[i].TokenType == css.ColonToken {
		state += ":"
		i++
	}
	if i >= len(tokens) {
		return sel, false
	}

	switch tokens[i].TokenType {
	case css.IdentToken:
		state += string(tokens[i].Data)
		i++
	case css.FunctionToken:
		// function arguments up to the matching parenthesis
		depth := 0
		for ; i < len(tokens); i++ {
			state += string(tokens[i].Data)
			switch tokens[i].TokenType {
			case css.FunctionToken, css.LeftParenthesisToken:
				depth++
			case css.RightParenthesisToken:
				depth--
			}
			if depth == 0 {
				i++
				break
			}
		}
		if depth != 0 {
			return sel, false
		}
	default:
		return sel, false
	}
	if i != len(tokens) {
		return sel, false
	}
	sel.state = state
	return sel, true
}

// declaration expands and classifies one declaration for every target.
func (e *Extractor) declaration(property string, values []css.Token, targets []selectorState, bp *Breakpoint, out *declarations) {
	value := tokensText(stripImportant(values))

	property = strings.ToLower(strings.TrimSpace(property))
	if property == "" || strings.HasPrefix(property, "--") {
		return
	}
	if c := property[0]; c != '-' && (c < 'a' || c > 'z') {
		// IE hacks like *zoom or _height
		e.log.Debug("Skipping hacked property", zap.String("property", property))
		return
	}
	if !e.keep[property] {
		property = UnprefixProperty(property)
	}

	for _, longhand := range ExpandShorthands([][2]string{{property, value}}) {
		name := CamelCaseProperty(longhand[0])

		var v StyleValue
		text := strings.TrimSpace(longhand[1])
		if text == "" || strings.Contains(strings.ToLower(text), "var(") {
			// variable references are not resolved
			v = KeywordValue{Value: "unset"}
		} else {
			v = e.classifier.Classify(name, text, true)
		}

		for _, t := range targets {
			decl := ParsedStyleDecl{
				Property:   name,
				Value:      v,
				Selector:   t.selector,
				State:      t.state,
				Breakpoint: bp,
			}
			out.Set(decl.Key(), decl)
		}
	}
}

// stripImportant drops trailing "!important".
func stripImportant(tokens []css.Token) []css.Token {
	tokens = trimTokens(tokens)
	n := len(tokens)
	if n >= 2 && tokens[n-1].TokenType == css.IdentToken && strings.EqualFold(string(tokens[n-1].Data), "important") {
		j := n - 2
		for j >= 0 && tokens[j].TokenType == css.WhitespaceToken {
			j--
		}
		if j >= 0 && isDelim(tokens[j], '!') {
			return trimTokens(tokens[:j])
		}
	}
	return tokens
}

func isDelim(t css.Token, c byte) bool {
	return t.TokenType == css.DelimToken && len(t.Data) == 1 && t.Data[0] == c
}

// trimTokens removes leading and trailing whitespace tokens.
func trimTokens(tokens []css.Token) []css.Token {
	for len(tokens) > 0 && tokens[0].TokenType == css.WhitespaceToken {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && tokens[len(tokens)-1].TokenType == css.WhitespaceToken {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

func splitTokens(tokens []css.Token, sep css.TokenType) [][]css.Token {
	var (
		out     [][]css.Token
		current []css.Token
	)
	for _, t := range tokens {
		if t.TokenType == sep {
			out = append(out, current)
			current = nil
			continue
		}
		current = append(current, t)
	}
	return append(out, current)
}

// tokensText joins token data, whitespace tokens collapse to a single space.
// Parser drops whitespace after commas, it is restored here.
func tokensText(tokens []css.Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		switch t.TokenType {
		case css.WhitespaceToken:
			sb.WriteByte(' ')
		case css.CommaToken:
			sb.WriteString(", ")
		default:
			sb.Write(t.Data)
		}
	}
	return strings.TrimSpace(sb.String())
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if !parser.HasParseError() {
				return
			}
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}
