package css

import (
	"errors"
	"fmt"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ErrUnparseable is returned (wrapped) when text cannot be turned into a
// value tree.
var ErrUnparseable = errors.New("unparseable css")

// NodeKind identifies the kind of a value tree node.
type NodeKind int

const (
	NodeValue NodeKind = iota // root of a parsed value
	NodeIdentifier
	NodeNumber
	NodeDimension
	NodePercentage
	NodeHash
	NodeString
	NodeURL
	NodeFunction
	NodeParentheses
	NodeBrackets
	NodeOperator // , / * + -
	NodeWhiteSpace
	NodeDelim
	NodeUnicodeRange
)

// Node is a single node of a parsed CSS value.
//
// Value holds identifier names, numeric text (without unit), hash text
// (without '#'), unquoted string content, url target, operator or delimiter
// characters and function names. Unit is only set for dimensions and keeps
// the case it was written in.
type Node struct {
	Kind     NodeKind
	Value    string
	Unit     string
	Children []*Node
}

// Significant returns node children without whitespace nodes.
func (n *Node) Significant() []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Kind != NodeWhiteSpace {
			out = append(out, c)
		}
	}
	return out
}

// IsOperator reports whether node is the operator op.
func (n *Node) IsOperator(op string) bool {
	return n != nil && n.Kind == NodeOperator && n.Value == op
}

// IsIdent reports whether node is an identifier equal (ignoring case) to name.
func (n *Node) IsIdent(name string) bool {
	return n != nil && n.Kind == NodeIdentifier && strings.EqualFold(n.Value, name)
}

// FunctionName returns lowercased function name or empty string when node is
// not a function.
func (n *Node) FunctionName() string {
	if n == nil || n.Kind != NodeFunction {
		return ""
	}
	return strings.ToLower(n.Value)
}

// String returns regenerated CSS text for the node.
func (n *Node) String() string {
	return Generate(n)
}

func unparseable(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrUnparseable, fmt.Sprintf(format, a...))
}

// ParseValue parses a single CSS value (the part after the colon in a
// declaration) into a tree.
func ParseValue(text string) (*Node, error) {
	l := css.NewLexer(parse.NewInputString(text))

	root := &Node{Kind: NodeValue}
	stack := []*Node{root}

	for {
		tt, data := l.Next()
		top := stack[len(stack)-1]

		switch tt {
		case css.ErrorToken:
			if err := l.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: %w", ErrUnparseable, err)
			}
			if len(stack) > 1 {
				return nil, unparseable("unclosed %q", Generate(top))
			}
			trimWhitespace(root)
			return root, nil

		case css.CommentToken:
			continue

		case css.WhitespaceToken:
			if n := len(top.Children); n > 0 && top.Children[n-1].Kind != NodeWhiteSpace {
				top.Children = append(top.Children, &Node{Kind: NodeWhiteSpace, Value: " "})
			}

		case css.IdentToken, css.CustomPropertyNameToken:
			top.Children = append(top.Children, &Node{Kind: NodeIdentifier, Value: string(data)})

		case css.NumberToken:
			top.Children = append(top.Children, &Node{Kind: NodeNumber, Value: string(data)})

		case css.PercentageToken:
			top.Children = append(top.Children, &Node{Kind: NodePercentage, Value: strings.TrimSuffix(string(data), "%")})

		case css.DimensionToken:
			num, unit := splitDimension(string(data))
			if num == "" {
				return nil, unparseable("bad dimension %q", data)
			}
			top.Children = append(top.Children, &Node{Kind: NodeDimension, Value: num, Unit: unit})

		case css.HashToken:
			top.Children = append(top.Children, &Node{Kind: NodeHash, Value: string(data[1:])})

		case css.StringToken:
			top.Children = append(top.Children, &Node{Kind: NodeString, Value: unescapeString(unquote(string(data)))})

		case css.URLToken:
			top.Children = append(top.Children, &Node{Kind: NodeURL, Value: urlTarget(string(data))})

		case css.UnicodeRangeToken:
			top.Children = append(top.Children, &Node{Kind: NodeUnicodeRange, Value: string(data)})

		case css.FunctionToken:
			fn := &Node{Kind: NodeFunction, Value: strings.TrimSuffix(string(data), "(")}
			top.Children = append(top.Children, fn)
			stack = append(stack, fn)

		case css.LeftParenthesisToken:
			p := &Node{Kind: NodeParentheses}
			top.Children = append(top.Children, p)
			stack = append(stack, p)

		case css.LeftBracketToken:
			b := &Node{Kind: NodeBrackets}
			top.Children = append(top.Children, b)
			stack = append(stack, b)

		case css.RightParenthesisToken:
			if top.Kind != NodeFunction && top.Kind != NodeParentheses {
				return nil, unparseable("unexpected ')'")
			}
			trimWhitespace(top)
			stack = stack[:len(stack)-1]

		case css.RightBracketToken:
			if top.Kind != NodeBrackets {
				return nil, unparseable("unexpected ']'")
			}
			trimWhitespace(top)
			stack = stack[:len(stack)-1]

		case css.CommaToken:
			top.Children = append(top.Children, &Node{Kind: NodeOperator, Value: ","})

		case css.DelimToken:
			switch d := string(data); d {
			case "/", "*", "+", "-":
				top.Children = append(top.Children, &Node{Kind: NodeOperator, Value: d})
			case "!":
				return nil, unparseable("priority marker is not a part of value")
			default:
				top.Children = append(top.Children, &Node{Kind: NodeDelim, Value: d})
			}

		case css.ColonToken:
			top.Children = append(top.Children, &Node{Kind: NodeDelim, Value: ":"})

		default:
			// semicolons, braces, bad strings and urls, CDO/CDC and match tokens
			return nil, unparseable("unexpected %s %q", tt, data)
		}
	}
}

// trimWhitespace drops leading and trailing whitespace children.
func trimWhitespace(n *Node) {
	for len(n.Children) > 0 && n.Children[0].Kind == NodeWhiteSpace {
		n.Children = n.Children[1:]
	}
	for len(n.Children) > 0 && n.Children[len(n.Children)-1].Kind == NodeWhiteSpace {
		n.Children = n.Children[:len(n.Children)-1]
	}
}

// splitDimension splits dimension token text into number and unit parts,
// e.g. "-1.5e2px" -> ("-1.5e2", "px"), "1em" -> ("1", "em").
func splitDimension(s string) (string, string) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' && i+1 < len(s) && isDigit(s[i+1]) {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return "", s
	}
	// exponent only when followed by a digit (optionally signed), "1em" is a unit
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	return s[:i], s[i:]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// urlTarget extracts target from url(...) token text.
func urlTarget(s string) string {
	if len(s) >= 4 && strings.EqualFold(s[:4], "url(") {
		s = s[4:]
	}
	s = strings.TrimSuffix(s, ")")
	return unescapeString(unquote(strings.TrimSpace(s)))
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

// unescapeString removes simple backslash escapes (\" \\ \').
func unescapeString(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for _, r := range s {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}

// cssEscapeDoubleQuoted escapes a string for use inside CSS double quotes.
// Backslashes and double quotes are escaped per CSS syntax: \" and \\.
func cssEscapeDoubleQuoted(s string) string {
	// Fast path: nothing to escape.
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Generate regenerates CSS text from a value tree node.
func Generate(n *Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	n.writeTo(&sb)
	return sb.String()
}

func (n *Node) writeTo(sb *strings.Builder) {
	switch n.Kind {
	case NodeValue:
		writeChildren(sb, n.Children)
	case NodeIdentifier, NodeNumber, NodeDelim, NodeUnicodeRange, NodeOperator:
		sb.WriteString(n.Value)
	case NodeDimension:
		sb.WriteString(n.Value)
		sb.WriteString(n.Unit)
	case NodePercentage:
		sb.WriteString(n.Value)
		sb.WriteByte('%')
	case NodeHash:
		sb.WriteByte('#')
		sb.WriteString(n.Value)
	case NodeString:
		sb.WriteByte('"')
		sb.WriteString(cssEscapeDoubleQuoted(n.Value))
		sb.WriteByte('"')
	case NodeURL:
		if strings.ContainsAny(n.Value, " \t\n\"'()\\") {
			sb.WriteString(`url("`)
			sb.WriteString(cssEscapeDoubleQuoted(n.Value))
			sb.WriteString(`")`)
		} else {
			sb.WriteString("url(")
			sb.WriteString(n.Value)
			sb.WriteByte(')')
		}
	case NodeFunction:
		sb.WriteString(n.Value)
		sb.WriteByte('(')
		writeChildren(sb, n.Children)
		sb.WriteByte(')')
	case NodeParentheses:
		sb.WriteByte('(')
		writeChildren(sb, n.Children)
		sb.WriteByte(')')
	case NodeBrackets:
		sb.WriteByte('[')
		writeChildren(sb, n.Children)
		sb.WriteByte(']')
	case NodeWhiteSpace:
		sb.WriteByte(' ')
	}
}

// writeChildren writes nodes normalizing whitespace around commas to ", ".
func writeChildren(sb *strings.Builder, nodes []*Node) {
	for i, c := range nodes {
		if c.Kind == NodeWhiteSpace {
			if (i > 0 && nodes[i-1].IsOperator(",")) || (i+1 < len(nodes) && nodes[i+1].IsOperator(",")) {
				continue
			}
		}
		c.writeTo(sb)
		if c.IsOperator(",") && i+1 < len(nodes) {
			sb.WriteByte(' ')
		}
	}
}

// splitOnCommas splits nodes on top-level comma operators. Whitespace is not
// removed from segments.
func splitOnCommas(nodes []*Node) [][]*Node {
	return splitOnOperator(nodes, ",")
}

// splitOnOperator splits nodes on every top level op operator.
func splitOnOperator(nodes []*Node, op string) [][]*Node {
	var (
		out     [][]*Node
		current []*Node
	)
	for _, n := range nodes {
		if n.IsOperator(op) {
			out = append(out, current)
			current = nil
			continue
		}
		current = append(current, n)
	}
	return append(out, current)
}

// generateNodes regenerates text for a list of sibling nodes. Whitespace
// nodes are ignored, every node except comma is preceded by a single space.
func generateNodes(nodes []*Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		if n.Kind == NodeWhiteSpace {
			continue
		}
		if sb.Len() > 0 && !n.IsOperator(",") {
			sb.WriteByte(' ')
		}
		n.writeTo(&sb)
	}
	return sb.String()
}
