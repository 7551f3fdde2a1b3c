package ingest

import (
	"slices"
	"strings"

	"github.com/elliotchance/orderedmap/v3"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"stylemod/css"
)

// styleBlock is a piece of styling found in markup: content of <style>
// element or value of style attribute.
type styleBlock struct {
	text   string
	inline bool
}

// collectStyles returns style blocks in document order. Style elements with
// non CSS type or with media query which could not be reduced to breakpoint
// are ignored, media of the rest is moved into the block text.
func collectStyles(text string, attributes bool, log *zap.Logger) ([]styleBlock, error) {
	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return nil, err
	}

	var (
		blocks []styleBlock
		walk   func(n *html.Node)
	)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if attributes {
				if style, ok := attr(n, "style"); ok && strings.TrimSpace(style) != "" {
					blocks = append(blocks, styleBlock{text: style, inline: true})
				}
			}
			if n.DataAtom == atom.Style {
				if b, ok := styleElement(n, log); ok {
					blocks = append(blocks, b)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return blocks, nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

func styleElement(n *html.Node, log *zap.Logger) (styleBlock, bool) {
	if typ, ok := attr(n, "type"); ok {
		if t := strings.ToLower(strings.TrimSpace(typ)); t != "" && t != "text/css" {
			log.Debug("Skipping style element", zap.String("type", typ))
			return styleBlock{}, false
		}
	}

	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	text := sb.String()

	media, _ := attr(n, "media")
	bp, ok := css.ResolveMediaQuery(media)
	if !ok {
		log.Debug("Skipping style element", zap.String("media", media))
		return styleBlock{}, false
	}
	if !bp.IsEmpty() {
		text = "@media " + media + " {\n" + text + "\n}"
	}
	return styleBlock{text: text}, true
}

// extractHTML classifies every style block of the document. Declarations
// from later blocks replace earlier ones with the same key keeping position
// of the first occurrence.
func extractHTML(text, src string, ex *css.Extractor, attributes bool, log *zap.Logger) ([]css.ParsedStyleDecl, error) {
	blocks, err := collectStyles(text, attributes, log)
	if err != nil {
		return nil, err
	}

	merged := orderedmap.NewOrderedMap[string, css.ParsedStyleDecl]()
	for _, b := range blocks {
		var decls []css.ParsedStyleDecl
		if b.inline {
			decls = ex.ExtractStyleAttribute(b.text)
		} else {
			decls = ex.Extract(b.text, src)
		}
		for _, d := range decls {
			merged.Set(d.Key(), d)
		}
	}
	log.Debug("Style blocks processed", zap.String("source", src), zap.Int("blocks", len(blocks)), zap.Int("declarations", merged.Len()))
	return slices.Collect(merged.Values()), nil
}
