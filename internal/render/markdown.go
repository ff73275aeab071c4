// Package render turns the markdown used in content copy into HTML for the web
// page and into plain text for the terminal.
package render

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Raw HTML in the source is escaped: goldmark runs without html.WithUnsafe.
var md = goldmark.New(goldmark.WithExtensions(extension.Linkify))

// HTML renders src as block-level HTML.
func HTML(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// Inline renders a single paragraph without the surrounding <p> element, for
// copy that sits inside an existing element.
func Inline(src string) (template.HTML, error) {
	out, err := HTML(src)
	if err != nil {
		return "", err
	}
	s := strings.TrimSpace(string(out))
	if strings.HasPrefix(s, "<p>") && strings.HasSuffix(s, "</p>") && strings.Count(s, "<p>") == 1 {
		s = s[len("<p>") : len(s)-len("</p>")]
	}
	return template.HTML(s), nil
}

// Text strips markdown markup and returns the readable text. Paragraphs are
// separated by a blank line; soft line breaks become spaces.
func Text(src string) string {
	source := []byte(src)
	doc := md.Parser().Parse(text.NewReader(source))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Text:
			if !entering {
				return ast.WalkContinue, nil
			}
			b.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			if entering {
				b.Write(node.Value)
			}
		case *ast.AutoLink:
			if entering {
				b.Write(node.Label(source))
			}
		case *ast.Paragraph, *ast.Heading, *ast.ListItem:
			if !entering && n.NextSibling() != nil {
				b.WriteString("\n\n")
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
