// Package ruledoc renders rule-description Markdown for terminal display
// using the goldmark library.
package ruledoc

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Render converts a rule description from Markdown to plain text suited to
// terminal output: headings become underlined titles, code fences are
// indented, inline markup is stripped.
func Render(markdown string) (string, error) {
	source := []byte(markdown)
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var out strings.Builder
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			renderHeading(&out, node, source)
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			out.WriteString(collectText(node, source))
			out.WriteString("\n\n")
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			renderCodeBlock(&out, n, source)
			return ast.WalkSkipChildren, nil
		case *ast.ListItem:
			out.WriteString("  - ")
			out.WriteString(strings.TrimSpace(collectText(node, source)))
			out.WriteString("\n")
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", fmt.Errorf("render rule description: %w", err)
	}

	return strings.TrimRight(out.String(), "\n") + "\n", nil
}

func renderHeading(out *strings.Builder, heading *ast.Heading, source []byte) {
	title := collectText(heading, source)
	out.WriteString(title)
	out.WriteString("\n")
	out.WriteString(strings.Repeat("-", len(title)))
	out.WriteString("\n\n")
}

func renderCodeBlock(out *strings.Builder, node ast.Node, source []byte) {
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		out.WriteString("    ")
		out.Write(segment.Value(source))
	}
	out.WriteString("\n")
}

// collectText concatenates the plain text under a node, dropping inline
// markup.
func collectText(node ast.Node, source []byte) string {
	var out strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			out.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				out.WriteString("\n")
			}
		case *ast.CodeSpan:
			for c := t.FirstChild(); c != nil; c = c.NextSibling() {
				if txt, ok := c.(*ast.Text); ok {
					out.Write(txt.Segment.Value(source))
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return out.String()
}
