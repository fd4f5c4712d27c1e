package extract

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownExtractor handles Markdown files using goldmark.
type MarkdownExtractor struct{}

func (p *MarkdownExtractor) Extract(r io.Reader, filename string) (string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	// Flatten the AST to one line per heading and one line per list item or
	// paragraph line. Markdown resumes rely on line structure, not nesting.
	var lines []string
	appendLine := func(t string) {
		t = strings.TrimSpace(t)
		if t != "" {
			lines = append(lines, t)
		}
	}

	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch node := c.(type) {
			case *ast.Heading:
				appendLine(string(node.Text(src)))
			case *ast.ListItem:
				appendLine("- " + blockText(node, src))
			case *ast.List:
				walk(node)
			case *ast.Paragraph, *ast.TextBlock:
				for _, line := range strings.Split(blockText(node, src), "\n") {
					appendLine(line)
				}
			default:
				appendLine(blockText(node, src))
			}
		}
	}
	walk(doc)

	return strings.Join(lines, "\n"), nil
}

// blockText gets the text content of a goldmark AST node. Blocks with raw
// source lines use those directly; container nodes recurse.
func blockText(n ast.Node, src []byte) string {
	if t, ok := n.(*ast.Text); ok {
		return string(t.Value(src))
	}
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		if lines := n.Lines(); lines != nil && lines.Len() > 0 {
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				buf.Write(line.Value(src))
			}
			return strings.TrimSpace(buf.String())
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t := blockText(c, src); t != "" {
			if buf.Len() > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(t)
		}
	}
	return strings.TrimSpace(buf.String())
}
