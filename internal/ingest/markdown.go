package ingest

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var markdownParser = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
).Parser()

// DecodeMarkdown reduces a Markdown document to its readable text: markup is
// dropped, block elements are separated by blank lines, and code blocks are
// kept verbatim.
func DecodeMarkdown(raw []byte) (string, error) {
	src, err := DecodeText(raw)
	if err != nil {
		return "", err
	}
	source := []byte(src)

	doc := markdownParser.Parse(text.NewReader(source))

	var buf bytes.Buffer
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock && n.Kind() != ast.KindDocument && n.Kind() != ast.KindList &&
				n.Kind() != ast.KindListItem {
				endBlock(&buf)
			}
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Text:
			buf.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(node.Value)
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				segment := lines.At(i)
				buf.Write(segment.Value(source))
			}
			return ast.WalkSkipChildren, nil
		case *ast.HTMLBlock, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(buf.String()), nil
}

// endBlock terminates the current block with a blank line.
func endBlock(buf *bytes.Buffer) {
	if buf.Len() == 0 {
		return
	}
	trimmed := bytes.TrimRight(buf.Bytes(), " \t\n")
	buf.Truncate(len(trimmed))
	buf.WriteString("\n\n")
}
