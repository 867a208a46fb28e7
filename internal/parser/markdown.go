package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/meredith/doctest/internal/models"
)

// MarkdownExtractor extracts examples from Markdown code blocks.
//
// A fenced code block participates when its info string is "doctest" or
// when its body contains a ">>> " prompt; indented code blocks participate
// on prompts alone. The scope of an example is the text of the nearest
// preceding heading, or "document" before the first heading.
type MarkdownExtractor struct {
	markdown goldmark.Markdown
}

// NewMarkdownExtractor creates an extractor for Markdown files
func NewMarkdownExtractor() *MarkdownExtractor {
	return &MarkdownExtractor{
		markdown: goldmark.New(),
	}
}

// Extract parses one Markdown document and returns its examples in
// document order.
func (m *MarkdownExtractor) Extract(r io.Reader, filename string) ([]models.Example, error) {
	source, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	doc := m.markdown.Parser().Parse(text.NewReader(source))

	var examples []models.Example
	scope := "document"

	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			if heading := nodeText(node, source); heading != "" {
				scope = heading
			}

		case *ast.FencedCodeBlock:
			lines, hasPrompt := blockLines(node, source)
			if string(node.Language(source)) == "doctest" || hasPrompt {
				examples = append(examples, scanLines(lines, filename, scope)...)
			}

		case *ast.CodeBlock:
			lines, hasPrompt := blockLines(node, source)
			if hasPrompt {
				examples = append(examples, scanLines(lines, filename, scope)...)
			}
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk markdown: %w", err)
	}

	return examples, nil
}

// blockLines collects a code block's lines with their source line numbers
// and reports whether any line carries a prompt
func blockLines(n ast.Node, source []byte) ([]docLine, bool) {
	segments := n.Lines()
	lines := make([]docLine, 0, segments.Len())
	hasPrompt := false

	for i := 0; i < segments.Len(); i++ {
		segment := segments.At(i)
		content := strings.TrimRight(string(segment.Value(source)), "\n")
		if _, _, ok := promptLine(content); ok {
			hasPrompt = true
		}
		lines = append(lines, docLine{
			num:  lineAt(source, segment.Start),
			text: content,
		})
	}

	return lines, hasPrompt
}

// lineAt returns the 1-based line number of a byte offset
func lineAt(source []byte, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}
	return bytes.Count(source[:offset], []byte("\n")) + 1
}

// nodeText concatenates the literal text of a node's children
func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
		}
	}
	return strings.TrimSpace(sb.String())
}
