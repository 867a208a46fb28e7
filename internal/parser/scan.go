package parser

import (
	"strings"

	"github.com/meredith/doctest/internal/models"
)

// promptMarker introduces an example's input expression.
// continuationMarker continues a multi-line expression.
const (
	promptMarker       = ">>>"
	continuationMarker = "..."
)

// docLine is one line of documentation text with its 1-based source line
type docLine struct {
	num  int
	text string
}

// scanLines extracts examples from a block of documentation lines.
//
// An example starts at a ">>> " prompt. Lines immediately following the
// prompt that begin with "... " at the same indentation continue the input
// expression. The lines after that, until a blank line, a dedent, the next
// prompt, or the end of the block, form the expected output. An example
// with no expected output only fails when evaluation errors.
func scanLines(lines []docLine, file, scope string) []models.Example {
	var examples []models.Example

	i := 0
	for i < len(lines) {
		indent, src, ok := promptLine(lines[i].text)
		if !ok {
			i++
			continue
		}
		startLine := lines[i].num
		i++

		// Fold continuation lines into the source expression
		for i < len(lines) {
			cont, ok := continuationLine(lines[i].text, indent)
			if !ok {
				break
			}
			src += "\n" + cont
			i++
		}

		// Collect expected output lines
		var expected []string
		for i < len(lines) {
			text := lines[i].text
			if strings.TrimSpace(text) == "" {
				break
			}
			if _, _, isPrompt := promptLine(text); isPrompt {
				break
			}
			if !strings.HasPrefix(text, indent) {
				break
			}
			expected = append(expected, strings.TrimRight(text[len(indent):], " \t"))
			i++
		}

		examples = append(examples, models.Example{
			File:     file,
			Line:     startLine,
			Scope:    scope,
			Source:   strings.TrimSpace(src),
			Expected: strings.Join(expected, "\n"),
		})
	}

	return examples
}

// promptLine reports whether a line is a ">>> " prompt, returning the
// indentation prefix and the expression text after the marker.
func promptLine(text string) (indent, src string, ok bool) {
	trimmed := strings.TrimLeft(text, " \t")
	if !strings.HasPrefix(trimmed, promptMarker) {
		return "", "", false
	}
	rest := trimmed[len(promptMarker):]
	if rest != "" && !strings.HasPrefix(rest, " ") {
		return "", "", false
	}
	indent = text[:len(text)-len(trimmed)]
	return indent, strings.TrimPrefix(rest, " "), true
}

// continuationLine reports whether a line continues the current expression
// at the given indentation, returning the continued text.
func continuationLine(text, indent string) (string, bool) {
	if !strings.HasPrefix(text, indent) {
		return "", false
	}
	rest := text[len(indent):]
	if !strings.HasPrefix(rest, continuationMarker) {
		return "", false
	}
	rest = rest[len(continuationMarker):]
	if rest != "" && !strings.HasPrefix(rest, " ") {
		return "", false
	}
	return strings.TrimPrefix(rest, " "), true
}
