package parser

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"strings"

	"github.com/meredith/doctest/internal/models"
)

// GoSourceExtractor extracts examples embedded in Go doc comments.
//
// Examples live in the doc comments of the package clause, top-level
// declarations, and methods:
//
//	// Add returns the sum of two numbers.
//	//
//	//	>>> 2 + 3
//	//	5
//	func Add(a, b int) int { ... }
//
// Discovery order is file order: the package comment first, then each
// declaration's comment top to bottom.
type GoSourceExtractor struct {
	fset *token.FileSet
}

// NewGoSourceExtractor creates an extractor for Go source files
func NewGoSourceExtractor() *GoSourceExtractor {
	return &GoSourceExtractor{fset: token.NewFileSet()}
}

// Extract parses one Go source file and returns its examples in
// documentation order. A syntax error in the source is a collection-time
// failure and aborts extraction.
func (g *GoSourceExtractor) Extract(r io.Reader, filename string) ([]models.Example, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}

	file, err := parser.ParseFile(g.fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Go source: %w", err)
	}

	var examples []models.Example

	if file.Doc != nil {
		scope := "package " + file.Name.Name
		examples = append(examples, g.extractComment(file.Doc, filename, scope)...)
	}

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Doc == nil {
				continue
			}
			examples = append(examples, g.extractComment(d.Doc, filename, funcScope(d))...)
		case *ast.GenDecl:
			if d.Doc != nil {
				examples = append(examples, g.extractComment(d.Doc, filename, genScope(d))...)
			}
			// Specs inside a grouped declaration carry their own docs
			for _, spec := range d.Specs {
				doc, name := specDoc(spec)
				if doc != nil {
					examples = append(examples, g.extractComment(doc, filename, name)...)
				}
			}
		}
	}

	return examples, nil
}

// extractComment scans one comment group for prompt/output pairs
func (g *GoSourceExtractor) extractComment(doc *ast.CommentGroup, filename, scope string) []models.Example {
	var lines []docLine
	for _, comment := range doc.List {
		startLine := g.fset.Position(comment.Slash).Line
		for i, text := range commentLines(comment.Text) {
			lines = append(lines, docLine{num: startLine + i, text: text})
		}
	}
	return scanLines(lines, filename, scope)
}

// commentLines strips comment markers from a single //- or /*-style
// comment and splits it into lines. The gofmt code-block indentation
// (one tab after the marker) is removed so prompts align.
func commentLines(text string) []string {
	if strings.HasPrefix(text, "//") {
		line := strings.TrimPrefix(text, "//")
		line = strings.TrimPrefix(line, " ")
		line = strings.TrimPrefix(line, "\t")
		return []string{line}
	}

	text = strings.TrimPrefix(text, "/*")
	text = strings.TrimSuffix(text, "*/")
	raw := strings.Split(text, "\n")
	lines := make([]string, len(raw))
	for i, line := range raw {
		lines[i] = strings.TrimPrefix(line, "\t")
	}
	return lines
}

// funcScope names a function or method scope: "Name" or "Recv.Name"
func funcScope(d *ast.FuncDecl) string {
	if d.Recv == nil || len(d.Recv.List) == 0 {
		return d.Name.Name
	}
	return recvTypeName(d.Recv.List[0].Type) + "." + d.Name.Name
}

// recvTypeName unwraps a receiver type expression to its base name
func recvTypeName(expr ast.Expr) string {
	for {
		switch t := expr.(type) {
		case *ast.StarExpr:
			expr = t.X
		case *ast.IndexExpr:
			expr = t.X
		case *ast.IndexListExpr:
			expr = t.X
		case *ast.Ident:
			return t.Name
		default:
			return ""
		}
	}
}

// genScope names a const/var/type declaration scope by its first name
func genScope(d *ast.GenDecl) string {
	for _, spec := range d.Specs {
		switch s := spec.(type) {
		case *ast.TypeSpec:
			return s.Name.Name
		case *ast.ValueSpec:
			if len(s.Names) > 0 {
				return s.Names[0].Name
			}
		}
	}
	return d.Tok.String()
}

// specDoc returns the doc comment and name of an individual spec
func specDoc(spec ast.Spec) (*ast.CommentGroup, string) {
	switch s := spec.(type) {
	case *ast.TypeSpec:
		return s.Doc, s.Name.Name
	case *ast.ValueSpec:
		if len(s.Names) > 0 {
			return s.Doc, s.Names[0].Name
		}
	}
	return nil, ""
}
