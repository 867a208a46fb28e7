package parser

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/meredith/doctest/internal/models"
)

// Format represents the format of a documentation source file
type Format int

const (
	// FormatUnknown represents an unknown or unsupported file format
	FormatUnknown Format = iota
	// FormatGo represents a Go source file (.go)
	FormatGo
	// FormatMarkdown represents a Markdown (.md, .markdown) file
	FormatMarkdown
)

// String returns the string representation of the Format
func (f Format) String() string {
	switch f {
	case FormatGo:
		return "go"
	case FormatMarkdown:
		return "markdown"
	default:
		return "unknown"
	}
}

// Extractor is the interface that all example extractors implement
type Extractor interface {
	// Extract reads a documentation source and returns its examples
	// in discovery order
	Extract(r io.Reader, filename string) ([]models.Example, error)
}

// DetectFormat detects the documentation format based on file extension
// Supported extensions:
//   - .go -> FormatGo
//   - .md, .markdown -> FormatMarkdown
//   - all others -> FormatUnknown
func DetectFormat(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".go":
		return FormatGo
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatUnknown
	}
}

// NewExtractor creates an extractor instance for the specified format
// Returns an error if the format is unknown or unsupported
func NewExtractor(format Format) (Extractor, error) {
	switch format {
	case FormatGo:
		return NewGoSourceExtractor(), nil
	case FormatMarkdown:
		return NewMarkdownExtractor(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %v", format)
	}
}

// Collect gathers every example under the given path into a suite.
//
//  1. A file is extracted according to its detected format.
//  2. A directory is walked; every .go, .md and .markdown file below it
//     contributes examples in path order. Hidden directories, vendor,
//     testdata and _test.go files are skipped.
//
// An unresolvable path or a file that fails to parse is a collection-time
// failure: Collect returns the error before any example runs.
func Collect(path string) (*models.Suite, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access target: %w", err)
	}

	suite := &models.Suite{Target: path}

	if info.IsDir() {
		files, err := collectFiles(path)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			examples, err := extractFile(file)
			if err != nil {
				return nil, err
			}
			suite.Examples = append(suite.Examples, examples...)
		}
		return suite, nil
	}

	if DetectFormat(path) == FormatUnknown {
		return nil, fmt.Errorf("unknown file format: %s (supported: .go, .md, .markdown)", path)
	}
	examples, err := extractFile(path)
	if err != nil {
		return nil, err
	}
	suite.Examples = examples
	return suite, nil
}

// CollectPaths merges the examples of several targets into one suite,
// preserving the order the targets were given in
func CollectPaths(paths []string) (*models.Suite, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no targets provided")
	}

	merged := &models.Suite{Target: strings.Join(paths, ", ")}
	for _, path := range paths {
		suite, err := Collect(path)
		if err != nil {
			return nil, err
		}
		merged.Examples = append(merged.Examples, suite.Examples...)
	}
	return merged, nil
}

// collectFiles walks a directory for documentation sources in path order
func collectFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		name := d.Name()
		if d.IsDir() {
			if path == dir {
				return nil
			}
			if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") ||
				name == "vendor" || name == "testdata" {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasSuffix(name, "_test.go") || strings.HasPrefix(name, ".") {
			return nil
		}
		if DetectFormat(name) != FormatUnknown {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory %s: %w", dir, err)
	}

	return files, nil
}

// extractFile extracts examples from a single file
func extractFile(path string) ([]models.Example, error) {
	extractor, err := NewExtractor(DetectFormat(path))
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	examples, err := extractor.Extract(file, path)
	if err != nil {
		return nil, fmt.Errorf("failed to extract %s: %w", path, err)
	}
	return examples, nil
}
