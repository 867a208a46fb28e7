package runner

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// AnnotateDiff renders the difference between expected and actual output
// as a single annotated line: unchanged text passes through, text only in
// the expected output appears as [-text-], text only in the actual output
// as [+text+].
func AnnotateDiff(expected, actual string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(expected, actual, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			sb.WriteString(d.Text)
		case diffmatchpatch.DiffDelete:
			sb.WriteString("[-")
			sb.WriteString(d.Text)
			sb.WriteString("-]")
		case diffmatchpatch.DiffInsert:
			sb.WriteString("[+")
			sb.WriteString(d.Text)
			sb.WriteString("+]")
		}
	}
	return sb.String()
}
