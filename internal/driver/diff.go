package driver

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/oxhq/refract/internal/xerrors"
)

// unifiedDiff renders a standard 3-line-context unified diff between a
// file's original and rewritten text.
func unifiedDiff(filename, before, after string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: filename,
		ToFile:   filename + " (refactored)",
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}

// splitHunks partitions a unified diff into independent xerrors.Hunk
// regions, one per "@@ ... @@" block plus the two leading header lines
// repeated on the first — bowler.tool.BowlerTool.process_hunks's grouping,
// which lets a reviewer accept/reject one hunk at a time instead of the
// whole file.
func splitHunks(diffText string) []xerrors.Hunk {
	lines := strings.SplitAfter(diffText, "\n")
	var header []string
	var hunks []xerrors.Hunk
	var current xerrors.Hunk

	for _, line := range lines {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "--- ") || strings.HasPrefix(line, "+++ "):
			header = append(header, line)
		case strings.HasPrefix(line, "@@"):
			if current != nil {
				hunks = append(hunks, current)
			}
			current = xerrors.Hunk{}
			if len(hunks) == 0 {
				current = append(current, header...)
			}
			current = append(current, line)
		default:
			if current != nil {
				current = append(current, line)
			}
		}
	}
	if current != nil {
		hunks = append(hunks, current)
	}
	return hunks
}

func hunkString(h xerrors.Hunk) string {
	return strings.Join([]string(h), "")
}

// describeHunks renders every hunk in h back into one unified-diff blob, for
// error messages that carry the whole set.
func describeHunks(hunks []xerrors.Hunk) string {
	var b strings.Builder
	for i, h := range hunks {
		if i > 0 {
			fmt.Fprintln(&b)
		}
		b.WriteString(hunkString(h))
	}
	return b.String()
}
