package book

import (
	"fmt"
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Describe renders b as one "Field: value" line per field.
func Describe(b Book) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Title: %s\n", b.Title)
	fmt.Fprintf(&sb, "Author: %s\n", b.Author)
	fmt.Fprintf(&sb, "Publication Year: %s\n", b.PublicationYear)
	fmt.Fprintf(&sb, "Genre: %s\n", b.Genre)
	fmt.Fprintf(&sb, "Reading Progress: %d\n", b.ReadingProgress)
	fmt.Fprintf(&sb, "Is Read: %t\n", b.IsRead)
	return sb.String()
}

// Diff returns a unified diff between the descriptions of before and after,
// or "" when they are identical.
func Diff(before, after Book) string {
	a, b := Describe(before), Describe(after)
	if a == b {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath("before"), a, b)
	return fmt.Sprint(gotextdiff.ToUnified("before", "after", a, edits))
}
