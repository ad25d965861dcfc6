package tui

import (
	"fmt"
	"strings"

	"github.com/jeanpaul/bookshelf/internal/book"
)

const emptyCollection = "The book collection is empty."

// booksMarkdown formats books as one section per book.
func booksMarkdown(heading string, books []book.Book) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", heading)
	for _, bk := range books {
		title := bk.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(&b, "## %s\n\n", escape(title))
		fmt.Fprintf(&b, "- **Author:** %s\n", escape(bk.Author))
		fmt.Fprintf(&b, "- **Publication Year:** %s\n", escape(bk.PublicationYear))
		fmt.Fprintf(&b, "- **Genre:** %s\n", escape(bk.Genre))
		fmt.Fprintf(&b, "- **Reading Progress:** %d %%\n", bk.ReadingProgress)
		fmt.Fprintf(&b, "- **Is Read:** %s\n\n", yesNo(bk.IsRead))
	}
	return b.String()
}

// progressMarkdown formats the reading progress report as a table.
func progressMarkdown(report []book.Progress) string {
	var b strings.Builder
	b.WriteString("# Reading progress\n\n")
	b.WriteString("| Title | Progress | |\n")
	b.WriteString("| --- | ---: | --- |\n")
	for _, p := range report {
		fmt.Fprintf(&b, "| %s | %d %% | `%s` |\n", strings.ReplaceAll(escape(p.Title), "|", "\\|"), p.ReadingProgress, makeBar(p.ReadingProgress, 20))
	}
	return b.String()
}

func diffMarkdown(title, diff string) string {
	if diff == "" {
		return fmt.Sprintf("# Updated %s\n\nNothing changed.\n", escape(title))
	}
	return fmt.Sprintf("# Updated %s\n\n```diff\n%s```\n", escape(title), diff)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "#", `\#`, "[", `\[`, "]", `\]`, "<", "&lt;",
)

func escape(s string) string {
	return mdEscaper.Replace(s)
}

func makeBar(percent, width int) string {
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
