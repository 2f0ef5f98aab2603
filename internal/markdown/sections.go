package markdown

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/gorewood/relposts/internal/dataset"
)

// BugSection renders bugs as a list sorted by id. Resolved bugs are struck
// through. Returns the number of bugs rendered and the markdown.
func BugSection(bugs []dataset.Bug, bugURL func(int) string) (int, string) {
	sorted := slices.Clone(bugs)
	slices.SortFunc(sorted, func(a, b dataset.Bug) int {
		return cmp.Compare(a.ID, b.ID)
	})

	lines := make([]string, 0, len(sorted))
	for _, bug := range sorted {
		line := Link(fmt.Sprintf("%d: %s", bug.ID, bug.Summary), bugURL(bug.ID))
		if bug.Status == dataset.StatusResolved {
			line = "~~" + line + "~~"
		}
		lines = append(lines, line)
	}
	return len(lines), List(lines)
}

// MailSection renders threads as a list ordered by reference count, highest
// first; threads with equal counts keep their input order. Every message
// after the root is linked individually.
//
// The returned count is the release's own ReferenceCount, not a sum over threads.
func MailSection(mail dataset.MailRelease, mailURL func(string) string) (int, string) {
	sorted := slices.Clone(mail.Threads)
	slices.SortStableFunc(sorted, func(a, b dataset.Thread) int {
		return cmp.Compare(b.ReferenceCount, a.ReferenceCount)
	})

	lines := make([]string, 0, len(sorted))
	for _, thread := range sorted {
		lines = append(lines, threadLine(thread, mailURL))
	}
	return mail.ReferenceCount, List(lines)
}

// threadLine expects at least one message; the loader rejects empty threads.
func threadLine(thread dataset.Thread, mailURL func(string) string) string {
	root := thread.Messages[0]
	line := Link(thread.Summary, mailURL(root)) + fmt.Sprintf(" (%d refs)", thread.ReferenceCount)

	replies := thread.Messages[1:]
	if len(replies) == 0 {
		return line
	}
	extra := make([]string, 0, len(replies))
	for _, message := range replies {
		extra = append(extra, Link(message, mailURL(message)))
	}
	return line + "; " + strings.Join(extra, ", ")
}
