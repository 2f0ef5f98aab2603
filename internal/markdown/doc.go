// Package markdown formats the Markdown fragments that make up a release post.
//
// # Formatters
//
//	markdown.Link("text", href)                      // [text](href)
//	markdown.Variables(map[string]string{...})       // sorted "key: value" lines
//	markdown.Table([2]string{"Binary", "Version"}, pairs, bold)
//
// Table keeps the row order of its dataset.Pairs input and bolds the key cell
// of every row whose key is in the bold set.
//
// # Sections
//
//	count, md := markdown.BugSection(bugs, resolver.BugURL)
//	refs, md := markdown.MailSection(mail, resolver.MailURL)
//
// BugSection sorts by id and strikes through RESOLVED bugs. MailSection sorts
// threads by reference count, highest first, keeping input order for ties,
// and returns the release's reference count unchanged.
package markdown
