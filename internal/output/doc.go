// Package output provides structured output and error handling for the
// relposts CLI.
//
// # Printer
//
// Every command writes through a Printer, which switches between
// human-readable and JSON output on the --json flag:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonFlag, output.IsTTY(cmd.OutOrStdout()))
//	printer.Success("Wrote 3 posts", map[string]any{"count": 3, "posts": paths})
//	printer.Table([]string{"RELEASE", "BUGS"}, rows)
//	printer.Error(err)
//
// Human output is styled with lipgloss when stdout is a terminal and plain
// otherwise. In JSON mode errors are written as {"error": "...", "code": N}.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0
//	output.ExitUserError   // 1: bad flags, unknown release, invalid config
//	output.ExitSystemError // 2: I/O, template execution, file write
//	output.ExitDataError   // 3: missing or malformed datasets, unknown template fields
//
// Errors built with the constructors keep their cause, so errors.Is still
// matches the domain sentinel underneath:
//
//	output.NewDataErrorWithCause("mail dataset missing", err)
package output
