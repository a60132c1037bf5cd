package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/headertool/internal/errors"
	"github.com/toyz/headertool/internal/models"
	"github.com/toyz/headertool/internal/utils"
)

// DiagnosticReporter provides user-friendly error reporting and diagnostics
type DiagnosticReporter struct {
	verbose     bool
	diagnostics *utils.DiagnosticSystem
	out         io.Writer
}

// NewDiagnosticReporter creates a new diagnostic reporter writing to the
// error stream of diagnostics
func NewDiagnosticReporter(verbose bool, diagnostics *utils.DiagnosticSystem) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose:     verbose,
		diagnostics: diagnostics,
		out:         diagnostics.ErrorWriter(),
	}
}

// ReportWarning reports a recoverable problem on one line, with hints in
// verbose mode
func (r *DiagnosticReporter) ReportWarning(err error) {
	r.diagnostics.Warn("%s", err.Error())
	if !r.verbose {
		return
	}

	var toolErr errors.ToolError
	if stderrors.As(err, &toolErr) {
		r.diagnostics.Indent()
		for _, hint := range toolErr.Suggestions() {
			r.diagnostics.Warn("hint: %s", hint)
		}
		r.diagnostics.Unindent()
	}
}

// ReportFileError reports a header that was skipped
func (r *DiagnosticReporter) ReportFileError(path string, err error) {
	r.diagnostics.Error("skipping %s: %v", path, err)
}

// ReportError provides comprehensive error reporting for a failed run
func (r *DiagnosticReporter) ReportError(err error) {
	if r.diagnostics.Level() < utils.DiagnosticError {
		return
	}

	fmt.Fprintf(r.out, "\nERROR: Generation Failed\n")
	fmt.Fprintf(r.out, "========================\n\n")

	var toolErr errors.ToolError
	if stderrors.As(err, &toolErr) {
		r.reportToolError(toolErr)
	} else {
		fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())
	}
}

// reportToolError reports a ToolError with full context and suggestions
func (r *DiagnosticReporter) reportToolError(err errors.ToolError) {
	r.printErrorHeader(err.ErrorCode())

	message := err.Error()
	if base, ok := err.(*errors.BaseError); ok {
		message = base.Message
	}
	fmt.Fprintf(r.out, "Message: %s\n\n", message)

	if r.verbose && err.Unwrap() != nil {
		fmt.Fprintf(r.out, "Underlying cause: %s\n\n", err.Unwrap().Error())
	}

	if loc := err.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.out, "Location: %s\n\n", loc.String())
	}

	if context := err.Context(); len(context) > 0 {
		r.printContext(context)
	}

	if suggestions := err.Suggestions(); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}

	fmt.Fprintf(r.out, "For more help:\n")
	fmt.Fprintf(r.out, "  - Run with --verbose for more detailed output\n")
	if err.ErrorCode() == errors.FatalParseErrorCode {
		fmt.Fprintf(r.out, "  - Run with --keep-going to skip the offending header\n")
	}
	fmt.Fprintln(r.out)
}

// printErrorHeader prints a formatted error header based on error code
func (r *DiagnosticReporter) printErrorHeader(code errors.ErrorCode) {
	var title string

	switch code {
	case errors.SyntaxErrorCode:
		title = "Annotation Syntax Error"
	case errors.FatalParseErrorCode:
		title = "Fatal Parse Error"
	case errors.GenerationErrorCode:
		title = "Code Generation Error"
	case errors.TemplateErrorCode:
		title = "Template Error"
	case errors.FileSystemErrorCode:
		title = "File System Error"
	case errors.CollisionErrorCode:
		title = "Name Collision"
	case errors.ConfigurationErrorCode:
		title = "Configuration Error"
	default:
		title = "Unknown Error"
	}

	color.New(color.FgRed, color.Bold).Fprintf(r.out, "Type: %s\n", title)
	fmt.Fprintf(r.out, "%s\n\n", strings.Repeat("-", len(title)+6))
}

// printContext prints context information in a readable format
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(r.out, "Context:\n")

	keys := make([]string, 0, len(context))
	for key := range context {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Fprintf(r.out, "   %s: %v\n", r.formatContextKey(key), context[key])
	}

	fmt.Fprintf(r.out, "\n")
}

// formatContextKey converts snake_case keys to Title Case
func (r *DiagnosticReporter) formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.out, "Suggestions:\n")

	for i, suggestion := range suggestions {
		lines := strings.Split(suggestion, "\n")
		fmt.Fprintf(r.out, "   %d. %s\n", i+1, lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(r.out, "      %s\n", line)
			}
		}
	}

	fmt.Fprintf(r.out, "\n")
}

// ReportSuccess reports the generation summary
func (r *DiagnosticReporter) ReportSuccess(summary models.GenerationSummary) {
	r.diagnostics.Summary("Generation Summary", map[string]interface{}{
		"Files scanned":   summary.FilesScanned,
		"Files generated": summary.FilesGenerated,
		"Files skipped":   summary.FilesSkipped,
		"Files failed":    summary.FilesFailed,
		"Classes":         summary.ClassesFound,
		"Properties":      summary.PropertiesFound,
		"Methods":         summary.MethodsFound,
	})

	if summary.EnumsIgnored > 0 {
		r.diagnostics.Verbose("%d ENUM() marker(s) recognised; enum reflection is not generated", summary.EnumsIgnored)
	}

	if len(summary.GeneratedFiles) > 0 && r.verbose {
		r.diagnostics.Subsection("Generated files")
		for _, file := range summary.GeneratedFiles {
			r.diagnostics.List("%s", file)
		}
	}
}
