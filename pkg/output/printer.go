// Package output renders command results for humans or machines. A
// Printer in JSON mode emits indented JSON on stdout so results can be
// piped into other tools; in human mode it prints styled text instead.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Printer writes command results in the selected mode.
type Printer struct {
	json   bool
	stdout io.Writer
	stderr io.Writer
}

// NewPrinter creates a printer on the process streams.
func NewPrinter(jsonMode bool) *Printer {
	return &Printer{json: jsonMode, stdout: os.Stdout, stderr: os.Stderr}
}

// JSONMode reports whether the printer emits JSON.
func (p *Printer) JSONMode() bool {
	return p.json
}

// Result prints v as indented JSON in JSON mode, or the human
// rendering otherwise. An empty human string prints nothing.
func (p *Printer) Result(v interface{}, human string) error {
	if p.json {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("output: encode result: %w", err)
		}
		fmt.Fprintln(p.stdout, string(b))
		return nil
	}
	if human != "" {
		fmt.Fprintln(p.stdout, human)
	}
	return nil
}

// Plain writes a raw line to stdout regardless of mode. Used for
// content whose value is the text itself, like extracted page text.
func (p *Printer) Plain(s string) {
	fmt.Fprintln(p.stdout, s)
}

// Title prints a styled heading in human mode.
func (p *Printer) Title(s string) {
	if p.json {
		return
	}
	fmt.Fprintln(p.stdout, titleStyle.Render(s))
}

// Field prints a labeled value in human mode.
func (p *Printer) Field(label, value string) {
	if p.json {
		return
	}
	fmt.Fprintf(p.stdout, "%s %s\n", labelStyle.Render(label+":"), valueStyle.Render(value))
}

// Success prints a confirmation line in human mode.
func (p *Printer) Success(s string) {
	if p.json {
		return
	}
	fmt.Fprintln(p.stdout, successStyle.Render(s))
}

// Note prints a muted informational line in human mode.
func (p *Printer) Note(s string) {
	if p.json {
		return
	}
	fmt.Fprintln(p.stdout, labelStyle.Render(s))
}

// Error reports a failure. JSON mode emits {"error": ...} on stdout so
// consumers always get valid JSON; human mode writes to stderr.
func (p *Printer) Error(err error) {
	if p.json {
		b, mErr := json.MarshalIndent(map[string]string{"error": err.Error()}, "", "  ")
		if mErr != nil {
			fmt.Fprintf(p.stderr, "Error: %v\n", err)
			return
		}
		fmt.Fprintln(p.stdout, string(b))
		return
	}
	fmt.Fprintf(p.stderr, "%s %v\n", errorStyle.Render("Error:"), err)
}

// Errors reports several failures at once, used for flag parse errors.
func (p *Printer) Errors(msgs []string) {
	if p.json {
		b, err := json.MarshalIndent(map[string][]string{"errors": msgs}, "", "  ")
		if err == nil {
			fmt.Fprintln(p.stdout, string(b))
		}
		return
	}
	for _, msg := range msgs {
		fmt.Fprintf(p.stderr, "%s %s\n", errorStyle.Render("Error:"), msg)
	}
}
