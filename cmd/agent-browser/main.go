// Package main provides the agent-browser CLI, a one-shot browser
// automation tool built for scripted and agent-driven use. Each
// invocation launches (or attaches to) a Chromium browser, runs a
// single command against a page, prints the result, and exits.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/entrhq/agent-browser/pkg/cli"
	"github.com/entrhq/agent-browser/pkg/logging"
	"github.com/entrhq/agent-browser/pkg/output"
)

const version = "0.1.0" // Version of the agent-browser CLI

// Exit codes: 0 success, 1 command or flag error, 2 usage error.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	res := cli.ParseFlags(argv)
	printer := output.NewPrinter(res.Flags.JSON)

	if len(res.Errors) > 0 {
		printer.Errors(res.Errors)
		return exitError
	}

	args := cli.CleanArgs(argv)
	if len(args) == 0 {
		printUsage(os.Stderr)
		return exitUsage
	}
	name, rest := args[0], args[1:]

	// version and help never need a browser or a log file.
	switch name {
	case "version":
		if err := printer.Result(map[string]string{"version": version}, "agent-browser v"+version); err != nil {
			printer.Error(err)
			return exitError
		}
		return exitOK
	case "help":
		printUsage(os.Stdout)
		return exitOK
	}

	logger := logging.Nop()
	if res.Flags.Debug {
		var err error
		logger, err = logging.New()
		if err == nil {
			fmt.Fprintf(os.Stderr, "Debug log: %s\n", logger.Path())
		}
	}
	defer logger.Close()

	// Create context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\nShutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	env := &cmdEnv{flags: res.Flags, printer: printer, log: logger}
	if err := runCommand(ctx, env, name, rest); err != nil {
		logger.Errorf("command %s failed: %v", name, err)
		printer.Error(err)
		if isUsageError(err) {
			return exitUsage
		}
		return exitError
	}
	return exitOK
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "agent-browser - one-shot browser automation\n\n")
	fmt.Fprintf(w, "Usage: agent-browser [flags] <command> [args]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	fmt.Fprintf(w, "  open <url>               Open a page and print its title\n")
	fmt.Fprintf(w, "  text <url> [selector]    Print the visible text of a page or element\n")
	fmt.Fprintf(w, "  snapshot <url>           Print cleaned HTML of a page\n")
	fmt.Fprintf(w, "  screenshot <url> [path]  Capture a PNG (default: screenshot.png)\n")
	fmt.Fprintf(w, "  eval <url> <code>        Run JavaScript on a page and print the result\n")
	fmt.Fprintf(w, "  sessions [pattern]       List saved sessions, optionally glob-filtered\n")
	fmt.Fprintf(w, "  sessions rm <pattern>    Remove sessions matching a glob pattern\n")
	fmt.Fprintf(w, "  version                  Show version\n")
	fmt.Fprintf(w, "  help                     Show this help\n")
	fmt.Fprintf(w, "\nFlags:\n")
	fmt.Fprintf(w, "  --json                   Emit results as JSON\n")
	fmt.Fprintf(w, "  --full, -f               Disable truncation; full-page screenshots\n")
	fmt.Fprintf(w, "  --headed                 Run the browser with a visible window\n")
	fmt.Fprintf(w, "  --debug                  Write a debug log for this run\n")
	fmt.Fprintf(w, "  --session <label>        Label for this run\n")
	fmt.Fprintf(w, "  --session-name <name>    Persist cookies/storage under this name\n")
	fmt.Fprintf(w, "  --headers <json>         Extra HTTP headers as a JSON object\n")
	fmt.Fprintf(w, "  --executable-path <path> Use a specific Chromium binary\n")
	fmt.Fprintf(w, "  --cdp <endpoint>         Attach to a running browser over CDP\n")
	fmt.Fprintf(w, "\nEnvironment Variables:\n")
	fmt.Fprintf(w, "  AGENT_BROWSER_SESSION          Default for --session\n")
	fmt.Fprintf(w, "  AGENT_BROWSER_SESSION_NAME     Default for --session-name\n")
	fmt.Fprintf(w, "  AGENT_BROWSER_EXECUTABLE_PATH  Default for --executable-path\n")
	fmt.Fprintf(w, "\nExamples:\n")
	fmt.Fprintf(w, "  agent-browser open example.com\n")
	fmt.Fprintf(w, "  agent-browser --json text example.com h1\n")
	fmt.Fprintf(w, "  agent-browser --session-name work open https://mail.example.com\n")
	fmt.Fprintf(w, "  agent-browser --cdp http://localhost:9222 snapshot\n")
}
