package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/entrhq/agent-browser/pkg/browser"
	"github.com/entrhq/agent-browser/pkg/cli"
	"github.com/entrhq/agent-browser/pkg/logging"
	"github.com/entrhq/agent-browser/pkg/output"
	"github.com/entrhq/agent-browser/pkg/session"
)

// cmdEnv bundles what every command handler needs.
type cmdEnv struct {
	flags   cli.Flags
	printer *output.Printer
	log     *logging.Logger
}

// usageError marks errors caused by bad command arguments, which exit
// with the usage code instead of the generic failure code.
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func usageErrorf(format string, v ...interface{}) error {
	return &usageError{msg: fmt.Sprintf(format, v...)}
}

func isUsageError(err error) bool {
	var ue *usageError
	return errors.As(err, &ue)
}

type openResult struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

type textResult struct {
	Text      string `json:"text"`
	Truncated bool   `json:"truncated"`
}

type screenshotResult struct {
	Path     string `json:"path"`
	FullPage bool   `json:"full_page"`
}

type evalResult struct {
	Result interface{} `json:"result"`
}

func runCommand(ctx context.Context, env *cmdEnv, name string, args []string) error {
	switch name {
	case "open", "text", "snapshot", "screenshot", "eval":
		return runBrowserCommand(ctx, env, name, args)
	case "sessions":
		return runSessions(env, args)
	default:
		return usageErrorf("unknown command %q (run 'agent-browser help')", name)
	}
}

// splitTarget separates the URL argument from the command's own
// arguments. Attached over CDP, commands other than open operate on
// the browser's current page and take no URL.
func splitTarget(name string, args []string, flags cli.Flags) (string, []string, error) {
	if name != "open" && flags.CDP != nil {
		return "", args, nil
	}
	if len(args) == 0 {
		if name == "open" {
			return "", nil, usageErrorf("open requires a URL")
		}
		return "", nil, usageErrorf("%s requires a URL (or --cdp to use the current page)", name)
	}
	return args[0], args[1:], nil
}

// runBrowserCommand owns the shared session lifecycle: launch or
// attach, navigate, dispatch, persist, close.
func runBrowserCommand(ctx context.Context, env *cmdEnv, name string, args []string) error {
	url, rest, err := splitTarget(name, args, env.flags)
	if err != nil {
		return err
	}

	opts, err := launchOptions(env.flags)
	if err != nil {
		return err
	}

	var store *session.Store
	var persistName string
	if env.flags.SessionName != nil {
		persistName = *env.flags.SessionName
		store, err = session.DefaultStore()
		if err != nil {
			return err
		}
		if store.HasState(persistName) {
			path, perr := store.StatePath(persistName)
			if perr != nil {
				return perr
			}
			opts.StorageStatePath = path
			env.log.Debugf("loading storage state for %s from %s", persistName, path)
		}
	}

	runner, err := browser.Start()
	if err != nil {
		return err
	}
	defer func() {
		if err := runner.Stop(); err != nil {
			env.log.Warnf("stop playwright: %v", err)
		}
	}()

	env.log.Infof("run=%s command=%s url=%s", env.flags.Session, name, url)

	sess, err := runner.Launch(opts)
	if err != nil {
		return err
	}
	// A signal closes the session so in-flight Playwright calls fail
	// fast instead of waiting out their timeouts.
	stopWatch := context.AfterFunc(ctx, func() { _ = sess.Close() })
	defer stopWatch()
	defer func() { _ = sess.Close() }()

	if url != "" {
		if err := sess.Navigate(url, browser.NavigateOptions{}); err != nil {
			return err
		}
	}

	switch name {
	case "open":
		err = runOpen(env, sess)
	case "text":
		err = runText(env, sess, rest)
	case "snapshot":
		err = runSnapshot(env, sess)
	case "screenshot":
		err = runScreenshot(env, sess, rest)
	case "eval":
		err = runEval(env, sess, rest)
	}
	if err != nil {
		return err
	}

	if store != nil {
		return persistSession(env, store, persistName, sess)
	}
	return nil
}

func runOpen(env *cmdEnv, sess *browser.Session) error {
	title, err := sess.Title()
	if err != nil {
		return err
	}
	if env.printer.JSONMode() {
		return env.printer.Result(openResult{URL: sess.URL(), Title: title}, "")
	}
	if title != "" {
		env.printer.Title(title)
	}
	env.printer.Field("URL", sess.URL())
	return nil
}

func runText(env *cmdEnv, sess *browser.Session, args []string) error {
	selector := ""
	if len(args) > 0 {
		selector = args[0]
	}

	maxLength := browser.DefaultMaxLength
	if env.flags.Full {
		maxLength = 0
	}

	text, truncated, err := sess.Text(selector, maxLength)
	if err != nil {
		return err
	}
	if env.printer.JSONMode() {
		return env.printer.Result(textResult{Text: text, Truncated: truncated}, "")
	}
	env.printer.Plain(text)
	if truncated {
		env.printer.Note(fmt.Sprintf("[truncated at %d characters; use --full for everything]", maxLength))
	}
	return nil
}

func runSnapshot(env *cmdEnv, sess *browser.Session) error {
	maxLength := browser.DefaultMaxLength
	if env.flags.Full {
		maxLength = 0
	}

	snap, err := sess.Snapshot(maxLength)
	if err != nil {
		return err
	}
	if env.printer.JSONMode() {
		return env.printer.Result(snap, "")
	}
	if snap.Title != "" {
		env.printer.Title(snap.Title)
	}
	if snap.Description != "" {
		env.printer.Note(snap.Description)
	}
	env.printer.Plain(snap.HTML)
	if snap.Truncated {
		env.printer.Note(fmt.Sprintf("[truncated at %d characters; use --full for everything]", maxLength))
	}
	return nil
}

func runScreenshot(env *cmdEnv, sess *browser.Session, args []string) error {
	path := "screenshot.png"
	if len(args) > 0 {
		path = args[0]
	}

	if err := sess.Screenshot(path, env.flags.Full); err != nil {
		return err
	}
	if env.printer.JSONMode() {
		return env.printer.Result(screenshotResult{Path: path, FullPage: env.flags.Full}, "")
	}
	env.printer.Success("Saved screenshot to " + path)
	return nil
}

func runEval(env *cmdEnv, sess *browser.Session, args []string) error {
	if len(args) == 0 {
		return usageErrorf("eval requires JavaScript code")
	}

	value, err := sess.Eval(args[0])
	if err != nil {
		return err
	}
	if env.printer.JSONMode() {
		return env.printer.Result(evalResult{Result: value}, "")
	}
	env.printer.Plain(formatEvalResult(value))
	return nil
}

// formatEvalResult renders a JavaScript value for human output:
// structured data as indented JSON, everything else via %v.
func formatEvalResult(v interface{}) string {
	if v == nil {
		return "undefined"
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

func runSessions(env *cmdEnv, args []string) error {
	store, err := session.DefaultStore()
	if err != nil {
		return err
	}

	sub := "ls"
	if len(args) > 0 {
		sub = args[0]
	}
	switch sub {
	case "ls", "list":
		pattern := ""
		if len(args) > 1 {
			pattern = args[1]
		}
		return listSessions(env, store, pattern)
	case "rm", "remove":
		if len(args) < 2 {
			return usageErrorf("sessions rm requires a name or glob pattern")
		}
		return removeSessions(env, store, args[1])
	default:
		// Anything else is a glob pattern filtering the listing.
		return listSessions(env, store, sub)
	}
}

func listSessions(env *cmdEnv, store *session.Store, pattern string) error {
	var list []*session.Metadata
	var err error
	if pattern == "" {
		list, err = store.List()
	} else {
		list, err = store.Match(pattern)
	}
	if err != nil {
		return err
	}
	if env.printer.JSONMode() {
		if list == nil {
			list = []*session.Metadata{}
		}
		return env.printer.Result(list, "")
	}
	if len(list) == 0 {
		if pattern != "" {
			env.printer.Note("No sessions match " + pattern)
		} else {
			env.printer.Note("No saved sessions")
		}
		return nil
	}
	for _, m := range list {
		value := m.UpdatedAt.Format("2006-01-02 15:04")
		if m.LastURL != "" {
			value += "  " + m.LastURL
		}
		env.printer.Field(m.Name, value)
	}
	return nil
}

func removeSessions(env *cmdEnv, store *session.Store, pattern string) error {
	matches, err := store.Match(pattern)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return fmt.Errorf("no sessions match %q", pattern)
	}

	removed := make([]string, 0, len(matches))
	for _, m := range matches {
		if err := store.Remove(m.Name); err != nil {
			return err
		}
		env.log.Infof("removed session %s", m.Name)
		removed = append(removed, m.Name)
	}

	if env.printer.JSONMode() {
		return env.printer.Result(map[string][]string{"removed": removed}, "")
	}
	for _, name := range removed {
		env.printer.Success("Removed " + name)
	}
	return nil
}

// launchOptions translates parsed flags into browser launch options.
func launchOptions(flags cli.Flags) (browser.LaunchOptions, error) {
	opts := browser.LaunchOptions{Headed: flags.Headed}
	if flags.ExecutablePath != nil {
		opts.ExecutablePath = *flags.ExecutablePath
	}
	if flags.CDP != nil {
		opts.CDPEndpoint = *flags.CDP
	}
	headers, err := parseHeaders(flags.Headers)
	if err != nil {
		return opts, err
	}
	opts.Headers = headers
	return opts, nil
}

// parseHeaders decodes the --headers flag, a JSON object of header
// names to values. The flag is carried opaquely through parsing and
// only interpreted here.
func parseHeaders(raw *string) (map[string]string, error) {
	if raw == nil {
		return nil, nil
	}
	var headers map[string]string
	if err := json.Unmarshal([]byte(*raw), &headers); err != nil {
		return nil, fmt.Errorf("invalid --headers JSON: %w", err)
	}
	return headers, nil
}

// persistSession saves the storage state under the session name and
// updates its metadata. State failures fail the command; metadata is
// bookkeeping and only logs.
func persistSession(env *cmdEnv, store *session.Store, name string, sess *browser.Session) error {
	path, err := store.StatePath(name)
	if err != nil {
		return err
	}
	if _, err := store.Ensure(name); err != nil {
		return err
	}
	if err := sess.SaveState(path); err != nil {
		return fmt.Errorf("persist session %q: %w", name, err)
	}
	if err := store.Touch(name, sess.URL()); err != nil {
		env.log.Warnf("update session metadata for %s: %v", name, err)
	}
	env.log.Debugf("saved session %s to %s", name, path)
	return nil
}
