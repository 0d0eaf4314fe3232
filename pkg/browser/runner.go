package browser

import (
	"fmt"
	"io"

	"github.com/playwright-community/playwright-go"
)

// Runner owns the Playwright process behind a CLI invocation.
type Runner struct {
	pw *playwright.Playwright
}

// Start installs the Playwright driver if needed and boots it. Driver
// output is discarded so it never interleaves with command output.
func Start() (*Runner, error) {
	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}
	if err := playwright.Install(opts); err != nil {
		return nil, fmt.Errorf("browser: install playwright: %w", err)
	}
	pw, err := playwright.Run(opts)
	if err != nil {
		return nil, fmt.Errorf("browser: start playwright: %w", err)
	}
	return &Runner{pw: pw}, nil
}

// Stop shuts down the Playwright process.
func (r *Runner) Stop() error {
	if r.pw == nil {
		return nil
	}
	if err := r.pw.Stop(); err != nil {
		return fmt.Errorf("browser: stop playwright: %w", err)
	}
	return nil
}

// Launch obtains a browser session. With a CDP endpoint configured it
// attaches to the running browser; otherwise it launches Chromium.
func (r *Runner) Launch(opts LaunchOptions) (*Session, error) {
	if opts.CDPEndpoint != "" {
		return r.attach(opts)
	}

	b, err := r.pw.Chromium.Launch(buildLaunchOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("browser: launch: %w", err)
	}

	ctx, err := b.NewContext(buildContextOptions(opts))
	if err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("browser: create context: %w", err)
	}

	page, err := ctx.NewPage()
	if err != nil {
		_ = ctx.Close()
		_ = b.Close()
		return nil, fmt.Errorf("browser: create page: %w", err)
	}
	page.SetDefaultTimeout(opts.timeout())

	return &Session{browser: b, context: ctx, page: page}, nil
}

// attach connects over CDP and adopts the browser's first context and
// page when present, so commands act on the tab the user already has.
func (r *Runner) attach(opts LaunchOptions) (*Session, error) {
	b, err := r.pw.Chromium.ConnectOverCDP(opts.CDPEndpoint)
	if err != nil {
		return nil, fmt.Errorf("browser: connect over cdp %s: %w", opts.CDPEndpoint, err)
	}

	var ctx playwright.BrowserContext
	if contexts := b.Contexts(); len(contexts) > 0 {
		ctx = contexts[0]
	} else {
		ctx, err = b.NewContext(buildContextOptions(opts))
		if err != nil {
			_ = b.Close()
			return nil, fmt.Errorf("browser: create context: %w", err)
		}
	}

	var page playwright.Page
	if pages := ctx.Pages(); len(pages) > 0 {
		page = pages[0]
	} else {
		page, err = ctx.NewPage()
		if err != nil {
			_ = b.Close()
			return nil, fmt.Errorf("browser: create page: %w", err)
		}
	}
	page.SetDefaultTimeout(opts.timeout())

	return &Session{browser: b, context: ctx, page: page, attached: true}, nil
}
