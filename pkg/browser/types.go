package browser

import (
	"github.com/playwright-community/playwright-go"
)

// LaunchOptions configures how a Runner obtains a browser session.
type LaunchOptions struct {
	// Headed runs the browser with a visible window.
	Headed bool

	// ExecutablePath points at a specific Chromium binary. Empty means
	// the Playwright-managed browser.
	ExecutablePath string

	// CDPEndpoint attaches to a running browser over the Chrome
	// DevTools Protocol instead of launching one. Empty means launch.
	CDPEndpoint string

	// Headers are extra HTTP headers applied to every request made by
	// the context.
	Headers map[string]string

	// StorageStatePath seeds the context with previously saved cookies
	// and local storage. Empty means a fresh context.
	StorageStatePath string

	// Viewport sets the initial viewport size. Nil uses the default.
	Viewport *Viewport

	// Timeout is the default per-operation timeout in milliseconds.
	// Zero uses DefaultTimeout.
	Timeout float64
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// NavigateOptions configures page navigation behavior.
type NavigateOptions struct {
	// WaitUntil specifies when to consider navigation successful.
	// Valid values: "load", "domcontentloaded", "networkidle"
	WaitUntil string

	// Timeout in milliseconds (0 means the session default)
	Timeout float64
}

// Snapshot is a cleaned rendering of the current page.
type Snapshot struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	HTML        string `json:"html"`
	Truncated   bool   `json:"truncated"`
}

// Default values for various operations
const (
	DefaultTimeout        = 30000.0 // 30 seconds in milliseconds
	DefaultMaxLength      = 10000   // 10,000 characters
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
)

func (o LaunchOptions) timeout() float64 {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return DefaultTimeout
}

// buildLaunchOptions translates LaunchOptions into the Playwright
// launch options for a locally started browser.
func buildLaunchOptions(opts LaunchOptions) playwright.BrowserTypeLaunchOptions {
	headless := !opts.Headed
	out := playwright.BrowserTypeLaunchOptions{
		Headless: &headless,
	}
	if opts.ExecutablePath != "" {
		path := opts.ExecutablePath
		out.ExecutablePath = &path
	}
	return out
}

// buildContextOptions translates LaunchOptions into the Playwright
// context options shared by launched and attached sessions.
func buildContextOptions(opts LaunchOptions) playwright.BrowserNewContextOptions {
	vp := opts.Viewport
	if vp == nil {
		vp = &Viewport{Width: DefaultViewportWidth, Height: DefaultViewportHeight}
	}
	out := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  vp.Width,
			Height: vp.Height,
		},
	}
	if len(opts.Headers) > 0 {
		out.ExtraHttpHeaders = opts.Headers
	}
	if opts.StorageStatePath != "" {
		path := opts.StorageStatePath
		out.StorageStatePath = &path
	}
	return out
}
