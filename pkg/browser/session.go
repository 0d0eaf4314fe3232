package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Session wraps the browser, context, and page a command operates on.
type Session struct {
	browser  playwright.Browser
	context  playwright.BrowserContext
	page     playwright.Page
	attached bool
}

// Navigate loads the given URL, normalizing bare hostnames first.
func (s *Session) Navigate(url string, opts NavigateOptions) error {
	gotoOpts := playwright.PageGotoOptions{}
	if opts.WaitUntil != "" {
		waitUntil := playwright.WaitUntilState(opts.WaitUntil)
		gotoOpts.WaitUntil = &waitUntil
	}
	if opts.Timeout > 0 {
		gotoOpts.Timeout = &opts.Timeout
	}

	if _, err := s.page.Goto(NormalizeURL(url), gotoOpts); err != nil {
		return fmt.Errorf("browser: navigation failed: %w", err)
	}
	return nil
}

// Title returns the current page title.
func (s *Session) Title() (string, error) {
	title, err := s.page.Title()
	if err != nil {
		return "", fmt.Errorf("browser: read title: %w", err)
	}
	return title, nil
}

// URL returns the current page URL.
func (s *Session) URL() string {
	return s.page.URL()
}

// Text extracts the visible text of the element matching selector, or
// of the whole body when selector is empty. The boolean reports
// whether the text was cut at maxLength; maxLength <= 0 disables the
// limit.
func (s *Session) Text(selector string, maxLength int) (string, bool, error) {
	target := selector
	if target == "" {
		target = "body"
	}

	element, err := s.page.QuerySelector(target)
	if err != nil {
		return "", false, fmt.Errorf("browser: selector query failed: %w", err)
	}
	if element == nil {
		return "", false, fmt.Errorf("browser: no element found matching selector: %s", target)
	}
	content, err := element.TextContent()
	if err != nil {
		return "", false, fmt.Errorf("browser: text extraction failed: %w", err)
	}

	if maxLength > 0 && len(content) > maxLength {
		return content[:maxLength], true, nil
	}
	return content, false, nil
}

// Snapshot renders the page as cleaned HTML with title and meta
// description. maxLength <= 0 disables truncation.
func (s *Session) Snapshot(maxLength int) (*Snapshot, error) {
	raw, err := s.page.Content()
	if err != nil {
		return nil, fmt.Errorf("browser: read page content: %w", err)
	}
	return renderSnapshot(raw, maxLength)
}

// Screenshot writes a PNG of the page to path.
func (s *Session) Screenshot(path string, fullPage bool) error {
	opts := playwright.PageScreenshotOptions{
		Path:     &path,
		FullPage: &fullPage,
	}
	if _, err := s.page.Screenshot(opts); err != nil {
		return fmt.Errorf("browser: screenshot failed: %w", err)
	}
	return nil
}

// Eval executes a JavaScript expression on the page and returns its
// value as decoded by the driver.
func (s *Session) Eval(code string) (interface{}, error) {
	result, err := s.page.Evaluate(code)
	if err != nil {
		return nil, fmt.Errorf("browser: javascript execution failed: %w", err)
	}
	return result, nil
}

// SaveState writes the context's cookies and local storage to path.
func (s *Session) SaveState(path string) error {
	if _, err := s.context.StorageState(path); err != nil {
		return fmt.Errorf("browser: save storage state: %w", err)
	}
	return nil
}

// Close releases the session. An attached session only disconnects,
// leaving the remote browser running; an owned session closes
// everything it launched.
func (s *Session) Close() error {
	if !s.attached {
		_ = s.page.Close()    // Ignore errors, continue cleanup
		_ = s.context.Close() // Ignore errors, continue cleanup
	}
	if err := s.browser.Close(); err != nil {
		return fmt.Errorf("browser: close: %w", err)
	}
	return nil
}
