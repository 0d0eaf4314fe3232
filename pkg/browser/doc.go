// Package browser drives a Chromium browser through Playwright for
// one-shot CLI commands.
//
// The package is organized around two types:
//
//   - Runner owns the Playwright process. Start installs the driver on
//     first use and boots it; Stop tears it down. One Runner serves one
//     CLI invocation.
//
//   - Session wraps a browser, context, and page obtained from a
//     Runner. Launch starts a fresh local Chromium; when a CDP endpoint
//     is configured it attaches to the running browser instead and
//     reuses its first context and page, so commands operate on the tab
//     the user already has open.
//
// Sessions expose the operations the CLI commands are built from:
// Navigate, Title, URL, Text, Snapshot, Screenshot, Eval, and
// SaveState. Snapshot returns cleaned HTML with scripts, styles, and
// other noise stripped while keeping the attributes that matter for
// locating elements (id, class, href, form fields, data-*).
//
// Close is attach-aware: a session that owns its browser closes the
// page, context, and browser; an attached session only disconnects,
// leaving the remote browser and its tabs running.
package browser
