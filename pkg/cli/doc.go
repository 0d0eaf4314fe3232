// Package cli implements the global flag grammar shared by every
// agent-browser subcommand.
//
// Two pieces cooperate here:
//
//  1. The flag parser (ParseFlags) walks the raw argument vector once,
//     seeds defaults from AGENT_BROWSER_* environment variables, and
//     produces a Flags value plus an ordered list of validation errors.
//  2. CleanArgs strips the recognized global flags (and their value
//     tokens) back out of the argument vector, leaving the residual
//     subcommand arguments for the dispatcher.
//
// The grammar is deliberately permissive: tokens the parser does not
// recognize are assumed to belong to a subcommand and pass through
// untouched, and a value-taking flag with no following token is
// silently dropped. Parsing is total: it never fails, it only
// collects error strings for the caller to surface.
//
// Session names are validated against a strict character allow-list
// because they are later used as directory names for persisted browser
// state; IsValidSessionName is exported so the session store can apply
// the same rule at its own boundary.
package cli
