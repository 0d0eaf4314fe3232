package cli

import (
	"fmt"
	"os"
)

// Environment variables consumed by the parser.
const (
	// EnvSession provides the default session label.
	EnvSession = "AGENT_BROWSER_SESSION"

	// EnvExecutablePath provides the default browser binary override.
	EnvExecutablePath = "AGENT_BROWSER_EXECUTABLE_PATH"

	// EnvSessionName provides the default persisted-state name. The
	// value is validated the same way the --session-name flag is.
	EnvSessionName = "AGENT_BROWSER_SESSION_NAME"
)

// DefaultSession is the session label used when neither the environment
// nor --session supplies one.
const DefaultSession = "default"

// Flags holds the global flags recognized in front of (or interleaved
// with) any subcommand. Optional string fields are pointers so that
// "never set" stays distinct from "set to the empty string".
type Flags struct {
	// JSON switches command output to machine-readable JSON.
	JSON bool

	// Full disables output truncation and makes screenshots full-page.
	Full bool

	// Headed runs the browser with a visible window.
	Headed bool

	// Debug enables the run log.
	Debug bool

	// Session labels the logical browser session. Defaults to
	// DefaultSession.
	Session string

	// Headers is the raw --headers value, a JSON object string. The
	// parser carries it opaquely; the host interprets it.
	Headers *string

	// ExecutablePath overrides the browser binary location.
	ExecutablePath *string

	// CDP is an endpoint URL for attaching to an already-running
	// browser over the Chrome DevTools Protocol.
	CDP *string

	// SessionName selects the persisted storage state. Non-nil only
	// when the supplied value passed IsValidSessionName.
	SessionName *string
}

// ParseResult carries the parsed flags together with any validation
// errors. Errors appear in discovery order: environment-derived errors
// first, then flag-derived errors in argument order. A non-empty error
// list never prevents the other fields from being populated.
type ParseResult struct {
	Flags  Flags
	Errors []string
}

// EnvLookup is the environment access used by the parser. It matches
// the signature of os.LookupEnv so tests can substitute a fixed map
// instead of mutating the process environment.
type EnvLookup func(key string) (string, bool)

// ParseFlags extracts the global flags from args, seeding defaults from
// the process environment. args is the argument vector without the
// program name; every element is treated uniformly, so flags may appear
// before, between, or after subcommand tokens.
//
// Parsing is total: any argument list yields a ParseResult. Tokens that
// are not recognized global flags are ignored here and left for the
// subcommand dispatcher (see CleanArgs).
func ParseFlags(args []string) ParseResult {
	return ParseFlagsWithEnv(args, os.LookupEnv)
}

// ParseFlagsWithEnv is ParseFlags with an explicit environment.
func ParseFlagsWithEnv(args []string, lookup EnvLookup) ParseResult {
	result := ParseResult{
		Flags: Flags{Session: DefaultSession},
	}
	flags := &result.Flags

	if v, ok := lookup(EnvSession); ok {
		flags.Session = v
	}
	if v, ok := lookup(EnvExecutablePath); ok {
		flags.ExecutablePath = &v
	}
	if v, ok := lookup(EnvSessionName); ok {
		if IsValidSessionName(v) {
			flags.SessionName = &v
		} else {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Invalid %s '%s'. Only alphanumeric characters, hyphens, and underscores are allowed.", EnvSessionName, v))
		}
	}

	// Explicit cursor: value-taking flags consume the following token,
	// so a range loop would desynchronize.
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--json":
			flags.JSON = true
		case "--full", "-f":
			flags.Full = true
		case "--headed":
			flags.Headed = true
		case "--debug":
			flags.Debug = true
		case "--session":
			if i+1 < len(args) {
				flags.Session = args[i+1]
				i++
			}
		case "--headers":
			if i+1 < len(args) {
				v := args[i+1]
				flags.Headers = &v
				i++
			}
		case "--executable-path":
			if i+1 < len(args) {
				v := args[i+1]
				flags.ExecutablePath = &v
				i++
			}
		case "--cdp":
			if i+1 < len(args) {
				v := args[i+1]
				flags.CDP = &v
				i++
			}
		case "--session-name":
			if i+1 < len(args) {
				// The candidate token is consumed whether or not it
				// validates, so a malformed name cannot desynchronize
				// the flags after it.
				v := args[i+1]
				if IsValidSessionName(v) {
					flags.SessionName = &v
				} else {
					result.Errors = append(result.Errors, SessionNameError(v))
				}
				i++
			}
		}
	}

	return result
}

// The two global flag sets, as stripped by CleanArgs. standaloneFlags
// act as boolean switches; valueFlags consume the following token.
var (
	standaloneFlags = []string{"--json", "--full", "-f", "--headed", "--debug"}
	valueFlags      = []string{"--session", "--headers", "--executable-path", "--cdp", "--session-name"}
)

// CleanArgs returns args with every recognized global flag removed,
// along with the value token of each value-taking flag, preserving the
// relative order of everything else. Unrecognized tokens, flag-shaped
// or not, pass through verbatim so subcommand flags survive.
//
// CleanArgs is purely structural: it strips an invalid --session-name
// value just like a valid one, independent of ParseFlags' outcome.
func CleanArgs(args []string) []string {
	cleaned := make([]string, 0, len(args))
	skipNext := false
	for _, arg := range args {
		if skipNext {
			skipNext = false
			continue
		}
		if containsFlag(valueFlags, arg) {
			// Drop the flag and the token after it. When the flag is
			// the final element there is no next token; the loop just
			// ends.
			skipNext = true
			continue
		}
		if containsFlag(standaloneFlags, arg) {
			continue
		}
		cleaned = append(cleaned, arg)
	}
	return cleaned
}

func containsFlag(set []string, arg string) bool {
	for _, f := range set {
		if f == arg {
			return true
		}
	}
	return false
}
