package cli

import "fmt"

// IsValidSessionName reports whether name is safe to use as a session
// identifier. Session names become directory names under the session
// state root, so the alphabet is restricted to ASCII letters, digits,
// hyphens, and underscores. The empty string is invalid.
//
// The check is a single pass over the raw bytes; multi-byte (non-ASCII)
// characters never match the allowed ranges and are rejected.
func IsValidSessionName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		b := name[i]
		switch {
		case b >= 'a' && b <= 'z':
		case b >= 'A' && b <= 'Z':
		case b >= '0' && b <= '9':
		case b == '-' || b == '_':
		default:
			return false
		}
	}
	return true
}

// SessionNameError formats the rejection message for an invalid session
// name, embedding the rejected value verbatim. It performs no
// validation itself; callers decide when a name is invalid.
func SessionNameError(name string) string {
	return fmt.Sprintf("Invalid session name '%s'. Only alphanumeric characters, hyphens, and underscores are allowed.", name)
}
