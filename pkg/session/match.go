package session

import (
	"fmt"

	"github.com/gobwas/glob"
)

// Match returns the sessions whose names match the given glob pattern,
// e.g. "proj-*" or "staging-?". An empty pattern matches nothing.
func (s *Store) Match(pattern string) ([]*Metadata, error) {
	if pattern == "" {
		return nil, nil
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("session: invalid pattern %q: %w", pattern, err)
	}
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	var out []*Metadata
	for _, m := range all {
		if g.Match(m.Name) {
			out = append(out, m)
		}
	}
	return out, nil
}
