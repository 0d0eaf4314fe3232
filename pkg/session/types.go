package session

import "time"

// Metadata holds the per-session bookkeeping persisted next to the
// browser storage state. It is stored as YAML and rendered as JSON by
// the sessions command.
type Metadata struct {
	Name      string    `yaml:"name" json:"name"`
	CreatedAt time.Time `yaml:"created_at" json:"created_at"`
	UpdatedAt time.Time `yaml:"updated_at" json:"updated_at"`
	LastURL   string    `yaml:"last_url,omitempty" json:"last_url,omitempty"`
}
