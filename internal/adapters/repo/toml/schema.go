package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int            `toml:"version"`
	Profile *profileSchema `toml:"profile,omitempty"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported profile schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

// profileSchema never carries the wallet secret.
type profileSchema struct {
	Address   string `toml:"address"`
	Username  string `toml:"username"`
	UpdatedAt string `toml:"updated_at,omitempty"`
}
