package app

import (
	"os"
	"path/filepath"
)

// Paths holds the resolved locations under carbot's home directory.
type Paths struct {
	Root   string // ~/.carbot/
	DB     string // ~/.carbot/carbot.db
	Config string // ~/.carbot/carbot.yaml
	Env    string // ~/.carbot/.env
}

// NewPaths constructs all resolved paths from a home directory.
func NewPaths(home string) *Paths {
	root := filepath.Join(home, ".carbot")
	return &Paths{
		Root:   root,
		DB:     filepath.Join(root, "carbot.db"),
		Config: filepath.Join(root, "carbot.yaml"),
		Env:    filepath.Join(root, ".env"),
	}
}

// DefaultPaths resolves Paths from the user's home directory, falling back
// to the working directory when HOME is unset.
func DefaultPaths() *Paths {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return NewPaths(home)
}

// EnsureDirs creates the carbot home directory. Idempotent.
func (p *Paths) EnsureDirs() error {
	return os.MkdirAll(p.Root, 0755)
}

// ResolveDB returns explicit when set, otherwise the default database path.
func (p *Paths) ResolveDB(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return p.DB
}
