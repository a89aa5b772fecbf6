package project

import (
	"os"
	"path/filepath"
	"strings"
)

// IsYAML reports whether path names a YAML project rather than the text layout.
func IsYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Load reads the project at path, picking the format from the extension.
// For the text layout a *DecodeError comes back together with the data read
// before it.
func Load(path string, lim Limits) (*Project, Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Summary{}, err
	}
	defer f.Close()

	if IsYAML(path) {
		p, err := ReadYAML(f, lim)
		return p, Summary{}, err
	}
	return Decode(f, lim)
}

// Save writes p to path, picking the format from the extension.
func Save(path string, p *Project) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if IsYAML(path) {
		err = WriteYAML(f, p)
	} else {
		err = Encode(f, p)
	}
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
