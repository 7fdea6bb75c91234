package tools

import (
	"embed"
)

// Bundled data, used when the config does not point at external files.
// The server then runs standalone without anything on disk.
const (
	MenuFile          = "data/menu.json"
	AbbreviationsFile = "data/abbreviations.yaml"
)

//go:embed data/menu.json
//go:embed data/abbreviations.yaml
var embeddedFS embed.FS

// embeddedDataProvider implements DataProvider using embed.FS.
type embeddedDataProvider struct {
	fs embed.FS
}

// NewEmbeddedDataProvider creates the production DataProvider.
func NewEmbeddedDataProvider() DataProvider {
	return &embeddedDataProvider{fs: embeddedFS}
}

// ReadFile reads the named file from the embedded filesystem.
func (p *embeddedDataProvider) ReadFile(name string) ([]byte, error) {
	return p.fs.ReadFile(name)
}
