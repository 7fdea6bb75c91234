package tools

// DataProvider reads the bundled menu data. The production implementation
// reads from embed.FS; tests inject MockDataProvider.
type DataProvider interface {
	// ReadFile reads the named file relative to the data root
	// (e.g. "data/menu.json").
	ReadFile(name string) ([]byte, error)
}
