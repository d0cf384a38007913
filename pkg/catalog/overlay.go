package catalog

import (
	"fmt"
	"io"
	"os"
)

// LoadOverlay merges additional predictor definitions from a catalog
// document. Entries with an id already present replace the built-in entry;
// new ids are appended after the existing order.
func (c *Catalog) LoadOverlay(r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("catalog: read overlay: %w", err)
	}
	return c.merge(raw)
}

// LoadOverlayFile merges an overlay document from disk.
func (c *Catalog) LoadOverlayFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("catalog: open overlay: %w", err)
	}
	defer f.Close()
	return c.LoadOverlay(f)
}
