// Package locate implements the directory convention for finding a channel
// file by its numeric id: the id is split into high/low 32-bit halves,
// each rendered as an 8-hex-digit component, forming
// <root>/<hi_hex>/<lo_hex>.mchan. This is external to the channel engine
// itself, which always accepts an already-resolved path.
package locate

import (
	"fmt"
	"os"
	"path/filepath"
)

// Extension is the file suffix every channel file carries under this
// convention.
const Extension = ".mchan"

// Path returns the conventional location of the channel identified by id
// under root.
func Path(root string, id uint64) string {
	hi := uint32(id >> 32)
	lo := uint32(id)
	return filepath.Join(root, fmt.Sprintf("%08x", hi), fmt.Sprintf("%08x%s", lo, Extension))
}

// Ensure creates the intermediate directory for id under root, if missing,
// and returns the resolved channel path.
func Ensure(root string, id uint64) (string, error) {
	path := Path(root, id)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("locate: ensure dir for channel %d: %w", id, err)
	}
	return path, nil
}
