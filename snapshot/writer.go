package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"

	"storefront/infra/memory"
)

// Write replaces path with items encoded as an indented JSON array. The
// data goes to a temp file in the same directory first and is renamed
// over path, so readers never see a half-written file.
func Write[T any](path string, items []T) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if items == nil {
		items = []T{}
	}

	buf := memory.Buffers.Get()
	defer memory.ReleaseBuffer(buf)

	enc := json.NewEncoder(buf)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(items); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
