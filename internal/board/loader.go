package board

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
)

// Load decodes the JSON file name from fsys into a T. Unknown fields are an
// error so a misspelt key in a layout is caught at load time.
func Load[T any](fsys fs.FS, name string) (T, error) {
	var result T

	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		return result, fmt.Errorf("read %s: %w", name, err)
	}

	dec := json.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&result); err != nil {
		return result, fmt.Errorf("%w: parse %s: %v", ErrInvalidLayout, name, err)
	}

	return result, nil
}
