package gamedata

import (
	"encoding/json"
	"fmt"
	"io/fs"
)

// Load reads and unmarshals a JSON file from the embedded filesystem.
func Load[T any](filename string) (T, error) {
	return LoadFS[T](dataFS, filename)
}

// LoadFS reads and unmarshals a JSON file from fsys. Unknown fields are
// rejected so typos in data files surface at load time.
func LoadFS[T any](fsys fs.FS, filename string) (T, error) {
	var result T

	f, err := fsys.Open(filename)
	if err != nil {
		return result, fmt.Errorf("failed to open data file %s: %w", filename, err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&result); err != nil {
		return result, fmt.Errorf("failed to parse JSON from %s: %w", filename, err)
	}

	return result, nil
}
