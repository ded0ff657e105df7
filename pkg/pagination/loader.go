package pagination

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadOptions decodes a YAML document over DefaultOptions. Keys missing from
// the document keep their default; lists replace the default list.
func LoadOptions(r io.Reader) (Options, error) {
	opts := DefaultOptions()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil {
		if errors.Is(err, io.EOF) {
			return DefaultOptions(), nil
		}
		return Options{}, wrapConfigError("", err)
	}
	return opts, nil
}

// LoadOptionsFile reads options from a YAML file.
func LoadOptionsFile(path string) (Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return Options{}, fmt.Errorf("open pagination config: %w", err)
	}
	defer f.Close()

	return LoadOptions(f)
}

// NewFromFile loads options from path and builds a Paginator from them.
func NewFromFile(path string) (*Paginator, error) {
	opts, err := LoadOptionsFile(path)
	if err != nil {
		return nil, err
	}
	return New(opts)
}
