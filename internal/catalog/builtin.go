package catalog

import (
	"context"
	_ "embed"
	"fmt"

	"readiness-workers/pkg/registry"
)

//go:embed data/catalog.json
var builtinJSON []byte

// BuiltinDocument parses the catalog compiled into the binary.
func BuiltinDocument() (*registry.Document, error) {
	doc, err := registry.Parse(builtinJSON)
	if err != nil {
		return nil, fmt.Errorf("builtin catalog: %w", err)
	}
	return doc, nil
}

// Builtin returns the indexed builtin catalog.
func Builtin() (*Catalog, error) {
	doc, err := BuiltinDocument()
	if err != nil {
		return nil, err
	}
	return New(doc)
}

type BuiltinSource struct{}

func (BuiltinSource) Name() string { return "builtin" }

func (BuiltinSource) Load(context.Context) (*registry.Document, error) {
	return BuiltinDocument()
}

// FileSource reads a registry document from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return "file" }

func (s FileSource) Load(context.Context) (*registry.Document, error) {
	return registry.LoadDocument(s.Path)
}
