package config

import (
	"context"

	"github.com/specialistvlad/recoseq/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given files or directories, merges
	// every definition into one namespace and resolves all references.
	Load(ctx context.Context, paths ...string) (*registry.Namespace, error)
}

// ParamsDecoder binds a unit's statically evaluated parameters to the Go
// struct a handler declares.
type ParamsDecoder interface {
	// DecodeParams populates target, a non-nil pointer to a struct, from
	// params. Fields are matched by their `cty` tag.
	DecodeParams(ctx context.Context, params map[string]cty.Value, target any) error
}
