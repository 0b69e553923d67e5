package hcl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/recoseq/internal/config"
	"github.com/specialistvlad/recoseq/internal/ctxlog"
	"github.com/specialistvlad/recoseq/internal/pipeline"
	"github.com/specialistvlad/recoseq/internal/registry"
	"github.com/specialistvlad/recoseq/internal/unit"
)

var (
	// ErrReferenceCycle is returned when tasks or sequences contain each other.
	ErrReferenceCycle = errors.New("reference cycle between tasks or sequences")
	// ErrInvalidReference is returned when a member is not a unit.<name>,
	// task.<name> or sequence.<name> traversal.
	ErrInvalidReference = errors.New("invalid member reference")
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file found under paths and returns the merged,
// fully resolved namespace.
func (l *Loader) Load(ctx context.Context, paths ...string) (*registry.Namespace, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()
	files := make([]*hcl.File, 0, len(hclFiles))
	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		files = append(files, hclFile)
	}
	return l.load(ctx, files)
}

// LoadSource loads a single in-memory configuration. filename is only used
// in diagnostics.
func (l *Loader) LoadSource(ctx context.Context, filename string, src []byte) (*registry.Namespace, error) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL source %s: %w", filename, diags)
	}
	return l.load(ctx, []*hcl.File{hclFile})
}

func (l *Loader) load(ctx context.Context, files []*hcl.File) (*registry.Namespace, error) {
	logger := ctxlog.FromContext(ctx)
	ns := registry.New()
	var composites []*composite

	for _, file := range files {
		var root fileRoot
		if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL: %w", diags)
		}

		for _, b := range root.ESProducers {
			p, err := unit.NewESProducer(b.Name, b.Type, b.Provides)
			if err != nil {
				return nil, err
			}
			if err := ns.DefineESProducer(p); err != nil {
				return nil, err
			}
		}
		for _, b := range root.Units {
			u, err := translateUnit(b)
			if err != nil {
				return nil, err
			}
			if err := ns.DefineUnit(u); err != nil {
				return nil, err
			}
		}
		for _, b := range root.Tasks {
			c, err := translateComposite(registry.KindTask, b)
			if err != nil {
				return nil, err
			}
			composites = append(composites, c)
		}
		for _, b := range root.Sequences {
			c, err := translateComposite(registry.KindSequence, b)
			if err != nil {
				return nil, err
			}
			composites = append(composites, c)
		}
	}
	logger.Debug("Leaf definitions loaded.", "units", len(ns.Units()), "esproducers", len(ns.ESProducers()), "composites", len(composites))

	r, err := newResolver(ns, composites)
	if err != nil {
		return nil, err
	}
	for _, c := range composites {
		if err := r.resolve(ctx, c, nil); err != nil {
			return nil, err
		}
	}

	logger.Debug("HCL loading complete.", "definitions", ns.Len())
	return ns, nil
}

// reference is one parsed member traversal.
type reference struct {
	kind registry.Kind
	name string
	rng  hcl.Range
}

// composite is a task or sequence block waiting for its members.
type composite struct {
	kind registry.Kind
	name string
	refs []reference
	rng  hcl.Range
}

func (c *composite) label() string {
	return fmt.Sprintf("%s %q", c.kind, c.name)
}

type resolveState int

const (
	unvisited resolveState = iota
	visiting
	resolved
)

// resolver defines composites in dependency order so that every member is
// already in the namespace when its container is built.
type resolver struct {
	ns      *registry.Namespace
	pending map[string]*composite
	state   map[string]resolveState
}

func newResolver(ns *registry.Namespace, composites []*composite) (*resolver, error) {
	r := &resolver{
		ns:      ns,
		pending: make(map[string]*composite, len(composites)),
		state:   make(map[string]resolveState, len(composites)),
	}
	for _, c := range composites {
		if prev, ok := r.pending[c.name]; ok {
			return nil, fmt.Errorf("%s at %s already declared as %s at %s: %w", c.label(), c.rng, prev.kind, prev.rng, registry.ErrDuplicateDefinition)
		}
		if kind, ok := ns.KindOf(c.name); ok {
			return nil, fmt.Errorf("%s at %s already declared as %s: %w", c.label(), c.rng, kind, registry.ErrDuplicateDefinition)
		}
		r.pending[c.name] = c
	}
	return r, nil
}

func (r *resolver) resolve(ctx context.Context, c *composite, stack []string) error {
	switch r.state[c.name] {
	case resolved:
		return nil
	case visiting:
		path := append(stack, c.name)
		return fmt.Errorf("%s at %s: %s: %w", c.label(), c.rng, strings.Join(path, " -> "), ErrReferenceCycle)
	}
	r.state[c.name] = visiting
	stack = append(stack, c.name)

	names := make([]string, 0, len(c.refs))
	var kindErr error
	for _, ref := range c.refs {
		if dep, ok := r.pending[ref.name]; ok {
			if err := r.resolve(ctx, dep, stack); err != nil {
				return err
			}
		}
		if kind, ok := r.ns.KindOf(ref.name); ok && kind != ref.kind && kindErr == nil {
			kindErr = fmt.Errorf("%s at %s: %s.%s refers to a %s: %w", c.label(), ref.rng, ref.kind, ref.name, kind, pipeline.ErrKindMismatch)
		}
		names = append(names, ref.name)
	}

	var err error
	switch c.kind {
	case registry.KindTask:
		var t *pipeline.Task
		if t, err = pipeline.ResolveTask(r.ns, c.name, names...); err == nil && kindErr == nil {
			err = r.ns.DefineTask(t)
		}
	case registry.KindSequence:
		var s *pipeline.Sequence
		if s, err = pipeline.ResolveSequence(r.ns, c.name, names...); err == nil && kindErr == nil {
			err = r.ns.DefineSequence(s)
		}
	}

	var unresolved *pipeline.UnresolvedReferenceError
	switch {
	case errors.As(err, &unresolved):
		unresolved.Location = c.locate(unresolved.Names[0]).String()
		return unresolved
	case err != nil:
		return fmt.Errorf("%s: %w", c.rng, err)
	case kindErr != nil:
		return kindErr
	}

	r.state[c.name] = resolved
	ctxlog.FromContext(ctx).Debug("Composite resolved.", "kind", c.kind.String(), "name", c.name, "members", len(names))
	return nil
}

// locate returns the range of the first reference to name, or the members
// expression range if there is none.
func (c *composite) locate(name string) hcl.Range {
	for _, ref := range c.refs {
		if ref.name == name {
			return ref.rng
		}
	}
	return c.rng
}

var _ config.Loader = (*Loader)(nil)
