package unit

import (
	"fmt"
	"slices"
	"sort"

	"github.com/specialistvlad/recoseq/internal/inputtag"
	"github.com/zclconf/go-cty/cty"
)

// Definition is the mutable input used to construct a Unit.
type Definition struct {
	// Name is the unique label of the unit, e.g. "mtdRecHits".
	Name string
	// Type is the plugin type, e.g. "MTDRecHitProducer". It selects the handler.
	Type string
	// Consumes lists the products read by the unit.
	Consumes []inputtag.Tag
	// Produces lists the product instances put by the unit. Empty means the
	// unit puts a single default product.
	Produces []string
	// Conditions lists the conditions records the unit requires.
	Conditions []string
	// Params holds statically evaluated configuration parameters.
	Params map[string]cty.Value
}

// Unit is a ProcessingUnit: a named, opaque computation step with declared
// data dependencies.
type Unit struct {
	name       string
	typ        string
	consumes   []inputtag.Tag
	produces   []string
	conditions []string
	params     map[string]cty.Value
}

// New validates a definition and returns an immutable Unit.
func New(def Definition) (*Unit, error) {
	if !inputtag.ValidModuleName(def.Name) {
		return nil, fmt.Errorf("invalid unit name %q", def.Name)
	}
	if def.Type == "" {
		return nil, fmt.Errorf("unit %q: type is required", def.Name)
	}

	produces := def.Produces
	if len(produces) == 0 {
		produces = []string{""}
	}
	seen := make(map[string]struct{}, len(produces))
	for _, inst := range produces {
		if !inputtag.ValidInstanceName(inst) {
			return nil, fmt.Errorf("unit %q: invalid product instance %q", def.Name, inst)
		}
		if _, dup := seen[inst]; dup {
			return nil, fmt.Errorf("unit %q: product instance %q declared twice", def.Name, inst)
		}
		seen[inst] = struct{}{}
	}

	consumes := make([]inputtag.Tag, 0, len(def.Consumes))
	seenTags := make(map[inputtag.Tag]struct{}, len(def.Consumes))
	for _, tag := range def.Consumes {
		if tag.Module == def.Name {
			return nil, fmt.Errorf("unit %q consumes its own product %q", def.Name, tag)
		}
		if _, dup := seenTags[tag]; dup {
			continue
		}
		seenTags[tag] = struct{}{}
		consumes = append(consumes, tag)
	}

	for _, rec := range def.Conditions {
		if rec == "" {
			return nil, fmt.Errorf("unit %q: empty conditions record name", def.Name)
		}
	}

	params := make(map[string]cty.Value, len(def.Params))
	for k, v := range def.Params {
		params[k] = v
	}

	return &Unit{
		name:       def.Name,
		typ:        def.Type,
		consumes:   consumes,
		produces:   slices.Clone(produces),
		conditions: slices.Clone(def.Conditions),
		params:     params,
	}, nil
}

// Name returns the unit's label.
func (u *Unit) Name() string { return u.name }

// Type returns the unit's plugin type.
func (u *Unit) Type() string { return u.typ }

// Consumes returns a copy of the declared input tags.
func (u *Unit) Consumes() []inputtag.Tag { return slices.Clone(u.consumes) }

// Conditions returns a copy of the required conditions record names.
func (u *Unit) Conditions() []string { return slices.Clone(u.conditions) }

// Produces returns the tags of every product the unit puts.
func (u *Unit) Produces() []inputtag.Tag {
	tags := make([]inputtag.Tag, len(u.produces))
	for i, inst := range u.produces {
		tags[i] = inputtag.New(u.name, inst)
	}
	return tags
}

// ProducesInstance reports whether the unit puts the given product instance.
func (u *Unit) ProducesInstance(instance string) bool {
	return slices.Contains(u.produces, instance)
}

// Consumed reports whether tag is one of the unit's declared inputs.
func (u *Unit) Consumed(tag inputtag.Tag) bool {
	return slices.Contains(u.consumes, tag)
}

// Params returns a copy of the unit's parameters.
func (u *Unit) Params() map[string]cty.Value {
	params := make(map[string]cty.Value, len(u.params))
	for k, v := range u.params {
		params[k] = v
	}
	return params
}

// ParamsValue returns the parameters as a single cty object value.
func (u *Unit) ParamsValue() cty.Value {
	if len(u.params) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(u.Params())
}

// ParamNames returns the sorted parameter names.
func (u *Unit) ParamNames() []string {
	names := make([]string, 0, len(u.params))
	for k := range u.params {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// String implements fmt.Stringer.
func (u *Unit) String() string {
	return fmt.Sprintf("%s(%s)", u.name, u.typ)
}
