package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/recoseq/internal/inputtag"
	"github.com/specialistvlad/recoseq/internal/registry"
	"github.com/specialistvlad/recoseq/internal/unit"
	"github.com/zclconf/go-cty/cty"
)

// translateUnit converts a decoded unit block into a unit.Unit.
func translateUnit(b *unitBlock) (*unit.Unit, error) {
	consumes, err := inputtag.ParseAll(b.Consumes)
	if err != nil {
		return nil, fmt.Errorf("unit %q: %w", b.Name, err)
	}

	var params map[string]cty.Value
	if b.Params != nil {
		if params, err = evalParams(b.Params.Body); err != nil {
			return nil, fmt.Errorf("unit %q: %w", b.Name, err)
		}
	}

	return unit.New(unit.Definition{
		Name:       b.Name,
		Type:       b.Type,
		Consumes:   consumes,
		Produces:   b.Produces,
		Conditions: b.Conditions,
		Params:     params,
	})
}

// evalParams evaluates every attribute of a params block with no variables
// or functions in scope.
func evalParams(body hcl.Body) (map[string]cty.Value, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid params block: %w", diags)
	}

	params := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("param %q: %w", name, diags)
		}
		if !val.IsWhollyKnown() {
			return nil, fmt.Errorf("param %q at %s: value must be known statically", name, attr.Range)
		}
		params[name] = val
	}
	return params, nil
}

// translateComposite parses the members list of a task or sequence block.
func translateComposite(kind registry.Kind, b *compositeBlock) (*composite, error) {
	c := &composite{kind: kind, name: b.Name, rng: b.Members.Range()}

	exprs, diags := hcl.ExprList(b.Members)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%s at %s: members must be a list of references: %w", c.label(), c.rng, ErrInvalidReference)
	}

	for _, expr := range exprs {
		ref, err := parseReference(expr)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.label(), err)
		}
		c.refs = append(c.refs, ref)
	}
	return c, nil
}

func parseReference(expr hcl.Expression) (reference, error) {
	rng := expr.Range()
	traversal, diags := hcl.AbsTraversalForExpr(expr)
	if diags.HasErrors() || len(traversal) != 2 {
		return reference{}, fmt.Errorf("member at %s is not of the form unit.<name>, task.<name> or sequence.<name>: %w", rng, ErrInvalidReference)
	}

	var kind registry.Kind
	switch traversal.RootName() {
	case "unit":
		kind = registry.KindUnit
	case "task":
		kind = registry.KindTask
	case "sequence":
		kind = registry.KindSequence
	default:
		return reference{}, fmt.Errorf("member at %s: unknown kind %q: %w", rng, traversal.RootName(), ErrInvalidReference)
	}

	attr, ok := traversal[1].(hcl.TraverseAttr)
	if !ok {
		return reference{}, fmt.Errorf("member at %s: expected %s.<name>: %w", rng, kind, ErrInvalidReference)
	}
	return reference{kind: kind, name: attr.Name, rng: rng}, nil
}
