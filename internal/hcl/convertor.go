package hcl

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/specialistvlad/recoseq/internal/config"
	"github.com/specialistvlad/recoseq/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ErrUnsupportedParam is returned when a unit sets a parameter its handler
// does not declare.
var ErrUnsupportedParam = errors.New("unsupported parameter")

// Converter is the HCL-specific implementation of config.ParamsDecoder.
type Converter struct{}

// NewConverter creates a new HCL converter.
func NewConverter() *Converter {
	return &Converter{}
}

// DecodeParams populates the `cty`-tagged fields of target from params.
// Fields without a matching parameter keep their current value, so callers
// set defaults before decoding.
func (c *Converter) DecodeParams(ctx context.Context, params map[string]cty.Value, target any) error {
	structVal := reflect.ValueOf(target)
	if structVal.Kind() != reflect.Ptr || structVal.IsNil() || structVal.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("params target must be a non-nil pointer to a struct, got %T", target)
	}
	structVal = structVal.Elem()
	structType := structVal.Type()

	fields := make(map[string]reflect.Value, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		tag := structType.Field(i).Tag.Get("cty")
		if tag == "" || tag == "-" || !structVal.Field(i).CanSet() {
			continue
		}
		fields[strings.Split(tag, ",")[0]] = structVal.Field(i)
	}

	for _, name := range slices.Sorted(maps.Keys(params)) {
		field, ok := fields[name]
		if !ok {
			return fmt.Errorf("%q: %w", name, ErrUnsupportedParam)
		}
		if err := c.decode(ctx, params[name], field.Addr().Interface()); err != nil {
			return fmt.Errorf("failed to decode param %q: %w", name, err)
		}
	}
	return nil
}

// decode handles the conversion and decoding of a cty.Value into a Go pointer.
func (c *Converter) decode(ctx context.Context, val cty.Value, goVal any) error {
	logger := ctxlog.FromContext(ctx)
	valPtr := reflect.ValueOf(goVal)

	impliedType, err := gocty.ImpliedType(valPtr.Elem().Interface())
	if err != nil {
		logger.Debug("Could not imply cty.Type from Go type, attempting direct decoding.", "go_type", valPtr.Elem().Type().String(), "error", err)
		return gocty.FromCtyValue(val, goVal)
	}

	converted, err := convert.Convert(val, impliedType)
	if err != nil {
		return fmt.Errorf("cannot convert %s to required type %s: %w", val.Type().FriendlyName(), impliedType.FriendlyName(), err)
	}
	if !val.Type().Equals(converted.Type()) {
		logger.Debug("Implicitly converted value type.", "from", val.Type().FriendlyName(), "to", converted.Type().FriendlyName())
	}
	return gocty.FromCtyValue(converted, goVal)
}

var _ config.ParamsDecoder = (*Converter)(nil)
