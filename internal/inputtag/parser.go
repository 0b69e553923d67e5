// internal/inputtag/parser.go
package inputtag

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	moduleRegex   = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	instanceRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

// ValidModuleName reports whether name can be used as the module part of a tag.
func ValidModuleName(name string) bool {
	return moduleRegex.MatchString(name)
}

// ValidInstanceName reports whether name can be used as a product instance.
// The empty string is valid and denotes the default product.
func ValidInstanceName(name string) bool {
	return name == "" || instanceRegex.MatchString(name)
}

// Parse creates a Tag by parsing its canonical string representation.
func Parse(raw string) (Tag, error) {
	if raw == "" {
		return Tag{}, fmt.Errorf("input tag cannot be empty")
	}

	parts := strings.Split(raw, ":")
	if len(parts) > 2 {
		return Tag{}, fmt.Errorf("input tag %q has too many ':' separated parts", raw)
	}

	module := parts[0]
	if !ValidModuleName(module) {
		return Tag{}, fmt.Errorf("invalid module name %q in input tag %q", module, raw)
	}

	tag := Tag{Module: module}
	if len(parts) == 2 {
		if parts[1] == "" {
			return Tag{}, fmt.Errorf("input tag %q has an empty instance", raw)
		}
		if !ValidInstanceName(parts[1]) {
			return Tag{}, fmt.Errorf("invalid instance name %q in input tag %q", parts[1], raw)
		}
		tag.Instance = parts[1]
	}
	return tag, nil
}

// ParseAll parses every raw tag, stopping at the first invalid one.
func ParseAll(raws []string) ([]Tag, error) {
	tags := make([]Tag, 0, len(raws))
	for _, raw := range raws {
		tag, err := Parse(raw)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
