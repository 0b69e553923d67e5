// internal/inputtag/types.go
package inputtag

// Tag is the structured representation of a product address.
type Tag struct {
	// Module is the name of the producing unit.
	Module string
	// Instance is the product instance name. Empty means the default product.
	Instance string
}

// New creates a tag for the given module and instance.
func New(module, instance string) Tag {
	return Tag{Module: module, Instance: instance}
}

// HasInstance returns true if the tag names an explicit product instance.
func (t Tag) HasInstance() bool {
	return t.Instance != ""
}
