// internal/inputtag/tag.go
package inputtag

import "sort"

// String serializes the Tag into its canonical `module[:instance]` form.
func (t Tag) String() string {
	if t.Instance == "" {
		return t.Module
	}
	return t.Module + ":" + t.Instance
}

// Less orders tags by module, then by instance.
func (t Tag) Less(other Tag) bool {
	if t.Module != other.Module {
		return t.Module < other.Module
	}
	return t.Instance < other.Instance
}

// Sort orders a slice of tags in place and returns it.
func Sort(tags []Tag) []Tag {
	sort.Slice(tags, func(i, j int) bool { return tags[i].Less(tags[j]) })
	return tags
}
