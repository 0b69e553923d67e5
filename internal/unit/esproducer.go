package unit

import (
	"fmt"
	"slices"
)

// ESProducer is an event-setup producer: it provides conditions records
// (calibrations, geometry, ...) that units may declare as requirements. It
// is never a member of a task.
type ESProducer struct {
	name     string
	typ      string
	provides []string
}

// NewESProducer validates and returns an immutable ESProducer.
func NewESProducer(name, typ string, provides []string) (*ESProducer, error) {
	if name == "" {
		return nil, fmt.Errorf("esproducer name is required")
	}
	if typ == "" {
		return nil, fmt.Errorf("esproducer %q: type is required", name)
	}
	if len(provides) == 0 {
		return nil, fmt.Errorf("esproducer %q: must provide at least one record", name)
	}
	for _, rec := range provides {
		if rec == "" {
			return nil, fmt.Errorf("esproducer %q: empty record name", name)
		}
	}
	return &ESProducer{name: name, typ: typ, provides: slices.Clone(provides)}, nil
}

// Name returns the producer's label.
func (p *ESProducer) Name() string { return p.name }

// Type returns the producer's plugin type.
func (p *ESProducer) Type() string { return p.typ }

// Provides returns a copy of the records supplied by the producer.
func (p *ESProducer) Provides() []string { return slices.Clone(p.provides) }

// ProvidesRecord reports whether the producer supplies the given record.
func (p *ESProducer) ProvidesRecord(record string) bool {
	return slices.Contains(p.provides, record)
}
