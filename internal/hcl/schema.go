package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes every top-level block a configuration file may contain.
// Unknown blocks and attributes are rejected by gohcl.
type fileRoot struct {
	ESProducers []*esProducerBlock `hcl:"esproducer,block"`
	Units       []*unitBlock       `hcl:"unit,block"`
	Tasks       []*compositeBlock  `hcl:"task,block"`
	Sequences   []*compositeBlock  `hcl:"sequence,block"`
}

type esProducerBlock struct {
	Type     string   `hcl:"type,label"`
	Name     string   `hcl:"name,label"`
	Provides []string `hcl:"provides"`
}

type unitBlock struct {
	Type       string       `hcl:"type,label"`
	Name       string       `hcl:"name,label"`
	Consumes   []string     `hcl:"consumes,optional"`
	Produces   []string     `hcl:"produces,optional"`
	Conditions []string     `hcl:"conditions,optional"`
	Params     *paramsBlock `hcl:"params,block"`
}

// paramsBlock holds free-form attributes evaluated without variables.
type paramsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// compositeBlock is shared by task and sequence blocks.
type compositeBlock struct {
	Name    string         `hcl:"name,label"`
	Members hcl.Expression `hcl:"members"`
}
