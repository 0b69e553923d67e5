// Package hcl implements config.Loader and config.ParamsDecoder for HCL.
//
// A configuration is any number of .hcl files containing esproducer, unit,
// task and sequence blocks. Files are merged into a single flat namespace
// and task/sequence members are written as traversals such as
// unit.mtdRecHits or task.fastTimingLocalRecoTask, so they may refer to
// blocks declared later or in another file.
package hcl
