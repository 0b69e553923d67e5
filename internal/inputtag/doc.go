// internal/inputtag/doc.go

/*
Package inputtag provides the structured address of a product inside an
event, in the canonical form `module[:instance]`.

The module part is the name of the unit that puts the product; the optional
instance part distinguishes several products of the same unit, e.g.
`mtdRecHits:FTLBarrel`. A tag without an instance addresses the unit's
default (unnamed) product.
*/
package inputtag
