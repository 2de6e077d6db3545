// Package dsl declares OFX wire schemas for Go types.
//
// A type takes part in the wire format by implementing ofxkit.Describer with
// a value receiver and returning a declaration built here. Every member binds
// a wire name, an order, a cardinality and a kind to a typed field selector,
// so no struct tags or field-name reflection are involved.
//
// Entry points
//   - Aggregate[T](tag, fields...): a type with its own wire tag.
//   - Embedded[T](fields...): a tagless base, flattened into owners with Embed.
//   - Element/Optional/Elements: scalar members (value, pointer, slice fields).
//   - Child/NamedChild/OptionalChild/Children: nested aggregates.
//   - Variants + Variant: a list of interface items resolved by tag.
//   - Field.Required(), Field.Named(name), Builder.Build()/MustBuild().
//
// Example
//
//	type Status struct {
//	    Code     int
//	    Severity Severity
//	    Message  *string
//	}
//
//	func (Status) Describe() *ofxkit.Declaration {
//	    return dsl.Aggregate[Status]("STATUS",
//	        dsl.Element("CODE", 0, codec.KeyInteger, func(s *Status) *int { return &s.Code }).Required(),
//	        dsl.Element("SEVERITY", 10, Severities, func(s *Status) *Severity { return &s.Severity }).Required(),
//	        dsl.Optional("MESSAGE", 20, codec.KeyString, func(s *Status) **string { return &s.Message }),
//	    ).MustBuild()
//	}
//
// Orders need not be unique; ties keep declaration order, and members of
// embedded bases come before the owner's own members with the same order.
package dsl
