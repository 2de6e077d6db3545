// Package ofxkit converts between typed Go values and OFX wire trees.
//
// - Types declare their wire schema through Describe (see the dsl package)
// - Schemas are built once per type and cached for concurrent use
// - Unmarshal/Marshal walk a wire.Node tree with ordering and cardinality rules
// - A stable error model via Issues (tag-chain path, code, severity, message)
//
// Design policy:
// - Keep only the engine and its public API in the root package.
// - Place value codecs under codec/, the schema DSL under dsl/, dialect
//   readers and writers under dialect/, and envelope dispatch under envelope/.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	env, err := envelope.Read(r, catalog.Registry())
//	n, err := ofxkit.Marshal(stmt)
//	rs, err := ofxkit.Unmarshal[banking.StatementResponse](n, ofxkit.Options{Mode: ofxkit.Strict})
package ofxkit
