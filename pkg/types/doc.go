// Package types defines the wire-level building blocks shared by every other
// package: the schema-less Record and its Value variant, enumeration values,
// GUID helpers, client configuration, and the standard error values.
//
// Nothing in this package performs I/O. Records are produced by parsing
// server JSON and are written back through MarshalJSON with their original
// field order intact.
package types
