// Package extern provides compact, self-describing binary serialization
// for user-defined record types (spec.md's "bean records"): each field is
// tagged with a stable 1-byte index via a `wire:"N"` struct tag, and the
// wire format tolerates fields being added or removed across versions.
//
// Most callers only need Marshal and Unmarshal. For registering
// Externalizable subclasses, supplying an Object fallback codec, or wiring
// Prometheus metrics, build a *codec.Codec directly with codec.New and its
// options. Compression is not a codec option: package compress is applied
// by the caller to the finished byte stream.
package extern
