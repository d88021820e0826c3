package codec

// ObjectCodec serializes the rare fields that fall through to the Object
// wire tag (29) — the escape hatch spec.md §6 defines for fields whose
// declared type matches none of the closed set's other variants. Encode
// and Decode receive the Go value directly (via reflect); this package
// writes their returned bytes behind its own 4-byte length prefix, so an
// Object field can always be read-and-discarded even by a reader that
// has no ObjectCodec configured at all.
//
// The default build has no ObjectCodec wired in; callers needing the
// Object tag supply one (objfallback.Codec) via WithObjectCodec.
type ObjectCodec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, out any) error
}
