package codec

import (
	"github.com/dba-c24/extern/internal/registry"
	"github.com/dba-c24/extern/metrics"
)

// Codec encodes and decodes bean records against the wire format. The
// zero value via New() has no ObjectCodec and an empty, private registry;
// both are overridable with options, mirroring the teacher's functional
// options convention for its block writer/reader construction.
type Codec struct {
	objectCodec ObjectCodec
	registry    *registry.Registry
	metrics     *metrics.Codec
}

// Option configures a Codec built by New.
type Option func(*Codec)

// WithObjectCodec installs the serializer used for fields that fall
// through to the Object wire tag. Encoding or decoding a record with an
// Object-tagged field on a Codec with no ObjectCodec configured fails.
func WithObjectCodec(oc ObjectCodec) Option {
	return func(c *Codec) { c.objectCodec = oc }
}

// WithMetrics installs a Prometheus instrumentation bundle. Encode and
// Decode increment its counters and observe its histogram; omit this
// option to run uninstrumented.
func WithMetrics(m *metrics.Codec) Option {
	return func(c *Codec) { c.metrics = m }
}

// WithRegistry installs the name↔type table used to resolve Externalizable
// subclasses on decode and to pick the wire name to write on encode. If
// omitted, New builds a private Registry with nothing pre-registered; a
// type that is never registered uses its default wire name (package path
// + type name).
func WithRegistry(r *registry.Registry) Option {
	return func(c *Codec) { c.registry = r }
}

// New returns a ready-to-use Codec.
func New(opts ...Option) *Codec {
	c := &Codec{registry: registry.New()}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Registry exposes the Codec's name↔type table so callers can register
// Externalizable subclasses before encoding or decoding them.
func (c *Codec) Registry() *registry.Registry { return c.registry }
