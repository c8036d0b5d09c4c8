package cmsgpack

import (
	"reflect"

	"github.com/svenboertjens/cmsgpack/ext"
	"github.com/svenboertjens/cmsgpack/internal/extreg"
	"github.com/svenboertjens/cmsgpack/internal/options"
)

// Extensions is a bidirectional registry mapping Go types to MessagePack
// ext ids (and back). Pass one to WithExtensions to make Encode/Decode (or
// a Stream/FileStream) aware of user-defined types.
//
// Registration and removal calls are serialised by an internal mutex, and
// concurrent Encode/Decode calls may share one Extensions. The lookups those
// calls make do not wait for a registration in progress, so changing the
// registrations while another goroutine encodes or decodes with the same
// Extensions is not safe.
type Extensions struct {
	registry *extreg.Registry
}

// ExtensionsOption configures a new Extensions registry.
type ExtensionsOption = options.Option[*extensionsConfig]

type extensionsConfig struct {
	allowSubclasses bool
	passMemoryView  bool
}

// WithSubclasses lets the registry resolve a value whose exact type has no
// registration by walking its embedded-struct ancestry (Go's analogue of a
// base-class lookup), depth-first in field declaration order, and using the
// first registered ancestor it finds.
func WithSubclasses(allow bool) ExtensionsOption {
	return options.NoError(func(c *extensionsConfig) { c.allowSubclasses = allow })
}

// WithMemoryView lets decode functions receive a zero-copy view into the
// wire buffer instead of an owned copy. Only safe when the registered
// decode function does not retain the slice past its call.
func WithMemoryView(pass bool) ExtensionsOption {
	return options.NoError(func(c *extensionsConfig) { c.passMemoryView = pass })
}

// NewExtensions creates an empty registry.
func NewExtensions(opts ...ExtensionsOption) *Extensions {
	c := &extensionsConfig{}
	_ = options.Apply(c, opts...) // ExtensionsOption funcs never fail

	return &Extensions{registry: extreg.New(c.allowSubclasses, c.passMemoryView)}
}

// Add registers hostType to encode/decode as ext id id. id must be in
// [0, 127]; the negative range is reserved for this package's own built-in
// extensions (see Timestamp).
func (e *Extensions) Add(id int8, hostType reflect.Type, encode func(v any) ([]byte, error), decode func(payload []byte) (any, error)) error {
	return e.registry.Add(id, hostType, encode, decode)
}

// AddEncode registers only the encode side: how to turn hostType into an
// ext payload for id. Pair with AddDecode to register the other side
// separately, e.g. when the two live in different call sites.
func (e *Extensions) AddEncode(id int8, hostType reflect.Type, encode func(v any) ([]byte, error)) error {
	return e.registry.AddEncode(id, hostType, encode)
}

// AddDecode registers only the decode side: how to turn id's ext payload
// back into a host value.
func (e *Extensions) AddDecode(id int8, decode func(payload []byte) (any, error)) error {
	return e.registry.AddDecode(id, decode)
}

// Remove clears both the encode and decode registration for (id, hostType).
func (e *Extensions) Remove(id int8, hostType reflect.Type) error {
	return e.registry.Remove(id, hostType)
}

// RemoveEncode clears hostType's encode registration, if any.
func (e *Extensions) RemoveEncode(hostType reflect.Type) {
	e.registry.RemoveEncode(hostType)
}

// RemoveDecode clears id's decode registration, if any.
func (e *Extensions) RemoveDecode(id int8) {
	e.registry.RemoveDecode(id)
}

// Clear removes every registration, including the built-in Timestamp
// extension if one was registered on this instance.
func (e *Extensions) Clear() {
	e.registry.Clear()
}

// RegisterTimestamp registers the built-in MessagePack Timestamp extension
// (ext id -1) for time.Time, so time.Time values round-trip using the
// canonical timestamp32/64/96 forms instead of requiring a user-supplied
// codec.
func (e *Extensions) RegisterTimestamp() error {
	return e.registry.AddBuiltin(ext.TimestampExtID, ext.TimestampType(), ext.EncodeTimestamp, ext.DecodeTimestamp)
}

// Default is the process-wide Extensions singleton new Encode/Decode calls
// can opt into via WithExtensions(cmsgpack.Default) without constructing
// their own registry. It starts empty; register types on it during program
// init the way a package-level sync.Once would.
var Default = NewExtensions()
