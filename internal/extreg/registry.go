// Package extreg implements the extensions registry: the bidirectional
// host-type↔ext-id mapping the encoder and decoder cores consult for
// user-registered types. Lookups below linearScanThreshold registrations
// scan a small slice rather than hash into a map, since a handful of
// linear comparisons beats a map probe at that size; at or above the
// threshold the map takes over.
package extreg

import (
	"reflect"
	"sync"

	"github.com/svenboertjens/cmsgpack/errs"
	"github.com/svenboertjens/cmsgpack/internal/hash"
)

// EncodeFunc converts a registered host value into its ext payload bytes.
type EncodeFunc func(v any) ([]byte, error)

// DecodeFunc reconstructs a host value from an ext payload.
type DecodeFunc func(payload []byte) (any, error)

// linearScanThreshold: below this many registrations a linear scan beats
// reflect.Type map hashing.
const linearScanThreshold = 5

type encEntry struct {
	hostType reflect.Type
	extID    int8
	fn       EncodeFunc
}

// Registry is the bidirectional host-type↔ext-id mapping described in the
// wire spec's Extensions registry entity. The zero value is not usable; use
// New.
type Registry struct {
	mu sync.Mutex

	byType map[reflect.Type]encEntry
	byList []encEntry // kept in sync with byType; linear-scanned while small

	byID map[int8]DecodeFunc

	allowSubclasses bool
	passMemoryView  bool

	subclassCache map[uint64]encEntry
}

// New returns an empty Registry. allowSubclasses and passMemoryView mirror
// the Extensions constructor flags.
func New(allowSubclasses, passMemoryView bool) *Registry {
	return &Registry{
		byType:        make(map[reflect.Type]encEntry),
		byID:          make(map[int8]DecodeFunc),
		subclassCache: make(map[uint64]encEntry),

		allowSubclasses: allowSubclasses,
		passMemoryView:  passMemoryView,
	}
}

// AllowSubclasses reports whether subclass (embedded-ancestor) resolution is
// enabled for encode-side lookups.
func (r *Registry) AllowSubclasses() bool { return r.allowSubclasses }

// PassMemoryView reports whether decode-fns should receive a zero-copy view
// into the wire buffer instead of an owned copy.
func (r *Registry) PassMemoryView() bool { return r.passMemoryView }

func validateID(id int8, allowNegative bool) error {
	if id < 0 && !allowNegative {
		return errs.WrapValue(errs.ErrInvalidExtID, "ext id out of [0,127]; negative range is reserved")
	}

	return nil
}

// Add registers both the encode and decode side of an extension in one call.
func (r *Registry) Add(id int8, hostType reflect.Type, enc EncodeFunc, dec DecodeFunc) error {
	if err := r.AddEncode(id, hostType, enc); err != nil {
		return err
	}

	return r.AddDecode(id, dec)
}

// AddBuiltin is Add without the negative-id restriction; see
// AddBuiltinEncode.
func (r *Registry) AddBuiltin(id int8, hostType reflect.Type, enc EncodeFunc, dec DecodeFunc) error {
	if err := r.AddBuiltinEncode(id, hostType, enc); err != nil {
		return err
	}

	return r.AddBuiltinDecode(id, dec)
}

// AddEncode registers how to encode hostType as ext id id.
func (r *Registry) AddEncode(id int8, hostType reflect.Type, enc EncodeFunc) error {
	return r.addEncode(id, hostType, enc, false)
}

// AddBuiltinEncode is AddEncode without the negative-id restriction, for use
// by the codec's own built-in extensions (e.g. the Timestamp extension at
// id -1). User code has no access to this method.
func (r *Registry) AddBuiltinEncode(id int8, hostType reflect.Type, enc EncodeFunc) error {
	return r.addEncode(id, hostType, enc, true)
}

func (r *Registry) addEncode(id int8, hostType reflect.Type, enc EncodeFunc, allowNegative bool) error {
	if hostType == nil {
		return errs.WrapType(errs.ErrNotAHostType, "host_type must be non-nil")
	}

	if enc == nil {
		return errs.WrapType(errs.ErrNotCallable, "encoder function must be non-nil")
	}

	if err := validateID(id, allowNegative); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry := encEntry{hostType: hostType, extID: id, fn: enc}
	r.byType[hostType] = entry
	r.rebuildList()
	clear(r.subclassCache)

	return nil
}

// AddDecode registers how to decode ext id id.
func (r *Registry) AddDecode(id int8, dec DecodeFunc) error {
	return r.addDecode(id, dec, false)
}

// AddBuiltinDecode is AddDecode without the negative-id restriction; see
// AddBuiltinEncode.
func (r *Registry) AddBuiltinDecode(id int8, dec DecodeFunc) error {
	return r.addDecode(id, dec, true)
}

func (r *Registry) addDecode(id int8, dec DecodeFunc, allowNegative bool) error {
	if dec == nil {
		return errs.WrapType(errs.ErrNotCallable, "decoder function must be non-nil")
	}

	if err := validateID(id, allowNegative); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[id] = dec

	return nil
}

// Remove clears both the encode and decode registration for (id, hostType).
func (r *Registry) Remove(id int8, hostType reflect.Type) error {
	r.RemoveEncode(hostType)
	r.RemoveDecode(id)

	return nil
}

// RemoveEncode clears hostType's encode registration, if any.
func (r *Registry) RemoveEncode(hostType reflect.Type) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byType, hostType)
	r.rebuildList()
	clear(r.subclassCache)
}

// RemoveDecode clears id's decode registration, if any.
func (r *Registry) RemoveDecode(id int8) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byID, id)
}

// Clear removes every registration.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byType = make(map[reflect.Type]encEntry)
	r.byList = nil
	r.byID = make(map[int8]DecodeFunc)
	r.subclassCache = make(map[uint64]encEntry)
}

// rebuildList must be called with mu held; it keeps byList in sync with
// byType for the linear-scan fast path.
func (r *Registry) rebuildList() {
	r.byList = make([]encEntry, 0, len(r.byType))
	for _, e := range r.byType {
		r.byList = append(r.byList, e)
	}
}

func (r *Registry) lookupExact(rt reflect.Type) (encEntry, bool) {
	if len(r.byList) < linearScanThreshold {
		for _, e := range r.byList {
			if e.hostType == rt {
				return e, true
			}
		}

		return encEntry{}, false
	}

	e, ok := r.byType[rt]

	return e, ok
}

// Lookup resolves rt to its registered ext id and encode function. When
// AllowSubclasses is set and rt has no exact registration, it walks rt's
// embedded-struct ancestry (depth-first, declaration order) for the first
// registered ancestor, memoizing the result keyed by rt's type name.
func (r *Registry) Lookup(rt reflect.Type) (id int8, fn EncodeFunc, ok bool) {
	if e, found := r.lookupExact(rt); found {
		return e.extID, e.fn, true
	}

	if !r.allowSubclasses {
		return 0, nil, false
	}

	key := hash.ID(rt.String())

	r.mu.Lock()
	defer r.mu.Unlock()

	if e, found := r.subclassCache[key]; found {
		return e.extID, e.fn, true
	}

	if e, found := r.resolveAncestor(rt); found {
		r.subclassCache[key] = e

		return e.extID, e.fn, true
	}

	return 0, nil, false
}

// resolveAncestor walks rt's embedded (anonymous) struct fields depth-first,
// in declaration order, and returns the first ancestor with an exact
// registration — the Go analogue of walking a class's base-class chain. A
// registered ancestor reached through an earlier field wins over one
// embedded directly in a later field.
func (r *Registry) resolveAncestor(rt reflect.Type) (encEntry, bool) {
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}

	if rt.Kind() != reflect.Struct {
		return encEntry{}, false
	}

	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.Anonymous {
			continue
		}

		if e, found := r.lookupExact(f.Type); found {
			return e, true
		}

		if e, found := r.resolveAncestor(f.Type); found {
			return e, true
		}
	}

	return encEntry{}, false
}

// LookupDecode resolves id to its decode function.
func (r *Registry) LookupDecode(id int8) (DecodeFunc, bool) {
	fn, ok := r.byID[id]

	return fn, ok
}
