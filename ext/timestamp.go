// Package ext provides the codec's built-in extension types and a
// compression-backed payload helper for user-registered extensions.
package ext

import (
	"encoding/binary"
	"math"
	"reflect"
	"time"

	"github.com/svenboertjens/cmsgpack/errs"
)

// TimestampExtID is the MessagePack-reserved ext id for the Timestamp
// extension type. Every conformant implementation treats this one negative
// id specially. The registry accepts it only through its built-in
// registration path (Extensions.RegisterTimestamp); user registrations are
// limited to [0, 127].
const TimestampExtID int8 = -1

var timeType = reflect.TypeOf(time.Time{})

// TimestampType returns time.Time's reflect.Type, for registering the
// Timestamp extension on a registry that exposes its own Add/AddBuiltin.
func TimestampType() reflect.Type { return timeType }

// EncodeTimestamp picks the shortest of the three canonical Timestamp forms
// that round-trips t: timestamp32 (seconds only, fits uint32, no
// sub-second component), timestamp64 (30-bit nanoseconds packed with a
// 34-bit seconds field, fits uint34), or timestamp96 (8-byte signed
// seconds plus a 4-byte nanosecond field) otherwise.
//
// Picking between a 4-byte and 8-byte seconds field by magnitude alone
// would cover most cases; this generalizes that to all three widths the
// MessagePack Timestamp extension defines, applying the same minimal-form
// selection the rest of this codec applies to ints/strings/containers.
func EncodeTimestamp(v any) ([]byte, error) {
	t, ok := v.(time.Time)
	if !ok {
		return nil, errs.NewTypeError("ext.Timestamp: value is not time.Time")
	}

	secs := t.Unix()
	nsecs := int64(t.Nanosecond())

	if nsecs == 0 && secs >= 0 && secs <= math.MaxUint32 {
		buf := make([]byte, 4)
		binary.BigEndian.PutUint32(buf, uint32(secs))

		return buf, nil
	}

	if secs >= 0 && uint64(secs) < (1<<34) {
		buf := make([]byte, 8)
		packed := uint64(nsecs)<<34 | uint64(secs)
		binary.BigEndian.PutUint64(buf, packed)

		return buf, nil
	}

	buf := make([]byte, 12)
	binary.BigEndian.PutUint32(buf[0:4], uint32(nsecs))
	binary.BigEndian.PutUint64(buf[4:12], uint64(secs))

	return buf, nil
}

// DecodeTimestamp reconstructs a time.Time from a Timestamp extension
// payload of length 4, 8, or 12, per MessagePack's fixed form lengths.
func DecodeTimestamp(payload []byte) (any, error) {
	switch len(payload) {
	case 4:
		secs := binary.BigEndian.Uint32(payload)

		return time.Unix(int64(secs), 0).UTC(), nil
	case 8:
		packed := binary.BigEndian.Uint64(payload)
		nsecs := packed >> 34
		secs := packed & (1<<34 - 1)

		return time.Unix(int64(secs), int64(nsecs)).UTC(), nil
	case 12:
		nsecs := binary.BigEndian.Uint32(payload[0:4])
		secs := int64(binary.BigEndian.Uint64(payload[4:12]))

		return time.Unix(secs, int64(nsecs)).UTC(), nil
	default:
		return nil, errs.WrapValue(errs.ErrBadExtReturn, "ext.Timestamp: invalid payload length")
	}
}
