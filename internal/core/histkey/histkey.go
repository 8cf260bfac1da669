// Package histkey encodes history keys as ordered byte strings
//
// A key is ns ++ 0x1F ++ be64(ts) ++ 0x1F ++ be64(disc), so lexical byte order
// matches (ts, disc) order inside one namespace
package histkey

import (
	"bytes"
	"encoding/binary"
	"errors"
)

// Sep separates the three key fields
const Sep byte = 0x1F

// NamespaceEncounter is the namespace for encounter records
const NamespaceEncounter = "enc"

// ErrSeparatorInNamespace is returned when a namespace contains Sep
var ErrSeparatorInNamespace = errors.New("histkey: namespace contains separator byte")

// Key identifies one stored record
type Key struct {
	Namespace     string
	TimestampMs   uint64
	Discriminator uint64
}

// Encode returns the byte form of (ns, tsMs, disc)
func Encode(ns string, tsMs, disc uint64) ([]byte, error) {
	if bytes.IndexByte([]byte(ns), Sep) >= 0 {
		return nil, ErrSeparatorInNamespace
	}
	out := make([]byte, 0, len(ns)+18)
	out = append(out, ns...)
	out = append(out, Sep)
	out = binary.BigEndian.AppendUint64(out, tsMs)
	out = append(out, Sep)
	out = binary.BigEndian.AppendUint64(out, disc)
	return out, nil
}

// MustEncode is Encode for constant namespaces, it panics on a bad namespace
func MustEncode(ns string, tsMs, disc uint64) []byte {
	b, err := Encode(ns, tsMs, disc)
	if err != nil {
		panic(err)
	}
	return b
}

// Bytes encodes k
func (k Key) Bytes() ([]byte, error) {
	return Encode(k.Namespace, k.TimestampMs, k.Discriminator)
}

// Decode reads the two fixed width fields from the tail of b
// the fields may hold any byte, only the namespace is checked for Sep
func Decode(b []byte) (Key, bool) {
	n := len(b)
	if n < 18 || b[n-18] != Sep || b[n-9] != Sep {
		return Key{}, false
	}
	ns := b[:n-18]
	if bytes.IndexByte(ns, Sep) >= 0 {
		return Key{}, false
	}
	return Key{
		Namespace:     string(ns),
		TimestampMs:   binary.BigEndian.Uint64(b[n-17 : n-9]),
		Discriminator: binary.BigEndian.Uint64(b[n-8:]),
	}, true
}
