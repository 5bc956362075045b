// Package idgen generates UUID strings for client order, quote, and request
// identifier fields, and checks whether a UUID is set.
package idgen

import "github.com/google/uuid"

// New returns a fresh UUIDv4 string suitable for ClOrdID/QuoteReqID/MDReqID
// fields.
func New() string {
	return uuid.New().String()
}

// IsSet mirrors the source system's UUID.isSet() semantics: true only when
// both 64-bit halves are non-zero. A UUID with either half all-zero (e.g.
// 00000000-0000-0000-ffff-ffffffffffff) is NOT considered set, even though
// it is not uuid.Nil. This is deliberately stricter than "not Nil" — see
// DESIGN.md's Open Question decision.
func IsSet(u uuid.UUID) bool {
	var hi, lo uint64
	for i := 0; i < 8; i++ {
		hi = hi<<8 | uint64(u[i])
	}
	for i := 8; i < 16; i++ {
		lo = lo<<8 | uint64(u[i])
	}
	return hi != 0 && lo != 0
}
