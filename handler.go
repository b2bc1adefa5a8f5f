package memchan

import (
	"fmt"

	"github.com/memchan-io/memchan/internal/checksum"
	"github.com/memchan-io/memchan/internal/compression"
	"github.com/memchan-io/memchan/internal/encoding"
)

// Unit is one stage of the optional pre-write handler chain (C8): a purely
// functional transform over a payload plus its own small state.
// Composition via Chained is associative.
type Unit interface {
	Apply(payload []byte) ([]byte, error)
}

// Sequence prepends a monotonically increasing 8-byte counter to every
// payload it processes. Not safe for concurrent use, matching the
// single-producer discipline of the writer it feeds.
type Sequence struct {
	next uint64
}

// Apply prepends the next counter value and advances it.
func (s *Sequence) Apply(payload []byte) ([]byte, error) {
	out := encoding.AppendFixed64(make([]byte, 0, 8+len(payload)), s.next)
	s.next++
	return append(out, payload...), nil
}

// Timestamp prepends a monotonic nanosecond stamp, sourced from clock, to
// every payload it processes.
type Timestamp struct {
	Clock Clock
}

// Apply prepends clock.Now() as an 8-byte little-endian nanosecond value.
func (t Timestamp) Apply(payload []byte) ([]byte, error) {
	out := encoding.AppendFixed64(make([]byte, 0, 8+len(payload)), uint64(t.Clock.Now()))
	return append(out, payload...), nil
}

// Chained composes two units so their effects apply in order: First, then
// Second. Chaining Chained values is associative.
type Chained struct {
	First  Unit
	Second Unit
}

// Apply runs First then Second.
func (c Chained) Apply(payload []byte) ([]byte, error) {
	mid, err := c.First.Apply(payload)
	if err != nil {
		return nil, err
	}
	return c.Second.Apply(mid)
}

// Encoder serializes a typed value to bytes before it enters the unit
// chain. It is not itself a Unit, since its input type is not []byte; it
// is the first stage of a caller's pipeline, producing the payload the
// chain (and eventually the writer) operates on.
type Encoder[T any] struct {
	Encode func(T) ([]byte, error)
}

// EncodeTo runs the encoder and returns the resulting payload.
func (e Encoder[T]) EncodeTo(v T) ([]byte, error) {
	return e.Encode(v)
}

// Compress transforms a payload with an optional compression algorithm
// before it reaches the writer. A channel's MaxRecordLen bounds the
// compressed frame, so this unit is opt-in and only pays off once a
// payload is large enough to benefit.
type Compress struct {
	Type compression.Type
}

// Apply compresses payload using c.Type.
func (c Compress) Apply(payload []byte) ([]byte, error) {
	out, err := compression.Compress(c.Type, payload)
	if err != nil {
		return nil, fmt.Errorf("compress handler: %w", err)
	}
	return out, nil
}

// Integrity appends an 8-byte XXH3 digest trailer to the payload, letting a
// consumer detect a torn or corrupted record beyond what the length-word
// framing alone catches (a length word only proves the writer believed it
// wrote L bytes, not that those bytes survived intact).
type Integrity struct{}

// Apply appends Digest64(payload) to payload.
func (Integrity) Apply(payload []byte) ([]byte, error) {
	digest := checksum.Digest64(payload)
	return checksum.PutDigest64(append([]byte(nil), payload...), digest), nil
}

// VerifyIntegrity splits a payload produced by Integrity.Apply back into
// its original bytes and reports whether the trailing digest matches. It
// is the reader-side counterpart; readers apply it after TryRead since the
// handler chain itself only runs on the write path.
func VerifyIntegrity(payload []byte) (data []byte, ok bool) {
	if len(payload) < checksum.DigestSize {
		return nil, false
	}
	split := len(payload) - checksum.DigestSize
	data = payload[:split]
	want := checksum.Digest64At(payload[split:])
	return data, checksum.Digest64(data) == want
}
