package memchan

import (
	"bytes"
	"testing"

	"github.com/memchan-io/memchan/internal/compression"
	"github.com/memchan-io/memchan/internal/encoding"
)

func TestSequenceAppliesMonotonicCounter(t *testing.T) {
	s := &Sequence{}
	first, err := s.Apply([]byte("a"))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	second, err := s.Apply([]byte("a"))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if encoding.DecodeFixed64(first) != 0 || encoding.DecodeFixed64(second) != 1 {
		t.Fatalf("counters = %d, %d, want 0, 1", encoding.DecodeFixed64(first), encoding.DecodeFixed64(second))
	}
	if !bytes.Equal(first[8:], []byte("a")) {
		t.Fatalf("payload suffix = %q, want %q", first[8:], "a")
	}
}

func TestChainedComposesInOrder(t *testing.T) {
	seq := &Sequence{}
	c := Chained{First: seq, Second: Integrity{}}

	out, err := c.Apply([]byte("x"))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	data, ok := VerifyIntegrity(out)
	if !ok {
		t.Fatal("VerifyIntegrity failed")
	}
	if encoding.DecodeFixed64(data) != 0 || !bytes.Equal(data[8:], []byte("x")) {
		t.Fatalf("decoded chain output = %v", data)
	}
}

func TestIntegrityRoundTrip(t *testing.T) {
	payload := []byte("payload bytes")
	out, err := Integrity{}.Apply(payload)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	data, ok := VerifyIntegrity(out)
	if !ok || !bytes.Equal(data, payload) {
		t.Fatalf("VerifyIntegrity = (%q, %v), want (%q, true)", data, ok, payload)
	}
}

func TestIntegrityDetectsCorruption(t *testing.T) {
	out, _ := Integrity{}.Apply([]byte("payload bytes"))
	out[0] ^= 0xFF
	if _, ok := VerifyIntegrity(out); ok {
		t.Fatal("VerifyIntegrity accepted corrupted payload")
	}
}

func TestCompressRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("abc"), 100)
	c := Compress{Type: compression.Snappy}
	compressed, err := c.Apply(payload)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	got, err := compression.Decompress(compression.Snappy, compressed, len(payload))
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatal("round trip mismatch")
	}
}

type fixedClock int64

func (c fixedClock) Now() int64 { return int64(c) }

func TestTimestampPrepends(t *testing.T) {
	ts := Timestamp{Clock: fixedClock(12345)}
	out, err := ts.Apply([]byte("x"))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if encoding.DecodeFixed64(out) != 12345 {
		t.Fatalf("stamp = %d, want 12345", encoding.DecodeFixed64(out))
	}
}

func TestEncoderEncodesTypedValue(t *testing.T) {
	e := Encoder[int]{Encode: func(v int) ([]byte, error) {
		return encoding.AppendFixed64(nil, uint64(v)), nil
	}}
	out, err := e.EncodeTo(7)
	if err != nil {
		t.Fatalf("EncodeTo: %v", err)
	}
	if encoding.DecodeFixed64(out) != 7 {
		t.Fatalf("decoded = %d, want 7", encoding.DecodeFixed64(out))
	}
}
