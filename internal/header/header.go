// Package header packs and validates the fixed-size metadata header that
// precedes every channel's record region. The header is written once at
// creation time and never mutated afterward; every reader that opens the
// file re-derives its view of the channel purely from these bytes.
package header

import (
	"fmt"

	"github.com/memchan-io/memchan/internal/checksum"
	"github.com/memchan-io/memchan/internal/encoding"
	"github.com/memchan-io/memchan/internal/frame"
)

// Size is the fixed on-disk width of the header, in bytes. It is a multiple
// of the record alignment (8) so the record region that follows starts on
// an aligned boundary.
const Size = 64

// Magic identifies a file as a channel. It is the first 8 bytes of every
// valid header.
const Magic uint64 = 0x6368616e6d656d31 // "chanmem1"

// Version is the only layout version this codec understands.
const Version uint32 = 1

// Field offsets within the encoded header.
const (
	offMagic         = 0
	offVersion       = 8
	offChannelID     = 12
	offCapacity      = 20
	offMaxRecordLen  = 24
	offTimeoutNs     = 28
	offCreationNs    = 36
	offReserved      = 44
	reservedSize     = 16
	offChecksum      = offReserved + reservedSize // 60
	checksumCoverage = offChecksum                // bytes [0, offChecksum) feed the CRC
)

// recordAlignment is the alignment every frame (and the record region
// itself) must respect.
const recordAlignment = 8

// ErrorKind discriminates why Decode rejected a header.
type ErrorKind uint8

const (
	BadMagic ErrorKind = iota
	UnsupportedVersion
	BadChecksum
	InvalidCapacity
	InvalidMaxRecord
)

func (k ErrorKind) String() string {
	switch k {
	case BadMagic:
		return "BadMagic"
	case UnsupportedVersion:
		return "UnsupportedVersion"
	case BadChecksum:
		return "BadChecksum"
	case InvalidCapacity:
		return "InvalidCapacity"
	case InvalidMaxRecord:
		return "InvalidMaxRecord"
	default:
		return "Unknown"
	}
}

// Error reports why a header failed to decode or validate.
type Error struct {
	Kind ErrorKind
}

func (e *Error) Error() string {
	return fmt.Sprintf("header: %s", e.Kind)
}

// Header is the decoded, validated metadata of a channel.
type Header struct {
	ChannelID     uint64
	Capacity      uint32
	MaxRecordLen  uint32
	TimeoutNs     uint64
	CreationNs    uint64
}

// Validate checks the field-level invariants that apply independent of
// encoding: capacity must be a positive multiple of the record alignment,
// and max_record_len must leave room for at least the smallest frame
// overhead.
func (h Header) Validate() error {
	if h.Capacity == 0 || h.Capacity%recordAlignment != 0 {
		return &Error{Kind: InvalidCapacity}
	}
	if h.MaxRecordLen == 0 || h.MaxRecordLen > frame.MaxLength || uint64(h.MaxRecordLen)+4 > uint64(h.Capacity) {
		return &Error{Kind: InvalidMaxRecord}
	}
	return nil
}

// Encode packs h into its fixed 64-byte on-disk representation.
func Encode(h Header) []byte {
	buf := make([]byte, Size)
	encoding.EncodeFixed64(buf[offMagic:], Magic)
	encoding.EncodeFixed32(buf[offVersion:], Version)
	encoding.EncodeFixed64(buf[offChannelID:], h.ChannelID)
	encoding.EncodeFixed32(buf[offCapacity:], h.Capacity)
	encoding.EncodeFixed32(buf[offMaxRecordLen:], h.MaxRecordLen)
	encoding.EncodeFixed64(buf[offTimeoutNs:], h.TimeoutNs)
	encoding.EncodeFixed64(buf[offCreationNs:], h.CreationNs)
	// reserved bytes stay zero.
	sum := checksum.Value(buf[:checksumCoverage])
	encoding.EncodeFixed32(buf[offChecksum:], sum)
	return buf
}

// Decode unpacks and validates a header from its 64-byte on-disk form.
// REQUIRES: len(src) >= Size.
func Decode(src []byte) (Header, error) {
	if encoding.DecodeFixed64(src[offMagic:]) != Magic {
		return Header{}, &Error{Kind: BadMagic}
	}
	if encoding.DecodeFixed32(src[offVersion:]) != Version {
		return Header{}, &Error{Kind: UnsupportedVersion}
	}
	want := encoding.DecodeFixed32(src[offChecksum:])
	got := checksum.Value(src[:checksumCoverage])
	if got != want {
		return Header{}, &Error{Kind: BadChecksum}
	}

	h := Header{
		ChannelID:    encoding.DecodeFixed64(src[offChannelID:]),
		Capacity:     encoding.DecodeFixed32(src[offCapacity:]),
		MaxRecordLen: encoding.DecodeFixed32(src[offMaxRecordLen:]),
		TimeoutNs:    encoding.DecodeFixed64(src[offTimeoutNs:]),
		CreationNs:   encoding.DecodeFixed64(src[offCreationNs:]),
	}
	if err := h.Validate(); err != nil {
		return Header{}, err
	}
	return h, nil
}
