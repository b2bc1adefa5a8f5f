// Package compression implements the optional payload codecs used by the
// Compress pre-write handler unit. A channel's max_record_len bounds the
// *compressed* frame, so compression is opt-in: most IPC payloads passed
// over a channel are already small, and compressing a few hundred bytes
// rarely pays for itself.
package compression

import (
	"fmt"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type identifies a compression algorithm.
type Type uint8

const (
	// None performs no transformation.
	None Type = 0
	// Snappy uses Google's Snappy block format.
	Snappy Type = 1
	// LZ4 uses LZ4's raw block format (no frame header).
	LZ4 Type = 2
	// Zstd uses Zstandard.
	Zstd Type = 3
)

// String returns the human-readable name of the compression type.
func (t Type) String() string {
	switch t {
	case None:
		return "None"
	case Snappy:
		return "Snappy"
	case LZ4:
		return "LZ4"
	case Zstd:
		return "Zstd"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// Compress compresses data using the given algorithm.
func Compress(t Type, data []byte) ([]byte, error) {
	switch t {
	case None:
		return data, nil
	case Snappy:
		return snappy.Encode(nil, data), nil
	case LZ4:
		return compressLZ4(data)
	case Zstd:
		return compressZstd(data)
	default:
		return nil, fmt.Errorf("compression: unsupported type %s", t)
	}
}

// Decompress decompresses data using the given algorithm. expectedSize, if
// nonzero, is the known uncompressed length and lets LZ4 skip buffer growth.
func Decompress(t Type, data []byte, expectedSize int) ([]byte, error) {
	switch t {
	case None:
		return data, nil
	case Snappy:
		return snappy.Decode(nil, data)
	case LZ4:
		return decompressLZ4(data, expectedSize)
	case Zstd:
		return decompressZstd(data)
	default:
		return nil, fmt.Errorf("compression: unsupported type %s", t)
	}
}

// lz4Stored/lz4Compressed tag the first byte of compressLZ4's output. LZ4's
// raw block format carries no header of its own, and CompressBlock reports
// n==0 rather than expanding data it can't shrink, so a one-byte tag is the
// only way Decompress can tell a stored block from a compressed one.
const (
	lz4Stored     = 0
	lz4Compressed = 1
)

func compressLZ4(data []byte) ([]byte, error) {
	dst := make([]byte, 1+lz4.CompressBlockBound(len(data)))
	var ht [1 << 16]int
	n, err := lz4.CompressBlock(data, dst[1:], ht[:])
	if err != nil {
		return nil, fmt.Errorf("lz4 compress block: %w", err)
	}
	if n == 0 {
		// Incompressible (or empty) input: store it verbatim.
		stored := make([]byte, 1+len(data))
		stored[0] = lz4Stored
		copy(stored[1:], data)
		return stored, nil
	}
	dst[0] = lz4Compressed
	return dst[:1+n], nil
}

func decompressLZ4(data []byte, expectedSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("lz4 uncompress block: empty input")
	}
	tag, body := data[0], data[1:]
	if tag == lz4Stored {
		return append([]byte(nil), body...), nil
	}

	if expectedSize > 0 {
		dst := make([]byte, expectedSize)
		n, err := lz4.UncompressBlock(body, dst)
		if err != nil {
			return nil, fmt.Errorf("lz4 uncompress block: %w", err)
		}
		return dst[:n], nil
	}

	bufSize := max(len(body)*4, 256)
	for range 10 {
		dst := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(body, dst)
		if err == nil {
			return dst[:n], nil
		}
		bufSize *= 2
	}
	return nil, fmt.Errorf("lz4 uncompress block: buffer too small after retries")
}

func compressZstd(data []byte) ([]byte, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	defer encoder.Close()
	return encoder.EncodeAll(data, nil), nil
}

func decompressZstd(data []byte) ([]byte, error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	defer decoder.Close()
	return decoder.DecodeAll(data, nil)
}
