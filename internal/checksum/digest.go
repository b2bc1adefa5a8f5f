package checksum

import "github.com/zeebo/xxh3"

// DigestSize is the width in bytes of a Digest64 output.
const DigestSize = 8

// Digest64 computes a fast, non-cryptographic 64-bit digest of data using
// XXH3. It is used by the Integrity handler unit to append a trailer a
// consumer can check beyond what the record length word already catches
// (a length word only proves the writer believed it wrote L bytes, not that
// those bytes survived intact).
func Digest64(data []byte) uint64 {
	return xxh3.Hash(data)
}

// PutDigest64 appends the little-endian encoding of v to dst and returns
// the extended slice.
func PutDigest64(dst []byte, v uint64) []byte {
	return append(dst,
		byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56),
	)
}

// Digest64At decodes a little-endian uint64 from the first 8 bytes of src.
func Digest64At(src []byte) uint64 {
	_ = src[7]
	return uint64(src[0]) | uint64(src[1])<<8 | uint64(src[2])<<16 | uint64(src[3])<<24 |
		uint64(src[4])<<32 | uint64(src[5])<<40 | uint64(src[6])<<48 | uint64(src[7])<<56
}
