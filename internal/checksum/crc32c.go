// Package checksum provides the checksum primitives used by the channel
// header codec (CRC32C) and, optionally, by pre-write handler units that
// want a fast non-cryptographic payload digest (XXH3, see digest.go).
package checksum

import (
	"hash/crc32"
)

// crc32cTable is the Castagnoli polynomial table used for CRC32C.
var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// Value computes the CRC32C checksum of data.
func Value(data []byte) uint32 {
	return crc32.Checksum(data, crc32cTable)
}
