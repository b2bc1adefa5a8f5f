// Package mmap manages the memory-mapped region backing a channel file:
// creating a file of the exact size a channel needs, mapping it read-write
// for the writer or read-only for every reader, and releasing the mapping
// and file descriptor deterministically.
//
// Grounded on the mmap-backed WAL persister in the broader example pack
// (marmos91/dittofs's wal/mmap.go), which establishes the same
// create-size-map-msync-munmap lifecycle using golang.org/x/sys/unix.
package mmap

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// InconsistentError is returned when a file's on-disk length disagrees with
// the length the caller expected to map (e.g. derived from a decoded
// header's capacity). Mapping proceeds only when the two agree.
type InconsistentError struct {
	Path string
	Want int64
	Got  int64
}

func (e *InconsistentError) Error() string {
	return fmt.Sprintf("mmap: %s: length %d disagrees with declared %d", e.Path, e.Got, e.Want)
}

// Region is a mapped view of a file. The zero value is not usable; obtain
// one via Create or Open.
type Region struct {
	file     *os.File
	data     []byte
	writable bool
}

// Create allocates a new file of exactly size bytes at path and maps it
// read-write. It fails if a file already exists at path.
func Create(path string, size int64) (*Region, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("mmap: create %s: %w", path, err)
	}
	if err := f.Truncate(size); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("mmap: truncate %s: %w", path, err)
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("mmap: map %s: %w", path, err)
	}
	return &Region{file: f, data: data, writable: true}, nil
}

// Open maps an existing file at path. If wantSize is nonzero, the file's
// actual length must equal it exactly or Open returns *InconsistentError.
// writable selects PROT_WRITE (the writer reopening its own channel) versus
// a read-only mapping (every reader).
func Open(path string, wantSize int64, writable bool) (*Region, error) {
	flag := os.O_RDONLY
	if writable {
		flag = os.O_RDWR
	}
	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap: open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap: stat %s: %w", path, err)
	}
	if wantSize != 0 && info.Size() != wantSize {
		f.Close()
		return nil, &InconsistentError{Path: path, Want: wantSize, Got: info.Size()}
	}

	prot := unix.PROT_READ
	if writable {
		prot |= unix.PROT_WRITE
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(info.Size()), prot, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap: map %s: %w", path, err)
	}
	return &Region{file: f, data: data, writable: writable}, nil
}

// Bytes returns the mapped region's backing slice. Callers on the write
// side use it directly with internal/frame's atomic load/store helpers.
func (r *Region) Bytes() []byte {
	return r.data
}

// Flush asks the OS to write back the dirty pages covering the mapping.
// async selects MS_ASYNC (schedule and return) over MS_SYNC (block until
// durable).
func (r *Region) Flush(async bool) error {
	flags := unix.MS_SYNC
	if async {
		flags = unix.MS_ASYNC
	}
	return unix.Msync(r.data, flags)
}

// Close unmaps the region and closes the underlying file descriptor. It is
// safe to call more than once.
func (r *Region) Close() error {
	if r.data == nil {
		return nil
	}
	err := unix.Munmap(r.data)
	r.data = nil
	if cerr := r.file.Close(); err == nil {
		err = cerr
	}
	return err
}
