package memchan

import (
	"errors"
	"fmt"
)

// Creation errors, returned by CreateWriter.
var (
	ErrAlreadyExists   = errors.New("memchan: channel already exists")
	ErrInvalidMetadata = errors.New("memchan: invalid metadata")
)

// Open/validate errors, returned by OpenReader.
var (
	ErrNotFound = errors.New("memchan: channel not found")
)

// MappingInconsistentError wraps a mapping-layer size mismatch between an
// on-disk file and the capacity its header declares.
type MappingInconsistentError struct {
	Path string
	err  error
}

func (e *MappingInconsistentError) Error() string {
	return fmt.Sprintf("memchan: mapping inconsistent for %s: %v", e.Path, e.err)
}

func (e *MappingInconsistentError) Unwrap() error { return e.err }

// Write errors, returned by Writer.Write.
var (
	ErrChannelFull    = errors.New("memchan: channel full")
	ErrRecordTooLarge = errors.New("memchan: record exceeds max_record_len")
	ErrChannelClosed  = errors.New("memchan: channel closed")
)

// EncodeFailedError wraps a failure from a handler unit in the pre-write
// chain (C8). It does not move the writer to a terminal state: the caller
// may retry with a different payload.
type EncodeFailedError struct {
	err error
}

func (e *EncodeFailedError) Error() string {
	return fmt.Sprintf("memchan: encode failed: %v", e.err)
}

func (e *EncodeFailedError) Unwrap() error { return e.err }

// ErrInvalidPosition is returned by Reader.MoveTo when the requested
// position is not 8-byte aligned or falls outside the record region.
var ErrInvalidPosition = errors.New("memchan: invalid position")
