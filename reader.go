package memchan

import (
	"errors"
	"fmt"
	"os"

	"github.com/memchan-io/memchan/internal/frame"
	"github.com/memchan-io/memchan/internal/header"
	"github.com/memchan-io/memchan/internal/logging"
	"github.com/memchan-io/memchan/internal/mmap"
)

// ReadKind discriminates the outcome of a Reader's TryRead call.
type ReadKind uint8

const (
	// ReadNothing means the slot at the current position is still zero:
	// no record published yet, read_pos unchanged.
	ReadNothing ReadKind = iota
	// ReadRecord means a payload was observed and read_pos advanced past it.
	ReadRecord
	// ReadEndOfChannel is terminal: the writer installed a Watermark.
	ReadEndOfChannel
	// ReadChannelClosed is terminal: the writer closed gracefully.
	ReadChannelClosed
	// ReadChannelAborted is terminal: the writer's handle was dropped
	// without closing.
	ReadChannelAborted
	// ReadChannelTimeout is terminal: surfaced only by TimeoutReader.
	ReadChannelTimeout
	// ReadCorrupt is terminal: the length word was neither zero, a legal
	// length, nor a known sentinel.
	ReadCorrupt
)

func (k ReadKind) String() string {
	switch k {
	case ReadNothing:
		return "Nothing"
	case ReadRecord:
		return "Record"
	case ReadEndOfChannel:
		return "EndOfChannel"
	case ReadChannelClosed:
		return "ChannelClosed"
	case ReadChannelAborted:
		return "ChannelAborted"
	case ReadChannelTimeout:
		return "ChannelTimeout"
	case ReadCorrupt:
		return "CorruptRecord"
	default:
		return "Unknown"
	}
}

// IsTerminal reports whether k ends a reader's progress.
func (k ReadKind) IsTerminal() bool {
	return k != ReadNothing && k != ReadRecord
}

// ReadResult is the outcome of one TryRead call.
type ReadResult struct {
	Kind     ReadKind
	Payload  []byte // valid only when Kind == ReadRecord; never copied
	Position uint64 // valid only when Kind == ReadRecord
}

// Reader is a single, independent consumer of a channel's record region.
// Any number of Readers may coexist on the same file; none mutate it.
type Reader struct {
	region   *mmap.Region
	meta     Metadata
	logger   logging.Logger
	readPos  uint32
	terminal *ReadResult
}

// OpenReader maps the channel file at path, validates its header, and
// returns a Reader positioned at the start of the record region.
func OpenReader(path string, opts ...ReaderOption) (*Reader, error) {
	o := newReaderOptions(opts)

	region, err := mmap.Open(path, 0, false)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}

	if len(region.Bytes()) < header.Size {
		region.Close()
		return nil, &MappingInconsistentError{Path: path, err: fmt.Errorf("file shorter than header (%d bytes)", len(region.Bytes()))}
	}

	h, err := header.Decode(region.Bytes()[:header.Size])
	if err != nil {
		region.Close()
		return nil, err
	}
	meta := fromHeader(h)

	if int64(len(region.Bytes())) != meta.fileSize() {
		region.Close()
		return nil, &MappingInconsistentError{
			Path: path,
			err:  fmt.Errorf("file length %d disagrees with header capacity %d", len(region.Bytes()), meta.Capacity),
		}
	}

	r := &Reader{region: region, meta: meta, logger: o.logger}
	r.logger.Debugf("%smapped %d bytes at %s", logging.NSMmap, len(region.Bytes()), path)
	r.logger.Infof("%sopened channel id=%d capacity=%d path=%s", logging.NSReader, meta.ChannelID, meta.Capacity, path)
	return r, nil
}

func (r *Reader) recordRegion() []byte {
	return r.region.Bytes()[header.Size:]
}

// Metadata returns the channel's decoded header.
func (r *Reader) Metadata() Metadata { return r.meta }

// TryRead performs one wait-free read attempt. Once a terminal ReadResult
// is returned, every subsequent call returns the identical value without
// touching the mapping again.
func (r *Reader) TryRead() ReadResult {
	if r.terminal != nil {
		return *r.terminal
	}

	if r.readPos+sentinelWordSize > r.meta.Capacity {
		// No room remains for even a sentinel word: the writer could not
		// have published anything past this point.
		return r.latch(ReadResult{Kind: ReadEndOfChannel})
	}

	word := frame.LoadAcquire(r.recordRegion(), r.readPos)
	res, length := frame.Decode(word, r.meta.MaxRecordLen)

	switch res {
	case frame.NotReady:
		return ReadResult{Kind: ReadNothing}
	case frame.Record:
		pos := r.readPos
		payload := r.recordRegion()[pos+4 : pos+4+length]
		r.readPos += frame.Size(length)
		return ReadResult{Kind: ReadRecord, Payload: payload, Position: uint64(pos)}
	case frame.EndWatermark:
		return r.latch(ReadResult{Kind: ReadEndOfChannel})
	case frame.EndClosed:
		return r.latch(ReadResult{Kind: ReadChannelClosed})
	case frame.EndAborted:
		return r.latch(ReadResult{Kind: ReadChannelAborted})
	default: // frame.Corrupt
		r.logger.Errorf("%scorrupt length word %#x at pos=%d id=%d", logging.NSReader, word, r.readPos, r.meta.ChannelID)
		return r.latch(ReadResult{Kind: ReadCorrupt})
	}
}

func (r *Reader) latch(res ReadResult) ReadResult {
	r.logger.Infof("%sterminal %s at pos=%d id=%d", logging.NSReader, res.Kind, r.readPos, r.meta.ChannelID)
	r.terminal = &res
	return res
}

// Position returns the reader's current byte offset within the record
// region.
func (r *Reader) Position() uint64 { return uint64(r.readPos) }

// Exhausted reports whether the reader has reached a terminal state.
func (r *Reader) Exhausted() bool { return r.terminal != nil }

// MoveTo repositions the reader to resume from a previously recorded
// position, e.g. one persisted out-of-band by a stateful consumer. It
// clears any latched terminal state.
func (r *Reader) MoveTo(position uint64) error {
	if position >= uint64(r.meta.Capacity) || !frame.IsAligned(int(position), 8) {
		return ErrInvalidPosition
	}
	r.readPos = uint32(position)
	r.terminal = nil
	return nil
}

// Close releases the reader's mapping. Safe to call more than once.
func (r *Reader) Close() error {
	return r.region.Close()
}

// IntoTimeout wraps r in a TimeoutReader using clock as the time source.
func (r *Reader) IntoTimeout(clock Clock, timeoutNs int64) *TimeoutReader {
	return newTimeoutReader(r, clock, timeoutNs)
}
