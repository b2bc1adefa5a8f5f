package memchan

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/memchan-io/memchan/internal/frame"
	"github.com/memchan-io/memchan/internal/header"
	"github.com/memchan-io/memchan/internal/logging"
	"github.com/memchan-io/memchan/internal/mmap"
	"github.com/memchan-io/memchan/internal/testutil"
)

// writerState is the writer's terminal state, once reached.
type writerState uint8

const (
	writerOpen writerState = iota
	writerClosed
	writerFull
	writerAborted
)

// sentinelWordSize is the width of a length word: the only space a
// terminal sentinel needs. When write_pos lands exactly at capacity after
// a record that fit perfectly, there may be no room left even for a
// sentinel word; in that case the writer simply transitions state without
// writing one, and a reader reaching that same offset treats "no room for
// another word" as the end of the channel (see Reader.TryRead).
const sentinelWordSize = 4

// Writer is the single-producer handle on a channel's record region. A
// Writer is not safe for concurrent use: it is movable between goroutines
// but must never be shared. Exactly one Writer exists per channel at a
// time; reopening an already-open channel for writing is the caller's
// responsibility to avoid.
type Writer struct {
	region *mmap.Region
	meta   Metadata
	logger logging.Logger
	path   string
	state  writerState

	// writePos is only ever advanced by the single writer goroutine, but is
	// kept atomic so Stats() can read it safely from any other goroutine.
	writePos       atomic.Uint32
	recordsWritten atomic.Uint64
	bytesWritten   atomic.Uint64
}

// CreateWriter allocates a new channel file at path sized to fit metadata,
// writes and flushes its header, and returns a Writer positioned at the
// start of an empty record region. It fails with ErrAlreadyExists if a
// file already exists at path.
func CreateWriter(path string, meta Metadata, opts ...WriterOption) (*Writer, error) {
	if meta.CreationNs == 0 {
		meta.CreationNs = time.Now().UnixNano()
	}
	h := meta.toHeader()
	if err := h.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMetadata, err)
	}

	o := newWriterOptions(opts)

	region, err := mmap.Create(path, meta.fileSize())
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyExists, path)
		}
		return nil, err
	}

	testutil.MaybeKill(testutil.KPMmapCreate0)
	o.logger.Debugf("%smapped %d bytes at %s", logging.NSMmap, meta.fileSize(), path)

	copy(region.Bytes(), header.Encode(h))
	if err := region.Flush(false); err != nil {
		region.Close()
		return nil, fmt.Errorf("memchan: flush header: %w", err)
	}

	w := &Writer{
		region: region,
		meta:   meta,
		logger: o.logger,
		path:   path,
	}
	runtime.SetFinalizer(w, (*Writer).finalize)
	w.logger.Infof("%screated channel id=%d capacity=%d path=%s", logging.NSWriter, meta.ChannelID, meta.Capacity, path)
	return w, nil
}

// recordRegion returns the slice of the mapping past the header.
func (w *Writer) recordRegion() []byte {
	return w.region.Bytes()[header.Size:]
}

// Write appends payload as one record and returns the byte offset it was
// published at. A payload longer than MaxRecordLen is rejected without
// changing writer state. If the remaining capacity cannot fit the frame,
// the writer installs a Watermark sentinel, transitions to its Full
// terminal state, and returns ErrChannelFull.
func (w *Writer) Write(payload []byte) (uint64, error) {
	if w.state != writerOpen {
		return 0, ErrChannelClosed
	}
	if uint32(len(payload)) > w.meta.MaxRecordLen {
		return 0, ErrRecordTooLarge
	}

	region := w.recordRegion()
	slot := frame.Size(uint32(len(payload)))
	pos := w.writePos.Load()

	if pos+slot > w.meta.Capacity {
		if pos+sentinelWordSize <= w.meta.Capacity {
			frame.StoreRelease(region, pos, frame.Watermark)
		}
		w.state = writerFull
		w.logger.Infof("%schannel full at pos=%d id=%d", logging.NSWriter, pos, w.meta.ChannelID)
		return 0, ErrChannelFull
	}

	frame.EncodeAt(region, pos, payload)

	testutil.MaybeKill(testutil.KPWriterPublish0)
	frame.StoreRelease(region, pos, uint32(len(payload)))
	testutil.MaybeKill(testutil.KPWriterPublish1)

	w.writePos.Store(pos + slot)
	w.recordsWritten.Add(1)
	w.bytesWritten.Add(uint64(len(payload)))

	return uint64(pos), nil
}

// WriteThrough runs payload through chain's Apply stage and writes the
// result. A failure from the chain is reported as *EncodeFailedError and
// leaves the writer's state untouched, unlike a failure from Write itself.
func (w *Writer) WriteThrough(chain Unit, payload []byte) (uint64, error) {
	encoded, err := chain.Apply(payload)
	if err != nil {
		return 0, &EncodeFailedError{err: err}
	}
	return w.Write(encoded)
}

// Close installs a Closed sentinel at the current write position and
// releases the mapping. If there is no room left for the sentinel, the
// channel is simply treated as already full. Close is idempotent.
func (w *Writer) Close() error {
	if w.state != writerOpen {
		return w.releaseIfLast()
	}
	testutil.MaybeKill(testutil.KPWriterClose0)
	pos := w.writePos.Load()
	if pos+sentinelWordSize <= w.meta.Capacity {
		frame.StoreRelease(w.recordRegion(), pos, frame.Closed)
	}
	w.state = writerClosed
	w.logger.Infof("%sclosed channel id=%d pos=%d", logging.NSWriter, w.meta.ChannelID, pos)
	return w.releaseIfLast()
}

// Abort installs an Aborted sentinel and releases the mapping. Call this
// explicitly when abandoning a channel without a graceful Close; it is
// also invoked automatically if the Writer is garbage collected without
// either Close or Abort having run.
func (w *Writer) Abort() error {
	if w.state != writerOpen {
		return w.releaseIfLast()
	}
	testutil.MaybeKill(testutil.KPWriterAbort0)
	pos := w.writePos.Load()
	if pos+sentinelWordSize <= w.meta.Capacity {
		frame.StoreRelease(w.recordRegion(), pos, frame.Aborted)
	}
	w.state = writerAborted
	w.logger.Warnf("%saborted channel id=%d pos=%d", logging.NSWriter, w.meta.ChannelID, pos)
	return w.releaseIfLast()
}

func (w *Writer) releaseIfLast() error {
	runtime.SetFinalizer(w, nil)
	return w.region.Close()
}

// finalize is the last-resort abort path for a Writer dropped without an
// explicit Close or Abort call.
func (w *Writer) finalize() {
	if w.state == writerOpen {
		_ = w.Abort()
	}
}

// WriterStats is a point-in-time snapshot of a Writer's progress.
type WriterStats struct {
	RecordsWritten uint64
	BytesWritten   uint64
	WritePos       uint32
}

// Stats returns a snapshot of the writer's counters. Safe to call from any
// goroutine concurrently with Write, since it only reads atomics the write
// path already maintains.
func (w *Writer) Stats() WriterStats {
	return WriterStats{
		RecordsWritten: w.recordsWritten.Load(),
		BytesWritten:   w.bytesWritten.Load(),
		WritePos:       w.writePos.Load(),
	}
}
