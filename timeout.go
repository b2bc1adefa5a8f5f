package memchan

import "github.com/memchan-io/memchan/internal/logging"

// TimeoutReader wraps a Reader with a liveness oracle: if no new record
// arrives within timeoutNs of the last one observed, it surfaces
// ReadChannelTimeout and latches it, exactly like any other reader
// terminal. The writer is never consulted; timeout_ns in the header is
// purely advisory metadata the caller chooses to honor here.
//
// Per the heartbeat policy decision (see DESIGN.md): the writer never
// emits synthetic tick records, so lastProgress only advances on a real
// ReadRecord result.
type TimeoutReader struct {
	inner        *Reader
	clock        Clock
	timeoutNs    int64
	lastProgress int64
	timedOut     bool
}

func newTimeoutReader(inner *Reader, clock Clock, timeoutNs int64) *TimeoutReader {
	return &TimeoutReader{
		inner:        inner,
		clock:        clock,
		timeoutNs:    timeoutNs,
		lastProgress: clock.Now(),
	}
}

// TryRead delegates to the wrapped reader, adding timeout as an additional
// terminal outcome.
func (t *TimeoutReader) TryRead() ReadResult {
	if t.timedOut {
		return ReadResult{Kind: ReadChannelTimeout}
	}

	res := t.inner.TryRead()
	switch res.Kind {
	case ReadRecord:
		t.lastProgress = t.clock.Now()
		return res
	case ReadNothing:
		if t.timeoutNs > 0 && t.clock.Now()-t.lastProgress > t.timeoutNs {
			t.timedOut = true
			t.inner.logger.Warnf("%sno record for %dns, exceeds timeout of %dns id=%d",
				logging.NSTimeout, t.clock.Now()-t.lastProgress, t.timeoutNs, t.inner.meta.ChannelID)
			return ReadResult{Kind: ReadChannelTimeout}
		}
		return res
	default:
		return res
	}
}

// Position, Exhausted, Close, and MoveTo delegate to the wrapped reader.
// Exhausted additionally reports true once this decorator has timed out.

func (t *TimeoutReader) Position() uint64 { return t.inner.Position() }

func (t *TimeoutReader) Exhausted() bool { return t.timedOut || t.inner.Exhausted() }

func (t *TimeoutReader) Close() error { return t.inner.Close() }

func (t *TimeoutReader) MoveTo(position uint64) error {
	if err := t.inner.MoveTo(position); err != nil {
		return err
	}
	t.timedOut = false
	t.lastProgress = t.clock.Now()
	return nil
}
