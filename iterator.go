package memchan

import "time"

// reader is the minimal surface both Reader and TimeoutReader satisfy; the
// iterator adapters are agnostic to which one backs them.
type reader interface {
	TryRead() ReadResult
}

// NonRetryIterator yields ReadResult values from a reader until the first
// ReadNothing or terminal result, then is fused: every subsequent Next call
// returns false. It never blocks.
type NonRetryIterator struct {
	src   reader
	fused bool
}

// NewNonRetryIterator wraps src in a single-pass, non-blocking sequence.
func NewNonRetryIterator(src reader) *NonRetryIterator {
	return &NonRetryIterator{src: src}
}

// Next returns the next result and true, or a zero ReadResult and false
// once fused.
func (it *NonRetryIterator) Next() (ReadResult, bool) {
	if it.fused {
		return ReadResult{}, false
	}
	res := it.src.TryRead()
	if res.Kind != ReadRecord {
		it.fused = true
	}
	return res, true
}

// RetryIterator yields only ReadRecord results, spinning through
// ReadNothing with a bounded exponential back-off, until a terminal result
// is reached, at which point it is fused.
type RetryIterator struct {
	src      reader
	fused    bool
	minPause time.Duration
	maxPause time.Duration
	sleep    func(time.Duration)
}

// defaultMinPause and defaultMaxPause bound the retry iterator's back-off.
const (
	defaultMinPause = time.Microsecond
	defaultMaxPause = time.Millisecond
)

// NewRetryIterator wraps src in a blocking-but-non-suspending sequence that
// only ever surfaces records or a terminal result.
func NewRetryIterator(src reader) *RetryIterator {
	return &RetryIterator{
		src:      src,
		minPause: defaultMinPause,
		maxPause: defaultMaxPause,
		sleep:    time.Sleep,
	}
}

// Next blocks (via bounded spin/back-off, never via a suspending wait on
// another participant) until a record or terminal result is available, or
// returns false once fused.
func (it *RetryIterator) Next() (ReadResult, bool) {
	if it.fused {
		return ReadResult{}, false
	}
	pause := it.minPause
	for {
		res := it.src.TryRead()
		switch {
		case res.Kind == ReadRecord:
			return res, true
		case res.Kind.IsTerminal():
			it.fused = true
			return res, true
		default: // ReadNothing
			it.sleep(pause)
			if pause < it.maxPause {
				pause *= 2
				if pause > it.maxPause {
					pause = it.maxPause
				}
			}
		}
	}
}
