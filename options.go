package memchan

import "github.com/memchan-io/memchan/internal/logging"

// Clock abstracts monotonic time for the timeout reader decorator (C6), so
// tests can drive it with a fake clock instead of real wall-clock time.
type Clock interface {
	Now() int64 // nanoseconds, monotonic
}

// WriterOptions carries process-local, non-persisted knobs for a Writer.
// None of these are written to the channel file.
type WriterOptions struct {
	logger logging.Logger
}

// WriterOption configures a Writer at creation time.
type WriterOption func(*WriterOptions)

// WithWriterLogger attaches a logger for slow-path writer events (create,
// close, abort, full). The hot write path never logs.
func WithWriterLogger(l logging.Logger) WriterOption {
	return func(o *WriterOptions) { o.logger = l }
}

func newWriterOptions(opts []WriterOption) WriterOptions {
	o := WriterOptions{logger: logging.Discard}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = logging.OrDefault(o.logger)
	return o
}

// ReaderOptions carries process-local, non-persisted knobs for a Reader.
type ReaderOptions struct {
	logger logging.Logger
}

// ReaderOption configures a Reader at open time.
type ReaderOption func(*ReaderOptions)

// WithReaderLogger attaches a logger for slow-path reader events (open,
// terminal transition, corruption). try_read itself never logs.
func WithReaderLogger(l logging.Logger) ReaderOption {
	return func(o *ReaderOptions) { o.logger = l }
}

func newReaderOptions(opts []ReaderOption) ReaderOptions {
	o := ReaderOptions{logger: logging.Discard}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = logging.OrDefault(o.logger)
	return o
}
